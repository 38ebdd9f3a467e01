package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/estatehub/realty-platform/internal/core/domain"
	"github.com/estatehub/realty-platform/internal/core/ports"
)

// LoggingHandler is the central sink for operational logs shipped by
// sibling services.
type LoggingHandler struct {
	service ports.LoggingService
}

func NewLoggingHandler(service ports.LoggingService) *LoggingHandler {
	return &LoggingHandler{service: service}
}

type appendLogRequest struct {
	Service string `json:"service"`
	Level   string `json:"level"`
	Message string `json:"message" validate:"required"`
	UserID  int64  `json:"user_id"`
}

// Append handles POST /logs. Missing service and level fall back to
// "unknown" and INFO.
func (h *LoggingHandler) Append(c echo.Context) error {
	var req appendLogRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	entry, err := h.service.Append(c.Request().Context(), domain.LogEntry{
		Service: req.Service,
		Level:   req.Level,
		Message: req.Message,
		UserID:  req.UserID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, entry)
}

// List handles GET /logs with optional service/level filters. Admin only.
func (h *LoggingHandler) List(c echo.Context) error {
	var limit int64
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			limit = n
		}
	}

	entries, err := h.service.List(c.Request().Context(), c.QueryParam("service"), c.QueryParam("level"), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}

// Stats handles GET /logs/stats. Admin only.
func (h *LoggingHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
