package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/estatehub/realty-platform/internal/core/domain"
	"github.com/estatehub/realty-platform/internal/core/ports"
)

// AnalyticsHandler tracks and aggregates usage events.
type AnalyticsHandler struct {
	service ports.AnalyticsService
}

func NewAnalyticsHandler(service ports.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

type trackEventRequest struct {
	EventType  string `json:"event_type" validate:"required"`
	ResourceID int64  `json:"resource_id"`
	UserID     int64  `json:"user_id"`
	Metadata   string `json:"metadata"`
}

// Track handles POST /events. Unknown event types are accepted and
// recorded as-is; repeated property views within the dedup window are
// dropped silently with a 201.
//
// @Summary      Track an event
// @Tags         analytics
// @Accept       json
// @Produce      json
// @Param        body  body      trackEventRequest  true  "Event details"
// @Success      201   {object}  domain.Event
// @Failure      400   {object}  map[string]string
// @Router       /events [post]
func (h *AnalyticsHandler) Track(c echo.Context) error {
	var req trackEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	event, err := h.service.Track(c.Request().Context(), domain.Event{
		EventType:  req.EventType,
		ResourceID: req.ResourceID,
		UserID:     req.UserID,
		Metadata:   req.Metadata,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, event)
}

// List handles GET /events with an optional event_type filter. Agent only.
func (h *AnalyticsHandler) List(c echo.Context) error {
	events, err := h.service.List(c.Request().Context(), c.QueryParam("event_type"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// Stats handles GET /events/stats. Agent only.
//
// @Summary      Event statistics
// @Tags         analytics
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.EventStats
// @Router       /events/stats [get]
func (h *AnalyticsHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}
