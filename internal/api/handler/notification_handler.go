package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/estatehub/realty-platform/internal/core/ports"
)

// NotificationHandler records and lists outbound messages.
type NotificationHandler struct {
	service ports.NotificationService
}

func NewNotificationHandler(service ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{service: service}
}

type sendNotificationRequest struct {
	Recipient string `json:"recipient" validate:"required"`
	Channel   string `json:"channel"   validate:"omitempty,oneof=email sms push"`
	Message   string `json:"message"   validate:"required"`
}

// Send handles POST /notifications. Delivery is mocked; the record is
// the audit trail.
//
// @Summary      Send a notification
// @Tags         notifications
// @Accept       json
// @Produce      json
// @Param        body  body      sendNotificationRequest  true  "Message details"
// @Success      201   {object}  domain.Notification
// @Failure      400   {object}  map[string]string
// @Router       /notifications [post]
func (h *NotificationHandler) Send(c echo.Context) error {
	var req sendNotificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	n, err := h.service.Send(c.Request().Context(), req.Recipient, req.Channel, req.Message)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, n)
}

// List handles GET /notifications. Agents see everything; users see
// their own messages plus the broadcast recipients.
//
// @Summary      List notifications
// @Tags         notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Notification
// @Router       /notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	notifications, err := h.service.List(c.Request().Context(), claims)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notifications)
}
