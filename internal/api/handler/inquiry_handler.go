package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/estatehub/realty-platform/internal/core/domain"
	"github.com/estatehub/realty-platform/internal/core/ports"
)

// InquiryHandler handles HTTP requests for inquiries, clients and
// appointments.
type InquiryHandler struct {
	service ports.InquiryService
}

func NewInquiryHandler(service ports.InquiryService) *InquiryHandler {
	return &InquiryHandler{service: service}
}

type createInquiryRequest struct {
	PropertyID int64  `json:"property_id" validate:"required,gt=0"`
	Name       string `json:"name"`
	Email      string `json:"email"       validate:"omitempty,email"`
	Phone      string `json:"phone"`
	Message    string `json:"message"`
}

type updateInquiryStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=new in_progress done rejected"`
}

type createAppointmentRequest struct {
	PropertyID  int64     `json:"property_id"  validate:"required,gt=0"`
	ClientName  string    `json:"client_name"  validate:"required"`
	ClientEmail string    `json:"client_email" validate:"omitempty,email"`
	ClientPhone string    `json:"client_phone"`
	ScheduledAt time.Time `json:"scheduled_at" validate:"required"`
	Note        string    `json:"note"`
}

// CreateInquiry handles POST /inquiries. Anonymous callers must provide
// contact details; authenticated callers fall back to their token email.
//
// @Summary      Create an inquiry
// @Tags         inquiries
// @Accept       json
// @Produce      json
// @Param        body  body      createInquiryRequest  true  "Inquiry details"
// @Success      201   {object}  domain.Inquiry
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /inquiries [post]
func (h *InquiryHandler) CreateInquiry(c echo.Context) error {
	var req createInquiryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	inq, err := h.service.CreateInquiry(c.Request().Context(), ports.CreateInquiryInput{
		PropertyID: req.PropertyID,
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Message:    req.Message,
		Claims:     optionalClaims(c),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, inq)
}

// GetInquiry handles GET /inquiries/:id.
func (h *InquiryHandler) GetInquiry(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	inq, err := h.service.GetInquiry(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inq)
}

// ListInquiries handles GET /inquiries. Agents see everything, users see
// the inquiries matching their own email.
//
// @Summary      List inquiries
// @Tags         inquiries
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Inquiry
// @Router       /inquiries [get]
func (h *InquiryHandler) ListInquiries(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	inquiries, err := h.service.ListInquiries(c.Request().Context(), claims)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inquiries)
}

// UpdateStatus handles PATCH /inquiries/:id/status. Agent only.
//
// @Summary      Update inquiry status
// @Tags         inquiries
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                         true  "Inquiry id"
// @Param        body  body      updateInquiryStatusRequest  true  "New status"
// @Success      200   {object}  domain.Inquiry
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /inquiries/{id}/status [patch]
func (h *InquiryHandler) UpdateStatus(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req updateInquiryStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	inq, err := h.service.UpdateInquiryStatus(c.Request().Context(), id, domain.InquiryStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, inq)
}

// DeleteInquiry handles DELETE /inquiries/:id. Agents may delete any
// inquiry, users only their own.
func (h *InquiryHandler) DeleteInquiry(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteInquiry(c.Request().Context(), id, claims); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetClient handles GET /clients/:id. Agent only; the reporting service
// uses it to resolve client references.
func (h *InquiryHandler) GetClient(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	client, err := h.service.GetClient(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, client)
}

// ListClients handles GET /clients. Agent only.
func (h *InquiryHandler) ListClients(c echo.Context) error {
	clients, err := h.service.ListClients(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clients)
}

// CreateAppointment handles POST /appointments. Agent only.
//
// @Summary      Schedule a viewing
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createAppointmentRequest  true  "Viewing details"
// @Success      201   {object}  domain.Appointment
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /appointments [post]
func (h *InquiryHandler) CreateAppointment(c echo.Context) error {
	var req createAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	appt, err := h.service.CreateAppointment(c.Request().Context(), ports.CreateAppointmentInput{
		PropertyID:  req.PropertyID,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ClientPhone: req.ClientPhone,
		ScheduledAt: req.ScheduledAt,
		Note:        req.Note,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, appt)
}

// GetAppointment handles GET /appointments/:id.
func (h *InquiryHandler) GetAppointment(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	appt, err := h.service.GetAppointment(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appt)
}

// ListAppointments handles GET /appointments. Agent only; each item
// carries its denormalized client when resolvable.
func (h *InquiryHandler) ListAppointments(c echo.Context) error {
	appts, err := h.service.ListAppointments(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, appts)
}
