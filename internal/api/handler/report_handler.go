package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/estatehub/realty-platform/internal/core/ports"
)

// ReportHandler builds portfolio and workload reports from peer-service
// data. Agent only.
type ReportHandler struct {
	service ports.ReportingService
}

func NewReportHandler(service ports.ReportingService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Properties handles GET /reports/properties.
//
// @Summary      Property portfolio report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.PropertyReport
// @Failure      502  {object}  map[string]string
// @Router       /reports/properties [get]
func (h *ReportHandler) Properties(c echo.Context) error {
	report, err := h.service.PropertiesReport(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}

// Inquiries handles GET /reports/inquiries. The caller's token is
// forwarded verbatim to the inquiry service.
//
// @Summary      Inquiry workload report
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.InquiryReport
// @Failure      502  {object}  map[string]string
// @Router       /reports/inquiries [get]
func (h *ReportHandler) Inquiries(c echo.Context) error {
	report, err := h.service.InquiriesReport(c.Request().Context(), bearer(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, report)
}
