package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/estatehub/realty-platform/internal/core/ports"
)

// PaymentHandler creates and lists mock-settled transactions.
type PaymentHandler struct {
	service ports.PaymentService
}

func NewPaymentHandler(service ports.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

type createTransactionRequest struct {
	Amount     float64 `json:"amount"   validate:"required,gt=0"`
	Currency   string  `json:"currency"`
	PropertyID int64   `json:"property_id"`
}

// Create handles POST /transactions. The processor is mocked: every
// accepted transaction settles immediately.
//
// @Summary      Create a transaction
// @Tags         payments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTransactionRequest  true  "Payment details"
// @Success      201   {object}  domain.Transaction
// @Failure      400   {object}  map[string]string
// @Router       /transactions [post]
func (h *PaymentHandler) Create(c echo.Context) error {
	var req createTransactionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	tx, err := h.service.CreateTransaction(c.Request().Context(), claims, req.Amount, req.Currency, req.PropertyID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tx)
}

// List handles GET /transactions. Agents see everything; users see
// their own.
func (h *PaymentHandler) List(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	txs, err := h.service.ListTransactions(c.Request().Context(), claims)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, txs)
}
