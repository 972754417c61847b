package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/model"
)

// PaymentLookup reads payment rows by checkout session.
type PaymentLookup interface {
	GetBySessionID(ctx context.Context, sessionID string) (*model.Payment, error)
}

// PaymentHandler lets staff check what the webhook recorded for a session.
type PaymentHandler struct{ Payments PaymentLookup }

func NewPaymentHandler(payments PaymentLookup) *PaymentHandler {
	return &PaymentHandler{Payments: payments}
}

// Get handles GET /v1/admin/payments/:sessionId.
func (h *PaymentHandler) Get(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	p, err := h.Payments.GetBySessionID(ctx, c.Param("sessionId"))
	if err != nil {
		return respondError(c, err, "Failed to load payment")
	}
	return c.JSON(http.StatusOK, p)
}
