package handler

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/checkout"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/logger"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/pricing"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/validate"
)

// maxWebhookBody matches Stripe's recommended payload cap.
const maxWebhookBody = 65536

// CheckoutService is implemented by *checkout.Service.
type CheckoutService interface {
	Create(ctx context.Context, req checkout.Request) (checkout.Result, error)
	HandleEvent(ctx context.Context, ev stripe.Event) (bool, error)
}

// CheckoutHandler serves the checkout-session and webhook functions plus
// the price quote route.
type CheckoutHandler struct {
	Checkout      CheckoutService
	WebhookSecret string
}

func NewCheckoutHandler(svc CheckoutService, webhookSecret string) *CheckoutHandler {
	return &CheckoutHandler{Checkout: svc, WebhookSecret: webhookSecret}
}

// CreateSession handles POST /functions/create-checkout-session.
func (h *CheckoutHandler) CreateSession(c echo.Context) error {
	var req checkout.Request
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := req.Validate(); err != nil {
		return badRequest(c, err.Error())
	}
	res, err := h.Checkout.Create(c.Request().Context(), req)
	if err != nil {
		if validate.IsValidation(err) {
			return badRequest(c, err.Error())
		}
		logger.Get().Error("create checkout session",
			zap.String("form_submission_id", req.FormSubmissionID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, res)
}

// Webhook handles POST /functions/stripe-webhook.
// An unset signing secret refuses every event.
func (h *CheckoutHandler) Webhook(c echo.Context) error {
	if h.WebhookSecret == "" {
		logger.Get().Error("stripe webhook secret not configured")
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "webhook not configured"})
	}
	payload, err := io.ReadAll(io.LimitReader(c.Request().Body, maxWebhookBody))
	if err != nil {
		return badRequest(c, "unreadable body")
	}
	ev, err := checkout.VerifyEvent(payload, c.Request().Header.Get("Stripe-Signature"), h.WebhookSecret)
	if err != nil {
		logger.Get().Warn("stripe webhook rejected", zap.Error(err))
		return badRequest(c, "invalid signature")
	}
	handled, err := h.Checkout.HandleEvent(c.Request().Context(), ev)
	if err != nil {
		logger.Get().Error("stripe webhook", zap.String("event_id", ev.ID), zap.String("type", string(ev.Type)), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "webhook processing failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"received": true, "handled": handled})
}

// Quote handles GET /v1/pricing/:serviceType?rush=true.
func (h *CheckoutHandler) Quote(c echo.Context) error {
	serviceType := c.Param("serviceType")
	rush, _ := strconv.ParseBool(c.QueryParam("rush"))
	amount, err := pricing.Compute(serviceType, rush)
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	}
	tier, _ := pricing.Lookup(serviceType)
	return c.JSON(http.StatusOK, echo.Map{
		"serviceType":   tier.ServiceType,
		"name":          tier.Name,
		"isRushService": rush,
		"amount":        amount,
		"currency":      "usd",
		"description":   checkout.LineItemDescription(serviceType, rush),
	})
}

// Prices handles GET /v1/pricing.
func (h *CheckoutHandler) Prices(c echo.Context) error {
	return c.JSON(http.StatusOK, pricing.Tiers())
}
