// Package checkout issues Stripe Checkout sessions for paid services and
// mirrors their outcome into the payments table.
package checkout

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"go.uber.org/zap"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/logger"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/model"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/pricing"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/validate"
)

// Turnaround phrases appended to the line-item name.
const (
	RushTurnaround     = "Rush turnaround (48-72 hours)"
	StandardTurnaround = "Standard turnaround (5-7 business days)"
)

// Metadata keys attached to every session.
const (
	MetaFormSubmissionID = "formSubmissionId"
	MetaServiceType      = "serviceType"
	MetaIsRushService    = "isRushService"
)

// SessionCreator creates a hosted checkout session.
type SessionCreator interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// StripeSessions calls the Stripe API with the package-level key.
type StripeSessions struct{}

// NewStripeSessions sets the API key used by every Stripe call.
func NewStripeSessions(secretKey string) StripeSessions {
	stripe.Key = secretKey
	return StripeSessions{}
}

func (StripeSessions) New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return session.New(params)
}

// PaymentStore is the slice of PaymentRepo used here.
type PaymentStore interface {
	InsertPending(ctx context.Context, p *model.Payment) error
	Upsert(ctx context.Context, p *model.Payment) error
}

// Request is the create-checkout-session body.  Amount is in minor units
// and is used as given.
type Request struct {
	FormSubmissionID string `json:"formSubmissionId"`
	ServiceType      string `json:"serviceType"`
	Amount           int64  `json:"amount"`
	IsRushService    bool   `json:"isRushService"`
	CustomerEmail    string `json:"customerEmail"`
	SuccessURL       string `json:"successUrl"`
	CancelURL        string `json:"cancelUrl"`
}

// Validate rejects a request missing any required field.
func (r Request) Validate() error {
	if strings.TrimSpace(r.FormSubmissionID) == "" || strings.TrimSpace(r.ServiceType) == "" ||
		r.Amount == 0 || strings.TrimSpace(r.CustomerEmail) == "" {
		return validate.Fail("request", "Missing required fields")
	}
	return nil
}

// Result is returned to the browser for the redirect.
type Result struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}

// LineItemDescription is "{name} - {turnaround}".
func LineItemDescription(serviceType string, isRush bool) string {
	phrase := StandardTurnaround
	if isRush {
		phrase = RushTurnaround
	}
	return pricing.DisplayName(serviceType) + " - " + phrase
}

// Service creates sessions and records them as pending payments.
type Service struct {
	sessions SessionCreator
	payments PaymentStore
	currency string
	siteURL  string
}

func NewService(sessions SessionCreator, payments PaymentStore, currency, siteURL string) *Service {
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	return &Service{sessions: sessions, payments: payments, currency: currency, siteURL: siteURL}
}

// Params builds the Stripe request for req.
func (s *Service) Params(req Request) *stripe.CheckoutSessionParams {
	successURL := firstNonEmpty(req.SuccessURL, s.siteURL+"/payment/success?session_id={CHECKOUT_SESSION_ID}")
	cancelURL := firstNonEmpty(req.CancelURL, s.siteURL+"/payment/cancel")

	params := &stripe.CheckoutSessionParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL: stripe.String(successURL),
		CancelURL:  stripe.String(cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(s.currency),
					UnitAmount: stripe.Int64(req.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name:        stripe.String(pricing.DisplayName(req.ServiceType)),
						Description: stripe.String(LineItemDescription(req.ServiceType, req.IsRushService)),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(req.CustomerEmail),
	}
	params.AddMetadata(MetaFormSubmissionID, req.FormSubmissionID)
	params.AddMetadata(MetaServiceType, req.ServiceType)
	params.AddMetadata(MetaIsRushService, strconv.FormatBool(req.IsRushService))
	return params
}

// Create issues a session and inserts its pending payment.  A failed insert
// is logged and does not fail the call; the webhook rebuilds the row.
func (s *Service) Create(ctx context.Context, req Request) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	params := s.Params(req)
	params.Context = ctx

	sess, err := s.sessions.New(params)
	if err != nil {
		return Result{}, fmt.Errorf("create checkout session: %w", err)
	}

	p := &model.Payment{
		FormSubmissionID:        req.FormSubmissionID,
		StripeCheckoutSessionID: sess.ID,
		Amount:                  req.Amount,
		Currency:                s.currency,
		ServiceType:             req.ServiceType,
		IsRushService:           req.IsRushService,
		ReceiptEmail:            req.CustomerEmail,
	}
	if err := s.payments.InsertPending(ctx, p); err != nil {
		logger.Get().Error("record pending payment",
			zap.String("session_id", sess.ID),
			zap.String("form_submission_id", req.FormSubmissionID),
			zap.Error(err))
	}
	return Result{SessionID: sess.ID, URL: sess.URL}, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
