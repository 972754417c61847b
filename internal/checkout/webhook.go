package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
	"go.uber.org/zap"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/logger"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/model"
)

// VerifyEvent checks the Stripe-Signature header and parses the event.
func VerifyEvent(payload []byte, signature, secret string) (stripe.Event, error) {
	return webhook.ConstructEventWithOptions(payload, signature, secret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
}

// HandleEvent mirrors checkout outcomes into payments.  It reports whether
// the event type was acted on.
func (s *Service) HandleEvent(ctx context.Context, ev stripe.Event) (bool, error) {
	var status model.PaymentStatus
	switch ev.Type {
	case "checkout.session.completed", "checkout.session.async_payment_succeeded":
		status = model.PaymentPaid
	case "checkout.session.expired", "checkout.session.async_payment_failed":
		status = model.PaymentFailed
	default:
		logger.Get().Debug("stripe event ignored", zap.String("type", string(ev.Type)))
		return false, nil
	}
	if ev.Data == nil {
		return false, fmt.Errorf("event %s has no data", ev.ID)
	}

	var sess stripe.CheckoutSession
	if err := json.Unmarshal(ev.Data.Raw, &sess); err != nil {
		return false, fmt.Errorf("decode checkout session: %w", err)
	}
	// Delayed methods complete with payment_status "unpaid" and settle later
	// through async_payment_succeeded.
	if ev.Type == "checkout.session.completed" && sess.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid &&
		sess.PaymentStatus != stripe.CheckoutSessionPaymentStatusNoPaymentRequired {
		return false, nil
	}

	p := PaymentFromSession(&sess, s.currency)
	p.Status = status
	if err := s.payments.Upsert(ctx, p); err != nil {
		return false, fmt.Errorf("upsert payment %s: %w", sess.ID, err)
	}
	logger.Get().Info("payment status updated",
		zap.String("session_id", sess.ID), zap.String("status", string(status)))
	return true, nil
}

// PaymentFromSession rebuilds a payments row from the session and the
// metadata written at creation.
func PaymentFromSession(sess *stripe.CheckoutSession, fallbackCurrency string) *model.Payment {
	rush, _ := strconv.ParseBool(sess.Metadata[MetaIsRushService])
	p := &model.Payment{
		FormSubmissionID:        sess.Metadata[MetaFormSubmissionID],
		StripeCheckoutSessionID: sess.ID,
		Amount:                  sess.AmountTotal,
		Currency:                firstNonEmpty(string(sess.Currency), fallbackCurrency),
		ServiceType:             sess.Metadata[MetaServiceType],
		IsRushService:           rush,
		ReceiptEmail:            sess.CustomerEmail,
	}
	if p.ReceiptEmail == "" && sess.CustomerDetails != nil {
		p.ReceiptEmail = sess.CustomerDetails.Email
	}
	if sess.PaymentIntent != nil && sess.PaymentIntent.ID != "" {
		id := sess.PaymentIntent.ID
		p.StripePaymentIntentID = &id
	}
	return p
}
