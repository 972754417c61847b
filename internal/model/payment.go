package model

import "time"

// PaymentStatus mirrors the provider's view of a checkout.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentPaid      PaymentStatus = "paid"
	PaymentFailed    PaymentStatus = "failed"
	PaymentFulfilled PaymentStatus = "fulfilled"
)

// AllowedFrom lists the states a payment may be in when it moves to s.
// Repeating the current state is allowed so redelivered events are no-ops;
// paid and fulfilled never fall back to pending or failed.
func (s PaymentStatus) AllowedFrom() []PaymentStatus {
	switch s {
	case PaymentPending:
		return []PaymentStatus{PaymentPending}
	case PaymentPaid:
		return []PaymentStatus{PaymentPending, PaymentFailed, PaymentPaid}
	case PaymentFailed:
		return []PaymentStatus{PaymentPending, PaymentFailed}
	case PaymentFulfilled:
		return []PaymentStatus{PaymentPaid, PaymentFulfilled}
	}
	return nil
}

// Payment records one checkout-session issuance and its later outcome.
//
// Fields:
//
//	ID                      – primary key (UUID).
//	FormSubmissionID        – submission being paid for.
//	StripeCheckoutSessionID – provider session id (unique).
//	StripePaymentIntentID   – set once the provider reports payment.
//	Amount                  – minor units (cents).
//	Currency                – ISO code, lower case.
//	Status                  – pending, paid, failed, fulfilled.
//	ServiceType             – pricing key.
//	IsRushService           – rush tier selected.
//	ReceiptEmail            – customer email.
type Payment struct {
	ID                      string        `json:"id"`                                 // payments.id
	FormSubmissionID        string        `json:"form_submission_id"`                 // payments.form_submission_id
	StripeCheckoutSessionID string        `json:"stripe_checkout_session_id"`         // payments.stripe_checkout_session_id
	StripePaymentIntentID   *string       `json:"stripe_payment_intent_id,omitempty"` // payments.stripe_payment_intent_id (nullable)
	Amount                  int64         `json:"amount"`                             // payments.amount
	Currency                string        `json:"currency"`                           // payments.currency
	Status                  PaymentStatus `json:"status"`                             // payments.status
	ServiceType             string        `json:"service_type"`                       // payments.service_type
	IsRushService           bool          `json:"is_rush_service"`                    // payments.is_rush_service
	ReceiptEmail            string        `json:"receipt_email"`                      // payments.receipt_email
	CreatedAt               time.Time     `json:"created_at"`                         // payments.created_at
	UpdatedAt               time.Time     `json:"updated_at"`                         // payments.updated_at
}

// DiagnosticSession tracks a self-assessment and whether it became a booking.
type DiagnosticSession struct {
	SessionID               string  `json:"session_id"`                           // diagnostic_sessions.session_id
	ConvertedToBooking      bool    `json:"converted_to_booking"`                 // diagnostic_sessions.converted_to_booking
	BookingFormSubmissionID *string `json:"booking_form_submission_id,omitempty"` // diagnostic_sessions.booking_form_submission_id
}

// AdminUser is a staff login for the /v1/admin routes.
type AdminUser struct {
	ID           string // admin_users.id
	Email        string // admin_users.email
	PasswordHash string // admin_users.password_hash (bcrypt)
	Role         string // admin_users.role
	IsActive     bool   // admin_users.is_active
}
