package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/database"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/model"
)

// sqlDB is the part of *database.DB the payment repo uses.
type sqlDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Rebind(query string) string
}

// PaymentRepo mirrors checkout sessions into the payments table.  Rows are
// keyed by stripe_checkout_session_id (unique).
type PaymentRepo struct{ db sqlDB }

func NewPaymentRepo(db *database.DB) *PaymentRepo { return &PaymentRepo{db: db} }

const paymentColumns = `id, form_submission_id, stripe_checkout_session_id, stripe_payment_intent_id,
	amount, currency, status, service_type, is_rush_service, receipt_email, created_at, updated_at`

// Insert writes p as given.  A duplicate session id yields ErrConflict.
func (r *PaymentRepo) Insert(ctx context.Context, p *model.Payment) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	q := r.db.Rebind(`INSERT INTO payments (` + paymentColumns + `)
	                  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, q,
		p.ID, p.FormSubmissionID, p.StripeCheckoutSessionID, p.StripePaymentIntentID,
		p.Amount, p.Currency, string(p.Status), p.ServiceType, p.IsRushService, p.ReceiptEmail,
		p.CreatedAt, p.UpdatedAt)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

// InsertPending records a freshly issued session.
func (r *PaymentRepo) InsertPending(ctx context.Context, p *model.Payment) error {
	p.Status = model.PaymentPending
	return r.Insert(ctx, p)
}

// GetBySessionID returns ErrNotFound when no row matches.
func (r *PaymentRepo) GetBySessionID(ctx context.Context, sessionID string) (*model.Payment, error) {
	q := r.db.Rebind(`SELECT ` + paymentColumns + ` FROM payments WHERE stripe_checkout_session_id = ?`)
	var (
		p      model.Payment
		intent sql.NullString
		status string
	)
	err := r.db.QueryRowContext(ctx, q, sessionID).Scan(
		&p.ID, &p.FormSubmissionID, &p.StripeCheckoutSessionID, &intent,
		&p.Amount, &p.Currency, &status, &p.ServiceType, &p.IsRushService, &p.ReceiptEmail,
		&p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if intent.Valid {
		p.StripePaymentIntentID = &intent.String
	}
	p.Status = model.PaymentStatus(status)
	return &p, nil
}

// UpdateStatus moves the session's row to status when its current state is
// in status.AllowedFrom().  paymentIntentID is kept when empty.  Returns
// ErrNotFound when no row in an allowed state matched.
func (r *PaymentRepo) UpdateStatus(ctx context.Context, sessionID string, status model.PaymentStatus, paymentIntentID string) error {
	from := status.AllowedFrom()
	if len(from) == 0 {
		return fmt.Errorf("unknown payment status %q", status)
	}
	var intent *string
	if paymentIntentID != "" {
		intent = &paymentIntentID
	}
	args := []any{string(status), intent, time.Now().UTC(), sessionID}
	for _, s := range from {
		args = append(args, string(s))
	}
	q := r.db.Rebind(`UPDATE payments
	                  SET status = ?, stripe_payment_intent_id = COALESCE(?, stripe_payment_intent_id), updated_at = ?
	                  WHERE stripe_checkout_session_id = ? AND status IN (?` + strings.Repeat(", ?", len(from)-1) + `)`)
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// Upsert moves the row for p.StripeCheckoutSessionID to p.Status, or inserts
// p when the pending row was never written.  A row that exists but is
// already past p.Status (a late or repeated event) is left as is.
func (r *PaymentRepo) Upsert(ctx context.Context, p *model.Payment) error {
	intent := ""
	if p.StripePaymentIntentID != nil {
		intent = *p.StripePaymentIntentID
	}
	err := r.UpdateStatus(ctx, p.StripeCheckoutSessionID, p.Status, intent)
	if !errors.Is(err, ErrNotFound) {
		return err
	}
	err = r.Insert(ctx, p)
	if !errors.Is(err, ErrConflict) {
		return err
	}
	// The row exists: either a concurrent pending insert landed first, or
	// the row is in a state p.Status may not overwrite.
	err = r.UpdateStatus(ctx, p.StripeCheckoutSessionID, p.Status, intent)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	return err
}
