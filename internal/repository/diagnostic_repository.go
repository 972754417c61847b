package repository

import (
	"context"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/database"
)

// DiagnosticRepo updates self-assessment sessions.  Sessions are created by
// the assessment flow, not here.
type DiagnosticRepo struct{ db *database.DB }

func NewDiagnosticRepo(db *database.DB) *DiagnosticRepo { return &DiagnosticRepo{db: db} }

// MarkConverted links the session to the booking submission.  ErrNotFound
// when the session id is unknown.
func (r *DiagnosticRepo) MarkConverted(ctx context.Context, sessionID, submissionID string) error {
	q := r.db.Rebind(`UPDATE diagnostic_sessions
	                  SET converted_to_booking = TRUE, booking_form_submission_id = ?
	                  WHERE session_id = ?`)
	res, err := r.db.ExecContext(ctx, q, submissionID, sessionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
