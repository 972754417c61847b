package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/database"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/model"
)

// FormSubmissionRepo persists structured intakes.  form_data is stored as
// JSON and decoded back into the variant named by form_type.
type FormSubmissionRepo struct{ db *database.DB }

func NewFormSubmissionRepo(db *database.DB) *FormSubmissionRepo {
	return &FormSubmissionRepo{db: db}
}

const submissionColumns = `id, form_type, full_name, email, phone, form_data, requires_upload, created_at`

// Create inserts s, assigning ID and CreatedAt.
func (r *FormSubmissionRepo) Create(ctx context.Context, s *model.FormSubmission) error {
	data, err := json.Marshal(s.FormData)
	if err != nil {
		return fmt.Errorf("encode form_data: %w", err)
	}
	s.ID = uuid.NewString()
	s.CreatedAt = time.Now().UTC()

	q := r.db.Rebind(`INSERT INTO form_submissions (` + submissionColumns + `)
	                  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err = r.db.ExecContext(ctx, q,
		s.ID, string(s.FormType), s.FullName, s.Email, s.Phone, string(data), s.RequiresUpload, s.CreatedAt)
	return err
}

// GetByID returns ErrNotFound when no row matches.
func (r *FormSubmissionRepo) GetByID(ctx context.Context, id string) (*model.FormSubmission, error) {
	q := r.db.Rebind(`SELECT ` + submissionColumns + ` FROM form_submissions WHERE id = ?`)
	s, err := scanSubmission(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return s, err
}

// ListRecent returns the newest submissions first, optionally filtered by
// form type.
func (r *FormSubmissionRepo) ListRecent(ctx context.Context, formType model.FormType, limit int) ([]*model.FormSubmission, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if formType == "" {
		q := r.db.Rebind(`SELECT ` + submissionColumns + ` FROM form_submissions ORDER BY created_at DESC LIMIT ?`)
		rows, err = r.db.QueryContext(ctx, q, limit)
	} else {
		q := r.db.Rebind(`SELECT ` + submissionColumns + ` FROM form_submissions WHERE form_type = ? ORDER BY created_at DESC LIMIT ?`)
		rows, err = r.db.QueryContext(ctx, q, string(formType), limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.FormSubmission
	for rows.Next() {
		s, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row rowScanner) (*model.FormSubmission, error) {
	var (
		s        model.FormSubmission
		formType string
		data     []byte
	)
	if err := row.Scan(&s.ID, &formType, &s.FullName, &s.Email, &s.Phone, &data, &s.RequiresUpload, &s.CreatedAt); err != nil {
		return nil, err
	}
	s.FormType = model.FormType(formType)
	fd, err := model.LoadFormData(s.FormType, data)
	if err != nil {
		return nil, fmt.Errorf("submission %s: %w", s.ID, err)
	}
	s.FormData = fd
	return &s, nil
}
