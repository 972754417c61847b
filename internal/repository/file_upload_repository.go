package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/database"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/model"
)

// FileUploadRepo stores metadata for objects written to the bucket.
type FileUploadRepo struct{ db *database.DB }

func NewFileUploadRepo(db *database.DB) *FileUploadRepo { return &FileUploadRepo{db: db} }

const uploadColumns = `id, contact_id, form_submission_id, original_filename, file_size, mime_type,
	storage_path, file_category, is_phi, upload_status, created_at`

// Create inserts f.  ID is generated when empty.
func (r *FileUploadRepo) Create(ctx context.Context, f *model.FileUpload) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	f.CreatedAt = time.Now().UTC()
	q := r.db.Rebind(`INSERT INTO file_uploads (` + uploadColumns + `)
	                  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, q,
		f.ID, f.ContactID, f.FormSubmissionID, f.OriginalFilename, f.FileSize, f.MimeType,
		f.StoragePath, string(f.FileCategory), f.IsPHI, string(f.UploadStatus), f.CreatedAt)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

// GetByID returns ErrNotFound when no row matches.
func (r *FileUploadRepo) GetByID(ctx context.Context, id string) (*model.FileUpload, error) {
	q := r.db.Rebind(`SELECT ` + uploadColumns + ` FROM file_uploads WHERE id = ?`)
	f, err := scanUpload(r.db.QueryRowContext(ctx, q, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return f, err
}

// ListByParent returns the files attached to one contact or submission,
// oldest first.
func (r *FileUploadRepo) ListByParent(ctx context.Context, p model.Parent) ([]*model.FileUpload, error) {
	col := "form_submission_id"
	if p.Kind == model.ParentContact {
		col = "contact_id"
	}
	q := r.db.Rebind(`SELECT ` + uploadColumns + ` FROM file_uploads WHERE ` + col + ` = ? ORDER BY created_at`)
	return r.list(ctx, q, p.ID)
}

// ListRecent returns the newest uploads across all parents.
func (r *FileUploadRepo) ListRecent(ctx context.Context, limit int) ([]*model.FileUpload, error) {
	q := r.db.Rebind(`SELECT ` + uploadColumns + ` FROM file_uploads ORDER BY created_at DESC LIMIT ?`)
	return r.list(ctx, q, limit)
}

// Delete removes the row; ErrNotFound when it was already gone.
func (r *FileUploadRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM file_uploads WHERE id = ?`), id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *FileUploadRepo) list(ctx context.Context, q string, args ...any) ([]*model.FileUpload, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.FileUpload
	for rows.Next() {
		f, err := scanUpload(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func scanUpload(row rowScanner) (*model.FileUpload, error) {
	var (
		f                     model.FileUpload
		contactID, submission sql.NullString
		category, status      string
	)
	err := row.Scan(&f.ID, &contactID, &submission, &f.OriginalFilename, &f.FileSize, &f.MimeType,
		&f.StoragePath, &category, &f.IsPHI, &status, &f.CreatedAt)
	if err != nil {
		return nil, err
	}
	if contactID.Valid {
		f.ContactID = &contactID.String
	}
	if submission.Valid {
		f.FormSubmissionID = &submission.String
	}
	f.FileCategory = model.FileCategory(category)
	f.UploadStatus = model.UploadStatus(status)
	return &f, nil
}
