// Package upload validates documents, writes them to the bucket and records
// them in file_uploads.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/config"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/logger"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/model"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/repository"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/storage"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/validate"
)

// Store is the slice of FileUploadRepo the service needs.
type Store interface {
	Create(ctx context.Context, f *model.FileUpload) error
	GetByID(ctx context.Context, id string) (*model.FileUpload, error)
	ListByParent(ctx context.Context, p model.Parent) ([]*model.FileUpload, error)
	ListRecent(ctx context.Context, limit int) ([]*model.FileUpload, error)
	Delete(ctx context.Context, id string) error
}

// File is one incoming document.
type File struct {
	Filename string
	MimeType string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// Options tag every file in a request.
type Options struct {
	Category model.FileCategory
	IsPHI    bool
}

// Service runs single uploads and deletes.
type Service struct {
	store     Store
	bucket    storage.Bucket
	accepted  validate.Accepted
	maxMB     int
	signedTTL time.Duration
}

// NewService wires the store and bucket with the configured limits.
func NewService(store Store, bucket storage.Bucket, up config.UploadConfig, signedTTL time.Duration) *Service {
	return &Service{
		store:     store,
		bucket:    bucket,
		accepted:  validate.ParseAccepted(up.AcceptedTypes),
		maxMB:     up.MaxSizeInMB,
		signedTTL: signedTTL,
	}
}

// Validate applies the type and size rules without touching storage.
func (s *Service) Validate(f File) error {
	return validate.File(s.accepted, s.maxMB, f.Filename, f.MimeType, f.Size)
}

// Upload stores f under parent and records it as completed.  When the row
// insert fails the object is removed again.
func (s *Service) Upload(ctx context.Context, parent model.Parent, opts Options, f File) (*model.FileUpload, error) {
	if err := s.Validate(f); err != nil {
		return nil, err
	}
	if parent.ID == "" {
		return nil, validate.Fail("parentId", "parentId is required")
	}
	category := opts.Category
	if category == "" {
		category = model.CategoryDocument
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Filename, err)
	}
	defer rc.Close()

	id := uuid.NewString()
	objectPath := storage.ObjectPath(string(parent.Kind), parent.ID, id, f.Filename)
	if _, err := s.bucket.Upload(ctx, objectPath, f.MimeType, rc); err != nil {
		return nil, err
	}

	rec := &model.FileUpload{
		ID:               id,
		OriginalFilename: f.Filename,
		FileSize:         f.Size,
		MimeType:         f.MimeType,
		StoragePath:      objectPath,
		FileCategory:     category,
		IsPHI:            opts.IsPHI,
		UploadStatus:     model.UploadCompleted,
	}
	rec.SetParent(parent)
	if err := s.store.Create(ctx, rec); err != nil {
		if derr := s.bucket.Delete(ctx, objectPath); derr != nil {
			logger.Get().Error("orphaned upload object",
				zap.String("path", objectPath), zap.Error(derr))
		}
		return nil, fmt.Errorf("record upload: %w", err)
	}
	return rec, nil
}

// Listed is a stored file plus a short-lived download link.
type Listed struct {
	*model.FileUpload
	DownloadURL string `json:"download_url,omitempty"`
}

// List returns parent's files with signed URLs.  A signing failure leaves
// the URL empty for that file.
func (s *Service) List(ctx context.Context, parent model.Parent) ([]Listed, error) {
	rows, err := s.store.ListByParent(ctx, parent)
	if err != nil {
		return nil, err
	}
	return s.sign(ctx, rows), nil
}

// Recent returns the newest files across all parents with signed URLs.
func (s *Service) Recent(ctx context.Context, limit int) ([]Listed, error) {
	rows, err := s.store.ListRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return s.sign(ctx, rows), nil
}

func (s *Service) sign(ctx context.Context, rows []*model.FileUpload) []Listed {
	out := make([]Listed, 0, len(rows))
	for _, r := range rows {
		url, err := s.bucket.SignedURL(ctx, r.StoragePath, s.signedTTL)
		if err != nil {
			logger.Get().Warn("sign download url", zap.String("upload_id", r.ID), zap.Error(err))
		}
		out = append(out, Listed{FileUpload: r, DownloadURL: url})
	}
	return out
}

// Delete removes the object first, then the row.  A missing object counts
// as removed.  If the row delete fails after the object is gone, the row is
// left dangling and logged.
func (s *Service) Delete(ctx context.Context, id string) error {
	rec, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.bucket.Delete(ctx, rec.StoragePath); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
		return fmt.Errorf("delete object: %w", err)
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		logger.Get().Error("dangling upload row",
			zap.String("upload_id", id), zap.String("path", rec.StoragePath), zap.Error(err))
		return fmt.Errorf("delete row: %w", err)
	}
	return nil
}
