// Package storage puts uploaded documents into an object bucket.  Two
// backends exist, GCS and S3, chosen by STORAGE_BACKEND.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/config"
)

// ErrObjectNotFound is returned by Delete when the object is already gone.
// Callers decide whether that counts as success.
var ErrObjectNotFound = errors.New("storage: object not found")

// Bucket is the narrow storage contract used by the upload service.
type Bucket interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
	SignedURL(ctx context.Context, objectPath string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, objectPath string) error
}

// Open builds the backend named in cfg.Backend.
func Open(ctx context.Context, cfg config.StorageConfig) (Bucket, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "gcs":
		return NewGCS(ctx, cfg.Bucket)
	case "s3":
		return NewS3(ctx, cfg.Bucket, cfg.Region, cfg.Endpoint)
	}
	return nil, fmt.Errorf("unsupported STORAGE_BACKEND %q", cfg.Backend)
}

// ObjectPath builds uploads/{kind}/{parentID}/{uniqueID}-{filename}.
func ObjectPath(kind, parentID, uniqueID, filename string) string {
	return path.Join("uploads", kind, parentID, uniqueID+"-"+SanitizeFilename(filename))
}

// SanitizeFilename keeps letters, digits, dot, dash and underscore; anything
// else becomes "_".  Directory parts are dropped.
func SanitizeFilename(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" || out == "_" {
		return "file"
	}
	if len(out) > 120 {
		out = out[len(out)-120:]
	}
	return out
}
