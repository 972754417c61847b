package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"
)

// GCS stores objects in a Google Cloud Storage bucket.
type GCS struct {
	client *storage.Client
	bucket *storage.BucketHandle
	name   string
}

// NewGCS uses application default credentials.
func NewGCS(ctx context.Context, bucket string) (*GCS, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	return &GCS{client: client, bucket: client.Bucket(bucket), name: bucket}, nil
}

// Upload writes r to objectPath only if no object exists there yet.
func (g *GCS) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	w := g.bucket.Object(objectPath).If(storage.Conditions{DoesNotExist: true}).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write gcs object %s: %w", objectPath, err)
	}
	if err := w.Close(); err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == http.StatusPreconditionFailed {
			return "", fmt.Errorf("gcs object %s already exists: %w", objectPath, err)
		}
		return "", fmt.Errorf("finalize gcs object %s: %w", objectPath, err)
	}
	return objectPath, nil
}

// SignedURL returns a V4 signed GET URL.
func (g *GCS) SignedURL(_ context.Context, objectPath string, ttl time.Duration) (string, error) {
	return g.bucket.SignedURL(objectPath, &storage.SignedURLOptions{
		Scheme:  storage.SigningSchemeV4,
		Method:  http.MethodGet,
		Expires: time.Now().Add(ttl),
	})
}

// Delete removes objectPath.  A missing object yields ErrObjectNotFound.
func (g *GCS) Delete(ctx context.Context, objectPath string) error {
	err := g.bucket.Object(objectPath).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, objectPath)
	}
	return err
}

// Close releases the client.
func (g *GCS) Close() error { return g.client.Close() }
