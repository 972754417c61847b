package upload

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/config"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/model"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/repository"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/storage"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/validate"
)

type mockStore struct {
	CreateFunc       func(ctx context.Context, f *model.FileUpload) error
	GetByIDFunc      func(ctx context.Context, id string) (*model.FileUpload, error)
	ListByParentFunc func(ctx context.Context, p model.Parent) ([]*model.FileUpload, error)
	ListRecentFunc   func(ctx context.Context, limit int) ([]*model.FileUpload, error)
	DeleteFunc       func(ctx context.Context, id string) error
}

func (m *mockStore) Create(ctx context.Context, f *model.FileUpload) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, f)
	}
	return nil
}

func (m *mockStore) GetByID(ctx context.Context, id string) (*model.FileUpload, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockStore) ListByParent(ctx context.Context, p model.Parent) ([]*model.FileUpload, error) {
	return m.ListByParentFunc(ctx, p)
}

func (m *mockStore) ListRecent(ctx context.Context, limit int) ([]*model.FileUpload, error) {
	return m.ListRecentFunc(ctx, limit)
}

func (m *mockStore) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type mockBucket struct {
	calls      []string
	UploadFunc func(path string) error
	DeleteFunc func(path string) error
}

func (b *mockBucket) Upload(_ context.Context, path, _ string, r io.Reader) (string, error) {
	b.calls = append(b.calls, "upload:"+path)
	_, _ = io.ReadAll(r)
	if b.UploadFunc != nil {
		if err := b.UploadFunc(path); err != nil {
			return "", err
		}
	}
	return path, nil
}

func (b *mockBucket) SignedURL(_ context.Context, path string, _ time.Duration) (string, error) {
	return "https://signed.example/" + path, nil
}

func (b *mockBucket) Delete(_ context.Context, path string) error {
	b.calls = append(b.calls, "delete:"+path)
	if b.DeleteFunc != nil {
		return b.DeleteFunc(path)
	}
	return nil
}

func file(name, mime string, size int64) File {
	return File{
		Filename: name,
		MimeType: mime,
		Size:     size,
		Open:     func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader("data")), nil },
	}
}

func newService(store Store, bucket storage.Bucket) *Service {
	return NewService(store, bucket, config.UploadConfig{
		AcceptedTypes: "image/*,.pdf,.doc,.docx,.txt",
		MaxSizeInMB:   50,
	}, time.Minute)
}

var parent = model.Parent{Kind: model.ParentSubmission, ID: "sub-1"}

func TestUploadWritesObjectThenRow(t *testing.T) {
	var saved *model.FileUpload
	bucket := &mockBucket{}
	svc := newService(&mockStore{CreateFunc: func(_ context.Context, f *model.FileUpload) error {
		if len(bucket.calls) != 1 {
			t.Errorf("row inserted before object write")
		}
		saved = f
		return nil
	}}, bucket)

	rec, err := svc.Upload(context.Background(), parent, Options{IsPHI: true}, file("dd214.pdf", "application/pdf", 1024))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if rec != saved || rec.UploadStatus != model.UploadCompleted || rec.FileCategory != model.CategoryDocument {
		t.Fatalf("record = %+v", rec)
	}
	if rec.FormSubmissionID == nil || *rec.FormSubmissionID != "sub-1" || rec.ContactID != nil {
		t.Fatalf("parent not set: %+v", rec)
	}
	if !strings.HasPrefix(rec.StoragePath, "uploads/submission/sub-1/"+rec.ID+"-") {
		t.Fatalf("storage path = %q", rec.StoragePath)
	}
}

func TestUploadRejectsBeforeStorage(t *testing.T) {
	bucket := &mockBucket{}
	svc := newService(&mockStore{}, bucket)

	_, err := svc.Upload(context.Background(), parent, Options{}, file("virus.exe", "application/octet-stream", 10))
	if !validate.IsValidation(err) || err.Error() != "File type not allowed" {
		t.Fatalf("err = %v", err)
	}
	_, err = svc.Upload(context.Background(), parent, Options{}, file("scan.pdf", "application/pdf", 60*1024*1024))
	if err == nil || err.Error() != "File size exceeds 50MB limit" {
		t.Fatalf("err = %v", err)
	}
	if len(bucket.calls) != 0 {
		t.Fatalf("bucket touched: %v", bucket.calls)
	}
}

func TestUploadRemovesObjectWhenInsertFails(t *testing.T) {
	bucket := &mockBucket{}
	svc := newService(&mockStore{CreateFunc: func(context.Context, *model.FileUpload) error {
		return errors.New("db down")
	}}, bucket)

	if _, err := svc.Upload(context.Background(), parent, Options{}, file("a.txt", "text/plain", 3)); err == nil {
		t.Fatal("expected error")
	}
	if len(bucket.calls) != 2 || !strings.HasPrefix(bucket.calls[1], "delete:") {
		t.Fatalf("calls = %v", bucket.calls)
	}
}

func TestDeleteObjectFirstThenRow(t *testing.T) {
	var order []string
	bucket := &mockBucket{DeleteFunc: func(string) error {
		order = append(order, "object")
		return storage.ErrObjectNotFound
	}}
	svc := newService(&mockStore{
		GetByIDFunc: func(context.Context, string) (*model.FileUpload, error) {
			return &model.FileUpload{ID: "u1", StoragePath: "uploads/x"}, nil
		},
		DeleteFunc: func(context.Context, string) error {
			order = append(order, "row")
			return nil
		},
	}, bucket)

	if err := svc.Delete(context.Background(), "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if strings.Join(order, ",") != "object,row" {
		t.Fatalf("order = %v", order)
	}
}

func TestDeleteKeepsRowWhenObjectDeleteFails(t *testing.T) {
	rowDeleted := false
	svc := newService(&mockStore{
		GetByIDFunc: func(context.Context, string) (*model.FileUpload, error) {
			return &model.FileUpload{ID: "u1", StoragePath: "uploads/x"}, nil
		},
		DeleteFunc: func(context.Context, string) error { rowDeleted = true; return nil },
	}, &mockBucket{DeleteFunc: func(string) error { return errors.New("permission denied") }})

	if err := svc.Delete(context.Background(), "u1"); err == nil {
		t.Fatal("expected error")
	}
	if rowDeleted {
		t.Fatal("row deleted although object delete failed")
	}
}

func TestDeleteUnknownID(t *testing.T) {
	svc := newService(&mockStore{GetByIDFunc: func(context.Context, string) (*model.FileUpload, error) {
		return nil, repository.ErrNotFound
	}}, &mockBucket{})
	if err := svc.Delete(context.Background(), "nope"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestListSignsURLs(t *testing.T) {
	svc := newService(&mockStore{ListByParentFunc: func(context.Context, model.Parent) ([]*model.FileUpload, error) {
		return []*model.FileUpload{{ID: "u1", StoragePath: "uploads/a"}}, nil
	}}, &mockBucket{})
	got, err := svc.List(context.Background(), parent)
	if err != nil || len(got) != 1 || got[0].DownloadURL != "https://signed.example/uploads/a" {
		t.Fatalf("List = %+v, %v", got, err)
	}
}

func TestRecentSignsURLs(t *testing.T) {
	var gotLimit int
	svc := newService(&mockStore{ListRecentFunc: func(_ context.Context, limit int) ([]*model.FileUpload, error) {
		gotLimit = limit
		return []*model.FileUpload{{ID: "u1", StoragePath: "uploads/a"}, {ID: "u2", StoragePath: "uploads/b"}}, nil
	}}, &mockBucket{})
	got, err := svc.Recent(context.Background(), 25)
	if err != nil || len(got) != 2 || got[1].DownloadURL != "https://signed.example/uploads/b" {
		t.Fatalf("Recent = %+v, %v", got, err)
	}
	if gotLimit != 25 {
		t.Fatalf("limit = %d", gotLimit)
	}
}
