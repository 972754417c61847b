package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/model"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/repository"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/upload"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/validate"
)

type mockUploads struct {
	UploadFunc func(ctx context.Context, parent model.Parent, opts upload.Options, f upload.File) (*model.FileUpload, error)
	ListFunc   func(ctx context.Context, parent model.Parent) ([]upload.Listed, error)
	RecentFunc func(ctx context.Context, limit int) ([]upload.Listed, error)
	DeleteFunc func(ctx context.Context, id string) error
	order      []string
}

func (m *mockUploads) Upload(ctx context.Context, parent model.Parent, opts upload.Options, f upload.File) (*model.FileUpload, error) {
	m.order = append(m.order, f.Filename)
	return m.UploadFunc(ctx, parent, opts, f)
}

func (m *mockUploads) List(ctx context.Context, parent model.Parent) ([]upload.Listed, error) {
	return m.ListFunc(ctx, parent)
}

func (m *mockUploads) Recent(ctx context.Context, limit int) ([]upload.Listed, error) {
	return m.RecentFunc(ctx, limit)
}

func (m *mockUploads) Delete(ctx context.Context, id string) error { return m.DeleteFunc(ctx, id) }

type part struct {
	name, mime, body string
}

func multipartRequest(t *testing.T, fields map[string]string, files []part) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="files"; filename="`+f.name+`"`)
		h.Set("Content-Type", f.mime)
		pw, err := w.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		_, _ = io.WriteString(pw, f.body)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/uploads", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestUploadBatchContinuesPastFailure(t *testing.T) {
	uploads := &mockUploads{UploadFunc: func(_ context.Context, p model.Parent, opts upload.Options, f upload.File) (*model.FileUpload, error) {
		if f.Filename == "b.exe" {
			return nil, validate.Fail("file", "File type not accepted. Accepted types: image/*,.pdf")
		}
		if p.Kind != model.ParentSubmission || p.ID != "sub-1" || !opts.IsPHI {
			t.Errorf("parent = %+v opts = %+v", p, opts)
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		body, _ := io.ReadAll(rc)
		if len(body) == 0 {
			t.Errorf("%s opened empty", f.Filename)
		}
		return &model.FileUpload{ID: "up-" + f.Filename, OriginalFilename: f.Filename, UploadStatus: model.UploadCompleted}, nil
	}}
	h := NewUploadHandler(uploads, 10)

	req := multipartRequest(t,
		map[string]string{"parentType": "submission", "parentId": "sub-1", "category": "medical_record", "isPhi": "true"},
		[]part{
			{"a.pdf", "application/pdf", "%PDF-1.4"},
			{"b.exe", "application/octet-stream", "MZ"},
			{"c.png", "image/png", "\x89PNG"},
		})
	rec := httptest.NewRecorder()
	if err := h.Create(echo.New().NewContext(req, rec)); err != nil {
		t.Fatal(err)
	}
	assertStatus(t, rec, http.StatusOK)

	var body struct {
		Files []uploadResult `json:"files"`
	}
	decodeBody(t, rec, &body)
	want := []model.UploadStatus{model.UploadCompleted, model.UploadError, model.UploadCompleted}
	if len(body.Files) != len(want) {
		t.Fatalf("files = %+v", body.Files)
	}
	for i, f := range body.Files {
		if f.Status != want[i] {
			t.Errorf("%s status = %s, want %s", f.Filename, f.Status, want[i])
		}
		if f.LocalID == "" {
			t.Errorf("%s has no local id", f.Filename)
		}
	}
	if body.Files[1].Error == "" || body.Files[1].Error == "Upload failed" {
		t.Errorf("validation message lost: %q", body.Files[1].Error)
	}
	if got := uploads.order; len(got) != 3 || got[0] != "a.pdf" || got[2] != "c.png" {
		t.Fatalf("upload order = %v", got)
	}
}

func TestUploadHidesStorageErrors(t *testing.T) {
	uploads := &mockUploads{UploadFunc: func(context.Context, model.Parent, upload.Options, upload.File) (*model.FileUpload, error) {
		return nil, errors.New("googleapi: Error 403: bucket access denied")
	}}
	h := NewUploadHandler(uploads, 10)
	req := multipartRequest(t, map[string]string{"parentType": "contact", "parentId": "c-1"},
		[]part{{"a.pdf", "application/pdf", "x"}})
	rec := httptest.NewRecorder()
	if err := h.Create(echo.New().NewContext(req, rec)); err != nil {
		t.Fatal(err)
	}
	assertStatus(t, rec, http.StatusOK)
	if bytes.Contains(rec.Body.Bytes(), []byte("bucket access denied")) {
		t.Fatalf("storage detail leaked: %s", rec.Body.String())
	}
}

func TestUploadRejectsBadRequests(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		files  []part
	}{
		{"unknown parent", map[string]string{"parentType": "payment", "parentId": "p"}, []part{{"a.pdf", "application/pdf", "x"}}},
		{"missing parent id", map[string]string{"parentType": "contact"}, []part{{"a.pdf", "application/pdf", "x"}}},
		{"no files", map[string]string{"parentType": "contact", "parentId": "c-1"}, nil},
		{"too many files", map[string]string{"parentType": "contact", "parentId": "c-1"}, []part{
			{"a.pdf", "application/pdf", "x"}, {"b.pdf", "application/pdf", "x"}, {"c.pdf", "application/pdf", "x"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uploads := &mockUploads{UploadFunc: func(context.Context, model.Parent, upload.Options, upload.File) (*model.FileUpload, error) {
				t.Fatal("upload attempted")
				return nil, nil
			}}
			h := NewUploadHandler(uploads, 2)
			rec := httptest.NewRecorder()
			if err := h.Create(echo.New().NewContext(multipartRequest(t, tt.fields, tt.files), rec)); err != nil {
				t.Fatal(err)
			}
			assertStatus(t, rec, http.StatusBadRequest)
		})
	}
}

func TestDeleteUpload(t *testing.T) {
	var deleted []string
	uploads := &mockUploads{DeleteFunc: func(_ context.Context, id string) error {
		if id == "missing" {
			return repository.ErrNotFound
		}
		deleted = append(deleted, id)
		return nil
	}}
	h := NewUploadHandler(uploads, 10)
	e := echo.New()
	e.DELETE("/v1/admin/uploads/:id", h.Delete)

	tests := []struct {
		path string
		want int
	}{
		{"/v1/admin/uploads/up-1", http.StatusBadRequest},
		{"/v1/admin/uploads/up-1?confirm=true", http.StatusNoContent},
		{"/v1/admin/uploads/missing?confirm=true", http.StatusNotFound},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, tt.path, nil))
		if rec.Code != tt.want {
			t.Errorf("%s: status = %d, want %d", tt.path, rec.Code, tt.want)
		}
	}
	if len(deleted) != 1 || deleted[0] != "up-1" {
		t.Fatalf("deleted = %v", deleted)
	}
}

func TestListUploads(t *testing.T) {
	var recentLimit int
	var listed model.Parent
	uploads := &mockUploads{
		RecentFunc: func(_ context.Context, limit int) ([]upload.Listed, error) {
			recentLimit = limit
			return nil, nil
		},
		ListFunc: func(_ context.Context, p model.Parent) ([]upload.Listed, error) {
			listed = p
			return []upload.Listed{{FileUpload: &model.FileUpload{ID: "up-1"}, DownloadURL: "https://signed.example/a"}}, nil
		},
	}
	e := echo.New()
	e.GET("/v1/admin/uploads", NewUploadHandler(uploads, 10).List)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/admin/uploads?limit=5", nil))
	assertStatus(t, rec, http.StatusOK)
	if recentLimit != 5 || rec.Body.String() != "[]\n" {
		t.Fatalf("recent limit = %d body = %q", recentLimit, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/admin/uploads?parentType=form_submission&parentId=sub-1", nil))
	assertStatus(t, rec, http.StatusOK)
	if listed.Kind != model.ParentSubmission || listed.ID != "sub-1" {
		t.Fatalf("listed parent = %+v", listed)
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/admin/uploads?parentType=contact", nil))
	assertStatus(t, rec, http.StatusBadRequest)
}
