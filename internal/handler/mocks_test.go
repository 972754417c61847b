package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/email"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/model"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/queue"
)

// newJSONContext builds an echo context for a JSON request.
func newJSONContext(method, path string, body any) (echo.Context, *httptest.ResponseRecorder) {
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		bs, _ := json.Marshal(b)
		r = bytes.NewReader(bs)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

type mockContactStore struct {
	CreateFunc     func(ctx context.Context, c *model.Contact) error
	ListRecentFunc func(ctx context.Context, limit int) ([]*model.Contact, error)
	created        []*model.Contact
}

func (m *mockContactStore) Create(ctx context.Context, c *model.Contact) error {
	m.created = append(m.created, c)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, c)
	}
	c.ID = "contact-1"
	c.CreatedAt = time.Now().UTC()
	return nil
}

func (m *mockContactStore) ListRecent(ctx context.Context, limit int) ([]*model.Contact, error) {
	return m.ListRecentFunc(ctx, limit)
}

type mockSubmissionStore struct {
	CreateFunc func(ctx context.Context, s *model.FormSubmission) error
	created    []*model.FormSubmission
}

func (m *mockSubmissionStore) Create(ctx context.Context, s *model.FormSubmission) error {
	m.created = append(m.created, s)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, s)
	}
	s.ID = "sub-1"
	return nil
}

func (m *mockSubmissionStore) GetByID(context.Context, string) (*model.FormSubmission, error) {
	return nil, nil
}

func (m *mockSubmissionStore) ListRecent(context.Context, model.FormType, int) ([]*model.FormSubmission, error) {
	return nil, nil
}

type mockDiagnostics struct {
	MarkConvertedFunc func(ctx context.Context, sessionID, submissionID string) error
	calls             [][2]string
}

func (m *mockDiagnostics) MarkConverted(ctx context.Context, sessionID, submissionID string) error {
	m.calls = append(m.calls, [2]string{sessionID, submissionID})
	if m.MarkConvertedFunc != nil {
		return m.MarkConvertedFunc(ctx, sessionID, submissionID)
	}
	return nil
}

// mockPublisher records events; publish runs in a goroutine so callers wait.
type mockPublisher struct {
	mu     sync.Mutex
	events []queue.LeadSubmittedEvent
	done   chan struct{}
}

func newMockPublisher() *mockPublisher { return &mockPublisher{done: make(chan struct{}, 8)} }

func (m *mockPublisher) PublishLead(_ context.Context, ev queue.LeadSubmittedEvent) error {
	m.mu.Lock()
	m.events = append(m.events, ev)
	m.mu.Unlock()
	m.done <- struct{}{}
	return nil
}

func (m *mockPublisher) wait(t *testing.T) queue.LeadSubmittedEvent {
	t.Helper()
	select {
	case <-m.done:
	case <-time.After(2 * time.Second):
		t.Fatal("no lead event published")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.events[len(m.events)-1]
}

type mockSender struct {
	SendFunc func(ctx context.Context, msg email.Message) (string, error)
	sent     []email.Message
}

func (m *mockSender) Send(ctx context.Context, msg email.Message) (string, error) {
	m.sent = append(m.sent, msg)
	if m.SendFunc != nil {
		return m.SendFunc(ctx, msg)
	}
	return "msg_1", nil
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}

