package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/logger"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/model"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/queue"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/repository"
)

// SubmissionStore persists form submissions.
type SubmissionStore interface {
	Create(ctx context.Context, s *model.FormSubmission) error
	GetByID(ctx context.Context, id string) (*model.FormSubmission, error)
	ListRecent(ctx context.Context, formType model.FormType, limit int) ([]*model.FormSubmission, error)
}

// DiagnosticStore links self-assessments to the booking they produced.
type DiagnosticStore interface {
	MarkConverted(ctx context.Context, sessionID, submissionID string) error
}

// SubmissionHandler serves every intake form.
type SubmissionHandler struct {
	Store       SubmissionStore
	Diagnostics DiagnosticStore
	Events      LeadPublisher
}

func NewSubmissionHandler(store SubmissionStore, diagnostics DiagnosticStore, events LeadPublisher) *SubmissionHandler {
	return &SubmissionHandler{Store: store, Diagnostics: diagnostics, Events: events}
}

type submissionReq struct {
	FormType       string          `json:"formType"`
	FullName       string          `json:"fullName"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	FormData       json.RawMessage `json:"formData"`
	RequiresUpload bool            `json:"requiresUpload"`
}

// Create handles POST /v1/form-submissions.  formData is decoded into the
// variant for formType before anything is stored.
func (h *SubmissionHandler) Create(c echo.Context) error {
	var req submissionReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	formType, err := model.ParseFormType(req.FormType)
	if err != nil {
		return respondError(c, err, "")
	}
	data, err := model.DecodeFormData(formType, req.FormData)
	if err != nil {
		return respondError(c, err, "")
	}
	sub := &model.FormSubmission{
		FormType:       formType,
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		FormData:       data,
		RequiresUpload: req.RequiresUpload,
	}
	if err := sub.Validate(); err != nil {
		return respondError(c, err, "")
	}

	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Store.Create(ctx, sub); err != nil {
		return respondError(c, err, "Failed to submit form", zap.String("form_type", string(formType)))
	}

	if cr, ok := data.(model.ClaimReadinessData); ok && cr.DiagnosticSessionID != "" && h.Diagnostics != nil {
		h.markConverted(ctx, cr.DiagnosticSessionID, sub.ID)
	}
	publish(h.Events, queue.SubmissionEvent(sub))
	return c.JSON(http.StatusCreated, sub)
}

func (h *SubmissionHandler) markConverted(ctx context.Context, sessionID, submissionID string) {
	err := h.Diagnostics.MarkConverted(ctx, sessionID, submissionID)
	switch {
	case err == nil:
	case errors.Is(err, repository.ErrNotFound):
		logger.Get().Warn("diagnostic session not found",
			zap.String("session_id", sessionID), zap.String("submission_id", submissionID))
	default:
		logger.Get().Error("mark diagnostic session converted",
			zap.String("session_id", sessionID), zap.String("submission_id", submissionID), zap.Error(err))
	}
}

// Get handles GET /v1/admin/submissions/:id.
func (h *SubmissionHandler) Get(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	sub, err := h.Store.GetByID(ctx, c.Param("id"))
	if err != nil {
		return respondError(c, err, "Failed to load submission")
	}
	return c.JSON(http.StatusOK, sub)
}

// List handles GET /v1/admin/submissions?formType=&limit=.
func (h *SubmissionHandler) List(c echo.Context) error {
	var formType model.FormType
	if v := c.QueryParam("formType"); v != "" {
		ft, err := model.ParseFormType(v)
		if err != nil {
			return respondError(c, err, "")
		}
		formType = ft
	}
	ctx, cancel := withTimeout(c)
	defer cancel()
	rows, err := h.Store.ListRecent(ctx, formType, queryLimit(c, 50, 200))
	if err != nil {
		return respondError(c, err, "Failed to load submissions")
	}
	if rows == nil {
		rows = []*model.FormSubmission{}
	}
	return c.JSON(http.StatusOK, rows)
}
