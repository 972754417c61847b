package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/model"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/queue"
)

// ContactStore persists contacts.
type ContactStore interface {
	Create(ctx context.Context, c *model.Contact) error
	ListRecent(ctx context.Context, limit int) ([]*model.Contact, error)
}

// ContactHandler serves the contact page form.
type ContactHandler struct {
	Store  ContactStore
	Events LeadPublisher
}

func NewContactHandler(store ContactStore, events LeadPublisher) *ContactHandler {
	return &ContactHandler{Store: store, Events: events}
}

type contactReq struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Phone        string   `json:"phone"`
	ServiceTypes []string `json:"serviceTypes"`
	Message      string   `json:"message"`
}

// Create handles POST /v1/contacts.  Nothing is stored unless the form
// validates, including at least one selected service.
func (h *ContactHandler) Create(c echo.Context) error {
	var req contactReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	contact := &model.Contact{
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		ServiceTypes: req.ServiceTypes,
		Message:      req.Message,
	}
	contact.Normalize()
	if err := contact.Validate(); err != nil {
		return respondError(c, err, "")
	}

	ctx, cancel := withTimeout(c)
	defer cancel()
	if err := h.Store.Create(ctx, contact); err != nil {
		return respondError(c, err, "Failed to submit contact form")
	}

	publish(h.Events, queue.ContactEvent(contact))
	return c.JSON(http.StatusCreated, contact)
}

// List handles GET /v1/admin/contacts.
func (h *ContactHandler) List(c echo.Context) error {
	ctx, cancel := withTimeout(c)
	defer cancel()
	rows, err := h.Store.ListRecent(ctx, queryLimit(c, 50, 200))
	if err != nil {
		return respondError(c, err, "Failed to load contacts")
	}
	if rows == nil {
		rows = []*model.Contact{}
	}
	return c.JSON(http.StatusOK, rows)
}
