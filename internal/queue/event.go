// Package queue defines the lead.submitted message and its consumer.
package queue

import (
	"time"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/model"
)

// LeadSubmittedQueue is the durable queue every new lead is published to.
const LeadSubmittedQueue = "lead.submitted"

// Lead kinds.
const (
	KindContact    = "contact"
	KindSubmission = "submission"
)

// LeadSubmittedEvent is published after a contact or form submission is
// stored.  It carries enough to alert staff without querying the database.
type LeadSubmittedEvent struct {
	Kind         string    `json:"kind"`
	ID           string    `json:"id"`
	FormType     string    `json:"form_type,omitempty"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	ServiceTypes []string  `json:"service_types,omitempty"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// ContactEvent builds the event for a stored contact.
func ContactEvent(c *model.Contact) LeadSubmittedEvent {
	return LeadSubmittedEvent{
		Kind:         KindContact,
		ID:           c.ID,
		Name:         c.Name,
		Email:        c.Email,
		Phone:        c.Phone,
		ServiceTypes: c.ServiceTypes,
		SubmittedAt:  c.CreatedAt,
	}
}

// SubmissionEvent builds the event for a stored form submission.  Quick
// intakes report the requested service.
func SubmissionEvent(s *model.FormSubmission) LeadSubmittedEvent {
	ev := LeadSubmittedEvent{
		Kind:        KindSubmission,
		ID:          s.ID,
		FormType:    string(s.FormType),
		Name:        s.FullName,
		Email:       s.Email,
		Phone:       s.Phone,
		SubmittedAt: s.CreatedAt,
	}
	if qi, ok := s.FormData.(model.QuickIntakeData); ok && qi.ServiceNeeded != "" {
		ev.ServiceTypes = []string{qi.ServiceNeeded}
	}
	return ev
}
