package model

import (
	"strings"
	"time"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/validate"
)

// Contact is a free-text inquiry from the contact page.  Rows are created on
// submit and never mutated; the id is handed back so uploads can attach to
// the inquiry.
//
// Fields:
//
//	ID           – primary key (UUID).
//	Name         – sender's name.
//	Email        – reply address.
//	Phone        – optional phone number.
//	ServiceTypes – services the sender is asking about (at least one).
//	Message      – free-text body.
//	CreatedAt    – creation timestamp.
type Contact struct {
	ID           string    `json:"id"`            // contacts.id
	Name         string    `json:"name"`          // contacts.name
	Email        string    `json:"email"`         // contacts.email
	Phone        string    `json:"phone"`         // contacts.phone
	ServiceTypes []string  `json:"service_types"` // contacts.service_types (JSON array)
	Message      string    `json:"message"`       // contacts.message
	CreatedAt    time.Time `json:"created_at"`    // contacts.created_at
}

// Normalize trims inputs and drops blank or repeated service types.
func (c *Contact) Normalize() {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Phone = strings.TrimSpace(c.Phone)
	c.Message = strings.TrimSpace(c.Message)
	seen := make(map[string]struct{}, len(c.ServiceTypes))
	out := c.ServiceTypes[:0]
	for _, s := range c.ServiceTypes {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	c.ServiceTypes = out
}

// Validate applies the contact form rules.  A contact with no selected
// service is rejected before anything reaches the store.
func (c *Contact) Validate() error {
	if len(c.ServiceTypes) == 0 {
		return validate.Fail("serviceTypes", "Please select at least one service")
	}
	return validate.First(
		validate.Required("name", c.Name),
		validate.Email("email", c.Email),
		validate.Required("message", c.Message),
	)
}
