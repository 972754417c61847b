package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/database"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/model"
)

// ContactRepo persists contact-page inquiries.
type ContactRepo struct{ db *database.DB }

func NewContactRepo(db *database.DB) *ContactRepo { return &ContactRepo{db: db} }

// Create inserts c, assigning ID and CreatedAt.
func (r *ContactRepo) Create(ctx context.Context, c *model.Contact) error {
	services, err := json.Marshal(c.ServiceTypes)
	if err != nil {
		return err
	}
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now().UTC()

	q := r.db.Rebind(`INSERT INTO contacts (id, name, email, phone, service_types, message, created_at)
	                  VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err = r.db.ExecContext(ctx, q, c.ID, c.Name, c.Email, c.Phone, string(services), c.Message, c.CreatedAt)
	return err
}

// ListRecent returns the newest contacts first.
func (r *ContactRepo) ListRecent(ctx context.Context, limit int) ([]*model.Contact, error) {
	q := r.db.Rebind(`SELECT id, name, email, phone, service_types, message, created_at
	                  FROM contacts ORDER BY created_at DESC LIMIT ?`)
	rows, err := r.db.QueryContext(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.Contact
	for rows.Next() {
		c := new(model.Contact)
		var services []byte
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &services, &c.Message, &c.CreatedAt); err != nil {
			return nil, err
		}
		if len(services) > 0 {
			if err := json.Unmarshal(services, &c.ServiceTypes); err != nil {
				return nil, err
			}
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
