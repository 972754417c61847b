package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/database"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/model"
)

// AdminRepo reads staff logins.
type AdminRepo struct{ db *database.DB }

func NewAdminRepo(db *database.DB) *AdminRepo { return &AdminRepo{db: db} }

// GetByEmail fetches an admin by normalized email.
func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.AdminUser
	err := r.db.QueryRowContext(ctx,
		r.db.Rebind("SELECT id,email,password_hash,role,is_active FROM admin_users WHERE email=? LIMIT 1"),
		email).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
