package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/logger"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/model"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/repository"
	"github.com/drkishanbhalaniweb-create/militarydisabilitynexus-sub001/internal/utils"
)

// AdminStore looks up staff logins.
type AdminStore interface {
	GetByEmail(ctx context.Context, email string) (*model.AdminUser, error)
}

// AuthHandler issues admin access tokens.
type AuthHandler struct {
	Admins    AdminStore
	JWTSecret string
	TTLMin    int
}

func NewAuthHandler(admins AdminStore, jwtSecret string, ttlMin int) *AuthHandler {
	return &AuthHandler{Admins: admins, JWTSecret: jwtSecret, TTLMin: ttlMin}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /v1/admin/login.  Unknown email, wrong password and
// inactive accounts all answer 401 alike.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "email/password required")
	}

	ctx, cancel := withTimeout(c)
	defer cancel()
	u, err := h.Admins.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		logger.Get().Error("admin lookup", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}
	if u == nil || !u.IsActive || !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	tok, err := utils.NewAccessToken(h.JWTSecret, u.ID, u.Role, h.TTLMin)
	if err != nil {
		logger.Get().Error("sign admin token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}
	return c.JSON(http.StatusOK, tok)
}
