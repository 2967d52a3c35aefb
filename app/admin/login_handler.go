package admin

import (
	"context"
	"strings"
	"time"

	"itemshare/internal/auth"
	"itemshare/pkg/httperror"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const adminSubject = "admin"

type LoginRequest struct {
	Password string `json:"password" form:"password"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

type LoginHandler struct {
	passwordHash []byte
	secret       string
	expiry       time.Duration
}

// NewLoginHandler checks passwords against a bcrypt hash and issues admin
// tokens signed with secret. Login is disabled while either is empty.
func NewLoginHandler(passwordHash, secret string) *LoginHandler {
	return &LoginHandler{
		passwordHash: []byte(passwordHash),
		secret:       secret,
		expiry:       auth.TokenExpiry,
	}
}

func (h *LoginHandler) Handle(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if len(h.passwordHash) == 0 || h.secret == "" {
		return nil, httperror.ServiceUnavailable(
			"admin.login.disabled",
			"Admin login is not configured",
			nil,
		)
	}

	if strings.TrimSpace(req.Password) == "" {
		return nil, httperror.BadRequest(
			"admin.login.invalid_body",
			"Password is required",
			nil,
		)
	}

	if err := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(req.Password)); err != nil {
		zap.L().Warn("Admin login failed", zap.Error(err))
		return nil, httperror.Unauthorized(
			"admin.login.invalid_credentials",
			"Invalid credentials",
			nil,
		)
	}

	token, err := auth.GenerateToken(h.secret, adminSubject, auth.RoleAdmin, h.expiry)
	if err != nil {
		zap.L().Error("Failed to sign admin token", zap.Error(err))
		return nil, httperror.InternalServerError(
			"admin.login.token_failed",
			"Could not issue token",
			nil,
		)
	}

	zap.L().Info("Admin logged in")

	return &LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(h.expiry).UTC(),
	}, nil
}
