package admin

import (
	"context"
	"net/http"
	"testing"

	"itemshare/internal/auth"
	"itemshare/pkg/httperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func statusOf(t *testing.T, err error) (int, string) {
	t.Helper()
	var httpErr *httperror.Error
	require.ErrorAs(t, err, &httpErr)
	return httpErr.Status, httpErr.Code
}

func TestLogin_IssuesAdminToken(t *testing.T) {
	handler := NewLoginHandler(hash(t, "letmein"), "secret")

	res, err := handler.Handle(context.Background(), &LoginRequest{Password: "letmein"})
	require.NoError(t, err)

	claims, err := auth.ValidateToken("secret", res.Token)
	require.NoError(t, err)
	assert.Equal(t, auth.RoleAdmin, claims.Role)
	assert.False(t, res.ExpiresAt.IsZero())
}

func TestLogin_WrongPassword(t *testing.T) {
	handler := NewLoginHandler(hash(t, "letmein"), "secret")

	_, err := handler.Handle(context.Background(), &LoginRequest{Password: "guess"})

	status, code := statusOf(t, err)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "admin.login.invalid_credentials", code)
}

func TestLogin_EmptyPassword(t *testing.T) {
	handler := NewLoginHandler(hash(t, "letmein"), "secret")

	_, err := handler.Handle(context.Background(), &LoginRequest{Password: "  "})

	status, _ := statusOf(t, err)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestLogin_Disabled(t *testing.T) {
	for name, handler := range map[string]*LoginHandler{
		"no hash":   NewLoginHandler("", "secret"),
		"no secret": NewLoginHandler(hash(t, "letmein"), ""),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := handler.Handle(context.Background(), &LoginRequest{Password: "letmein"})

			status, code := statusOf(t, err)
			assert.Equal(t, http.StatusServiceUnavailable, status)
			assert.Equal(t, "admin.login.disabled", code)
		})
	}
}
