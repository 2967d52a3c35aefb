package middleware

import (
	"context"
	"errors"
	"strings"

	"itemshare/internal/auth"
	"itemshare/pkg/httperror"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Authorizer decides whether a bearer token may use admin routes.
type Authorizer interface {
	Authorize(ctx context.Context, token string) (*auth.Claims, error)
}

type claimsKey struct{}

// NewAdminGate rejects requests without a bearer token the authorizer
// accepts and stores the claims in the user context.
func NewAdminGate(authorizer Authorizer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return deny(c, httperror.Unauthorized(
				"admin.gate.missing_token",
				"Missing or invalid authorization header",
				nil,
			))
		}

		userCtx := c.UserContext()
		if userCtx == nil {
			userCtx = context.Background()
		}

		claims, err := authorizer.Authorize(userCtx, strings.TrimSpace(token))
		if errors.Is(err, auth.ErrForbidden) {
			return deny(c, httperror.Forbidden(
				"admin.gate.forbidden",
				"Insufficient permissions",
				nil,
			))
		}
		if err != nil {
			zap.L().Warn("Admin token rejected", zap.String("ip", c.IP()), zap.Error(err))
			return deny(c, httperror.Unauthorized(
				"admin.gate.invalid_token",
				"Invalid token",
				nil,
			))
		}

		c.SetUserContext(context.WithValue(userCtx, claimsKey{}, claims))
		return c.Next()
	}
}

// Claims returns the admin claims stored by the gate, or nil.
func Claims(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey{}).(*auth.Claims)
	return claims
}

func deny(c *fiber.Ctx, err *httperror.Error) error {
	return c.Status(err.Status).JSON(fiber.Map{
		"code":    err.Code,
		"message": err.Message,
	})
}
