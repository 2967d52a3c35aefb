package item

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

type contextKey string

const fiberContextKey contextKey = "fiber"

// WithFiberContext exposes the raw request to handlers that need more than
// the parsed request struct, such as multipart uploads.
func WithFiberContext(ctx context.Context, c *fiber.Ctx) context.Context {
	return context.WithValue(ctx, fiberContextKey, c)
}

func fiberContext(ctx context.Context) (*fiber.Ctx, bool) {
	c, ok := ctx.Value(fiberContextKey).(*fiber.Ctx)
	return c, ok
}
