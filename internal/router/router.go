package router

import (
	"context"
	"time"

	"itemshare/app/admin"
	"itemshare/app/item"
	"itemshare/internal/middleware"
	"itemshare/pkg/httperror"
	"itemshare/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Dependencies are the services the HTTP API is built on.
type Dependencies struct {
	Catalog    *item.Catalog
	Intake     *item.Intake
	Moderation *item.Moderation
	Requests   *item.Requests
	Validator  *item.Validator
	Login      *admin.LoginHandler
	Authorizer middleware.Authorizer
	// Health is optional; /health reports ok when nil.
	Health func(ctx context.Context) error
	Logger *zap.Logger
	// BodyLimit defaults to fiber's 4 MiB when zero.
	BodyLimit int
}

func New(deps Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{
		IdleTimeout:  5 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		Concurrency:  256 * 1024,
		BodyLimit:    deps.BodyLimit,
	})

	if deps.Logger != nil {
		app.Use(logger.FiberMiddleware(deps.Logger))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if deps.Health != nil {
			if err := deps.Health(c.UserContext()); err != nil {
				return writeError(c, httperror.ServiceUnavailable("health.store_unreachable", "Item store is unreachable", nil))
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})

	publicRoutes := app.Group("/api/v1")
	publicRoutes.Get("/items", handle[item.GetItemsRequest, item.GetItemsResponse](item.NewGetItemsHandler(deps.Catalog)))
	publicRoutes.Get("/items/:id", handle[item.GetItemRequest, item.GetItemResponse](item.NewGetItemHandler(deps.Catalog)))
	publicRoutes.Get("/categories", handle[item.GetCategoriesRequest, item.GetCategoriesResponse](item.NewGetCategoriesHandler(deps.Catalog, deps.Validator)))
	publicRoutes.Post("/items", handle[item.CreateItemRequest, item.CreateItemResponse](item.NewCreateItemHandler(deps.Intake, deps.Validator)))
	publicRoutes.Post("/items/:id/requests", handle[item.CreateBorrowRequestRequest, item.CreateBorrowRequestResponse](item.NewCreateBorrowRequestHandler(deps.Requests)))
	publicRoutes.Post("/admin/login", handle[admin.LoginRequest, admin.LoginResponse](deps.Login))

	adminRoutes := publicRoutes.Group("/admin/items", middleware.NewAdminGate(deps.Authorizer))
	adminRoutes.Get("/pending", handle[item.GetPendingItemsRequest, item.GetPendingItemsResponse](item.NewGetPendingItemsHandler(deps.Moderation)))
	adminRoutes.Post("/:id/approve", handle[item.ModerateItemRequest, item.ModerateItemResponse](item.NewApproveItemHandler(deps.Moderation)))
	adminRoutes.Post("/:id/reject", handle[item.ModerateItemRequest, item.ModerateItemResponse](item.NewRejectItemHandler(deps.Moderation)))

	return app
}
