package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"itemshare/app/admin"
	"itemshare/app/item"
	"itemshare/infra/rabbitmq"
	"itemshare/infra/storage"
	"itemshare/internal/auth"
	"itemshare/internal/router"
	"itemshare/pkg/config"
	"itemshare/pkg/events"
	"itemshare/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	appConfig := config.Read()
	log := logger.New(appConfig.Environment)
	defer log.Sync()

	zap.L().Info("app starting...")
	zap.L().Info("app config",
		zap.String("port", appConfig.Port),
		zap.String("environment", appConfig.Environment),
		zap.String("storeDriver", appConfig.StoreDriver),
		zap.Strings("categories", appConfig.CategoryList()),
		zap.Bool("seedBaseline", appConfig.SeedBaseline),
	)

	blobs, closeBlobs, err := storage.Open(appConfig)
	if err != nil {
		zap.L().Fatal("Failed to open item store", zap.Error(err))
	}
	defer closeBlobs()

	store, validator := storage.NewItemStore(appConfig, blobs)

	var publisher events.Publisher
	var notifier item.Notifier = item.LogNotifier{}
	if appConfig.RabbitMQURL != "" {
		rabbitPublisher, err := rabbitmq.NewRabbitMQPublisher(appConfig.RabbitMQURL, appConfig.ServiceName)
		if err != nil {
			zap.L().Fatal("Failed to connect event publisher", zap.Error(err))
		}
		defer rabbitPublisher.Close()
		publisher = rabbitPublisher
		notifier = item.NewEventNotifier(rabbitPublisher, appConfig.ServiceName)
	} else {
		zap.L().Warn("RABBITMQ_URL not set, events are disabled and borrow requests are only logged")
	}

	if appConfig.AdminPasswordHash == "" || appConfig.AdminJWTSecret == "" {
		zap.L().Warn("ADMIN_PASSWORD_HASH or ADMIN_JWT_SECRET not set, admin login is disabled")
	}

	catalog := item.NewCatalog(store)

	app := router.New(router.Dependencies{
		Catalog:    catalog,
		Intake:     item.NewIntake(store, validator, publisher, appConfig.ServiceName),
		Moderation: item.NewModeration(store, publisher, appConfig.ServiceName),
		Requests:   item.NewRequests(catalog, notifier, validator),
		Validator:  validator,
		Login:      admin.NewLoginHandler(appConfig.AdminPasswordHash, appConfig.AdminJWTSecret),
		Authorizer: auth.NewJWTAuthorizer(appConfig.AdminJWTSecret),
		Health:     storage.HealthCheck(blobs),
		Logger:     log,
		// base64 inflates data URIs by a third; leave room for the other fields
		BodyLimit: validator.MaxImageBytes()*2 + 64*1024,
	})

	go func() {
		if err := app.Listen(fmt.Sprintf("0.0.0.0:%s", appConfig.Port)); err != nil {
			zap.L().Error("Failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	zap.L().Info("Server started on port", zap.String("port", appConfig.Port))

	gracefulShutdown(app)
}

func gracefulShutdown(app *fiber.App) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	zap.L().Info("Shutting down server...")

	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		zap.L().Error("Error during server shutdown", zap.Error(err))
	}

	zap.L().Info("Server gracefully stopped")
}
