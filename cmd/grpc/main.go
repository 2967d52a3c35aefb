package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"itemshare/app/item"
	"itemshare/infra/grpc"
	"itemshare/infra/storage"
	"itemshare/pkg/config"
	"itemshare/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	appConfig := config.Read()
	log := logger.New(appConfig.Environment)
	defer log.Sync()

	zap.L().Info("Itemshare gRPC Service starting...")

	if storage.IsProcessLocal(appConfig.StoreDriver) {
		zap.L().Warn("gRPC service uses a process-local store and cannot see items submitted over HTTP; set STORE_DRIVER to postgres, redis or s3 to share one",
			zap.String("storeDriver", appConfig.StoreDriver),
		)
	}

	blobs, closeBlobs, err := storage.Open(appConfig)
	if err != nil {
		zap.L().Fatal("Failed to open item store", zap.Error(err))
	}
	defer closeBlobs()

	store, _ := storage.NewItemStore(appConfig, blobs)

	grpcServer, err := grpc.NewServer(appConfig)
	if err != nil {
		zap.L().Error("failed to create grpc server", zap.Error(err))
		os.Exit(1)
	}

	grpc.RegisterCatalogServiceServer(grpcServer.GetGRPCServer(), grpc.NewCatalogService(item.NewCatalog(store)))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go grpcServer.WatchHealth(ctx, storage.HealthCheck(blobs), 10*time.Second, grpc.CatalogServiceName)

	zap.L().Info("starting gRPC server...", zap.String("port", appConfig.GRPCPort))
	go func() {
		if err := grpcServer.Start(); err != nil {
			zap.L().Error("failed to start grpc server", zap.Error(err))
			os.Exit(1)
		}
	}()

	gracefulShutdown(grpcServer, cancel)
}

func gracefulShutdown(grpcServer *grpc.Server, stopHealth context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	zap.L().Info("Shutting down server...")

	stopHealth()
	if err := grpcServer.GracefulStop(); err != nil {
		zap.L().Error("Error during server shutdown", zap.Error(err))
	}

	zap.L().Info("Server gracefully stopped")
}
