package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"itemshare/infra/rabbitmq"
	"itemshare/internal/consumers"
	"itemshare/pkg/config"
	"itemshare/pkg/events"
	"itemshare/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	appConfig := config.Read()
	log := logger.New(appConfig.Environment)
	defer log.Sync()

	zap.L().Info("Itemshare worker starting...")
	zap.L().Info("Worker config loaded",
		zap.String("serviceName", appConfig.ServiceName),
		zap.String("rabbitMQURL", appConfig.RabbitMQURL),
	)

	if appConfig.RabbitMQURL == "" {
		zap.L().Fatal("RABBITMQ_URL is required for worker service")
	}

	borrowHandler := consumers.NewBorrowRequestHandler(consumers.LogDeliverer{})

	// Queue name: {service}.{domain}.{events}.{version}
	borrowConsumer, err := rabbitmq.NewConsumer(appConfig.RabbitMQURL, rabbitmq.ConsumerConfig{
		Exchange:       events.ItemExchange,
		QueueName:      appConfig.ServiceName + ".item.borrow.requested.v1",
		RoutingKeys:    []string{events.ItemBorrowRequestedEvent + "." + events.EventVersionV1},
		ServiceName:    appConfig.ServiceName,
		PrefetchCount:  10,
		WorkerPoolSize: 4,
	})
	if err != nil {
		zap.L().Fatal("Failed to create borrow request consumer", zap.Error(err))
	}
	defer borrowConsumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		defer close(done)
		zap.L().Info("Starting borrow request consumer...")
		if err := borrowConsumer.Consume(ctx, borrowHandler.HandleEvent); err != nil && !errors.Is(err, context.Canceled) {
			zap.L().Error("Borrow request consumer error", zap.Error(err))
		}
	}()

	zap.L().Info("Worker service started successfully. Waiting for events...",
		zap.String("exchange", events.ItemExchange),
	)

	select {
	case <-sigChan:
		zap.L().Info("Shutdown signal received, stopping worker service...")
	case <-done:
		zap.L().Warn("Consumer stopped, shutting down worker service...")
	}
	cancel()
	<-done

	zap.L().Info("Worker service stopped gracefully")
}
