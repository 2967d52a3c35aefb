package events

import (
	"context"

	"go.uber.org/zap"
)

// Publisher defines the interface for publishing domain events
type Publisher interface {
	// Publish publishes an event to the message broker
	Publish(ctx context.Context, exchange string, event *Event, headers Headers) error

	// Close closes the publisher connection
	Close() error
}

// Emit publishes a v1 event on the item exchange. A nil publisher is a no-op
// and failures are only logged: moderation and intake never fail because
// the broker is down.
func Emit(ctx context.Context, publisher Publisher, service, eventName string, payload any, fields ...zap.Field) {
	if publisher == nil {
		return
	}

	headers := Headers{
		TraceID:       GenerateTraceID(),
		CorrelationID: GenerateCorrelationID(),
		Service:       service,
	}

	event := NewEvent(eventName, EventVersionV1, payload, headers)

	if err := publisher.Publish(ctx, ItemExchange, event, headers); err != nil {
		zap.L().Error("Failed to publish event",
			append(fields, zap.String("event", eventName), zap.Error(err))...,
		)
	}
}
