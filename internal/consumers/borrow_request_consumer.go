package consumers

import (
	"context"
	"fmt"

	"itemshare/pkg/events"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Deliverer passes a borrow request on to the item owner.
type Deliverer interface {
	Deliver(ctx context.Context, request events.BorrowRequestedPayload) error
}

// LogDeliverer writes the request to the log. There is no outbound
// channel to owners yet.
type LogDeliverer struct{}

func (LogDeliverer) Deliver(ctx context.Context, request events.BorrowRequestedPayload) error {
	zap.L().Info("Delivering borrow request to owner",
		zap.String("itemId", request.ItemID),
		zap.String("itemTitle", request.ItemTitle),
		zap.String("owner", request.Owner),
		zap.String("requesterName", request.RequesterName),
		zap.String("requesterEmail", request.RequesterEmail),
		zap.Time("requestedAt", request.RequestedAt),
	)
	return nil
}

type borrowRequestPayload struct {
	ItemID         string `validate:"required"`
	Owner          string `validate:"required"`
	RequesterName  string `validate:"required"`
	RequesterEmail string `validate:"required,email"`
	Message        string `validate:"required"`
}

type BorrowRequestHandler struct {
	deliverer Deliverer
	validate  *validator.Validate
}

func NewBorrowRequestHandler(deliverer Deliverer) *BorrowRequestHandler {
	return &BorrowRequestHandler{
		deliverer: deliverer,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *BorrowRequestHandler) HandleEvent(ctx context.Context, event *events.Event) error {
	zap.L().Info("Item event received",
		zap.String("event", event.Event),
		zap.String("version", event.Version),
		zap.String("traceId", event.TraceID),
	)

	switch event.Event {
	case events.ItemBorrowRequestedEvent:
		return h.handleBorrowRequested(ctx, event)
	default:
		zap.L().Warn("Unknown item event type", zap.String("event", event.Event))
		return nil
	}
}

func (h *BorrowRequestHandler) handleBorrowRequested(ctx context.Context, event *events.Event) error {
	var payload events.BorrowRequestedPayload
	if err := event.DecodePayload(&payload); err != nil {
		return err
	}

	if err := h.validate.Struct(borrowRequestPayload{
		ItemID:         payload.ItemID,
		Owner:          payload.Owner,
		RequesterName:  payload.RequesterName,
		RequesterEmail: payload.RequesterEmail,
		Message:        payload.Message,
	}); err != nil {
		return fmt.Errorf("malformed payload - %w", err)
	}

	if payload.RequestedAt.IsZero() {
		payload.RequestedAt = event.Timestamp
	}

	if err := h.deliverer.Deliver(ctx, payload); err != nil {
		return fmt.Errorf("failed to deliver borrow request for item %s: %w", payload.ItemID, err)
	}

	return nil
}
