package item

import (
	"context"
	"strings"
	"time"

	"itemshare/domain"
	"itemshare/pkg/events"

	"go.uber.org/zap"
)

type BorrowRequest struct {
	Name    string `json:"name" form:"name" validate:"notblank"`
	Email   string `json:"email" form:"email" validate:"notblank,email"`
	Message string `json:"message" form:"message" validate:"notblank"`
}

// Notifier hands a borrow request to whatever channel reaches the owner.
type Notifier interface {
	Notify(ctx context.Context, item domain.Item, req BorrowRequest) error
}

// LogNotifier only records the request in the log.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, item domain.Item, req BorrowRequest) error {
	zap.L().Info("Borrow request received",
		zap.String("itemId", item.ID),
		zap.String("owner", item.Owner),
		zap.String("requester", req.Name),
		zap.String("email", req.Email),
	)
	return nil
}

// EventNotifier publishes item.borrow.requested for the worker to deliver.
type EventNotifier struct {
	eventPublisher events.Publisher
	service        string
}

func NewEventNotifier(eventPublisher events.Publisher, service string) *EventNotifier {
	return &EventNotifier{eventPublisher: eventPublisher, service: service}
}

func (n *EventNotifier) Notify(ctx context.Context, item domain.Item, req BorrowRequest) error {
	headers := events.Headers{
		TraceID:       events.GenerateTraceID(),
		CorrelationID: events.GenerateCorrelationID(),
		Service:       n.service,
	}

	event := events.NewEvent(events.ItemBorrowRequestedEvent, events.EventVersionV1, events.BorrowRequestedPayload{
		ItemID:         item.ID,
		ItemTitle:      item.Title,
		Owner:          item.Owner,
		RequesterName:  req.Name,
		RequesterEmail: req.Email,
		Message:        req.Message,
		RequestedAt:    time.Now().UTC(),
	}, headers)

	return n.eventPublisher.Publish(ctx, events.ItemExchange, event, headers)
}

type ItemFinder interface {
	Get(ctx context.Context, id string) (domain.Item, error)
}

// Requests forwards borrow requests for catalog items. Nothing is stored.
type Requests struct {
	catalog   ItemFinder
	notifier  Notifier
	validator *Validator
}

func NewRequests(catalog ItemFinder, notifier Notifier, validator *Validator) *Requests {
	return &Requests{
		catalog:   catalog,
		notifier:  notifier,
		validator: validator,
	}
}

func (r *Requests) RequestBorrow(ctx context.Context, itemID string, req BorrowRequest) (domain.Item, error) {
	req = BorrowRequest{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Message: strings.TrimSpace(req.Message),
	}

	if err := r.validator.Struct(req); err != nil {
		return domain.Item{}, err
	}

	item, err := r.catalog.Get(ctx, itemID)
	if err != nil {
		return domain.Item{}, err
	}

	if err := r.notifier.Notify(ctx, item, req); err != nil {
		return domain.Item{}, err
	}

	return item, nil
}
