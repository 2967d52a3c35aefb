package item

import (
	"context"
	"time"

	"itemshare/domain"
	"itemshare/pkg/events"
)

type ModerationStore interface {
	Get(ctx context.Context, id string) (domain.Item, error)
	ListPending(ctx context.Context) ([]domain.Item, error)
	Approve(ctx context.Context, id string) (domain.Item, error)
	Reject(ctx context.Context, id string) (domain.Item, error)
}

// Moderation drives the pending -> approved | rejected state machine.
// Callers are expected to have passed the admin gate already.
type Moderation struct {
	store          ModerationStore
	eventPublisher events.Publisher
	service        string
}

func NewModeration(store ModerationStore, eventPublisher events.Publisher, service string) *Moderation {
	return &Moderation{
		store:          store,
		eventPublisher: eventPublisher,
		service:        service,
	}
}

func (m *Moderation) Pending(ctx context.Context) ([]domain.Item, error) {
	return m.store.ListPending(ctx)
}

func (m *Moderation) Approve(ctx context.Context, id string) (domain.Item, error) {
	return m.decide(ctx, id, domain.StatusApproved)
}

func (m *Moderation) Reject(ctx context.Context, id string) (domain.Item, error) {
	return m.decide(ctx, id, domain.StatusRejected)
}

// decide checks the transition against the current status before asking
// the store. Deciding an item that is already approved is an
// InvalidTransitionError; a decision that loses a race between that check
// and the store call gets the store's NotFoundError instead. Either way
// at most one decision takes effect.
func (m *Moderation) decide(ctx context.Context, id string, to domain.Status) (domain.Item, error) {
	current, err := m.store.Get(ctx, id)
	if err != nil {
		return domain.Item{}, err
	}

	if !current.Status.CanTransitionTo(to) {
		return domain.Item{}, &domain.InvalidTransitionError{ID: id, From: current.Status, To: to}
	}

	var item domain.Item
	eventName := events.ItemApprovedEvent
	if to == domain.StatusApproved {
		item, err = m.store.Approve(ctx, id)
	} else {
		eventName = events.ItemRejectedEvent
		item, err = m.store.Reject(ctx, id)
	}
	if err != nil {
		return domain.Item{}, err
	}

	events.Emit(ctx, m.eventPublisher, m.service, eventName, events.ItemModeratedPayload{
		ID:        item.ID,
		Title:     item.Title,
		Status:    string(item.Status),
		DecidedAt: time.Now().UTC(),
	})

	return item, nil
}
