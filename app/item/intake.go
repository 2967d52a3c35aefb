package item

import (
	"context"
	"strings"

	"itemshare/domain"
	"itemshare/pkg/events"
)

type PendingCreator interface {
	CreatePending(ctx context.Context, draft domain.Draft) (domain.Item, error)
}

// Intake accepts submissions from the public and queues them for moderation.
type Intake struct {
	store          PendingCreator
	validator      *Validator
	eventPublisher events.Publisher
	service        string
}

func NewIntake(store PendingCreator, validator *Validator, eventPublisher events.Publisher, service string) *Intake {
	return &Intake{
		store:          store,
		validator:      validator,
		eventPublisher: eventPublisher,
		service:        service,
	}
}

// Submit trims and validates the draft, then stores it as pending.
// A rejected draft never reaches the store.
func (in *Intake) Submit(ctx context.Context, draft domain.Draft) (domain.Item, error) {
	draft = normalizeDraft(draft)

	if err := in.validator.Struct(draft); err != nil {
		return domain.Item{}, err
	}

	item, err := in.store.CreatePending(ctx, draft)
	if err != nil {
		return domain.Item{}, err
	}

	events.Emit(ctx, in.eventPublisher, in.service, events.ItemSubmittedEvent, events.ItemSubmittedPayload{
		ID:        item.ID,
		Title:     item.Title,
		Category:  item.Category,
		Owner:     item.Owner,
		CreatedAt: item.CreatedAt,
	})

	return item, nil
}

func normalizeDraft(draft domain.Draft) domain.Draft {
	return domain.Draft{
		Title:       strings.TrimSpace(draft.Title),
		Description: strings.TrimSpace(draft.Description),
		Category:    strings.TrimSpace(draft.Category),
		Owner:       strings.TrimSpace(draft.Owner),
		Image:       strings.TrimSpace(draft.Image),
	}
}
