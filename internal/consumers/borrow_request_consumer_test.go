package consumers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"itemshare/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingDeliverer struct {
	delivered []events.BorrowRequestedPayload
	err       error
}

func (d *recordingDeliverer) Deliver(ctx context.Context, request events.BorrowRequestedPayload) error {
	d.delivered = append(d.delivered, request)
	return d.err
}

// received round-trips the event through JSON like the consumer does.
func received(t *testing.T, name string, payload any) *events.Event {
	t.Helper()
	body, err := events.NewEvent(name, events.EventVersionV1, payload, events.Headers{}).ToJSON()
	require.NoError(t, err)

	var event events.Event
	require.NoError(t, json.Unmarshal(body, &event))
	return &event
}

func validPayload() events.BorrowRequestedPayload {
	return events.BorrowRequestedPayload{
		ItemID:         "1",
		ItemTitle:      "Electric Drill",
		Owner:          "John D.",
		RequesterName:  "Mario",
		RequesterEmail: "mario@example.com",
		Message:        "Could I borrow it on Saturday?",
	}
}

func TestBorrowRequestHandler_Delivers(t *testing.T) {
	deliverer := &recordingDeliverer{}
	handler := NewBorrowRequestHandler(deliverer)

	event := received(t, events.ItemBorrowRequestedEvent, validPayload())
	require.NoError(t, handler.HandleEvent(context.Background(), event))

	require.Len(t, deliverer.delivered, 1)
	got := deliverer.delivered[0]
	assert.Equal(t, "1", got.ItemID)
	assert.Equal(t, "mario@example.com", got.RequesterEmail)
	assert.WithinDuration(t, event.Timestamp, got.RequestedAt, time.Second)
}

func TestBorrowRequestHandler_RejectsMalformedPayload(t *testing.T) {
	deliverer := &recordingDeliverer{}
	handler := NewBorrowRequestHandler(deliverer)

	payload := validPayload()
	payload.RequesterEmail = "not-an-email"

	err := handler.HandleEvent(context.Background(), received(t, events.ItemBorrowRequestedEvent, payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "malformed payload")
	assert.Empty(t, deliverer.delivered)
}

func TestBorrowRequestHandler_DeliveryFailure(t *testing.T) {
	deliverer := &recordingDeliverer{err: errors.New("smtp down")}
	handler := NewBorrowRequestHandler(deliverer)

	err := handler.HandleEvent(context.Background(), received(t, events.ItemBorrowRequestedEvent, validPayload()))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "smtp down")
}

func TestBorrowRequestHandler_IgnoresOtherEvents(t *testing.T) {
	deliverer := &recordingDeliverer{}
	handler := NewBorrowRequestHandler(deliverer)

	err := handler.HandleEvent(context.Background(), received(t, events.ItemApprovedEvent, events.ItemModeratedPayload{ID: "1"}))
	require.NoError(t, err)
	assert.Empty(t, deliverer.delivered)
	assert.NoError(t, LogDeliverer{}.Deliver(context.Background(), validPayload()))
}
