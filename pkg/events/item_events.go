package events

import (
	"time"
)

// ItemExchange is the topic exchange all item events are published on.
const ItemExchange = "itemshare.item"

// Event names
const (
	ItemSubmittedEvent       = "item.submitted"
	ItemApprovedEvent        = "item.approved"
	ItemRejectedEvent        = "item.rejected"
	ItemBorrowRequestedEvent = "item.borrow.requested"
)

// Event versions
const (
	EventVersionV1 = "v1"
)

// ItemSubmittedPayload represents the payload for item.submitted event
type ItemSubmittedPayload struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Owner     string    `json:"owner"`
	CreatedAt time.Time `json:"createdAt"`
}

// ItemModeratedPayload is shared by item.approved and item.rejected.
type ItemModeratedPayload struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"`
	DecidedAt time.Time `json:"decidedAt"`
}

type BorrowRequestedPayload struct {
	ItemID         string    `json:"itemId"`
	ItemTitle      string    `json:"itemTitle"`
	Owner          string    `json:"owner"`
	RequesterName  string    `json:"requesterName"`
	RequesterEmail string    `json:"requesterEmail"`
	Message        string    `json:"message"`
	RequestedAt    time.Time `json:"requestedAt"`
}
