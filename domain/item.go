package domain

import "time"

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// CanTransitionTo reports whether moderation may move an item from s to next.
// Only pending items can be decided; approved and rejected are terminal.
func (s Status) CanTransitionTo(next Status) bool {
	return s == StatusPending && (next == StatusApproved || next == StatusRejected)
}

type Item struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	Owner       string    `json:"owner"`
	Available   bool      `json:"available"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Draft is a submission that has not been accepted into the store yet.
type Draft struct {
	Title       string `json:"title" form:"title" validate:"notblank"`
	Description string `json:"description" form:"description" validate:"notblank"`
	Category    string `json:"category" form:"category" validate:"notblank,category"`
	Owner       string `json:"owner" form:"owner" validate:"notblank"`
	Image       string `json:"image" form:"image" validate:"notblank,imagesize"`
}
