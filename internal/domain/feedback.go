package domain

import "time"

// EventFeedback represents feedback left for an event. Read-only from this
// service's perspective, ordered newest first.
// swagger:model EventFeedback
type EventFeedback struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
