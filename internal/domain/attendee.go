package domain

import "time"

// Attendee represents a registered attendee of an event. Read-only from this
// service's perspective; registration happens out of band.
// swagger:model Attendee
type Attendee struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
