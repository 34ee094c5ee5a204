package domain

import (
	"context"
	"time"
)

// Demo represents a submitted project entry tied to one event. Index defines
// presentation order and is unique within the event. Secret authorizes the
// submitter to edit their entry and is never exposed to public reads.
// swagger:model Demo
type Demo struct {
	ID          string    `json:"id"`
	EventID     string    `json:"event_id"`
	Index       int       `json:"index"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Email       string    `json:"email"`
	URL         string    `json:"url"`
	Votable     bool      `json:"votable"`
	Secret      string    `json:"secret"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PublicDemo is the projection of a Demo safe for unauthenticated reads:
// no secret, no timestamps, no owning event id.
// swagger:model PublicDemo
type PublicDemo struct {
	ID          string `json:"id"`
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Email       string `json:"email"`
	URL         string `json:"url"`
	Votable     bool   `json:"votable"`
}

// Public returns the public-safe projection of the demo.
func (d *Demo) Public() *PublicDemo {
	return &PublicDemo{
		ID:          d.ID,
		Index:       d.Index,
		Name:        d.Name,
		Description: d.Description,
		Email:       d.Email,
		URL:         d.URL,
		Votable:     d.Votable,
	}
}

// DemoIndexBase is the index assigned to the first demo of an event.
const DemoIndexBase = 0

// DefaultDemos returns the placeholder demos seeded when an event is
// created, indexed ascending from DemoIndexBase. ID and Secret are filled
// in by the caller.
func DefaultDemos() []*Demo {
	names := []string{"Demo 1", "Demo 2", "Demo 3"}
	demos := make([]*Demo, 0, len(names))
	for i, name := range names {
		demos = append(demos, &Demo{
			Index:       DemoIndexBase + i,
			Name:        name,
			Description: "Placeholder demo. Edit or delete before the event.",
			Votable:     true,
		})
	}
	return demos
}

// DemoRepository defines the interface for demo storage.
type DemoRepository interface {
	Create(ctx context.Context, demo *Demo) error
	GetByID(ctx context.Context, id string) (*Demo, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Demo, error)
	// NextIndex returns the index the next demo of the event should take.
	NextIndex(ctx context.Context, eventID string) (int, error)
}
