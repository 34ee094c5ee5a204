package domain

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for event operations.
var (
	ErrNotFound     = errors.New("event not found")
	ErrDuplicateID  = errors.New("an event with this id already exists")
	ErrInvalidInput = errors.New("invalid input")
)

// SubmissionDeadline selects when demo submissions close for an event.
type SubmissionDeadline string

const (
	// DeadlineDayOfEvent keeps submissions open until the event's start time.
	DeadlineDayOfEvent SubmissionDeadline = "day_of_event"
	// DeadlineSaturdayBefore closes submissions at the end of the Saturday
	// strictly before the event date.
	DeadlineSaturdayBefore SubmissionDeadline = "saturday_before"
)

// EventConfig is the structured settings blob stored on each event.
// swagger:model EventConfig
type EventConfig struct {
	SubmissionDeadline SubmissionDeadline `json:"submissionDeadline"`
	VotingEnabled      bool               `json:"votingEnabled"`
	FeedbackEnabled    bool               `json:"feedbackEnabled"`
}

// DefaultEventConfig returns the config applied when an event is created
// without an explicit one.
func DefaultEventConfig() EventConfig {
	return EventConfig{
		SubmissionDeadline: DeadlineDayOfEvent,
		VotingEnabled:      true,
		FeedbackEnabled:    true,
	}
}

// ApplyDefaults fills omitted optional keys with their defaults.
func (c *EventConfig) ApplyDefaults() {
	if c.SubmissionDeadline == "" {
		c.SubmissionDeadline = DeadlineDayOfEvent
	}
}

// Validate checks the config against the schema. Call ApplyDefaults first.
func (c EventConfig) Validate() error {
	switch c.SubmissionDeadline {
	case DeadlineDayOfEvent, DeadlineSaturdayBefore:
		return nil
	default:
		return fmt.Errorf("%w: unknown submission deadline %q", ErrInvalidInput, c.SubmissionDeadline)
	}
}

// Event represents a demo day event. The ID is user-assignable and globally
// unique; it doubles as the public URL slug.
// swagger:model Event
type Event struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Date      time.Time   `json:"date"`
	URL       string      `json:"url"`
	Config    EventConfig `json:"config"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields.
func NewEvent(id, name string, date time.Time, url string, config EventConfig, createdAt, updatedAt time.Time) *Event {
	return &Event{
		ID:        id,
		Name:      name,
		Date:      date,
		URL:       url,
		Config:    config,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// CompleteEvent is the public view of an event: demos projected to their
// public-safe form, awards in full, both ordered by index.
// swagger:model CompleteEvent
type CompleteEvent struct {
	Event
	Demos  []*PublicDemo `json:"demos"`
	Awards []*Award      `json:"awards"`
}

// AdminEvent is the privileged view of an event: demos unredacted, plus
// attendees and feedback.
// swagger:model AdminEvent
type AdminEvent struct {
	Event
	Demos     []*Demo          `json:"demos"`
	Awards    []*Award         `json:"awards"`
	Attendees []*Attendee      `json:"attendees"`
	Feedback  []*EventFeedback `json:"feedback"`
}

// EventUpdate holds optional replacement values for an event update.
// Nil fields keep their prior values. ID renames the event.
type EventUpdate struct {
	ID     *string
	Name   *string
	Date   *time.Time
	URL    *string
	Config *EventConfig
}

// UpsertEventInput is the input to EventService.Upsert. When OriginalID is
// set the named event is updated in place; otherwise a new event is created,
// which requires ID, Name, Date, and URL.
type UpsertEventInput struct {
	OriginalID *string
	ID         *string
	Name       *string
	Date       *time.Time
	URL        *string
	Config     *EventConfig
}

// EventRepository defines the interface for event storage.
type EventRepository interface {
	// Create atomically inserts the event with its seed demos and awards.
	// Returns ErrDuplicateID when the id is already taken.
	Create(ctx context.Context, event *Event, demos []*Demo, awards []*Award) error
	GetByID(ctx context.Context, id string) (*Event, error)
	GetComplete(ctx context.Context, id string) (*CompleteEvent, error)
	GetAdmin(ctx context.Context, id string) (*AdminEvent, error)
	// ListPast returns events dated at or before now, newest first.
	// limit <= 0 means no limit; offset <= 0 means no offset.
	ListPast(ctx context.Context, now time.Time, limit, offset int) ([]*CompleteEvent, error)
	ListAll(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, id string, upd EventUpdate) (*Event, error)
	Delete(ctx context.Context, id string) error
}

// EventService defines the business logic for events and the live
// presentation state.
type EventService interface {
	Get(ctx context.Context, id string) (*CompleteEvent, error)
	GetAdmin(ctx context.Context, id string) (*AdminEvent, error)
	All(ctx context.Context, limit, offset int) ([]*CompleteEvent, error)
	AllAdmin(ctx context.Context) ([]*Event, error)
	Upsert(ctx context.Context, input UpsertEventInput) (*Event, error)
	Delete(ctx context.Context, id string) error

	Current(ctx context.Context) (*LiveEventState, error)
	// UpdateCurrent re-anchors the live state to the event with the given id,
	// or clears it when id is nil.
	UpdateCurrent(ctx context.Context, id *string) (*LiveEventState, error)
	UpdateCurrentState(ctx context.Context, upd LiveStateUpdate) (*LiveEventState, error)
}
