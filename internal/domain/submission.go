package domain

import (
	"context"
	"errors"
	"time"
)

// ErrSubmissionsClosed is returned when a demo is submitted after the
// event's deadline has passed.
var ErrSubmissionsClosed = errors.New("submissions are closed")

// SubmissionDeadlineAt returns the instant at which demo submissions close
// for the event, per its configured deadline policy.
func SubmissionDeadlineAt(event *Event) time.Time {
	switch event.Config.SubmissionDeadline {
	case DeadlineSaturdayBefore:
		return saturdayBefore(event.Date)
	default:
		return event.Date
	}
}

// IsSubmissionOpen reports whether demo submissions are still accepted for
// the event at the given instant. The deadline instant itself is closed.
func IsSubmissionOpen(event *Event, now time.Time) bool {
	return now.Before(SubmissionDeadlineAt(event))
}

// saturdayBefore returns 23:59:59.999 on the most recent Saturday strictly
// before the given date, in the date's location.
func saturdayBefore(date time.Time) time.Time {
	daysBack := int(date.Weekday()) + 1
	sat := date.AddDate(0, 0, -daysBack)
	return time.Date(sat.Year(), sat.Month(), sat.Day(), 23, 59, 59, 999000000, date.Location())
}

// SubmissionStatus describes whether the submission form should be shown.
// swagger:model SubmissionStatus
type SubmissionStatus struct {
	Open     bool      `json:"open"`
	ClosesAt time.Time `json:"closes_at"`
}

// SubmissionService defines the business logic for demo submissions.
type SubmissionService interface {
	// SubmitDemo creates a new demo for the event if submissions are open.
	// Returns ErrSubmissionsClosed past the deadline. The returned demo
	// includes its secret so the submitter can edit the entry later.
	SubmitDemo(ctx context.Context, eventID string, demo *Demo) (*Demo, error)
	Status(ctx context.Context, eventID string) (*SubmissionStatus, error)
}
