package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eventWithDeadline(date time.Time, deadline SubmissionDeadline) *Event {
	return &Event{
		ID:   "demo-day",
		Name: "Demo Day",
		Date: date,
		URL:  "https://lu.ma/demo-day",
		Config: EventConfig{
			SubmissionDeadline: deadline,
			VotingEnabled:      true,
			FeedbackEnabled:    true,
		},
	}
}

func TestSubmissionDeadlineAt_DayOfEvent(t *testing.T) {
	date := time.Date(2024, 6, 20, 18, 0, 0, 0, time.UTC)
	event := eventWithDeadline(date, DeadlineDayOfEvent)

	assert.Equal(t, date, SubmissionDeadlineAt(event))
}

func TestSubmissionDeadlineAt_SaturdayBefore(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want time.Time
	}{
		{
			// 2024-06-15 is a Saturday; the deadline is the Saturday before it.
			name: "event on a Saturday",
			date: time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC),
			want: time.Date(2024, 6, 8, 23, 59, 59, 999000000, time.UTC),
		},
		{
			name: "event on a Sunday",
			date: time.Date(2024, 6, 16, 18, 0, 0, 0, time.UTC),
			want: time.Date(2024, 6, 15, 23, 59, 59, 999000000, time.UTC),
		},
		{
			name: "event on a Thursday",
			date: time.Date(2024, 6, 20, 18, 0, 0, 0, time.UTC),
			want: time.Date(2024, 6, 15, 23, 59, 59, 999000000, time.UTC),
		},
		{
			name: "event crossing a month boundary",
			date: time.Date(2024, 7, 2, 9, 0, 0, 0, time.UTC),
			want: time.Date(2024, 6, 29, 23, 59, 59, 999000000, time.UTC),
		},
		{
			name: "keeps the event's location",
			date: time.Date(2024, 6, 20, 18, 0, 0, 0, time.FixedZone("PDT", -7*3600)),
			want: time.Date(2024, 6, 15, 23, 59, 59, 999000000, time.FixedZone("PDT", -7*3600)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := eventWithDeadline(tt.date, DeadlineSaturdayBefore)
			got := SubmissionDeadlineAt(event)
			require.True(t, got.Equal(tt.want), "got %s, want %s", got, tt.want)
			assert.Equal(t, time.Saturday, got.Weekday())
			assert.True(t, got.Before(tt.date))
		})
	}
}

func TestIsSubmissionOpen(t *testing.T) {
	date := time.Date(2024, 6, 20, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		deadline SubmissionDeadline
		now      time.Time
		want     bool
	}{
		{
			name:     "day of event, well before",
			deadline: DeadlineDayOfEvent,
			now:      date.AddDate(0, 0, -3),
			want:     true,
		},
		{
			name:     "day of event, one second before start",
			deadline: DeadlineDayOfEvent,
			now:      date.Add(-time.Second),
			want:     true,
		},
		{
			name:     "day of event, at the start instant",
			deadline: DeadlineDayOfEvent,
			now:      date,
			want:     false,
		},
		{
			name:     "day of event, after start",
			deadline: DeadlineDayOfEvent,
			now:      date.Add(time.Hour),
			want:     false,
		},
		{
			name:     "saturday before, friday evening",
			deadline: DeadlineSaturdayBefore,
			now:      time.Date(2024, 6, 14, 22, 0, 0, 0, time.UTC),
			want:     true,
		},
		{
			name:     "saturday before, at the deadline instant",
			deadline: DeadlineSaturdayBefore,
			now:      time.Date(2024, 6, 15, 23, 59, 59, 999000000, time.UTC),
			want:     false,
		},
		{
			name:     "saturday before, sunday morning",
			deadline: DeadlineSaturdayBefore,
			now:      time.Date(2024, 6, 16, 8, 0, 0, 0, time.UTC),
			want:     false,
		},
		{
			name:     "saturday before, event day",
			deadline: DeadlineSaturdayBefore,
			now:      date.Add(-time.Hour),
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := eventWithDeadline(date, tt.deadline)
			assert.Equal(t, tt.want, IsSubmissionOpen(event, tt.now))
		})
	}
}
