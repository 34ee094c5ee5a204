package domain

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNoCurrentEvent is returned when mutating live sub-state while no event
// is current.
var ErrNoCurrentEvent = errors.New("no current event")

// EventPhase is the stage of a live presentation. Phases are ordered:
// transitions move forward, and ending a presentation is modeled by clearing
// the current event rather than a phase of its own.
type EventPhase int

const (
	// PhaseDemos is the stage where demos are presented in index order.
	PhaseDemos EventPhase = 1
	// PhaseAwards is the stage where awards are announced.
	PhaseAwards EventPhase = 2
)

// Valid reports whether p is a known phase.
func (p EventPhase) Valid() bool {
	return p == PhaseDemos || p == PhaseAwards
}

// LiveEventState is the single live pointer record: which event is being
// presented, its phase, and which demo or award is on screen. EventID is a
// weak reference; callers re-validate it against the event store.
// swagger:model LiveEventState
type LiveEventState struct {
	EventID        string     `json:"id"`
	Name           string     `json:"name"`
	Phase          EventPhase `json:"phase"`
	CurrentDemoID  *string    `json:"currentDemoId"`
	CurrentAwardID *string    `json:"currentAwardId"`
}

// NullableString is an optional, nullable JSON field. It distinguishes an
// omitted field (Set false) from an explicit null (Set true, Value nil).
type NullableString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON marks the field as set and records the value, nil for null.
func (n *NullableString) UnmarshalJSON(b []byte) error {
	n.Set = true
	if string(b) == "null" {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

// LiveStateUpdate is a partial update of the live state. Nil or unset fields
// are left unchanged; an explicit null clears that sub-pointer.
type LiveStateUpdate struct {
	Phase          *EventPhase    `json:"phase,omitempty"`
	CurrentDemoID  NullableString `json:"currentDemoId"`
	CurrentAwardID NullableString `json:"currentAwardId"`
}

// LiveStateStore holds the single live pointer record.
type LiveStateStore interface {
	// GetCurrentEvent returns the live pointer, or nil if no event is current.
	GetCurrentEvent(ctx context.Context) (*LiveEventState, error)
	// UpdateCurrentEvent anchors the live state to the given event snapshot.
	// Re-anchoring to the already-current event refreshes the snapshot and
	// preserves phase and sub-pointers; a different event resets them.
	// Passing nil clears the record entirely and returns nil.
	UpdateCurrentEvent(ctx context.Context, event *Event) (*LiveEventState, error)
	// UpdateCurrentEventState merges the supplied fields into the live state.
	// Returns ErrNoCurrentEvent when no event is current.
	UpdateCurrentEventState(ctx context.Context, upd LiveStateUpdate) (*LiveEventState, error)
}
