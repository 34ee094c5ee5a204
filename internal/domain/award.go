package domain

// Award represents a presentation-ordered award category tied to one event.
// swagger:model Award
type Award struct {
	ID          string `json:"id"`
	EventID     string `json:"event_id"`
	Index       int    `json:"index"`
	Name        string `json:"name"`
	Description string `json:"description"`
	WinnerID    *string `json:"winner_id"`
}

// DefaultAwards returns the award categories seeded when an event is
// created, indexed ascending from zero. IDs are filled in by the caller.
func DefaultAwards() []*Award {
	defs := []struct {
		name, description string
	}{
		{"Best Overall", "The crowd favorite across all demos."},
		{"Most Technically Impressive", "The demo that made engineers gasp."},
		{"Most Creative", "The demo nobody saw coming."},
		{"Best Presentation", "The demo that told the best story."},
	}
	awards := make([]*Award, 0, len(defs))
	for i, d := range defs {
		awards = append(awards, &Award{
			Index:       i,
			Name:        d.name,
			Description: d.description,
		})
	}
	return awards
}
