package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	goredis "github.com/redis/go-redis/v9"

	"demoday/internal/domain"
)

// liveStateKey holds the single live pointer record, JSON-encoded.
const liveStateKey = "demoday:current_event"

type liveStateStore struct {
	client *goredis.Client
	// mu serializes read-modify-write cycles within this process. Across
	// processes the record is last-write-wins.
	mu sync.Mutex
}

// NewLiveStateStore returns a LiveStateStore backed by a single Redis key.
func NewLiveStateStore(client *goredis.Client) domain.LiveStateStore {
	return &liveStateStore{client: client}
}

func (s *liveStateStore) GetCurrentEvent(ctx context.Context) (*domain.LiveEventState, error) {
	return s.get(ctx)
}

func (s *liveStateStore) UpdateCurrentEvent(ctx context.Context, event *domain.Event) (*domain.LiveEventState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if event == nil {
		if err := s.client.Del(ctx, liveStateKey).Err(); err != nil {
			return nil, fmt.Errorf("clear live state: %w", err)
		}
		return nil, nil
	}

	cur, err := s.get(ctx)
	if err != nil {
		return nil, err
	}
	state := &domain.LiveEventState{
		EventID: event.ID,
		Name:    event.Name,
		Phase:   domain.PhaseDemos,
	}
	if cur != nil && cur.EventID == event.ID {
		// Refreshing the already-current event keeps its pointers.
		state.Phase = cur.Phase
		state.CurrentDemoID = cur.CurrentDemoID
		state.CurrentAwardID = cur.CurrentAwardID
	}
	if err := s.set(ctx, state); err != nil {
		return nil, err
	}
	return state, nil
}

func (s *liveStateStore) UpdateCurrentEventState(ctx context.Context, upd domain.LiveStateUpdate) (*domain.LiveEventState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, err := s.get(ctx)
	if err != nil {
		return nil, err
	}
	if cur == nil {
		return nil, domain.ErrNoCurrentEvent
	}
	if upd.Phase != nil {
		cur.Phase = *upd.Phase
	}
	if upd.CurrentDemoID.Set {
		cur.CurrentDemoID = upd.CurrentDemoID.Value
	}
	if upd.CurrentAwardID.Set {
		cur.CurrentAwardID = upd.CurrentAwardID.Value
	}
	if err := s.set(ctx, cur); err != nil {
		return nil, err
	}
	return cur, nil
}

func (s *liveStateStore) get(ctx context.Context) (*domain.LiveEventState, error) {
	raw, err := s.client.Get(ctx, liveStateKey).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get live state: %w", err)
	}
	state := &domain.LiveEventState{}
	if err := json.Unmarshal([]byte(raw), state); err != nil {
		return nil, fmt.Errorf("decode live state: %w", err)
	}
	return state, nil
}

func (s *liveStateStore) set(ctx context.Context, state *domain.LiveEventState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode live state: %w", err)
	}
	if err := s.client.Set(ctx, liveStateKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("set live state: %w", err)
	}
	return nil
}
