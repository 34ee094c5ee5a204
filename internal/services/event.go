package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"demoday/internal/domain"
	"demoday/internal/monitoring"
)

type eventService struct {
	eventRepo      domain.EventRepository
	liveSync       *liveSync
	liveState      domain.LiveStateStore
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository,
	liveState domain.LiveStateStore,
	timeout time.Duration,
) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		liveSync:       &liveSync{store: liveState},
		liveState:      liveState,
		contextTimeout: timeout,
	}
}

// liveSync is the post-commit hook that keeps the live-state store's event
// reference valid as the event store changes. Every event mutation routes
// through it so no call site re-implements the consistency rules.
type liveSync struct {
	store domain.LiveStateStore
}

// eventUpdated refreshes the live snapshot when the edited event is the
// current one. Edits to any other event leave the live state untouched.
func (l *liveSync) eventUpdated(ctx context.Context, originalID string, updated *domain.Event) error {
	cur, err := l.store.GetCurrentEvent(ctx)
	if err != nil {
		return err
	}
	if cur == nil || cur.EventID != originalID {
		return nil
	}
	_, err = l.store.UpdateCurrentEvent(ctx, updated)
	return err
}

// eventDeleted clears the live pointer when the deleted event was current.
// Called only after a successful delete, so a failed delete leaves live
// state untouched.
func (l *liveSync) eventDeleted(ctx context.Context, id string) error {
	cur, err := l.store.GetCurrentEvent(ctx)
	if err != nil {
		return err
	}
	if cur == nil || cur.EventID != id {
		return nil
	}
	_, err = l.store.UpdateCurrentEvent(ctx, nil)
	return err
}

func (s *eventService) Get(ctx context.Context, id string) (*domain.CompleteEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetComplete(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetAdmin(ctx context.Context, id string) (*domain.AdminEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetAdmin(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get admin event: %w", err)
	}
	return event, nil
}

func (s *eventService) All(ctx context.Context, limit, offset int) ([]*domain.CompleteEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListPast(ctx, time.Now(), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list past events: %w", err)
	}
	if events == nil {
		events = []*domain.CompleteEvent{}
	}
	return events, nil
}

func (s *eventService) AllAdmin(ctx context.Context) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) Upsert(ctx context.Context, input domain.UpsertEventInput) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if input.Config != nil {
		input.Config.ApplyDefaults()
		if err := input.Config.Validate(); err != nil {
			return nil, err
		}
	}

	if input.OriginalID != nil {
		return s.update(ctx, *input.OriginalID, input)
	}
	return s.create(ctx, input)
}

func (s *eventService) update(ctx context.Context, originalID string, input domain.UpsertEventInput) (*domain.Event, error) {
	upd := domain.EventUpdate{
		ID:     input.ID,
		Name:   input.Name,
		Date:   input.Date,
		URL:    input.URL,
		Config: input.Config,
	}
	updated, err := s.eventRepo.Update(ctx, originalID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrDuplicateID) {
			return nil, err
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	if err := s.liveSync.eventUpdated(ctx, originalID, updated); err != nil {
		return nil, fmt.Errorf("sync live state: %w", err)
	}
	return updated, nil
}

func (s *eventService) create(ctx context.Context, input domain.UpsertEventInput) (*domain.Event, error) {
	if input.ID == nil || *input.ID == "" || input.Name == nil || input.Date == nil || input.URL == nil {
		return nil, fmt.Errorf("%w: id, name, date and url are required to create an event", domain.ErrInvalidInput)
	}
	config := domain.DefaultEventConfig()
	if input.Config != nil {
		config = *input.Config
	}

	now := time.Now()
	event := domain.NewEvent(*input.ID, *input.Name, *input.Date, *input.URL, config, now, now)

	demos := domain.DefaultDemos()
	for _, d := range demos {
		secret, err := generateDemoSecret()
		if err != nil {
			return nil, fmt.Errorf("generate demo secret: %w", err)
		}
		d.ID = uuid.NewString()
		d.EventID = event.ID
		d.Secret = secret
		d.CreatedAt = now
		d.UpdatedAt = now
	}
	awards := domain.DefaultAwards()
	for _, a := range awards {
		a.ID = uuid.NewString()
		a.EventID = event.ID
	}

	if err := s.eventRepo.Create(ctx, event, demos, awards); err != nil {
		if errors.Is(err, domain.ErrDuplicateID) {
			return nil, domain.ErrDuplicateID
		}
		return nil, fmt.Errorf("create event: %w", err)
	}
	return event, nil
}

const demoSecretLength = 16

var demoSecretAlphabet = []rune("abcdefghijklmnopqrstuvwxyz0123456789")

func generateDemoSecret() (string, error) {
	b := make([]rune, demoSecretLength)
	max := big.NewInt(int64(len(demoSecretAlphabet)))
	for i := 0; i < demoSecretLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = demoSecretAlphabet[n.Int64()]
	}
	return string(b), nil
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	if err := s.liveSync.eventDeleted(ctx, id); err != nil {
		return fmt.Errorf("sync live state: %w", err)
	}
	return nil
}

func (s *eventService) Current(ctx context.Context) (*domain.LiveEventState, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.liveState.GetCurrentEvent(ctx)
}

func (s *eventService) UpdateCurrent(ctx context.Context, id *string) (*domain.LiveEventState, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if id == nil {
		state, err := s.liveState.UpdateCurrentEvent(ctx, nil)
		if err != nil {
			return nil, fmt.Errorf("clear current event: %w", err)
		}
		monitoring.LiveStateUpdates.Inc()
		return state, nil
	}

	event, err := s.eventRepo.GetByID(ctx, *id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	state, err := s.liveState.UpdateCurrentEvent(ctx, event)
	if err != nil {
		return nil, fmt.Errorf("update current event: %w", err)
	}
	monitoring.LiveStateUpdates.Inc()
	return state, nil
}

func (s *eventService) UpdateCurrentState(ctx context.Context, upd domain.LiveStateUpdate) (*domain.LiveEventState, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if upd.Phase != nil && !upd.Phase.Valid() {
		return nil, fmt.Errorf("%w: unknown phase %d", domain.ErrInvalidInput, *upd.Phase)
	}
	state, err := s.liveState.UpdateCurrentEventState(ctx, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNoCurrentEvent) {
			return nil, domain.ErrNoCurrentEvent
		}
		return nil, fmt.Errorf("update live state: %w", err)
	}
	monitoring.LiveStateUpdates.Inc()
	return state, nil
}
