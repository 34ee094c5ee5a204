package redis

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"demoday/internal/domain"
)

func mustMarshal(t *testing.T, state *domain.LiveEventState) []byte {
	t.Helper()
	raw, err := json.Marshal(state)
	require.NoError(t, err)
	return raw
}

func TestLiveStateStore_GetCurrentEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("no current event", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectGet(liveStateKey).RedisNil()

		store := NewLiveStateStore(client)
		state, err := store.GetCurrentEvent(ctx)
		require.NoError(t, err)
		assert.Nil(t, state)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("current event set", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		demoID := "demo-2"
		want := &domain.LiveEventState{
			EventID:       "june-2024",
			Name:          "June Demo Day",
			Phase:         domain.PhaseDemos,
			CurrentDemoID: &demoID,
		}
		mock.ExpectGet(liveStateKey).SetVal(string(mustMarshal(t, want)))

		store := NewLiveStateStore(client)
		state, err := store.GetCurrentEvent(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, state)
	})
}

func TestLiveStateStore_UpdateCurrentEvent(t *testing.T) {
	ctx := context.Background()
	event := &domain.Event{ID: "june-2024", Name: "June Demo Day"}

	t.Run("anchors a new event with a clean phase", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		want := &domain.LiveEventState{
			EventID: "june-2024",
			Name:    "June Demo Day",
			Phase:   domain.PhaseDemos,
		}
		mock.ExpectGet(liveStateKey).RedisNil()
		mock.ExpectSet(liveStateKey, mustMarshal(t, want), 0).SetVal("OK")

		store := NewLiveStateStore(client)
		state, err := store.UpdateCurrentEvent(ctx, event)
		require.NoError(t, err)
		assert.Equal(t, want, state)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("re-anchoring the same event keeps phase and pointers", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		awardID := "award-1"
		cur := &domain.LiveEventState{
			EventID:        "june-2024",
			Name:           "June Demo Day",
			Phase:          domain.PhaseAwards,
			CurrentAwardID: &awardID,
		}
		renamed := &domain.Event{ID: "june-2024", Name: "June Demo Day (rescheduled)"}
		want := &domain.LiveEventState{
			EventID:        "june-2024",
			Name:           "June Demo Day (rescheduled)",
			Phase:          domain.PhaseAwards,
			CurrentAwardID: &awardID,
		}
		mock.ExpectGet(liveStateKey).SetVal(string(mustMarshal(t, cur)))
		mock.ExpectSet(liveStateKey, mustMarshal(t, want), 0).SetVal("OK")

		store := NewLiveStateStore(client)
		state, err := store.UpdateCurrentEvent(ctx, renamed)
		require.NoError(t, err)
		assert.Equal(t, want, state)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("switching events resets phase and pointers", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		demoID := "demo-3"
		cur := &domain.LiveEventState{
			EventID:       "june-2024",
			Name:          "June Demo Day",
			Phase:         domain.PhaseAwards,
			CurrentDemoID: &demoID,
		}
		next := &domain.Event{ID: "july-2024", Name: "July Demo Day"}
		want := &domain.LiveEventState{
			EventID: "july-2024",
			Name:    "July Demo Day",
			Phase:   domain.PhaseDemos,
		}
		mock.ExpectGet(liveStateKey).SetVal(string(mustMarshal(t, cur)))
		mock.ExpectSet(liveStateKey, mustMarshal(t, want), 0).SetVal("OK")

		store := NewLiveStateStore(client)
		state, err := store.UpdateCurrentEvent(ctx, next)
		require.NoError(t, err)
		assert.Equal(t, want, state)
	})

	t.Run("nil clears the record", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectDel(liveStateKey).SetVal(1)

		store := NewLiveStateStore(client)
		state, err := store.UpdateCurrentEvent(ctx, nil)
		require.NoError(t, err)
		assert.Nil(t, state)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLiveStateStore_UpdateCurrentEventState(t *testing.T) {
	ctx := context.Background()

	t.Run("no current event", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		mock.ExpectGet(liveStateKey).RedisNil()

		store := NewLiveStateStore(client)
		phase := domain.PhaseAwards
		_, err := store.UpdateCurrentEventState(ctx, domain.LiveStateUpdate{Phase: &phase})
		assert.ErrorIs(t, err, domain.ErrNoCurrentEvent)
	})

	t.Run("merges only the supplied fields", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		demoID := "demo-2"
		cur := &domain.LiveEventState{
			EventID:       "june-2024",
			Name:          "June Demo Day",
			Phase:         domain.PhaseDemos,
			CurrentDemoID: &demoID,
		}
		phase := domain.PhaseAwards
		want := &domain.LiveEventState{
			EventID:       "june-2024",
			Name:          "June Demo Day",
			Phase:         domain.PhaseAwards,
			CurrentDemoID: &demoID,
		}
		mock.ExpectGet(liveStateKey).SetVal(string(mustMarshal(t, cur)))
		mock.ExpectSet(liveStateKey, mustMarshal(t, want), 0).SetVal("OK")

		store := NewLiveStateStore(client)
		state, err := store.UpdateCurrentEventState(ctx, domain.LiveStateUpdate{Phase: &phase})
		require.NoError(t, err)
		assert.Equal(t, want, state)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("explicit null clears a pointer", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		demoID := "demo-2"
		cur := &domain.LiveEventState{
			EventID:       "june-2024",
			Name:          "June Demo Day",
			Phase:         domain.PhaseDemos,
			CurrentDemoID: &demoID,
		}
		want := &domain.LiveEventState{
			EventID: "june-2024",
			Name:    "June Demo Day",
			Phase:   domain.PhaseDemos,
		}
		mock.ExpectGet(liveStateKey).SetVal(string(mustMarshal(t, cur)))
		mock.ExpectSet(liveStateKey, mustMarshal(t, want), 0).SetVal("OK")

		store := NewLiveStateStore(client)
		state, err := store.UpdateCurrentEventState(ctx, domain.LiveStateUpdate{
			CurrentDemoID: domain.NullableString{Set: true, Value: nil},
		})
		require.NoError(t, err)
		assert.Equal(t, want, state)
	})
}
