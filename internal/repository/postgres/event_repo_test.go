package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"demoday/internal/domain"
)

var testDate = time.Date(2024, 6, 20, 18, 0, 0, 0, time.UTC)

func testEvent(id string) *domain.Event {
	return &domain.Event{
		ID:        id,
		Name:      "June Demo Day",
		Date:      testDate,
		URL:       "https://lu.ma/" + id,
		Config:    domain.DefaultEventConfig(),
		CreatedAt: testDate.AddDate(0, -1, 0),
		UpdatedAt: testDate.AddDate(0, -1, 0),
	}
}

func eventRows(events ...*domain.Event) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "date", "url", "config", "created_at", "updated_at"})
	for _, e := range events {
		rows.AddRow(e.ID, e.Name, e.Date, e.URL, []byte(`{"submissionDeadline":"day_of_event","votingEnabled":true,"feedbackEnabled":true}`), e.CreatedAt, e.UpdatedAt)
	}
	return rows
}

func TestEventRepository_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO events`).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO demos`).
					WithArgs("demo-1", "june-2024", 0, "Demo 1", "", "", "", true, "secret1", sqlmock.AnyArg(), sqlmock.AnyArg()).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO awards`).
					WithArgs("award-1", "june-2024", 0, "Best Overall", "").
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
		},
		{
			name: "duplicate id",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO events`).
					WillReturnError(&pq.Error{Code: "23505"})
				mock.ExpectRollback()
			},
			wantErr: domain.ErrDuplicateID,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`INSERT INTO events`).
					WillReturnError(sql.ErrConnDone)
				mock.ExpectRollback()
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewEventRepository(db)

			event := testEvent("june-2024")
			demos := []*domain.Demo{{ID: "demo-1", Index: 0, Name: "Demo 1", Votable: true, Secret: "secret1"}}
			awards := []*domain.Award{{ID: "award-1", Index: 0, Name: "Best Overall"}}
			err = repo.Create(ctx, event, demos, awards)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestEventRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, name, date, url, config, created_at, updated_at FROM events WHERE id = \$1`).
			WithArgs("june-2024").
			WillReturnRows(eventRows(testEvent("june-2024")))

		repo := NewEventRepository(db)
		got, err := repo.GetByID(ctx, "june-2024")
		require.NoError(t, err)
		assert.Equal(t, "june-2024", got.ID)
		assert.Equal(t, "June Demo Day", got.Name)
		assert.Equal(t, domain.DeadlineDayOfEvent, got.Config.SubmissionDeadline)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty config falls back to defaults", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		rows := sqlmock.NewRows([]string{"id", "name", "date", "url", "config", "created_at", "updated_at"}).
			AddRow("june-2024", "June Demo Day", testDate, "https://lu.ma/june-2024", []byte(`{}`), testDate, testDate)
		mock.ExpectQuery(`SELECT id, name, date, url, config`).
			WithArgs("june-2024").
			WillReturnRows(rows)

		repo := NewEventRepository(db)
		got, err := repo.GetByID(ctx, "june-2024")
		require.NoError(t, err)
		assert.Equal(t, domain.DeadlineDayOfEvent, got.Config.SubmissionDeadline)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, name, date, url, config`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		repo := NewEventRepository(db)
		_, err = repo.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventRepository_GetComplete(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, date, url, config, created_at, updated_at FROM events WHERE id = \$1`).
		WithArgs("june-2024").
		WillReturnRows(eventRows(testEvent("june-2024")))
	mock.ExpectQuery(`SELECT id, index, name, description, email, url, votable\s+FROM demos`).
		WithArgs("june-2024").
		WillReturnRows(sqlmock.NewRows([]string{"id", "index", "name", "description", "email", "url", "votable"}).
			AddRow("demo-1", 0, "Demo 1", "", "a@b.c", "", true).
			AddRow("demo-2", 1, "Demo 2", "", "", "", true))
	mock.ExpectQuery(`SELECT id, event_id, index, name, description, winner_id\s+FROM awards`).
		WithArgs("june-2024").
		WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "index", "name", "description", "winner_id"}).
			AddRow("award-1", "june-2024", 0, "Best Overall", "", nil).
			AddRow("award-2", "june-2024", 1, "Most Creative", "", "demo-2"))

	repo := NewEventRepository(db)
	got, err := repo.GetComplete(ctx, "june-2024")
	require.NoError(t, err)
	require.Len(t, got.Demos, 2)
	assert.Equal(t, "demo-1", got.Demos[0].ID)
	require.Len(t, got.Awards, 2)
	assert.Nil(t, got.Awards[0].WinnerID)
	require.NotNil(t, got.Awards[1].WinnerID)
	assert.Equal(t, "demo-2", *got.Awards[1].WinnerID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_ListPast(t *testing.T) {
	ctx := context.Background()
	now := testDate.AddDate(0, 1, 0)

	t.Run("no limit", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, name, date, url, config, created_at, updated_at FROM events WHERE date <= \$1 ORDER BY date DESC`).
			WithArgs(now).
			WillReturnRows(eventRows(testEvent("june-2024")))
		mock.ExpectQuery(`FROM demos`).
			WithArgs("june-2024").
			WillReturnRows(sqlmock.NewRows([]string{"id", "index", "name", "description", "email", "url", "votable"}))
		mock.ExpectQuery(`FROM awards`).
			WithArgs("june-2024").
			WillReturnRows(sqlmock.NewRows([]string{"id", "event_id", "index", "name", "description", "winner_id"}))

		repo := NewEventRepository(db)
		got, err := repo.ListPast(ctx, now, 0, 0)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.NotNil(t, got[0].Demos)
		assert.NotNil(t, got[0].Awards)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("limit and offset", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`WHERE date <= \$1 ORDER BY date DESC LIMIT \$2 OFFSET \$3`).
			WithArgs(now, 10, 20).
			WillReturnRows(eventRows())

		repo := NewEventRepository(db)
		got, err := repo.ListPast(ctx, now, 10, 20)
		require.NoError(t, err)
		assert.Empty(t, got)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestEventRepository_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("updates name and date", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		newName := "June Demo Day (rescheduled)"
		newDate := testDate.AddDate(0, 0, 7)
		updated := testEvent("june-2024")
		updated.Name = newName
		updated.Date = newDate

		mock.ExpectQuery(`UPDATE events SET updated_at = NOW\(\), name = \$1, date = \$2\s+WHERE id = \$3\s+RETURNING`).
			WithArgs(newName, newDate, "june-2024").
			WillReturnRows(eventRows(updated))

		repo := NewEventRepository(db)
		got, err := repo.Update(ctx, "june-2024", domain.EventUpdate{Name: &newName, Date: &newDate})
		require.NoError(t, err)
		assert.Equal(t, newName, got.Name)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("renames the id", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		newID := "summer-2024"
		renamed := testEvent(newID)

		mock.ExpectQuery(`UPDATE events SET updated_at = NOW\(\), id = \$1\s+WHERE id = \$2\s+RETURNING`).
			WithArgs(newID, "june-2024").
			WillReturnRows(eventRows(renamed))

		repo := NewEventRepository(db)
		got, err := repo.Update(ctx, "june-2024", domain.EventUpdate{ID: &newID})
		require.NoError(t, err)
		assert.Equal(t, newID, got.ID)
	})

	t.Run("rename onto a taken id", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		newID := "summer-2024"
		mock.ExpectQuery(`UPDATE events SET`).
			WillReturnError(&pq.Error{Code: "23505"})

		repo := NewEventRepository(db)
		_, err = repo.Update(ctx, "june-2024", domain.EventUpdate{ID: &newID})
		assert.ErrorIs(t, err, domain.ErrDuplicateID)
	})

	t.Run("no fields fetches the current row", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, name, date, url, config, created_at, updated_at FROM events WHERE id = \$1`).
			WithArgs("june-2024").
			WillReturnRows(eventRows(testEvent("june-2024")))

		repo := NewEventRepository(db)
		got, err := repo.Update(ctx, "june-2024", domain.EventUpdate{})
		require.NoError(t, err)
		assert.Equal(t, "june-2024", got.ID)
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		name := "whatever"
		mock.ExpectQuery(`UPDATE events SET`).
			WillReturnError(sql.ErrNoRows)

		repo := NewEventRepository(db)
		_, err = repo.Update(ctx, "missing", domain.EventUpdate{Name: &name})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestEventRepository_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
			WithArgs("june-2024").
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewEventRepository(db)
		require.NoError(t, repo.Delete(ctx, "june-2024"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec(`DELETE FROM events WHERE id = \$1`).
			WithArgs("missing").
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewEventRepository(db)
		assert.ErrorIs(t, repo.Delete(ctx, "missing"), domain.ErrNotFound)
	})
}
