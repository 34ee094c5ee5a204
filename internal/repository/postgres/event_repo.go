package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"demoday/internal/domain"
)

// uniqueViolation is the postgres error code for unique constraint violations.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

const eventColumns = "id, name, date, url, config, created_at, updated_at"

func scanEvent(row interface{ Scan(dest ...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	var configRaw []byte
	err := row.Scan(&e.ID, &e.Name, &e.Date, &e.URL, &configRaw, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if len(configRaw) > 0 {
		if err := json.Unmarshal(configRaw, &e.Config); err != nil {
			return nil, fmt.Errorf("decode event config: %w", err)
		}
	}
	e.Config.ApplyDefaults()
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event, demos []*domain.Demo, awards []*domain.Award) error {
	configRaw, err := json.Marshal(e.Config)
	if err != nil {
		return fmt.Errorf("encode event config: %w", err)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO events (id, name, date, url, config, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := tx.ExecContext(ctx, query, e.ID, e.Name, e.Date, e.URL, configRaw, e.CreatedAt, e.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateID
		}
		return err
	}

	demoQuery := `
		INSERT INTO demos (id, event_id, index, name, description, email, url, votable, secret, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	for _, d := range demos {
		if _, err := tx.ExecContext(ctx, demoQuery, d.ID, e.ID, d.Index, d.Name, d.Description, d.Email, d.URL, d.Votable, d.Secret, d.CreatedAt, d.UpdatedAt); err != nil {
			return fmt.Errorf("seed demo %q: %w", d.Name, err)
		}
	}

	awardQuery := `
		INSERT INTO awards (id, event_id, index, name, description)
		VALUES ($1, $2, $3, $4, $5)
	`
	for _, a := range awards {
		if _, err := tx.ExecContext(ctx, awardQuery, a.ID, e.ID, a.Index, a.Name, a.Description); err != nil {
			return fmt.Errorf("seed award %q: %w", a.Name, err)
		}
	}

	return tx.Commit()
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return scanEvent(r.DB.QueryRowContext(ctx, query, id))
}

func (r *eventRepository) GetComplete(ctx context.Context, id string) (*domain.CompleteEvent, error) {
	event, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	demos, err := r.listPublicDemos(ctx, id)
	if err != nil {
		return nil, err
	}
	awards, err := r.listAwards(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.CompleteEvent{Event: *event, Demos: demos, Awards: awards}, nil
}

func (r *eventRepository) GetAdmin(ctx context.Context, id string) (*domain.AdminEvent, error) {
	event, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	demos, err := r.listDemos(ctx, id)
	if err != nil {
		return nil, err
	}
	awards, err := r.listAwards(ctx, id)
	if err != nil {
		return nil, err
	}
	attendees, err := r.listAttendees(ctx, id)
	if err != nil {
		return nil, err
	}
	feedback, err := r.listFeedback(ctx, id)
	if err != nil {
		return nil, err
	}
	return &domain.AdminEvent{
		Event:     *event,
		Demos:     demos,
		Awards:    awards,
		Attendees: attendees,
		Feedback:  feedback,
	}, nil
}

func (r *eventRepository) ListPast(ctx context.Context, now time.Time, limit, offset int) ([]*domain.CompleteEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE date <= $1 ORDER BY date DESC`
	args := []any{now}
	n := 2
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", n)
		args = append(args, limit)
		n++
	}
	if offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, offset)
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.CompleteEvent, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, &domain.CompleteEvent{Event: *e})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, ce := range events {
		demos, err := r.listPublicDemos(ctx, ce.ID)
		if err != nil {
			return nil, err
		}
		awards, err := r.listAwards(ctx, ce.ID)
		if err != nil {
			return nil, err
		}
		ce.Demos = demos
		ce.Awards = awards
	}
	return events, nil
}

func (r *eventRepository) ListAll(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY date DESC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []any{}
	n := 1
	if upd.ID != nil {
		setClauses = append(setClauses, fmt.Sprintf("id = $%d", n))
		args = append(args, *upd.ID)
		n++
	}
	if upd.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name = $%d", n))
		args = append(args, *upd.Name)
		n++
	}
	if upd.Date != nil {
		setClauses = append(setClauses, fmt.Sprintf("date = $%d", n))
		args = append(args, *upd.Date)
		n++
	}
	if upd.URL != nil {
		setClauses = append(setClauses, fmt.Sprintf("url = $%d", n))
		args = append(args, *upd.URL)
		n++
	}
	if upd.Config != nil {
		configRaw, err := json.Marshal(*upd.Config)
		if err != nil {
			return nil, fmt.Errorf("encode event config: %w", err)
		}
		setClauses = append(setClauses, fmt.Sprintf("config = $%d", n))
		args = append(args, configRaw)
		n++
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING `+eventColumns, strings.Join(setClauses, ", "), n)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, args...))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrDuplicateID
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) listPublicDemos(ctx context.Context, eventID string) ([]*domain.PublicDemo, error) {
	query := `
		SELECT id, index, name, description, email, url, votable
		FROM demos
		WHERE event_id = $1
		ORDER BY index ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	demos := make([]*domain.PublicDemo, 0)
	for rows.Next() {
		d := &domain.PublicDemo{}
		if err := rows.Scan(&d.ID, &d.Index, &d.Name, &d.Description, &d.Email, &d.URL, &d.Votable); err != nil {
			return nil, err
		}
		demos = append(demos, d)
	}
	return demos, rows.Err()
}

func (r *eventRepository) listDemos(ctx context.Context, eventID string) ([]*domain.Demo, error) {
	query := `
		SELECT id, event_id, index, name, description, email, url, votable, secret, created_at, updated_at
		FROM demos
		WHERE event_id = $1
		ORDER BY index ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	demos := make([]*domain.Demo, 0)
	for rows.Next() {
		d := &domain.Demo{}
		if err := rows.Scan(&d.ID, &d.EventID, &d.Index, &d.Name, &d.Description, &d.Email, &d.URL, &d.Votable, &d.Secret, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		demos = append(demos, d)
	}
	return demos, rows.Err()
}

func (r *eventRepository) listAwards(ctx context.Context, eventID string) ([]*domain.Award, error) {
	query := `
		SELECT id, event_id, index, name, description, winner_id
		FROM awards
		WHERE event_id = $1
		ORDER BY index ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	awards := make([]*domain.Award, 0)
	for rows.Next() {
		a := &domain.Award{}
		var winnerNull sql.NullString
		if err := rows.Scan(&a.ID, &a.EventID, &a.Index, &a.Name, &a.Description, &winnerNull); err != nil {
			return nil, err
		}
		if winnerNull.Valid {
			a.WinnerID = &winnerNull.String
		}
		awards = append(awards, a)
	}
	return awards, rows.Err()
}

func (r *eventRepository) listAttendees(ctx context.Context, eventID string) ([]*domain.Attendee, error) {
	query := `
		SELECT id, event_id, name, email, type, created_at, updated_at
		FROM attendees
		WHERE event_id = $1
		ORDER BY name ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	attendees := make([]*domain.Attendee, 0)
	for rows.Next() {
		a := &domain.Attendee{}
		if err := rows.Scan(&a.ID, &a.EventID, &a.Name, &a.Email, &a.Type, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		attendees = append(attendees, a)
	}
	return attendees, rows.Err()
}

func (r *eventRepository) listFeedback(ctx context.Context, eventID string) ([]*domain.EventFeedback, error) {
	query := `
		SELECT id, event_id, comment, created_at, updated_at
		FROM event_feedback
		WHERE event_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	feedback := make([]*domain.EventFeedback, 0)
	for rows.Next() {
		f := &domain.EventFeedback{}
		if err := rows.Scan(&f.ID, &f.EventID, &f.Comment, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		feedback = append(feedback, f)
	}
	return feedback, rows.Err()
}
