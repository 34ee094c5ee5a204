package postgres

import (
	"context"
	"database/sql"
	"errors"

	"demoday/internal/domain"
)

type demoRepository struct {
	DB *sql.DB
}

func NewDemoRepository(db *sql.DB) domain.DemoRepository {
	return &demoRepository{
		DB: db,
	}
}

func (r *demoRepository) Create(ctx context.Context, d *domain.Demo) error {
	query := `
		INSERT INTO demos (id, event_id, index, name, description, email, url, votable, secret, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.DB.ExecContext(ctx, query,
		d.ID, d.EventID, d.Index, d.Name, d.Description, d.Email, d.URL, d.Votable, d.Secret, d.CreatedAt, d.UpdatedAt)
	return err
}

func (r *demoRepository) GetByID(ctx context.Context, id string) (*domain.Demo, error) {
	query := `
		SELECT id, event_id, index, name, description, email, url, votable, secret, created_at, updated_at
		FROM demos
		WHERE id = $1
	`
	d := &domain.Demo{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.EventID, &d.Index, &d.Name, &d.Description, &d.Email, &d.URL, &d.Votable, &d.Secret, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

func (r *demoRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Demo, error) {
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

func (r *demoRepository) NextIndex(ctx context.Context, eventID string) (int, error) {
	query := `SELECT COALESCE(MAX(index) + 1, $2) FROM demos WHERE event_id = $1`
	var next int
	if err := r.DB.QueryRowContext(ctx, query, eventID, domain.DemoIndexBase).Scan(&next); err != nil {
		return 0, err
	}
	return next, nil
}
