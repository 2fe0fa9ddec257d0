package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/deppfellow/portfolio-backend/internal/database"
	"github.com/deppfellow/portfolio-backend/internal/model"
)

type SubscriberRepository struct {
	db *database.Database
}

func NewSubscriberRepository(db *database.Database) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

func (r *SubscriberRepository) List(ctx context.Context) ([]model.Subscriber, error) {
	query := `
		SELECT id, email
		FROM subscribers
		ORDER BY id`

	rows, err := r.db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer rows.Close()

	subscribers := make([]model.Subscriber, 0)
	for rows.Next() {
		var s model.Subscriber
		if err := rows.Scan(&s.ID, &s.Email); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		subscribers = append(subscribers, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscribers: %w", err)
	}

	return subscribers, nil
}

// Exists reports whether email is already subscribed (exact match).
func (r *SubscriberRepository) Exists(ctx context.Context, email string) (bool, error) {
	query := r.db.Rebind(`SELECT 1 FROM subscribers WHERE email = ? LIMIT 1`)

	var one int
	err := r.db.DB.QueryRowContext(ctx, query, email).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("failed to look up subscriber: %w", err)
	}
	return true, nil
}

// Create inserts email unless it is already present. It reports whether a
// new row was written.
func (r *SubscriberRepository) Create(ctx context.Context, email string) (bool, error) {
	query := r.db.Rebind(`
		INSERT INTO subscribers (email)
		VALUES (?)
		ON CONFLICT (email) DO NOTHING`)

	res, err := r.db.DB.ExecContext(ctx, query, email)
	if err != nil {
		return false, fmt.Errorf("failed to create subscriber: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}
