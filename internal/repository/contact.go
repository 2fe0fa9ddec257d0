package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/portfolio-backend/internal/database"
	"github.com/deppfellow/portfolio-backend/internal/model"
)

type ContactRepository struct {
	db *database.Database
}

func NewContactRepository(db *database.Database) *ContactRepository {
	return &ContactRepository{db: db}
}

// List returns contact queries newest first. Equal timestamps fall back to
// the later insert first.
func (r *ContactRepository) List(ctx context.Context) ([]model.ContactQuery, error) {
	query := `
		SELECT id, full_name, email, mobile, city, timestamp
		FROM contact_queries
		ORDER BY timestamp DESC, id DESC`

	rows, err := r.db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact queries: %w", err)
	}
	defer rows.Close()

	queries := make([]model.ContactQuery, 0)
	for rows.Next() {
		var q model.ContactQuery
		if err := rows.Scan(&q.ID, &q.FullName, &q.Email, &q.Mobile, &q.City, &q.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan contact query: %w", err)
		}
		queries = append(queries, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate contact queries: %w", err)
	}

	return queries, nil
}

func (r *ContactRepository) Create(ctx context.Context, q *model.ContactQuery) error {
	query := r.db.Rebind(`
		INSERT INTO contact_queries (full_name, email, mobile, city, timestamp)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id`)

	err := r.db.DB.QueryRowContext(ctx, query, q.FullName, q.Email, q.Mobile, q.City, q.Timestamp).Scan(&q.ID)
	if err != nil {
		return fmt.Errorf("failed to create contact query: %w", err)
	}
	return nil
}
