package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/portfolio-backend/internal/database"
	"github.com/deppfellow/portfolio-backend/internal/model"
)

type ClientRepository struct {
	db *database.Database
}

func NewClientRepository(db *database.Database) *ClientRepository {
	return &ClientRepository{db: db}
}

func (r *ClientRepository) List(ctx context.Context) ([]model.Client, error) {
	query := `
		SELECT id, name, description, designation, image_url
		FROM clients
		ORDER BY id`

	rows, err := r.db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	clients := make([]model.Client, 0)
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Designation, &c.Image); err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %w", err)
	}

	return clients, nil
}

func (r *ClientRepository) Create(ctx context.Context, c *model.Client) error {
	query := r.db.Rebind(`
		INSERT INTO clients (name, description, designation, image_url)
		VALUES (?, ?, ?, ?)
		RETURNING id`)

	err := r.db.DB.QueryRowContext(ctx, query, c.Name, c.Description, c.Designation, c.Image).Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}
