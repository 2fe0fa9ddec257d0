package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/portfolio-backend/internal/database"
	"github.com/deppfellow/portfolio-backend/internal/model"
)

type ProjectRepository struct {
	db *database.Database
}

func NewProjectRepository(db *database.Database) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// List returns every project in insertion order.
func (r *ProjectRepository) List(ctx context.Context) ([]model.Project, error) {
	query := `
		SELECT id, name, description, image_url
		FROM projects
		ORDER BY id`

	rows, err := r.db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := make([]model.Project, 0)
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Image); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate projects: %w", err)
	}

	return projects, nil
}

// Create inserts p and sets its ID.
func (r *ProjectRepository) Create(ctx context.Context, p *model.Project) error {
	query := r.db.Rebind(`
		INSERT INTO projects (name, description, image_url)
		VALUES (?, ?, ?)
		RETURNING id`)

	if err := r.db.DB.QueryRowContext(ctx, query, p.Name, p.Description, p.Image).Scan(&p.ID); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}
