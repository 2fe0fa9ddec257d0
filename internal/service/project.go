package service

import (
	"context"

	"github.com/deppfellow/portfolio-backend/internal/model"
	"github.com/deppfellow/portfolio-backend/internal/storage"
)

type ProjectRepository interface {
	List(ctx context.Context) ([]model.Project, error)
	Create(ctx context.Context, p *model.Project) error
}

type ProjectService struct {
	repo  ProjectRepository
	store storage.Store
}

func NewProjectService(repo ProjectRepository, store storage.Store) *ProjectService {
	return &ProjectService{repo: repo, store: store}
}

func (s *ProjectService) List(ctx context.Context) ([]model.Project, error) {
	return s.repo.List(ctx)
}

// Create saves the image, then inserts the project. A failed insert leaves
// the saved image in place.
func (s *ProjectService) Create(ctx context.Context, req *model.CreateProjectRequest, image ImageUpload) (*model.Project, error) {
	name, err := saveImage(ctx, s.store, image)
	if err != nil {
		return nil, err
	}

	project := req.Project(name)
	if err := s.repo.Create(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}
