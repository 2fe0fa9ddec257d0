package service

import (
	"context"

	"github.com/deppfellow/portfolio-backend/internal/model"
	"github.com/deppfellow/portfolio-backend/internal/storage"
)

type ClientRepository interface {
	List(ctx context.Context) ([]model.Client, error)
	Create(ctx context.Context, c *model.Client) error
}

type ClientService struct {
	repo  ClientRepository
	store storage.Store
}

func NewClientService(repo ClientRepository, store storage.Store) *ClientService {
	return &ClientService{repo: repo, store: store}
}

func (s *ClientService) List(ctx context.Context) ([]model.Client, error) {
	return s.repo.List(ctx)
}

func (s *ClientService) Create(ctx context.Context, req *model.CreateClientRequest, image ImageUpload) (*model.Client, error) {
	name, err := saveImage(ctx, s.store, image)
	if err != nil {
		return nil, err
	}

	client := req.Client(name)
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}

	return client, nil
}
