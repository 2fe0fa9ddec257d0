package handler

import (
	"github.com/deppfellow/portfolio-backend/internal/server"
	"github.com/deppfellow/portfolio-backend/internal/service"
)

// Handlers groups every HTTP handler so the router receives one value.
type Handlers struct {
	Health     *HealthHandler
	Page       *PageHandler
	Upload     *UploadHandler
	Project    *ProjectHandler
	Client     *ClientHandler
	Contact    *ContactHandler
	Subscriber *SubscriberHandler
}

// NewHandlers fails when the page templates cannot be parsed.
func NewHandlers(s *server.Server, services *service.Services) (*Handlers, error) {
	page, err := NewPageHandler(s)
	if err != nil {
		return nil, err
	}

	return &Handlers{
		Health:     NewHealthHandler(s),
		Page:       page,
		Upload:     NewUploadHandler(s),
		Project:    NewProjectHandler(s, services.Projects),
		Client:     NewClientHandler(s, services.Clients),
		Contact:    NewContactHandler(s, services.Contacts),
		Subscriber: NewSubscriberHandler(s, services.Subscribers),
	}, nil
}
