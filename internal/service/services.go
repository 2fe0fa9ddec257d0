// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives
// validated data from the handler, performs business operations and
// calls repository methods to interact with the data.
package service

import (
	"context"

	"github.com/deppfellow/portfolio-backend/internal/model"
	"github.com/deppfellow/portfolio-backend/internal/repository"
	"github.com/deppfellow/portfolio-backend/internal/server"
)

// Notifier enqueues background notifications. A nil Notifier disables them.
type Notifier interface {
	NotifySubscribed(ctx context.Context, email string) error
	NotifyContact(ctx context.Context, q *model.ContactQuery) error
}

type Services struct {
	Projects    *ProjectService
	Clients     *ClientService
	Contacts    *ContactService
	Subscribers *SubscriberService
}

func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	var notifier Notifier
	if s.Job != nil {
		notifier = s.Job
	}

	return &Services{
		Projects:    NewProjectService(repos.Projects, s.Storage),
		Clients:     NewClientService(repos.Clients, s.Storage),
		Contacts:    NewContactService(repos.Contacts, notifier, s.Logger),
		Subscribers: NewSubscriberService(repos.Subscribers, notifier, s.Logger),
	}, nil
}
