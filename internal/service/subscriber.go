package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/deppfellow/portfolio-backend/internal/model"
)

type SubscriberRepository interface {
	List(ctx context.Context) ([]model.Subscriber, error)
	Exists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, email string) (bool, error)
}

type SubscriberService struct {
	repo     SubscriberRepository
	notifier Notifier
	logger   *zerolog.Logger
}

func NewSubscriberService(repo SubscriberRepository, notifier Notifier, logger *zerolog.Logger) *SubscriberService {
	return &SubscriberService{repo: repo, notifier: notifier, logger: logger}
}

func (s *SubscriberService) List(ctx context.Context) ([]model.Subscriber, error) {
	return s.repo.List(ctx)
}

// Subscribe records email once. Repeated calls succeed without writing;
// it reports whether this call created the subscription.
func (s *SubscriberService) Subscribe(ctx context.Context, req *model.SubscribeRequest) (bool, error) {
	email := *req.Email

	exists, err := s.repo.Exists(ctx, email)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	// a concurrent subscribe may still win the race; the insert ignores it
	created, err := s.repo.Create(ctx, email)
	if err != nil {
		return false, err
	}

	if created && s.notifier != nil {
		if err := s.notifier.NotifySubscribed(ctx, email); err != nil {
			s.logger.Error().Err(err).Msg("failed to enqueue welcome email")
		}
	}

	return created, nil
}
