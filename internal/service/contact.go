package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/deppfellow/portfolio-backend/internal/model"
)

type ContactRepository interface {
	List(ctx context.Context) ([]model.ContactQuery, error)
	Create(ctx context.Context, q *model.ContactQuery) error
}

type ContactService struct {
	repo     ContactRepository
	notifier Notifier
	logger   *zerolog.Logger

	// now is replaced in tests.
	now func() time.Time
}

func NewContactService(repo ContactRepository, notifier Notifier, logger *zerolog.Logger) *ContactService {
	return &ContactService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// List returns contact queries newest first.
func (s *ContactService) List(ctx context.Context) ([]model.ContactQuery, error) {
	return s.repo.List(ctx)
}

// Create stores the query stamped with the current UTC time and, when
// notifications are on, enqueues an alert for the site admin.
func (s *ContactService) Create(ctx context.Context, req *model.CreateContactRequest) (*model.ContactQuery, error) {
	query := req.ContactQuery(s.now().UTC())
	if err := s.repo.Create(ctx, query); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyContact(ctx, query); err != nil {
			s.logger.Error().Err(err).Int64("contact_query_id", query.ID).Msg("failed to enqueue contact notification")
		}
	}

	return query, nil
}
