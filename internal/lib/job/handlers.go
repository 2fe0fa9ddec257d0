package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/deppfellow/portfolio-backend/internal/lib/email"
)

func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w: %w", err, asynq.SkipRetry)
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("processing welcome email task")

	if err := j.mailer.SendWelcomeEmail(ctx, p.To); err != nil {
		j.logger.Error().
			Str("type", "welcome").
			Str("to", p.To).
			Err(err).
			Msg("failed to send welcome email")
		return err
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("successfully sent welcome email")

	return nil
}

func (j *JobService) handleContactNotificationTask(ctx context.Context, t *asynq.Task) error {
	var p ContactNotificationPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal contact notification payload: %w: %w", err, asynq.SkipRetry)
	}

	j.logger.Info().
		Str("type", "contact_notification").
		Str("from", p.Email).
		Msg("processing contact notification task")

	err := j.mailer.SendContactNotification(ctx, j.adminEmail, email.ContactDetails{
		FullName: p.FullName,
		Email:    p.Email,
		Mobile:   p.Mobile,
		City:     p.City,
	})
	if err != nil {
		j.logger.Error().
			Str("type", "contact_notification").
			Err(err).
			Msg("failed to send contact notification")
		return err
	}

	return nil
}
