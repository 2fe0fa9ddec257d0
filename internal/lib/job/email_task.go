package job

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"github.com/deppfellow/portfolio-backend/internal/model"
)

const (
	TaskWelcome             = "email:welcome"
	TaskContactNotification = "email:contact_notification"
)

// WelcomeEmailPayload is the JSON payload of a TaskWelcome task.
type WelcomeEmailPayload struct {
	To string `json:"to"`
}

// ContactNotificationPayload is the JSON payload of a TaskContactNotification task.
type ContactNotificationPayload struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Mobile   string `json:"mobile"`
	City     string `json:"city"`
}

// NewWelcomeEmailTask builds a task greeting a new subscriber.
func NewWelcomeEmailTask(to string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{To: to})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NewContactNotificationTask builds a task alerting the admin about q.
func NewContactNotificationTask(q *model.ContactQuery) (*asynq.Task, error) {
	payload, err := json.Marshal(ContactNotificationPayload{
		FullName: q.FullName,
		Email:    q.Email,
		Mobile:   q.Mobile,
		City:     q.City,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskContactNotification,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("critical"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NotifySubscribed enqueues a welcome email for email.
func (j *JobService) NotifySubscribed(ctx context.Context, email string) error {
	task, err := NewWelcomeEmailTask(email)
	if err != nil {
		return err
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return err
	}

	j.logger.Debug().Str("task_id", info.ID).Str("type", TaskWelcome).Msg("task enqueued")
	return nil
}

// NotifyContact enqueues an admin alert for q. Without an admin address
// there is nobody to notify and nothing is enqueued.
func (j *JobService) NotifyContact(ctx context.Context, q *model.ContactQuery) error {
	if j.adminEmail == "" {
		return nil
	}

	task, err := NewContactNotificationTask(q)
	if err != nil {
		return err
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return err
	}

	j.logger.Debug().Str("task_id", info.ID).Str("type", TaskContactNotification).Msg("task enqueued")
	return nil
}
