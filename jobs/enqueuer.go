package jobs

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Enqueuer submits workflow tasks through the Asynq client. It backs
// the enqueue ports of the users and jds services.
type Enqueuer struct {
	client *Client
}

// NewEnqueuer wraps a Client.
func NewEnqueuer(client *Client) *Enqueuer {
	return &Enqueuer{client: client}
}

// EnqueueRefinement submits a jd:refine task.
func (e *Enqueuer) EnqueueRefinement(ctx context.Context, jdID uuid.UUID) error {
	task, err := NewRefineJDTask(RefineJDPayload{JobDescriptionID: jdID})
	if err != nil {
		return err
	}
	_, err = e.client.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault), asynq.MaxRetry(3))
	return err
}

// EnqueueWelcomeEmail submits a mail:send task greeting a new user.
func (e *Enqueuer) EnqueueWelcomeEmail(ctx context.Context, email, name string) error {
	task, err := NewSendEmailTask(SendEmailPayload{
		To:      email,
		Subject: "Welcome to TalentForge",
		Body:    fmt.Sprintf("Hi %s,\n\nYour account is ready. Sign in to start working on job descriptions.\n", name),
	})
	if err != nil {
		return err
	}
	_, err = e.client.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
	return err
}
