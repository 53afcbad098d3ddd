package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/talentforge/talentforge/internal/observability"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeSendEmail is the task type for sending transactional emails.
	TaskTypeSendEmail = "mail:send"
	// TaskTypeRefineJD is the task type for language-model refinement of
	// a job description draft.
	TaskTypeRefineJD = "jd:refine"
)

// SendEmailPayload describes the information required to send an email.
type SendEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// NewSendEmailTask constructs an Asynq task.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data), nil
}

// RefineJDPayload identifies the draft to refine.
type RefineJDPayload struct {
	JobDescriptionID uuid.UUID `json:"job_description_id"`
}

// NewRefineJDTask constructs an Asynq task.
func NewRefineJDTask(payload RefineJDPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeRefineJD, data), nil
}

// Mailer delivers transactional email. The SMTP implementation lives in
// mailer.go; tests substitute a recorder.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SendEmailJob processes TaskTypeSendEmail tasks.
type SendEmailJob struct {
	Mailer  Mailer
	Logger  *slog.Logger
	Metrics *observability.Metrics
}

// Handle delivers one email and records the outcome.
func (j *SendEmailJob) Handle(ctx context.Context, t *asynq.Task) error {
	err := j.handle(ctx, t)
	j.Metrics.ObserveJob(TaskTypeSendEmail, err)
	return err
}

func (j *SendEmailJob) handle(ctx context.Context, t *asynq.Task) error {
	var payload SendEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if err := j.Mailer.Send(ctx, payload.To, payload.Subject, payload.Body); err != nil {
		j.Logger.Error("send email", slog.String("to", payload.To), slog.Any("error", err))
		return err
	}
	j.Logger.Info("email sent", slog.String("to", payload.To), slog.String("subject", payload.Subject))
	return nil
}
