package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/talentforge/talentforge/internal/observability"
	"github.com/talentforge/talentforge/internal/refine"
	"github.com/talentforge/talentforge/internal/shared"
)

// JDStore is the slice of the job-description service the worker needs.
type JDStore interface {
	Draft(ctx context.Context, id uuid.UUID) (roleTitle, text string, err error)
	ApplyRefinement(ctx context.Context, id uuid.UUID, refined string) error
}

// RefineJDJob processes TaskTypeRefineJD tasks: load the draft, call
// the refiner, store the result.
type RefineJDJob struct {
	Store   JDStore
	Refiner refine.TextRefiner
	Logger  *slog.Logger
	Metrics *observability.Metrics
}

// NewRefineJDJob initialises the refinement handler.
func NewRefineJDJob(store JDStore, refiner refine.TextRefiner, logger *slog.Logger, metrics *observability.Metrics) *RefineJDJob {
	return &RefineJDJob{Store: store, Refiner: refiner, Logger: logger, Metrics: metrics}
}

// Handle executes one refinement and records the outcome.
func (j *RefineJDJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Store == nil || j.Refiner == nil {
		return errors.New("refine jd: handler not configured")
	}
	err := j.handle(ctx, t)
	j.Metrics.ObserveJob(TaskTypeRefineJD, err)
	return err
}

func (j *RefineJDJob) handle(ctx context.Context, t *asynq.Task) error {
	var payload RefineJDPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}

	roleTitle, text, err := j.Store.Draft(ctx, payload.JobDescriptionID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// The record was deleted between enqueue and execution.
			return asynq.SkipRetry
		}
		return err
	}

	refined, err := j.Refiner.Refine(ctx, roleTitle, text)
	if err != nil {
		j.Logger.Error("refine jd", slog.String("jd_id", payload.JobDescriptionID.String()), slog.Any("error", err))
		return err
	}
	if err := j.Store.ApplyRefinement(ctx, payload.JobDescriptionID, refined); err != nil {
		return err
	}
	j.Logger.Info("jd refined", slog.String("jd_id", payload.JobDescriptionID.String()))
	return nil
}
