package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentforge/talentforge/internal/observability"
	"github.com/talentforge/talentforge/internal/shared"
)

type stubStore struct {
	roleTitle string
	text      string
	draftErr  error
	applied   map[uuid.UUID]string
}

func (s *stubStore) Draft(ctx context.Context, id uuid.UUID) (string, string, error) {
	if s.draftErr != nil {
		return "", "", s.draftErr
	}
	return s.roleTitle, s.text, nil
}

func (s *stubStore) ApplyRefinement(ctx context.Context, id uuid.UUID, refined string) error {
	if s.applied == nil {
		s.applied = map[uuid.UUID]string{}
	}
	s.applied[id] = refined
	return nil
}

type stubRefiner struct {
	out string
	err error
}

func (s *stubRefiner) Refine(ctx context.Context, roleTitle, text string) (string, error) {
	return s.out, s.err
}

func refineTask(t *testing.T, id uuid.UUID) *asynq.Task {
	t.Helper()
	task, err := NewRefineJDTask(RefineJDPayload{JobDescriptionID: id})
	require.NoError(t, err)
	return task
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRefineJDJobAppliesResult(t *testing.T) {
	store := &stubStore{roleTitle: "Engineer", text: "Build software"}
	job := NewRefineJDJob(store, &stubRefiner{out: "Build great software"}, discardLogger(), nil)

	id := uuid.New()
	require.NoError(t, job.Handle(context.Background(), refineTask(t, id)))
	assert.Equal(t, "Build great software", store.applied[id])
}

func TestRefineJDJobSkipsDeletedRecords(t *testing.T) {
	store := &stubStore{draftErr: shared.ErrNotFound}
	job := NewRefineJDJob(store, &stubRefiner{out: "x"}, discardLogger(), nil)

	err := job.Handle(context.Background(), refineTask(t, uuid.New()))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestRefineJDJobPropagatesRefinerError(t *testing.T) {
	store := &stubStore{roleTitle: "Engineer", text: "Build software"}
	job := NewRefineJDJob(store, &stubRefiner{err: errors.New("quota exhausted")}, discardLogger(), nil)

	err := job.Handle(context.Background(), refineTask(t, uuid.New()))
	require.Error(t, err)
	assert.Empty(t, store.applied)
}

func TestRefineJDJobRejectsMalformedPayload(t *testing.T) {
	store := &stubStore{roleTitle: "Engineer", text: "Build software"}
	job := NewRefineJDJob(store, &stubRefiner{out: "x"}, discardLogger(), nil)

	err := job.Handle(context.Background(), asynq.NewTask(TaskTypeRefineJD, []byte("not json")))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestRefineJDJobCountsOutcomes(t *testing.T) {
	metrics := observability.NewMetrics()
	okStore := &stubStore{roleTitle: "Engineer", text: "Build software"}
	okJob := NewRefineJDJob(okStore, &stubRefiner{out: "x"}, discardLogger(), metrics)
	require.NoError(t, okJob.Handle(context.Background(), refineTask(t, uuid.New())))

	failJob := NewRefineJDJob(okStore, &stubRefiner{err: errors.New("quota exhausted")}, discardLogger(), metrics)
	require.Error(t, failJob.Handle(context.Background(), refineTask(t, uuid.New())))

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	assert.Contains(t, body, `talentforge_jobs_total{outcome="ok",task="jd:refine"} 1`)
	assert.Contains(t, body, `talentforge_jobs_total{outcome="error",task="jd:refine"} 1`)
}

func TestSendEmailPayloadRoundTrip(t *testing.T) {
	task, err := NewSendEmailTask(SendEmailPayload{To: "jane@example.com", Subject: "Welcome", Body: "Hi"})
	require.NoError(t, err)
	var payload SendEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "jane@example.com", payload.To)
}
