package personas

import (
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentforge/talentforge/internal/shared"
)

func newTestHandler(t *testing.T) (*Handler, uuid.UUID) {
	t.Helper()
	service, _, _, jdID := newTestService(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(logger, service), jdID
}

func postCreate(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	h.MountRoutes(r)
	req := httptest.NewRequest(http.MethodPost, "/personas", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(shared.ContextWithIdentity(req.Context(), recruiter()))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateNormalizesWhenFieldOmitted(t *testing.T) {
	h, jdID := newTestHandler(t)
	body := `{"job_description_id":"` + jdID.String() + `","name":"Backend","weights":{"Technical":0.9,"Cognitive":0.9}}`
	rec := postCreate(t, h, body)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var resp personaResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.InDelta(t, 0.5, resp.Weights["Technical"], 1e-9)
	assert.InDelta(t, 0.5, resp.Weights["Cognitive"], 1e-9)
	assert.True(t, math.Abs(resp.TotalWeight-1) <= SumTolerance)
}

func TestCreateHonorsExplicitNormalizeFalse(t *testing.T) {
	h, jdID := newTestHandler(t)
	body := `{"job_description_id":"` + jdID.String() + `","name":"Backend","weights":{"Technical":0.9,"Cognitive":0.9},"normalize":false}`
	rec := postCreate(t, h, body)

	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}
