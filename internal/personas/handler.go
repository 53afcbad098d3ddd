package personas

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/talentforge/talentforge/internal/shared"
)

// Handler wires HTTP endpoints for persona management.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/jds/{jdID}/personas", h.ListByJD)
	r.Post("/personas", h.Create)
	r.Route("/personas/{id}", func(r chi.Router) {
		r.Get("/", h.Show)
		r.Delete("/", h.Delete)
		r.Put("/weights/{category}", h.UpdateWeight)
		r.Post("/normalize", h.Normalize)
		r.Get("/warnings", h.Warnings)
	})
}

type intervalPayload struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type createPayload struct {
	JobDescriptionID string                     `json:"job_description_id" validate:"required,uuid"`
	Name             string                     `json:"name" validate:"required"`
	Weights          map[string]float64         `json:"weights"`
	Intervals        map[string]intervalPayload `json:"intervals"`
	// Normalize defaults to true when the field is absent from the body.
	Normalize *bool `json:"normalize"`
}

type updateWeightPayload struct {
	Value           float64 `json:"value"`
	EnforceInterval bool    `json:"enforce_interval"`
}

type personaResponse struct {
	ID               uuid.UUID           `json:"id"`
	JobDescriptionID uuid.UUID           `json:"job_description_id"`
	Name             string              `json:"name"`
	Weights          map[string]float64  `json:"weights"`
	Intervals        map[string]Interval `json:"intervals,omitempty"`
	TotalWeight      float64             `json:"total_weight"`
}

func toResponse(p *Persona) personaResponse {
	return personaResponse{
		ID:               p.ID,
		JobDescriptionID: p.JobDescriptionID,
		Name:             p.Name,
		Weights:          p.Weights,
		Intervals:        p.Intervals,
		TotalWeight:      p.TotalWeight(),
	}
}

func requireIdentity(w http.ResponseWriter, r *http.Request) (shared.Identity, bool) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		shared.RespondError(w, shared.ErrInvalidCredentials)
	}
	return identity, ok
}

// Create builds a persona for a job description.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	var payload createPayload
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.RespondError(w, err)
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		shared.RespondError(w, shared.ErrInvalidInput)
		return
	}
	jdID, err := uuid.Parse(payload.JobDescriptionID)
	if err != nil {
		shared.RespondError(w, shared.ErrInvalidInput)
		return
	}
	var intervals map[string]Interval
	if len(payload.Intervals) > 0 {
		intervals = make(map[string]Interval, len(payload.Intervals))
		for category, band := range payload.Intervals {
			interval, err := NewInterval(band.Min, band.Max)
			if err != nil {
				shared.RespondError(w, err)
				return
			}
			intervals[category] = interval
		}
	}
	normalize := true
	if payload.Normalize != nil {
		normalize = *payload.Normalize
	}
	persona, err := h.service.Create(r.Context(), identity, CreateRequest{
		JobDescriptionID: jdID,
		Name:             payload.Name,
		Weights:          payload.Weights,
		Intervals:        intervals,
		Normalize:        normalize,
	})
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, toResponse(persona))
}

// Show returns one persona.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondError(w, shared.ErrInvalidInput)
		return
	}
	persona, err := h.service.Get(r.Context(), identity, id)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, toResponse(persona))
}

// ListByJD lists personas for a job description.
func (h *Handler) ListByJD(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	jdID, err := uuid.Parse(chi.URLParam(r, "jdID"))
	if err != nil {
		shared.RespondError(w, shared.ErrInvalidInput)
		return
	}
	list, err := h.service.ListByJD(r.Context(), identity, jdID)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	out := make([]personaResponse, 0, len(list))
	for i := range list {
		out = append(out, toResponse(&list[i]))
	}
	shared.RespondJSON(w, http.StatusOK, map[string]any{"personas": out})
}

// UpdateWeight replaces one category weight.
func (h *Handler) UpdateWeight(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondError(w, shared.ErrInvalidInput)
		return
	}
	category := chi.URLParam(r, "category")
	var payload updateWeightPayload
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.RespondError(w, err)
		return
	}
	persona, err := h.service.UpdateWeight(r.Context(), identity, id, category, payload.Value, payload.EnforceInterval)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, toResponse(persona))
}

// Normalize rescales weights to sum to one.
func (h *Handler) Normalize(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondError(w, shared.ErrInvalidInput)
		return
	}
	persona, err := h.service.Normalize(r.Context(), identity, id)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, toResponse(persona))
}

// Warnings lists advisory messages for the persona's weights.
func (h *Handler) Warnings(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondError(w, shared.ErrInvalidInput)
		return
	}
	warnings, err := h.service.Warnings(r.Context(), identity, id)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, map[string]any{"warnings": warnings})
}

// Delete removes a persona.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondError(w, shared.ErrInvalidInput)
		return
	}
	if err := h.service.Delete(r.Context(), identity, id); err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusNoContent, nil)
}
