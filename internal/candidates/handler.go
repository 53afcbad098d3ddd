package candidates

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/talentforge/talentforge/internal/shared"
)

// Handler wires HTTP endpoints for the candidate pipeline.
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
	r.Get("/jds/{jdID}/candidates", h.ListByJD)
	r.Post("/candidates", h.Create)
	r.Route("/candidates/{id}", func(r chi.Router) {
		r.Get("/", h.Show)
		r.Delete("/", h.Delete)
		r.Post("/scores", h.Score)
		r.Post("/status", h.Advance)
	})
}

type createPayload struct {
	JobDescriptionID string `json:"job_description_id" validate:"required,uuid"`
	Name             string `json:"name" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
}

type scorePayload struct {
	PersonaID string             `json:"persona_id" validate:"required,uuid"`
	Scores    map[string]float64 `json:"scores" validate:"required"`
}

type statusPayload struct {
	Status string `json:"status" validate:"required"`
}

func requireIdentity(w http.ResponseWriter, r *http.Request) (shared.Identity, bool) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		shared.RespondError(w, shared.ErrInvalidCredentials)
	}
	return identity, ok
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, shared.ErrInvalidInput
	}
	return id, nil
}

// Create registers an applicant.
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
	candidate, err := h.service.Create(r.Context(), identity, CreateRequest{
		JobDescriptionID: jdID,
		Name:             payload.Name,
		Email:            payload.Email,
	})
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, candidate)
}

// Show returns one candidate.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	candidate, err := h.service.Get(r.Context(), identity, id)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, candidate)
}

// ListByJD lists candidates for a job description.
func (h *Handler) ListByJD(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	jdID, err := pathID(r, "jdID")
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	list, err := h.service.ListByJD(r.Context(), identity, jdID)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, map[string]any{"candidates": list})
}

// Score stores category scores under a persona.
func (h *Handler) Score(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	var payload scorePayload
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.RespondError(w, err)
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		shared.RespondError(w, shared.ErrInvalidInput)
		return
	}
	personaID, err := uuid.Parse(payload.PersonaID)
	if err != nil {
		shared.RespondError(w, shared.ErrInvalidInput)
		return
	}
	candidate, err := h.service.Score(r.Context(), identity, id, personaID, payload.Scores)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, candidate)
}

// Advance moves the pipeline status.
func (h *Handler) Advance(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	var payload statusPayload
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.RespondError(w, err)
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		shared.RespondError(w, shared.ErrInvalidInput)
		return
	}
	if err := h.service.Advance(r.Context(), identity, id, Status(payload.Status)); err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusNoContent, nil)
}

// Delete removes a candidate.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), identity, id); err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusNoContent, nil)
}
