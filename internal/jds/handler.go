package jds

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/talentforge/talentforge/internal/shared"
	"github.com/talentforge/talentforge/internal/textdiff"
)

// Handler wires HTTP endpoints for the job-description workflow.
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
	r.Route("/jds", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Show)
			r.Patch("/", h.Update)
			r.Get("/assignments", h.Assignments)
			r.Post("/assignments", h.Assign)
			r.Delete("/assignments/{managerID}", h.Unassign)
			r.Post("/refine", h.Refine)
			r.Get("/diff", h.Diff)
			r.Post("/finalize", h.Finalize)
		})
	})
}

type createPayload struct {
	Title     string `json:"title" validate:"required"`
	RoleTitle string `json:"role_title"`
	Text      string `json:"text" validate:"required"`
}

type updatePayload struct {
	Title       *string `json:"title"`
	RoleTitle   *string `json:"role_title"`
	Text        *string `json:"text"`
	RefinedText *string `json:"refined_text"`
}

type assignPayload struct {
	HiringManagerID string `json:"hiring_manager_id" validate:"required,uuid"`
}

type finalizePayload struct {
	FinalText string `json:"final_text"`
}

func identityAndID(r *http.Request) (shared.Identity, uuid.UUID, error) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		return shared.Identity{}, uuid.Nil, shared.ErrInvalidCredentials
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return shared.Identity{}, uuid.Nil, shared.ErrInvalidInput
	}
	return identity, id, nil
}

// List returns the caller's visible job descriptions.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		shared.RespondError(w, shared.ErrInvalidCredentials)
		return
	}
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	pagination := shared.NewPagination(page, perPage, 0)

	list, err := h.service.List(r.Context(), identity, pagination)
	if err != nil {
		h.logger.Error("list jds", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, map[string]any{
		"job_descriptions": list,
		"page":             pagination.Page,
		"per_page":         pagination.PerPage,
	})
}

// Create opens a new draft.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := shared.IdentityFromContext(r.Context())
	if !ok {
		shared.RespondError(w, shared.ErrInvalidCredentials)
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
	jd, err := h.service.Create(r.Context(), identity, CreateRequest{
		Title:     payload.Title,
		RoleTitle: payload.RoleTitle,
		Text:      payload.Text,
	})
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, jd)
}

// Show returns one job description.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	identity, id, err := identityAndID(r)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	jd, err := h.service.Get(r.Context(), identity, id)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, jd)
}

// Update patches mutable fields.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	identity, id, err := identityAndID(r)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	var payload updatePayload
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.RespondError(w, err)
		return
	}
	jd, err := h.service.UpdatePartial(r.Context(), identity, id, UpdateFields{
		Title:       payload.Title,
		RoleTitle:   payload.RoleTitle,
		Text:        payload.Text,
		RefinedText: payload.RefinedText,
	})
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, jd)
}

// Assignments lists linked hiring managers.
func (h *Handler) Assignments(w http.ResponseWriter, r *http.Request) {
	identity, id, err := identityAndID(r)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	list, err := h.service.Assignments(r.Context(), identity, id)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, map[string]any{"assignments": list})
}

// Assign links a hiring manager.
func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	identity, id, err := identityAndID(r)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	var payload assignPayload
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.RespondError(w, err)
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		shared.RespondError(w, shared.ErrInvalidInput)
		return
	}
	managerID, err := uuid.Parse(payload.HiringManagerID)
	if err != nil {
		shared.RespondError(w, shared.ErrInvalidInput)
		return
	}
	if err := h.service.AssignHiringManager(r.Context(), identity, id, managerID); err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusNoContent, nil)
}

// Unassign removes a hiring manager link.
func (h *Handler) Unassign(w http.ResponseWriter, r *http.Request) {
	identity, id, err := identityAndID(r)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	managerID, err := uuid.Parse(chi.URLParam(r, "managerID"))
	if err != nil {
		shared.RespondError(w, shared.ErrInvalidInput)
		return
	}
	if err := h.service.UnassignHiringManager(r.Context(), identity, id, managerID); err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusNoContent, nil)
}

// Refine kicks off background refinement.
func (h *Handler) Refine(w http.ResponseWriter, r *http.Request) {
	identity, id, err := identityAndID(r)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	if err := h.service.PrepareRefinement(r.Context(), identity, id); err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusAccepted, map[string]any{"status": StatusRefining})
}

// Diff renders the original-vs-refined comparison. The mode query
// parameter selects the rendering; table is the default.
func (h *Handler) Diff(w http.ResponseWriter, r *http.Request) {
	identity, id, err := identityAndID(r)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	mode := textdiff.Mode(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = textdiff.ModeTable
	}
	result, err := h.service.Diff(r.Context(), identity, id, mode)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, result)
}

// Finalize locks in the final wording.
func (h *Handler) Finalize(w http.ResponseWriter, r *http.Request) {
	identity, id, err := identityAndID(r)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	var payload finalizePayload
	if r.ContentLength > 0 {
		if err := shared.DecodeJSON(r, &payload); err != nil {
			shared.RespondError(w, err)
			return
		}
	}
	jd, err := h.service.Finalize(r.Context(), identity, id, payload.FinalText)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, jd)
}
