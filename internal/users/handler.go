package users

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/talentforge/talentforge/internal/shared"
)

// Handler wires HTTP endpoints for user management.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validate: validator.New()}
}

// MountRoutes registers user routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/users", h.List)
	r.Post("/users", h.Create)
	r.Get("/users/{id}", h.Show)
	r.Post("/users/{id}/deactivate", h.Deactivate)
}

type createUserPayload struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	RoleID   string `json:"role_id" validate:"required,uuid"`
}

// List returns all users.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.logger.Error("list users", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, map[string]any{"users": list})
}

// Show returns one user.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondError(w, shared.ErrInvalidInput)
		return
	}
	user, err := h.service.Get(r.Context(), id)
	if err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusOK, user)
}

// Create provisions a new account.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var payload createUserPayload
	if err := shared.DecodeJSON(r, &payload); err != nil {
		shared.RespondError(w, err)
		return
	}
	if err := h.validate.Struct(payload); err != nil {
		shared.RespondError(w, shared.ErrInvalidInput)
		return
	}
	roleID, err := uuid.Parse(payload.RoleID)
	if err != nil {
		shared.RespondError(w, shared.ErrInvalidInput)
		return
	}
	user, err := h.service.Create(r.Context(), CreateUserRequest{
		Email:    payload.Email,
		Name:     payload.Name,
		Password: payload.Password,
		RoleID:   roleID,
	})
	if err != nil {
		if user != nil {
			// Account exists; only the email enqueue failed.
			h.logger.Warn("welcome email enqueue failed", slog.Any("error", err))
			shared.RespondJSON(w, http.StatusCreated, user)
			return
		}
		h.logger.Error("create user", slog.Any("error", err))
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusCreated, user)
}

// Deactivate disables an account.
func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		shared.RespondError(w, shared.ErrInvalidInput)
		return
	}
	if err := h.service.Deactivate(r.Context(), id); err != nil {
		shared.RespondError(w, err)
		return
	}
	shared.RespondJSON(w, http.StatusNoContent, nil)
}
