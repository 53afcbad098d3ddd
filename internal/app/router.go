package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/talentforge/talentforge/internal/auth"
	"github.com/talentforge/talentforge/internal/candidates"
	"github.com/talentforge/talentforge/internal/jds"
	"github.com/talentforge/talentforge/internal/observability"
	"github.com/talentforge/talentforge/internal/personas"
	"github.com/talentforge/talentforge/internal/roles"
	"github.com/talentforge/talentforge/internal/shared"
	"github.com/talentforge/talentforge/internal/users"
	"github.com/talentforge/talentforge/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager

	AuthHandler       *auth.Handler
	AuthService       *auth.Service
	TokenManager      *auth.TokenManager
	RolesHandler      *roles.Handler
	UsersHandler      *users.Handler
	JDHandler         *jds.Handler
	PersonaHandler    *personas.Handler
	CandidateHandler  *candidates.Handler
	JobHandler        *jobs.Handler

	Metrics *observability.Metrics
}

// NewRouter constructs the chi.Router with TalentForge defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)
	r.Use(auth.IdentityLoader(params.AuthService, params.TokenManager))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	params.AuthHandler.MountRoutes(r)

	// Everything below requires a resolved identity.
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireIdentity)

		if params.RolesHandler != nil {
			params.RolesHandler.MountRoutes(r)
		}
		if params.UsersHandler != nil {
			params.UsersHandler.MountRoutes(r)
		}
		if params.JDHandler != nil {
			params.JDHandler.MountRoutes(r)
		}
		if params.PersonaHandler != nil {
			params.PersonaHandler.MountRoutes(r)
		}
		if params.CandidateHandler != nil {
			params.CandidateHandler.MountRoutes(r)
		}
		if params.JobHandler != nil {
			r.Route("/jobs", params.JobHandler.MountRoutes)
		}
	})

	return r
}
