package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/talentforge/talentforge/internal/access"
	"github.com/talentforge/talentforge/internal/app"
	"github.com/talentforge/talentforge/internal/auth"
	"github.com/talentforge/talentforge/internal/candidates"
	"github.com/talentforge/talentforge/internal/jds"
	"github.com/talentforge/talentforge/internal/observability"
	"github.com/talentforge/talentforge/internal/personas"
	"github.com/talentforge/talentforge/internal/platform/cache"
	"github.com/talentforge/talentforge/internal/platform/db"
	"github.com/talentforge/talentforge/internal/roles"
	"github.com/talentforge/talentforge/internal/shared"
	"github.com/talentforge/talentforge/internal/users"
	"github.com/talentforge/talentforge/jobs"
)

// jdAccessGate adapts the jds repository and the access evaluator to
// the JD visibility port shared by the personas and candidates services.
type jdAccessGate struct {
	repo      jds.RepositoryPort
	evaluator *access.Evaluator
}

func (g jdAccessGate) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	return g.repo.Exists(ctx, id)
}

func (g jdAccessGate) CanAccess(ctx context.Context, user access.User, jdID uuid.UUID) (bool, error) {
	return g.evaluator.CanAccess(ctx, user, jdID)
}

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "talentforge_session", cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)
	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	auditLogger := shared.NewAuditLogger(dbpool)

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()
	enqueuer := jobs.NewEnqueuer(jobClient)

	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo)
	authHandler := auth.NewHandler(logger, authService, tokenManager, sessionManager)

	rolesRepo := roles.NewRepository(dbpool)
	rolesService := roles.NewService(rolesRepo)
	rolesHandler := roles.NewHandler(logger, rolesService)

	usersRepo := users.NewRepository(dbpool)
	usersService := users.NewService(usersRepo, enqueuer)
	usersHandler := users.NewHandler(logger, usersService)

	evaluator := access.NewEvaluator(access.NewRepository(dbpool))

	jdRepo := jds.NewRepository(dbpool)
	jdService := jds.NewService(logger, jdRepo, evaluator, enqueuer, auditLogger)
	jdHandler := jds.NewHandler(logger, jdService)

	jdGate := jdAccessGate{repo: jdRepo, evaluator: evaluator}

	personaRepo := personas.NewRepository(dbpool)
	personaService := personas.NewService(logger, personaRepo, jdGate, auditLogger)
	personaHandler := personas.NewHandler(logger, personaService)

	candidateRepo := candidates.NewRepository(dbpool)
	candidateService := candidates.NewService(logger, candidateRepo, jdGate, personaRepo, auditLogger)
	candidateHandler := candidates.NewHandler(logger, candidateService)

	metrics := observability.NewMetrics()

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		SessionManager:   sessionManager,
		CSRFManager:      csrfManager,
		AuthHandler:      authHandler,
		AuthService:      authService,
		TokenManager:     tokenManager,
		RolesHandler:     rolesHandler,
		UsersHandler:     usersHandler,
		JDHandler:        jdHandler,
		PersonaHandler:   personaHandler,
		CandidateHandler: candidateHandler,
		JobHandler:       jobHandler,
		Metrics:          metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
