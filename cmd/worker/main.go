package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/talentforge/talentforge/internal/access"
	"github.com/talentforge/talentforge/internal/app"
	"github.com/talentforge/talentforge/internal/jds"
	"github.com/talentforge/talentforge/internal/observability"
	"github.com/talentforge/talentforge/internal/platform/cache"
	"github.com/talentforge/talentforge/internal/platform/db"
	"github.com/talentforge/talentforge/internal/refine"
	"github.com/talentforge/talentforge/internal/shared"
	"github.com/talentforge/talentforge/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
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

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect database", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

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

	refiner, err := refine.NewGeminiRefiner(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		logger.Error("init refiner", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := refiner.Close(); err != nil {
			logger.Warn("refiner close", slog.Any("error", err))
		}
	}()

	jdRepo := jds.NewRepository(pool)
	evaluator := access.NewEvaluator(access.NewRepository(pool))
	auditLogger := shared.NewAuditLogger(pool)
	// The worker never enqueues follow-up refinements; a nil enqueuer
	// would only be reached through PrepareRefinement, which only the
	// HTTP server calls.
	jdService := jds.NewService(logger, jdRepo, evaluator, nil, auditLogger)

	metrics := observability.NewMetrics()
	refineJob := jobs.NewRefineJDJob(jdService, refiner, logger, metrics)
	mailJob := &jobs.SendEmailJob{
		Mailer:  jobs.NewSMTPMailer(cfg.SMTPAddr(), cfg.SMTPFrom, nil),
		Logger:  logger,
		Metrics: metrics,
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	metricsSrv := &http.Server{Addr: cfg.WorkerAddr, Handler: mux}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", slog.Any("error", err))
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics server shutdown", slog.Any("error", err))
		}
	}()

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskTypeRefineJD, Handler: refineJob.Handle},
			{Type: jobs.TaskTypeSendEmail, Handler: mailJob.Handle},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && err != context.Canceled {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
