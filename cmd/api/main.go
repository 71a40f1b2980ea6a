package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mediagent_backend/internal/adapters/storage"
	"mediagent_backend/internal/agents"
	"mediagent_backend/internal/auth"
	"mediagent_backend/internal/email"
	"mediagent_backend/internal/events"
	apphttp "mediagent_backend/internal/http"
	"mediagent_backend/internal/http/router"
	"mediagent_backend/internal/leadgen"
	"mediagent_backend/internal/leads"
	leadsservice "mediagent_backend/internal/leads/service"
	"mediagent_backend/internal/scheduler"
	"mediagent_backend/platform/config"
	"mediagent_backend/platform/db"
	"mediagent_backend/platform/logger"
	"mediagent_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()
	log.Info("database connection established")

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	enqueuer, closeEnqueuer := initEnrichmentQueue(cfg, log)
	if closeEnqueuer != nil {
		defer closeEnqueuer()
	}

	sender, err := email.NewSender(cfg)
	if err != nil {
		log.Error("failed to initialize email sender", "error", err)
		panic("failed to initialize email sender: " + err.Error())
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// Object storage for agent workspace files (MinIO)
	var objectStore storage.ObjectStore
	if cfg.IsMinIOEnabled() {
		minioStore, err := storage.NewMinIOStore(cfg)
		if err != nil {
			log.Error("failed to initialize object storage", "error", err)
			panic("failed to initialize object storage: " + err.Error())
		}
		if err := withRetry(ctx, log, "ensure agent files bucket", 5, 2*time.Second, func() error {
			return minioStore.EnsureBucketExists(ctx, cfg.GetMinioBucketAgentFiles())
		}); err != nil {
			log.Error("failed to ensure storage bucket exists", "error", err, "bucket", cfg.GetMinioBucketAgentFiles())
			panic("failed to ensure storage bucket exists: " + err.Error())
		}
		objectStore = minioStore
		log.Info("object storage initialized", "bucket", cfg.GetMinioBucketAgentFiles())
	} else {
		log.Warn("MinIO not configured; agent file storage disabled")
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	// Email module subscribes to auth events (not HTTP-facing)
	emailModule := email.NewModule(sender, cfg, log)
	emailModule.RegisterHandlers(eventBus)

	authModule := auth.NewModule(pool, cfg, eventBus, log, val)
	leadsModule := leads.NewModule(pool, eventBus, enqueuer, log, val)
	leadsRepo := leadsModule.Service().Repository()
	agentsModule := agents.NewModule(pool, leadsRepo, objectStore, cfg.GetMinioBucketAgentFiles(), log, val)
	leadgenModule := leadgen.NewModule(cfg, leadsRepo, sender, eventBus, log, val)

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   db.NewPoolAdapter(pool),
		EventBus: eventBus,
		Modules: []apphttp.Module{
			authModule,
			agentsModule,
			leadsModule,
			leadgenModule,
		},
	}

	engine := router.New(app)
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func initEnrichmentQueue(cfg config.SchedulerConfig, log *logger.Logger) (leadsservice.Enqueuer, func()) {
	if cfg.GetRedisURL() == "" {
		log.Warn("REDIS_URL not configured; background lead enrichment disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize task queue client", "error", err)
		return nil, nil
	}

	return client, func() {
		_ = client.Close()
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
