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

	"business_finder_backend/internal/businesses"
	"business_finder_backend/internal/events"
	"business_finder_backend/internal/history"
	historyrepo "business_finder_backend/internal/history/repository"
	apphttp "business_finder_backend/internal/http"
	"business_finder_backend/internal/http/router"
	"business_finder_backend/internal/scheduler"
	"business_finder_backend/internal/searchjobs"
	"business_finder_backend/platform/config"
	"business_finder_backend/platform/db"
	"business_finder_backend/platform/logger"
	"business_finder_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	health := map[string]apphttp.HealthChecker{}

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Optional Infrastructure
	// ========================================================================

	var historySvc *history.Service
	if cfg.IsDatabaseEnabled() {
		pool := connectDatabase(ctx, cfg, log)
		defer pool.Close()
		health["database"] = db.NewPoolAdapter(pool)

		historySvc = history.NewService(historyrepo.New(pool), log)
		historySvc.RegisterHandlers(eventBus)
	} else {
		log.Warn("DATABASE_URL not configured; search history disabled")
	}

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	businessesModule, err := businesses.NewModule(cfg, eventBus, val, log)
	if err != nil {
		log.Error("failed to initialize businesses module", "error", err)
		panic("failed to initialize businesses module: " + err.Error())
	}

	jobsSvc, closeJobs := initSearchJobs(cfg, businessesModule, health, log)
	if closeJobs != nil {
		defer closeJobs()
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   health,
		EventBus: eventBus,
		Modules: []apphttp.Module{
			businessesModule,
			searchjobs.NewModule(jobsSvc, val),
			history.NewModule(historySvc),
		},
	}

	engine := router.New(app)
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
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
		eventBus.Wait()
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func connectDatabase(ctx context.Context, cfg *config.Config, log *logger.Logger) *pgxpool.Pool {
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
	log.Info("database connection established")

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, pool)
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	return pool
}

// initSearchJobs returns a nil service when REDIS_URL is unset so the job
// routes answer 503.
func initSearchJobs(cfg *config.Config, mod *businesses.Module, health map[string]apphttp.HealthChecker, log *logger.Logger) (*searchjobs.Service, func()) {
	if !cfg.IsSchedulerEnabled() {
		log.Warn("REDIS_URL not configured; async search jobs disabled")
		return nil, nil
	}

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize search job client", "error", err)
		return nil, nil
	}

	opt, err := scheduler.RedisOptions(cfg.GetRedisURL(), cfg.GetRedisTLSInsecure())
	if err != nil {
		_ = client.Close()
		log.Error("failed to parse REDIS_URL", "error", err)
		return nil, nil
	}
	rdb := redis.NewClient(opt)
	store := searchjobs.NewStore(rdb, cfg.GetSearchJobTTL())
	health["redis"] = store

	return searchjobs.NewService(store, client, mod.Service(), log), func() {
		_ = client.Close()
		_ = rdb.Close()
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
