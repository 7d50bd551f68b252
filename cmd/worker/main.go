package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"business_finder_backend/internal/businesses"
	"business_finder_backend/internal/events"
	"business_finder_backend/internal/history"
	historyrepo "business_finder_backend/internal/history/repository"
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

	log := logger.New(cfg.Env)
	log.Info("starting search worker", "env", cfg.Env)

	if !cfg.IsSchedulerEnabled() {
		panic("search worker requires REDIS_URL")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	eventBus := events.NewInMemoryBus(log)

	// Searches run by the worker are recorded too when a database is configured.
	if cfg.IsDatabaseEnabled() {
		pool := connectDatabase(ctx, cfg, log)
		defer pool.Close()
		history.NewService(historyrepo.New(pool), log).RegisterHandlers(eventBus)
	}

	businessesModule, err := businesses.NewModule(cfg, eventBus, validator.New(), log)
	if err != nil {
		log.Error("failed to initialize businesses module", "error", err)
		panic("failed to initialize businesses module: " + err.Error())
	}

	opt, err := scheduler.RedisOptions(cfg.GetRedisURL(), cfg.GetRedisTLSInsecure())
	if err != nil {
		log.Error("failed to parse REDIS_URL", "error", err)
		panic("failed to parse REDIS_URL: " + err.Error())
	}
	rdb := redis.NewClient(opt)
	defer func() { _ = rdb.Close() }()

	jobs := searchjobs.NewService(searchjobs.NewStore(rdb, cfg.GetSearchJobTTL()), nil, businessesModule.Service(), log)

	worker, err := scheduler.NewWorker(cfg, jobs, log)
	if err != nil {
		log.Error("failed to initialize search worker", "error", err)
		panic("failed to initialize search worker: " + err.Error())
	}

	worker.Run(ctx)
	eventBus.Wait()
}

// connectDatabase opens the pool and applies migrations, so the worker can
// record searches even when it starts before the API.
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

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, pool)
	}); err != nil {
		pool.Close()
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

	return pool
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
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
