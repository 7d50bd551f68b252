package scheduler

import (
	"context"
	"fmt"

	"business_finder_backend/platform/config"
	"business_finder_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// SearchJobProcessor runs a stored async search job.
type SearchJobProcessor interface {
	ProcessSearchJob(ctx context.Context, jobID string) error
}

type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	processor SearchJobProcessor
	log       *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, processor SearchJobProcessor, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 4
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:    server,
		mux:       mux,
		processor: processor,
		log:       log,
	}

	mux.HandleFunc(TaskBusinessSearch, w.handleBusinessSearch)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("search worker stopped", "error", err)
	}
}

func (w *Worker) handleBusinessSearch(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseBusinessSearchPayload(task)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	ctx = context.WithValue(ctx, logger.JobIDKey, payload.JobID)
	log := w.log.WithContext(ctx)
	log.Info("processing business search job")
	if err := w.processor.ProcessSearchJob(ctx, payload.JobID); err != nil {
		log.Error("business search job failed", "error", err)
		return err
	}
	return nil
}
