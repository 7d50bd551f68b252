package searchjobs

import (
	"context"
	"errors"
	"time"

	"business_finder_backend/internal/businesses/domain"
	"business_finder_backend/internal/businesses/transport"
	"business_finder_backend/internal/scheduler"
	"business_finder_backend/platform/apperr"
	"business_finder_backend/platform/logger"

	"github.com/google/uuid"
)

// Searcher runs a synchronous business search.
type Searcher interface {
	Search(ctx context.Context, q domain.SearchQuery) (domain.SearchResult, error)
}

type Service struct {
	store    *Store
	enqueuer scheduler.SearchEnqueuer
	searcher Searcher
	log      *logger.Logger
	now      func() time.Time
}

// NewService wires the job service. enqueuer is nil in the worker process,
// which only executes jobs.
func NewService(store *Store, enqueuer scheduler.SearchEnqueuer, searcher Searcher, log *logger.Logger) *Service {
	return &Service{
		store:    store,
		enqueuer: enqueuer,
		searcher: searcher,
		log:      log,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Submit stores a pending job for q and enqueues it.
func (s *Service) Submit(ctx context.Context, q domain.SearchQuery) (Job, error) {
	if s.enqueuer == nil {
		return Job{}, apperr.Unavailable("async search is not available")
	}

	now := s.now()
	job := Job{
		ID:        uuid.NewString(),
		Status:    StatusPending,
		Query:     transport.FromQuery(q),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.Save(ctx, job); err != nil {
		return Job{}, apperr.Wrap(apperr.KindInternal, "failed to store search job", err)
	}

	if err := s.enqueuer.EnqueueBusinessSearch(ctx, scheduler.BusinessSearchPayload{JobID: job.ID}); err != nil {
		_ = s.finish(ctx, job, nil, err)
		return Job{}, apperr.Wrap(apperr.KindInternal, "failed to enqueue search job", err)
	}

	s.log.WithContext(ctx).Info("search job submitted", "jobId", job.ID, "types", len(job.Query.BusinessTypes))
	return job, nil
}

// Get returns the current state of a job.
func (s *Service) Get(ctx context.Context, id string) (Job, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Job{}, apperr.BadRequest("invalid job id")
	}

	job, err := s.store.Get(ctx, id)
	if errors.Is(err, ErrJobNotFound) {
		return Job{}, apperr.NotFound("search job not found")
	}
	if err != nil {
		return Job{}, apperr.Wrap(apperr.KindInternal, "failed to load search job", err)
	}
	return job, nil
}

// ProcessSearchJob runs a stored job. Search failures are recorded on the
// job and not returned, so the task is never retried; only storage errors
// are returned.
func (s *Service) ProcessSearchJob(ctx context.Context, jobID string) error {
	job, err := s.store.Get(ctx, jobID)
	if err != nil {
		return err
	}
	if job.Finished() {
		return nil
	}

	job.Status = StatusRunning
	job.UpdatedAt = s.now()
	if err := s.store.Save(ctx, job); err != nil {
		return err
	}

	q, err := job.Query.ToQuery()
	if err != nil {
		return s.finish(ctx, job, nil, err)
	}

	result, err := s.searcher.Search(ctx, q)
	if err != nil {
		return s.finish(ctx, job, nil, err)
	}
	return s.finish(ctx, job, &result, nil)
}

func (s *Service) finish(ctx context.Context, job Job, result *domain.SearchResult, cause error) error {
	job.UpdatedAt = s.now()
	if cause != nil {
		job.Status = StatusFailed
		job.Error = cause.Error()
		s.log.Warn("search job failed", "jobId", job.ID, "error", cause)
	} else {
		job.Status = StatusCompleted
		job.Result = result
	}
	return s.store.Save(ctx, job)
}

var _ scheduler.SearchJobProcessor = (*Service)(nil)
