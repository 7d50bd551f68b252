// Package history records completed searches in PostgreSQL and lists them.
package history

import (
	"context"
	"fmt"

	"business_finder_backend/internal/events"
	"business_finder_backend/internal/history/repository"
	"business_finder_backend/platform/logger"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

type Service struct {
	repo repository.Repository
	log  *logger.Logger
}

func NewService(repo repository.Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// RegisterHandlers subscribes the recorder to search completion events.
func (s *Service) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.BusinessSearchCompletedName, events.HandlerFunc(s.handleSearchCompleted))
}

func (s *Service) handleSearchCompleted(ctx context.Context, event events.Event) error {
	e, ok := event.(events.BusinessSearchCompleted)
	if !ok {
		return fmt.Errorf("history: unexpected event %T", event)
	}

	run := repository.Run{
		ID:                 e.ID,
		Latitude:           e.Latitude,
		Longitude:          e.Longitude,
		RadiusMeters:       e.RadiusMeters,
		BusinessTypes:      e.BusinessTypes,
		MaxPages:           e.MaxPages,
		Total:              e.Total,
		WithWebsite:        e.WithWebsite,
		WithoutWebsite:     e.WithoutWebsite,
		EnrichmentFailures: e.EnrichmentFailures,
		FailedTypes:        e.FailedTypes,
		DurationMs:         e.Duration.Milliseconds(),
		CreatedAt:          e.OccurredAt(),
	}
	if err := s.repo.Insert(ctx, run); err != nil {
		s.log.DatabaseError("insert search run", err)
		return err
	}
	return nil
}

// ListRecent clamps limit to [1, MaxListLimit]; zero means the default.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]repository.Run, error) {
	switch {
	case limit <= 0:
		limit = DefaultListLimit
	case limit > MaxListLimit:
		limit = MaxListLimit
	}
	return s.repo.ListRecent(ctx, limit)
}
