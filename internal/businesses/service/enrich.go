package service

import (
	"context"
	"fmt"

	"business_finder_backend/internal/businesses/domain"
	"business_finder_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

// DetailFetchError records a candidate dropped during enrichment.
type DetailFetchError struct {
	PlaceID domain.PlaceID
	Err     error
}

func (e *DetailFetchError) Error() string {
	return fmt.Sprintf("fetch details for %s: %v", e.PlaceID, e.Err)
}

func (e *DetailFetchError) Unwrap() error { return e.Err }

type enrichOutcome struct {
	id       domain.PlaceID
	business domain.Business
	err      *DetailFetchError
}

type enricher struct {
	dir       Directory
	normalize domain.PhoneNormalizer
	limit     int
	log       *logger.Logger
}

// Enrich fetches details for every candidate with bounded concurrency.
// A failed fetch never affects its siblings: tasks record the failure in
// their own slot and return nil. Successes keep candidate order.
func (e *enricher) Enrich(ctx context.Context, candidates []domain.PlaceSummary) ([]domain.Business, []*DetailFetchError) {
	outcomes := make([]enrichOutcome, len(candidates))

	var g errgroup.Group
	g.SetLimit(e.limit)

	for i, c := range candidates {
		g.Go(func() error {
			detail, err := e.dir.Details(ctx, c.ID)
			if err != nil {
				outcomes[i] = enrichOutcome{id: c.ID, err: &DetailFetchError{PlaceID: c.ID, Err: err}}
				return nil
			}
			outcomes[i] = enrichOutcome{id: c.ID, business: domain.NewBusiness(c.ID, detail, e.normalize)}
			return nil
		})
	}
	_ = g.Wait()

	businesses := make([]domain.Business, 0, len(outcomes))
	var failures []*DetailFetchError
	for _, o := range outcomes {
		if o.err != nil {
			e.log.Warn("place details failed, dropping candidate", "placeId", o.id, "error", o.err)
			failures = append(failures, o.err)
			continue
		}
		businesses = append(businesses, o.business)
	}
	return businesses, failures
}
