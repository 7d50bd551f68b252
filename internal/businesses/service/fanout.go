package service

import (
	"context"
	"fmt"

	"business_finder_backend/internal/businesses/domain"

	"golang.org/x/sync/errgroup"
)

// TypeResult is the outcome of the paginated search for one business type.
type TypeResult struct {
	Type      string
	Summaries []domain.PlaceSummary
	Err       error
}

// TypeSearchError identifies the business type whose search failed.
type TypeSearchError struct {
	Type string
	Err  error
}

func (e *TypeSearchError) Error() string {
	return fmt.Sprintf("search type %q: %v", e.Type, e.Err)
}

func (e *TypeSearchError) Unwrap() error { return e.Err }

// fanOut runs one paginated search per type. Results keep the query's type
// order. Unless failures are isolated, the first failing type cancels the
// rest and is returned as the error.
func (s *Service) fanOut(ctx context.Context, q domain.SearchQuery) ([]TypeResult, error) {
	types := q.BusinessTypes()
	results := make([]TypeResult, len(types))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.TypeConcurrency)

	for i, placeType := range types {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = TypeResult{Type: placeType, Err: err}
				return err
			}

			summaries, err := s.dir.SearchNearby(gctx, q.Location(), q.Radius(), placeType, q.MaxPages())
			if err != nil {
				typeErr := &TypeSearchError{Type: placeType, Err: err}
				results[i] = TypeResult{Type: placeType, Err: typeErr}
				if s.opts.IsolateTypeFailures {
					s.log.Warn("business type search failed", "type", placeType, "error", err)
					return nil
				}
				return typeErr
			}

			s.log.Debug("business type searched", "type", placeType, "places", len(summaries))
			results[i] = TypeResult{Type: placeType, Summaries: summaries}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
