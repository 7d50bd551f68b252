// Package service runs the business discovery pipeline: per-type paginated
// search, dedup, detail enrichment and classification.
package service

import (
	"context"
	"errors"
	"time"

	"business_finder_backend/internal/businesses/catalog"
	"business_finder_backend/internal/businesses/domain"
	"business_finder_backend/internal/businesses/export"
	"business_finder_backend/internal/events"
	"business_finder_backend/platform/apperr"
	"business_finder_backend/platform/config"
	"business_finder_backend/platform/logger"
)

// Directory is the place-directory client used by the pipeline.
type Directory interface {
	SearchNearby(ctx context.Context, location domain.Location, radius int, placeType string, maxPages int) ([]domain.PlaceSummary, error)
	Details(ctx context.Context, id domain.PlaceID) (domain.PlaceDetail, error)
}

// Options tunes concurrency and failure handling.
type Options struct {
	DetailConcurrency   int
	TypeConcurrency     int
	IsolateTypeFailures bool
	SearchTimeout       time.Duration
}

// OptionsFromConfig reads Options from the discovery config.
func OptionsFromConfig(cfg config.DiscoveryConfig) Options {
	return Options{
		DetailConcurrency:   cfg.GetDetailConcurrency(),
		TypeConcurrency:     cfg.GetTypeConcurrency(),
		IsolateTypeFailures: cfg.GetIsolateTypeFailures(),
		SearchTimeout:       cfg.GetSearchTimeout(),
	}
}

func (o Options) withDefaults() Options {
	if o.DetailConcurrency < 1 {
		o.DetailConcurrency = 8
	}
	if o.TypeConcurrency < 1 {
		o.TypeConcurrency = 1
	}
	return o
}

type Service struct {
	dir      Directory
	catalog  *catalog.Catalog
	enricher *enricher
	bus      events.Bus
	opts     Options
	log      *logger.Logger
}

// New wires the pipeline. normalize may be nil, in which case businesses
// carry no E.164 phone. bus may be nil.
func New(dir Directory, cat *catalog.Catalog, normalize domain.PhoneNormalizer, bus events.Bus, opts Options, log *logger.Logger) *Service {
	opts = opts.withDefaults()
	return &Service{
		dir:     dir,
		catalog: cat,
		enricher: &enricher{
			dir:       dir,
			normalize: normalize,
			limit:     opts.DetailConcurrency,
			log:       log,
		},
		bus:  bus,
		opts: opts,
		log:  log,
	}
}

// Search runs the full pipeline for q.
//
// Detail fetch failures only shrink the result; they are counted in
// EnrichmentFailures. A failed type search fails the request unless type
// failures are isolated, in which case the request fails only when every
// type failed. When the deadline expires during enrichment the businesses
// enriched so far are returned.
func (s *Service) Search(ctx context.Context, q domain.SearchQuery) (domain.SearchResult, error) {
	start := time.Now()
	log := s.log.WithContext(ctx)

	if s.opts.SearchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.SearchTimeout)
		defer cancel()
	}

	typeResults, err := s.fanOut(ctx, q)
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	if err != nil {
		return domain.SearchResult{}, searchError(err)
	}

	var (
		summaries   []domain.PlaceSummary
		failedTypes []string
		typeErrs    []error
	)
	for _, tr := range typeResults {
		if tr.Err != nil {
			failedTypes = append(failedTypes, tr.Type)
			typeErrs = append(typeErrs, tr.Err)
			continue
		}
		summaries = append(summaries, tr.Summaries...)
	}
	if len(typeErrs) == len(typeResults) && len(typeErrs) > 0 {
		return domain.SearchResult{}, searchError(errors.Join(typeErrs...))
	}

	candidates := dedupeSummaries(summaries)
	businesses, failures := s.enricher.Enrich(ctx, candidates)

	result := Classify(businesses)
	result.EnrichmentFailures = len(failures)
	result.FailedTypes = failedTypes

	elapsed := time.Since(start)
	log.Info("business search completed",
		"types", len(typeResults),
		"failedTypes", len(failedTypes),
		"raw", len(summaries),
		"unique", len(candidates),
		"enrichmentFailures", len(failures),
		"total", result.Total,
		"withWebsite", result.WithWebsite,
		"withoutWebsite", result.WithoutWebsite,
		"durationMs", elapsed.Milliseconds(),
	)

	if s.bus != nil {
		s.bus.Publish(ctx, events.BusinessSearchCompleted{
			BaseEvent:          events.NewBaseEvent(),
			Latitude:           q.Location().Lat,
			Longitude:          q.Location().Lng,
			RadiusMeters:       q.Radius(),
			BusinessTypes:      q.BusinessTypes(),
			MaxPages:           q.MaxPages(),
			Total:              result.Total,
			WithWebsite:        result.WithWebsite,
			WithoutWebsite:     result.WithoutWebsite,
			EnrichmentFailures: result.EnrichmentFailures,
			FailedTypes:        failedTypes,
			Duration:           elapsed,
		})
	}

	return result, nil
}

// Export renders businesses as a downloadable file body.
func (s *Service) Export(businesses []domain.Business, format string) ([]byte, string, error) {
	data, contentType, err := export.Export(businesses, format)
	if err != nil {
		if errors.Is(err, export.ErrUnsupportedFormat) || errors.Is(err, export.ErrNoBusinesses) {
			return nil, "", apperr.Validation(err.Error())
		}
		return nil, "", apperr.Wrap(apperr.KindInternal, "export failed", err)
	}
	return data, contentType, nil
}

// ListTypes returns the selectable business types in display order.
func (s *Service) ListTypes() []catalog.BusinessType {
	return s.catalog.Types()
}

func searchError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperr.Timeout("business search timed out", err).WithOp("businesses.Search")
	}
	if errors.Is(err, context.Canceled) {
		return apperr.Canceled("business search canceled", err).WithOp("businesses.Search")
	}
	return apperr.Upstream("place directory request failed", err).WithOp("businesses.Search")
}
