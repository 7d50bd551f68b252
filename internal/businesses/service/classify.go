package service

import "business_finder_backend/internal/businesses/domain"

// Classify drops permanently closed businesses and splits the rest by web
// presence in a single pass. Both buckets and All keep input order.
func Classify(businesses []domain.Business) domain.SearchResult {
	buckets := domain.Buckets{
		WithoutWebsite: []domain.Business{},
		WithWebsite:    []domain.Business{},
		All:            make([]domain.Business, 0, len(businesses)),
	}

	for _, b := range businesses {
		if b.IsPermanentlyClosed() {
			continue
		}
		buckets.All = append(buckets.All, b)
		if b.HasWebsite {
			buckets.WithWebsite = append(buckets.WithWebsite, b)
		} else {
			buckets.WithoutWebsite = append(buckets.WithoutWebsite, b)
		}
	}

	return domain.SearchResult{
		Total:          len(buckets.All),
		WithoutWebsite: len(buckets.WithoutWebsite),
		WithWebsite:    len(buckets.WithWebsite),
		Businesses:     buckets,
	}
}
