package service

import "business_finder_backend/internal/businesses/domain"

// dedupeSummaries keeps the first occurrence of every place id, in order.
func dedupeSummaries(summaries []domain.PlaceSummary) []domain.PlaceSummary {
	seen := make(map[domain.PlaceID]struct{}, len(summaries))
	unique := make([]domain.PlaceSummary, 0, len(summaries))
	for _, s := range summaries {
		if _, ok := seen[s.ID]; ok {
			continue
		}
		seen[s.ID] = struct{}{}
		unique = append(unique, s)
	}
	return unique
}
