package domain

// Buckets holds the disjoint split of the final businesses.
type Buckets struct {
	WithoutWebsite []Business `json:"withoutWebsite"`
	WithWebsite    []Business `json:"withWebsite"`
	All            []Business `json:"all"`
}

// SearchResult is the outcome of one aggregated search.
//
// len(WithWebsite)+len(WithoutWebsite) == len(All) == Total always holds.
// EnrichmentFailures counts candidates dropped because their detail fetch
// failed; FailedTypes lists business types whose search failed when type
// failures are isolated instead of aborting the request.
type SearchResult struct {
	Total              int      `json:"total"`
	WithoutWebsite     int      `json:"withoutWebsite"`
	WithWebsite        int      `json:"withWebsite"`
	EnrichmentFailures int      `json:"enrichmentFailures"`
	FailedTypes        []string `json:"failedTypes,omitempty"`
	Businesses         Buckets  `json:"businesses"`
}
