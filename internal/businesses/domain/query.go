// Package domain holds the business discovery entities and the invariants
// that hold for them independently of transport or storage.
package domain

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	MinRadiusMeters = 100
	MaxRadiusMeters = 50000
	MinPages        = 1
	MaxPages        = 5

	DefaultRadiusMeters = 5000
	DefaultMaxPages     = 3
	DefaultBusinessType = "establishment"
)

// PlaceID is the directory's opaque place identifier.
type PlaceID string

// Location is a WGS84 point.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String renders the point the way the directory expects it ("lat,lng").
func (l Location) String() string {
	return strconv.FormatFloat(l.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(l.Lng, 'f', -1, 64)
}

// SearchQuery describes one aggregated search. It cannot be changed after
// NewSearchQuery returns.
type SearchQuery struct {
	location      Location
	radius        int
	businessTypes []string
	maxPages      int
}

// NewSearchQuery validates the bounds and builds a query. Repeated type tags
// collapse to their first occurrence.
func NewSearchQuery(lat, lng float64, radius int, businessTypes []string, maxPages int) (SearchQuery, error) {
	if lat < -90 || lat > 90 {
		return SearchQuery{}, fmt.Errorf("latitude %v out of range [-90, 90]", lat)
	}
	if lng < -180 || lng > 180 {
		return SearchQuery{}, fmt.Errorf("longitude %v out of range [-180, 180]", lng)
	}
	if radius < MinRadiusMeters || radius > MaxRadiusMeters {
		return SearchQuery{}, fmt.Errorf("radius %d out of range [%d, %d]", radius, MinRadiusMeters, MaxRadiusMeters)
	}
	if maxPages < MinPages || maxPages > MaxPages {
		return SearchQuery{}, fmt.Errorf("maxPages %d out of range [%d, %d]", maxPages, MinPages, MaxPages)
	}

	types := make([]string, 0, len(businessTypes))
	seen := make(map[string]struct{}, len(businessTypes))
	for _, t := range businessTypes {
		t = strings.TrimSpace(t)
		if t == "" {
			return SearchQuery{}, fmt.Errorf("business type must not be blank")
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		types = append(types, t)
	}
	if len(types) == 0 {
		return SearchQuery{}, fmt.Errorf("at least one business type is required")
	}

	return SearchQuery{
		location:      Location{Lat: lat, Lng: lng},
		radius:        radius,
		businessTypes: types,
		maxPages:      maxPages,
	}, nil
}

func (q SearchQuery) Location() Location { return q.location }
func (q SearchQuery) Radius() int        { return q.radius }
func (q SearchQuery) MaxPages() int      { return q.maxPages }

// BusinessTypes returns a copy of the ordered type tags.
func (q SearchQuery) BusinessTypes() []string {
	return append([]string(nil), q.businessTypes...)
}
