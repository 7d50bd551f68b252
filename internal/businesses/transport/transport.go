package transport

import (
	"business_finder_backend/internal/businesses/domain"
)

type LocationRequest struct {
	Lat *float64 `json:"lat" validate:"required,min=-90,max=90"`
	Lng *float64 `json:"lng" validate:"required,min=-180,max=180"`
}

// SearchRequest is the body of a business search. Omitted optional fields
// take the defaults from domain.
type SearchRequest struct {
	Location      *LocationRequest `json:"location" validate:"required"`
	Radius        *int             `json:"radius,omitempty" validate:"omitempty,min=100,max=50000"`
	BusinessTypes []string         `json:"businessTypes,omitempty" validate:"omitempty,max=20,dive,placetype"`
	MaxPages      *int             `json:"maxPages,omitempty" validate:"omitempty,min=1,max=5"`
}

// ToQuery applies defaults and builds the immutable query.
func (r SearchRequest) ToQuery() (domain.SearchQuery, error) {
	radius := domain.DefaultRadiusMeters
	if r.Radius != nil {
		radius = *r.Radius
	}
	maxPages := domain.DefaultMaxPages
	if r.MaxPages != nil {
		maxPages = *r.MaxPages
	}
	types := r.BusinessTypes
	if types == nil {
		types = []string{domain.DefaultBusinessType}
	}

	var lat, lng float64
	if r.Location != nil && r.Location.Lat != nil && r.Location.Lng != nil {
		lat, lng = *r.Location.Lat, *r.Location.Lng
	}
	return domain.NewSearchQuery(lat, lng, radius, types, maxPages)
}

// FromQuery rebuilds a request from a query, for storing it with async jobs.
func FromQuery(q domain.SearchQuery) SearchRequest {
	lat, lng := q.Location().Lat, q.Location().Lng
	radius, maxPages := q.Radius(), q.MaxPages()
	return SearchRequest{
		Location:      &LocationRequest{Lat: &lat, Lng: &lng},
		Radius:        &radius,
		BusinessTypes: q.BusinessTypes(),
		MaxPages:      &maxPages,
	}
}

type ExportRequest struct {
	Businesses []domain.Business `json:"businesses" validate:"required"`
	Format     string            `json:"format,omitempty"`
}
