package places

import "business_finder_backend/internal/businesses/domain"

// Directory response statuses.
const (
	StatusOK          = "OK"
	StatusZeroResults = "ZERO_RESULTS"
)

// detailFields is the field mask requested from the details endpoint.
const detailFields = "name,formatted_address,formatted_phone_number,international_phone_number,website,rating,user_ratings_total,opening_hours,geometry,types,business_status"

type latLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type geometry struct {
	Location latLng `json:"location"`
}

type openingHours struct {
	OpenNow     *bool    `json:"open_now,omitempty"`
	WeekdayText []string `json:"weekday_text,omitempty"`
}

type nearbyResult struct {
	PlaceID  string   `json:"place_id"`
	Name     string   `json:"name"`
	Vicinity string   `json:"vicinity"`
	Geometry geometry `json:"geometry"`
	Types    []string `json:"types"`
}

type nearbyResponse struct {
	Status        string         `json:"status"`
	ErrorMessage  string         `json:"error_message,omitempty"`
	Results       []nearbyResult `json:"results"`
	NextPageToken string         `json:"next_page_token,omitempty"`
}

type detailResult struct {
	Name                     string        `json:"name"`
	FormattedAddress         string        `json:"formatted_address"`
	FormattedPhoneNumber     *string       `json:"formatted_phone_number,omitempty"`
	InternationalPhoneNumber *string       `json:"international_phone_number,omitempty"`
	Website                  *string       `json:"website,omitempty"`
	Rating                   *float64      `json:"rating,omitempty"`
	UserRatingsTotal         *int          `json:"user_ratings_total,omitempty"`
	BusinessStatus           string        `json:"business_status"`
	Types                    []string      `json:"types"`
	Geometry                 geometry      `json:"geometry"`
	OpeningHours             *openingHours `json:"opening_hours,omitempty"`
}

type detailResponse struct {
	Status       string       `json:"status"`
	ErrorMessage string       `json:"error_message,omitempty"`
	Result       detailResult `json:"result"`
}

func (r nearbyResult) toSummary() domain.PlaceSummary {
	return domain.PlaceSummary{
		ID:       domain.PlaceID(r.PlaceID),
		Name:     r.Name,
		Vicinity: r.Vicinity,
		Location: domain.Location{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
		Types:    r.Types,
	}
}

func (r detailResult) toDetail(id domain.PlaceID) domain.PlaceDetail {
	var hours []string
	if r.OpeningHours != nil {
		hours = r.OpeningHours.WeekdayText
	}
	return domain.PlaceDetail{
		ID:                 id,
		Name:               r.Name,
		FormattedAddress:   r.FormattedAddress,
		Phone:              r.FormattedPhoneNumber,
		InternationalPhone: r.InternationalPhoneNumber,
		Website:            r.Website,
		Rating:             r.Rating,
		UserRatingsTotal:   r.UserRatingsTotal,
		BusinessStatus:     r.BusinessStatus,
		Types:              r.Types,
		Location:           domain.Location{Lat: r.Geometry.Location.Lat, Lng: r.Geometry.Location.Lng},
		OpeningHours:       hours,
	}
}
