package domain

import "strings"

// StatusPermanentlyClosed is the operating-status tag for places that no
// longer exist. Such places never reach a SearchResult.
const StatusPermanentlyClosed = "CLOSED_PERMANENTLY"

// PlaceSummary is one nearby-search hit.
type PlaceSummary struct {
	ID       PlaceID
	Name     string
	Vicinity string
	Location Location
	Types    []string
}

// PlaceDetail is the full record returned by a details lookup. Pointer
// fields are optional in the directory's response.
type PlaceDetail struct {
	ID                 PlaceID
	Name               string
	FormattedAddress   string
	Phone              *string
	InternationalPhone *string
	Website            *string
	Rating             *float64
	UserRatingsTotal   *int
	BusinessStatus     string
	Types              []string
	Location           Location
	OpeningHours       []string
}

// Business is the exported entity. It is derived once from a PlaceDetail
// and not mutated afterwards.
type Business struct {
	ID             PlaceID  `json:"id"`
	Name           string   `json:"name"`
	Address        string   `json:"address"`
	Phone          *string  `json:"phone,omitempty"`
	PhoneE164      *string  `json:"phoneE164,omitempty"`
	Website        *string  `json:"website,omitempty"`
	Rating         *float64 `json:"rating,omitempty"`
	TotalRatings   *int     `json:"totalRatings,omitempty"`
	BusinessStatus string   `json:"businessStatus"`
	Types          []string `json:"types"`
	Location       Location `json:"location"`
	HasWebsite     bool     `json:"hasWebsite"`
	OpeningHours   []string `json:"openingHours"`
}

// PhoneNormalizer converts a directory phone number to E.164, returning ""
// when it cannot.
type PhoneNormalizer func(raw string) string

// NewBusiness maps a detail record to a Business and computes HasWebsite.
// The id comes from the search summary because detail payloads do not echo it.
func NewBusiness(id PlaceID, detail PlaceDetail, normalize PhoneNormalizer) Business {
	types := detail.Types
	if types == nil {
		types = []string{}
	}
	hours := detail.OpeningHours
	if hours == nil {
		hours = []string{}
	}

	b := Business{
		ID:             id,
		Name:           detail.Name,
		Address:        detail.FormattedAddress,
		Phone:          detail.Phone,
		Website:        detail.Website,
		Rating:         detail.Rating,
		TotalRatings:   detail.UserRatingsTotal,
		BusinessStatus: detail.BusinessStatus,
		Types:          types,
		Location:       detail.Location,
		HasWebsite:     HasWebsite(detail.Website),
		OpeningHours:   hours,
	}

	if normalize != nil {
		if e164 := normalize(firstNonBlank(detail.InternationalPhone, detail.Phone)); e164 != "" {
			b.PhoneE164 = &e164
		}
	}

	return b
}

// HasWebsite reports whether website is present and non-blank after trimming.
func HasWebsite(website *string) bool {
	return website != nil && strings.TrimSpace(*website) != ""
}

// IsPermanentlyClosed reports whether the business no longer operates.
func (b Business) IsPermanentlyClosed() bool {
	return b.BusinessStatus == StatusPermanentlyClosed
}

func firstNonBlank(values ...*string) string {
	for _, v := range values {
		if v != nil && strings.TrimSpace(*v) != "" {
			return *v
		}
	}
	return ""
}
