package domain

import (
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestNewSearchQueryBounds(t *testing.T) {
	cases := []struct {
		name     string
		lat, lng float64
		radius   int
		types    []string
		maxPages int
		wantErr  bool
	}{
		{"valid", -11.1, -75.3, 5000, []string{"restaurant"}, 3, false},
		{"radius min", 0, 0, 100, []string{"gym"}, 1, false},
		{"radius max", 0, 0, 50000, []string{"gym"}, 5, false},
		{"radius too small", 0, 0, 99, []string{"gym"}, 1, true},
		{"radius too large", 0, 0, 50001, []string{"gym"}, 1, true},
		{"pages zero", 0, 0, 1000, []string{"gym"}, 0, true},
		{"pages six", 0, 0, 1000, []string{"gym"}, 6, true},
		{"lat out of range", 91, 0, 1000, []string{"gym"}, 1, true},
		{"lng out of range", 0, -181, 1000, []string{"gym"}, 1, true},
		{"no types", 0, 0, 1000, nil, 1, true},
		{"blank type", 0, 0, 1000, []string{"gym", " "}, 1, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewSearchQuery(tc.lat, tc.lng, tc.radius, tc.types, tc.maxPages)
			if (err != nil) != tc.wantErr {
				t.Fatalf("wantErr=%v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestSearchQueryIsImmutable(t *testing.T) {
	types := []string{"restaurant", "bakery", "restaurant"}
	q, err := NewSearchQuery(1, 2, 1000, types, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	types[0] = "gym"
	got := q.BusinessTypes()
	if strings.Join(got, ",") != "restaurant,bakery" {
		t.Fatalf("expected deduplicated, caller-independent types, got %v", got)
	}

	got[0] = "store"
	if q.BusinessTypes()[0] != "restaurant" {
		t.Fatalf("mutating the returned slice changed the query")
	}
}

func TestLocationString(t *testing.T) {
	loc := Location{Lat: -11.0667, Lng: -75.35}
	if loc.String() != "-11.0667,-75.35" {
		t.Fatalf("unexpected location string %q", loc.String())
	}
}

func TestHasWebsite(t *testing.T) {
	cases := []struct {
		website *string
		want    bool
	}{
		{nil, false},
		{strPtr(""), false},
		{strPtr("   \t"), false},
		{strPtr("https://example.com"), true},
		{strPtr("  example.com  "), true},
	}
	for _, tc := range cases {
		if got := HasWebsite(tc.website); got != tc.want {
			t.Fatalf("HasWebsite(%v) = %v, want %v", tc.website, got, tc.want)
		}
	}
}

func TestNewBusinessMapsDetail(t *testing.T) {
	rating := 4.5
	total := 12
	detail := PlaceDetail{
		Name:             "Panaderia Central",
		FormattedAddress: "Jr. Lima 123, Satipo",
		Phone:            strPtr("064 545454"),
		Website:          strPtr("  "),
		Rating:           &rating,
		UserRatingsTotal: &total,
		BusinessStatus:   "OPERATIONAL",
		Types:            []string{"bakery", "store"},
		Location:         Location{Lat: 1, Lng: 2},
	}

	var normalizedInput string
	b := NewBusiness("abc", detail, func(raw string) string {
		normalizedInput = raw
		return "+5164545454"
	})

	if b.ID != "abc" || b.Name != "Panaderia Central" || b.Address != "Jr. Lima 123, Satipo" {
		t.Fatalf("unexpected mapping: %+v", b)
	}
	if b.HasWebsite {
		t.Fatalf("blank website must not count as a website")
	}
	if normalizedInput != "064 545454" {
		t.Fatalf("expected formatted phone to be normalized, got %q", normalizedInput)
	}
	if b.PhoneE164 == nil || *b.PhoneE164 != "+5164545454" {
		t.Fatalf("expected E.164 phone to be set")
	}
	if b.OpeningHours == nil {
		t.Fatalf("opening hours must default to an empty list")
	}
}
