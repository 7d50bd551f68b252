package export

import (
	"errors"
	"strings"
	"testing"

	"business_finder_backend/internal/businesses/domain"
)

func ptr[T any](v T) *T { return &v }

func TestExportCSVHeaderAndQuoting(t *testing.T) {
	businesses := []domain.Business{{
		Name:         "Bodega \"El Sol\"",
		Address:      "Av. Lima 10, Huancayo",
		Phone:        ptr("064 111222"),
		Website:      ptr("https://elsol.pe"),
		Rating:       ptr(4.5),
		TotalRatings: ptr(27),
		Types:        []string{"store", "food"},
	}}

	data, contentType, err := Export(businesses, "csv")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contentType != ContentTypeCSV {
		t.Fatalf("expected %s, got %s", ContentTypeCSV, contentType)
	}

	lines := strings.Split(string(data), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if lines[0] != `"Name","Address","Phone","Website","Rating","Total Ratings","Types"` {
		t.Fatalf("unexpected header %s", lines[0])
	}
	want := `"Bodega ""El Sol""","Av. Lima 10, Huancayo","064 111222","https://elsol.pe","4.5","27","store, food"`
	if lines[1] != want {
		t.Fatalf("unexpected row\n got: %s\nwant: %s", lines[1], want)
	}
}

func TestExportCSVFallbacks(t *testing.T) {
	data, _, err := Export([]domain.Business{{Name: "Taller", Address: "Jr. Ayacucho 5", Rating: ptr(0.0)}}, "CSV")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	row := strings.Split(string(data), "\n")[1]
	want := `"Taller","Jr. Ayacucho 5","N/A","No website","N/A","0",""`
	if row != want {
		t.Fatalf("unexpected row\n got: %s\nwant: %s", row, want)
	}
}

func TestExportJSON(t *testing.T) {
	data, contentType, err := Export([]domain.Business{}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contentType != ContentTypeJSON || string(data) != "[]" {
		t.Fatalf("expected empty JSON array, got %s (%s)", data, contentType)
	}

	data, _, err = Export([]domain.Business{{ID: "x", Name: "Gym", Types: []string{}, OpeningHours: []string{}}}, "json")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(data), `"id":"x"`) || !strings.Contains(string(data), `"hasWebsite":false`) {
		t.Fatalf("unexpected JSON %s", data)
	}
}

func TestExportErrors(t *testing.T) {
	if _, _, err := Export(nil, "json"); !errors.Is(err, ErrNoBusinesses) {
		t.Fatalf("expected ErrNoBusinesses, got %v", err)
	}
	if _, _, err := Export([]domain.Business{}, "xml"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestFileName(t *testing.T) {
	if FileName("") != "businesses.json" || FileName("csv") != "businesses.csv" {
		t.Fatalf("unexpected file names %q %q", FileName(""), FileName("csv"))
	}
}
