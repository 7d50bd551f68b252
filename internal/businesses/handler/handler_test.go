package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"business_finder_backend/internal/businesses/catalog"
	"business_finder_backend/internal/businesses/domain"
	"business_finder_backend/internal/businesses/service"
	"business_finder_backend/internal/places"
	"business_finder_backend/platform/logger"
	"business_finder_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

type stubDirectory struct {
	searchErr error
}

func (s stubDirectory) SearchNearby(_ context.Context, _ domain.Location, _ int, placeType string, _ int) ([]domain.PlaceSummary, error) {
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return []domain.PlaceSummary{{ID: domain.PlaceID(placeType + "-1")}}, nil
}

func (s stubDirectory) Details(_ context.Context, id domain.PlaceID) (domain.PlaceDetail, error) {
	return domain.PlaceDetail{Name: string(id), BusinessStatus: "OPERATIONAL"}, nil
}

func newTestRouter(t *testing.T, dir service.Directory) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	svc := service.New(dir, cat, nil, nil, service.Options{}, logger.Discard())
	h := New(svc, validator.New())

	r := gin.New()
	r.POST("/api/businesses/search", h.Search)
	r.GET("/api/businesses/types", h.ListTypes)
	r.POST("/api/businesses/export", h.Export)
	return r
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSearchReturnsResult(t *testing.T) {
	r := newTestRouter(t, stubDirectory{})

	w := do(r, http.MethodPost, "/api/businesses/search", `{"location":{"lat":-12.05,"lng":-77.04},"businessTypes":["bakery","gym"]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var result domain.SearchResult
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Total != 2 || result.WithoutWebsite != 2 || len(result.Businesses.All) != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestSearchValidation(t *testing.T) {
	r := newTestRouter(t, stubDirectory{})

	cases := map[string]string{
		"missing location": `{"radius":1000}`,
		"latitude bounds":  `{"location":{"lat":95,"lng":0}}`,
		"radius bounds":    `{"location":{"lat":0,"lng":0},"radius":50}`,
		"max pages":        `{"location":{"lat":0,"lng":0},"maxPages":9}`,
		"bad type tag":     `{"location":{"lat":0,"lng":0},"businessTypes":["Bad Type"]}`,
		"empty types":      `{"location":{"lat":0,"lng":0},"businessTypes":[]}`,
		"malformed json":   `{"location":`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if w := do(r, http.MethodPost, "/api/businesses/search", body); w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestSearchUpstreamFailure(t *testing.T) {
	r := newTestRouter(t, stubDirectory{searchErr: &places.StatusError{Endpoint: "nearbysearch", Status: "REQUEST_DENIED"}})

	w := do(r, http.MethodPost, "/api/businesses/search", `{"location":{"lat":0,"lng":0}}`)
	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"kind":"upstream"`) {
		t.Fatalf("expected upstream kind in body, got %s", w.Body.String())
	}
}

func TestSearchTransportFailureIsUpstream(t *testing.T) {
	r := newTestRouter(t, stubDirectory{searchErr: errors.New("connection refused")})

	if w := do(r, http.MethodPost, "/api/businesses/search", `{"location":{"lat":0,"lng":0}}`); w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}

func TestListTypes(t *testing.T) {
	r := newTestRouter(t, stubDirectory{})

	w := do(r, http.MethodGet, "/api/businesses/types", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var types []catalog.BusinessType
	if err := json.Unmarshal(w.Body.Bytes(), &types); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(types) != 12 || types[1].Label != "Tiendas" {
		t.Fatalf("unexpected types %+v", types)
	}
}

func TestExportCSV(t *testing.T) {
	r := newTestRouter(t, stubDirectory{})

	w := do(r, http.MethodPost, "/api/businesses/export", `{"format":"csv","businesses":[{"id":"a","name":"Cafe, \"Luna\"","address":"Jr. Puno 3","types":["cafe"]}]}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd != "attachment; filename=businesses.csv" {
		t.Fatalf("unexpected disposition %q", cd)
	}
	if !strings.Contains(w.Body.String(), `"Cafe, ""Luna""","Jr. Puno 3","N/A","No website","N/A","0","cafe"`) {
		t.Fatalf("unexpected csv body %s", w.Body.String())
	}
}

func TestExportJSONDefault(t *testing.T) {
	r := newTestRouter(t, stubDirectory{})

	w := do(r, http.MethodPost, "/api/businesses/export", `{"businesses":[]}`)
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("expected empty JSON array, got %d %s", w.Code, w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); cd != "attachment; filename=businesses.json" {
		t.Fatalf("unexpected disposition %q", cd)
	}
}

func TestExportRejectsBadRequests(t *testing.T) {
	r := newTestRouter(t, stubDirectory{})

	if w := do(r, http.MethodPost, "/api/businesses/export", `{"format":"csv"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing businesses, got %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/businesses/export", `{"format":"xml","businesses":[]}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown format, got %d", w.Code)
	}
}
