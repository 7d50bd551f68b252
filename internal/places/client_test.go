package places

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"business_finder_backend/internal/businesses/domain"
	"business_finder_backend/platform/logger"
)

type testConfig struct {
	baseURL string
	delay   time.Duration
}

func (c testConfig) GetPlacesAPIKey() string                { return "test-key" }
func (c testConfig) GetPlacesBaseURL() string               { return c.baseURL }
func (c testConfig) GetPlacesRequestTimeout() time.Duration { return 2 * time.Second }
func (c testConfig) GetPlacesPageTokenDelay() time.Duration { return c.delay }
func (c testConfig) GetPlacesRequestsPerSecond() float64    { return 0 }
func (c testConfig) GetPlacesBurst() int                    { return 1 }

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(testConfig{baseURL: srv.URL}, logger.Discard())
}

func TestSearchNearbyStopsAtMaxPages(t *testing.T) {
	var calls atomic.Int32
	var tokens []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		tokens = append(tokens, r.URL.Query().Get("pagetoken"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"OK","next_page_token":"tok` + strconv.Itoa(int(n)) + `","results":[{"place_id":"p` + strconv.Itoa(int(n)) + `","name":"n"}]}`))
	})

	got, err := client.SearchNearby(context.Background(), domain.Location{Lat: 1, Lng: 2}, 1000, "restaurant", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 2 {
		t.Fatalf("expected exactly 2 page requests, got %d", calls.Load())
	}
	if len(got) != 2 || got[0].ID != "p1" || got[1].ID != "p2" {
		t.Fatalf("expected concatenated pages in order, got %+v", got)
	}
	if tokens[0] != "" || tokens[1] != "tok1" {
		t.Fatalf("expected second request to carry the first token, got %v", tokens)
	}
}

func TestSearchNearbyStopsWithoutToken(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"status":"OK","results":[{"place_id":"a"},{"place_id":"b"}]}`))
	})

	got, err := client.SearchNearby(context.Background(), domain.Location{}, 1000, "gym", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 1 || len(got) != 2 {
		t.Fatalf("expected one request with two results, got %d requests and %d results", calls.Load(), len(got))
	}
}

func TestSearchNearbyZeroResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ZERO_RESULTS","results":[]}`))
	})

	got, err := client.SearchNearby(context.Background(), domain.Location{}, 1000, "dentist", 3)
	if err != nil {
		t.Fatalf("ZERO_RESULTS must not be an error: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no summaries, got %d", len(got))
	}
}

func TestFetchPageRejectsErrorStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"REQUEST_DENIED","error_message":"bad key"}`))
	})

	_, err := client.FetchPage(context.Background(), PageRequest{Type: "store", Radius: 500})
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Status != "REQUEST_DENIED" || statusErr.Endpoint != endpointNearby {
		t.Fatalf("unexpected status error: %+v", statusErr)
	}
}

func TestFetchPageSendsQuery(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if r.URL.Path != "/nearbysearch/json" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if q.Get("location") != "-11.25,-74.5" || q.Get("radius") != "750" || q.Get("type") != "bakery" || q.Get("key") != "test-key" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		if q.Has("pagetoken") {
			t.Errorf("first page must not send pagetoken")
		}
		_, _ = w.Write([]byte(`{"status":"OK","results":[]}`))
	})

	if _, err := client.FetchPage(context.Background(), PageRequest{Location: domain.Location{Lat: -11.25, Lng: -74.5}, Radius: 750, Type: "bakery"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSearchNearbyHonoursCancellationDuringDelay(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"OK","next_page_token":"again","results":[]}`))
	}))
	t.Cleanup(srv.Close)
	client := New(testConfig{baseURL: srv.URL, delay: time.Minute}, logger.Discard())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := client.SearchNearby(ctx, domain.Location{}, 1000, "store", 3); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline error, got %v", err)
	}
}

func TestDetails(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/details/json" || r.URL.Query().Get("place_id") != "abc" {
			t.Errorf("unexpected request %s", r.URL.String())
		}
		_, _ = w.Write([]byte(`{"status":"OK","result":{"name":"Farmacia","formatted_address":"Av. Peru 1","formatted_phone_number":"064 123456","rating":4.2,"user_ratings_total":8,"business_status":"OPERATIONAL","types":["pharmacy"],"geometry":{"location":{"lat":1.5,"lng":2.5}},"opening_hours":{"weekday_text":["Monday: 9AM-5PM"]}}}`))
	})

	got, err := client.Details(context.Background(), "abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID != "abc" || got.Name != "Farmacia" || got.Website != nil {
		t.Fatalf("unexpected detail %+v", got)
	}
	if got.Rating == nil || *got.Rating != 4.2 || got.UserRatingsTotal == nil || *got.UserRatingsTotal != 8 {
		t.Fatalf("expected rating fields to be decoded")
	}
	if len(got.OpeningHours) != 1 || got.Location.Lat != 1.5 {
		t.Fatalf("expected opening hours and location, got %+v", got)
	}
}

func TestDetailsRejectsNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"NOT_FOUND"}`))
	})

	var statusErr *StatusError
	if _, err := client.Details(context.Background(), "gone"); !errors.As(err, &statusErr) || statusErr.Status != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND status error, got %v", err)
	}
}
