// Package places is the HTTP client for the Google Places web service
// (nearby search and place details).
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"business_finder_backend/internal/businesses/domain"
	"business_finder_backend/platform/config"
	"business_finder_backend/platform/logger"

	"golang.org/x/time/rate"
)

const (
	endpointNearby  = "nearbysearch"
	endpointDetails = "details"
)

// StatusError is returned when the directory answers with a status other
// than the ones accepted for the endpoint.
type StatusError struct {
	Endpoint string
	Status   string
	Message  string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("places %s: status %s: %s", e.Endpoint, e.Status, e.Message)
	}
	return fmt.Sprintf("places %s: status %s", e.Endpoint, e.Status)
}

// PageRequest identifies one nearby-search page.
type PageRequest struct {
	Location  domain.Location
	Radius    int
	Type      string
	PageToken string
}

// Page is one decoded nearby-search page.
type Page struct {
	Summaries     []domain.PlaceSummary
	NextPageToken string
	Status        string
}

// Client talks to the Places API. It is safe for concurrent use; every call
// waits on a shared limiter first.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	pageDelay  time.Duration
	limiter    *rate.Limiter
	log        *logger.Logger
}

// New creates a Places client from config.
func New(cfg config.PlacesConfig, log *logger.Logger) *Client {
	limit := rate.Limit(cfg.GetPlacesRequestsPerSecond())
	if cfg.GetPlacesRequestsPerSecond() <= 0 {
		limit = rate.Inf
	}
	burst := cfg.GetPlacesBurst()
	if burst < 1 {
		burst = 1
	}

	return &Client{
		httpClient: &http.Client{Timeout: cfg.GetPlacesRequestTimeout()},
		baseURL:    cfg.GetPlacesBaseURL(),
		apiKey:     cfg.GetPlacesAPIKey(),
		pageDelay:  cfg.GetPlacesPageTokenDelay(),
		limiter:    rate.NewLimiter(limit, burst),
		log:        log,
	}
}

// FetchPage issues a single nearby-search request.
func (c *Client) FetchPage(ctx context.Context, req PageRequest) (Page, error) {
	params := url.Values{}
	params.Set("location", req.Location.String())
	params.Set("radius", strconv.Itoa(req.Radius))
	params.Set("type", req.Type)
	params.Set("key", c.apiKey)
	if req.PageToken != "" {
		params.Set("pagetoken", req.PageToken)
	}

	var payload nearbyResponse
	if err := c.get(ctx, endpointNearby, params, &payload); err != nil {
		return Page{}, err
	}

	if payload.Status != StatusOK && payload.Status != StatusZeroResults {
		c.log.UpstreamError(endpointNearby, payload.Status, nil)
		return Page{}, &StatusError{Endpoint: endpointNearby, Status: payload.Status, Message: payload.ErrorMessage}
	}

	summaries := make([]domain.PlaceSummary, 0, len(payload.Results))
	for _, r := range payload.Results {
		summaries = append(summaries, r.toSummary())
	}

	return Page{Summaries: summaries, NextPageToken: payload.NextPageToken, Status: payload.Status}, nil
}

// SearchNearby collects up to maxPages pages for one type, in page order.
// Continuation tokens only become valid after a short delay, so every
// request carrying one waits pageDelay first.
func (c *Client) SearchNearby(ctx context.Context, location domain.Location, radius int, placeType string, maxPages int) ([]domain.PlaceSummary, error) {
	var (
		all   []domain.PlaceSummary
		token string
	)

	for page := 0; page < maxPages; page++ {
		if token != "" {
			if err := sleep(ctx, c.pageDelay); err != nil {
				return nil, err
			}
		}

		p, err := c.FetchPage(ctx, PageRequest{Location: location, Radius: radius, Type: placeType, PageToken: token})
		if err != nil {
			return nil, err
		}
		all = append(all, p.Summaries...)

		token = p.NextPageToken
		if token == "" {
			break
		}
	}

	return all, nil
}

// Details fetches the full record of one place.
func (c *Client) Details(ctx context.Context, id domain.PlaceID) (domain.PlaceDetail, error) {
	params := url.Values{}
	params.Set("place_id", string(id))
	params.Set("fields", detailFields)
	params.Set("key", c.apiKey)

	var payload detailResponse
	if err := c.get(ctx, endpointDetails, params, &payload); err != nil {
		return domain.PlaceDetail{}, err
	}

	if payload.Status != StatusOK {
		return domain.PlaceDetail{}, &StatusError{Endpoint: endpointDetails, Status: payload.Status, Message: payload.ErrorMessage}
	}

	return payload.Result.toDetail(id), nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	reqURL := fmt.Sprintf("%s/%s/json?%s", c.baseURL, endpoint, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("places %s request: %w", endpoint, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		c.log.UpstreamError(endpoint, strconv.Itoa(resp.StatusCode), nil)
		return &StatusError{Endpoint: endpoint, Status: "HTTP_" + strconv.Itoa(resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("places %s decode: %w", endpoint, err)
	}
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
