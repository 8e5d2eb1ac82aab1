// Package geocode resolves street addresses to coordinates through the
// external geocoding provider's HTTP API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"github.com/nyumbahomes/nyumba/internal/config"
)

// Result is a resolved location. PlaceRef is the provider's stable place
// identifier, stored so listings can deep-link to the provider's maps.
type Result struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
	PlaceRef  string  `json:"placeRef"`
}

// Client talks to the geocoding provider over HTTP.
type Client struct {
	httpClient *http.Client
	logger     *zerolog.Logger

	baseURL string
	apiKey  string
}

// NewClient creates a geocoding Client from the integration config.
func NewClient(cfg *config.Config, logger *zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
		baseURL:    cfg.Integration.GeocodeURL,
		apiKey:     cfg.Integration.GeocodeAPIKey,
	}
}

// Enabled reports whether a geocoding endpoint is configured. Listings can
// still be created with caller-provided coordinates when it is not.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// Geocode resolves an address within a city to coordinates.
func (c *Client) Geocode(ctx context.Context, address, city string) (Result, error) {
	if !c.Enabled() {
		return Result{}, fmt.Errorf("geocoding is not configured")
	}

	q := url.Values{}
	q.Set("address", address+", "+city)
	q.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Result{}, fmt.Errorf("failed to build geocode request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Result{}, fmt.Errorf("geocoding provider returned status %d", resp.StatusCode)
	}

	var out Result
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Result{}, fmt.Errorf("failed to decode geocode response: %w", err)
	}

	return out, nil
}
