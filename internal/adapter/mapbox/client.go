// Package mapbox resolves ZIP codes and centroids through the Mapbox
// Geocoding v5 places endpoint.
package mapbox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/parksafe-la/internal/domain"
	"github.com/couchcryptid/parksafe-la/internal/observability"
)

const defaultBaseURL = "https://api.mapbox.com/geocoding/v5/mapbox.places"

// Request outcomes recorded in parksafe_geocode_requests_total.
const (
	outcomeSuccess = "success"
	outcomeEmpty   = "empty"
	outcomeError   = "error"
)

// Client implements domain.Geocoder.
type Client struct {
	token      string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a Mapbox geocoding client with a per-request timeout.
func NewClient(token string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    defaultBaseURL,
		metrics:    metrics,
		logger:     logger,
	}
}

// GeocodeZip looks up a US postcode. An unknown code yields a zero result, not an error.
func (c *Client) GeocodeZip(ctx context.Context, zipcode string) (domain.GeocodingResult, error) {
	q := url.Values{}
	q.Set("types", "postcode")
	q.Set("country", "us")
	return c.lookup(ctx, "zip", url.PathEscape(zipcode), q)
}

// ReverseGeocode names the place at a coordinate.
func (c *Client) ReverseGeocode(ctx context.Context, lat, lon float64) (domain.GeocodingResult, error) {
	// The endpoint takes lon,lat.
	query := strconv.FormatFloat(lon, 'f', 6, 64) + "," + strconv.FormatFloat(lat, 'f', 6, 64)
	return c.lookup(ctx, "reverse", query, url.Values{})
}

func (c *Client) lookup(ctx context.Context, method, query string, params url.Values) (domain.GeocodingResult, error) {
	params.Set("access_token", c.token)
	params.Set("limit", "1")
	endpoint := c.baseURL + "/" + query + ".json?" + params.Encode()

	outcome := outcomeError
	defer func() {
		c.metrics.GeocodeRequests.WithLabelValues(method, outcome).Inc()
	}()

	body, err := c.get(ctx, method, endpoint)
	if err != nil {
		return domain.GeocodingResult{}, err
	}

	var parsed response
	if err := json.Unmarshal(body, &parsed); err != nil {
		return domain.GeocodingResult{}, fmt.Errorf("decode %s response: %w", method, err)
	}
	if len(parsed.Features) == 0 {
		outcome = outcomeEmpty
		c.logger.Debug("geocoder returned no features", "method", method, "query", query)
		return domain.GeocodingResult{}, nil
	}

	outcome = outcomeSuccess
	return parsed.Features[0].result(), nil
}

func (c *Client) get(ctx context.Context, method, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", method, err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.metrics.GeocodeAPIDuration.WithLabelValues(method).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("%s geocode request: %w", method, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", method, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mapbox API error: status %d: %s", resp.StatusCode, truncate(body, 256))
	}
	return body, nil
}

func truncate(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}

type response struct {
	Features []feature `json:"features"`
}

type feature struct {
	Center    []float64 `json:"center"` // [lon, lat]
	PlaceName string    `json:"place_name"`
	Text      string    `json:"text"`
	Relevance float64   `json:"relevance"`
}

func (f feature) result() domain.GeocodingResult {
	r := domain.GeocodingResult{
		FormattedAddress: f.PlaceName,
		PlaceName:        f.Text,
		Confidence:       f.Relevance,
	}
	if len(f.Center) == 2 {
		r.Lon, r.Lat = f.Center[0], f.Center[1]
	}
	return r
}
