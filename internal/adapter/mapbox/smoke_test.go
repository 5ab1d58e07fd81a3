//go:build mapbox

package mapbox

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/couchcryptid/parksafe-la/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests hit the real Mapbox API and require a valid MAPBOX_TOKEN env var.
// Run with: go test -tags=mapbox ./internal/adapter/mapbox/ -v -count=1

func smokeClient(t *testing.T) *Client {
	t.Helper()
	token := os.Getenv("MAPBOX_TOKEN")
	if token == "" {
		t.Fatal("MAPBOX_TOKEN must be set to run smoke tests")
	}
	return NewClient(token, 10*time.Second, observability.NewMetricsForTesting(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSmoke_GeocodeZip(t *testing.T) {
	c := smokeClient(t)

	result, err := c.GeocodeZip(context.Background(), "90012")
	require.NoError(t, err)

	assert.InDelta(t, 34.06, result.Lat, 0.1, "lat should be near downtown LA")
	assert.InDelta(t, -118.24, result.Lon, 0.1, "lon should be near downtown LA")
	assert.Contains(t, result.FormattedAddress, "Los Angeles")
}

func TestSmoke_ReverseGeocode(t *testing.T) {
	c := smokeClient(t)

	result, err := c.ReverseGeocode(context.Background(), 34.0614, -118.2385)
	require.NoError(t, err)

	assert.NotEmpty(t, result.FormattedAddress)
	assert.NotEmpty(t, result.PlaceName)
}

func TestSmoke_CachedGeocoder(t *testing.T) {
	c := smokeClient(t)
	cached := NewCachedGeocoder(c, 10, observability.NewMetricsForTesting())

	r1, err := cached.GeocodeZip(context.Background(), "90028")
	require.NoError(t, err)
	assert.Contains(t, r1.FormattedAddress, "Los Angeles")

	r2, err := cached.GeocodeZip(context.Background(), "90028")
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
}
