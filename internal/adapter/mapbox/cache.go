package mapbox

import (
	"context"
	"fmt"

	"github.com/couchcryptid/parksafe-la/internal/domain"
	"github.com/couchcryptid/parksafe-la/internal/observability"
	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedGeocoder wraps a Geocoder with a bounded LRU cache. ZIP lookups and
// reverse lookups share one cache under distinct key prefixes.
type CachedGeocoder struct {
	inner   domain.Geocoder
	cache   *lru.Cache[string, domain.GeocodingResult]
	metrics *observability.Metrics
}

// NewCachedGeocoder creates a cache decorator around a geocoder.
// A non-positive size falls back to 1000 entries.
func NewCachedGeocoder(inner domain.Geocoder, size int, metrics *observability.Metrics) *CachedGeocoder {
	if size <= 0 {
		size = 1000
	}
	// lru.New only fails on a non-positive size.
	cache, _ := lru.New[string, domain.GeocodingResult](size)
	return &CachedGeocoder{inner: inner, cache: cache, metrics: metrics}
}

func (c *CachedGeocoder) GeocodeZip(ctx context.Context, zipcode string) (domain.GeocodingResult, error) {
	return c.lookup(ctx, "zip", "zip:"+zipcode, func(ctx context.Context) (domain.GeocodingResult, error) {
		return c.inner.GeocodeZip(ctx, zipcode)
	})
}

func (c *CachedGeocoder) ReverseGeocode(ctx context.Context, lat, lon float64) (domain.GeocodingResult, error) {
	key := fmt.Sprintf("rev:%.6f,%.6f", lat, lon)
	return c.lookup(ctx, "reverse", key, func(ctx context.Context) (domain.GeocodingResult, error) {
		return c.inner.ReverseGeocode(ctx, lat, lon)
	})
}

func (c *CachedGeocoder) lookup(
	ctx context.Context,
	method, key string,
	fetch func(context.Context) (domain.GeocodingResult, error),
) (domain.GeocodingResult, error) {
	if result, ok := c.cache.Get(key); ok {
		c.metrics.GeocodeCache.WithLabelValues(method, "hit").Inc()
		return result, nil
	}
	c.metrics.GeocodeCache.WithLabelValues(method, "miss").Inc()

	result, err := fetch(ctx)
	if err != nil {
		return result, err
	}
	// Empty results are not cached so a later query can retry.
	if result.FormattedAddress != "" {
		c.cache.Add(key, result)
	}
	return result, nil
}

// Len returns the number of cached results.
func (c *CachedGeocoder) Len() int { return c.cache.Len() }
