package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"cityexplorer.app/metrics"
	"cityexplorer.app/providers/cache"
)

// GeocodeCacheProxy is a read-through hot cache in front of the geocode
// provider. The Postgres location table remains the source of truth; the
// proxy only avoids repeat provider calls for queries whose location row
// has not been written yet.
type GeocodeCacheProxy struct {
	realProvider GeocodeProvider
	cache        cache.Cache
	cacheTTL     time.Duration
	metrics      *metrics.CacheMetrics
}

// NewGeocodeCacheProxy creates a caching proxy around a geocode provider
func NewGeocodeCacheProxy(realProvider GeocodeProvider, c cache.Cache, cacheTTL time.Duration) *GeocodeCacheProxy {
	return &GeocodeCacheProxy{
		realProvider: realProvider,
		cache:        c,
		cacheTTL:     cacheTTL,
		metrics:      metrics.NewCacheMetrics("geocode"),
	}
}

// Geocode serves cached geocode matches when present, otherwise delegates
func (p *GeocodeCacheProxy) Geocode(query string) ([]GeocodeResult, error) {
	ctx := context.Background()
	cacheKey := p.generateCacheKey(query)

	if data, found := p.cache.Get(ctx, cacheKey); found {
		var results []GeocodeResult
		if err := json.Unmarshal(data, &results); err == nil {
			slog.Info("geocode cache hit", "query", query)
			p.metrics.RecordHit()
			return results, nil
		}
		slog.Error("geocode cache entry corrupt, refetching", "query", query)
	}

	slog.Info("geocode cache miss", "query", query)
	p.metrics.RecordMiss()

	results, err := p.realProvider.Geocode(query)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(results); err == nil {
		p.cache.Set(ctx, cacheKey, data, p.cacheTTL)
	}

	return results, nil
}

func (p *GeocodeCacheProxy) generateCacheKey(query string) string {
	return fmt.Sprintf("geocode:%s", query)
}
