package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type CacheMetricsCollector struct {
	Hits     *prometheus.CounterVec
	Misses   *prometheus.CounterVec
	Purges   *prometheus.CounterVec
	Requests *prometheus.CounterVec
	HitRatio *prometheus.GaugeVec
}

var (
	globalCollector *CacheMetricsCollector
	collectorOnce   sync.Once
)

func getCollector() *CacheMetricsCollector {
	collectorOnce.Do(func() {
		globalCollector = &CacheMetricsCollector{
			Hits: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "explorer_cache_hits_total",
					Help: "The total number of cache hits",
				},
				[]string{"resource_type"},
			),
			Misses: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "explorer_cache_misses_total",
					Help: "The total number of cache misses",
				},
				[]string{"resource_type"},
			),
			Purges: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "explorer_cache_purges_total",
					Help: "The total number of expired row set purges",
				},
				[]string{"resource_type"},
			),
			Requests: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "explorer_cache_requests_total",
					Help: "The total number of cache requests",
				},
				[]string{"resource_type"},
			),
			HitRatio: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Name: "explorer_cache_hit_ratio",
					Help: "Cache hit ratio (hits/total requests)",
				},
				[]string{"resource_type"},
			),
		}
	})
	return globalCollector
}

// CacheMetrics tracks cache effectiveness for one resource type
type CacheMetrics struct {
	resourceType string
	hits         int64
	misses       int64
	purges       int64
	total        int64
	collector    *CacheMetricsCollector
	mu           sync.RWMutex
}

func NewCacheMetrics(resourceType string) *CacheMetrics {
	return &CacheMetrics{
		resourceType: resourceType,
		collector:    getCollector(),
	}
}

func (m *CacheMetrics) RecordHit() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.hits++
	m.total++
	m.collector.Hits.WithLabelValues(m.resourceType).Inc()
	m.collector.Requests.WithLabelValues(m.resourceType).Inc()
	m.updateHitRatio()
}

func (m *CacheMetrics) RecordMiss() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.misses++
	m.total++
	m.collector.Misses.WithLabelValues(m.resourceType).Inc()
	m.collector.Requests.WithLabelValues(m.resourceType).Inc()
	m.updateHitRatio()
}

func (m *CacheMetrics) RecordPurge() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.purges++
	m.collector.Purges.WithLabelValues(m.resourceType).Inc()
}

// updateHitRatio updates the Prometheus hit ratio gauge.
// Must be called while holding the mutex.
func (m *CacheMetrics) updateHitRatio() {
	if m.total > 0 {
		ratio := float64(m.hits) / float64(m.total)
		m.collector.HitRatio.WithLabelValues(m.resourceType).Set(ratio)
	}
}

func (m *CacheMetrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var hitRatio float64
	if m.total > 0 {
		hitRatio = float64(m.hits) / float64(m.total)
	}

	return map[string]interface{}{
		"resource_type": m.resourceType,
		"hits":          m.hits,
		"misses":        m.misses,
		"purges":        m.purges,
		"total":         m.total,
		"hit_ratio":     hitRatio,
	}
}
