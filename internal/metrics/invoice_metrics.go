package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MutationMetrics records invoice mutation outcomes and page cache usage
type MutationMetrics interface {
	IncMutation(operation, stage string)
	ObservePersist(operation string, d time.Duration)
	IncCacheLookup(hit bool)
}

type mutationMetrics struct {
	mutations    *prometheus.CounterVec
	persistTime  *prometheus.HistogramVec
	cacheLookups *prometheus.CounterVec
}

// NewMutationMetrics registers the dashboard metrics on registry
func NewMutationMetrics(registry prometheus.Registerer) MutationMetrics {
	mutations := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "invoice_mutations_total",
			Help: "Invoice mutations by operation and terminal stage",
		},
		[]string{"operation", "stage"},
	)

	persistTime := promauto.With(registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "invoice_persist_duration_seconds",
			Help:    "Time spent waiting for the invoice store",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	cacheLookups := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "page_cache_lookups_total",
			Help: "Rendered page cache lookups by result",
		},
		[]string{"result"},
	)

	return &mutationMetrics{
		mutations:    mutations,
		persistTime:  persistTime,
		cacheLookups: cacheLookups,
	}
}

// IncMutation counts one mutation that ended in stage
func (m *mutationMetrics) IncMutation(operation, stage string) {
	m.mutations.WithLabelValues(operation, stage).Inc()
}

// ObservePersist records how long a store call took
func (m *mutationMetrics) ObservePersist(operation string, d time.Duration) {
	m.persistTime.WithLabelValues(operation).Observe(d.Seconds())
}

// IncCacheLookup counts a page cache hit or miss
func (m *mutationMetrics) IncCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}

// Nop discards every observation
type Nop struct{}

func (Nop) IncMutation(string, string)           {}
func (Nop) ObservePersist(string, time.Duration) {}
func (Nop) IncCacheLookup(bool)                  {}
