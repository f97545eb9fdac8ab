package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search Prometheus metrics.
var (
	CacheRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "frontsearch",
			Name:      "cache_requests_total",
			Help:      "Dataset cache lookups by outcome",
		},
		[]string{"result"}, // "hit" / "miss" / "shared" / "error"
	)

	CacheFetchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "frontsearch",
			Name:      "cache_fetch_duration_seconds",
			Help:      "Backend fetch duration on cache miss",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"status"},
	)

	CacheEntries = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "frontsearch",
			Name:      "cache_entries",
			Help:      "Resolved datasets held in memory",
		},
	)

	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "frontsearch",
			Name:      "search_duration_seconds",
			Help:      "Search duration by path",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"path"}, // "cached" / "backend"
	)

	PermutationsTruncatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "frontsearch",
			Name:      "permutations_truncated_total",
			Help:      "Queries whose out-of-order term expansion was capped",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(CacheRequestsTotal)
	prometheus.MustRegister(CacheFetchDuration)
	prometheus.MustRegister(CacheEntries)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(PermutationsTruncatedTotal)
	searchMetricsRegistered = true
}
