package services

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Outbound Basalam API calls partitioned by operation and status code
	upstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "basalam_upstream_request_duration_seconds",
			Help:    "Latency of calls to the Basalam API",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"op", "status"},
	)

	catalogCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_lookups_total",
			Help: "Catalog cache lookups partitioned by result",
		},
		[]string{"result"},
	)
)

func observeUpstream(op string, status int, elapsed time.Duration) {
	upstreamRequestDuration.WithLabelValues(op, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
