package metrics

import (
	"database/sql"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	CacheHits           *prometheus.CounterVec
	CacheMisses         *prometheus.CounterVec
	Computations        *prometheus.CounterVec
	ComputationFailures *prometheus.CounterVec
	ComputationDuration *prometheus.HistogramVec
	AggregatorLoads     *prometheus.CounterVec
	Flushes             prometheus.Counter
	FlushFailures       prometheus.Counter
	EntriesWritten      prometheus.Counter
	StartupTimeSeconds  prometheus.Gauge
	CacheEntries        prometheus.Gauge
}

// store handles counter persistence.
type store struct {
	db *sql.DB
	mu sync.Mutex
}
