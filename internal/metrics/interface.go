package metrics

import "context"

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
// Kind labels are aggregate names such as "players" or "fund".
type Metrics interface {
	IncCacheHit(kind string)
	IncCacheMiss(kind string)
	IncComputations(kind string)
	IncComputationFailures(kind string)
	ObserveComputationDuration(kind string, duration float64)
	IncAggregatorLoads(kind string)
	IncFlushes()
	IncFlushFailures()
	AddEntriesWritten(n int)
	SetStartupTime(duration float64)
	SetCacheEntries(n int)
}

// CounterStore keeps lifetime counters in the database so they survive
// restarts, unlike the Prometheus counters.
type CounterStore interface {
	Add(ctx context.Context, key string, delta int) error
	GetAll(ctx context.Context) (map[string]int, error)
}

// Keys used with CounterStore.
const (
	CounterBatchFlushes   = "batch_flushes"
	CounterEntriesWritten = "statistics_entries_written"
	CounterFlushFailures  = "batch_flush_failures"
)
