package exporter

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/club-stats/internal/analytics"
	"github.com/mauv0809/club-stats/internal/metrics"
	"github.com/mauv0809/club-stats/internal/statstore"
	"github.com/mauv0809/club-stats/internal/stream"
)

const (
	// DefaultDebounce is how long the exporter waits after the last emission.
	DefaultDebounce = 30 * time.Second
	// CalculatedBy tags every entry the exporter writes.
	CalculatedBy = "batch-exporter"
)

// Source is the set of live aggregate streams the exporter follows.
type Source interface {
	PlayerUpdates() *stream.Topic[[]analytics.PlayerStatistics]
	TeamUpdates() *stream.Topic[analytics.TeamStatistics]
	FundUpdates() *stream.Topic[analytics.FundAnalytics]
}

// Option configures an Exporter.
type Option func(*Exporter)

// Exporter keeps the latest player, team and fund aggregates and writes one
// batch entry per category once the streams have been quiet for the debounce
// window.
type Exporter struct {
	source   Source
	store    statstore.Store
	metrics  metrics.Metrics
	counters metrics.CounterStore
	clock    clockwork.Clock
	debounce time.Duration
	maxWait  time.Duration

	mu      sync.Mutex
	players []analytics.PlayerStatistics
	team    *analytics.TeamStatistics
	fund    *analytics.FundAnalytics
	pending int

	timer    clockwork.Timer
	timerSeq int
	maxTimer clockwork.Timer
	maxSeq   int
}
