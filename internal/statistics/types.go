package statistics

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/club-stats/internal/analytics"
	"github.com/mauv0809/club-stats/internal/cache"
	"github.com/mauv0809/club-stats/internal/loader"
	"github.com/mauv0809/club-stats/internal/metrics"
	"github.com/mauv0809/club-stats/internal/stream"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL is how long a computed aggregate stays fresh.
const DefaultTTL = 15 * time.Second

// Aggregate names, used as cache key prefixes and metric labels.
const (
	AggregatePlayers      = "players"
	AggregateTeam         = "team"
	AggregateFund         = "fund"
	AggregateMatch        = "match"
	AggregateComparison   = "comparison"
	AggregatePeriods      = "periods"
	AggregateCorrelations = "correlations"
)

// Option configures a Service.
type Option func(*Service)

// Service is the aggregation facade. It fingerprints inputs, serves cached
// aggregates, and on a miss returns a placeholder while the real value is
// computed in the background, cached and published.
type Service struct {
	source  Source
	loader  loader.AggregatorLoader
	metrics metrics.Metrics
	cache   *cache.Cache[any]
	clock   clockwork.Clock
	ttl     time.Duration
	group   singleflight.Group

	// ctx bounds background computations; cancel is called by Close.
	ctx    context.Context
	cancel context.CancelFunc

	players *stream.Topic[[]analytics.PlayerStatistics]
	team    *stream.Topic[analytics.TeamStatistics]
	fund    *stream.Topic[analytics.FundAnalytics]
}

// Report is the bundle written by ExportReport.
type Report struct {
	GeneratedAt  time.Time                    `json:"generated_at"`
	Players      []analytics.PlayerStatistics `json:"players"`
	Team         analytics.TeamStatistics     `json:"team"`
	Fund         analytics.FundAnalytics      `json:"fund"`
	Correlations analytics.Correlations       `json:"correlations"`
}
