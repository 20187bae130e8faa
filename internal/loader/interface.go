package loader

import (
	"context"

	"github.com/mauv0809/club-stats/internal/analytics"
)

// AggregatorLoader hands out aggregator instances, constructing each kind at
// most once.
type AggregatorLoader interface {
	Player(ctx context.Context) (*analytics.PlayerAggregator, error)
	Team(ctx context.Context) (*analytics.TeamAggregator, error)
	Match(ctx context.Context) (*analytics.MatchAggregator, error)
	Fund(ctx context.Context) (*analytics.FundAggregator, error)
	Comparison(ctx context.Context) (*analytics.ComparisonAggregator, error)
	PreloadAll(ctx context.Context) <-chan struct{}
}
