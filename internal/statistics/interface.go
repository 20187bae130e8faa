package statistics

import (
	"context"

	"github.com/mauv0809/club-stats/internal/analytics"
	"github.com/mauv0809/club-stats/internal/club"
	"github.com/mauv0809/club-stats/internal/stream"
)

// Source supplies the raw club collections as latest-value streams.
// club.Feed implements it.
type Source interface {
	Players() *stream.Topic[[]club.Player]
	Matches() *stream.Topic[[]club.Match]
	Fund() *stream.Topic[club.FundSnapshot]
}

// Provider is the pull API used by the HTTP layer. Every method answers from
// the cache or with a placeholder, and never blocks on computation unless
// the context was marked with WithWait.
type Provider interface {
	Players(ctx context.Context) []analytics.PlayerStatistics
	Team(ctx context.Context) analytics.TeamStatistics
	Fund(ctx context.Context) analytics.FundAnalytics
	Match(ctx context.Context, id string) (analytics.MatchAnalytics, error)
	ComparePlayers(ctx context.Context, ids []string) analytics.PlayerComparison
	ComparePeriods(ctx context.Context, first, second analytics.Period) analytics.PeriodComparison
	Correlations(ctx context.Context) analytics.Correlations
	ExportReport(ctx context.Context) ([]byte, error)
	ClearCache(prefix string) int

	PlayerUpdates() *stream.Topic[[]analytics.PlayerStatistics]
	TeamUpdates() *stream.Topic[analytics.TeamStatistics]
	FundUpdates() *stream.Topic[analytics.FundAnalytics]
}
