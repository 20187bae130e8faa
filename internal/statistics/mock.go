package statistics

import (
	"context"
	"sync"

	"github.com/mauv0809/club-stats/internal/analytics"
	"github.com/mauv0809/club-stats/internal/stream"
)

var _ Provider = (*Mock)(nil)

// Mock is a mock implementation of the Provider interface for testing.
// Without a ...Func hook each method returns the aggregate's placeholder.
type Mock struct {
	mu sync.Mutex

	PlayersFunc        func(ctx context.Context) []analytics.PlayerStatistics
	TeamFunc           func(ctx context.Context) analytics.TeamStatistics
	FundFunc           func(ctx context.Context) analytics.FundAnalytics
	MatchFunc          func(ctx context.Context, id string) (analytics.MatchAnalytics, error)
	ComparePlayersFunc func(ctx context.Context, ids []string) analytics.PlayerComparison
	ComparePeriodsFunc func(ctx context.Context, first, second analytics.Period) analytics.PeriodComparison
	CorrelationsFunc   func(ctx context.Context) analytics.Correlations
	ExportReportFunc   func(ctx context.Context) ([]byte, error)

	// Call records
	MatchCalls          []string
	ComparePlayersCalls [][]string
	ComparePeriodsCalls [][2]analytics.Period
	ClearCacheCalls     []string

	players *stream.Topic[[]analytics.PlayerStatistics]
	team    *stream.Topic[analytics.TeamStatistics]
	fund    *stream.Topic[analytics.FundAnalytics]
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		players: stream.New[[]analytics.PlayerStatistics](),
		team:    stream.New[analytics.TeamStatistics](),
		fund:    stream.New[analytics.FundAnalytics](),
	}
}

func (m *Mock) Players(ctx context.Context) []analytics.PlayerStatistics {
	if m.PlayersFunc != nil {
		return m.PlayersFunc(ctx)
	}
	return analytics.PlaceholderPlayers()
}

func (m *Mock) Team(ctx context.Context) analytics.TeamStatistics {
	if m.TeamFunc != nil {
		return m.TeamFunc(ctx)
	}
	return analytics.PlaceholderTeam()
}

func (m *Mock) Fund(ctx context.Context) analytics.FundAnalytics {
	if m.FundFunc != nil {
		return m.FundFunc(ctx)
	}
	return analytics.PlaceholderFund(0)
}

func (m *Mock) Match(ctx context.Context, id string) (analytics.MatchAnalytics, error) {
	m.mu.Lock()
	m.MatchCalls = append(m.MatchCalls, id)
	m.mu.Unlock()
	if m.MatchFunc != nil {
		return m.MatchFunc(ctx, id)
	}
	return analytics.PlaceholderMatch(id), nil
}

func (m *Mock) ComparePlayers(ctx context.Context, ids []string) analytics.PlayerComparison {
	m.mu.Lock()
	m.ComparePlayersCalls = append(m.ComparePlayersCalls, ids)
	m.mu.Unlock()
	if m.ComparePlayersFunc != nil {
		return m.ComparePlayersFunc(ctx, ids)
	}
	return analytics.PlaceholderComparison()
}

func (m *Mock) ComparePeriods(ctx context.Context, first, second analytics.Period) analytics.PeriodComparison {
	m.mu.Lock()
	m.ComparePeriodsCalls = append(m.ComparePeriodsCalls, [2]analytics.Period{first, second})
	m.mu.Unlock()
	if m.ComparePeriodsFunc != nil {
		return m.ComparePeriodsFunc(ctx, first, second)
	}
	return analytics.PeriodComparison{Period1: first, Period2: second}
}

func (m *Mock) Correlations(ctx context.Context) analytics.Correlations {
	if m.CorrelationsFunc != nil {
		return m.CorrelationsFunc(ctx)
	}
	return analytics.Correlations{}
}

func (m *Mock) ExportReport(ctx context.Context) ([]byte, error) {
	if m.ExportReportFunc != nil {
		return m.ExportReportFunc(ctx)
	}
	return []byte("{}"), nil
}

func (m *Mock) ClearCache(prefix string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCacheCalls = append(m.ClearCacheCalls, prefix)
	return 0
}

func (m *Mock) PlayerUpdates() *stream.Topic[[]analytics.PlayerStatistics] { return m.players }
func (m *Mock) TeamUpdates() *stream.Topic[analytics.TeamStatistics] { return m.team }
func (m *Mock) FundUpdates() *stream.Topic[analytics.FundAnalytics] { return m.fund }
