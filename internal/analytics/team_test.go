package analytics_test

import (
	"testing"

	"github.com/mauv0809/club-stats/internal/analytics"
	"github.com/mauv0809/club-stats/internal/club"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTeamStatistics(t *testing.T) {
	players := []club.Player{
		{ID: "p1", Position: club.PositionGoalkeeper, Stats: club.CareerStats{TotalMatches: 10, WinRate: 80}},
		{ID: "p2", Position: club.PositionDefender, Stats: club.CareerStats{TotalMatches: 20, WinRate: 50}},
		{ID: "p3", Position: club.PositionForward, Stats: club.CareerStats{TotalMatches: 30, WinRate: 20}},
		{ID: "p4", Position: "coach", Stats: club.CareerStats{TotalMatches: 0, WinRate: 70}},
	}

	m1 := newMatch("m1", day(2024, 1, 6), nil, nil, 3, 1)
	m1.Finances = club.Finances{TotalRevenue: 400, TotalExpenses: 100, NetProfit: 300}
	m2 := newMatch("m2", day(2024, 1, 20), nil, nil, 0, 0)
	m2.Finances = club.Finances{TotalRevenue: 50, TotalExpenses: 100, NetProfit: -50}
	m3 := newMatch("m3", day(2024, 2, 3), nil, nil, 1, 2)
	m3.Finances = club.Finances{TotalRevenue: 200, TotalExpenses: 100, NetProfit: 100}
	matches := []club.Match{m1, m2, m3}

	stats := analytics.BuildTeamStatistics(players, matches)

	t.Run("composition", func(t *testing.T) {
		c := stats.Composition
		assert.Equal(t, 4, c.TotalPlayers)
		assert.Equal(t, analytics.PositionCounts{Goalkeepers: 1, Defenders: 1, Forwards: 1, Other: 1}, c.Positions)
		assert.Equal(t, 15.0, c.AverageExperience)
		assert.Equal(t, 2, c.StrongPlayers, "win rate of exactly 70 is strong")
		assert.Equal(t, 1, c.AveragePlayers)
		assert.Equal(t, 1, c.WeakPlayers)
	})

	t.Run("performance", func(t *testing.T) {
		p := stats.Performance
		assert.Equal(t, 3, p.TotalMatches)
		assert.Equal(t, 1, p.Wins)
		assert.Equal(t, 1, p.Draws)
		assert.Equal(t, 1, p.Losses)
		assert.InDelta(t, 33.33, p.WinRate, 0.01)
		assert.InDelta(t, 7.0/3, p.AverageGoalsScored, 1e-9)
		assert.Equal(t, p.AverageGoalsScored, p.AverageGoalsConceded)
		assert.Equal(t, 1, p.CleanSheets)
	})

	t.Run("financial", func(t *testing.T) {
		f := stats.Financial
		assert.Equal(t, 650.0, f.TotalRevenue)
		assert.Equal(t, 300.0, f.TotalExpenses)
		assert.Equal(t, 350.0, f.TotalProfit)
		require.NotNil(t, f.MostProfitable)
		require.NotNil(t, f.LeastProfitable)
		assert.Equal(t, "m1", f.MostProfitable.MatchID)
		assert.Equal(t, "m2", f.LeastProfitable.MatchID)
	})

	t.Run("monthly trends are ordered by month", func(t *testing.T) {
		require.Len(t, stats.Trends.Monthly, 2)
		jan, feb := stats.Trends.Monthly[0], stats.Trends.Monthly[1]
		assert.Equal(t, analytics.MonthlyPerformance{Month: "2024-01", Matches: 2, WinRate: 50, Goals: 4, Profit: 250}, jan)
		assert.Equal(t, analytics.MonthlyPerformance{Month: "2024-02", Matches: 1, WinRate: 0, Goals: 3, Profit: 100}, feb)
	})

	t.Run("empty inputs yield zeros", func(t *testing.T) {
		empty := analytics.BuildTeamStatistics(nil, nil)
		assert.Zero(t, empty.Performance.WinRate)
		assert.Zero(t, empty.Performance.AverageGoalsScored)
		assert.Zero(t, empty.Composition.AverageExperience)
		assert.Nil(t, empty.Financial.MostProfitable)
		assert.NotNil(t, empty.Trends.Monthly)
	})
}
