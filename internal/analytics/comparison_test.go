package analytics_test

import (
	"testing"

	"github.com/mauv0809/club-stats/internal/analytics"
	"github.com/mauv0809/club-stats/internal/club"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsFor(id, name string, goals, assists, matches int, winRate, revenue float64) analytics.PlayerStatistics {
	return analytics.PlayerStatistics{
		PlayerID:   id,
		PlayerName: name,
		Performance: analytics.PlayerPerformance{
			TotalMatches: matches,
			GoalsScored:  goals,
			Assists:      assists,
			WinRate:      winRate,
		},
		Financial: analytics.PlayerFinancial{RevenueShare: revenue},
	}
}

func TestComparePlayers(t *testing.T) {
	agg := analytics.NewComparisonAggregator()
	stats := []analytics.PlayerStatistics{
		statsFor("p1", "An", 3, 0, 10, 40, 100),
		statsFor("p2", "Binh", 5, 4, 8, 75, 90),
		statsFor("p3", "Cuong", 1, 9, 12, 20, 300),
	}

	t.Run("names the leader of each metric", func(t *testing.T) {
		c := agg.ComparePlayers([]string{"p1", "p2"}, stats)
		assert.Equal(t, []string{"p1", "p2"}, c.PlayerIDs)
		assert.Equal(t, []int{3, 5}, c.Metrics.Goals)
		assert.Equal(t, "Binh", c.Winners.Goals)
		assert.Equal(t, "Binh", c.Winners.Assists)
		assert.Equal(t, "Binh", c.Winners.WinRate)
		assert.Equal(t, "An", c.Winners.Revenue)
		assert.Equal(t, "An", c.Winners.Matches)
		assert.Equal(t, "Binh", c.Winners.Overall)
	})

	t.Run("overall blends goals, assists and win rate", func(t *testing.T) {
		// p3: 1+9+2 = 12, p1: 3+0+4 = 7
		c := agg.ComparePlayers([]string{"p3", "p1"}, stats)
		assert.Equal(t, "Cuong", c.Winners.Overall)
		assert.Equal(t, "An", c.Winners.Goals)
	})

	t.Run("skips unknown ids", func(t *testing.T) {
		c := agg.ComparePlayers([]string{"ghost", "p3"}, stats)
		assert.Equal(t, []string{"Cuong"}, c.Names)
		assert.Equal(t, "Cuong", c.Winners.Goals)
	})

	t.Run("no players means no winners", func(t *testing.T) {
		c := agg.ComparePlayers(nil, stats)
		assert.Empty(t, c.Names)
		assert.NotNil(t, c.Metrics.WinRates)
		assert.Equal(t, analytics.ComparisonWinners{}, c.Winners)
	})
}

func TestComparePeriods(t *testing.T) {
	agg := analytics.NewComparisonAggregator()

	m1 := newMatch("m1", day(2024, 1, 1), nil, nil, 2, 0)
	m1.Finances.TotalRevenue = 100
	m2 := newMatch("m2", day(2024, 1, 31), nil, nil, 0, 1)
	m2.Finances.TotalRevenue = 50
	m3 := newMatch("m3", day(2024, 2, 10), nil, nil, 3, 3)
	m3.Finances.TotalRevenue = 400
	matches := []club.Match{m1, m2, m3}

	jan := analytics.Period{From: day(2024, 1, 1), To: day(2024, 1, 31)}
	feb := analytics.Period{From: day(2024, 2, 1), To: day(2024, 2, 29)}
	c := agg.ComparePeriods(matches, jan, feb)

	assert.Equal(t, analytics.PeriodMetrics{Matches: 2, WinRate: 50, Goals: 3, Revenue: 150}, c.First, "bounds are inclusive")
	assert.Equal(t, analytics.PeriodMetrics{Matches: 1, WinRate: 0, Goals: 6, Revenue: 400}, c.Second)
	assert.Equal(t, analytics.PeriodDelta{Matches: -1, WinRate: -50, Goals: 3, Revenue: 250}, c.Deltas)
	assert.Equal(t, jan, c.Period1)
}

func TestCorrelate(t *testing.T) {
	agg := analytics.NewComparisonAggregator()

	t.Run("perfectly linked metrics correlate to one", func(t *testing.T) {
		stats := []analytics.PlayerStatistics{
			statsFor("p1", "An", 1, 3, 2, 10, 50),
			statsFor("p2", "Binh", 2, 2, 4, 20, 100),
			statsFor("p3", "Cuong", 3, 1, 6, 30, 150),
		}
		c := agg.Correlate(stats)
		assert.InDelta(t, 1, c.GoalsWinRate, 1e-9)
		assert.InDelta(t, -1, c.AssistsWinRate, 1e-9)
		assert.InDelta(t, 1, c.MatchesGoals, 1e-9)
		assert.InDelta(t, 1, c.RevenueMatches, 1e-9)
		assert.Equal(t, 3, c.SampleSize)
	})

	t.Run("undefined correlations are zero", func(t *testing.T) {
		single := agg.Correlate([]analytics.PlayerStatistics{statsFor("p1", "An", 1, 1, 1, 100, 10)})
		assert.Zero(t, single.GoalsWinRate)

		flat := agg.Correlate([]analytics.PlayerStatistics{
			statsFor("p1", "An", 2, 0, 1, 10, 0),
			statsFor("p2", "Binh", 2, 0, 3, 90, 0),
		})
		require.Equal(t, 2, flat.SampleSize)
		assert.Zero(t, flat.GoalsWinRate)
		assert.Zero(t, flat.RevenueMatches)
		assert.Zero(t, agg.Correlate(nil).MatchesGoals)
	})
}
