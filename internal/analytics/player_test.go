package analytics_test

import (
	"math"
	"testing"
	"time"

	"github.com/mauv0809/club-stats/internal/analytics"
	"github.com/mauv0809/club-stats/internal/club"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPlayer(id, first string, pos club.Position) club.Player {
	return club.Player{ID: id, FirstName: first, Position: pos}
}

func newMatch(id string, date time.Time, teamA, teamB []club.Player, scoreA, scoreB int) club.Match {
	return club.Match{
		ID:     id,
		Date:   date,
		TeamA:  club.Team{Name: "A", Players: teamA},
		TeamB:  club.Team{Name: "B", Players: teamB},
		Result: club.Result{ScoreA: scoreA, ScoreB: scoreB},
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 18, 0, 0, 0, time.UTC)
}

func byPlayerID(stats []analytics.PlayerStatistics) map[string]analytics.PlayerStatistics {
	out := make(map[string]analytics.PlayerStatistics, len(stats))
	for _, s := range stats {
		out[s.PlayerID] = s
	}
	return out
}

func TestBuildPlayerStatistics(t *testing.T) {
	p1 := newPlayer("p1", "An", club.PositionForward)
	p2 := newPlayer("p2", "Binh", club.PositionMidfielder)
	p3 := newPlayer("p3", "Cuong", club.PositionDefender)
	players := []club.Player{p1, p2, p3}

	t.Run("is deterministic for fixed inputs", func(t *testing.T) {
		m := newMatch("m1", day(2024, 1, 1), []club.Player{p1, p2}, []club.Player{p3}, 2, 1)
		m.Result.Goals = []club.Goal{{PlayerID: "p1", AssistID: "p2", Side: club.SideA}}
		m.Result.YellowCards = []club.Card{{PlayerID: "p3", Side: club.SideB, Minute: 40}}
		matches := []club.Match{m}

		first := analytics.BuildPlayerStatistics(players, matches)
		second := analytics.BuildPlayerStatistics(players, matches)
		assert.Equal(t, first, second)
	})

	t.Run("ranks goal scorers by goals", func(t *testing.T) {
		m := newMatch("m1", day(2024, 1, 1), []club.Player{p1, p2}, []club.Player{p3}, 3, 1)
		m.Result.Goals = []club.Goal{
			{PlayerID: "p1", Side: club.SideA},
			{PlayerID: "p1", Side: club.SideA},
			{PlayerID: "p2", Side: club.SideA},
		}
		stats := byPlayerID(analytics.BuildPlayerStatistics(players, []club.Match{m}))

		assert.Equal(t, 1, stats["p1"].Rankings.GoalsRank)
		assert.Equal(t, 2, stats["p2"].Rankings.GoalsRank)
		assert.Equal(t, 3, stats["p3"].Rankings.GoalsRank)
		assert.Equal(t, 1, stats["p1"].Rankings.OverallRank)
		assert.Equal(t, 2, stats["p2"].Rankings.OverallRank)
		assert.Equal(t, 3, stats["p3"].Rankings.OverallRank)
	})

	t.Run("counts matches and goals across the player's history", func(t *testing.T) {
		m1 := newMatch("m1", day(2024, 1, 1), []club.Player{p1}, []club.Player{p2}, 1, 0)
		m1.Result.Goals = []club.Goal{{PlayerID: "p1", Side: club.SideA}}
		m2 := newMatch("m2", day(2024, 1, 8), []club.Player{p2}, []club.Player{p1}, 2, 2)
		stats := byPlayerID(analytics.BuildPlayerStatistics(players, []club.Match{m1, m2}))

		perf := stats["p1"].Performance
		assert.Equal(t, 2, perf.TotalMatches)
		assert.Equal(t, 1, perf.GoalsScored)
		assert.Equal(t, 1, perf.Wins)
		assert.Equal(t, 1, perf.Draws)
		assert.Equal(t, 0, perf.Losses)
		assert.Equal(t, 50.0, perf.WinRate)
		assert.Equal(t, 0.5, perf.GoalsPerMatch)
		assert.Zero(t, stats["p3"].Performance.TotalMatches)
	})

	t.Run("reports zero averages without matches", func(t *testing.T) {
		stats := analytics.BuildPlayerStatistics(players, nil)
		require.Len(t, stats, 3)
		for _, s := range stats {
			perf := s.Performance
			for _, v := range []float64{perf.WinRate, perf.GoalsPerMatch, perf.AssistsPerMatch, perf.CardsPerMatch} {
				assert.Zero(t, v)
				assert.False(t, math.IsNaN(v))
			}
			assert.NotNil(t, s.Trends.RecentForm)
			assert.Empty(t, s.Trends.RecentForm)
			assert.Equal(t, analytics.TrendStable, s.Trends.Trend)
		}
	})

	t.Run("splits revenue across players and charges card fees", func(t *testing.T) {
		m := newMatch("m1", day(2024, 1, 1), []club.Player{p1, p2}, []club.Player{p3}, 0, 1)
		m.Finances.TotalRevenue = 600
		m.Result.YellowCards = []club.Card{{PlayerID: "p1", Side: club.SideA}}
		m.Result.RedCards = []club.Card{{PlayerID: "p1", Side: club.SideA}}
		stats := byPlayerID(analytics.BuildPlayerStatistics(players, []club.Match{m}))

		fin := stats["p1"].Financial
		assert.Equal(t, 200.0, fin.RevenueShare)
		assert.Equal(t, 150_000.0, fin.Penalties)
		assert.Equal(t, 200.0-150_000.0, fin.NetContribution)
		assert.Equal(t, 1, stats["p1"].Performance.Losses)
	})

	t.Run("breaks rank ties by input order", func(t *testing.T) {
		a := newPlayer("a", "An", club.PositionForward)
		b := newPlayer("b", "Binh", club.PositionMidfielder)
		c := newPlayer("c", "Cuong", club.PositionForward)
		// A draw leaves assists, win rate and revenue tied for everyone.
		m := newMatch("m1", day(2024, 1, 1), []club.Player{a, b}, []club.Player{c}, 1, 1)
		m.Result.Goals = []club.Goal{{PlayerID: "a", Side: club.SideA}, {PlayerID: "c", Side: club.SideB}}
		matches := []club.Match{m}

		forward := byPlayerID(analytics.BuildPlayerStatistics([]club.Player{a, b, c}, matches))
		assert.Equal(t, 1, forward["a"].Rankings.GoalsRank)
		assert.Equal(t, 2, forward["c"].Rankings.GoalsRank)
		assert.Equal(t, 3, forward["b"].Rankings.GoalsRank)
		assert.Equal(t, 3, forward["c"].Rankings.AssistsRank)

		reversed := byPlayerID(analytics.BuildPlayerStatistics([]club.Player{c, b, a}, matches))
		assert.Equal(t, 1, reversed["c"].Rankings.GoalsRank)
		assert.Equal(t, 2, reversed["a"].Rankings.GoalsRank)
		assert.Equal(t, 3, reversed["a"].Rankings.AssistsRank)

		// overall = floor(mean of the four zero-based positions) + 1
		assert.Equal(t, 1, forward["a"].Rankings.OverallRank, "(0+0+0+0)/4")
		assert.Equal(t, 2, forward["b"].Rankings.OverallRank, "(2+1+1+1)/4")
		assert.Equal(t, 2, forward["c"].Rankings.OverallRank, "(1+2+2+2)/4")
		assert.Equal(t, 1, reversed["c"].Rankings.OverallRank)
		assert.Equal(t, 2, reversed["a"].Rankings.OverallRank)
	})

	t.Run("skips events for players not in the list", func(t *testing.T) {
		ghost := club.Player{ID: "ghost"}
		m := newMatch("m1", day(2024, 1, 1), []club.Player{p1, ghost}, []club.Player{p2}, 1, 0)
		m.Result.Goals = []club.Goal{{PlayerID: "ghost", AssistID: "p1", Side: club.SideA}}
		stats := analytics.BuildPlayerStatistics(players, []club.Match{m})

		require.Len(t, stats, 3)
		assert.Equal(t, 1, byPlayerID(stats)["p1"].Performance.Assists)
	})
}

func TestPlayerTrends(t *testing.T) {
	p1 := newPlayer("p1", "An", club.PositionForward)
	p2 := newPlayer("p2", "Binh", club.PositionForward)

	// results are listed newest first to check the history is sorted by date
	results := [][2]int{{1, 0}, {1, 0}, {0, 1}, {0, 1}}
	var matches []club.Match
	for i, r := range results {
		matches = append(matches, newMatch("m", day(2024, 1, 10-i), []club.Player{p1}, []club.Player{p2}, r[0], r[1]))
	}

	stats := byPlayerID(analytics.BuildPlayerStatistics([]club.Player{p1, p2}, matches))

	assert.Equal(t, []analytics.Outcome{analytics.OutcomeLoss, analytics.OutcomeLoss, analytics.OutcomeWin, analytics.OutcomeWin}, stats["p1"].Trends.RecentForm)
	assert.Equal(t, analytics.TrendImproving, stats["p1"].Trends.Trend)
	assert.Equal(t, analytics.TrendDeclining, stats["p2"].Trends.Trend)
	assert.Equal(t, 50.0, stats["p1"].Trends.Last5WinRate)

	t.Run("keeps only the last five results as recent form", func(t *testing.T) {
		var long []club.Match
		for i := 0; i < 12; i++ {
			scoreA := 0
			if i >= 7 {
				scoreA = 1
			}
			long = append(long, newMatch("m", day(2024, 2, i+1), []club.Player{p1}, []club.Player{p2}, scoreA, 0))
		}
		stats := byPlayerID(analytics.BuildPlayerStatistics([]club.Player{p1, p2}, long))

		assert.Len(t, stats["p1"].Trends.RecentForm, 5)
		assert.Equal(t, 100.0, stats["p1"].Trends.Last5WinRate)
		assert.Equal(t, 50.0, stats["p1"].Trends.Last10WinRate)
	})

	t.Run("a change of exactly the threshold is stable", func(t *testing.T) {
		// 4 wins in the first ten matches, 5 in the last ten: +10 points.
		wins := map[int]bool{0: true, 1: true, 2: true, 3: true, 10: true, 11: true, 12: true, 13: true, 14: true}
		var history []club.Match
		for i := 0; i < 20; i++ {
			scoreA := 0
			if wins[i] {
				scoreA = 1
			}
			history = append(history, newMatch("m", day(2024, 3, i+1), []club.Player{p1}, []club.Player{p2}, scoreA, 0))
		}
		stats := byPlayerID(analytics.BuildPlayerStatistics([]club.Player{p1, p2}, history))

		assert.Equal(t, analytics.TrendStable, stats["p1"].Trends.Trend)
	})

	t.Run("a change just over the threshold is a trend", func(t *testing.T) {
		// 4 wins in the first ten matches, 6 in the last ten: +20 points.
		wins := map[int]bool{0: true, 1: true, 2: true, 3: true, 10: true, 11: true, 12: true, 13: true, 14: true, 15: true}
		var history []club.Match
		for i := 0; i < 20; i++ {
			scoreA := 0
			if wins[i] {
				scoreA = 1
			}
			history = append(history, newMatch("m", day(2024, 3, i+1), []club.Player{p1}, []club.Player{p2}, scoreA, 0))
		}
		stats := byPlayerID(analytics.BuildPlayerStatistics([]club.Player{p1, p2}, history))

		assert.Equal(t, analytics.TrendImproving, stats["p1"].Trends.Trend)
	})
}
