package analytics

import (
	"github.com/mauv0809/club-stats/internal/club"
)

// ComparisonAggregator compares players, periods and metric relationships.
// It works on already-built PlayerStatistics where it can.
type ComparisonAggregator struct{}

func NewComparisonAggregator() *ComparisonAggregator {
	return &ComparisonAggregator{}
}

// ComparePlayers extracts metric vectors for the requested ids, in request
// order, and names the leader of each metric. Unknown ids are skipped.
func (a *ComparisonAggregator) ComparePlayers(ids []string, stats []PlayerStatistics) PlayerComparison {
	byID := make(map[string]PlayerStatistics, len(stats))
	for _, s := range stats {
		byID[s.PlayerID] = s
	}

	c := PlayerComparison{
		PlayerIDs: make([]string, 0, len(ids)),
		Names:     make([]string, 0, len(ids)),
		Metrics: PlayerMetrics{
			Goals:    make([]int, 0, len(ids)),
			Assists:  make([]int, 0, len(ids)),
			WinRates: make([]float64, 0, len(ids)),
			Revenue:  make([]float64, 0, len(ids)),
			Matches:  make([]int, 0, len(ids)),
		},
	}
	var goals, assists, matches, overall []float64
	for _, id := range ids {
		s, ok := byID[id]
		if !ok {
			continue
		}
		perf := s.Performance
		c.PlayerIDs = append(c.PlayerIDs, id)
		c.Names = append(c.Names, s.PlayerName)
		c.Metrics.Goals = append(c.Metrics.Goals, perf.GoalsScored)
		c.Metrics.Assists = append(c.Metrics.Assists, perf.Assists)
		c.Metrics.WinRates = append(c.Metrics.WinRates, perf.WinRate)
		c.Metrics.Revenue = append(c.Metrics.Revenue, s.Financial.RevenueShare)
		c.Metrics.Matches = append(c.Metrics.Matches, perf.TotalMatches)

		goals = append(goals, float64(perf.GoalsScored))
		assists = append(assists, float64(perf.Assists))
		matches = append(matches, float64(perf.TotalMatches))
		overall = append(overall, float64(perf.GoalsScored+perf.Assists)+perf.WinRate/10)
	}

	winner := func(values []float64) string {
		if i := argMax(values); i >= 0 {
			return c.Names[i]
		}
		return ""
	}
	c.Winners = ComparisonWinners{
		Goals:   winner(goals),
		Assists: winner(assists),
		WinRate: winner(c.Metrics.WinRates),
		Revenue: winner(c.Metrics.Revenue),
		Matches: winner(matches),
		Overall: winner(overall),
	}
	return c
}

// ComparePeriods summarises the matches inside each period and reports
// second minus first.
func (a *ComparisonAggregator) ComparePeriods(matches []club.Match, first, second Period) PeriodComparison {
	m1, m2 := periodMetrics(matches, first), periodMetrics(matches, second)
	return PeriodComparison{
		Period1: first,
		Period2: second,
		First:   m1,
		Second:  m2,
		Deltas: PeriodDelta{
			Matches: m2.Matches - m1.Matches,
			WinRate: m2.WinRate - m1.WinRate,
			Goals:   m2.Goals - m1.Goals,
			Revenue: m2.Revenue - m1.Revenue,
		},
	}
}

func periodMetrics(matches []club.Match, p Period) PeriodMetrics {
	var pm PeriodMetrics
	wins := 0
	for _, m := range matches {
		if !p.Contains(m.Date) {
			continue
		}
		pm.Matches++
		if outcomeFor(m.Result, club.SideA) == OutcomeWin {
			wins++
		}
		pm.Goals += m.Result.ScoreA + m.Result.ScoreB
		pm.Revenue += m.Finances.TotalRevenue
	}
	pm.WinRate = percent(wins, pm.Matches)
	return pm
}

// Correlate computes Pearson coefficients across all players.
func (a *ComparisonAggregator) Correlate(stats []PlayerStatistics) Correlations {
	n := len(stats)
	goals := make([]float64, n)
	assists := make([]float64, n)
	rates := make([]float64, n)
	matches := make([]float64, n)
	revenue := make([]float64, n)
	for i, s := range stats {
		goals[i] = float64(s.Performance.GoalsScored)
		assists[i] = float64(s.Performance.Assists)
		rates[i] = s.Performance.WinRate
		matches[i] = float64(s.Performance.TotalMatches)
		revenue[i] = s.Financial.RevenueShare
	}
	return Correlations{
		GoalsWinRate:   pearson(goals, rates),
		AssistsWinRate: pearson(assists, rates),
		MatchesGoals:   pearson(matches, goals),
		RevenueMatches: pearson(revenue, matches),
		SampleSize:     n,
	}
}
