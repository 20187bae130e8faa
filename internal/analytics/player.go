package analytics

import (
	"math"
	"sort"

	"github.com/mauv0809/club-stats/internal/club"
)

// PlayerAggregator builds PlayerStatistics from players and matches.
type PlayerAggregator struct {
	cfg Config
}

// NewPlayerAggregator creates a player aggregator with the given constants.
func NewPlayerAggregator(cfg Config) *PlayerAggregator {
	return &PlayerAggregator{cfg: cfg}
}

// BuildPlayerStatistics is Build with DefaultConfig.
func BuildPlayerStatistics(players []club.Player, matches []club.Match) []PlayerStatistics {
	return NewPlayerAggregator(DefaultConfig()).Build(players, matches)
}

// Build returns one record per player, in player order, with rankings
// computed across the whole list.
func (a *PlayerAggregator) Build(players []club.Player, matches []club.Match) []PlayerStatistics {
	history := sortedByDate(matches)

	stats := make([]PlayerStatistics, 0, len(players))
	for _, p := range players {
		stats = append(stats, a.buildOne(p, history))
	}
	assignRankings(stats)
	return stats
}

func (a *PlayerAggregator) buildOne(p club.Player, history []club.Match) PlayerStatistics {
	var perf PlayerPerformance
	var fin PlayerFinancial
	outcomes := make([]Outcome, 0)

	for _, m := range history {
		side, ok := sideOf(m, p.ID)
		if !ok {
			continue
		}
		perf.TotalMatches++

		outcome := outcomeFor(m.Result, side)
		switch outcome {
		case OutcomeWin:
			perf.Wins++
		case OutcomeDraw:
			perf.Draws++
		case OutcomeLoss:
			perf.Losses++
		}
		outcomes = append(outcomes, outcome)

		for _, g := range m.Result.Goals {
			if g.PlayerID == p.ID {
				perf.GoalsScored++
			}
			if g.AssistID != "" && g.AssistID == p.ID {
				perf.Assists++
			}
		}
		for _, c := range m.Result.YellowCards {
			if c.PlayerID == p.ID {
				perf.YellowCards++
			}
		}
		for _, c := range m.Result.RedCards {
			if c.PlayerID == p.ID {
				perf.RedCards++
			}
		}

		onPitch := len(m.TeamA.Players) + len(m.TeamB.Players)
		fin.RevenueShare += ratio(m.Finances.TotalRevenue, float64(onPitch))
	}

	perf.WinRate = percent(perf.Wins, perf.TotalMatches)
	perf.GoalsPerMatch = ratio(float64(perf.GoalsScored), float64(perf.TotalMatches))
	perf.AssistsPerMatch = ratio(float64(perf.Assists), float64(perf.TotalMatches))
	perf.CardsPerMatch = ratio(float64(perf.YellowCards+perf.RedCards), float64(perf.TotalMatches))

	fin.Penalties = float64(perf.YellowCards)*a.cfg.YellowCardFee + float64(perf.RedCards)*a.cfg.RedCardFee
	fin.NetContribution = fin.RevenueShare - fin.Penalties

	return PlayerStatistics{
		PlayerID:    p.ID,
		PlayerName:  p.Name(),
		Position:    p.Position,
		Performance: perf,
		Financial:   fin,
		Trends:      a.trends(outcomes),
	}
}

// trends derives the form block from outcomes ordered oldest first.
func (a *PlayerAggregator) trends(outcomes []Outcome) PlayerTrends {
	recent := lastN(outcomes, 5)
	t := PlayerTrends{
		RecentForm:    append(make([]Outcome, 0, len(recent)), recent...),
		Last5WinRate:  winRate(recent),
		Last10WinRate: winRate(lastN(outcomes, 10)),
		Trend:         TrendStable,
	}
	if len(outcomes) < 2 {
		return t
	}
	half := len(outcomes) / 2
	delta := winRate(outcomes[half:]) - winRate(outcomes[:half])
	switch {
	case delta > a.cfg.TrendThreshold:
		t.Trend = TrendImproving
	case delta < -a.cfg.TrendThreshold:
		t.Trend = TrendDeclining
	}
	return t
}

// assignRankings fills the Rankings block of every record in place.
func assignRankings(stats []PlayerStatistics) {
	n := len(stats)
	goals := make([]float64, n)
	assists := make([]float64, n)
	rates := make([]float64, n)
	revenue := make([]float64, n)
	for i, s := range stats {
		goals[i] = float64(s.Performance.GoalsScored)
		assists[i] = float64(s.Performance.Assists)
		rates[i] = s.Performance.WinRate
		revenue[i] = s.Financial.RevenueShare
	}
	gp, ap, wp, rp := rankPositions(goals), rankPositions(assists), rankPositions(rates), rankPositions(revenue)
	for i := range stats {
		stats[i].Rankings = PlayerRankings{
			GoalsRank:   gp[i] + 1,
			AssistsRank: ap[i] + 1,
			WinRateRank: wp[i] + 1,
			RevenueRank: rp[i] + 1,
			OverallRank: int(math.Floor(float64(gp[i]+ap[i]+wp[i]+rp[i])/4)) + 1,
		}
	}
}

// playerStrength blends career win rate, experience and scoring output
// into a 0..100 score used for team balance.
func playerStrength(p club.Player) float64 {
	s := p.Stats
	experience := math.Min(float64(s.TotalMatches), 50) / 50 * 100
	output := math.Min(ratio(float64(s.GoalsScored+s.Assists), math.Max(float64(s.TotalMatches), 1))*50, 100)
	return s.WinRate*0.4 + experience*0.3 + output*0.3
}

func sideOf(m club.Match, playerID string) (club.Side, bool) {
	for _, p := range m.TeamA.Players {
		if p.ID == playerID {
			return club.SideA, true
		}
	}
	for _, p := range m.TeamB.Players {
		if p.ID == playerID {
			return club.SideB, true
		}
	}
	return "", false
}

func outcomeFor(r club.Result, side club.Side) Outcome {
	own, other := r.ScoreA, r.ScoreB
	if side == club.SideB {
		own, other = other, own
	}
	switch {
	case own > other:
		return OutcomeWin
	case own < other:
		return OutcomeLoss
	default:
		return OutcomeDraw
	}
}

func winRate(outcomes []Outcome) float64 {
	wins := 0
	for _, o := range outcomes {
		if o == OutcomeWin {
			wins++
		}
	}
	return percent(wins, len(outcomes))
}

func lastN[T any](s []T, n int) []T {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

// sortedByDate returns a copy of matches ordered oldest first. Matches on the
// same date keep collection order.
func sortedByDate(matches []club.Match) []club.Match {
	out := append([]club.Match(nil), matches...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}
