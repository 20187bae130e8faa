package analytics

import (
	"sort"

	"github.com/mauv0809/club-stats/internal/club"
)

// TeamAggregator builds TeamStatistics. Results are read from team A's side.
type TeamAggregator struct {
	cfg Config
}

func NewTeamAggregator(cfg Config) *TeamAggregator {
	return &TeamAggregator{cfg: cfg}
}

// BuildTeamStatistics is Build with DefaultConfig.
func BuildTeamStatistics(players []club.Player, matches []club.Match) TeamStatistics {
	return NewTeamAggregator(DefaultConfig()).Build(players, matches)
}

func (a *TeamAggregator) Build(players []club.Player, matches []club.Match) TeamStatistics {
	return TeamStatistics{
		Composition: a.composition(players),
		Performance: performance(matches),
		Financial:   financial(matches),
		Trends:      TeamTrends{Monthly: monthly(matches)},
	}
}

func (a *TeamAggregator) composition(players []club.Player) TeamComposition {
	c := TeamComposition{TotalPlayers: len(players)}
	var experience float64
	for _, p := range players {
		switch p.Position {
		case club.PositionGoalkeeper:
			c.Positions.Goalkeepers++
		case club.PositionDefender:
			c.Positions.Defenders++
		case club.PositionMidfielder:
			c.Positions.Midfielders++
		case club.PositionForward:
			c.Positions.Forwards++
		default:
			c.Positions.Other++
		}
		experience += float64(p.Stats.TotalMatches)

		switch {
		case p.Stats.WinRate >= a.cfg.StrongWinRate:
			c.StrongPlayers++
		case p.Stats.WinRate < a.cfg.WeakWinRate:
			c.WeakPlayers++
		default:
			c.AveragePlayers++
		}
	}
	c.AverageExperience = ratio(experience, float64(len(players)))
	return c
}

func performance(matches []club.Match) TeamPerformance {
	p := TeamPerformance{TotalMatches: len(matches)}
	goals := 0
	for _, m := range matches {
		switch outcomeFor(m.Result, club.SideA) {
		case OutcomeWin:
			p.Wins++
		case OutcomeDraw:
			p.Draws++
		case OutcomeLoss:
			p.Losses++
		}
		goals += m.Result.ScoreA + m.Result.ScoreB
		if m.Result.ScoreA == 0 || m.Result.ScoreB == 0 {
			p.CleanSheets++
		}
	}
	p.WinRate = percent(p.Wins, p.TotalMatches)
	p.AverageGoalsScored = ratio(float64(goals), float64(p.TotalMatches))
	// Conceded mirrors scored: both sides belong to the club.
	p.AverageGoalsConceded = p.AverageGoalsScored
	return p
}

func financial(matches []club.Match) TeamFinancial {
	var f TeamFinancial
	for _, m := range matches {
		f.TotalRevenue += m.Finances.TotalRevenue
		f.TotalExpenses += m.Finances.TotalExpenses
		f.TotalProfit += m.Finances.NetProfit

		mp := &MatchProfit{MatchID: m.ID, Date: m.Date, NetProfit: m.Finances.NetProfit}
		if f.MostProfitable == nil || mp.NetProfit > f.MostProfitable.NetProfit {
			f.MostProfitable = mp
		}
		if f.LeastProfitable == nil || mp.NetProfit < f.LeastProfitable.NetProfit {
			f.LeastProfitable = mp
		}
	}
	f.AverageProfitPerMatch = ratio(f.TotalProfit, float64(len(matches)))
	return f
}

func monthly(matches []club.Match) []MonthlyPerformance {
	type bucket struct {
		matches, wins, goals int
		profit               float64
	}
	buckets := make(map[string]*bucket)
	for _, m := range matches {
		key := monthKey(m.Date)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.matches++
		if outcomeFor(m.Result, club.SideA) == OutcomeWin {
			b.wins++
		}
		b.goals += m.Result.ScoreA + m.Result.ScoreB
		b.profit += m.Finances.NetProfit
	}

	out := make([]MonthlyPerformance, 0, len(buckets))
	for key, b := range buckets {
		out = append(out, MonthlyPerformance{
			Month:   key,
			Matches: b.matches,
			WinRate: percent(b.wins, b.matches),
			Goals:   b.goals,
			Profit:  b.profit,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
