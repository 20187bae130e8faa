package analytics

import (
	"fmt"
	"math"

	"github.com/mauv0809/club-stats/internal/club"
)

// MatchAggregator scores a single match.
type MatchAggregator struct {
	cfg Config
}

func NewMatchAggregator(cfg Config) *MatchAggregator {
	return &MatchAggregator{cfg: cfg}
}

// BuildMatchAnalytics is Build with DefaultConfig.
func BuildMatchAnalytics(match club.Match, players []club.Player) MatchAnalytics {
	return NewMatchAggregator(DefaultConfig()).Build(match, players)
}

// Find analyses the match with the given id, or returns ErrMatchNotFound.
func (a *MatchAggregator) Find(id string, matches []club.Match, players []club.Player) (MatchAnalytics, error) {
	for _, m := range matches {
		if m.ID == id {
			return a.Build(m, players), nil
		}
	}
	return MatchAnalytics{}, fmt.Errorf("match %q: %w", id, ErrMatchNotFound)
}

// Build analyses match. Player strength and names come from players, the
// current player list; roster entries missing from it contribute nothing.
func (a *MatchAggregator) Build(match club.Match, players []club.Player) MatchAnalytics {
	index := make(map[string]club.Player, len(players))
	for _, p := range players {
		index[p.ID] = p
	}
	return MatchAnalytics{
		MatchID:    match.ID,
		Quality:    a.quality(match.Result),
		Balance:    balance(match, index),
		Financial:  financialScore(match.Finances),
		Highlights: highlights(match.Result, index),
	}
}

func (a *MatchAggregator) quality(r club.Result) MatchQuality {
	q := MatchQuality{
		Entertainment:   math.Min(100, float64(r.ScoreA+r.ScoreB)*20),
		FairPlay:        math.Max(0, 100-float64(len(r.YellowCards)*10+len(r.RedCards)*30)),
		Competitiveness: math.Max(0, 100-math.Abs(float64(r.ScoreA-r.ScoreB))*20),
		Organization:    a.cfg.OrganizationScore,
	}
	q.Overall = mean(q.Entertainment, q.FairPlay, q.Competitiveness, q.Organization)
	return q
}

func balance(m club.Match, index map[string]club.Player) MatchBalance {
	b := MatchBalance{
		StrengthA: teamStrength(m.TeamA, index),
		StrengthB: teamStrength(m.TeamB, index),
	}
	b.StrengthBalance = math.Max(0, 100-math.Abs(b.StrengthA-b.StrengthB))
	b.SizeBalance = 60
	if d := len(m.TeamA.Players) - len(m.TeamB.Players); d >= -1 && d <= 1 {
		b.SizeBalance = 100
	}
	b.Overall = mean(b.StrengthBalance, b.SizeBalance)
	return b
}

func teamStrength(t club.Team, index map[string]club.Player) float64 {
	scores := make([]float64, 0, len(t.Players))
	for _, ref := range t.Players {
		p, ok := index[ref.ID]
		if !ok {
			continue
		}
		scores = append(scores, playerStrength(p))
	}
	return mean(scores...)
}

func financialScore(f club.Finances) MatchFinancialScore {
	s := MatchFinancialScore{CostEfficiency: 100}
	if f.NetProfit > 0 {
		s.Profitability = 100
	}
	if f.TotalExpenses != 0 {
		s.CostEfficiency = clamp(f.TotalRevenue/f.TotalExpenses*50, 0, 100)
	}
	s.Overall = mean(s.Profitability, s.CostEfficiency)
	return s
}

// highlights reports the first scorer as both top scorer and MVP.
func highlights(r club.Result, index map[string]club.Player) MatchHighlights {
	h := MatchHighlights{Disciplinary: make([]string, 0, len(r.YellowCards)+len(r.RedCards))}
	if len(r.Goals) > 0 {
		if p, ok := index[r.Goals[0].PlayerID]; ok {
			h.TopScorer = p.Name()
			h.MVP = p.Name()
		}
	}
	for _, c := range r.YellowCards {
		if p, ok := index[c.PlayerID]; ok {
			h.Disciplinary = append(h.Disciplinary, fmt.Sprintf("%s - yellow card (%d')", p.Name(), c.Minute))
		}
	}
	for _, c := range r.RedCards {
		if p, ok := index[c.PlayerID]; ok {
			h.Disciplinary = append(h.Disciplinary, fmt.Sprintf("%s - red card (%d')", p.Name(), c.Minute))
		}
	}
	return h
}
