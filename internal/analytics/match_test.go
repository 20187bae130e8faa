package analytics_test

import (
	"testing"

	"github.com/mauv0809/club-stats/internal/analytics"
	"github.com/mauv0809/club-stats/internal/club"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMatchAnalytics(t *testing.T) {
	p1 := club.Player{ID: "p1", FirstName: "An", Stats: club.CareerStats{TotalMatches: 50, WinRate: 50, GoalsScored: 20, Assists: 5}}
	p2 := club.Player{ID: "p2", FirstName: "Binh"}
	ghost := club.Player{ID: "ghost"}
	players := []club.Player{p1, p2}

	m := newMatch("m1", day(2024, 3, 1), []club.Player{p1}, []club.Player{p2, ghost}, 2, 1)
	m.Result.Goals = []club.Goal{
		{PlayerID: "p2", Side: club.SideB, Minute: 5},
		{PlayerID: "p1", Side: club.SideA, Minute: 30},
		{PlayerID: "p1", Side: club.SideA, Minute: 70},
	}
	m.Result.YellowCards = []club.Card{{PlayerID: "p1", Side: club.SideA, Minute: 12}, {PlayerID: "ghost", Side: club.SideB, Minute: 50}}
	m.Finances = club.Finances{TotalRevenue: 400, TotalExpenses: 100, NetProfit: 300}

	a := analytics.BuildMatchAnalytics(m, players)

	t.Run("quality", func(t *testing.T) {
		assert.Equal(t, analytics.MatchQuality{
			Entertainment:   60,
			FairPlay:        80,
			Competitiveness: 80,
			Organization:    85,
			Overall:         76.25,
		}, a.Quality)
	})

	t.Run("quality scores are clamped", func(t *testing.T) {
		rout := newMatch("m2", day(2024, 3, 2), nil, nil, 6, 0)
		rout.Result.RedCards = make([]club.Card, 4)
		q := analytics.BuildMatchAnalytics(rout, nil).Quality
		assert.Equal(t, 100.0, q.Entertainment)
		assert.Equal(t, 0.0, q.Competitiveness)
		assert.Equal(t, 0.0, q.FairPlay)
	})

	t.Run("balance skips unknown roster entries", func(t *testing.T) {
		assert.InDelta(t, 57.5, a.Balance.StrengthA, 1e-9)
		assert.Equal(t, 0.0, a.Balance.StrengthB)
		assert.InDelta(t, 42.5, a.Balance.StrengthBalance, 1e-9)
		assert.Equal(t, 100.0, a.Balance.SizeBalance)
		assert.InDelta(t, 71.25, a.Balance.Overall, 1e-9)
	})

	t.Run("size balance drops when rosters differ by more than one", func(t *testing.T) {
		lopsided := newMatch("m3", day(2024, 3, 3), []club.Player{p1, p2, ghost}, []club.Player{}, 0, 0)
		assert.Equal(t, 60.0, analytics.BuildMatchAnalytics(lopsided, players).Balance.SizeBalance)
	})

	t.Run("financial", func(t *testing.T) {
		assert.Equal(t, analytics.MatchFinancialScore{Profitability: 100, CostEfficiency: 100, Overall: 100}, a.Financial)

		loss := newMatch("m4", day(2024, 3, 4), nil, nil, 0, 0)
		loss.Finances = club.Finances{TotalRevenue: 100, TotalExpenses: 400, NetProfit: -300}
		assert.Equal(t, analytics.MatchFinancialScore{Profitability: 0, CostEfficiency: 12.5, Overall: 6.25}, analytics.BuildMatchAnalytics(loss, nil).Financial)

		free := newMatch("m5", day(2024, 3, 5), nil, nil, 0, 0)
		free.Finances = club.Finances{TotalRevenue: 100, NetProfit: 100}
		assert.Equal(t, 100.0, analytics.BuildMatchAnalytics(free, nil).Financial.CostEfficiency)
	})

	t.Run("highlights report the first scorer", func(t *testing.T) {
		assert.Equal(t, "Binh", a.Highlights.TopScorer)
		assert.Equal(t, "Binh", a.Highlights.MVP)
		assert.Equal(t, []string{"An - yellow card (12')"}, a.Highlights.Disciplinary)
	})

	t.Run("find reports unknown matches", func(t *testing.T) {
		agg := analytics.NewMatchAggregator(analytics.DefaultConfig())

		found, err := agg.Find("m1", []club.Match{m}, players)
		require.NoError(t, err)
		assert.Equal(t, a, found)

		_, err = agg.Find("nope", []club.Match{m}, players)
		assert.ErrorIs(t, err, analytics.ErrMatchNotFound)
	})
}
