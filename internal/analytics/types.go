package analytics

import (
	"time"

	"github.com/mauv0809/club-stats/internal/club"
)

// Outcome is a single match result from one player's point of view.
type Outcome string

const (
	OutcomeWin  Outcome = "W"
	OutcomeDraw Outcome = "D"
	OutcomeLoss Outcome = "L"
)

// Trend labels how a player's win rate moved over their match history.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// PlayerPerformance is the on-pitch block of PlayerStatistics.
type PlayerPerformance struct {
	TotalMatches    int     `json:"total_matches"`
	Wins            int     `json:"wins"`
	Draws           int     `json:"draws"`
	Losses          int     `json:"losses"`
	WinRate         float64 `json:"win_rate"`
	GoalsScored     int     `json:"goals_scored"`
	Assists         int     `json:"assists"`
	YellowCards     int     `json:"yellow_cards"`
	RedCards        int     `json:"red_cards"`
	GoalsPerMatch   float64 `json:"goals_per_match"`
	AssistsPerMatch float64 `json:"assists_per_match"`
	CardsPerMatch   float64 `json:"cards_per_match"`
}

// PlayerFinancial is the money block of PlayerStatistics.
type PlayerFinancial struct {
	RevenueShare    float64 `json:"revenue_share"`
	Penalties       float64 `json:"penalties"`
	NetContribution float64 `json:"net_contribution"`
}

// PlayerTrends is the recent-form block of PlayerStatistics.
type PlayerTrends struct {
	RecentForm    []Outcome `json:"recent_form"`
	Last5WinRate  float64   `json:"last_5_win_rate"`
	Last10WinRate float64   `json:"last_10_win_rate"`
	Trend         Trend     `json:"trend"`
}

// PlayerRankings holds 1-based positions among all players. A zero rank
// means the ranking has not been computed.
type PlayerRankings struct {
	GoalsRank   int `json:"goals_rank"`
	AssistsRank int `json:"assists_rank"`
	WinRateRank int `json:"win_rate_rank"`
	RevenueRank int `json:"revenue_rank"`
	OverallRank int `json:"overall_rank"`
}

// PlayerStatistics is the derived statistics record of one player.
type PlayerStatistics struct {
	PlayerID    string            `json:"player_id"`
	PlayerName  string            `json:"player_name"`
	Position    club.Position     `json:"position"`
	Performance PlayerPerformance `json:"performance"`
	Financial   PlayerFinancial   `json:"financial"`
	Trends      PlayerTrends      `json:"trends"`
	Rankings    PlayerRankings    `json:"rankings"`
}

// PositionCounts is the roster histogram over the four canonical positions.
type PositionCounts struct {
	Goalkeepers int `json:"goalkeepers"`
	Defenders   int `json:"defenders"`
	Midfielders int `json:"midfielders"`
	Forwards    int `json:"forwards"`
	Other       int `json:"other"`
}

// TeamComposition describes the roster.
type TeamComposition struct {
	TotalPlayers      int            `json:"total_players"`
	Positions         PositionCounts `json:"positions"`
	AverageExperience float64        `json:"average_experience"`
	StrongPlayers     int            `json:"strong_players"`
	AveragePlayers    int            `json:"average_players"`
	WeakPlayers       int            `json:"weak_players"`
}

// TeamPerformance summarises results across all matches.
type TeamPerformance struct {
	TotalMatches         int     `json:"total_matches"`
	Wins                 int     `json:"wins"`
	Draws                int     `json:"draws"`
	Losses               int     `json:"losses"`
	WinRate              float64 `json:"win_rate"`
	AverageGoalsScored   float64 `json:"average_goals_scored"`
	AverageGoalsConceded float64 `json:"average_goals_conceded"`
	CleanSheets          int     `json:"clean_sheets"`
}

// MatchProfit identifies one match by its net profit.
type MatchProfit struct {
	MatchID   string    `json:"match_id"`
	Date      time.Time `json:"date"`
	NetProfit float64   `json:"net_profit"`
}

// TeamFinancial sums match finances.
type TeamFinancial struct {
	TotalRevenue          float64      `json:"total_revenue"`
	TotalExpenses         float64      `json:"total_expenses"`
	TotalProfit           float64      `json:"total_profit"`
	AverageProfitPerMatch float64      `json:"average_profit_per_match"`
	MostProfitable        *MatchProfit `json:"most_profitable,omitempty"`
	LeastProfitable       *MatchProfit `json:"least_profitable,omitempty"`
}

// MonthlyPerformance is one YYYY-MM bucket of matches.
type MonthlyPerformance struct {
	Month   string  `json:"month"`
	Matches int     `json:"matches"`
	WinRate float64 `json:"win_rate"`
	Goals   int     `json:"goals"`
	Profit  float64 `json:"profit"`
}

// TeamTrends is the month-by-month series, oldest month first.
type TeamTrends struct {
	Monthly []MonthlyPerformance `json:"monthly"`
}

// TeamStatistics is the derived statistics record of the whole club team.
type TeamStatistics struct {
	Composition TeamComposition `json:"composition"`
	Performance TeamPerformance `json:"performance"`
	Financial   TeamFinancial   `json:"financial"`
	Trends      TeamTrends      `json:"trends"`
}

// MatchQuality scores how good a match was to watch and play, 0..100.
type MatchQuality struct {
	Entertainment   float64 `json:"entertainment"`
	FairPlay        float64 `json:"fair_play"`
	Competitiveness float64 `json:"competitiveness"`
	Organization    float64 `json:"organization"`
	Overall         float64 `json:"overall"`
}

// MatchBalance scores how evenly the teams were picked, 0..100.
type MatchBalance struct {
	StrengthA       float64 `json:"strength_a"`
	StrengthB       float64 `json:"strength_b"`
	StrengthBalance float64 `json:"strength_balance"`
	SizeBalance     float64 `json:"size_balance"`
	Overall         float64 `json:"overall"`
}

// MatchFinancialScore scores the money side of a match, 0..100.
type MatchFinancialScore struct {
	Profitability  float64 `json:"profitability"`
	CostEfficiency float64 `json:"cost_efficiency"`
	Overall        float64 `json:"overall"`
}

// MatchHighlights names the players that stood out.
type MatchHighlights struct {
	TopScorer    string   `json:"top_scorer"`
	MVP          string   `json:"mvp"`
	Disciplinary []string `json:"disciplinary"`
}

// MatchAnalytics is the derived analysis of one match.
type MatchAnalytics struct {
	MatchID    string              `json:"match_id"`
	Quality    MatchQuality        `json:"quality"`
	Balance    MatchBalance        `json:"balance"`
	Financial  MatchFinancialScore `json:"financial"`
	Highlights MatchHighlights     `json:"highlights"`
}

// FundOverview is the headline fund state.
type FundOverview struct {
	CurrentBalance float64 `json:"current_balance"`
	TotalIncome    float64 `json:"total_income"`
	TotalExpenses  float64 `json:"total_expenses"`
	NetGrowth      float64 `json:"net_growth"`
	GrowthRate     float64 `json:"growth_rate"`
}

// MonthlyFlow is one YYYY-MM bucket of transactions.
type MonthlyFlow struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Net     float64 `json:"net"`
}

// CategoryShare is one category's part of all money moved.
type CategoryShare struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// FundTrends holds the monthly series and the category breakdown.
type FundTrends struct {
	Monthly    []MonthlyFlow   `json:"monthly"`
	Categories []CategoryShare `json:"categories"`
}

// FundProjections extrapolates recent transactions.
type FundProjections struct {
	AverageIncome         float64 `json:"average_income"`
	AverageExpense        float64 `json:"average_expense"`
	MonthlyNet            float64 `json:"monthly_net"`
	NextMonthBalance      float64 `json:"next_month_balance"`
	YearEndProjection     float64 `json:"year_end_projection"`
	BreakEvenMonths       int     `json:"break_even_months"`
	RequiredMonthlyIncome float64 `json:"required_monthly_income"`
}

// FundInsights names the biggest money flows and lists generic advice.
type FundInsights struct {
	TopIncomeSource      string   `json:"top_income_source"`
	TopExpenseCategory   string   `json:"top_expense_category"`
	CostSavingTips       []string `json:"cost_saving_tips"`
	RevenueOpportunities []string `json:"revenue_opportunities"`
}

// FundAnalytics is the derived analysis of the club fund.
type FundAnalytics struct {
	Overview    FundOverview    `json:"overview"`
	Trends      FundTrends      `json:"trends"`
	Projections FundProjections `json:"projections"`
	Insights    FundInsights    `json:"insights"`
}

// PlayerMetrics are parallel per-player metric vectors, indexed like
// PlayerComparison.PlayerIDs.
type PlayerMetrics struct {
	Goals    []int     `json:"goals"`
	Assists  []int     `json:"assists"`
	WinRates []float64 `json:"win_rates"`
	Revenue  []float64 `json:"revenue"`
	Matches  []int     `json:"matches"`
}

// ComparisonWinners names the leading player per metric.
type ComparisonWinners struct {
	Goals   string `json:"goals"`
	Assists string `json:"assists"`
	WinRate string `json:"win_rate"`
	Revenue string `json:"revenue"`
	Matches string `json:"matches"`
	Overall string `json:"overall"`
}

// PlayerComparison compares a chosen set of players.
type PlayerComparison struct {
	PlayerIDs []string          `json:"player_ids"`
	Names     []string          `json:"names"`
	Metrics   PlayerMetrics     `json:"metrics"`
	Winners   ComparisonWinners `json:"winners"`
}

// Period is an inclusive date range.
type Period struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

// Contains reports whether t lies within the period, bounds included.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.From) && !t.After(p.To)
}

// PeriodMetrics summarises the matches of one period.
type PeriodMetrics struct {
	Matches int     `json:"matches"`
	WinRate float64 `json:"win_rate"`
	Goals   int     `json:"goals"`
	Revenue float64 `json:"revenue"`
}

// PeriodDelta is period2 minus period1 for each metric.
type PeriodDelta struct {
	Matches int     `json:"matches"`
	WinRate float64 `json:"win_rate"`
	Goals   int     `json:"goals"`
	Revenue float64 `json:"revenue"`
}

// PeriodComparison compares two periods of matches.
type PeriodComparison struct {
	Period1 Period        `json:"period_1"`
	Period2 Period        `json:"period_2"`
	First   PeriodMetrics `json:"first"`
	Second  PeriodMetrics `json:"second"`
	Deltas  PeriodDelta   `json:"deltas"`
}

// Correlations are Pearson coefficients, -1..1, across all players.
type Correlations struct {
	GoalsWinRate   float64 `json:"goals_win_rate"`
	AssistsWinRate float64 `json:"assists_win_rate"`
	MatchesGoals   float64 `json:"matches_goals"`
	RevenueMatches float64 `json:"revenue_matches"`
	SampleSize     int     `json:"sample_size"`
}
