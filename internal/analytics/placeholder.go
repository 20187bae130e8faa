package analytics

// Placeholders are zero-filled values of each aggregate shape, returned while
// the real computation runs. Lists are empty rather than nil so they encode
// as [] in JSON.

func PlaceholderPlayers() []PlayerStatistics {
	return []PlayerStatistics{}
}

func PlaceholderTeam() TeamStatistics {
	return TeamStatistics{
		Trends: TeamTrends{Monthly: []MonthlyPerformance{}},
	}
}

func PlaceholderFund(balance float64) FundAnalytics {
	return FundAnalytics{
		Overview: FundOverview{CurrentBalance: balance},
		Trends: FundTrends{
			Monthly:    []MonthlyFlow{},
			Categories: []CategoryShare{},
		},
		Insights: FundInsights{
			CostSavingTips:       []string{},
			RevenueOpportunities: []string{},
		},
	}
}

func PlaceholderMatch(id string) MatchAnalytics {
	return MatchAnalytics{
		MatchID:    id,
		Highlights: MatchHighlights{Disciplinary: []string{}},
	}
}

func PlaceholderComparison() PlayerComparison {
	return PlayerComparison{
		PlayerIDs: []string{},
		Names:     []string{},
		Metrics: PlayerMetrics{
			Goals:    []int{},
			Assists:  []int{},
			WinRates: []float64{},
			Revenue:  []float64{},
			Matches:  []int{},
		},
	}
}
