package analytics

import (
	"math"
	"sort"

	"github.com/mauv0809/club-stats/internal/club"
)

var (
	costSavingTips = []string{
		"Negotiate a season rate for field rental",
		"Share referee costs with opposing clubs",
		"Buy equipment in bulk before the season starts",
	}
	revenueOpportunities = []string{
		"Offer a discounted membership for full-season players",
		"Approach local businesses for shirt sponsorship",
		"Organise a friendly tournament with an entry fee",
	}
)

// FundAggregator analyses fund transactions.
type FundAggregator struct {
	cfg Config
}

func NewFundAggregator(cfg Config) *FundAggregator {
	return &FundAggregator{cfg: cfg}
}

// BuildFundAnalytics is Build with DefaultConfig.
func BuildFundAnalytics(balance float64, txs []club.FundTransaction) FundAnalytics {
	return NewFundAggregator(DefaultConfig()).Build(balance, txs)
}

// Build analyses txs, taken in collection order, against the current balance.
func (a *FundAggregator) Build(balance float64, txs []club.FundTransaction) FundAnalytics {
	overview := fundOverview(balance, txs)
	return FundAnalytics{
		Overview: overview,
		Trends: FundTrends{
			Monthly:    monthlyFlows(txs),
			Categories: categoryShares(txs),
		},
		Projections: a.projections(balance, txs),
		Insights:    fundInsights(txs),
	}
}

func fundOverview(balance float64, txs []club.FundTransaction) FundOverview {
	o := FundOverview{CurrentBalance: balance}
	for _, tx := range txs {
		switch tx.Type {
		case club.TransactionIncome:
			o.TotalIncome += tx.Amount
		case club.TransactionExpense:
			o.TotalExpenses += tx.Amount
		}
	}
	o.NetGrowth = o.TotalIncome - o.TotalExpenses
	if o.TotalExpenses != 0 {
		o.GrowthRate = (o.TotalIncome/o.TotalExpenses - 1) * 100
	}
	return o
}

func monthlyFlows(txs []club.FundTransaction) []MonthlyFlow {
	buckets := make(map[string]*MonthlyFlow)
	for _, tx := range txs {
		key := monthKey(tx.Date)
		f, ok := buckets[key]
		if !ok {
			f = &MonthlyFlow{Month: key}
			buckets[key] = f
		}
		switch tx.Type {
		case club.TransactionIncome:
			f.Income += tx.Amount
		case club.TransactionExpense:
			f.Expense += tx.Amount
		}
		f.Net = f.Income - f.Expense
	}
	out := make([]MonthlyFlow, 0, len(buckets))
	for _, f := range buckets {
		out = append(out, *f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// categoryShares sums every category across both transaction types. Shares
// are ordered by amount, largest first; equal amounts keep first-seen order.
func categoryShares(txs []club.FundTransaction) []CategoryShare {
	var total float64
	index := make(map[string]int)
	out := make([]CategoryShare, 0)
	for _, tx := range txs {
		i, ok := index[tx.Category]
		if !ok {
			i = len(out)
			index[tx.Category] = i
			out = append(out, CategoryShare{Category: tx.Category})
		}
		out[i].Amount += tx.Amount
		total += tx.Amount
	}
	for i := range out {
		out[i].Percentage = ratio(out[i].Amount, total) * 100
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Amount > out[j].Amount })
	return out
}

// projections extrapolates from the last ProjectionWindow transactions.
func (a *FundAggregator) projections(balance float64, txs []club.FundTransaction) FundProjections {
	var income, expense []float64
	for _, tx := range lastN(txs, a.cfg.ProjectionWindow) {
		switch tx.Type {
		case club.TransactionIncome:
			income = append(income, tx.Amount)
		case club.TransactionExpense:
			expense = append(expense, tx.Amount)
		}
	}

	p := FundProjections{
		AverageIncome:  mean(income...),
		AverageExpense: mean(expense...),
	}
	p.MonthlyNet = p.AverageIncome - p.AverageExpense
	p.NextMonthBalance = balance + p.MonthlyNet
	p.YearEndProjection = p.MonthlyNet * 12
	if p.AverageIncome != 0 {
		p.BreakEvenMonths = int(math.Ceil(p.AverageExpense / p.AverageIncome))
	}
	p.RequiredMonthlyIncome = p.AverageExpense * 1.1
	return p
}

func fundInsights(txs []club.FundTransaction) FundInsights {
	return FundInsights{
		TopIncomeSource:      topCategory(txs, club.TransactionIncome),
		TopExpenseCategory:   topCategory(txs, club.TransactionExpense),
		CostSavingTips:       append([]string(nil), costSavingTips...),
		RevenueOpportunities: append([]string(nil), revenueOpportunities...),
	}
}

// topCategory returns the category with the highest summed amount of the
// given type. Ties go to the category seen first.
func topCategory(txs []club.FundTransaction, typ club.TransactionType) string {
	var names []string
	sums := make(map[string]float64)
	for _, tx := range txs {
		if tx.Type != typ {
			continue
		}
		if _, ok := sums[tx.Category]; !ok {
			names = append(names, tx.Category)
		}
		sums[tx.Category] += tx.Amount
	}
	values := make([]float64, len(names))
	for i, n := range names {
		values[i] = sums[n]
	}
	if i := argMax(values); i >= 0 {
		return names[i]
	}
	return ""
}
