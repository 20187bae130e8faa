package statistics

import (
	"fmt"
	"strings"

	"github.com/mauv0809/club-stats/internal/analytics"
	"github.com/mauv0809/club-stats/internal/club"
)

// Fingerprints summarise input shape only: collection lengths and the id of
// the last element. Two inputs of equal length sharing a last id collide
// until the entry expires.

func lastMatchID(matches []club.Match) string {
	if len(matches) == 0 {
		return ""
	}
	return matches[len(matches)-1].ID
}

func playersKey(players []club.Player, matches []club.Match) string {
	return fmt.Sprintf("%s:%d:%d:%s", AggregatePlayers, len(players), len(matches), lastMatchID(matches))
}

func teamKey(players []club.Player, matches []club.Match) string {
	return fmt.Sprintf("%s:%d:%d:%s", AggregateTeam, len(players), len(matches), lastMatchID(matches))
}

// fundKey includes the balance, which the CRUD layer can change without
// adding a transaction.
func fundKey(fund club.FundSnapshot) string {
	last := ""
	if n := len(fund.Transactions); n > 0 {
		last = fund.Transactions[n-1].ID
	}
	return fmt.Sprintf("%s:%d:%s:%g", AggregateFund, len(fund.Transactions), last, fund.Balance)
}

func matchKey(id string, players []club.Player, matches []club.Match) string {
	return fmt.Sprintf("%s:%s:%d:%d", AggregateMatch, id, len(players), len(matches))
}

func comparisonKey(ids []string, players []club.Player, matches []club.Match) string {
	return fmt.Sprintf("%s:%s:%d:%d:%s", AggregateComparison, strings.Join(ids, ","), len(players), len(matches), lastMatchID(matches))
}

func periodsKey(first, second analytics.Period, matches []club.Match) string {
	const day = "2006-01-02"
	return fmt.Sprintf("%s:%s:%s:%s:%s:%d:%s", AggregatePeriods,
		first.From.Format(day), first.To.Format(day), second.From.Format(day), second.To.Format(day),
		len(matches), lastMatchID(matches))
}

func correlationsKey(players []club.Player, matches []club.Match) string {
	return fmt.Sprintf("%s:%d:%d:%s", AggregateCorrelations, len(players), len(matches), lastMatchID(matches))
}
