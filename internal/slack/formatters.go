package slack

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mauv0809/club-stats/internal/analytics"
	"github.com/mauv0809/club-stats/internal/statstore"
	"github.com/slack-go/slack"
)

var entryHeaders = map[statstore.EntryType]string{
	statstore.TypePlayer:    "⚽ Player statistics updated",
	statstore.TypeTeam:      "🏟️ Team statistics updated",
	statstore.TypeFinancial: "💰 Fund statistics updated",
}

// FormatStatisticsEntry creates the Slack message summarising a flushed
// statistics entry using Block Kit.
func (s *SlackClient) FormatStatisticsEntry(entry statstore.Entry) slack.Message {
	blocks := make([]slack.Block, 0)

	header, ok := entryHeaders[entry.Type]
	if !ok {
		header = fmt.Sprintf("📊 %s statistics updated", entry.Type)
	}
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", header, true, false)))

	// Data keys are sorted so the message is deterministic.
	keys := make([]string, 0, len(entry.Data))
	for k := range entry.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if len(keys) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No data in this batch.", true, false), nil, nil))
	} else {
		lines := make([]string, 0, len(keys))
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("• %s: %s", humanize(k), formatValue(entry.Data[k])))
		}
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", strings.Join(lines, "\n"), true, false), nil, nil))
	}

	contextText := fmt.Sprintf("%s %s • %s by %s", entry.Period, entry.Date, entry.CalculatedAt.Format("15:04:05 MST"), entry.CalculatedBy)
	blocks = append(blocks, slack.NewContextBlock("", slack.NewTextBlockObject("plain_text", contextText, true, false)))

	return slack.NewBlockMessage(blocks...)
}

// FormatLeaderboard creates a Slack message ranking players by their overall
// rank, best first.
func (s *SlackClient) FormatLeaderboard(stats []analytics.PlayerStatistics, limit int) slack.Message {
	blocks := make([]slack.Block, 0)

	headerText := slack.NewTextBlockObject("plain_text", "🏆 Player Leaderboard 🏆", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(headerText))

	if len(stats) == 0 {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", "No stats available yet. Go play some matches!", true, false), nil, nil))
		return slack.NewBlockMessage(blocks...)
	}

	ranked := append([]analytics.PlayerStatistics(nil), stats...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rankings.OverallRank < ranked[j].Rankings.OverallRank
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	for i, stat := range ranked {
		rank := i + 1
		var medal string
		switch rank {
		case 1:
			medal = "🥇"
		case 2:
			medal = "🥈"
		case 3:
			medal = "🥉"
		}

		p := stat.Performance
		playerText := fmt.Sprintf("%d. %s %s\n> *Win %%*: %.2f%% (%d/%d) | *Goals*: %d | *Assists*: %d | *Form*: %s",
			rank,
			medal,
			stat.PlayerName,
			p.WinRate,
			p.Wins,
			p.TotalMatches,
			p.GoalsScored,
			p.Assists,
			formatForm(stat.Trends.RecentForm),
		)
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", playerText, false, false), nil, nil))
	}

	return slack.NewBlockMessage(blocks...)
}

func formatForm(form []analytics.Outcome) string {
	if len(form) == 0 {
		return "-"
	}
	parts := make([]string, len(form))
	for i, o := range form {
		parts[i] = string(o)
	}
	return strings.Join(parts, "")
}

func humanize(key string) string {
	return strings.ReplaceAll(key, "_", " ")
}

func formatValue(v any) string {
	switch n := v.(type) {
	case float64:
		if n == float64(int64(n)) {
			return fmt.Sprintf("%d", int64(n))
		}
		return fmt.Sprintf("%.2f", n)
	case float32:
		return formatValue(float64(n))
	default:
		return fmt.Sprint(v)
	}
}
