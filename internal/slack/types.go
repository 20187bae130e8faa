package slack

import (
	"github.com/mauv0809/club-stats/internal/metrics"
	"github.com/slack-go/slack"
)

// SlackClient is a wrapper around the official slack-go client. It doubles as
// a write-only statistics store that posts a summary of each flushed entry.
type SlackClient struct {
	api       *slack.Client
	channelID string
	counters  metrics.CounterStore
}

// CounterNotificationsSent counts messages posted to the channel.
const CounterNotificationsSent = "slack_notifications_sent"
