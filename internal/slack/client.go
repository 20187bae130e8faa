package slack

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-stats/internal/metrics"
	"github.com/mauv0809/club-stats/internal/statstore"
	"github.com/slack-go/slack"
)

var _ statstore.Store = (*SlackClient)(nil)

// NewClient creates a new Slack client wrapper. counters may be nil.
func NewClient(token, channelID string, counters metrics.CounterStore) *SlackClient {
	api := slack.New(token)
	return &SlackClient{
		api:       api,
		channelID: channelID,
		counters:  counters,
	}
}

// NewClientWithAPI creates a new Slack client with a custom API client. Used for testing.
func NewClientWithAPI(api *slack.Client, channelID string, counters metrics.CounterStore) *SlackClient {
	return &SlackClient{
		api:       api,
		channelID: channelID,
		counters:  counters,
	}
}

// SendMessage posts message to the configured channel and returns the
// channel and timestamp Slack assigned to it.
func (c *SlackClient) SendMessage(ctx context.Context, message slack.Message, dryRun bool) (string, string, error) {
	if c.api == nil || c.channelID == "" {
		log.Warn("Slack client or channel ID is not configured. Skipping notification.")
		return "", "", errors.New("slack client or channel ID is not configured")
	}

	if dryRun {
		log.Info("Dry run mode: Slack notification not sent.", "msg", message)
		return "", "", nil
	}

	responseChannel, messageTS, err := c.api.PostMessageContext(ctx, c.channelID, slack.MsgOptionBlocks(message.Blocks.BlockSet...))
	if err != nil {
		log.Error("Failed to send Slack message", "error", err)
		return "", "", err
	}
	if c.counters != nil {
		if err := c.counters.Add(ctx, CounterNotificationsSent, 1); err != nil {
			log.Error("Failed to count Slack notification", "error", err)
		}
	}
	return responseChannel, messageTS, nil
}

// AddStatisticsEntry posts a summary of entry to the channel.
func (c *SlackClient) AddStatisticsEntry(ctx context.Context, entry statstore.Entry) error {
	_, _, err := c.SendMessage(ctx, c.FormatStatisticsEntry(entry), false)
	return err
}

// Entries is unsupported: Slack is a write-only sink.
func (c *SlackClient) Entries(ctx context.Context, typ statstore.EntryType) ([]statstore.Entry, error) {
	return nil, statstore.ErrReadUnsupported
}
