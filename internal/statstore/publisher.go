package statstore

import (
	"context"
	"fmt"

	"github.com/mauv0809/club-stats/internal/pubsub"
)

// NewPublisher creates a write-only Store that publishes every entry on topic.
func NewPublisher(client pubsub.PubSubClient, topic pubsub.EventType) Store {
	return &publisher{
		client: client,
		topic:  topic,
	}
}

func (p *publisher) AddStatisticsEntry(ctx context.Context, entry Entry) error {
	if err := p.client.SendMessage(ctx, p.topic, entry); err != nil {
		return fmt.Errorf("failed to publish statistics entry: %w", err)
	}
	return nil
}

func (p *publisher) Entries(ctx context.Context, typ EntryType) ([]Entry, error) {
	return nil, ErrReadUnsupported
}
