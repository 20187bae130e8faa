package pubsub_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/mauv0809/club-stats/internal/pubsub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func TestDecodePush(t *testing.T) {
	payload, err := msgpack.Marshal(pubsub.ClubDataChanged{Collection: "matches", ChangedAt: 1700000000})
	require.NoError(t, err)

	var envelope pubsub.PushMessage
	envelope.Subscription = "projects/p/subscriptions/club-data-changed"
	envelope.Message.Data = base64.StdEncoding.EncodeToString(payload)
	body, err := json.Marshal(envelope)
	require.NoError(t, err)

	msg, raw, err := pubsub.DecodePush(body)
	require.NoError(t, err)
	assert.Equal(t, envelope.Subscription, msg.Subscription)

	var event pubsub.ClubDataChanged
	require.NoError(t, pubsub.NewMock().ProcessMessage(raw, &event))
	assert.Equal(t, "matches", event.Collection)
	assert.Equal(t, int64(1700000000), event.ChangedAt)

	t.Run("rejects malformed bodies", func(t *testing.T) {
		_, _, err := pubsub.DecodePush([]byte("not json"))
		assert.Error(t, err)

		_, _, err = pubsub.DecodePush([]byte(`{"message":{"data":"%%%"}}`))
		assert.Error(t, err)
	})
}

func TestOfflineClient(t *testing.T) {
	c := pubsub.NewOffline()
	defer c.Close()

	err := c.SendMessage(context.Background(), pubsub.EventStatisticsFlushed, "payload")
	assert.ErrorIs(t, err, pubsub.ErrOffline)

	data, err := msgpack.Marshal(pubsub.ClubDataChanged{Collection: "players"})
	require.NoError(t, err)
	var event pubsub.ClubDataChanged
	require.NoError(t, c.ProcessMessage(data, &event))
	assert.Equal(t, "players", event.Collection)
}
