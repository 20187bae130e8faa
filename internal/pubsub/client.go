package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"cloud.google.com/go/pubsub"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// ErrOffline is returned when publishing through an offline client.
var ErrOffline = errors.New("pubsub client is offline")

func New(ctx context.Context, projectID string) (PubSubClient, error) {
	pubSubC, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}
	teardown := func() {
		pubSubC.Close()
	}

	return &client{
		client:   pubSubC,
		teardown: teardown,
	}, nil
}

// NewOffline returns a client that decodes messages but cannot publish. Used
// when no GCP project is configured.
func NewOffline() PubSubClient {
	return &client{teardown: func() {}}
}

func (c *client) SendMessage(ctx context.Context, topic EventType, data any) error {
	if c.client == nil {
		return ErrOffline
	}
	msgpackData, err := msgpack.Marshal(data)
	if err != nil {
		log.Error("MessagePack marshal error", "error", err)
		return err
	}
	message := &pubsub.Message{
		Data:       msgpackData,
		Attributes: map[string]string{"event": string(topic)},
	}
	result := c.client.Topic(string(topic)).Publish(ctx, message)
	serverID, err := result.Get(ctx)
	if err != nil {
		log.Error("Failed to publish message", "error", err, "topic", topic)
		return err
	}
	log.Info("SendMessage", "serverID", serverID, "topic", topic)
	return nil
}

func (c *client) ProcessMessage(data []byte, returnValue any) error {
	// Unmarshal the MessagePack data into the provided pointer struct
	err := msgpack.Unmarshal(data, returnValue)
	if err != nil {
		log.Error("MessagePack unmarshal error", "error", err)
		return err
	}
	return nil
}

func (c *client) Close() {
	c.teardown()
}

// DecodePush extracts the raw payload from a push subscription body.
func DecodePush(body []byte) (PushMessage, []byte, error) {
	var msg PushMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return msg, nil, fmt.Errorf("invalid push envelope: %w", err)
	}
	raw, err := base64.StdEncoding.DecodeString(msg.Message.Data)
	if err != nil {
		return msg, nil, fmt.Errorf("invalid base64 data: %w", err)
	}
	return msg, raw, nil
}
