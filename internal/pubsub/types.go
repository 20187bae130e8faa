package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client   *pubsub.Client
	teardown func()
}

// EventType represents the type of event/message sent via pubsub. It doubles
// as the topic name.
type EventType string

const (
	EventStatisticsFlushed EventType = "statistics-flushed"
	EventClubDataChanged   EventType = "club-data-changed"
)

// PushMessage is the JSON envelope of a push subscription delivery.
type PushMessage struct {
	Subscription string `json:"subscription"`
	Message      struct {
		ID         string            `json:"messageId"`
		Data       string            `json:"data"`
		Attributes map[string]string `json:"attributes"`
	} `json:"message"`
}

// ClubDataChanged is published by the CRUD layer after it writes players,
// matches or fund transactions.
type ClubDataChanged struct {
	Collection string `msgpack:"collection"`
	ChangedAt  int64  `msgpack:"changed_at"`
}
