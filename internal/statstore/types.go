package statstore

import (
	"database/sql"
	"errors"
	"sync"
	"time"

	"github.com/mauv0809/club-stats/internal/pubsub"
)

// ErrReadUnsupported is returned by write-only stores.
var ErrReadUnsupported = errors.New("statistics store does not support reads")

// EntryType is the category of a statistics entry.
type EntryType string

const (
	TypePlayer    EntryType = "player"
	TypeTeam      EntryType = "team"
	TypeFinancial EntryType = "financial"
)

// Valid reports whether t is one of the known entry types.
func (t EntryType) Valid() bool {
	switch t {
	case TypePlayer, TypeTeam, TypeFinancial:
		return true
	}
	return false
}

// Period tells how an entry was aggregated.
type Period string

const (
	PeriodMonthly Period = "monthly"
	PeriodBatch   Period = "batch"
)

// DateLayout is the format of Entry.Date.
const DateLayout = "2006-01-02"

// Entry is one aggregated statistics record.
type Entry struct {
	ID           string         `json:"id" msgpack:"id"`
	Type         EntryType      `json:"type" msgpack:"type"`
	Period       Period         `json:"period" msgpack:"period"`
	Date         string         `json:"date" msgpack:"date"`
	Data         map[string]any `json:"data" msgpack:"data"`
	CalculatedAt time.Time      `json:"calculated_at" msgpack:"calculated_at"`
	CalculatedBy string         `json:"calculated_by" msgpack:"calculated_by"`
}

// store keeps entries in the statistics_entries table.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// publisher sends entries to a Pub/Sub topic.
type publisher struct {
	client pubsub.PubSubClient
	topic  pubsub.EventType
}

// Multi writes every entry to all of its stores.
type Multi struct {
	stores []Store
}
