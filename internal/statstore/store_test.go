package statstore_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mauv0809/club-stats/internal/database"
	"github.com/mauv0809/club-stats/internal/pubsub"
	"github.com/mauv0809/club-stats/internal/statstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
)

func setupTestDB(t *testing.T) statstore.Store {
	t.Helper()

	db, teardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)
	t.Cleanup(teardown)
	return statstore.New(db)
}

func TestNewEntry(t *testing.T) {
	at := time.Date(2024, 3, 9, 23, 30, 0, 0, time.FixedZone("ICT", 7*3600))
	e := statstore.NewEntry(statstore.TypeTeam, statstore.PeriodBatch, map[string]any{"total_matches": 4}, at, "batch-exporter")

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "2024-03-09", e.Date, "the date is the UTC day")
	assert.Equal(t, time.UTC, e.CalculatedAt.Location())
	assert.NotEqual(t, e.ID, statstore.NewEntry(statstore.TypeTeam, statstore.PeriodBatch, nil, at, "").ID)
}

func TestStore_AddAndEntries(t *testing.T) {
	store := setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	empty, err := store.Entries(ctx, "")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	older := statstore.NewEntry(statstore.TypePlayer, statstore.PeriodBatch, map[string]any{"total_players": 12, "average_win_rate": 48.5}, base, "batch-exporter")
	newer := statstore.NewEntry(statstore.TypePlayer, statstore.PeriodBatch, map[string]any{"total_players": 13}, base.Add(time.Minute), "batch-exporter")
	team := statstore.NewEntry(statstore.TypeTeam, statstore.PeriodMonthly, map[string]any{"wins": 3}, base, "batch-exporter")
	for _, e := range []statstore.Entry{older, newer, team} {
		require.NoError(t, store.AddStatisticsEntry(ctx, e))
	}

	t.Run("filters by type, newest first", func(t *testing.T) {
		players, err := store.Entries(ctx, statstore.TypePlayer)
		require.NoError(t, err)
		require.Len(t, players, 2)
		assert.Equal(t, newer.ID, players[0].ID)
		assert.Equal(t, older.ID, players[1].ID)
		assert.Equal(t, 48.5, players[1].Data["average_win_rate"])
		assert.Equal(t, 12.0, players[1].Data["total_players"], "numbers come back as float64")
		assert.True(t, base.Equal(players[1].CalculatedAt))
		assert.Equal(t, statstore.PeriodBatch, players[1].Period)
		assert.Equal(t, "2024-03-01", players[1].Date)
	})

	t.Run("empty type reads everything", func(t *testing.T) {
		all, err := store.Entries(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})

	t.Run("missing id is generated", func(t *testing.T) {
		require.NoError(t, store.AddStatisticsEntry(ctx, statstore.Entry{Type: statstore.TypeFinancial, Period: statstore.PeriodBatch, Date: "2024-03-01", CalculatedAt: base}))
		financial, err := store.Entries(ctx, statstore.TypeFinancial)
		require.NoError(t, err)
		require.Len(t, financial, 1)
		assert.NotEmpty(t, financial[0].ID)
	})
}

func TestEntryType_Valid(t *testing.T) {
	assert.True(t, statstore.TypePlayer.Valid())
	assert.True(t, statstore.TypeFinancial.Valid())
	assert.False(t, statstore.EntryType("weather").Valid())
	assert.False(t, statstore.EntryType("").Valid())
}

func TestPublisher(t *testing.T) {
	ctx := context.Background()
	client := pubsub.NewMock()
	pub := statstore.NewPublisher(client, pubsub.EventStatisticsFlushed)

	entry := statstore.NewEntry(statstore.TypeFinancial, statstore.PeriodBatch, map[string]any{"balance": 600000.0}, time.Now(), "batch-exporter")
	require.NoError(t, pub.AddStatisticsEntry(ctx, entry))

	require.Len(t, client.SendMessageCalls, 1)
	call := client.SendMessageCalls[0]
	assert.Equal(t, pubsub.EventStatisticsFlushed, call.Topic)

	t.Run("payload round-trips through msgpack", func(t *testing.T) {
		data, err := msgpack.Marshal(call.Data)
		require.NoError(t, err)
		var decoded statstore.Entry
		require.NoError(t, client.ProcessMessage(data, &decoded))
		assert.Equal(t, entry.ID, decoded.ID)
		assert.Equal(t, 600000.0, decoded.Data["balance"])
	})

	t.Run("publish errors are returned", func(t *testing.T) {
		client.SendMessageFunc = func(topic pubsub.EventType, data any) error { return errors.New("unavailable") }
		assert.Error(t, pub.AddStatisticsEntry(ctx, entry))
	})

	t.Run("reads are unsupported", func(t *testing.T) {
		_, err := pub.Entries(ctx, "")
		assert.ErrorIs(t, err, statstore.ErrReadUnsupported)
	})
}

func TestMulti(t *testing.T) {
	ctx := context.Background()
	first := statstore.NewMock()
	failing := statstore.NewMock()
	failing.AddStatisticsEntryFunc = func(entry statstore.Entry) error { return errors.New("slack down") }
	last := statstore.NewMock()
	multi := statstore.NewMulti(first, failing, last)

	entry := statstore.NewEntry(statstore.TypeTeam, statstore.PeriodBatch, nil, time.Now(), "batch-exporter")
	err := multi.AddStatisticsEntry(ctx, entry)

	assert.ErrorContains(t, err, "slack down")
	assert.Len(t, first.Snapshot(), 1)
	assert.Len(t, last.Snapshot(), 1, "a failing store does not stop the others")

	entries, err := multi.Entries(ctx, statstore.TypeTeam)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.ID, entries[0].ID)

	_, err = statstore.NewMulti().Entries(ctx, "")
	assert.ErrorIs(t, err, statstore.ErrReadUnsupported)
}
