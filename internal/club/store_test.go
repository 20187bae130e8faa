package club_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/club-stats/internal/club"
	"github.com/mauv0809/club-stats/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a temporary in-memory SQLite database for testing.
func setupTestDB(t *testing.T) (club.ClubStore, *sql.DB, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "")
	require.NoError(t, err)

	return club.New(db), db, dbTeardown
}

func TestUpsertAndGetPlayers(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	err := store.UpsertPlayers(ctx, []club.Player{
		{ID: "p1", FirstName: "An", LastName: "Nguyen", Position: club.PositionForward, Stats: club.CareerStats{TotalMatches: 10, WinRate: 60}},
		{ID: "p2", FirstName: "Binh", Position: club.PositionGoalkeeper},
	})
	require.NoError(t, err)

	players, err := store.GetAllPlayers(ctx)
	require.NoError(t, err)
	require.Len(t, players, 2)

	byID := map[string]club.Player{}
	for _, p := range players {
		byID[p.ID] = p
	}
	assert.Equal(t, "An Nguyen", byID["p1"].Name())
	assert.Equal(t, club.PositionForward, byID["p1"].Position)
	assert.Equal(t, 10, byID["p1"].Stats.TotalMatches)
	assert.Equal(t, "Binh", byID["p2"].Name())

	t.Run("upsert updates an existing player", func(t *testing.T) {
		err := store.UpsertPlayers(ctx, []club.Player{{ID: "p2", FirstName: "Binh", LastName: "Tran", Position: club.PositionDefender}})
		require.NoError(t, err)
		players, err := store.GetAllPlayers(ctx)
		require.NoError(t, err)
		require.Len(t, players, 2)
		for _, p := range players {
			if p.ID == "p2" {
				assert.Equal(t, club.PositionDefender, p.Position)
				assert.Equal(t, "Binh Tran", p.Name())
			}
		}
	})
}

func TestUpsertAndGetMatches(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	p1 := club.Player{ID: "p1", FirstName: "An"}
	p2 := club.Player{ID: "p2", FirstName: "Binh"}
	require.NoError(t, store.UpsertPlayers(ctx, []club.Player{p1, p2}))

	later := club.Match{
		ID:    "m2",
		Date:  time.Date(2024, 3, 2, 18, 0, 0, 0, time.UTC),
		TeamA: club.Team{Name: "Red", Players: []club.Player{p1}},
		TeamB: club.Team{Name: "Blue", Players: []club.Player{p2, {ID: "ghost"}}},
		Result: club.Result{
			ScoreA: 2, ScoreB: 1,
			Goals: []club.Goal{{PlayerID: "p1", Side: club.SideA, Minute: 10}},
		},
		Finances: club.Finances{TotalRevenue: 400, TotalExpenses: 100, NetProfit: 300},
	}
	earlier := club.Match{ID: "m1", Date: time.Date(2024, 2, 1, 18, 0, 0, 0, time.UTC)}
	require.NoError(t, store.UpsertMatch(ctx, later))
	require.NoError(t, store.UpsertMatch(ctx, earlier))

	matches, err := store.GetAllMatches(ctx)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "m1", matches[0].ID, "matches should be ordered oldest first")

	m := matches[1]
	assert.Equal(t, "Red", m.TeamA.Name)
	require.Len(t, m.TeamA.Players, 1)
	assert.Equal(t, "An", m.TeamA.Players[0].FirstName, "rosters resolve to the stored player record")
	assert.Len(t, m.TeamB.Players, 1, "unknown player references are skipped")
	assert.Equal(t, 2, m.Result.ScoreA)
	require.Len(t, m.Result.Goals, 1)
	assert.Equal(t, 300.0, m.Finances.NetProfit)
	assert.Empty(t, matches[0].TeamA.Players)
}

func TestFundTransactionsAndBalance(t *testing.T) {
	store, _, teardown := setupTestDB(t)
	defer teardown()
	ctx := context.Background()

	balance, err := store.GetFundBalance(ctx)
	require.NoError(t, err)
	assert.Zero(t, balance, "balance defaults to zero")

	require.NoError(t, store.AddFundTransaction(ctx, club.FundTransaction{ID: "t2", Type: club.TransactionExpense, Amount: 200, Category: "field", Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)}))
	require.NoError(t, store.AddFundTransaction(ctx, club.FundTransaction{ID: "t1", Type: club.TransactionIncome, Amount: 500, Category: "fees", Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}))
	require.NoError(t, store.SetFundBalance(ctx, 300))

	txs, err := store.GetFundTransactions(ctx)
	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, "t1", txs[0].ID)
	assert.Equal(t, club.TransactionIncome, txs[0].Type)
	assert.Equal(t, 200.0, txs[1].Amount)

	balance, err = store.GetFundBalance(ctx)
	require.NoError(t, err)
	assert.Equal(t, 300.0, balance)

	t.Run("rejects unknown transaction types", func(t *testing.T) {
		err := store.AddFundTransaction(ctx, club.FundTransaction{ID: "t3", Type: "refund"})
		assert.Error(t, err)
	})

	t.Run("clear removes everything", func(t *testing.T) {
		require.NoError(t, store.Clear(ctx))
		txs, err := store.GetFundTransactions(ctx)
		require.NoError(t, err)
		assert.Empty(t, txs)
	})
}

func TestFeed_Refresh(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("publishes all three collections", func(t *testing.T) {
		store := club.NewMock()
		store.Players = []club.Player{{ID: "p1"}}
		store.Matches = []club.Match{{ID: "m1"}}
		store.Transactions = []club.FundTransaction{{ID: "t1", Type: club.TransactionIncome, Amount: 5}}
		store.Balance = 42

		feed := club.NewFeed(store)
		require.NoError(t, feed.Refresh(ctx))

		players, ok := feed.Players().Latest()
		require.True(t, ok)
		assert.Len(t, players, 1)
		matches, ok := feed.Matches().Latest()
		require.True(t, ok)
		assert.Len(t, matches, 1)
		fund, ok := feed.Fund().Latest()
		require.True(t, ok)
		assert.Equal(t, 42.0, fund.Balance)
		assert.Len(t, fund.Transactions, 1)
	})

	t.Run("publishes nothing when a load fails", func(t *testing.T) {
		store := club.NewMock()
		store.GetAllMatchesFunc = func(ctx context.Context) ([]club.Match, error) {
			return nil, errors.New("boom")
		}
		feed := club.NewFeed(store)

		err := feed.Refresh(ctx)
		require.Error(t, err)
		_, ok := feed.Players().Latest()
		assert.False(t, ok)
	})
}

func TestFeed_Run(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := club.NewMock()
	store.Balance = 42
	clock := clockwork.NewFakeClock()
	feed := club.NewFeed(store, club.WithClock(clock))
	defer feed.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		feed.Run(ctx, time.Minute)
	}()

	balance := func() float64 {
		fund, _ := feed.Fund().Latest()
		return fund.Balance
	}

	require.Eventually(t, func() bool {
		_, ok := feed.Fund().Latest()
		return ok
	}, time.Second, 5*time.Millisecond, "the first refresh runs immediately")
	require.NoError(t, clock.BlockUntilContext(ctx, 1))

	require.NoError(t, store.SetFundBalance(ctx, 7))
	clock.Advance(59 * time.Second)
	assert.Equal(t, 42.0, balance(), "no refresh before the interval")

	clock.Advance(time.Second)
	assert.Eventually(t, func() bool { return balance() == 7 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
