package club

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/club-stats/internal/stream"
)

// Feed publishes the club's raw collections as three push-based streams.
// Each Refresh reloads everything from the store and republishes it.
type Feed struct {
	store ClubStore
	clock clockwork.Clock

	players *stream.Topic[[]Player]
	matches *stream.Topic[[]Match]
	fund    *stream.Topic[FundSnapshot]
}

// FeedOption configures a Feed.
type FeedOption func(*Feed)

// WithClock sets the clock driving the Run refresh interval.
func WithClock(clock clockwork.Clock) FeedOption {
	return func(f *Feed) {
		f.clock = clock
	}
}

// NewFeed creates a feed backed by store. Nothing is published until the
// first Refresh.
func NewFeed(store ClubStore, opts ...FeedOption) *Feed {
	f := &Feed{
		store:   store,
		clock:   clockwork.NewRealClock(),
		players: stream.New[[]Player](),
		matches: stream.New[[]Match](),
		fund:    stream.New[FundSnapshot](),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Players is the stream of the full player list.
func (f *Feed) Players() *stream.Topic[[]Player] { return f.players }

// Matches is the stream of the full match list.
func (f *Feed) Matches() *stream.Topic[[]Match] { return f.matches }

// Fund is the stream of fund transactions plus the current balance.
func (f *Feed) Fund() *stream.Topic[FundSnapshot] { return f.fund }

// Refresh loads every collection and publishes it. Nothing is published when
// any load fails, so subscribers never see a half-updated state.
func (f *Feed) Refresh(ctx context.Context) error {
	players, err := f.store.GetAllPlayers(ctx)
	if err != nil {
		return fmt.Errorf("failed to load players: %w", err)
	}
	matches, err := f.store.GetAllMatches(ctx)
	if err != nil {
		return fmt.Errorf("failed to load matches: %w", err)
	}
	txs, err := f.store.GetFundTransactions(ctx)
	if err != nil {
		return fmt.Errorf("failed to load fund transactions: %w", err)
	}
	balance, err := f.store.GetFundBalance(ctx)
	if err != nil {
		return fmt.Errorf("failed to load fund balance: %w", err)
	}

	f.players.Publish(players)
	f.matches.Publish(matches)
	f.fund.Publish(FundSnapshot{Transactions: txs, Balance: balance})
	log.Debug("Club feed refreshed", "players", len(players), "matches", len(matches), "transactions", len(txs))
	return nil
}

// Run refreshes once immediately and then every interval until ctx is done.
// Refresh failures are logged and retried on the next tick.
func (f *Feed) Run(ctx context.Context, interval time.Duration) {
	if err := f.Refresh(ctx); err != nil {
		log.Error("Initial club feed refresh failed", "error", err)
	}
	if interval <= 0 {
		return
	}
	ticker := f.clock.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.Chan():
			if err := f.Refresh(ctx); err != nil {
				log.Error("Club feed refresh failed", "error", err)
			}
		}
	}
}

// Close ends every subscription on the three streams.
func (f *Feed) Close() {
	f.players.Close()
	f.matches.Close()
	f.fund.Close()
}
