package exporter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/club-stats/internal/analytics"
	"github.com/mauv0809/club-stats/internal/metrics"
	"github.com/mauv0809/club-stats/internal/statstore"
)

// WithClock sets the clock driving the debounce timers.
func WithClock(clock clockwork.Clock) Option {
	return func(e *Exporter) {
		e.clock = clock
	}
}

// WithDebounce sets the quiet period after the last emission before a flush.
func WithDebounce(d time.Duration) Option {
	return func(e *Exporter) {
		e.debounce = d
	}
}

// WithMaxWait bounds how long emissions can postpone a flush. Zero keeps the
// pure debounce, where a steady stream of emissions delays it indefinitely.
func WithMaxWait(d time.Duration) Option {
	return func(e *Exporter) {
		e.maxWait = d
	}
}

// WithCounters also records flush totals in a persistent counter store.
func WithCounters(counters metrics.CounterStore) Option {
	return func(e *Exporter) {
		e.counters = counters
	}
}

// New creates an exporter writing to store. Call Run to start following source.
func New(source Source, store statstore.Store, m metrics.Metrics, opts ...Option) *Exporter {
	e := &Exporter{
		source:   source,
		store:    store,
		metrics:  m,
		clock:    clockwork.NewRealClock(),
		debounce: DefaultDebounce,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run follows the aggregate streams until ctx is done or all of them close.
// Pending emissions that have not been flushed by then are dropped.
func (e *Exporter) Run(ctx context.Context) {
	players := e.source.PlayerUpdates().Subscribe(ctx)
	team := e.source.TeamUpdates().Subscribe(ctx)
	fund := e.source.FundUpdates().Subscribe(ctx)
	defer e.stopTimers()

	for players != nil || team != nil || fund != nil {
		select {
		case <-ctx.Done():
			return
		case v, ok := <-players:
			if !ok {
				players = nil
				continue
			}
			e.observe(ctx, func() { e.players = v })
		case v, ok := <-team:
			if !ok {
				team = nil
				continue
			}
			e.observe(ctx, func() { e.team = &v })
		case v, ok := <-fund:
			if !ok {
				fund = nil
				continue
			}
			e.observe(ctx, func() { e.fund = &v })
		}
	}
}

// Pending returns the number of emissions received since the last flush.
func (e *Exporter) Pending() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pending
}

func (e *Exporter) observe(ctx context.Context, set func()) {
	e.mu.Lock()
	defer e.mu.Unlock()
	set()
	e.pending++

	if e.timer != nil {
		e.timer.Stop()
	}
	e.timerSeq++
	seq := e.timerSeq
	e.timer = e.clock.AfterFunc(e.debounce, func() { e.fire(ctx, seq, false) })

	if e.maxWait > 0 && e.maxTimer == nil {
		e.maxSeq++
		mseq := e.maxSeq
		e.maxTimer = e.clock.AfterFunc(e.maxWait, func() { e.fire(ctx, mseq, true) })
	}
}

// fire flushes unless the timer that called it has been replaced.
func (e *Exporter) fire(ctx context.Context, seq int, capped bool) {
	e.mu.Lock()
	if (capped && seq != e.maxSeq) || (!capped && seq != e.timerSeq) || e.pending == 0 {
		e.mu.Unlock()
		return
	}
	e.stopTimersLocked()
	e.mu.Unlock()

	if ctx.Err() != nil {
		return
	}
	if err := e.Flush(ctx); err != nil {
		log.Error("Batch statistics flush failed", "error", err, "max_wait", capped)
	}
}

func (e *Exporter) stopTimers() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopTimersLocked()
}

func (e *Exporter) stopTimersLocked() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.timerSeq++
	if e.maxTimer != nil {
		e.maxTimer.Stop()
		e.maxTimer = nil
	}
	e.maxSeq++
}

// Flush writes one batch entry for each category that has a value. It is not
// retried on failure; the next emission schedules a fresh flush.
func (e *Exporter) Flush(ctx context.Context) error {
	e.mu.Lock()
	players, team, fund := e.players, e.team, e.fund
	coalesced := e.pending
	e.pending = 0
	e.mu.Unlock()

	now := e.clock.Now()
	var entries []statstore.Entry
	if players != nil {
		entries = append(entries, statstore.NewEntry(statstore.TypePlayer, statstore.PeriodBatch, playerBatch(players), now, CalculatedBy))
	}
	if team != nil {
		entries = append(entries, statstore.NewEntry(statstore.TypeTeam, statstore.PeriodBatch, teamBatch(*team), now, CalculatedBy))
	}
	if fund != nil {
		entries = append(entries, statstore.NewEntry(statstore.TypeFinancial, statstore.PeriodBatch, fundBatch(*fund), now, CalculatedBy))
	}
	if len(entries) == 0 {
		log.Debug("Nothing to flush")
		return nil
	}

	var errs []error
	written := 0
	for _, entry := range entries {
		if err := e.store.AddStatisticsEntry(ctx, entry); err != nil {
			errs = append(errs, fmt.Errorf("failed to write %s entry: %w", entry.Type, err))
			continue
		}
		written++
	}

	e.metrics.IncFlushes()
	e.metrics.AddEntriesWritten(written)
	e.count(ctx, metrics.CounterBatchFlushes, 1)
	e.count(ctx, metrics.CounterEntriesWritten, written)

	err := errors.Join(errs...)
	if err != nil {
		e.metrics.IncFlushFailures()
		e.count(ctx, metrics.CounterFlushFailures, 1)
		return err
	}
	log.Info("Flushed batch statistics", "entries", written, "coalesced_emissions", coalesced)
	return nil
}

func (e *Exporter) count(ctx context.Context, key string, delta int) {
	if e.counters == nil || delta == 0 {
		return
	}
	if err := e.counters.Add(ctx, key, delta); err != nil {
		log.Error("Failed to update counter", "key", key, "error", err)
	}
}

// playerBatch sums and averages across the whole squad.
func playerBatch(stats []analytics.PlayerStatistics) map[string]any {
	var matches, goals, assists, yellow, red int
	var winRate, goalsPerMatch, revenue, penalties, net float64
	for _, s := range stats {
		p := s.Performance
		matches += p.TotalMatches
		goals += p.GoalsScored
		assists += p.Assists
		yellow += p.YellowCards
		red += p.RedCards
		winRate += p.WinRate
		goalsPerMatch += p.GoalsPerMatch
		revenue += s.Financial.RevenueShare
		penalties += s.Financial.Penalties
		net += s.Financial.NetContribution
	}
	n := float64(len(stats))
	if n == 0 {
		n = 1
	}
	return map[string]any{
		"total_players":           len(stats),
		"total_matches_played":    matches,
		"total_goals":             goals,
		"total_assists":           assists,
		"total_yellow_cards":      yellow,
		"total_red_cards":         red,
		"average_win_rate":        winRate / n,
		"average_goals_per_match": goalsPerMatch / n,
		"total_revenue_share":     revenue,
		"total_penalties":         penalties,
		"total_net_contribution":  net,
	}
}

func teamBatch(t analytics.TeamStatistics) map[string]any {
	return map[string]any{
		"total_players":  t.Composition.TotalPlayers,
		"total_matches":  t.Performance.TotalMatches,
		"wins":           t.Performance.Wins,
		"draws":          t.Performance.Draws,
		"losses":         t.Performance.Losses,
		"win_rate":       t.Performance.WinRate,
		"clean_sheets":   t.Performance.CleanSheets,
		"total_revenue":  t.Financial.TotalRevenue,
		"total_expenses": t.Financial.TotalExpenses,
		"total_profit":   t.Financial.TotalProfit,
	}
}

func fundBatch(f analytics.FundAnalytics) map[string]any {
	o := f.Overview
	return map[string]any{
		"balance":        o.CurrentBalance,
		"total_income":   o.TotalIncome,
		"total_expenses": o.TotalExpenses,
		"net_growth":     o.NetGrowth,
		"growth_rate":    o.GrowthRate,
	}
}
