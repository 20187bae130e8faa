package statistics

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonboulle/clockwork"
	"github.com/mauv0809/club-stats/internal/analytics"
	"github.com/mauv0809/club-stats/internal/cache"
	"github.com/mauv0809/club-stats/internal/club"
	"github.com/mauv0809/club-stats/internal/loader"
	"github.com/mauv0809/club-stats/internal/metrics"
	"github.com/mauv0809/club-stats/internal/stream"
)

var _ Provider = (*Service)(nil)

// WithClock sets the clock used for cache expiry and report timestamps.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

// WithTTL sets how long computed aggregates stay cached.
func WithTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.ttl = ttl
	}
}

// New creates the facade. Call Run to keep the update streams current and
// Close to stop background work.
func New(source Source, l loader.AggregatorLoader, m metrics.Metrics, opts ...Option) *Service {
	s := &Service{
		source:  source,
		loader:  l,
		metrics: m,
		clock:   clockwork.NewRealClock(),
		ttl:     DefaultTTL,
		players: stream.New[[]analytics.PlayerStatistics](),
		team:    stream.New[analytics.TeamStatistics](),
		fund:    stream.New[analytics.FundAnalytics](),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.cache = cache.New[any](cache.WithClock[any](s.clock))
	s.ctx, s.cancel = context.WithCancel(context.Background())
	return s
}

func (s *Service) PlayerUpdates() *stream.Topic[[]analytics.PlayerStatistics] { return s.players }
func (s *Service) TeamUpdates() *stream.Topic[analytics.TeamStatistics] { return s.team }
func (s *Service) FundUpdates() *stream.Topic[analytics.FundAnalytics] { return s.fund }

func (s *Service) inputs() ([]club.Player, []club.Match) {
	players, _ := s.source.Players().Latest()
	matches, _ := s.source.Matches().Latest()
	return players, matches
}

func (s *Service) fundInput() club.FundSnapshot {
	fund, _ := s.source.Fund().Latest()
	return fund
}

// Players returns statistics for every player.
func (s *Service) Players(ctx context.Context) []analytics.PlayerStatistics {
	return s.playersAggregate(ctx, false)
}

func (s *Service) playersAggregate(ctx context.Context, announce bool) []analytics.PlayerStatistics {
	players, matches := s.inputs()
	return compute(ctx, s, AggregatePlayers, playersKey(players, matches), analytics.PlaceholderPlayers(), s.players, announce,
		func(ctx context.Context) ([]analytics.PlayerStatistics, error) {
			return s.buildPlayers(ctx, players, matches)
		})
}

func (s *Service) buildPlayers(ctx context.Context, players []club.Player, matches []club.Match) ([]analytics.PlayerStatistics, error) {
	agg, err := s.loader.Player(ctx)
	if err != nil {
		return nil, err
	}
	return agg.Build(players, matches), nil
}

// playerStats returns cached player statistics for the inputs, building and
// caching them synchronously when absent. Used by aggregates derived from
// them.
func (s *Service) playerStats(ctx context.Context, players []club.Player, matches []club.Match) ([]analytics.PlayerStatistics, error) {
	agg, err := s.loader.Player(ctx)
	if err != nil {
		return nil, err
	}
	v := s.cache.Wrap(playersKey(players, matches), s.ttl, func() any {
		return agg.Build(players, matches)
	})
	s.metrics.SetCacheEntries(s.cache.Len())
	stats, ok := v.([]analytics.PlayerStatistics)
	if !ok {
		return nil, fmt.Errorf("cached player statistics have unexpected type %T", v)
	}
	return stats, nil
}

// Team returns the whole-team statistics.
func (s *Service) Team(ctx context.Context) analytics.TeamStatistics {
	return s.teamAggregate(ctx, false)
}

func (s *Service) teamAggregate(ctx context.Context, announce bool) analytics.TeamStatistics {
	players, matches := s.inputs()
	return compute(ctx, s, AggregateTeam, teamKey(players, matches), analytics.PlaceholderTeam(), s.team, announce,
		func(ctx context.Context) (analytics.TeamStatistics, error) {
			agg, err := s.loader.Team(ctx)
			if err != nil {
				return analytics.TeamStatistics{}, err
			}
			return agg.Build(players, matches), nil
		})
}

// Fund returns the fund analysis.
func (s *Service) Fund(ctx context.Context) analytics.FundAnalytics {
	return s.fundAggregate(ctx, false)
}

func (s *Service) fundAggregate(ctx context.Context, announce bool) analytics.FundAnalytics {
	fund := s.fundInput()
	return compute(ctx, s, AggregateFund, fundKey(fund), analytics.PlaceholderFund(fund.Balance), s.fund, announce,
		func(ctx context.Context) (analytics.FundAnalytics, error) {
			agg, err := s.loader.Fund(ctx)
			if err != nil {
				return analytics.FundAnalytics{}, err
			}
			return agg.Build(fund.Balance, fund.Transactions), nil
		})
}

// Match returns the analysis of one match, or analytics.ErrMatchNotFound when
// the id is not among the current matches.
func (s *Service) Match(ctx context.Context, id string) (analytics.MatchAnalytics, error) {
	players, matches := s.inputs()
	idx := slices.IndexFunc(matches, func(m club.Match) bool { return m.ID == id })
	if idx < 0 {
		return analytics.MatchAnalytics{}, fmt.Errorf("match %q: %w", id, analytics.ErrMatchNotFound)
	}
	match := matches[idx]
	return compute(ctx, s, AggregateMatch, matchKey(id, players, matches), analytics.PlaceholderMatch(id), nil, false,
		func(ctx context.Context) (analytics.MatchAnalytics, error) {
			agg, err := s.loader.Match(ctx)
			if err != nil {
				return analytics.MatchAnalytics{}, err
			}
			return agg.Build(match, players), nil
		}), nil
}

// ComparePlayers compares the given players.
func (s *Service) ComparePlayers(ctx context.Context, ids []string) analytics.PlayerComparison {
	players, matches := s.inputs()
	ids = slices.Clone(ids)
	return compute(ctx, s, AggregateComparison, comparisonKey(ids, players, matches), analytics.PlaceholderComparison(), nil, false,
		func(ctx context.Context) (analytics.PlayerComparison, error) {
			agg, err := s.loader.Comparison(ctx)
			if err != nil {
				return analytics.PlayerComparison{}, err
			}
			stats, err := s.playerStats(ctx, players, matches)
			if err != nil {
				return analytics.PlayerComparison{}, err
			}
			return agg.ComparePlayers(ids, stats), nil
		})
}

// ComparePeriods compares the matches played in two date ranges.
func (s *Service) ComparePeriods(ctx context.Context, first, second analytics.Period) analytics.PeriodComparison {
	_, matches := s.inputs()
	placeholder := analytics.PeriodComparison{Period1: first, Period2: second}
	return compute(ctx, s, AggregatePeriods, periodsKey(first, second, matches), placeholder, nil, false,
		func(ctx context.Context) (analytics.PeriodComparison, error) {
			agg, err := s.loader.Comparison(ctx)
			if err != nil {
				return analytics.PeriodComparison{}, err
			}
			return agg.ComparePeriods(matches, first, second), nil
		})
}

// Correlations relates player metrics across the squad.
func (s *Service) Correlations(ctx context.Context) analytics.Correlations {
	players, matches := s.inputs()
	return compute(ctx, s, AggregateCorrelations, correlationsKey(players, matches), analytics.Correlations{}, nil, false,
		func(ctx context.Context) (analytics.Correlations, error) {
			agg, err := s.loader.Comparison(ctx)
			if err != nil {
				return analytics.Correlations{}, err
			}
			stats, err := s.playerStats(ctx, players, matches)
			if err != nil {
				return analytics.Correlations{}, err
			}
			return agg.Correlate(stats), nil
		})
}

// ExportReport returns every squad-level aggregate as indented JSON. Values
// not yet computed appear as placeholders.
func (s *Service) ExportReport(ctx context.Context) ([]byte, error) {
	report := Report{
		GeneratedAt:  s.clock.Now().UTC(),
		Players:      s.Players(ctx),
		Team:         s.Team(ctx),
		Fund:         s.Fund(ctx),
		Correlations: s.Correlations(ctx),
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal statistics report: %w", err)
	}
	return data, nil
}

// ClearCache drops cached aggregates whose key starts with prefix, or all of
// them for an empty prefix.
func (s *Service) ClearCache(prefix string) int {
	n := s.cache.Clear(prefix)
	s.metrics.SetCacheEntries(s.cache.Len())
	log.Info("Cleared statistics cache", "prefix", prefix, "entries", n)
	return n
}

// Run republishes the player, team and fund aggregates whenever an input
// stream emits, until ctx is done or the source streams close.
func (s *Service) Run(ctx context.Context) {
	players := s.source.Players().Subscribe(ctx)
	matches := s.source.Matches().Subscribe(ctx)
	fund := s.source.Fund().Subscribe(ctx)

	for players != nil || matches != nil || fund != nil {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-players:
			if !ok {
				players = nil
				continue
			}
			s.refreshSquad(ctx)
		case _, ok := <-matches:
			if !ok {
				matches = nil
				continue
			}
			s.refreshSquad(ctx)
		case _, ok := <-fund:
			if !ok {
				fund = nil
				continue
			}
			s.fundAggregate(ctx, true)
		}
	}
}

func (s *Service) refreshSquad(ctx context.Context) {
	s.playersAggregate(ctx, true)
	s.teamAggregate(ctx, true)
}

// Close cancels background computations and closes the update streams.
func (s *Service) Close() {
	s.cancel()
	s.players.Close()
	s.team.Close()
	s.fund.Close()
}

// compute serves key from the cache, or returns placeholder and starts one
// shared background computation for key. A successful computation is cached
// and, when topic is set, published on it. With announce a cached value is
// republished on topic; a placeholder is published only to an empty topic,
// so earlier real values stay visible until the upgrade replaces them.
func compute[T any](ctx context.Context, s *Service, kind, key string, placeholder T, topic *stream.Topic[T], announce bool, build func(context.Context) (T, error)) T {
	if v, ok := s.cache.Get(key); ok {
		if typed, ok := v.(T); ok {
			s.metrics.IncCacheHit(kind)
			if announce && topic != nil {
				topic.Publish(typed)
			}
			return typed
		}
	}
	s.metrics.IncCacheMiss(kind)
	log.Debug("Statistics cache miss, serving placeholder", "aggregate", kind, "fingerprint", key)
	if announce && topic != nil {
		if _, ok := topic.Latest(); !ok {
			topic.Publish(placeholder)
		}
	}

	result := s.group.DoChan(key, func() (any, error) {
		s.metrics.IncComputations(kind)
		start := s.clock.Now()
		v, err := build(s.ctx)
		s.metrics.ObserveComputationDuration(kind, s.clock.Since(start).Seconds())
		if err != nil {
			s.metrics.IncComputationFailures(kind)
			log.Error("Failed to compute statistics", "aggregate", kind, "fingerprint", key, "error", err)
			return nil, err
		}
		s.cache.Set(key, v, s.ttl)
		s.metrics.SetCacheEntries(s.cache.Len())
		if topic != nil {
			topic.Publish(v)
		}
		log.Debug("Statistics upgraded", "aggregate", kind, "fingerprint", key)
		return v, nil
	})

	if !Waiting(ctx) {
		return placeholder
	}
	select {
	case r := <-result:
		if typed, ok := r.Val.(T); ok && r.Err == nil {
			return typed
		}
	case <-ctx.Done():
	}
	return placeholder
}
