package loader

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-stats/internal/analytics"
	"github.com/mauv0809/club-stats/internal/metrics"
)

var _ AggregatorLoader = (*Loader)(nil)

// WithFactory replaces the default constructor.
func WithFactory(f Factory) Option {
	return func(l *Loader) {
		l.factory = f
	}
}

// WithConfig sets the constants passed to the default aggregators.
func WithConfig(cfg analytics.Config) Option {
	return func(l *Loader) {
		l.cfg = cfg
	}
}

// New creates a loader. Nothing is constructed until first use or PreloadAll.
func New(m metrics.Metrics, opts ...Option) *Loader {
	l := &Loader{
		loaded:  make(map[Kind]any),
		cfg:     analytics.DefaultConfig(),
		metrics: m,
	}
	l.factory = l.build
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Loader) build(_ context.Context, kind Kind) (any, error) {
	switch kind {
	case KindPlayer:
		return analytics.NewPlayerAggregator(l.cfg), nil
	case KindTeam:
		return analytics.NewTeamAggregator(l.cfg), nil
	case KindMatch:
		return analytics.NewMatchAggregator(l.cfg), nil
	case KindFund:
		return analytics.NewFundAggregator(l.cfg), nil
	case KindComparison:
		return analytics.NewComparisonAggregator(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
}

// Get returns the aggregator of the given kind. Concurrent callers share one
// construction. A failed construction is not kept, so the next call retries.
func (l *Loader) Get(ctx context.Context, kind Kind) (any, error) {
	if v, ok := l.instance(kind); ok {
		return v, nil
	}

	result := l.group.DoChan(string(kind), func() (any, error) {
		return l.load(kind)
	})
	select {
	case r := <-result:
		return r.Val, r.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// load constructs kind outside of any caller's context, so an abandoned
// request does not cancel the load for everyone else.
func (l *Loader) load(kind Kind) (any, error) {
	// A construction that finished between the caller's lookup and this
	// call is reused.
	if v, ok := l.instance(kind); ok {
		return v, nil
	}
	v, err := l.factory(context.Background(), kind)
	if err != nil {
		log.Error("Failed to load aggregator", "kind", kind, "error", err)
		return nil, err
	}
	l.mu.Lock()
	l.loaded[kind] = v
	l.mu.Unlock()
	log.Debug("Loaded aggregator", "kind", kind)
	l.metrics.IncAggregatorLoads(string(kind))
	return v, nil
}

func (l *Loader) instance(kind Kind) (any, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	v, ok := l.loaded[kind]
	return v, ok
}


// PreloadAll loads every kind in the background. The returned channel is
// closed once all loads have finished.
func (l *Loader) PreloadAll(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for _, kind := range Kinds {
			if _, err := l.Get(ctx, kind); err != nil {
				log.Warn("Preload failed", "kind", kind, "error", err)
			}
		}
		log.Debug("Aggregator preload finished")
	}()
	return done
}

func (l *Loader) Player(ctx context.Context) (*analytics.PlayerAggregator, error) {
	return get[*analytics.PlayerAggregator](ctx, l, KindPlayer)
}

func (l *Loader) Team(ctx context.Context) (*analytics.TeamAggregator, error) {
	return get[*analytics.TeamAggregator](ctx, l, KindTeam)
}

func (l *Loader) Match(ctx context.Context) (*analytics.MatchAggregator, error) {
	return get[*analytics.MatchAggregator](ctx, l, KindMatch)
}

func (l *Loader) Fund(ctx context.Context) (*analytics.FundAggregator, error) {
	return get[*analytics.FundAggregator](ctx, l, KindFund)
}

func (l *Loader) Comparison(ctx context.Context) (*analytics.ComparisonAggregator, error) {
	return get[*analytics.ComparisonAggregator](ctx, l, KindComparison)
}

func get[T any](ctx context.Context, l *Loader, kind Kind) (T, error) {
	var zero T
	v, err := l.Get(ctx, kind)
	if err != nil {
		return zero, fmt.Errorf("failed to load %s aggregator: %w", kind, err)
	}
	agg, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%s aggregator has unexpected type %T", kind, v)
	}
	return agg, nil
}
