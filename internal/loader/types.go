package loader

import (
	"context"
	"errors"
	"sync"

	"github.com/mauv0809/club-stats/internal/analytics"
	"github.com/mauv0809/club-stats/internal/metrics"
	"golang.org/x/sync/singleflight"
)

// ErrUnknownKind is returned by the default factory for kinds it cannot build.
var ErrUnknownKind = errors.New("unknown aggregator kind")

// Kind names one aggregator.
type Kind string

const (
	KindPlayer     Kind = "player"
	KindTeam       Kind = "team"
	KindMatch      Kind = "match"
	KindFund       Kind = "fund"
	KindComparison Kind = "comparison"
)

// Kinds lists every aggregator kind in preload order.
var Kinds = []Kind{KindPlayer, KindTeam, KindMatch, KindFund, KindComparison}

// Factory constructs the aggregator of the given kind.
type Factory func(ctx context.Context, kind Kind) (any, error)

// Option configures a Loader.
type Option func(*Loader)

// Loader is the default AggregatorLoader. Constructions in flight are shared
// through group; finished ones are kept in loaded for the Loader's lifetime.
type Loader struct {
	mu      sync.Mutex
	loaded  map[Kind]any
	group   singleflight.Group
	factory Factory
	cfg     analytics.Config
	metrics metrics.Metrics
}
