// Package analytics turns raw club collections into statistics records.
//
// Every Build function is pure: the result depends only on its arguments and
// the aggregator's Config. Missing player references count as zero and every
// ratio guards its denominator, so no result ever carries NaN or Inf.
package analytics

import (
	"errors"
	"math"
	"sort"
	"time"
)

// ErrMatchNotFound is returned when a match id is not in the collection.
var ErrMatchNotFound = errors.New("match not found")

// Config holds the tunable constants of the aggregators.
type Config struct {
	// YellowCardFee and RedCardFee are charged to the player per card.
	YellowCardFee float64
	RedCardFee    float64

	// TrendThreshold is the win rate change, in percentage points, between the
	// two halves of a player's history needed to call a trend.
	TrendThreshold float64

	// StrongWinRate and WeakWinRate split the roster into strength tiers.
	StrongWinRate float64
	WeakWinRate   float64

	// OrganizationScore is the fixed organization component of match quality.
	OrganizationScore float64

	// ProjectionWindow is how many of the latest transactions feed projections.
	ProjectionWindow int
}

// DefaultConfig returns the constants used by the club.
func DefaultConfig() Config {
	return Config{
		YellowCardFee:     50_000,
		RedCardFee:        100_000,
		TrendThreshold:    10,
		StrongWinRate:     70,
		WeakWinRate:       40,
		OrganizationScore: 85,
		ProjectionWindow:  10,
	}
}

// ratio returns num/den, or 0 when den is 0.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

// percent returns num/den as a percentage, or 0 when den is 0.
func percent(num, den int) float64 {
	return ratio(float64(num), float64(den)) * 100
}

// monthKey buckets a date by calendar month, as YYYY-MM.
func monthKey(t time.Time) string {
	return t.Format("2006-01")
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func mean(values ...float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// rankPositions returns, for each index of values, its zero-based position
// when sorted descending. Ties keep collection order.
func rankPositions(values []float64) []int {
	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return values[order[a]] > values[order[b]]
	})
	positions := make([]int, len(values))
	for pos, idx := range order {
		positions[idx] = pos
	}
	return positions
}

// argMax returns the index of the first maximum, or -1 for an empty slice.
func argMax(values []float64) int {
	best := -1
	for i, v := range values {
		if best == -1 || v > values[best] {
			best = i
		}
	}
	return best
}

// pearson returns the Pearson correlation of xs and ys, or 0 when it is
// undefined (fewer than two samples or zero variance).
func pearson(xs, ys []float64) float64 {
	n := len(xs)
	if n < 2 || n != len(ys) {
		return 0
	}
	mx, my := mean(xs...), mean(ys...)
	var cov, vx, vy float64
	for i := 0; i < n; i++ {
		dx, dy := xs[i]-mx, ys[i]-my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}
	if vx == 0 || vy == 0 {
		return 0
	}
	return cov / math.Sqrt(vx*vy)
}
