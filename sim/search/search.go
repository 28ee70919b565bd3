// Package search provides bounded masked nearest-neighbor searchers over a
// spatial domain.
//
// A Searcher answers "up to k nearest locations to q among those currently
// eligible", where eligibility is a caller-owned boolean mask that changes
// between queries. Results are written into a caller-provided buffer so the
// per-location query loop allocates nothing.
//
// Tie-breaking is fixed across implementations: among equidistant
// candidates the lower location index wins. This keeps results reproducible
// for a fixed mask and query regardless of the backing index structure.
package search

import (
	"fmt"
	"math"

	"github.com/geosim/geosim/sim/domain"
)

// Metric names a distance function on domain points.
type Metric string

const (
	// Euclidean is the L2 metric (default).
	Euclidean Metric = "euclidean"
	// Manhattan is the L1 metric.
	Manhattan Metric = "manhattan"
	// Chebyshev is the L-infinity metric.
	Chebyshev Metric = "chebyshev"
)

// validMetrics maps accepted metric names.
var validMetrics = map[Metric]bool{
	Euclidean: true,
	Manhattan: true,
	Chebyshev: true,
	"":        true, // empty defaults to euclidean
}

// IsValidMetric returns true if the given name is a recognized metric.
func IsValidMetric(m Metric) bool {
	return validMetrics[m]
}

// Distance computes the metric distance between two points of equal dims.
func Distance(m Metric, a, b domain.Point) float64 {
	switch m {
	case Manhattan:
		var s float64
		for i := range a {
			s += math.Abs(a[i] - b[i])
		}
		return s
	case Chebyshev:
		var s float64
		for i := range a {
			if d := math.Abs(a[i] - b[i]); d > s {
				s = d
			}
		}
		return s
	default:
		var s float64
		for i := range a {
			d := a[i] - b[i]
			s += d * d
		}
		return math.Sqrt(s)
	}
}

// Searcher finds up to cap(buf) nearest eligible locations.
type Searcher interface {
	// Search writes the indices of the nearest eligible locations to q into
	// buf (nearest first) and returns the count k, 0 <= k <= len(buf).
	// A location i is eligible iff mask[i] is true. Ineligible locations are
	// never returned. The buffer contents are valid until the next call.
	Search(q domain.Point, mask []bool, buf []int) int
}

// Options configures searcher construction.
type Options struct {
	MaxNeighbors int     // bound on returned neighbors (must be >= 1)
	Metric       Metric  // distance function (default Euclidean)
	Radius       float64 // ball neighborhood limit; 0 means unbounded
}

// New builds a Searcher over the domain. Euclidean unbounded-or-ball
// searches use a KD-tree; other metrics fall back to the exhaustive scan,
// which supports every Metric.
func New(d domain.Domain, opts Options) (Searcher, error) {
	if opts.MaxNeighbors < 1 {
		return nil, fmt.Errorf("search: max neighbors %d, want >= 1", opts.MaxNeighbors)
	}
	if !IsValidMetric(opts.Metric) {
		return nil, fmt.Errorf("search: unknown metric %q", opts.Metric)
	}
	if opts.Radius < 0 {
		return nil, fmt.Errorf("search: negative radius %v", opts.Radius)
	}
	if opts.Metric == "" || opts.Metric == Euclidean {
		return newKDTreeSearcher(d, opts.Radius), nil
	}
	return &ExhaustiveSearcher{domain: d, metric: opts.Metric, radius: opts.Radius}, nil
}
