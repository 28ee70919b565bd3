package sim

import (
	"fmt"

	"github.com/geosim/geosim/sim/estimator"
	"github.com/geosim/geosim/sim/search"
)

// Default neighbor bounds applied when a VariableConfig leaves them zero.
const (
	DefaultMinNeighbors = 1
	DefaultMaxNeighbors = 10
)

// MapNearest maps each hard-data row to its nearest domain location.
// The only mapping method currently implemented.
const MapNearest = "nearest"

// validMapMethods maps accepted data-mapping method names.
var validMapMethods = map[string]bool{"": true, MapNearest: true}

// VariableConfig holds the solver parameters for one simulated variable.
// Estimator and Marginal are capability handles: the solver treats them
// opaquely per the fit/predict/sample contract.
type VariableConfig struct {
	Name string

	Estimator estimator.Estimator
	Marginal  estimator.Distribution

	// Searcher, when non-nil, is used as-is instead of building one from
	// Metric/Radius/MaxNeighbors. It must honor the search.Searcher
	// contract for this domain.
	Searcher search.Searcher

	// MinNeighbors is the threshold below which the loop falls back to the
	// marginal; MaxNeighbors bounds the search. Zero values take defaults.
	MinNeighbors int
	MaxNeighbors int

	// Path names the visiting order policy: "linear" or "random" (default).
	Path string

	// Metric names the search distance: "euclidean" (default), "manhattan",
	// or "chebyshev". Radius limits the search ball; 0 means unbounded.
	Metric search.Metric
	Radius float64

	// MapMethod selects the hard-data-to-domain mapping: "nearest" (default).
	MapMethod string
}

// withDefaults returns a copy with zero-valued fields resolved.
func (v VariableConfig) withDefaults() VariableConfig {
	if v.MinNeighbors == 0 {
		v.MinNeighbors = DefaultMinNeighbors
	}
	if v.MaxNeighbors == 0 {
		v.MaxNeighbors = DefaultMaxNeighbors
	}
	if v.Path == "" {
		v.Path = "random"
	}
	if v.Metric == "" {
		v.Metric = search.Euclidean
	}
	if v.MapMethod == "" {
		v.MapMethod = MapNearest
	}
	return v
}

// Validate checks the per-variable preconditions. Called on the raw config;
// zero-valued fields are legal because defaults fill them in.
func (v VariableConfig) Validate() error {
	if v.Name == "" {
		return fmt.Errorf("empty variable name")
	}
	if v.Marginal == nil {
		return fmt.Errorf("no marginal distribution")
	}
	if v.Estimator == nil {
		return fmt.Errorf("no estimator")
	}
	if v.MinNeighbors < 0 {
		return fmt.Errorf("min neighbors %d, want >= 0", v.MinNeighbors)
	}
	if v.MaxNeighbors < 0 {
		return fmt.Errorf("max neighbors %d, want >= 0", v.MaxNeighbors)
	}
	min, max := v.MinNeighbors, v.MaxNeighbors
	if min == 0 {
		min = DefaultMinNeighbors
	}
	if max == 0 {
		max = DefaultMaxNeighbors
	}
	if max < min {
		return fmt.Errorf("max neighbors %d < min neighbors %d", max, min)
	}
	if !IsValidPath(v.Path) {
		return fmt.Errorf("unknown path policy %q", v.Path)
	}
	if !search.IsValidMetric(v.Metric) {
		return fmt.Errorf("unknown metric %q", v.Metric)
	}
	if v.Radius < 0 {
		return fmt.Errorf("negative search radius %v", v.Radius)
	}
	if !validMapMethods[v.MapMethod] {
		return fmt.Errorf("unknown mapping method %q", v.MapMethod)
	}
	return nil
}
