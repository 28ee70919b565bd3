// Package estimator provides the estimation and sampling capabilities
// consumed by the sequential simulation loop.
//
// The solver never inspects model internals: it fits an Estimator to a
// local dataset, branches on the returned ok flag, asks the fitted Model
// for a conditional Distribution at the query position, and draws from it.
// Marginal fallback distributions implement the same Distribution interface
// so a draw is a draw regardless of which branch produced it.
//
// Concrete families:
//   - kriging.go: SimpleKriging and OrdinaryKriging over variogram models
//   - marginal.go: Normal, Uniform, Categorical, Point distributions
package estimator

import (
	"math/rand"

	"github.com/geosim/geosim/sim/domain"
)

// LocalData is the neighborhood dataset an Estimator is fitted to:
// positions of already-simulated locations and their realization values.
// Slices are parallel and owned by the caller; Fit must not retain them
// past its return unless it copies.
type LocalData struct {
	Points []domain.Point
	Values []float64
}

// Len returns the number of data points.
func (d LocalData) Len() int { return len(d.Points) }

// Distribution is a univariate distribution that can be sampled. Sample is
// a pure function of the distribution and the generator's current state; it
// consumes entropy deterministically.
type Distribution interface {
	Sample(rng *rand.Rand) float64
}

// Model is a fitted estimator, able to produce the conditional distribution
// at a query position.
type Model interface {
	Predict(q domain.Point) Distribution
}

// Estimator fits a Model to a local dataset. ok=false signals that no valid
// model could be produced (degenerate geometry, non-PD system); callers
// fall back to the marginal rather than treating it as an error.
type Estimator interface {
	Fit(data LocalData) (Model, bool)
}
