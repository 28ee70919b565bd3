package estimator

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// Normal is a Gaussian distribution. Also the conditional family produced
// by the kriging models.
type Normal struct {
	Mu    float64
	Sigma float64
}

// Sample implements Distribution.
func (n Normal) Sample(rng *rand.Rand) float64 {
	return rng.NormFloat64()*n.Sigma + n.Mu
}

// Uniform is a continuous uniform distribution on [Low, High).
type Uniform struct {
	Low  float64
	High float64
}

// Sample implements Distribution.
func (u Uniform) Sample(rng *rand.Rand) float64 {
	return u.Low + rng.Float64()*(u.High-u.Low)
}

// Categorical draws one of Values with the corresponding Weights, for
// categorical variables encoded as float64 level codes. Weights need not be
// normalized.
type Categorical struct {
	Values  []float64
	Weights []float64

	cdf []float64
}

// NewCategorical builds a Categorical with a precomputed CDF. Values and
// weights must be parallel, non-empty, with non-negative weights summing to
// a positive total.
func NewCategorical(values, weights []float64) *Categorical {
	cdf := make([]float64, len(weights))
	floats.CumSum(cdf, weights)
	total := cdf[len(cdf)-1]
	floats.Scale(1/total, cdf)
	return &Categorical{Values: values, Weights: weights, cdf: cdf}
}

// Sample implements Distribution via inverse-CDF lookup. The strict
// comparison keeps zero-weight levels unreachable even when the draw is
// exactly zero.
func (c *Categorical) Sample(rng *rand.Rand) float64 {
	u := rng.Float64()
	i := sort.Search(len(c.cdf), func(i int) bool { return c.cdf[i] > u })
	if i >= len(c.Values) {
		i = len(c.Values) - 1
	}
	return c.Values[i]
}

// Point is a degenerate distribution that always returns Value. Every
// sample still consumes one draw from the generator so substituting a Point
// sentinel in tests does not shift downstream entropy consumption.
type Point struct {
	Value float64
}

// Sample implements Distribution.
func (p Point) Sample(rng *rand.Rand) float64 {
	_ = rng.Float64()
	return p.Value
}

func stddev(variance float64) float64 {
	return math.Sqrt(variance)
}
