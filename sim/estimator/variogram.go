package estimator

import (
	"fmt"
	"math"
)

// VariogramModel names the theoretical variogram family.
type VariogramModel string

const (
	Spherical   VariogramModel = "spherical"
	Exponential VariogramModel = "exponential"
	Gaussian    VariogramModel = "gaussian"
	PureNugget  VariogramModel = "nugget"
)

// validVariogramModels maps accepted model names.
var validVariogramModels = map[VariogramModel]bool{
	Spherical:   true,
	Exponential: true,
	Gaussian:    true,
	PureNugget:  true,
	"":          true, // empty defaults to gaussian
}

// IsValidVariogramModel returns true if the name is a recognized family.
func IsValidVariogramModel(m VariogramModel) bool {
	return validVariogramModels[m]
}

// Variogram parameterizes spatial correlation for the kriging estimators.
// Sill is the total sill (variance at infinite lag); Nugget is the
// discontinuity at the origin; Range is the practical correlation range.
type Variogram struct {
	Model  VariogramModel
	Range  float64
	Sill   float64
	Nugget float64
}

// Validate checks parameter ranges.
func (v Variogram) Validate() error {
	if !IsValidVariogramModel(v.Model) {
		return fmt.Errorf("variogram: unknown model %q", v.Model)
	}
	if v.Sill <= 0 {
		return fmt.Errorf("variogram: sill %v, want > 0", v.Sill)
	}
	if v.Nugget < 0 || v.Nugget >= v.Sill {
		return fmt.Errorf("variogram: nugget %v, want in [0, sill)", v.Nugget)
	}
	if v.Model != PureNugget && v.Range <= 0 {
		return fmt.Errorf("variogram: range %v, want > 0", v.Range)
	}
	return nil
}

// Gamma evaluates the semivariance at lag h >= 0.
func (v Variogram) Gamma(h float64) float64 {
	if h == 0 {
		return 0
	}
	psill := v.Sill - v.Nugget
	switch v.Model {
	case Spherical:
		if h >= v.Range {
			return v.Sill
		}
		r := h / v.Range
		return v.Nugget + psill*(1.5*r-0.5*r*r*r)
	case Exponential:
		return v.Nugget + psill*(1-math.Exp(-3*h/v.Range))
	case PureNugget:
		return v.Sill
	default: // Gaussian
		r := h / v.Range
		return v.Nugget + psill*(1-math.Exp(-3*r*r))
	}
}

// Cov evaluates the covariance at lag h: sill - gamma(h).
func (v Variogram) Cov(h float64) float64 {
	return v.Sill - v.Gamma(h)
}
