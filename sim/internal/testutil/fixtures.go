// Package testutil provides shared test infrastructure for the geosim
// solver: stub estimators, sentinel distributions, and small domains used
// across sim/ test packages.
package testutil

import (
	"math/rand"

	"github.com/geosim/geosim/sim/domain"
	"github.com/geosim/geosim/sim/estimator"
)

// Collinear returns n locations evenly spaced on the x axis in 2D.
func Collinear(n int) *domain.PointSet {
	points := make([]domain.Point, n)
	for i := range points {
		points[i] = domain.Point{float64(i), 0}
	}
	ps, err := domain.NewPointSet(points)
	if err != nil {
		panic(err)
	}
	return ps
}

// Sentinel is a Distribution returning a fixed value without consuming
// entropy, so tests can assert which branch produced a realization entry.
type Sentinel struct {
	Value float64
}

// Sample implements estimator.Distribution.
func (s Sentinel) Sample(_ *rand.Rand) float64 { return s.Value }

// StubEstimator records every dataset it is fitted to and answers with a
// fixed success flag. Successful fits produce models whose conditional is a
// Sentinel with the configured value.
type StubEstimator struct {
	Succeed bool
	Value   float64

	Datasets []estimator.LocalData
}

// Fit implements estimator.Estimator.
func (s *StubEstimator) Fit(data estimator.LocalData) (estimator.Model, bool) {
	snapshot := estimator.LocalData{
		Points: append([]domain.Point(nil), data.Points...),
		Values: append([]float64(nil), data.Values...),
	}
	s.Datasets = append(s.Datasets, snapshot)
	if !s.Succeed {
		return nil, false
	}
	return stubModel{value: s.Value}, true
}

type stubModel struct {
	value float64
}

// Predict implements estimator.Model.
func (m stubModel) Predict(_ domain.Point) estimator.Distribution {
	return Sentinel{Value: m.value}
}
