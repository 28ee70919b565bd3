package estimator

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geosim/geosim/sim/domain"
)

var testVario = Variogram{Model: Gaussian, Range: 5, Sill: 1}

func testData() LocalData {
	return LocalData{
		Points: []domain.Point{{0, 0}, {2, 0}, {0, 2}},
		Values: []float64{1, 3, 2},
	}
}

func conditionalAt(t *testing.T, m Model, q domain.Point) Normal {
	t.Helper()
	dist, ok := m.Predict(q).(Normal)
	require.True(t, ok, "kriging conditional should be Normal")
	return dist
}

func TestSimpleKriging_ExactAtDataPoint(t *testing.T) {
	sk := SimpleKriging{Variogram: testVario, Mean: 0}
	model, ok := sk.Fit(testData())
	require.True(t, ok)

	// At a data location the conditional collapses onto the datum.
	dist := conditionalAt(t, model, domain.Point{2, 0})
	assert.InDelta(t, 3, dist.Mu, 1e-8)
	assert.InDelta(t, 0, dist.Sigma, 1e-6)
}

func TestSimpleKriging_FarFromDataReturnsPrior(t *testing.T) {
	sk := SimpleKriging{Variogram: testVario, Mean: 0.5}
	model, ok := sk.Fit(testData())
	require.True(t, ok)

	// Far beyond the range the conditional reverts to the prior mean and
	// full sill variance.
	dist := conditionalAt(t, model, domain.Point{1000, 1000})
	assert.InDelta(t, 0.5, dist.Mu, 1e-8)
	assert.InDelta(t, 1, dist.Sigma*dist.Sigma, 1e-8)
}

func TestSimpleKriging_SinglePoint(t *testing.T) {
	sk := SimpleKriging{Variogram: testVario, Mean: 0}
	model, ok := sk.Fit(LocalData{
		Points: []domain.Point{{0, 0}},
		Values: []float64{2},
	})
	require.True(t, ok)

	dist := conditionalAt(t, model, domain.Point{0, 0})
	assert.InDelta(t, 2, dist.Mu, 1e-8)
}

func TestSimpleKriging_FitFailsOnEmptyData(t *testing.T) {
	sk := SimpleKriging{Variogram: testVario}
	_, ok := sk.Fit(LocalData{})
	assert.False(t, ok)
}

func TestSimpleKriging_FitFailsOnDuplicatePoints(t *testing.T) {
	// Two coincident points make the covariance matrix singular when the
	// variogram has no nugget.
	sk := SimpleKriging{Variogram: testVario}
	_, ok := sk.Fit(LocalData{
		Points: []domain.Point{{1, 1}, {1, 1}},
		Values: []float64{1, 2},
	})
	assert.False(t, ok)
}

func TestSimpleKriging_NuggetRescuesDuplicates(t *testing.T) {
	vario := Variogram{Model: Gaussian, Range: 5, Sill: 1, Nugget: 0.2}
	sk := SimpleKriging{Variogram: vario}
	_, ok := sk.Fit(LocalData{
		Points: []domain.Point{{1, 1}, {1, 1}},
		Values: []float64{1, 2},
	})
	assert.True(t, ok)
}

func TestOrdinaryKriging_ExactAtDataPoint(t *testing.T) {
	ok := OrdinaryKriging{Variogram: testVario}
	model, fine := ok.Fit(testData())
	require.True(t, fine)

	dist := conditionalAt(t, model, domain.Point{0, 2})
	assert.InDelta(t, 2, dist.Mu, 1e-8)
	assert.InDelta(t, 0, dist.Sigma, 1e-6)
}

func TestOrdinaryKriging_SymmetricQueryAveragesData(t *testing.T) {
	// GIVEN two data points and a query equidistant from both
	ok := OrdinaryKriging{Variogram: testVario}
	model, fine := ok.Fit(LocalData{
		Points: []domain.Point{{-1, 0}, {1, 0}},
		Values: []float64{1, 3},
	})
	require.True(t, fine)

	// THEN unit-sum symmetric weights give the arithmetic mean
	dist := conditionalAt(t, model, domain.Point{0, 0})
	assert.InDelta(t, 2, dist.Mu, 1e-8)
}

func TestOrdinaryKriging_SinglePointFarQuery(t *testing.T) {
	// With one datum the unit-sum constraint forces its weight to 1
	// everywhere, so the mean is the datum even beyond the range.
	ok := OrdinaryKriging{Variogram: testVario}
	model, fine := ok.Fit(LocalData{
		Points: []domain.Point{{0, 0}},
		Values: []float64{7},
	})
	require.True(t, fine)

	dist := conditionalAt(t, model, domain.Point{500, 0})
	assert.InDelta(t, 7, dist.Mu, 1e-8)
	// The Lagrange term pushes the variance above the sill far from data.
	assert.Greater(t, dist.Sigma*dist.Sigma, testVario.Sill)
}

func TestOrdinaryKriging_FitFailsOnDegenerateData(t *testing.T) {
	ok := OrdinaryKriging{Variogram: testVario}

	_, fine := ok.Fit(LocalData{})
	assert.False(t, fine)

	_, fine = ok.Fit(LocalData{
		Points: []domain.Point{{1, 1}, {1, 1}},
		Values: []float64{1, 2},
	})
	assert.False(t, fine)
}

func TestKriging_ModelOutlivesReusedBuffers(t *testing.T) {
	// GIVEN a model fitted to caller-owned buffers
	sk := SimpleKriging{Variogram: testVario}
	data := testData()
	model, ok := sk.Fit(data)
	require.True(t, ok)

	before := conditionalAt(t, model, domain.Point{1, 1})

	// WHEN the caller overwrites the buffers, as the solver loop does
	data.Points[0][0] = 99
	data.Values[0] = -99

	// THEN predictions are unchanged
	after := conditionalAt(t, model, domain.Point{1, 1})
	assert.Equal(t, before, after)
}

func TestKriging_SampleIsDeterministic(t *testing.T) {
	sk := SimpleKriging{Variogram: testVario}
	model, ok := sk.Fit(testData())
	require.True(t, ok)
	dist := model.Predict(domain.Point{1, 1})

	a := dist.Sample(rand.New(rand.NewSource(9)))
	b := dist.Sample(rand.New(rand.NewSource(9)))
	assert.Equal(t, a, b)
}
