package estimator

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/geosim/geosim/sim/domain"
	"github.com/geosim/geosim/sim/search"
)

// SimpleKriging estimates with a known stationary mean. The conditional at
// a query point is Normal(mean + w'(z - mean), sill - w'c0) with weights
// solving C w = c0 for the neighborhood covariance matrix C.
type SimpleKriging struct {
	Variogram Variogram
	Mean      float64
	Metric    search.Metric
}

// Fit implements Estimator. ok=false when the covariance system is not
// positive definite (duplicate points, pure-nugget degeneracy) or the
// dataset is empty.
func (sk SimpleKriging) Fit(data LocalData) (Model, bool) {
	chol, ok := factorizeCovariance(sk.Variogram, sk.Metric, data)
	if !ok {
		return nil, false
	}
	return &simpleKrigingModel{
		vario:  sk.Variogram,
		metric: sk.Metric,
		mean:   sk.Mean,
		chol:   chol,
		data:   copyData(data),
	}, true
}

type simpleKrigingModel struct {
	vario  Variogram
	metric search.Metric
	mean   float64
	chol   *mat.Cholesky
	data   LocalData
}

// Predict implements Model.
func (m *simpleKrigingModel) Predict(q domain.Point) Distribution {
	n := m.data.Len()
	c0 := covarianceVector(m.vario, m.metric, m.data.Points, q)

	var w mat.VecDense
	if err := m.chol.SolveVecTo(&w, c0); err != nil {
		// Factorization succeeded, so the solve cannot fail; treat an
		// escaped failure as zero local information.
		return Normal{Mu: m.mean, Sigma: stddev(m.vario.Sill)}
	}

	mu := m.mean
	for i := 0; i < n; i++ {
		mu += w.AtVec(i) * (m.data.Values[i] - m.mean)
	}
	variance := m.vario.Sill - mat.Dot(&w, c0)
	return Normal{Mu: mu, Sigma: stddev(clampVariance(variance))}
}

// OrdinaryKriging estimates with an unknown constant mean, enforcing
// unit-sum weights through a Lagrange multiplier. The system is reduced to
// two positive-definite solves against the same Cholesky factorization:
// a = C⁻¹c0 and b = C⁻¹1, then λ = a + μb with μ = (1 - Σa)/Σb.
type OrdinaryKriging struct {
	Variogram Variogram
	Metric    search.Metric
}

// Fit implements Estimator.
func (ok OrdinaryKriging) Fit(data LocalData) (Model, bool) {
	chol, fine := factorizeCovariance(ok.Variogram, ok.Metric, data)
	if !fine {
		return nil, false
	}
	ones := mat.NewVecDense(data.Len(), nil)
	for i := 0; i < data.Len(); i++ {
		ones.SetVec(i, 1)
	}
	var b mat.VecDense
	if err := chol.SolveVecTo(&b, ones); err != nil {
		return nil, false
	}
	sumB := floats.Sum(b.RawVector().Data)
	if sumB <= 0 {
		return nil, false
	}
	return &ordinaryKrigingModel{
		vario:  ok.Variogram,
		metric: ok.Metric,
		chol:   chol,
		b:      &b,
		sumB:   sumB,
		data:   copyData(data),
	}, true
}

type ordinaryKrigingModel struct {
	vario  Variogram
	metric search.Metric
	chol   *mat.Cholesky
	b      *mat.VecDense
	sumB   float64
	data   LocalData
}

// Predict implements Model.
func (m *ordinaryKrigingModel) Predict(q domain.Point) Distribution {
	n := m.data.Len()
	c0 := covarianceVector(m.vario, m.metric, m.data.Points, q)

	var a mat.VecDense
	if err := m.chol.SolveVecTo(&a, c0); err != nil {
		mean := floats.Sum(m.data.Values) / float64(n)
		return Normal{Mu: mean, Sigma: stddev(m.vario.Sill)}
	}
	mu := (1 - floats.Sum(a.RawVector().Data)) / m.sumB

	var lambda mat.VecDense
	lambda.AddScaledVec(&a, mu, m.b)

	var mean float64
	for i := 0; i < n; i++ {
		mean += lambda.AtVec(i) * m.data.Values[i]
	}
	// Var = sill - λ'c0 + μ; the Lagrange term can push it above the sill
	// far from the data, which is correct for ordinary kriging.
	variance := m.vario.Sill - mat.Dot(&lambda, c0) + mu
	return Normal{Mu: mean, Sigma: stddev(clampVariance(variance))}
}

// factorizeCovariance assembles the neighborhood covariance matrix and
// attempts a Cholesky factorization.
func factorizeCovariance(v Variogram, metric search.Metric, data LocalData) (*mat.Cholesky, bool) {
	n := data.Len()
	if n == 0 {
		return nil, false
	}
	c := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			h := search.Distance(metric, data.Points[i], data.Points[j])
			c.SetSym(i, j, v.Cov(h))
		}
	}
	var chol mat.Cholesky
	if !chol.Factorize(c) {
		return nil, false
	}
	return &chol, true
}

// covarianceVector computes cov(x_i, q) for every data point.
func covarianceVector(v Variogram, metric search.Metric, points []domain.Point, q domain.Point) *mat.VecDense {
	c0 := mat.NewVecDense(len(points), nil)
	for i, p := range points {
		c0.SetVec(i, v.Cov(search.Distance(metric, p, q)))
	}
	return c0
}

// copyData snapshots the caller-owned neighborhood buffers; the fitted
// model outlives the solver's per-location reuse of them.
func copyData(data LocalData) LocalData {
	points := make([]domain.Point, len(data.Points))
	for i, p := range data.Points {
		points[i] = p.Clone()
	}
	values := make([]float64, len(data.Values))
	copy(values, data.Values)
	return LocalData{Points: points, Values: values}
}

// clampVariance guards against small negative round-off.
func clampVariance(variance float64) float64 {
	if variance < 0 {
		return 0
	}
	return variance
}
