package search

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geosim/geosim/sim/domain"
)

func linePoints(n int) *domain.PointSet {
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

func allTrue(n int) []bool {
	mask := make([]bool, n)
	for i := range mask {
		mask[i] = true
	}
	return mask
}

func TestDistance_Metrics(t *testing.T) {
	a := domain.Point{0, 0}
	b := domain.Point{3, 4}

	assert.InDelta(t, 5, Distance(Euclidean, a, b), 1e-12)
	assert.InDelta(t, 5, Distance("", a, b), 1e-12)
	assert.InDelta(t, 7, Distance(Manhattan, a, b), 1e-12)
	assert.InDelta(t, 4, Distance(Chebyshev, a, b), 1e-12)
}

func TestNew_Validation(t *testing.T) {
	d := linePoints(3)

	_, err := New(d, Options{MaxNeighbors: 0})
	assert.Error(t, err)

	_, err = New(d, Options{MaxNeighbors: 2, Metric: "cosine"})
	assert.Error(t, err)

	_, err = New(d, Options{MaxNeighbors: 2, Radius: -1})
	assert.Error(t, err)
}

func TestNew_SelectsImplementation(t *testing.T) {
	d := linePoints(3)

	s, err := New(d, Options{MaxNeighbors: 2})
	require.NoError(t, err)
	assert.IsType(t, &KDTreeSearcher{}, s)

	s, err = New(d, Options{MaxNeighbors: 2, Metric: Manhattan})
	require.NoError(t, err)
	assert.IsType(t, &ExhaustiveSearcher{}, s)
}

func TestSearch_NearestFirstWithinBound(t *testing.T) {
	// GIVEN 5 collinear locations, all eligible
	d := linePoints(5)
	s, err := New(d, Options{MaxNeighbors: 2})
	require.NoError(t, err)

	// WHEN searching at location 3's position with a 2-slot buffer
	buf := make([]int, 2)
	k := s.Search(domain.Point{3, 0}, allTrue(5), buf)

	// THEN the two nearest come back nearest-first
	require.Equal(t, 2, k)
	assert.Equal(t, 3, buf[0])
	assert.ElementsMatch(t, []int{3, 2}, buf[:k])
}

func TestSearch_ExcludesMaskedLocations(t *testing.T) {
	// GIVEN only locations 0 and 4 eligible
	d := linePoints(5)
	s, err := New(d, Options{MaxNeighbors: 3})
	require.NoError(t, err)
	mask := []bool{true, false, false, false, true}

	buf := make([]int, 3)
	k := s.Search(domain.Point{1, 0}, mask, buf)

	// THEN ineligible locations never appear, and no padding happens
	require.Equal(t, 2, k)
	assert.Equal(t, []int{0, 4}, buf[:k])
}

func TestSearch_EmptyMaskReturnsZero(t *testing.T) {
	d := linePoints(4)
	s, err := New(d, Options{MaxNeighbors: 2})
	require.NoError(t, err)

	buf := make([]int, 2)
	k := s.Search(domain.Point{0, 0}, make([]bool, 4), buf)
	assert.Equal(t, 0, k)
}

func TestSearch_TieBreakLowestIndex(t *testing.T) {
	// GIVEN two locations equidistant from the query
	ps, err := domain.NewPointSet([]domain.Point{{-1, 0}, {1, 0}, {5, 5}})
	require.NoError(t, err)

	for _, metric := range []Metric{Euclidean, Manhattan} {
		s, err := New(ps, Options{MaxNeighbors: 1, Metric: metric})
		require.NoError(t, err)

		buf := make([]int, 1)
		k := s.Search(domain.Point{0, 0}, allTrue(3), buf)

		// THEN the lower index wins deterministically
		require.Equal(t, 1, k, "metric %s", metric)
		assert.Equal(t, 0, buf[0], "metric %s", metric)
	}
}

func TestSearch_RadiusLimitsNeighborhood(t *testing.T) {
	d := linePoints(10)
	for _, metric := range []Metric{Euclidean, Manhattan} {
		s, err := New(d, Options{MaxNeighbors: 5, Metric: metric, Radius: 1.5})
		require.NoError(t, err)

		buf := make([]int, 5)
		k := s.Search(domain.Point{4, 0}, allTrue(10), buf)

		// Only locations 3, 4, 5 lie within the ball.
		require.Equal(t, 3, k, "metric %s", metric)
		assert.ElementsMatch(t, []int{3, 4, 5}, buf[:k])
	}
}

func TestSearch_KDTreeMatchesExhaustive(t *testing.T) {
	// GIVEN a random 2D point cloud and random masks
	rng := rand.New(rand.NewSource(7))
	points := make([]domain.Point, 200)
	for i := range points {
		points[i] = domain.Point{rng.Float64() * 10, rng.Float64() * 10}
	}
	ps, err := domain.NewPointSet(points)
	require.NoError(t, err)

	tree, err := New(ps, Options{MaxNeighbors: 8})
	require.NoError(t, err)
	reference := &ExhaustiveSearcher{domain: ps, metric: Euclidean}

	for trial := 0; trial < 50; trial++ {
		mask := make([]bool, len(points))
		for i := range mask {
			mask[i] = rng.Float64() < 0.5
		}
		q := domain.Point{rng.Float64() * 10, rng.Float64() * 10}

		bufTree := make([]int, 8)
		bufRef := make([]int, 8)
		kTree := tree.Search(q, mask, bufTree)
		kRef := reference.Search(q, mask, bufRef)

		require.Equal(t, kRef, kTree, "trial %d", trial)
		assert.Equal(t, bufRef[:kRef], bufTree[:kTree], "trial %d", trial)
	}
}

func TestSearch_BufferSmallerThanMax(t *testing.T) {
	d := linePoints(6)
	s, err := New(d, Options{MaxNeighbors: 4})
	require.NoError(t, err)

	buf := make([]int, 1)
	k := s.Search(domain.Point{2, 0}, allTrue(6), buf)
	require.Equal(t, 1, k)
	assert.Equal(t, 2, buf[0])
}
