// Package domain provides spatial domain implementations for sequential
// simulation: finite, ordered collections of locations with centroids in a
// low-dimensional metric space.
//
// A Domain is immutable for the duration of a run. Locations are addressed
// by dense indices 0..Len()-1, which is what the solver's masks, paths, and
// realization buffers are keyed on.
package domain

import "fmt"

// Point is a coordinate in D-dimensional space.
type Point []float64

// Clone returns an independent copy of the point.
func (p Point) Clone() Point {
	q := make(Point, len(p))
	copy(q, p)
	return q
}

// Domain is a finite, ordered set of spatial locations.
type Domain interface {
	// Len returns the number of locations.
	Len() int
	// Dims returns the coordinate dimensionality.
	Dims() int
	// Centroid returns the position of location i.
	// Precondition: 0 <= i < Len().
	Centroid(i int) Point
}

// PointSet is a Domain backed by an explicit list of positions.
type PointSet struct {
	points []Point
	dims   int
}

// NewPointSet builds a PointSet from positions. All points must share the
// same dimensionality.
func NewPointSet(points []Point) (*PointSet, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("point set: no locations")
	}
	dims := len(points[0])
	if dims == 0 {
		return nil, fmt.Errorf("point set: zero-dimensional points")
	}
	for i, p := range points {
		if len(p) != dims {
			return nil, fmt.Errorf("point set: location %d has %d dims, want %d", i, len(p), dims)
		}
	}
	return &PointSet{points: points, dims: dims}, nil
}

func (ps *PointSet) Len() int  { return len(ps.points) }
func (ps *PointSet) Dims() int { return ps.dims }

func (ps *PointSet) Centroid(i int) Point { return ps.points[i] }

// CartesianGrid is a regular grid Domain. Locations are ordered row-major:
// the first axis varies fastest. Centroids sit at cell centers.
type CartesianGrid struct {
	dims    []int
	origin  []float64
	spacing []float64
	size    int
}

// NewCartesianGrid builds a regular grid with the given cell counts per
// axis, origin (minimum corner), and cell spacing per axis.
func NewCartesianGrid(dims []int, origin, spacing []float64) (*CartesianGrid, error) {
	if len(dims) == 0 {
		return nil, fmt.Errorf("grid: no axes")
	}
	if len(origin) != len(dims) || len(spacing) != len(dims) {
		return nil, fmt.Errorf("grid: dims/origin/spacing lengths differ (%d/%d/%d)",
			len(dims), len(origin), len(spacing))
	}
	size := 1
	for a, n := range dims {
		if n <= 0 {
			return nil, fmt.Errorf("grid: axis %d has non-positive cell count %d", a, n)
		}
		if spacing[a] <= 0 {
			return nil, fmt.Errorf("grid: axis %d has non-positive spacing %v", a, spacing[a])
		}
		size *= n
	}
	return &CartesianGrid{dims: dims, origin: origin, spacing: spacing, size: size}, nil
}

func (g *CartesianGrid) Len() int  { return g.size }
func (g *CartesianGrid) Dims() int { return len(g.dims) }

// Centroid decomposes the row-major index into per-axis coordinates and
// returns the cell center.
func (g *CartesianGrid) Centroid(i int) Point {
	p := make(Point, len(g.dims))
	rem := i
	for a, n := range g.dims {
		p[a] = g.origin[a] + (float64(rem%n)+0.5)*g.spacing[a]
		rem /= n
	}
	return p
}
