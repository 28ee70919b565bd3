package search

import (
	"container/heap"
	"math"

	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/geosim/geosim/sim/domain"
)

// location carries a domain index alongside its position so that results of
// tree queries can be mapped back to mask/realization slots.
type location struct {
	pos domain.Point
	idx int
}

// Compare implements kdtree.Comparable.
func (l location) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(location)
	return l.pos[d] - q.pos[d]
}

// Dims implements kdtree.Comparable.
func (l location) Dims() int { return len(l.pos) }

// Distance implements kdtree.Comparable. Returns the squared Euclidean
// distance, matching the tree's pruning metric.
func (l location) Distance(c kdtree.Comparable) float64 {
	q := c.(location)
	var s float64
	for i := range l.pos {
		d := l.pos[i] - q.pos[i]
		s += d * d
	}
	return s
}

// locations satisfies kdtree.Interface for tree construction.
type locations []location

func (ls locations) Index(i int) kdtree.Comparable         { return ls[i] }
func (ls locations) Len() int                              { return len(ls) }
func (ls locations) Slice(start, end int) kdtree.Interface { return ls[start:end] }

// Pivot uses the deterministic median-of-medians partition so that tree
// shape does not depend on any random source.
func (ls locations) Pivot(d kdtree.Dim) int {
	p := locationPlane{locations: ls, Dim: d}
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

// locationPlane implements sort.Interface and kdtree.SortSlicer along one axis.
type locationPlane struct {
	locations
	kdtree.Dim
}

func (p locationPlane) Less(i, j int) bool {
	return p.locations[i].pos[p.Dim] < p.locations[j].pos[p.Dim]
}

func (p locationPlane) Slice(start, end int) kdtree.SortSlicer {
	return locationPlane{locations: p.locations[start:end], Dim: p.Dim}
}

func (p locationPlane) Swap(i, j int) {
	p.locations[i], p.locations[j] = p.locations[j], p.locations[i]
}

// KDTreeSearcher performs bounded masked k-NN queries against a KD-tree
// built once over the whole domain. Masking is applied during the tree walk
// by a filtering keeper, so ineligible locations never displace eligible
// ones and never appear in results.
type KDTreeSearcher struct {
	tree     *kdtree.Tree
	sqRadius float64 // 0 means unbounded
}

func newKDTreeSearcher(d domain.Domain, radius float64) *KDTreeSearcher {
	ls := make(locations, d.Len())
	for i := range ls {
		ls[i] = location{pos: d.Centroid(i), idx: i}
	}
	return &KDTreeSearcher{
		tree:     kdtree.New(ls, true),
		sqRadius: radius * radius,
	}
}

// Search implements Searcher.
func (s *KDTreeSearcher) Search(q domain.Point, mask []bool, buf []int) int {
	if len(buf) == 0 {
		return 0
	}
	k := &maskedKeeper{mask: mask, cap: len(buf), sqRadius: s.sqRadius}
	s.tree.NearestSet(k, location{pos: q, idx: -1})

	// Drain the max-heap back-to-front so buf ends up nearest-first.
	// NearestSet leaves the keeper min-sorted, not heap-ordered, so the
	// heap invariant must be re-established before popping.
	heap.Init(k)
	n := len(k.kept)
	for i := n - 1; i >= 0; i-- {
		buf[i] = heap.Pop(k).(kdtree.ComparableDist).Comparable.(location).idx
	}
	return n
}

// maskedKeeper is a kdtree.Keeper holding the cap nearest eligible
// candidates. Ordering is lexicographic on (distance, index) so equidistant
// candidates resolve to the lowest index deterministically.
type maskedKeeper struct {
	kept     []kdtree.ComparableDist
	cap      int
	mask     []bool
	sqRadius float64
}

func (k *maskedKeeper) Keep(c kdtree.ComparableDist) {
	loc := c.Comparable.(location)
	if !k.mask[loc.idx] {
		return
	}
	if k.sqRadius > 0 && c.Dist > k.sqRadius {
		return
	}
	if len(k.kept) < k.cap {
		heap.Push(k, c)
		return
	}
	if improves(c, k.kept[0]) {
		heap.Pop(k)
		heap.Push(k, c)
	}
}

// Max reports the pruning bound: +Inf while the keeper is not full, the
// current worst kept distance afterwards.
func (k *maskedKeeper) Max() kdtree.ComparableDist {
	if len(k.kept) < k.cap {
		// The Comparable must be non-nil: NearestSet treats a nil
		// Comparable as a stored sentinel and would pop a real result.
		bound := math.Inf(1)
		if k.sqRadius > 0 {
			bound = k.sqRadius
		}
		return kdtree.ComparableDist{Comparable: location{idx: -1}, Dist: bound}
	}
	return k.kept[0]
}

// improves reports whether a improves on b under (distance, index) order.
func improves(a, b kdtree.ComparableDist) bool {
	if a.Dist != b.Dist {
		return a.Dist < b.Dist
	}
	return a.Comparable.(location).idx < b.Comparable.(location).idx
}

// heap.Interface; the root is the worst kept candidate.

func (k *maskedKeeper) Len() int { return len(k.kept) }

func (k *maskedKeeper) Less(i, j int) bool { return improves(k.kept[j], k.kept[i]) }

func (k *maskedKeeper) Swap(i, j int) { k.kept[i], k.kept[j] = k.kept[j], k.kept[i] }

func (k *maskedKeeper) Push(x any) { k.kept = append(k.kept, x.(kdtree.ComparableDist)) }

func (k *maskedKeeper) Pop() any {
	old := k.kept
	n := len(old)
	item := old[n-1]
	k.kept = old[:n-1]
	return item
}
