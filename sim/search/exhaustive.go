package search

import (
	"container/heap"

	"github.com/geosim/geosim/sim/domain"
)

// ExhaustiveSearcher scans every domain location per query, keeping the
// bounded nearest set in a max-heap. O(N log k) per query; used for metrics
// the KD-tree cannot prune under, and in tests as the reference answer.
type ExhaustiveSearcher struct {
	domain domain.Domain
	metric Metric
	radius float64 // 0 means unbounded
}

// candidate pairs a location index with its distance to the query.
type candidate struct {
	idx  int
	dist float64
}

// candidateHeap is a max-heap under (distance, index) order; the root is
// the worst kept candidate.
type candidateHeap []candidate

func (h candidateHeap) Len() int { return len(h) }

func (h candidateHeap) Less(i, j int) bool {
	if h[i].dist != h[j].dist {
		return h[i].dist > h[j].dist
	}
	return h[i].idx > h[j].idx
}

func (h candidateHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *candidateHeap) Push(x any) { *h = append(*h, x.(candidate)) }

func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Search implements Searcher.
func (s *ExhaustiveSearcher) Search(q domain.Point, mask []bool, buf []int) int {
	if len(buf) == 0 {
		return 0
	}
	kept := make(candidateHeap, 0, len(buf))
	for i := 0; i < s.domain.Len(); i++ {
		if !mask[i] {
			continue
		}
		d := Distance(s.metric, q, s.domain.Centroid(i))
		if s.radius > 0 && d > s.radius {
			continue
		}
		c := candidate{idx: i, dist: d}
		if len(kept) < len(buf) {
			heap.Push(&kept, c)
			continue
		}
		worst := kept[0]
		if c.dist < worst.dist || (c.dist == worst.dist && c.idx < worst.idx) {
			heap.Pop(&kept)
			heap.Push(&kept, c)
		}
	}
	n := len(kept)
	for i := n - 1; i >= 0; i-- {
		buf[i] = heap.Pop(&kept).(candidate).idx
	}
	return n
}
