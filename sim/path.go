package sim

import "math/rand"

// PathPolicy produces the visiting order of locations for one variable's
// sequential loop: a permutation of {0..n-1} covering every location exactly
// once. Policies have no side effects of their own; randomized policies
// consume the supplied generator, so re-deriving a path with an identically
// seeded generator yields the identical order.
type PathPolicy interface {
	Traverse(n int, rng *rand.Rand) []int
}

// LinearPath visits locations in index order. Deterministic regardless of
// the generator; it consumes no entropy.
type LinearPath struct{}

// Traverse implements PathPolicy.
func (LinearPath) Traverse(n int, _ *rand.Rand) []int {
	path := make([]int, n)
	for i := range path {
		path[i] = i
	}
	return path
}

// RandomPath visits locations in a uniformly random permutation drawn from
// the generator.
type RandomPath struct{}

// Traverse implements PathPolicy.
func (RandomPath) Traverse(n int, rng *rand.Rand) []int {
	return rng.Perm(n)
}

// validPaths maps accepted path policy names.
var validPaths = map[string]bool{"": true, "linear": true, "random": true}

// IsValidPath returns true if the given name is a recognized path policy.
func IsValidPath(name string) bool {
	return validPaths[name]
}

// NewPathPolicy returns the named path policy. Empty defaults to random,
// the standard choice for sequential simulation.
func NewPathPolicy(name string) PathPolicy {
	if name == "linear" {
		return LinearPath{}
	}
	return RandomPath{}
}
