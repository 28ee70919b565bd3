package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible simulation run.
// Two simulations with the same SimulationKey and identical configuration
// MUST produce bit-for-bit identical realizations.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Substream Names ===

// substreamPath returns the substream name used to derive a variable's
// random path.
func substreamPath(variable string) string {
	return fmt.Sprintf("path:%s", variable)
}

// substreamDraw returns the substream name consumed by a variable's value
// draws.
func substreamDraw(variable string) string {
	return fmt.Sprintf("draw:%s", variable)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per named
// substream. Substream isolation is what keeps realizations reproducible
// when variables run in parallel: each variable's draws come from its own
// generator, seeded only by the master key and the substream name.
//
// Derivation formula: masterSeed XOR fnv1a64(substreamName).
//
// Thread-safety: ForSubstream must not be called concurrently; callers
// obtain their substreams before spawning variable goroutines.
type PartitionedRNG struct {
	key        SimulationKey
	substreams map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		substreams: make(map[string]*rand.Rand),
	}
}

// ForSubstream returns a deterministically-seeded RNG for the named
// substream. The same name always returns the same *rand.Rand instance
// (cached). Never returns nil.
func (p *PartitionedRNG) ForSubstream(name string) *rand.Rand {
	if rng, ok := p.substreams[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(int64(p.key) ^ fnv1a64(name)))
	p.substreams[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
