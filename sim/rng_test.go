package sim

import (
	"math"
	"testing"
)

func TestSimulationKey_Creation(t *testing.T) {
	tests := []struct {
		name string
		seed int64
	}{
		{"positive seed", 42},
		{"zero seed", 0},
		{"negative seed", -1},
		{"max int64", math.MaxInt64},
		{"min int64", math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewSimulationKey(tt.seed)
			if int64(key) != tt.seed {
				t.Errorf("NewSimulationKey(%d) = %d, want %d", tt.seed, key, tt.seed)
			}
		})
	}
}

func TestPartitionedRNG_DeterministicDerivation(t *testing.T) {
	// Same key + same substream name produces the same sequence.
	rng1 := NewPartitionedRNG(NewSimulationKey(42))
	rng2 := NewPartitionedRNG(NewSimulationKey(42))

	name := substreamDraw("porosity")
	for i := 0; i < 5; i++ {
		a := rng1.ForSubstream(name).Float64()
		b := rng2.ForSubstream(name).Float64()
		if a != b {
			t.Errorf("Value %d: got %v and %v, want identical", i, a, b)
		}
	}
}

func TestPartitionedRNG_SubstreamIsolation(t *testing.T) {
	// Drawing from one variable's substream must not shift another's.
	rngA := NewPartitionedRNG(NewSimulationKey(42))
	rngB := NewPartitionedRNG(NewSimulationKey(42))

	for i := 0; i < 10; i++ {
		rngA.ForSubstream(substreamDraw("porosity")).Float64()
	}

	a := rngA.ForSubstream(substreamDraw("facies")).Float64()
	b := rngB.ForSubstream(substreamDraw("facies")).Float64()
	if a != b {
		t.Errorf("facies substream shifted by porosity draws: %v != %v", a, b)
	}
}

func TestPartitionedRNG_PathAndDrawStreamsDiffer(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(42))
	if substreamPath("v") == substreamDraw("v") {
		t.Fatal("path and draw substream names collide")
	}
	pathRNG := rng.ForSubstream(substreamPath("v"))
	drawRNG := rng.ForSubstream(substreamDraw("v"))
	if pathRNG == drawRNG {
		t.Error("path and draw substreams share a generator")
	}
}

func TestPartitionedRNG_CachesInstance(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(42))

	rng1 := rng.ForSubstream("x")
	rng2 := rng.ForSubstream("x")
	if rng1 != rng2 {
		t.Error("ForSubstream returned different instances for same name")
	}
}

func TestPartitionedRNG_Key(t *testing.T) {
	seed := int64(12345)
	rng := NewPartitionedRNG(NewSimulationKey(seed))
	if rng.Key() != SimulationKey(seed) {
		t.Errorf("Key() = %v, want %v", rng.Key(), seed)
	}
}

func TestFnv1a64_Deterministic(t *testing.T) {
	input := "draw:porosity"
	if fnv1a64(input) != fnv1a64(input) {
		t.Errorf("fnv1a64(%q) not deterministic", input)
	}
}

func TestFnv1a64_Collision(t *testing.T) {
	// Different substream names should produce different hashes (spot check).
	names := []string{
		substreamDraw("porosity"),
		substreamDraw("facies"),
		substreamPath("porosity"),
		substreamPath("facies"),
		"",
	}
	hashes := make(map[int64]string)
	for _, name := range names {
		h := fnv1a64(name)
		if existing, ok := hashes[h]; ok {
			t.Errorf("Hash collision: %q and %q both hash to %d", name, existing, h)
		}
		hashes[h] = name
	}
}
