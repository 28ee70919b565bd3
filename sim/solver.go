package sim

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/geosim/geosim/sim/domain"
	"github.com/geosim/geosim/sim/estimator"
	"github.com/geosim/geosim/sim/trace"
)

// SolverOptions groups optional solver behavior.
type SolverOptions struct {
	// Parallel runs variables on separate goroutines. Each variable owns
	// its buffers and its RNG substream, so results are identical to the
	// sequential schedule.
	Parallel bool
	// Trace enables per-location decision recording.
	Trace trace.Config
}

// Solver runs sequential simulation over a Problem: one realization per
// variable, every location assigned exactly once, conditional on
// already-simulated neighbors with marginal fallback.
type Solver struct {
	problem *Problem
	prng    *PartitionedRNG
	opts    SolverOptions
	trace   *trace.SimulationTrace
}

// NewSolver creates a Solver for the problem, keyed for reproducibility.
func NewSolver(problem *Problem, key SimulationKey, opts SolverOptions) *Solver {
	return &Solver{
		problem: problem,
		prng:    NewPartitionedRNG(key),
		opts:    opts,
		trace:   trace.New(opts.Trace),
	}
}

// Trace returns the decision trace collected by the last Run. Empty unless
// tracing was enabled in the options.
func (s *Solver) Trace() *trace.SimulationTrace { return s.trace }

// Run simulates every variable and returns the completed realizations.
// Precondition violations surface before any simulation work. A failure in
// one variable's loop does not touch another variable's realization: the
// returned ensemble holds every variable that completed, and the error
// reports the ones that did not.
func (s *Solver) Run() (Ensemble, error) {
	bundles, err := preprocess(s.problem, s.prng)
	if err != nil {
		return nil, err
	}

	// Substreams are handed out before any goroutine starts; PartitionedRNG
	// itself is not touched concurrently.
	rngs := make([]*rand.Rand, len(bundles))
	for i, b := range bundles {
		rngs[i] = s.prng.ForSubstream(substreamDraw(b.config.Name))
	}
	traces := make([]*trace.SimulationTrace, len(bundles))
	for i := range traces {
		traces[i] = trace.New(s.opts.Trace)
	}

	results := make([][]float64, len(bundles))
	failures := make([]error, len(bundles))
	if s.opts.Parallel {
		var wg sync.WaitGroup
		for i := range bundles {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], failures[i] = s.simulateVariable(bundles[i], rngs[i], traces[i])
			}(i)
		}
		wg.Wait()
	} else {
		for i := range bundles {
			results[i], failures[i] = s.simulateVariable(bundles[i], rngs[i], traces[i])
		}
	}

	// Merge per-variable traces in variable order so the combined trace is
	// schedule-independent.
	s.trace = trace.New(s.opts.Trace)
	for _, tr := range traces {
		for _, rec := range tr.Locations {
			s.trace.RecordLocation(rec)
		}
	}

	ensemble := make(Ensemble, len(bundles))
	var errs []error
	for i, b := range bundles {
		if failures[i] != nil {
			errs = append(errs, fmt.Errorf("variable %q: %w", b.config.Name, failures[i]))
			continue
		}
		ensemble[b.config.Name] = results[i]
	}
	return ensemble, errors.Join(errs...)
}

// simulateVariable runs the sequential loop for one variable. The
// realization buffer, simulated mask, and neighbor buffer are allocated
// fresh here and owned exclusively by this invocation.
func (s *Solver) simulateVariable(b variableBundle, rng *rand.Rand, tr *trace.SimulationTrace) ([]float64, error) {
	n := s.problem.Domain.Len()
	cfg := b.config

	realization := make([]float64, n)
	for i := range realization {
		realization[i] = undefined
	}
	simulated := make([]bool, n)

	// Hard-data locations are pre-simulated: value copied, mask set, and
	// the traversal below skips them.
	if len(b.mapping) > 0 {
		col, _ := s.problem.Data.Column(cfg.Name)
		for _, pair := range b.mapping {
			realization[pair.loc] = col[pair.row]
			simulated[pair.loc] = true
			tr.RecordLocation(trace.LocationRecord{
				Variable:     cfg.Name,
				Location:     pair.loc,
				PathPosition: -1,
				Branch:       trace.BranchHardData,
				Value:        realization[pair.loc],
			})
		}
	}

	// Buffers reused across locations; valid only until the next query.
	neighbors := make([]int, cfg.MaxNeighbors)
	local := estimator.LocalData{
		Points: make([]domain.Point, 0, cfg.MaxNeighbors),
		Values: make([]float64, 0, cfg.MaxNeighbors),
	}

	for p, loc := range b.path {
		if simulated[loc] {
			continue
		}
		center := s.problem.Domain.Centroid(loc)
		k := b.searcher.Search(center, simulated, neighbors)

		var value float64
		branch := trace.BranchConditional
		if k < cfg.MinNeighbors {
			value = cfg.Marginal.Sample(rng)
			branch = trace.BranchMarginalInsufficient
		} else {
			local.Points = local.Points[:0]
			local.Values = local.Values[:0]
			for _, idx := range neighbors[:k] {
				local.Points = append(local.Points, s.problem.Domain.Centroid(idx))
				local.Values = append(local.Values, realization[idx])
			}
			if model, ok := cfg.Estimator.Fit(local); ok {
				value = model.Predict(center).Sample(rng)
			} else {
				// Fit failure is not fatal: fall back to the marginal.
				value = cfg.Marginal.Sample(rng)
				branch = trace.BranchMarginalFitFailed
			}
		}
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, fmt.Errorf("location %d: drew non-finite value %v", loc, value)
		}

		realization[loc] = value
		simulated[loc] = true
		tr.RecordLocation(trace.LocationRecord{
			Variable:     cfg.Name,
			Location:     loc,
			PathPosition: p,
			Neighbors:    k,
			Branch:       branch,
			Value:        value,
		})
	}

	for loc, done := range simulated {
		if !done {
			return nil, fmt.Errorf("location %d never simulated: path did not cover the domain", loc)
		}
	}
	logrus.Debugf("variable %q: simulated %d locations", cfg.Name, n)
	return realization, nil
}
