package sim

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/geosim/geosim/sim/search"
)

// dataPair links a domain location to the hard-data row assigned to it.
type dataPair struct {
	loc int
	row int
}

// variableBundle is the immutable per-variable parameter set produced by
// preprocessing and consumed by the loop: resolved config, bounded
// searcher, visiting order, and hard-data mapping. Reused across the whole
// run; never mutated after construction.
type variableBundle struct {
	config   VariableConfig
	searcher search.Searcher
	path     []int
	mapping  []dataPair
}

// preprocess resolves every variable's parameters once per problem:
// defaults, searcher construction, path derivation, and hard-data mapping.
// All precondition violations surface here, before any simulation work.
//
// Path derivation is the only step that consumes randomness, from the
// variable's own path substream; everything else depends solely on inputs.
func preprocess(problem *Problem, prng *PartitionedRNG) ([]variableBundle, error) {
	if err := problem.Validate(); err != nil {
		return nil, err
	}
	n := problem.Domain.Len()
	bundles := make([]variableBundle, 0, len(problem.Variables))
	for _, raw := range problem.Variables {
		cfg := raw.withDefaults()

		searcher := cfg.Searcher
		if searcher == nil {
			var err error
			searcher, err = search.New(problem.Domain, search.Options{
				MaxNeighbors: cfg.MaxNeighbors,
				Metric:       cfg.Metric,
				Radius:       cfg.Radius,
			})
			if err != nil {
				return nil, fmt.Errorf("variable %q: %w", cfg.Name, err)
			}
		}

		path := NewPathPolicy(cfg.Path).Traverse(n, prng.ForSubstream(substreamPath(cfg.Name)))
		if len(path) != n {
			return nil, fmt.Errorf("variable %q: path covers %d locations, domain has %d", cfg.Name, len(path), n)
		}

		mapping, err := mapHardData(problem, cfg, searcher)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", cfg.Name, err)
		}
		logrus.Debugf("preprocessed variable %q: %d locations, %d hard data, neighbors [%d,%d]",
			cfg.Name, n, len(mapping), cfg.MinNeighbors, cfg.MaxNeighbors)

		bundles = append(bundles, variableBundle{
			config:   cfg,
			searcher: searcher,
			path:     path,
			mapping:  mapping,
		})
	}
	return bundles, nil
}

// mapHardData computes the (location, row) pairs for one variable. With the
// nearest method each row claims its nearest domain location; when several
// rows claim the same location the nearer row wins, ties to the lower row
// index. Rows whose value for this variable is NaN are skipped. The result
// is an explicit empty slice when there is no data.
func mapHardData(problem *Problem, cfg VariableConfig, searcher search.Searcher) ([]dataPair, error) {
	mapping := make([]dataPair, 0)
	if problem.Data == nil {
		return mapping, nil
	}
	col, ok := problem.Data.Column(cfg.Name)
	if !ok {
		return mapping, nil
	}

	// All locations are eligible when locating data rows.
	all := make([]bool, problem.Domain.Len())
	for i := range all {
		all[i] = true
	}

	type claim struct {
		row  int
		dist float64
	}
	claims := make(map[int]claim)
	buf := make([]int, 1)
	for row, pt := range problem.Data.Points {
		if math.IsNaN(col[row]) {
			continue
		}
		if k := searcher.Search(pt, all, buf); k == 0 {
			return nil, fmt.Errorf("hard data row %d: no domain location within search neighborhood", row)
		}
		loc := buf[0]
		d := search.Distance(cfg.Metric, pt, problem.Domain.Centroid(loc))
		prev, taken := claims[loc]
		if !taken || d < prev.dist || (d == prev.dist && row < prev.row) {
			claims[loc] = claim{row: row, dist: d}
		}
	}
	for loc, c := range claims {
		mapping = append(mapping, dataPair{loc: loc, row: c.row})
	}
	// Order by location so initialization iterates deterministically.
	sort.Slice(mapping, func(i, j int) bool { return mapping[i].loc < mapping[j].loc })
	return mapping, nil
}
