package sim

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/geosim/geosim/sim/domain"
	"github.com/geosim/geosim/sim/estimator"
	"github.com/geosim/geosim/sim/search"
)

// ProblemSpec is the top-level problem configuration.
// Loaded from YAML via LoadProblemSpec(path).
type ProblemSpec struct {
	Seed      int64          `yaml:"seed"`
	Domain    DomainSpec     `yaml:"domain"`
	Data      *DataSpec      `yaml:"data,omitempty"`
	Variables []VariableSpec `yaml:"variables"`
}

// DomainSpec defines the spatial domain: either a regular grid or an
// explicit point list. Exactly one of Grid/Points must be set.
type DomainSpec struct {
	Grid   *GridSpec   `yaml:"grid,omitempty"`
	Points [][]float64 `yaml:"points,omitempty"`
}

// GridSpec defines a regular Cartesian grid.
type GridSpec struct {
	Dims    []int     `yaml:"dims"`
	Origin  []float64 `yaml:"origin,omitempty"`  // defaults to zeros
	Spacing []float64 `yaml:"spacing,omitempty"` // defaults to ones
}

// DataSpec defines hard data rows: positions plus per-variable columns.
// A null entry in a column means the row carries no value for that variable.
type DataSpec struct {
	Points [][]float64           `yaml:"points"`
	Values map[string][]*float64 `yaml:"values"`
}

// VariableSpec defines one simulated variable.
type VariableSpec struct {
	Name         string        `yaml:"name"`
	Estimator    string        `yaml:"estimator"` // "simple" (default) or "ordinary"
	Mean         float64       `yaml:"mean,omitempty"`
	Variogram    VariogramSpec `yaml:"variogram"`
	Marginal     MarginalSpec  `yaml:"marginal"`
	MinNeighbors int           `yaml:"min_neighbors,omitempty"`
	MaxNeighbors int           `yaml:"max_neighbors,omitempty"`
	Path         string        `yaml:"path,omitempty"`
	Metric       string        `yaml:"metric,omitempty"`
	Radius       float64       `yaml:"radius,omitempty"`
	Mapping      string        `yaml:"mapping,omitempty"`
}

// VariogramSpec parameterizes the variogram of a kriging estimator.
type VariogramSpec struct {
	Model  string  `yaml:"model,omitempty"`
	Range  float64 `yaml:"range"`
	Sill   float64 `yaml:"sill"`
	Nugget float64 `yaml:"nugget,omitempty"`
}

// MarginalSpec parameterizes the fallback marginal distribution.
type MarginalSpec struct {
	Type   string             `yaml:"type"` // "normal", "uniform", "categorical"
	Params map[string]float64 `yaml:"params,omitempty"`
	// Categorical levels and weights, parallel slices.
	Values  []float64 `yaml:"values,omitempty"`
	Weights []float64 `yaml:"weights,omitempty"`
}

// validEstimators maps accepted estimator kinds.
var validEstimators = map[string]bool{"": true, "simple": true, "ordinary": true}

// validMarginals maps accepted marginal distribution types.
var validMarginals = map[string]bool{"normal": true, "uniform": true, "categorical": true}

// LoadProblemSpec reads and parses a YAML problem configuration file.
func LoadProblemSpec(path string) (*ProblemSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading problem spec: %w", err)
	}
	var spec ProblemSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing problem spec: %w", err)
	}
	return &spec, nil
}

// Validate checks the spec before building. Build calls it; `geosim
// validate` exposes it standalone.
func (s *ProblemSpec) Validate() error {
	if (s.Domain.Grid == nil) == (len(s.Domain.Points) == 0) {
		return fmt.Errorf("domain: exactly one of grid or points must be set")
	}
	if len(s.Variables) == 0 {
		return fmt.Errorf("no variables to simulate")
	}
	for i, v := range s.Variables {
		if v.Name == "" {
			return fmt.Errorf("variable %d: empty name", i)
		}
		if !validEstimators[v.Estimator] {
			return fmt.Errorf("variable %q: unknown estimator %q", v.Name, v.Estimator)
		}
		if !validMarginals[v.Marginal.Type] {
			return fmt.Errorf("variable %q: unknown marginal type %q", v.Name, v.Marginal.Type)
		}
		if v.Marginal.Type == "normal" && v.Marginal.Params["sigma"] < 0 {
			return fmt.Errorf("variable %q: negative marginal sigma", v.Name)
		}
		if v.Marginal.Type == "uniform" && v.Marginal.Params["high"] <= v.Marginal.Params["low"] {
			return fmt.Errorf("variable %q: uniform marginal needs high > low", v.Name)
		}
		if v.Marginal.Type == "categorical" {
			if len(v.Marginal.Values) == 0 || len(v.Marginal.Values) != len(v.Marginal.Weights) {
				return fmt.Errorf("variable %q: categorical marginal needs parallel non-empty values/weights", v.Name)
			}
			var total float64
			for _, w := range v.Marginal.Weights {
				if w < 0 {
					return fmt.Errorf("variable %q: negative categorical weight %v", v.Name, w)
				}
				total += w
			}
			if total <= 0 {
				return fmt.Errorf("variable %q: categorical weights sum to %v, want > 0", v.Name, total)
			}
		}
		vario := estimator.Variogram{
			Model:  estimator.VariogramModel(v.Variogram.Model),
			Range:  v.Variogram.Range,
			Sill:   v.Variogram.Sill,
			Nugget: v.Variogram.Nugget,
		}
		if err := vario.Validate(); err != nil {
			return fmt.Errorf("variable %q: %w", v.Name, err)
		}
	}
	if s.Data != nil {
		for name, col := range s.Data.Values {
			if len(col) != len(s.Data.Points) {
				return fmt.Errorf("data: column %q has %d rows, want %d", name, len(col), len(s.Data.Points))
			}
		}
	}
	return nil
}

// Build validates the spec and constructs the Problem it describes.
func (s *ProblemSpec) Build() (*Problem, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	dom, err := s.buildDomain()
	if err != nil {
		return nil, err
	}

	var table *Table
	if s.Data != nil && len(s.Data.Points) > 0 {
		table = &Table{
			Points:  toPoints(s.Data.Points),
			Columns: make(map[string][]float64, len(s.Data.Values)),
		}
		for name, col := range s.Data.Values {
			values := make([]float64, len(col))
			for i, v := range col {
				if v == nil {
					values[i] = math.NaN()
				} else {
					values[i] = *v
				}
			}
			table.Columns[name] = values
		}
	}

	variables := make([]VariableConfig, 0, len(s.Variables))
	for _, v := range s.Variables {
		variables = append(variables, VariableConfig{
			Name:         v.Name,
			Estimator:    v.buildEstimator(),
			Marginal:     v.buildMarginal(),
			MinNeighbors: v.MinNeighbors,
			MaxNeighbors: v.MaxNeighbors,
			Path:         v.Path,
			Metric:       search.Metric(v.Metric),
			Radius:       v.Radius,
			MapMethod:    v.Mapping,
		})
	}

	problem := &Problem{Domain: dom, Data: table, Variables: variables}
	if err := problem.Validate(); err != nil {
		return nil, err
	}
	return problem, nil
}

func (s *ProblemSpec) buildDomain() (domain.Domain, error) {
	if g := s.Domain.Grid; g != nil {
		origin := g.Origin
		if origin == nil {
			origin = make([]float64, len(g.Dims))
		}
		spacing := g.Spacing
		if spacing == nil {
			spacing = make([]float64, len(g.Dims))
			for i := range spacing {
				spacing[i] = 1
			}
		}
		return domain.NewCartesianGrid(g.Dims, origin, spacing)
	}
	return domain.NewPointSet(toPoints(s.Domain.Points))
}

func (v VariableSpec) buildEstimator() estimator.Estimator {
	vario := estimator.Variogram{
		Model:  estimator.VariogramModel(v.Variogram.Model),
		Range:  v.Variogram.Range,
		Sill:   v.Variogram.Sill,
		Nugget: v.Variogram.Nugget,
	}
	metric := search.Metric(v.Metric)
	if v.Estimator == "ordinary" {
		return estimator.OrdinaryKriging{Variogram: vario, Metric: metric}
	}
	return estimator.SimpleKriging{Variogram: vario, Mean: v.Mean, Metric: metric}
}

func (v VariableSpec) buildMarginal() estimator.Distribution {
	p := v.Marginal.Params
	switch v.Marginal.Type {
	case "uniform":
		return estimator.Uniform{Low: p["low"], High: p["high"]}
	case "categorical":
		return estimator.NewCategorical(v.Marginal.Values, v.Marginal.Weights)
	default: // normal
		return estimator.Normal{Mu: p["mu"], Sigma: p["sigma"]}
	}
}

func toPoints(raw [][]float64) []domain.Point {
	points := make([]domain.Point, len(raw))
	for i, p := range raw {
		points[i] = domain.Point(p)
	}
	return points
}
