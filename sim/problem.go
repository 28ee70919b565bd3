package sim

import (
	"fmt"
	"math"

	"github.com/geosim/geosim/sim/domain"
)

// Table holds hard data: rows with a position and per-variable values.
// A NaN entry means the row carries no measurement for that variable.
// Tables are read-only inputs; the solver never mutates them.
type Table struct {
	Points  []domain.Point
	Columns map[string][]float64
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Points) }

// Column returns the values for one variable, or false when the table has
// no column for it.
func (t *Table) Column(name string) ([]float64, bool) {
	col, ok := t.Columns[name]
	return col, ok
}

// Validate checks that every column is parallel to the point list.
func (t *Table) Validate() error {
	for name, col := range t.Columns {
		if len(col) != len(t.Points) {
			return fmt.Errorf("hard data: column %q has %d rows, want %d", name, len(col), len(t.Points))
		}
	}
	return nil
}

// Problem bundles the read-only inputs of one simulation run: the spatial
// domain, optional hard data, and the per-variable solver configurations.
type Problem struct {
	Domain    domain.Domain
	Data      *Table // nil for unconditional simulation
	Variables []VariableConfig
}

// Validate checks the problem preconditions that must hold before any
// simulation work begins.
func (p *Problem) Validate() error {
	if p.Domain == nil || p.Domain.Len() == 0 {
		return fmt.Errorf("problem: empty domain")
	}
	if len(p.Variables) == 0 {
		return fmt.Errorf("problem: no variables to simulate")
	}
	seen := make(map[string]bool, len(p.Variables))
	for i := range p.Variables {
		v := &p.Variables[i]
		if err := v.Validate(); err != nil {
			return fmt.Errorf("variable %q: %w", v.Name, err)
		}
		if seen[v.Name] {
			return fmt.Errorf("variable %q: duplicate name", v.Name)
		}
		seen[v.Name] = true
	}
	if p.Data != nil {
		if err := p.Data.Validate(); err != nil {
			return err
		}
		for _, pt := range p.Data.Points {
			if len(pt) != p.Domain.Dims() {
				return fmt.Errorf("hard data: point has %d dims, domain has %d", len(pt), p.Domain.Dims())
			}
		}
	}
	return nil
}

// Ensemble maps variable name to its completed realization, indexed by
// domain location. The mapping itself, not the visiting order, is the
// observable result of a run.
type Ensemble map[string][]float64

// undefined is the placeholder for a not-yet-simulated realization slot.
var undefined = math.NaN()
