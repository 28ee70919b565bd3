// Package trace provides decision-trace recording for the sequential
// simulation loop. This package has no dependencies on sim/ — it stores
// pure data types.
package trace

// Branch identifies which arm of the per-location decision rule produced a
// realization value.
type Branch string

const (
	// BranchHardData marks a location pre-assigned from hard data; the loop
	// performed no search and no draw there.
	BranchHardData Branch = "hard-data"
	// BranchMarginalInsufficient marks a marginal draw because fewer than
	// minneighbors simulated neighbors were found.
	BranchMarginalInsufficient Branch = "marginal-insufficient"
	// BranchMarginalFitFailed marks a marginal draw because the estimator
	// reported a failed fit.
	BranchMarginalFitFailed Branch = "marginal-fit-failed"
	// BranchConditional marks a draw from the fitted conditional.
	BranchConditional Branch = "conditional"
)

// LocationRecord captures a single per-location decision.
type LocationRecord struct {
	Variable     string
	Location     int
	PathPosition int
	Neighbors    int
	Branch       Branch
	Value        float64
}
