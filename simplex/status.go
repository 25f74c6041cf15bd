package simplex

import (
	"fmt"

	"github.com/pkg/errors"
)

// Status is the state of a Problem with respect to its last solve.
type Status int

const (
	// PartiallySatisfiable means the last known point is stale: constraints,
	// dimensions or integer variables were added since it was computed.
	PartiallySatisfiable Status = iota
	Unsatisfiable
	// Satisfiable means a feasible point is known but not optimized.
	Satisfiable
	Unbounded
	Optimized
)

func (s Status) String() string {
	switch s {
	case PartiallySatisfiable:
		return "PARTIALLY_SATISFIABLE"
	case Unsatisfiable:
		return "UNSATISFIABLE"
	case Satisfiable:
		return "SATISFIABLE"
	case Unbounded:
		return "UNBOUNDED"
	case Optimized:
		return "OPTIMIZED"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Mode is the optimization direction.
type Mode int

const (
	Maximization Mode = iota
	Minimization
)

func (m Mode) String() string {
	if m == Minimization {
		return "MINIMIZATION"
	}
	return "MAXIMIZATION"
}

// ParseMode accepts the short, verb and String forms of a mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "max", "maximize", "MAXIMIZATION", "maximization":
		return Maximization, nil
	case "min", "minimize", "MINIMIZATION", "minimization":
		return Minimization, nil
	}
	return 0, errors.Errorf("unknown optimization mode %q", s)
}

// better reports whether cmp, the result of a.Cmp(b), means a is strictly
// better than b under m.
func (m Mode) better(cmp int) bool {
	if m == Minimization {
		return cmp < 0
	}
	return cmp > 0
}

// ControlParameter selects the entering-variable pricing strategy.
type ControlParameter int

const (
	PricingSteepestEdgeFloat ControlParameter = iota
	PricingSteepestEdgeExact
	PricingTextbook
)

func (p ControlParameter) String() string {
	switch p {
	case PricingSteepestEdgeFloat:
		return "steepest-edge-float"
	case PricingSteepestEdgeExact:
		return "steepest-edge-exact"
	case PricingTextbook:
		return "textbook"
	}
	return fmt.Sprintf("ControlParameter(%d)", int(p))
}

func ParseControlParameter(s string) (ControlParameter, error) {
	for _, p := range []ControlParameter{PricingSteepestEdgeFloat, PricingSteepestEdgeExact, PricingTextbook} {
		if p.String() == s {
			return p, nil
		}
	}
	return 0, errors.Errorf("unknown pricing %q", s)
}

// BranchingPolicy picks the fractional integer variable to branch on.
type BranchingPolicy int

const (
	// BranchFirstFractional picks the lowest-index fractional variable.
	BranchFirstFractional BranchingPolicy = iota
	// BranchMostFractional picks the variable whose fractional part is
	// closest to 1/2, lowest index on ties.
	BranchMostFractional
)

func (b BranchingPolicy) String() string {
	switch b {
	case BranchFirstFractional:
		return "first"
	case BranchMostFractional:
		return "most"
	}
	return fmt.Sprintf("BranchingPolicy(%d)", int(b))
}

func ParseBranchingPolicy(s string) (BranchingPolicy, error) {
	switch s {
	case "first":
		return BranchFirstFractional, nil
	case "most":
		return BranchMostFractional, nil
	}
	return 0, errors.Errorf("unknown branching policy %q", s)
}

// Phase names the simplex phase a pivot belongs to.
type Phase string

const (
	PhaseOne     Phase = "feasibility"
	PhaseTwo     Phase = "optimization"
	PhaseCleanup Phase = "cleanup"
)
