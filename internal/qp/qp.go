// Package qp defines the quadratic-program boundary of the synthesis core:
// the problem shape handed to an external solver and the status taxonomy
// the core branches on. A non-optimal status is data, not an error; errors
// are reserved for mechanical solver failures.
package qp

import (
	"gonum.org/v1/gonum/mat"
)

// Status classifies the outcome of one solver invocation.
type Status int

const (
	// StatusOptimal means the solver proved optimality.
	StatusOptimal Status = iota
	// StatusInfeasible means the constraint system admits no point.
	StatusInfeasible
	// StatusUnbounded means the objective is unbounded below.
	StatusUnbounded
	// StatusUnknown covers every other terminal solver state
	// (iteration limits, numerical trouble, time limits).
	StatusUnknown
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	default:
		return "unknown"
	}
}

// Solution is the outcome of minimizing 0.5*u'Pu + q'u subject to Gu <= h.
// X and Cost are meaningful only when Status is StatusOptimal.
type Solution struct {
	Status Status
	X      *mat.VecDense
	Cost   float64
}

// Solver is the external quadratic-program solver consumed by the core.
// Implementations must be safe to call repeatedly within one synthesis
// call; each invocation is independent.
type Solver interface {
	Solve(p *mat.Dense, q *mat.VecDense, g *mat.Dense, h *mat.VecDense) (*Solution, error)
}

// Objective evaluates 0.5*u'Pu + q'u at u. Adapters use it to report the
// cost in the core's own convention regardless of how the backend scales
// its objective.
func Objective(p *mat.Dense, q, u *mat.VecDense) float64 {
	pu := mat.NewVecDense(u.Len(), nil)
	pu.MulVec(p, u)
	return 0.5*mat.Dot(u, pu) + mat.Dot(q, u)
}
