package qp

import (
	"fmt"
	"math"

	highs "github.com/bartolsthoorn/gohighs/highs"
	"gonum.org/v1/gonum/mat"
)

var negInf = math.Inf(-1)

// HiGHS adapts the HiGHS solver to the Solver interface. The zero value is
// ready to use; TimeLimit bounds one invocation in seconds when positive.
type HiGHS struct {
	TimeLimit float64
}

// Solve minimizes 0.5*u'Pu + q'u subject to Gu <= h. HiGHS uses the same
// half-Hessian convention, so P maps directly onto the model Hessian.
func (s *HiGHS) Solve(p *mat.Dense, q *mat.VecDense, g *mat.Dense, h *mat.VecDense) (*Solution, error) {
	nv, _ := p.Dims()
	if q.Len() != nv {
		return nil, fmt.Errorf("qp: q has length %d, want %d", q.Len(), nv)
	}

	model := &highs.Model{}
	model.ColCosts = make([]float64, nv)
	model.ColLower = make([]float64, nv)
	for j := 0; j < nv; j++ {
		model.ColCosts[j] = q.AtVec(j)
		model.ColLower[j] = negInf
	}
	model.Hessian = HessianNonzeros(p)

	if g != nil {
		rows, cols := g.Dims()
		if cols != nv {
			return nil, fmt.Errorf("qp: G has %d columns, want %d", cols, nv)
		}
		if h.Len() != rows {
			return nil, fmt.Errorf("qp: h has length %d, want %d", h.Len(), rows)
		}
		for i := 0; i < rows; i++ {
			model.AddLeRow(mat.Row(nil, i, g), h.AtVec(i))
		}
	}

	opts := []highs.SolveOption{highs.WithOutput(false)}
	if s.TimeLimit > 0 {
		opts = append(opts, highs.WithTimeLimit(s.TimeLimit))
	}

	sol, err := model.Solve(opts...)
	if err != nil {
		return nil, fmt.Errorf("qp: highs: %w", err)
	}

	out := &Solution{Status: mapStatus(sol.Status)}
	if out.Status != StatusOptimal {
		return out, nil
	}
	out.X = mat.NewVecDense(nv, nil)
	for j := 0; j < nv; j++ {
		out.X.SetVec(j, sol.ColValues[j])
	}
	out.Cost = Objective(p, q, out.X)
	return out, nil
}

func mapStatus(st highs.ModelStatus) Status {
	switch st {
	case highs.ModelStatusOptimal:
		return StatusOptimal
	case highs.ModelStatusInfeasible:
		return StatusInfeasible
	case highs.ModelStatusUnbounded, highs.ModelStatusUnboundedOrInfeasible:
		return StatusUnbounded
	default:
		return StatusUnknown
	}
}

// HessianNonzeros flattens a dense Hessian into the upper-triangular
// triplet form HiGHS expects. The quadratic form u'Pu equals u'Su for the
// symmetric part S = (P+P')/2, so an asymmetric input is folded first.
func HessianNonzeros(p *mat.Dense) []highs.Nonzero {
	n, _ := p.Dims()
	nz := make([]highs.Nonzero, 0, n*(n+1)/2)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := p.At(i, j)
			if j > i {
				v = (v + p.At(j, i)) / 2
			}
			if v != 0 {
				nz = append(nz, highs.Nonzero{Row: i, Col: j, Val: v})
			}
		}
	}
	return nz
}
