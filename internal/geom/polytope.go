package geom

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// containTol absorbs floating-point noise when testing half-space
// membership, so a point sitting exactly on a facet counts as inside.
const containTol = 1e-9

// Polytope is a convex region in half-space representation,
//
//	{ x : A x <= B }
//
// A polytope with no constraint rows is the whole-space sentinel used
// for unconstrained steps and empty target regions; it keeps only its
// ambient dimension.
type Polytope struct {
	A *mat.Dense
	B *mat.VecDense

	dim int
}

// NewPolytope validates that A and B agree on the number of rows.
func NewPolytope(a *mat.Dense, b *mat.VecDense) (*Polytope, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("geom: polytope needs both A and B")
	}
	r, _ := a.Dims()
	if b.Len() != r {
		return nil, fmt.Errorf("geom: A has %d rows but B has length %d", r, b.Len())
	}
	return &Polytope{A: a, B: b}, nil
}

// Universe returns the whole-space sentinel in dim dimensions.
func Universe(dim int) *Polytope {
	return &Polytope{dim: dim}
}

// NumRows returns the number of half-space constraints.
func (p *Polytope) NumRows() int {
	if p == nil || p.A == nil {
		return 0
	}
	r, _ := p.A.Dims()
	return r
}

// Dim returns the ambient dimension.
func (p *Polytope) Dim() int {
	if p == nil {
		return 0
	}
	if p.A == nil {
		return p.dim
	}
	_, c := p.A.Dims()
	return c
}

// IsUniverse reports whether the polytope carries no constraints.
func (p *Polytope) IsUniverse() bool {
	return p.NumRows() == 0
}

// Contains reports whether x satisfies every half-space constraint, with a
// small tolerance on each row.
func (p *Polytope) Contains(x mat.Vector) bool {
	if p.IsUniverse() {
		return true
	}
	r, c := p.A.Dims()
	if x.Len() != c {
		return false
	}
	for i := 0; i < r; i++ {
		lhs := 0.0
		for j := 0; j < c; j++ {
			lhs += p.A.At(i, j) * x.AtVec(j)
		}
		if lhs > p.B.AtVec(i)+containTol {
			return false
		}
	}
	return true
}

// Box returns the axis-aligned polytope lo <= x <= hi.
func Box(lo, hi []float64) (*Polytope, error) {
	if len(lo) != len(hi) {
		return nil, fmt.Errorf("geom: box bounds have lengths %d and %d", len(lo), len(hi))
	}
	n := len(lo)
	a := mat.NewDense(2*n, n, nil)
	b := mat.NewVecDense(2*n, nil)
	for i := 0; i < n; i++ {
		if lo[i] > hi[i] {
			return nil, fmt.Errorf("geom: box lower bound %f above upper bound %f", lo[i], hi[i])
		}
		a.Set(2*i, i, 1)
		b.SetVec(2*i, hi[i])
		a.Set(2*i+1, i, -1)
		b.SetVec(2*i+1, -lo[i])
	}
	return &Polytope{A: a, B: b}, nil
}
