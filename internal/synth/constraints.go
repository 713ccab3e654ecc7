package synth

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/polyplan/internal/geom"
	"github.com/san-kum/polyplan/internal/lti"
)

// stackConstraints assembles the inequality system G*u_stack <= h that
// keeps x(k) inside polys[k] for k = 1..N, with x(0) = x0 already
// substituted. polys has N+1 entries, one region per time step including
// the initial one; the k = 0 block is always satisfied by construction and
// is never emitted. Universe entries contribute no rows.
//
// Returns nil matrices when the whole tube is unconstrained.
func stackConstraints(sys *lti.System, horizon int, polys []*geom.Polytope, x0 mat.Vector, lf *lifted) (*mat.Dense, *mat.VecDense, error) {
	n := sys.StateDim()
	m := sys.InputDim()
	N := horizon

	if len(polys) != N+1 {
		return nil, nil, fmt.Errorf("synth: constraint tube has %d entries, want %d", len(polys), N+1)
	}

	rows := 0
	for k := 1; k <= N; k++ {
		if polys[k] != nil {
			rows += polys[k].NumRows()
		}
	}
	if rows == 0 {
		return nil, nil, nil
	}

	free := lf.freeResponse(x0)

	g := mat.NewDense(rows, N*m, nil)
	h := mat.NewVecDense(rows, nil)

	at := 0
	for k := 1; k <= N; k++ {
		p := polys[k]
		if p == nil || p.IsUniverse() {
			continue
		}
		if p.Dim() != n {
			return nil, nil, fmt.Errorf("synth: step %d polytope lives in dimension %d, want %d", k, p.Dim(), n)
		}
		pr := p.NumRows()

		// x(k) is row block k-1 of the lifted trajectory.
		cBlock := lf.C.Slice((k-1)*n, k*n, 0, N*m)
		g.Slice(at, at+pr, 0, N*m).(*mat.Dense).Mul(p.A, cBlock)

		freeBlock := free.SliceVec((k-1)*n, k*n)
		offset := mat.NewVecDense(pr, nil)
		offset.MulVec(p.A, freeBlock)
		for i := 0; i < pr; i++ {
			h.SetVec(at+i, p.B.AtVec(i)-offset.AtVec(i))
		}
		at += pr
	}

	return g, h, nil
}
