package synth

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// DefaultMidWeight is the terminal-centering weight applied when the
// caller supplies no cost parameters at all.
const DefaultMidWeight = 3.0

// CostParams are the quadratic-cost parameters of one synthesis call,
// minimizing x'Rx + 2r'x + u'Qu over the stacked trajectory, plus an
// optional terminal penalty MidWeight*|x(N)-xc|^2 centering the final
// state on the Chebyshev center xc of the chosen target piece.
//
// Nil entries default to zero. When every entry is absent (all matrices
// nil and MidWeight zero) the canonical defaults are used instead:
// Q = identity, R = 0, r = 0, MidWeight = DefaultMidWeight.
type CostParams struct {
	R         *mat.Dense    // N·n x N·n state cost
	Rlin      *mat.VecDense // N·n linear state cost (r)
	Q         *mat.Dense    // N·m x N·m input cost
	MidWeight float64
}

func (c CostParams) absent() bool {
	return c.R == nil && c.Rlin == nil && c.Q == nil && c.MidWeight == 0
}

// ScalarCost expands uniform per-step weights into full stacked cost
// parameters: stateWeight scales the state penalty, inputWeight the
// input penalty. The returned parameters are always explicit, never the
// absent set, so a zero weight stays zero instead of being replaced by
// the canonical defaults. Callers wanting the defaults pass an empty
// CostParams directly.
func ScalarCost(stateWeight, inputWeight, midWeight float64, horizon, n, m int) CostParams {
	r := mat.NewDense(horizon*n, horizon*n, nil)
	for i := 0; i < horizon*n; i++ {
		r.Set(i, i, stateWeight)
	}
	q := mat.NewDense(horizon*m, horizon*m, nil)
	for i := 0; i < horizon*m; i++ {
		q.Set(i, i, inputWeight)
	}
	return CostParams{R: r, Q: q, MidWeight: midWeight}
}

// resolveCost applies defaults and validates shapes against the horizon.
func resolveCost(c CostParams, horizon, n, m int) (CostParams, error) {
	N := horizon
	if c.absent() {
		c.Q = identity(N * m)
		c.MidWeight = DefaultMidWeight
	}
	if c.R == nil {
		c.R = mat.NewDense(N*n, N*n, nil)
	}
	if c.Q == nil {
		c.Q = mat.NewDense(N*m, N*m, nil)
	}
	if c.Rlin == nil {
		c.Rlin = mat.NewVecDense(N*n, nil)
	}

	if rr, rc := c.R.Dims(); rr != rc || rr != N*n {
		return c, fmt.Errorf("%w: R is %dx%d, want square of side N*dim(x) = %d", ErrDimension, rr, rc, N*n)
	}
	if qr, qc := c.Q.Dims(); qr != qc || qr != N*m {
		return c, fmt.Errorf("%w: Q is %dx%d, want square of side N*dim(u) = %d", ErrDimension, qr, qc, N*m)
	}
	if c.Rlin.Len() != N*n {
		return c, fmt.Errorf("%w: r has length %d, want N*dim(x) = %d", ErrDimension, c.Rlin.Len(), N*n)
	}
	return c, nil
}

// centerTerminal returns a copy of the cost parameters with the terminal
// centering folded in: MidWeight*I added to the last n x n block of R and
// -MidWeight*xc added to the last block of r. The input parameters are
// never mutated, so candidate target pieces cannot leak centering terms
// into each other.
func centerTerminal(c CostParams, xc *mat.VecDense, horizon, n int) CostParams {
	N := horizon
	r := mat.DenseCopyOf(c.R)
	rl := mat.VecDenseCopyOf(c.Rlin)

	for i := 0; i < n; i++ {
		at := (N-1)*n + i
		r.Set(at, at, r.At(at, at)+c.MidWeight)
		rl.SetVec(at, rl.AtVec(at)-c.MidWeight*xc.AtVec(i))
	}

	out := c
	out.R = r
	out.Rlin = rl
	return out
}

// buildObjective assembles the quadratic program's matrices from the
// lifted dynamics:
//
//	P = Q + C'RC
//	q = C'(R'*(AN*x0 + AK*Khat) + r)
//
// so that minimizing 0.5*u'Pu + q'u over the stacked input realizes the
// trajectory cost.
func buildObjective(lf *lifted, x0 mat.Vector, c CostParams) (*mat.Dense, *mat.VecDense) {
	stateRows, inputCols := lf.C.Dims()

	rc := mat.NewDense(stateRows, inputCols, nil)
	rc.Mul(c.R, lf.C)

	p := mat.NewDense(inputCols, inputCols, nil)
	p.Mul(lf.C.T(), rc)
	p.Add(p, c.Q)

	free := lf.freeResponse(x0)
	lin := mat.NewVecDense(stateRows, nil)
	lin.MulVec(c.R.T(), free)
	lin.AddVec(lin, c.Rlin)

	q := mat.NewVecDense(inputCols, nil)
	q.MulVec(lf.C.T(), lin)
	return p, q
}
