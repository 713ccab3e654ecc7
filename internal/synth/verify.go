package synth

import (
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/polyplan/internal/geom"
	"github.com/san-kum/polyplan/internal/lti"
)

// IsSequenceInside replays the exact state update x(t+1) = A x(t) + B u(t) + K
// under the given input sequence and checks that x(1)..x(N-1) stay inside
// inner and x(N) lands in terminal. No random disturbance is simulated;
// this is a conservative sanity check on a computed plan, not a proof.
func IsSequenceInside(x0 mat.Vector, u *mat.Dense, sys *lti.System, inner, terminal *geom.Polytope) bool {
	steps, m := u.Dims()
	if steps == 0 {
		return false
	}

	inside := true
	x := mat.VecDenseCopyOf(x0)
	row := make([]float64, m)

	for k := 0; k < steps-1; k++ {
		mat.Row(row, k, u)
		next, err := sys.Propagate(x, mat.NewVecDense(m, row))
		if err != nil {
			return false
		}
		x = next
		if !inner.Contains(x) {
			inside = false
		}
	}

	mat.Row(row, steps-1, u)
	final, err := sys.Propagate(x, mat.NewVecDense(m, row))
	if err != nil {
		return false
	}
	if !terminal.Contains(final) {
		inside = false
	}
	return inside
}
