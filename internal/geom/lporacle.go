package geom

import (
	"fmt"
	"math"

	highs "github.com/bartolsthoorn/gohighs/highs"
	"gonum.org/v1/gonum/mat"
)

// LPOracle computes the Chebyshev ball by linear programming with HiGHS:
//
//	maximize r  subject to  a_i' x + ||a_i|| r <= b_i,  r >= 0
//
// Vertex enumeration and convex-hull construction need a dedicated
// computational geometry backend and are reported as unsupported.
type LPOracle struct{}

func (LPOracle) ChebyshevBall(p *Polytope) (float64, *mat.VecDense, error) {
	if p == nil || p.IsUniverse() {
		return 0, nil, fmt.Errorf("geom: chebyshev ball of an unconstrained polytope")
	}
	rows, n := p.A.Dims()

	// Columns 0..n-1 are the center, column n is the radius.
	model := &highs.Model{Maximize: true}
	model.ColCosts = make([]float64, n+1)
	model.ColCosts[n] = 1
	model.ColLower = make([]float64, n+1)
	for j := 0; j < n; j++ {
		model.ColLower[j] = math.Inf(-1)
	}

	for i := 0; i < rows; i++ {
		coeffs := make([]float64, n+1)
		norm := 0.0
		for j := 0; j < n; j++ {
			v := p.A.At(i, j)
			coeffs[j] = v
			norm += v * v
		}
		coeffs[n] = math.Sqrt(norm)
		model.AddDenseRow(math.Inf(-1), coeffs, p.B.AtVec(i))
	}

	sol, err := model.Solve(highs.WithOutput(false))
	if err != nil {
		return 0, nil, fmt.Errorf("geom: chebyshev LP: %w", err)
	}
	if sol.Status != highs.ModelStatusOptimal {
		return 0, nil, fmt.Errorf("geom: chebyshev LP finished with status %v", sol.Status)
	}

	center := mat.NewVecDense(n, nil)
	for j := 0; j < n; j++ {
		center.SetVec(j, sol.ColValues[j])
	}
	return sol.ColValues[n], center, nil
}

func (LPOracle) Extreme(*Polytope) (*mat.Dense, error) {
	return nil, ErrUnsupported
}

func (LPOracle) ConvexHull(*mat.Dense) (*Polytope, error) {
	return nil, ErrUnsupported
}
