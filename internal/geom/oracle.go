package geom

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// ErrUnsupported is returned by oracles that do not implement one of the
// heavy geometry operations.
var ErrUnsupported = errors.New("geom: operation not supported by this oracle")

// Oracle supplies the geometry operations consumed but not implemented by
// the synthesis core: vertex enumeration, convex-hull construction and the
// Chebyshev ball. Implementations typically wrap an external computational
// geometry library or an optimization solver.
type Oracle interface {
	// Extreme enumerates the vertices of a bounded convex polytope,
	// one vertex per row.
	Extreme(p *Polytope) (*mat.Dense, error)

	// ConvexHull returns the smallest polytope containing the given
	// points (one point per row).
	ConvexHull(points *mat.Dense) (*Polytope, error)

	// ChebyshevBall returns the radius and center of the largest ball
	// inscribed in p.
	ChebyshevBall(p *Polytope) (float64, *mat.VecDense, error)
}
