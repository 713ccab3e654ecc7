package synth

import (
	"errors"
	"fmt"
	"log"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/polyplan/internal/geom"
	"github.com/san-kum/polyplan/internal/lti"
	"github.com/san-kum/polyplan/internal/partition"
	"github.com/san-kum/polyplan/internal/qp"
)

// Options are the independent mode axes of one synthesis call.
type Options struct {
	// Conservative constrains the intermediate trajectory to the convex
	// hull of the start region instead of the original pre-abstraction
	// cell.
	Conservative bool

	// ClosedLoop tightens the intermediate feasible sets backward from
	// the target instead of reusing the start region at every step.
	ClosedLoop bool

	// Verify forward-simulates the chosen input sequence and logs a
	// diagnostic when containment fails. It never changes the result.
	Verify bool
}

// Plan is the outcome of a successful synthesis call: the per-step input
// sequence (row k holds u(k)) and its cost, plus the index of the target
// piece that won the minimum-cost selection.
type Plan struct {
	U     *mat.Dense
	Cost  float64
	Piece int
}

// Inputs returns the input sequence as a row-per-step slice.
func (p *Plan) Inputs() [][]float64 {
	rows, cols := p.U.Dims()
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
		mat.Row(out[i], i, p.U)
	}
	return out
}

// Synthesizer computes finite-horizon input sequences over a polytopic
// partition. QP is required; Oracle is needed for terminal centering and
// multi-piece convex hulls; Feas is needed for closed-loop tightening.
type Synthesizer struct {
	QP     qp.Solver
	Oracle geom.Oracle
	Feas   OneStepSolver
	Log    *log.Logger
}

// New returns a synthesizer around the given quadratic-program solver.
func New(solver qp.Solver) *Synthesizer {
	return &Synthesizer{QP: solver}
}

func (s *Synthesizer) logf(format string, args ...any) {
	l := s.Log
	if l == nil {
		l = log.Default()
	}
	l.Printf(format, args...)
}

// SynthesizeInput computes the minimum-cost input sequence steering the
// plant from x0, inside cell start, into cell end within horizon steps,
// while respecting the mode flags in opts. It iterates over the convex
// pieces of the target region, skips infeasible pieces, and keeps the
// cheapest feasible trajectory.
func (s *Synthesizer) SynthesizeInput(
	x0 mat.Vector,
	sys *lti.System,
	part *partition.Partition,
	start, end, horizon int,
	cost CostParams,
	opts Options,
) (*Plan, error) {
	if horizon <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrHorizon, horizon)
	}
	if s.QP == nil {
		return nil, fmt.Errorf("%w: quadratic-program solver", ErrNotConfigured)
	}
	if err := part.CheckIndices(start, end); err != nil {
		return nil, err
	}
	n := sys.StateDim()
	m := sys.InputDim()
	if x0.Len() != n {
		return nil, fmt.Errorf("%w: x0 has length %d, want %d", ErrDimension, x0.Len(), n)
	}

	cost, err := resolveCost(cost, horizon, n, m)
	if err != nil {
		return nil, err
	}

	if part.HasTransMatrix() {
		if !part.TransitionDeclared(start, end) {
			return nil, fmt.Errorf("%w: %d -> %d", ErrNoTransition, start, end)
		}
	} else {
		s.logf("synth: no transition matrix attached, assuming %d -> %d is feasible", start, end)
	}

	conservative := opts.Conservative
	if !conservative && part.Orig == nil {
		s.logf("synth: original partition not available, falling back to conservative mode")
		conservative = true
	}
	if opts.ClosedLoop && s.Feas == nil {
		return nil, fmt.Errorf("%w: one-step feasibility solver (closed-loop mode)", ErrNotConfigured)
	}

	startPoly, err := s.resolveStartPolytope(part, start, conservative, n)
	if err != nil {
		return nil, err
	}

	pieces := part.Regions[end].Polys
	if len(pieces) == 0 {
		// Whole-space sentinel target: a single unconstrained piece.
		pieces = []*geom.Polytope{geom.Universe(n)}
	}

	lf := buildLifted(sys, horizon)

	var (
		best      *Plan
		bestPiece *geom.Polytope
		failures  []error
	)
	for i, piece := range pieces {
		plan, err := s.solvePiece(x0, sys, lf, startPoly, piece, horizon, cost, opts.ClosedLoop)
		if err != nil {
			var pe *PieceError
			if errors.As(err, &pe) {
				pe.Piece = i
				failures = append(failures, err)
				continue
			}
			return nil, err
		}
		plan.Piece = i
		if best == nil || plan.Cost < best.Cost {
			best = plan
			bestPiece = piece
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w: all %d target pieces infeasible: %v",
			ErrNoTrajectory, len(pieces), errors.Join(failures...))
	}

	if opts.Verify {
		if !IsSequenceInside(x0, best.U, sys, startPoly, bestPiece) {
			s.logf("synth: verification failed, computed sequence leaves the prescribed regions")
		}
	}
	return best, nil
}

// solvePiece runs the full assembly and one solver invocation for a single
// candidate target piece. Recoverable failures come back as *PieceError.
func (s *Synthesizer) solvePiece(
	x0 mat.Vector,
	sys *lti.System,
	lf *lifted,
	startPoly, piece *geom.Polytope,
	horizon int,
	cost CostParams,
	closedLoop bool,
) (*Plan, error) {
	n := sys.StateDim()
	m := sys.InputDim()

	// Terminal centering toward the piece's Chebyshev center, on a local
	// copy of the cost so candidates stay independent.
	if cost.MidWeight > 0 && !piece.IsUniverse() {
		if s.Oracle == nil {
			return nil, fmt.Errorf("%w: geometry oracle (terminal centering)", ErrNotConfigured)
		}
		_, xc, err := s.Oracle.ChebyshevBall(piece)
		if err != nil {
			return nil, &PieceError{Wrapped: fmt.Errorf("chebyshev center: %w", err)}
		}
		cost = centerTerminal(cost, xc, horizon, n)
	}

	var tube []*geom.Polytope
	if closedLoop {
		var err error
		tube, err = feasibleTube(sys, horizon, startPoly, piece, s.Feas)
		if err != nil {
			return nil, &PieceError{Wrapped: err}
		}
	} else {
		tube = openTube(horizon, startPoly, piece)
	}

	g, h, err := stackConstraints(sys, horizon, tube, x0, lf)
	if err != nil {
		return nil, err
	}
	p, q := buildObjective(lf, x0, cost)

	sol, err := s.QP.Solve(p, q, g, h)
	if err != nil {
		return nil, fmt.Errorf("synth: solver: %w", err)
	}
	if sol.Status != qp.StatusOptimal {
		return nil, &PieceError{Wrapped: fmt.Errorf("solver finished with status %s", sol.Status)}
	}

	u := mat.NewDense(horizon, m, nil)
	for k := 0; k < horizon; k++ {
		for j := 0; j < m; j++ {
			u.Set(k, j, sol.X.AtVec(k*m+j))
		}
	}
	return &Plan{U: u, Cost: sol.Cost}, nil
}

// resolveStartPolytope picks the single convex polytope that constrains
// the intermediate trajectory. In conservative mode this is the convex
// hull of the start region's pieces (a single piece is used unchanged);
// otherwise it is the original pre-abstraction cell the start region was
// refined from.
func (s *Synthesizer) resolveStartPolytope(part *partition.Partition, start int, conservative bool, n int) (*geom.Polytope, error) {
	region := part.Regions[start]
	if !conservative {
		orig, err := part.OrigRegion(start)
		if err != nil {
			return nil, err
		}
		region = orig
	}

	switch len(region.Polys) {
	case 0:
		return geom.Universe(n), nil
	case 1:
		return region.Polys[0], nil
	}

	if s.Oracle == nil {
		return nil, fmt.Errorf("%w: geometry oracle (convex hull of %d start pieces)", ErrNotConfigured, len(region.Polys))
	}
	var verts *mat.Dense
	for _, p := range region.Polys {
		v, err := s.Oracle.Extreme(p)
		if err != nil {
			return nil, fmt.Errorf("synth: extreme points: %w", err)
		}
		if verts == nil {
			verts = v
			continue
		}
		vr, _ := verts.Dims()
		nr, nc := v.Dims()
		grown := mat.NewDense(vr+nr, nc, nil)
		grown.Slice(0, vr, 0, nc).(*mat.Dense).Copy(verts)
		grown.Slice(vr, vr+nr, 0, nc).(*mat.Dense).Copy(v)
		verts = grown
	}
	hull, err := s.Oracle.ConvexHull(verts)
	if err != nil {
		return nil, fmt.Errorf("synth: convex hull: %w", err)
	}
	return hull, nil
}

// PredictTrajectory replays the disturbance-free dynamics under the
// planned inputs and returns the state sequence x(0)..x(N), one state per
// row. Used for plotting and persistence, not for verification.
func PredictTrajectory(x0 mat.Vector, u *mat.Dense, sys *lti.System) (*mat.Dense, error) {
	steps, _ := u.Dims()
	n := sys.StateDim()
	m := sys.InputDim()

	out := mat.NewDense(steps+1, n, nil)
	x := mat.VecDenseCopyOf(x0)
	for j := 0; j < n; j++ {
		out.Set(0, j, x.AtVec(j))
	}
	row := make([]float64, m)
	for k := 0; k < steps; k++ {
		mat.Row(row, k, u)
		next, err := sys.Propagate(x, mat.NewVecDense(m, row))
		if err != nil {
			return nil, err
		}
		x = next
		for j := 0; j < n; j++ {
			out.Set(k+1, j, x.AtVec(j))
		}
	}
	return out, nil
}
