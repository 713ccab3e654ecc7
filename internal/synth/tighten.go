package synth

import (
	"fmt"

	"github.com/san-kum/polyplan/internal/geom"
	"github.com/san-kum/polyplan/internal/lti"
)

// OneStepSolver is the external one-step-reachability predicate supplied
// by the abstraction layer. Feasible returns the tightened subset of from
// out of which to is reachable in a single step while remaining inside
// keepInside, accounting for whatever disturbance model the abstraction
// carries. It fails when no such subset exists.
type OneStepSolver interface {
	Feasible(from, to *geom.Polytope, sys *lti.System, keepInside *geom.Polytope) (*geom.Polytope, error)
}

// feasibleTube computes the closed-loop constraint tube for one candidate
// target piece: a sequence of N+1 sets, start-side polytope first and the
// target piece last, shrunk backward from the target so that reaching set
// i guarantees set i+1 stays one-step reachable.
func feasibleTube(sys *lti.System, horizon int, start, target *geom.Polytope, feas OneStepSolver) ([]*geom.Polytope, error) {
	tube := make([]*geom.Polytope, 0, horizon+1)
	tube = append(tube, target)

	cur := target
	for i := horizon - 1; i > 0; i-- {
		next, err := feas.Feasible(start, cur, sys, start)
		if err != nil {
			return nil, fmt.Errorf("tightening step %d: %w", i, err)
		}
		cur = next
		tube = append([]*geom.Polytope{cur}, tube...)
	}

	return append([]*geom.Polytope{start}, tube...), nil
}

// openTube is the open-loop counterpart: every intermediate step reuses
// the start-side polytope.
func openTube(horizon int, start, target *geom.Polytope) []*geom.Polytope {
	tube := make([]*geom.Polytope, 0, horizon+1)
	for i := 0; i < horizon; i++ {
		tube = append(tube, start)
	}
	return append(tube, target)
}
