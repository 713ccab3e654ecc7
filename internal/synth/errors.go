package synth

import (
	"errors"
	"fmt"
)

// Domain errors for trajectory synthesis.
var (
	// ErrHorizon indicates a non-positive horizon length.
	ErrHorizon = errors.New("synth: horizon must be positive")

	// ErrDimension indicates cost matrices whose shape disagrees with
	// the horizon, state dimension or input dimension.
	ErrDimension = errors.New("synth: cost matrix shape disagrees with horizon")

	// ErrNoTransition indicates the partition's transition matrix marks
	// the requested start->end transition as infeasible.
	ErrNoTransition = errors.New("synth: no declared transition between cells")

	// ErrNoTrajectory indicates every candidate target piece was
	// infeasible.
	ErrNoTrajectory = errors.New("synth: no feasible trajectory found")

	// ErrNotConfigured indicates a collaborator (geometry oracle,
	// one-step solver) required by the requested mode is missing.
	ErrNotConfigured = errors.New("synth: required collaborator not configured")
)

// PieceError records why one candidate target piece was skipped. It is
// recoverable within a call: the solver moves on to the next piece.
type PieceError struct {
	Piece   int
	Wrapped error
}

func (e *PieceError) Error() string {
	return fmt.Sprintf("target piece %d: %v", e.Piece, e.Wrapped)
}

func (e *PieceError) Unwrap() error {
	return e.Wrapped
}
