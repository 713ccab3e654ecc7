package lti

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// System is a discrete-time linear time-invariant plant
//
//	x(t+1) = A x(t) + B u(t) + K
//
// where A is the n x n state-transition matrix, B the n x m input matrix
// and K an optional n-vector affine offset (nil means zero). The matrices
// are owned by the caller and must not change for the duration of a
// synthesis call.
type System struct {
	A *mat.Dense
	B *mat.Dense
	K *mat.VecDense
}

// NewSystem validates the matrix dimensions and returns the system.
// K may be nil.
func NewSystem(a, b *mat.Dense, k *mat.VecDense) (*System, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("lti: A and B must be defined")
	}
	ar, ac := a.Dims()
	if ar != ac {
		return nil, fmt.Errorf("lti: A must be square, got %dx%d", ar, ac)
	}
	br, _ := b.Dims()
	if br != ar {
		return nil, fmt.Errorf("lti: B must have %d rows to match A, got %d", ar, br)
	}
	if k != nil && k.Len() != ar {
		return nil, fmt.Errorf("lti: K must have length %d to match A, got %d", ar, k.Len())
	}
	return &System{A: a, B: b, K: k}, nil
}

// StateDim returns n, the dimension of the state space.
func (s *System) StateDim() int {
	n, _ := s.A.Dims()
	return n
}

// InputDim returns m, the dimension of the input space.
func (s *System) InputDim() int {
	_, m := s.B.Dims()
	return m
}

// Offset returns K as a dense vector, materializing the zero vector when
// K is nil.
func (s *System) Offset() *mat.VecDense {
	if s.K != nil {
		return s.K
	}
	return mat.NewVecDense(s.StateDim(), nil)
}

// Propagate applies one disturbance-free update A*x + B*u + K.
func (s *System) Propagate(x, u mat.Vector) (*mat.VecDense, error) {
	n := s.StateDim()
	if x.Len() != n {
		return nil, fmt.Errorf("lti: state has length %d, want %d", x.Len(), n)
	}
	if u.Len() != s.InputDim() {
		return nil, fmt.Errorf("lti: input has length %d, want %d", u.Len(), s.InputDim())
	}
	next := mat.NewVecDense(n, nil)
	next.MulVec(s.A, x)
	bu := mat.NewVecDense(n, nil)
	bu.MulVec(s.B, u)
	next.AddVec(next, bu)
	if s.K != nil {
		next.AddVec(next, s.K)
	}
	return next, nil
}
