package lti

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNewSystemDims(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 0.1, 0, 1})
	b := mat.NewDense(2, 1, []float64{0, 0.1})

	tests := []struct {
		name    string
		a, b    *mat.Dense
		k       *mat.VecDense
		wantErr bool
	}{
		{"valid", a, b, nil, false},
		{"valid with offset", a, b, mat.NewVecDense(2, []float64{0.1, 0}), false},
		{"nil A", nil, b, nil, true},
		{"non-square A", mat.NewDense(2, 3, nil), b, nil, true},
		{"B row mismatch", a, mat.NewDense(3, 1, nil), nil, true},
		{"K length mismatch", a, b, mat.NewVecDense(3, nil), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSystem(tt.a, tt.b, tt.k)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewSystem error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPropagate(t *testing.T) {
	// Double integrator with unit offset on the velocity.
	a := mat.NewDense(2, 2, []float64{1, 1, 0, 1})
	b := mat.NewDense(2, 1, []float64{0, 1})
	k := mat.NewVecDense(2, []float64{0, 0.5})

	sys, err := NewSystem(a, b, k)
	if err != nil {
		t.Fatalf("NewSystem failed: %v", err)
	}

	x := mat.NewVecDense(2, []float64{1, 2})
	u := mat.NewVecDense(1, []float64{0.25})

	next, err := sys.Propagate(x, u)
	if err != nil {
		t.Fatalf("Propagate failed: %v", err)
	}

	want := []float64{3, 2.75}
	for i, w := range want {
		if math.Abs(next.AtVec(i)-w) > 1e-12 {
			t.Errorf("next[%d] = %f, want %f", i, next.AtVec(i), w)
		}
	}
}

func TestPropagateDimMismatch(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	b := mat.NewDense(2, 1, []float64{0, 1})
	sys, _ := NewSystem(a, b, nil)

	if _, err := sys.Propagate(mat.NewVecDense(3, nil), mat.NewVecDense(1, nil)); err == nil {
		t.Error("expected error for bad state length")
	}
	if _, err := sys.Propagate(mat.NewVecDense(2, nil), mat.NewVecDense(2, nil)); err == nil {
		t.Error("expected error for bad input length")
	}
}

func TestOffsetZeroWhenNil(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 0, 0, 1})
	b := mat.NewDense(2, 1, []float64{0, 1})
	sys, _ := NewSystem(a, b, nil)

	k := sys.Offset()
	if k.Len() != 2 || k.AtVec(0) != 0 || k.AtVec(1) != 0 {
		t.Errorf("Offset() = %v, want zero 2-vector", k.RawVector().Data)
	}
}
