package qp

import (
	"math"
	"testing"

	highs "github.com/bartolsthoorn/gohighs/highs"
	"gonum.org/v1/gonum/mat"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		st   Status
		want string
	}{
		{StatusOptimal, "optimal"},
		{StatusInfeasible, "infeasible"},
		{StatusUnbounded, "unbounded"},
		{StatusUnknown, "unknown"},
		{Status(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.st.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", tt.st, got, tt.want)
		}
	}
}

func TestObjective(t *testing.T) {
	p := mat.NewDense(2, 2, []float64{2, 0, 0, 4})
	q := mat.NewVecDense(2, []float64{1, -1})
	u := mat.NewVecDense(2, []float64{3, 2})

	// 0.5*(2*9 + 4*4) + (3 - 2) = 17 + 1
	if got := Objective(p, q, u); math.Abs(got-18) > 1e-12 {
		t.Errorf("Objective = %f, want 18", got)
	}
}

func TestHessianNonzerosSymmetric(t *testing.T) {
	p := mat.NewDense(2, 2, []float64{4, 3, 3, 4})
	nz := HessianNonzeros(p)

	want := []highs.Nonzero{
		{Row: 0, Col: 0, Val: 4},
		{Row: 0, Col: 1, Val: 3},
		{Row: 1, Col: 1, Val: 4},
	}
	if len(nz) != len(want) {
		t.Fatalf("got %d nonzeros, want %d", len(nz), len(want))
	}
	for i, w := range want {
		if nz[i] != w {
			t.Errorf("nonzero %d = %+v, want %+v", i, nz[i], w)
		}
	}
}

func TestHessianNonzerosFoldsAsymmetry(t *testing.T) {
	// u'Pu for this P equals u'Su with S_01 = (1+5)/2.
	p := mat.NewDense(2, 2, []float64{2, 1, 5, 2})
	nz := HessianNonzeros(p)

	for _, e := range nz {
		if e.Row == 0 && e.Col == 1 && e.Val != 3 {
			t.Errorf("off-diagonal = %f, want symmetric fold 3", e.Val)
		}
	}
}

func TestHessianNonzerosSkipsZeros(t *testing.T) {
	p := mat.NewDense(3, 3, []float64{
		1, 0, 0,
		0, 0, 0,
		0, 0, 2,
	})
	nz := HessianNonzeros(p)
	if len(nz) != 2 {
		t.Errorf("got %d nonzeros, want 2", len(nz))
	}
}
