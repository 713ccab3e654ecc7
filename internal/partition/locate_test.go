package partition

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/polyplan/internal/geom"
)

func interval(lo, hi float64) *geom.Polytope {
	p, err := geom.Box([]float64{lo}, []float64{hi})
	if err != nil {
		panic(err)
	}
	return p
}

func twoCellLine() *Partition {
	return &Partition{
		Regions: []Region{
			{Polys: []*geom.Polytope{interval(0, 2)}},
			{Polys: []*geom.Polytope{interval(2, 4)}},
		},
	}
}

func TestLocate(t *testing.T) {
	part := twoCellLine()

	tests := []struct {
		name string
		x    float64
		want int
	}{
		{"first cell interior", 1, 0},
		{"second cell interior", 3, 1},
		{"left edge", 0, 0},
		{"right edge", 4, 1},
		{"outside", 5, CellNotFound},
		{"outside negative", -1, CellNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Locate(mat.NewVecDense(1, []float64{tt.x}), part)
			if got != tt.want {
				t.Errorf("Locate(%v) = %d, want %d", tt.x, got, tt.want)
			}
		})
	}
}

func TestLocateSharedBoundaryDeterministic(t *testing.T) {
	part := twoCellLine()
	x := mat.NewVecDense(1, []float64{2})

	first := Locate(x, part)
	if first == CellNotFound {
		t.Fatal("boundary point must resolve to a cell")
	}
	// Lowest index wins on the shared facet, and repeated queries agree.
	if first != 0 {
		t.Errorf("boundary resolved to %d, want lowest index 0", first)
	}
	for i := 0; i < 10; i++ {
		if got := Locate(x, part); got != first {
			t.Fatalf("repeated Locate returned %d, want %d", got, first)
		}
	}
}

func TestLocateOverlapFirstMatchWins(t *testing.T) {
	part := &Partition{
		Regions: []Region{
			{Polys: []*geom.Polytope{interval(0, 3)}},
			{Polys: []*geom.Polytope{interval(1, 4)}},
		},
	}
	if got := Locate(mat.NewVecDense(1, []float64{2}), part); got != 0 {
		t.Errorf("overlap resolved to %d, want 0", got)
	}
}

func TestLocateSkipsSentinelRegions(t *testing.T) {
	part := &Partition{
		Regions: []Region{
			{}, // whole-space sentinel
			{Polys: []*geom.Polytope{interval(0, 1)}},
		},
	}
	if got := Locate(mat.NewVecDense(1, []float64{0.5}), part); got != 1 {
		t.Errorf("Locate = %d, want 1 (sentinel skipped)", got)
	}
}

func TestPartitionValidate(t *testing.T) {
	part := twoCellLine()
	if err := part.Validate(); err != nil {
		t.Fatalf("valid partition rejected: %v", err)
	}

	part.Trans = [][]int{{0, 1}}
	if err := part.Validate(); err == nil {
		t.Error("expected error for short transition matrix")
	}

	part.Trans = [][]int{{0, 1}, {1, 0}}
	if err := part.Validate(); err != nil {
		t.Errorf("square transition matrix rejected: %v", err)
	}

	part.Orig = []int{0}
	if err := part.Validate(); err == nil {
		t.Error("expected error for short orig map")
	}

	part.Orig = []int{0, 1}
	part.OrigRegions = []Region{{Polys: []*geom.Polytope{interval(0, 4)}}}
	if err := part.Validate(); err == nil {
		t.Error("expected error for orig index outside original partition")
	}
}

func TestTransitionDeclared(t *testing.T) {
	part := twoCellLine()
	part.Trans = [][]int{
		{1, 0},
		{1, 0},
	}
	// Trans[end][start]: transitions 0->0 and 0->1 declared, nothing from 1.
	if !part.TransitionDeclared(0, 1) {
		t.Error("0->1 should be declared")
	}
	if part.TransitionDeclared(1, 0) {
		t.Error("1->0 should not be declared")
	}
}
