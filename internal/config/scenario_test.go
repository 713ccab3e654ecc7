package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleScenario = `
name: corridor
dynamics:
  a: [[1, 1], [0, 1]]
  b: [[0], [1]]
  k: [0, 0.1]
x0: [0.5, 0]
start: 0
end: 1
horizon: 5
closed_loop: false
conservative: true
cost:
  input_weight: 1
  mid_weight: 2
partition:
  regions:
    - box: {lo: [0, -1], hi: [2, 1]}
    - box: {lo: [2, -1], hi: [4, 1]}
  transitions:
    - [1, 0]
    - [1, 1]
`

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadScenario(t *testing.T) {
	s, err := Load(writeScenario(t, sampleScenario))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if s.Name != "corridor" {
		t.Errorf("name = %q, want corridor", s.Name)
	}
	if s.Horizon != 5 {
		t.Errorf("horizon = %d, want 5", s.Horizon)
	}
	if s.Cost.MidWeight == nil || *s.Cost.MidWeight != 2 {
		t.Errorf("mid_weight = %v, want 2", s.Cost.MidWeight)
	}

	sys, err := s.System()
	if err != nil {
		t.Fatalf("System failed: %v", err)
	}
	if sys.StateDim() != 2 || sys.InputDim() != 1 {
		t.Errorf("dims = (%d, %d), want (2, 1)", sys.StateDim(), sys.InputDim())
	}

	part, err := s.BuildPartition()
	if err != nil {
		t.Fatalf("BuildPartition failed: %v", err)
	}
	if part.NumRegions() != 2 {
		t.Errorf("regions = %d, want 2", part.NumRegions())
	}
	if !part.HasTransMatrix() {
		t.Error("transition matrix should be attached")
	}
	if !part.TransitionDeclared(0, 1) {
		t.Error("0 -> 1 should be declared")
	}

	x0, err := s.InitialState()
	if err != nil {
		t.Fatalf("InitialState failed: %v", err)
	}
	if x0.Len() != 2 {
		t.Errorf("x0 length = %d, want 2", x0.Len())
	}
}

func TestLoadDefaults(t *testing.T) {
	s, err := Load(writeScenario(t, "name: bare\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Horizon != DefaultHorizon {
		t.Errorf("horizon = %d, want default %d", s.Horizon, DefaultHorizon)
	}
	if !s.Conservative {
		t.Error("conservative should default to true")
	}
	if s.Cost.Set() {
		t.Errorf("cost = %+v, want unset so core defaults apply", s.Cost)
	}
}

func TestCostMidWeightOnly(t *testing.T) {
	s, err := Load(writeScenario(t, "name: centered\ncost:\n  mid_weight: 5\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !s.Cost.Set() {
		t.Fatal("a lone mid_weight must mark the cost block as supplied")
	}
	if got := s.Cost.Mid(); got != 5 {
		t.Errorf("mid weight = %f, want 5", got)
	}
}

func TestCostExplicitZeroMidWeight(t *testing.T) {
	s, err := Load(writeScenario(t, "name: flat\ncost:\n  mid_weight: 0\n"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !s.Cost.Set() {
		t.Fatal("an explicit zero mid_weight must mark the cost block as supplied")
	}
	if got := s.Cost.Mid(); got != 0 {
		t.Errorf("mid weight = %f, want 0", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRaggedMatrixRejected(t *testing.T) {
	s := DefaultScenario()
	s.Dynamics.A = [][]float64{{1, 0}, {1}}
	s.Dynamics.B = [][]float64{{1}, {1}}
	if _, err := s.System(); err == nil {
		t.Error("expected error for ragged matrix")
	}
}

func TestExplicitPolytopeRegion(t *testing.T) {
	s := DefaultScenario()
	s.Partition.Regions = []RegionConfig{
		{Polytopes: []PolytopeConfig{{
			A: [][]float64{{1}, {-1}},
			B: []float64{2, 0},
		}}},
	}
	part, err := s.BuildPartition()
	if err != nil {
		t.Fatalf("BuildPartition failed: %v", err)
	}
	if got := len(part.Regions[0].Polys); got != 1 {
		t.Errorf("pieces = %d, want 1", got)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	s, err := Load(writeScenario(t, sampleScenario))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := Save(path, s); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if back.Name != s.Name || back.Horizon != s.Horizon {
		t.Errorf("round trip changed scenario: %+v vs %+v", back, s)
	}
}
