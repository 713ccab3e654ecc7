package store

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoad(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta := RunMetadata{
		Scenario:     "corridor",
		Start:        0,
		End:          1,
		Horizon:      2,
		Cost:         3.5,
		Piece:        0,
		Conservative: true,
	}
	states := [][]float64{{1, 0}, {1.5, 0.25}, {2.1, 0.5}}
	inputs := [][]float64{{0.25}, {0.25}}

	runID, err := s.Save(meta, states, inputs)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	loaded, err := s.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Scenario != "corridor" || loaded.Horizon != 2 {
		t.Errorf("metadata mismatch: %+v", loaded)
	}
	if loaded.Cost != 3.5 {
		t.Errorf("cost = %f, want 3.5", loaded.Cost)
	}
	if loaded.ID != runID {
		t.Errorf("id = %q, want %q", loaded.ID, runID)
	}
}

func TestLoadTrajectory(t *testing.T) {
	s := New(t.TempDir())
	if err := s.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	states := [][]float64{{1, 0}, {1.5, 0.25}, {2.1, 0.5}}
	inputs := [][]float64{{0.25}, {-0.5}}
	runID, err := s.Save(RunMetadata{Scenario: "line"}, states, inputs)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	gotStates, gotInputs, err := s.LoadTrajectory(runID)
	if err != nil {
		t.Fatalf("load trajectory failed: %v", err)
	}
	if len(gotStates) != 3 {
		t.Fatalf("expected 3 state rows, got %d", len(gotStates))
	}
	if len(gotStates[0]) != 2 || len(gotInputs[0]) != 1 {
		t.Errorf("widths = (%d, %d), want (2, 1)", len(gotStates[0]), len(gotInputs[0]))
	}
	if gotStates[1][0] != 1.5 {
		t.Errorf("x(1)[0] = %f, want 1.5", gotStates[1][0])
	}
	if gotInputs[1][0] != -0.5 {
		t.Errorf("u(1) = %f, want -0.5", gotInputs[1][0])
	}
	// Terminal row carries zero-padded inputs.
	if gotInputs[2][0] != 0 {
		t.Errorf("terminal input = %f, want 0", gotInputs[2][0])
	}
}

func TestList(t *testing.T) {
	s := New(t.TempDir())

	runs, err := s.List()
	if err != nil {
		t.Fatalf("list on missing dir failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	if err := s.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}
	if _, err := s.Save(RunMetadata{Scenario: "a"}, nil, nil); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runs, err = s.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("expected 1 run, got %d", len(runs))
	}
}

func TestFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	s := New(tmpDir)
	if err := s.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runID, err := s.Save(RunMetadata{Scenario: "x"}, [][]float64{{1}}, nil)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	if _, err := os.Stat(filepath.Join(runDir, "metadata.json")); os.IsNotExist(err) {
		t.Error("metadata.json not created")
	}
	if _, err := os.Stat(filepath.Join(runDir, "trajectory.csv")); os.IsNotExist(err) {
		t.Error("trajectory.csv not created")
	}
}

func TestLoadMissingRun(t *testing.T) {
	s := New(t.TempDir())
	if _, err := s.Load("nope"); err == nil {
		t.Error("expected error for missing run")
	}
}
