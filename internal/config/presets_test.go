package config

import "testing"

func TestPresetsBuild(t *testing.T) {
	for name, scn := range Presets {
		t.Run(name, func(t *testing.T) {
			sys, err := scn.System()
			if err != nil {
				t.Fatalf("System failed: %v", err)
			}
			part, err := scn.BuildPartition()
			if err != nil {
				t.Fatalf("BuildPartition failed: %v", err)
			}
			x0, err := scn.InitialState()
			if err != nil {
				t.Fatalf("InitialState failed: %v", err)
			}
			if x0.Len() != sys.StateDim() {
				t.Errorf("x0 length %d does not match state dim %d", x0.Len(), sys.StateDim())
			}
			if scn.Start >= part.NumRegions() || scn.End >= part.NumRegions() {
				t.Errorf("endpoints (%d, %d) out of range for %d regions",
					scn.Start, scn.End, part.NumRegions())
			}
			if scn.Horizon < 1 {
				t.Errorf("horizon = %d, want >= 1", scn.Horizon)
			}
		})
	}
}

func TestGetPreset(t *testing.T) {
	if GetPreset("line") == nil {
		t.Error("line preset should exist")
	}
	if GetPreset("nope") != nil {
		t.Error("unknown preset should return nil")
	}
}

func TestGetPresetReturnsCopy(t *testing.T) {
	first := GetPreset("line")
	first.Horizon = 99
	first.ClosedLoop = true

	second := GetPreset("line")
	if second.Horizon == 99 || second.ClosedLoop {
		t.Errorf("preset table mutated through a returned scenario: %+v", second)
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Errorf("listed %d presets, want %d", len(names), len(Presets))
	}
}
