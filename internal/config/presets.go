package config

// Presets are built-in scenarios usable without a config file.
var Presets = map[string]*Scenario{
	// One-dimensional integrator moving between two adjacent intervals.
	"line": {
		Name: "line",
		Dynamics: DynamicsConfig{
			A: [][]float64{{1}},
			B: [][]float64{{1}},
		},
		Partition: PartitionConfig{
			Regions: []RegionConfig{
				{Box: &BoxConfig{Lo: []float64{0}, Hi: []float64{2}}},
				{Box: &BoxConfig{Lo: []float64{2}, Hi: []float64{4}}},
			},
			Transitions: [][]int{{1, 0}, {1, 1}},
		},
		X0:           []float64{1},
		Start:        0,
		End:          1,
		Horizon:      2,
		Conservative: true,
	},
	// Planar double integrator crossing a two-cell corridor.
	"corridor": {
		Name: "corridor",
		Dynamics: DynamicsConfig{
			A: [][]float64{{1, 1}, {0, 1}},
			B: [][]float64{{0.5}, {1}},
		},
		Partition: PartitionConfig{
			Regions: []RegionConfig{
				{Box: &BoxConfig{Lo: []float64{0, -1}, Hi: []float64{2, 1}}},
				{Box: &BoxConfig{Lo: []float64{2, -1}, Hi: []float64{4, 1}}},
			},
			Transitions: [][]int{{1, 0}, {1, 1}},
		},
		X0:           []float64{0.5, 0},
		Start:        0,
		End:          1,
		Horizon:      6,
		Cost:         CostConfig{InputWeight: 1, MidWeight: mid(DefaultMidWeight)},
		Conservative: true,
	},
	// Drifting plant with an affine disturbance term to reject.
	"drift": {
		Name: "drift",
		Dynamics: DynamicsConfig{
			A: [][]float64{{1, 0.1}, {0, 0.95}},
			B: [][]float64{{0}, {0.1}},
			K: []float64{0.02, -0.01},
		},
		Partition: PartitionConfig{
			Regions: []RegionConfig{
				{Box: &BoxConfig{Lo: []float64{-1, -1}, Hi: []float64{1, 1}}},
				{Box: &BoxConfig{Lo: []float64{1, -1}, Hi: []float64{3, 1}}},
			},
			Transitions: [][]int{{1, 0}, {1, 1}},
		},
		X0:           []float64{0, 0},
		Start:        0,
		End:          1,
		Horizon:      10,
		Cost:         CostConfig{InputWeight: 0.5, MidWeight: mid(DefaultMidWeight)},
		Conservative: true,
	},
}

func mid(v float64) *float64 { return &v }

// GetPreset returns a copy of the named preset, or nil when no preset
// has that name. Callers may mutate the copy without affecting the
// shared table.
func GetPreset(name string) *Scenario {
	s, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *s
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
