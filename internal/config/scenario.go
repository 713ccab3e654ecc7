package config

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/polyplan/internal/geom"
	"github.com/san-kum/polyplan/internal/lti"
	"github.com/san-kum/polyplan/internal/partition"
)

const (
	DefaultHorizon   = 10
	DefaultMidWeight = 3.0
)

// Scenario is one synthesis problem: plant, partition, endpoints and cost
// weights, loadable from YAML.
type Scenario struct {
	Name         string          `yaml:"name"`
	Dynamics     DynamicsConfig  `yaml:"dynamics"`
	Partition    PartitionConfig `yaml:"partition"`
	X0           []float64       `yaml:"x0"`
	Start        int             `yaml:"start"`
	End          int             `yaml:"end"`
	Horizon      int             `yaml:"horizon"`
	Cost         CostConfig      `yaml:"cost"`
	Conservative bool            `yaml:"conservative"`
	ClosedLoop   bool            `yaml:"closed_loop"`
}

type DynamicsConfig struct {
	A [][]float64 `yaml:"a"`
	B [][]float64 `yaml:"b"`
	K []float64   `yaml:"k"`
}

type PolytopeConfig struct {
	A [][]float64 `yaml:"a"`
	B []float64   `yaml:"b"`
}

type RegionConfig struct {
	Polytopes []PolytopeConfig `yaml:"polytopes"`
	// Box is a shorthand for a single axis-aligned piece.
	Box *BoxConfig `yaml:"box"`
}

type BoxConfig struct {
	Lo []float64 `yaml:"lo"`
	Hi []float64 `yaml:"hi"`
}

type PartitionConfig struct {
	Regions     []RegionConfig `yaml:"regions"`
	Transitions [][]int        `yaml:"transitions"`
	Orig        []int          `yaml:"orig"`
	OrigRegions []RegionConfig `yaml:"orig_regions"`
}

// CostConfig carries scalar weights; the synthesis core expands them to
// the full stacked matrices. Leaving every field unset means "use the
// core's defaults". MidWeight is a pointer so that an explicit zero in
// the file is distinguishable from an absent field and can disable
// terminal centering.
type CostConfig struct {
	StateWeight float64  `yaml:"state_weight"`
	InputWeight float64  `yaml:"input_weight"`
	MidWeight   *float64 `yaml:"mid_weight"`
}

// Set reports whether any cost field was supplied.
func (c CostConfig) Set() bool {
	return c.StateWeight != 0 || c.InputWeight != 0 || c.MidWeight != nil
}

// Mid returns the terminal centering weight, zero when unset.
func (c CostConfig) Mid() float64 {
	if c.MidWeight == nil {
		return 0
	}
	return *c.MidWeight
}

// DefaultScenario returns an empty scenario with the default horizon
// filled in. The cost block stays unset so the synthesis core's own
// defaults apply unless the file names weights.
func DefaultScenario() *Scenario {
	return &Scenario{
		Horizon:      DefaultHorizon,
		Conservative: true,
	}
}

// Load reads a scenario file, applying defaults for absent fields.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := DefaultScenario()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return s, nil
}

// Save writes the scenario as YAML.
func Save(path string, s *Scenario) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// System builds the LTI plant from the dynamics block.
func (s *Scenario) System() (*lti.System, error) {
	a, err := denseOf("dynamics.a", s.Dynamics.A)
	if err != nil {
		return nil, err
	}
	b, err := denseOf("dynamics.b", s.Dynamics.B)
	if err != nil {
		return nil, err
	}
	var k *mat.VecDense
	if len(s.Dynamics.K) > 0 {
		k = mat.NewVecDense(len(s.Dynamics.K), s.Dynamics.K)
	}
	return lti.NewSystem(a, b, k)
}

// BuildPartition materializes the polytopic partition.
func (s *Scenario) BuildPartition() (*partition.Partition, error) {
	regions, err := buildRegions(s.Partition.Regions)
	if err != nil {
		return nil, err
	}
	part := &partition.Partition{
		Regions: regions,
		Trans:   s.Partition.Transitions,
		Orig:    s.Partition.Orig,
	}
	if len(s.Partition.OrigRegions) > 0 {
		orig, err := buildRegions(s.Partition.OrigRegions)
		if err != nil {
			return nil, err
		}
		part.OrigRegions = orig
	}
	if err := part.Validate(); err != nil {
		return nil, err
	}
	return part, nil
}

// InitialState returns x0 as a vector.
func (s *Scenario) InitialState() (*mat.VecDense, error) {
	if len(s.X0) == 0 {
		return nil, fmt.Errorf("config: x0 is empty")
	}
	return mat.NewVecDense(len(s.X0), s.X0), nil
}

func buildRegions(cfgs []RegionConfig) ([]partition.Region, error) {
	regions := make([]partition.Region, 0, len(cfgs))
	for i, rc := range cfgs {
		var polys []*geom.Polytope
		if rc.Box != nil {
			p, err := geom.Box(rc.Box.Lo, rc.Box.Hi)
			if err != nil {
				return nil, fmt.Errorf("config: region %d: %w", i, err)
			}
			polys = append(polys, p)
		}
		for j, pc := range rc.Polytopes {
			a, err := denseOf(fmt.Sprintf("region %d polytope %d", i, j), pc.A)
			if err != nil {
				return nil, err
			}
			p, err := geom.NewPolytope(a, mat.NewVecDense(len(pc.B), pc.B))
			if err != nil {
				return nil, fmt.Errorf("config: region %d polytope %d: %w", i, j, err)
			}
			polys = append(polys, p)
		}
		regions = append(regions, partition.Region{Polys: polys})
	}
	return regions, nil
}

func denseOf(what string, rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("config: %s is empty", what)
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("config: %s row %d has %d entries, want %d", what, i, len(row), cols)
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), cols, data), nil
}
