package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/san-kum/polyplan/internal/config"
	"github.com/san-kum/polyplan/internal/export"
	"github.com/san-kum/polyplan/internal/geom"
	"github.com/san-kum/polyplan/internal/metrics"
	"github.com/san-kum/polyplan/internal/partition"
	"github.com/san-kum/polyplan/internal/qp"
	"github.com/san-kum/polyplan/internal/report"
	"github.com/san-kum/polyplan/internal/store"
	"github.com/san-kum/polyplan/internal/synth"
)

var (
	dataDir string
	// synthesize overrides
	horizon      int
	startRegion  int
	endRegion    int
	closedLoop   bool
	conservative bool
	verify       bool
	noSave       bool
	midWeight    float64
	timeLimit    float64
	preset       string
	// locate
	atPoint string
	// export
	outFile string
	// show
	svgFile string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "polyplan",
		Short: "receding-horizon trajectory synthesis over polytopic partitions",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".polyplan", "data directory")

	synthCmd := &cobra.Command{
		Use:   "synthesize [scenario.yaml]",
		Short: "synthesize an input sequence for a scenario",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSynthesize,
	}
	synthCmd.Flags().StringVar(&preset, "preset", "", "use a built-in scenario instead of a file")
	synthCmd.Flags().IntVar(&horizon, "horizon", 0, "override planning horizon")
	synthCmd.Flags().IntVar(&startRegion, "start", 0, "override start region")
	synthCmd.Flags().IntVar(&endRegion, "end", 0, "override target region")
	synthCmd.Flags().BoolVar(&closedLoop, "closed-loop", false, "override closed-loop tightening")
	synthCmd.Flags().BoolVar(&conservative, "conservative", false, "override conservative start hull")
	synthCmd.Flags().BoolVar(&verify, "verify", true, "replay and check the synthesized trajectory")
	synthCmd.Flags().Float64Var(&midWeight, "mid-weight", 0, "override terminal centering weight")
	synthCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")
	synthCmd.Flags().Float64Var(&timeLimit, "time-limit", 0, "solver time limit in seconds (0 = none)")

	locateCmd := &cobra.Command{
		Use:   "locate [scenario.yaml]",
		Short: "find the partition region containing a state",
		Args:  cobra.ExactArgs(1),
		RunE:  runLocate,
	}
	locateCmd.Flags().StringVar(&atPoint, "at", "", "state to locate, comma separated (defaults to the scenario's x0)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a saved run with trajectory plots",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().StringVar(&svgFile, "svg", "", "also write the trajectory as SVG to this file")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&outFile, "out", "", "output file (defaults to stdout)")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario.yaml]",
		Short: "synthesize toward the target from every region's center",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&timeLimit, "time-limit", 0, "solver time limit in seconds (0 = none)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(synthCmd, locateCmd, listCmd, showCmd, exportCmd, sweepCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runSynthesize(cmd *cobra.Command, args []string) error {
	var scn *config.Scenario
	switch {
	case preset != "":
		scn = config.GetPreset(preset)
		if scn == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	case len(args) == 1:
		var err error
		scn, err = config.Load(args[0])
		if err != nil {
			return fmt.Errorf("failed to load scenario: %w", err)
		}
	default:
		return fmt.Errorf("either a scenario file or --preset is required")
	}

	if cmd.Flags().Changed("horizon") {
		scn.Horizon = horizon
	}
	if cmd.Flags().Changed("start") {
		scn.Start = startRegion
	}
	if cmd.Flags().Changed("end") {
		scn.End = endRegion
	}
	if cmd.Flags().Changed("closed-loop") {
		scn.ClosedLoop = closedLoop
	}
	if cmd.Flags().Changed("conservative") {
		scn.Conservative = conservative
	}
	if cmd.Flags().Changed("mid-weight") {
		scn.Cost.MidWeight = &midWeight
	}

	sys, err := scn.System()
	if err != nil {
		return err
	}
	part, err := scn.BuildPartition()
	if err != nil {
		return err
	}
	x0, err := scn.InitialState()
	if err != nil {
		return err
	}

	// Any supplied cost field, including a lone mid_weight, switches off
	// the core's built-in defaults.
	cost := synth.CostParams{}
	if scn.Cost.Set() {
		cost = synth.ScalarCost(
			scn.Cost.StateWeight, scn.Cost.InputWeight, scn.Cost.Mid(),
			scn.Horizon, sys.StateDim(), sys.InputDim(),
		)
	}

	synthesizer := synth.New(&qp.HiGHS{TimeLimit: timeLimit})
	synthesizer.Oracle = geom.LPOracle{}

	opts := synth.Options{
		Conservative: scn.Conservative,
		ClosedLoop:   scn.ClosedLoop,
		Verify:       verify,
	}

	fmt.Printf("synthesizing %s: region %d -> %d over %d steps...\n",
		scn.Name, scn.Start, scn.End, scn.Horizon)
	begin := time.Now()

	plan, err := synthesizer.SynthesizeInput(x0, sys, part, scn.Start, scn.End, scn.Horizon, cost, opts)
	if err != nil {
		return err
	}

	elapsed := time.Since(begin)

	traj, err := synth.PredictTrajectory(x0, plan.U, sys)
	if err != nil {
		return err
	}
	states := denseRows(traj)
	inputs := plan.Inputs()

	fmt.Println(report.OK("feasible plan found"))
	fmt.Println(report.Field("scenario", "%s", scn.Name))
	fmt.Println(report.Field("elapsed", "%v", elapsed))
	fmt.Println(report.Field("piece", "%d", plan.Piece))
	fmt.Println(report.Field("cost", "%.6f", plan.Cost))
	fmt.Println()
	fmt.Println(report.Header("input sequence"))
	fmt.Print(report.InputTable(inputs))
	fmt.Println()
	fmt.Print(report.TrajectoryPlots(states, 6))

	fmt.Println(report.Header("metrics"))
	for name, val := range metrics.Evaluate(states, inputs, metrics.Defaults()...) {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	if noSave {
		return nil
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(store.RunMetadata{
		Scenario:     scn.Name,
		Start:        scn.Start,
		End:          scn.End,
		Horizon:      scn.Horizon,
		Cost:         plan.Cost,
		Piece:        plan.Piece,
		Conservative: scn.Conservative,
		ClosedLoop:   scn.ClosedLoop,
	}, states, inputs)
	if err != nil {
		return err
	}
	fmt.Println(report.Field("run id", "%s", runID))
	return nil
}

// runSweep checks reachability of the scenario's target from the
// Chebyshev center of every region, solving the problems concurrently.
func runSweep(cmd *cobra.Command, args []string) error {
	scn, err := config.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}
	sys, err := scn.System()
	if err != nil {
		return err
	}
	part, err := scn.BuildPartition()
	if err != nil {
		return err
	}

	oracle := geom.LPOracle{}
	jobs := make([]synth.Job, 0, part.NumRegions())
	regionOf := make([]int, 0, part.NumRegions())
	for i := 0; i < part.NumRegions(); i++ {
		if len(part.Regions[i].Polys) == 0 {
			continue
		}
		center, err := synth.RegionCenter(part.Regions[i], oracle)
		if err != nil {
			return fmt.Errorf("region %d has no Chebyshev center: %w", i, err)
		}
		jobs = append(jobs, synth.Job{X0: center, Start: i, End: scn.End})
		regionOf = append(regionOf, i)
	}

	synthesizer := synth.New(&qp.HiGHS{TimeLimit: timeLimit})
	synthesizer.Oracle = oracle

	batch := synth.NewBatch(synthesizer)
	results := batch.Run(cmd.Context(), jobs, sys, part, scn.Horizon,
		synth.CostParams{}, synth.Options{
			Conservative: scn.Conservative,
			ClosedLoop:   scn.ClosedLoop,
		})

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "REGION\tREACHES\tCOST\tPIECE")
	for k, res := range results {
		if res.Err != nil {
			fmt.Fprintf(w, "%d\tno\t-\t-\n", regionOf[k])
			continue
		}
		fmt.Fprintf(w, "%d\tyes\t%.4f\t%d\n", regionOf[k], res.Plan.Cost, res.Plan.Piece)
	}
	return w.Flush()
}

func runLocate(cmd *cobra.Command, args []string) error {
	scn, err := config.Load(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}
	part, err := scn.BuildPartition()
	if err != nil {
		return err
	}

	var x *mat.VecDense
	if atPoint != "" {
		x, err = parseVector(atPoint)
		if err != nil {
			return err
		}
	} else {
		x, err = scn.InitialState()
		if err != nil {
			return err
		}
	}

	idx := partition.Locate(x, part)
	if idx == partition.CellNotFound {
		fmt.Println(report.Warn("state is outside every region"))
		return nil
	}

	fmt.Println(report.Field("region", "%d", idx))
	if part.HasTransMatrix() && scn.End < part.NumRegions() {
		if part.TransitionDeclared(idx, scn.End) {
			fmt.Println(report.Field("transition", "%d -> %d declared", idx, scn.End))
		} else {
			fmt.Println(report.Warn(fmt.Sprintf("no declared transition %d -> %d", idx, scn.End)))
		}
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tSTART\tEND\tHORIZON\tPIECE\tCOST")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%.4f\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Start,
			run.End,
			run.Horizon,
			run.Piece,
			run.Cost,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, inputs, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	fmt.Println(report.Header(meta.ID))
	fmt.Println(report.Field("scenario", "%s", meta.Scenario))
	fmt.Println(report.Field("route", "%d -> %d", meta.Start, meta.End))
	fmt.Println(report.Field("horizon", "%d", meta.Horizon))
	fmt.Println(report.Field("piece", "%d", meta.Piece))
	fmt.Println(report.Field("cost", "%.6f", meta.Cost))
	fmt.Println()

	if len(inputs) > 0 {
		// Drop the zero-padded terminal row.
		fmt.Print(report.InputTable(inputs[:len(inputs)-1]))
		fmt.Println()
	}
	fmt.Print(report.TrajectoryPlots(states, 6))

	if svgFile != "" {
		if err := export.WriteTrajectorySVG(svgFile, states, 800, 600); err != nil {
			return err
		}
		fmt.Println(report.Field("svg", "%s", svgFile))
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, inputs, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	if outFile != "" {
		return store.ExportJSON(outFile, meta, states, inputs)
	}
	return store.ExportJSONStdout(meta, states, inputs)
}

func parseVector(s string) (*mat.VecDense, error) {
	parts := strings.Split(s, ",")
	vals := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid state %q: %w", s, err)
		}
		vals = append(vals, v)
	}
	return mat.NewVecDense(len(vals), vals), nil
}

func denseRows(m *mat.Dense) [][]float64 {
	rows, cols := m.Dims()
	out := make([][]float64, rows)
	for i := range out {
		out[i] = make([]float64, cols)
		for j := 0; j < cols; j++ {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}
