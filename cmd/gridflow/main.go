package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nkotak/gridflow/internal/analysis"
	"github.com/nkotak/gridflow/internal/config"
	"github.com/nkotak/gridflow/internal/experiment"
	"github.com/nkotak/gridflow/internal/grid"
	"github.com/nkotak/gridflow/internal/storage"
	"github.com/nkotak/gridflow/internal/tutorial"
	"github.com/nkotak/gridflow/internal/viz"
)

var (
	dataDir   string
	rows      int
	cols      int
	spacing   float64
	dt        float64
	duration  float64
	saveEvery int
	initName  string
	amplitude float64
	stepper   string
	seed      int64
	diffusiv  float64
	uplift    float64
	critSlope float64
	// Boundary flags
	closedRight  bool
	closedTop    bool
	closedLeft   bool
	closedBottom bool
	// Config file and preset
	configFile string
	preset     string
	// Tutorial
	tutStep    int
	tutColored bool
	// Live view
	frameRate int
	// Section
	sectionRow      int
	sectionCol      int
	sectionSpectrum bool
	// Sweep
	sweepParam  string
	sweepMin    float64
	sweepMax    float64
	sweepN      int
	sweepMetric string
	// SVG export
	svgOut  string
	svgCell int
)

// main registers all commands and executes the root command. With no
// subcommand the guided walkthrough runs, since that is the front door
// of the tool.
func main() {
	rootCmd := &cobra.Command{
		Use:   "gridflow",
		Short: "gradient and flux-divergence lab on raster grids",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tutorial.RunAll(os.Stdout, tutorial.DefaultOptions())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gridflow", "data directory")

	tutorialCmd := &cobra.Command{
		Use:   "tutorial",
		Short: "guided walkthrough of the grid operators",
		RunE:  runTutorial,
	}
	tutorialCmd.Flags().IntVar(&tutStep, "step", 0, "run a single step (1-6)")
	tutorialCmd.Flags().IntVar(&rows, "rows", 4, "grid rows")
	tutorialCmd.Flags().IntVar(&cols, "cols", 5, "grid columns")
	tutorialCmd.Flags().Float64Var(&spacing, "spacing", 10.0, "node spacing")
	tutorialCmd.Flags().Float64Var(&diffusiv, "diffusivity", 0.01, "transport coefficient for the unit flux")
	tutorialCmd.Flags().BoolVar(&tutColored, "color", false, "colored heatmaps")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run a flux-process simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run snapshots to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [model]",
		Short: "benchmark a model",
		Args:  cobra.ExactArgs(1),
		RunE:  benchModel,
	}

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "run a simulation with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	sectionCmd := &cobra.Command{
		Use:   "section [run_id]",
		Short: "cross-section of a run's final snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  sectionRun,
	}
	sectionCmd.Flags().IntVar(&sectionRow, "row", -1, "grid row to section (default: middle)")
	sectionCmd.Flags().IntVar(&sectionCol, "col", -1, "grid column to section instead of a row")
	sectionCmd.Flags().BoolVar(&sectionSpectrum, "spectrum", false, "plot the profile power spectrum")

	sweepCmd := &cobra.Command{
		Use:   "sweep [model]",
		Short: "sweep one parameter across parallel runs",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "D", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.001, "low end of the sweep")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.1, "high end of the sweep")
	sweepCmd.Flags().IntVar(&sweepN, "n", 5, "number of sweep points")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "relief", "metric to minimize")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a run's final snapshot to SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "", "output file (default: <run_id>.svg)")
	exportSVGCmd.Flags().IntVar(&svgCell, "cell", 12, "cell size in pixels")

	rootCmd.AddCommand(tutorialCmd, runCmd, listCmd, plotCmd, exportCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, benchCmd, liveCmd,
		presetsCmd, sectionCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&rows, "rows", config.DefaultRows, "grid rows")
	cmd.Flags().IntVar(&cols, "cols", config.DefaultCols, "grid columns")
	cmd.Flags().Float64Var(&spacing, "spacing", config.DefaultSpacing, "node spacing")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().IntVar(&saveEvery, "save-every", config.DefaultSaveEvery, "snapshot interval in steps")
	cmd.Flags().StringVar(&initName, "init", "scarp", "initial condition (flat|ramp|scarp|bump|hot|noise)")
	cmd.Flags().Float64Var(&amplitude, "amplitude", config.DefaultAmplitude, "initial condition amplitude")
	cmd.Flags().StringVar(&stepper, "stepper", "euler", "stepper (euler|heun)")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed for noise init")
	cmd.Flags().Float64Var(&diffusiv, "diffusivity", config.DefaultD, "diffusivity (D or kappa)")
	cmd.Flags().Float64Var(&uplift, "uplift", 0, "uplift rate (diffusion)")
	cmd.Flags().Float64Var(&critSlope, "sc", config.DefaultSc, "critical slope (nonlinear)")
	cmd.Flags().BoolVar(&closedRight, "closed-right", false, "close the right edge")
	cmd.Flags().BoolVar(&closedTop, "closed-top", false, "close the top edge")
	cmd.Flags().BoolVar(&closedLeft, "closed-left", false, "close the left edge")
	cmd.Flags().BoolVar(&closedBottom, "closed-bottom", false, "close the bottom edge")
}

func runTutorial(cmd *cobra.Command, args []string) error {
	opts := tutorial.Options{
		Rows:    rows,
		Cols:    cols,
		Spacing: spacing,
		D:       diffusiv,
		Colored: tutColored,
	}
	if tutStep > 0 {
		return tutorial.RunStep(os.Stdout, tutStep, opts)
	}
	return tutorial.RunAll(os.Stdout, opts)
}

// buildExperimentConfig resolves preset, config file, and flags into an
// experiment config. CLI flags override the config file, which
// overrides the preset.
func buildExperimentConfig(cmd *cobra.Command, model string) (experiment.Config, error) {
	fileCfg := config.DefaultConfig()
	fileCfg.Model = model

	if preset != "" {
		p := config.GetPreset(model, preset)
		if p == nil {
			return experiment.Config{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		fileCfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return experiment.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		fileCfg = loaded
		fileCfg.Model = model
	}

	cfg := fileCfg.ToExperiment()
	cfg.Model = model

	if cmd.Flags().Changed("rows") {
		cfg.Rows = rows
	}
	if cmd.Flags().Changed("cols") {
		cfg.Cols = cols
	}
	if cmd.Flags().Changed("spacing") {
		cfg.Dx = spacing
		cfg.Dy = spacing
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("save-every") {
		cfg.SaveEvery = saveEvery
	}
	if cmd.Flags().Changed("init") {
		cfg.Init = initName
	}
	if cmd.Flags().Changed("amplitude") {
		cfg.Amplitude = amplitude
	}
	if cmd.Flags().Changed("stepper") {
		cfg.Stepper = stepper
	}
	if cmd.Flags().Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}

	if cfg.Params == nil {
		cfg.Params = make(map[string]float64)
	}
	if cmd.Flags().Changed("diffusivity") {
		cfg.Params["D"] = diffusiv
		cfg.Params["kappa"] = diffusiv
	}
	if cmd.Flags().Changed("uplift") {
		cfg.Params["uplift"] = uplift
	}
	if cmd.Flags().Changed("sc") {
		cfg.Params["Sc"] = critSlope
	}

	if cmd.Flags().Changed("closed-right") {
		cfg.ClosedRight = closedRight
	}
	if cmd.Flags().Changed("closed-top") {
		cfg.ClosedTop = closedTop
	}
	if cmd.Flags().Changed("closed-left") {
		cfg.ClosedLeft = closedLeft
	}
	if cmd.Flags().Changed("closed-bottom") {
		cfg.ClosedBottom = closedBottom
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	model := args[0]

	cfg, err := buildExperimentConfig(cmd, model)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	exp := experiment.New(cfg)
	if err := exp.Setup(registry); err != nil {
		return err
	}

	fmt.Printf("running %s on a %dx%d grid...\n", model, cfg.Rows, cfg.Cols)
	start := time.Now()

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	meta := storage.RunMetadata{
		Model:    model,
		Stepper:  cfg.Stepper,
		Rows:     cfg.Rows,
		Cols:     cfg.Cols,
		Dx:       cfg.Dx,
		Dy:       cfg.Dy,
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Seed:     cfg.Seed,
		Params:   cfg.Params,
	}
	runID, err := st.Save(meta, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("snapshots: %d\n", len(result.Snapshots))
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tGRID\tDURATION\tDT\tSTEPPER")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%.1f\t%.3f\t%s\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Rows,
			run.Cols,
			run.Duration,
			run.Dt,
			run.Stepper,
		)
	}

	return w.Flush()
}

// loadRunGrid rebuilds the grid a stored run used.
func loadRunGrid(meta *storage.RunMetadata) (*grid.Raster, error) {
	if meta.Rows < 3 || meta.Cols < 3 {
		return nil, fmt.Errorf("run %s has no stored grid shape", meta.ID)
	}
	return grid.NewRaster(meta.Rows, meta.Cols, grid.Spacing(meta.Dx, meta.Dy))
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	snapshots, times, err := st.LoadSnapshots(runID)
	if err != nil {
		return err
	}
	if len(snapshots) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("snapshots: %d\n\n", len(snapshots))

	g, err := loadRunGrid(meta)
	if err != nil {
		return err
	}

	final := snapshots[len(snapshots)-1]
	fmt.Printf("final field at t=%.2f:\n\n", times[len(times)-1])
	fmt.Print(viz.Heatmap(g, final, true))

	row := g.Rows() / 2
	profile, err := analysis.ProfileRow(g, final, row)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(viz.Section(profile, fmt.Sprintf("final profile along row %d", row)))

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	snapshots, times, err := st.LoadSnapshots(runID)
	if err != nil {
		return err
	}
	if len(snapshots) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	header := []string{"time"}
	for n := range snapshots[0] {
		header = append(header, fmt.Sprintf("n%d", n))
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for i := range snapshots {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range snapshots[i] {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	snapshots, times, err := st.LoadSnapshots(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSONStdout(*meta, times, snapshots)
}

func benchModel(cmd *cobra.Command, args []string) error {
	model := args[0]

	registry := experiment.NewRegistry()

	sizes := []int{16, 32, 64}
	dts := []float64{0.01, 0.1}

	fmt.Printf("benchmarking %s\n\n", model)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GRID\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, size := range sizes {
		for _, benchDt := range dts {
			cfg := experiment.Config{
				Model:     model,
				Stepper:   "euler",
				Rows:      size,
				Cols:      size,
				Dx:        1,
				Dy:        1,
				Init:      "bump",
				Amplitude: 10,
				Dt:        benchDt,
				Duration:  benchDt * 500,
				SaveEvery: 100,
				Seed:      42,
				Params:    map[string]float64{"D": 0.2, "kappa": 0.2, "Sc": 0.7},
			}

			exp := experiment.New(cfg)
			if err := exp.Setup(registry); err != nil {
				return err
			}

			start := time.Now()
			result, err := exp.Run(context.Background())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
			fmt.Fprintf(w, "%dx%d\t%.3f\t%d\t%v\t%.0f\n",
				size, size, benchDt, result.StepsTaken, elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	model := args[0]

	cfg, err := buildExperimentConfig(cmd, model)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	exp := experiment.New(cfg)
	if err := exp.Setup(registry); err != nil {
		return err
	}

	stp, err := registry.GetStepper(cfg.Stepper)
	if err != nil {
		return err
	}

	m := viz.NewModel(exp.Grid(), exp.Process(), stp, exp.InitField(), cfg.Dt, frameRate, model)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	model := args[0]

	cfg, err := buildExperimentConfig(cmd, model)
	if err != nil {
		return err
	}

	sweep := experiment.Sweep{
		Base:      cfg,
		ParamName: sweepParam,
		Values:    experiment.Range(sweepMin, sweepMax, sweepN),
	}

	fmt.Printf("sweeping %s over %s in [%g, %g], %d points...\n",
		model, sweepParam, sweepMin, sweepMax, sweepN)
	start := time.Now()

	points, err := sweep.Run(context.Background(), experiment.NewRegistry())
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSTEPS\t%s\tMASS_DRIFT\n", sweepParam, sweepMetric)
	for _, p := range points {
		if p.Err != nil {
			fmt.Fprintf(w, "%.4g\t-\tfailed: %v\t-\n", p.ParamValue, p.Err)
			continue
		}
		fmt.Fprintf(w, "%.4g\t%d\t%.6f\t%.2e\n",
			p.ParamValue, p.Steps, p.Metrics[sweepMetric], p.Metrics["mass_drift"])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best, ok := experiment.Best(points, sweepMetric); ok {
		fmt.Printf("\nbest %s: %s=%.4g (%.6f)\n",
			sweepMetric, sweepParam, best.ParamValue, best.Metrics[sweepMetric])
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	snapshots, _, err := st.LoadSnapshots(runID)
	if err != nil {
		return err
	}
	if len(snapshots) == 0 {
		return fmt.Errorf("no data to render")
	}

	g, err := loadRunGrid(meta)
	if err != nil {
		return err
	}

	svg, err := viz.HeatmapSVG(g, snapshots[len(snapshots)-1], svgCell)
	if err != nil {
		return err
	}

	out := svgOut
	if out == "" {
		out = runID + ".svg"
	}
	if err := os.WriteFile(out, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

func sectionRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	snapshots, _, err := st.LoadSnapshots(runID)
	if err != nil {
		return err
	}
	if len(snapshots) == 0 {
		return fmt.Errorf("no data")
	}

	g, err := loadRunGrid(meta)
	if err != nil {
		return err
	}

	final := snapshots[len(snapshots)-1]

	var profile []float64
	var caption string
	if sectionCol >= 0 {
		profile, err = analysis.ProfileCol(g, final, sectionCol)
		caption = fmt.Sprintf("column %d", sectionCol)
	} else {
		row := sectionRow
		if row < 0 {
			row = g.Rows() / 2
		}
		profile, err = analysis.ProfileRow(g, final, row)
		caption = fmt.Sprintf("row %d", row)
	}
	if err != nil {
		return err
	}

	fmt.Printf("section of %s (%s)\n\n", meta.ID, caption)
	fmt.Println(viz.Section(profile, caption))

	if sectionSpectrum {
		ps := analysis.PowerSpectrum(profile)
		fmt.Println()
		fmt.Println(viz.SeriesPlot(ps[:len(ps)/2+1], "profile power spectrum"))
	}

	return nil
}
