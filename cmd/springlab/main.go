package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/springlab/internal/config"
	"github.com/san-kum/springlab/internal/export"
	"github.com/san-kum/springlab/internal/gui"
	"github.com/san-kum/springlab/internal/lattice"
	"github.com/san-kum/springlab/internal/metrics"
	"github.com/san-kum/springlab/internal/sim"
	"github.com/san-kum/springlab/internal/storage"
	"github.com/san-kum/springlab/internal/viz"
)

var (
	dataDir    string
	configFile string
	presetName string

	rows        int
	cols        int
	stiffness   float64
	damping     float64
	dt          float64
	duration    float64
	windOn      bool
	recordEvery int
	plotEnergy  bool

	sweepStiffness string
	frameIndex     int
	outPath        string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "springlab",
		Short: "damped mass-spring lattice simulator",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the render window when no subcommand is given.
			return gui.Run(loadConfig(cmd))
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".springlab", "data directory")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (yaml)")
	rootCmd.PersistentFlags().StringVarP(&presetName, "preset", "p", "", "named preset")
	rootCmd.PersistentFlags().IntVar(&rows, "rows", config.DefaultRows, "grid rows")
	rootCmd.PersistentFlags().IntVar(&cols, "cols", config.DefaultCols, "grid columns")
	rootCmd.PersistentFlags().Float64Var(&stiffness, "stiffness", config.DefaultStiffness, "spring stiffness")
	rootCmd.PersistentFlags().Float64Var(&damping, "damping", config.DefaultDamping, "spring damping")
	rootCmd.PersistentFlags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")

	runCmd := &cobra.Command{
		Use:   "run [name]",
		Short: "run headless and save the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")
	runCmd.Flags().BoolVar(&windOn, "wind", false, "enable wind")
	runCmd.Flags().IntVar(&recordEvery, "record-every", 10, "frame capture interval in ticks (0 disables)")
	runCmd.Flags().BoolVar(&plotEnergy, "plot", false, "print an energy graph after the run")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive terminal view",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.Run(loadConfig(cmd))
		},
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "interactive render window",
		RunE: func(cmd *cobra.Command, args []string) error {
			return gui.Run(loadConfig(cmd))
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run stiffness variants in parallel and compare",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepStiffness, "stiffness-list", "500,1000,2000,4000", "comma-separated stiffness values")
	sweepCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration in seconds")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list named presets",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tGRID\tSTIFFNESS\tDAMPING")
			for _, name := range config.PresetNames() {
				cfg := config.Preset(name)
				fmt.Fprintf(w, "%s\t%dx%d\t%.0f\t%.1f\n",
					name, cfg.Grid.Rows, cfg.Grid.Cols,
					cfg.Physics.Stiffness, cfg.Physics.Damping)
			}
			w.Flush()
		},
	}

	exportCmd := &cobra.Command{
		Use:   "export [run-id]",
		Short: "export a recorded frame as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportCmd.Flags().IntVar(&frameIndex, "frame", -1, "frame index (-1 for last)")
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "snapshot.svg", "output file")

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, sweepCmd, listCmd, presetsCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves config file, preset, and flag overrides in that order.
func loadConfig(cmd *cobra.Command) *config.Config {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		cfg = loaded
	} else if presetName != "" {
		if cfg = config.Preset(presetName); cfg == nil {
			fmt.Fprintf(os.Stderr, "unknown preset %q (try: %s)\n",
				presetName, strings.Join(config.PresetNames(), ", "))
			os.Exit(1)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("rows") {
		cfg.Grid.Rows = rows
	}
	if flags.Changed("cols") {
		cfg.Grid.Cols = cols
	}
	if flags.Changed("stiffness") {
		cfg.Physics.Stiffness = stiffness
	}
	if flags.Changed("damping") {
		cfg.Physics.Damping = damping
	}
	if flags.Changed("dt") {
		cfg.Run.Dt = dt
	}
	return cfg
}

func defaultMetrics() []sim.Metric {
	return []sim.Metric{
		metrics.NewAvgEnergy(),
		metrics.NewEnergyDrift(),
		metrics.NewMaxStretch(),
		metrics.NewSettle(1.0),
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)
	name := "run"
	if len(args) > 0 {
		name = args[0]
	}

	stepper, err := cfg.NewStepper()
	if err != nil {
		return err
	}
	stepper.SetWindEnabled(windOn)

	runner := sim.New(stepper)
	for _, m := range defaultMetrics() {
		runner.AddMetric(m)
	}

	var energyHistory []float64
	if plotEnergy {
		runner.AddObserver(sim.ObserverFunc(func(sys *lattice.System, t float64) {
			energyHistory = append(energyHistory, sys.Energy())
		}))
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	result, err := runner.Run(ctx, sim.Config{
		Dt:          cfg.Run.Dt,
		Duration:    duration,
		RecordEvery: recordEvery,
	})
	if err != nil {
		return err
	}

	store := storage.New(dataDir)
	if err := store.Init(); err != nil {
		return err
	}
	runID, err := store.Save(name, cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %d ticks, %d frames, %d dropped forces\n",
		runID, result.TicksRun, len(result.Frames), result.DroppedForces)
	printMetrics(result.Metrics)

	if plotEnergy && len(energyHistory) >= 2 {
		fmt.Println(asciigraph.Plot(energyHistory,
			asciigraph.Height(10),
			asciigraph.Width(72),
			asciigraph.Caption("total energy")))
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(cmd)

	var variants []sim.Variant
	for _, field := range strings.Split(sweepStiffness, ",") {
		k, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return fmt.Errorf("stiffness list: %w", err)
		}
		variant := *cfg
		variant.Physics.Stiffness = k
		vcfg := &variant
		variants = append(variants, sim.Variant{
			Name:  fmt.Sprintf("k=%g", k),
			Build: vcfg.NewStepper,
		})
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	ens := sim.NewEnsemble(variants, defaultMetrics)
	results, err := ens.Run(ctx, sim.Config{Dt: cfg.Run.Dt, Duration: duration})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "VARIANT\tAVG ENERGY\tDRIFT\tMAX STRETCH\tSETTLE")
	for i, res := range results {
		fmt.Fprintf(w, "%s\t%.2f\t%.4f\t%.4f\t%.2f\n",
			variants[i].Name,
			res.Metrics["avg_energy"],
			res.Metrics["energy_drift"],
			res.Metrics["max_stretch"],
			res.Metrics["settle"])
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no saved runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tGRID\tTICKS\tWHEN")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%s\n",
			run.ID, run.Name,
			run.Config.Grid.Rows, run.Config.Grid.Cols,
			run.TicksRun,
			run.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func exportSVG(cmd *cobra.Command, args []string) error {
	store := storage.New(dataDir)
	runID := args[0]

	meta, err := store.Load(runID)
	if err != nil {
		return err
	}
	frames, err := store.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("run %s has no recorded frames", runID)
	}

	idx := frameIndex
	if idx < 0 {
		idx = len(frames) - 1
	}
	if idx >= len(frames) {
		return fmt.Errorf("frame %d out of %d", idx, len(frames))
	}

	// Rebuild the topology from the stored config, then overlay the
	// recorded positions.
	sys := lattice.NewSystem(meta.Config.SystemConfig())
	if err := lattice.BuildGrid(sys, meta.Config.GridSpec()); err != nil {
		return err
	}
	frame := frames[idx]
	if len(frame.Positions) != sys.MassCount() {
		return fmt.Errorf("frame has %d positions for %d masses", len(frame.Positions), sys.MassCount())
	}
	for i, p := range frame.Positions {
		sys.Mass(i).Position = p
	}

	if err := os.WriteFile(outPath, []byte(export.SnapshotSVG(sys)), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (t=%.2fs)\n", outPath, frame.Time)
	return nil
}
