package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/alidh/modelab/internal/analysis"
	"github.com/alidh/modelab/internal/config"
	"github.com/alidh/modelab/internal/ecology"
	"github.com/alidh/modelab/internal/econ"
	"github.com/alidh/modelab/internal/export"
	"github.com/alidh/modelab/internal/integrators"
	"github.com/alidh/modelab/internal/metrics"
	"github.com/alidh/modelab/internal/sim"
	"github.com/alidh/modelab/internal/viz"
)

var (
	dt         float64
	duration   float64
	alpha      float64
	beta       float64
	delta      float64
	gamma      float64
	prey       float64
	predator   float64
	integrator string
	format     string
	noPlot     bool
	// Leontief inputs
	demandArg string
	// Config file
	configFile string
	// Preset name
	preset string
	// Live view frame rate
	frameRate int
	// Sweep range
	sweepParam string
	sweepFrom  float64
	sweepTo    float64
	sweepCount int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "modelab",
		Short: "leontief input-output and predator-prey model lab",
	}

	predpreyCmd := &cobra.Command{
		Use:   "predprey",
		Short: "simulate the lotka-volterra predator-prey system",
		RunE:  runPredPrey,
	}
	addPredPreyFlags(predpreyCmd)
	predpreyCmd.Flags().StringVar(&format, "format", "table", "output format (table, csv, json)")
	predpreyCmd.Flags().BoolVar(&noPlot, "no-plot", false, "suppress the ascii plot")

	leontiefCmd := &cobra.Command{
		Use:   "leontief",
		Short: "solve the open input-output model for a preset or configured economy",
		RunE:  runLeontief,
	}
	leontiefCmd.Flags().StringVar(&preset, "preset", "economy-a", "preset economy")
	leontiefCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	leontiefCmd.Flags().StringVar(&demandArg, "demand", "", "comma-separated external demand override")
	leontiefCmd.Flags().StringVar(&format, "format", "table", "output format (table, csv, json)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the predator-prey simulation live",
		RunE:  runLive,
	}
	addPredPreyFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "run the same scenario under multiple integrators",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	addPredPreyFlags(compareCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one rate parameter across a range of values",
		RunE:  runSweep,
	}
	addPredPreyFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "alpha", "parameter to sweep (alpha, beta, delta, gamma)")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0.5, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 2.0, "last value")
	sweepCmd.Flags().IntVar(&sweepCount, "count", 8, "number of values")

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets",
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

	rootCmd.AddCommand(predpreyCmd, leontiefCmd, liveCmd, compareCmd, sweepCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addPredPreyFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&alpha, "alpha", config.DefaultAlpha, "prey growth rate")
	cmd.Flags().Float64Var(&beta, "beta", config.DefaultBeta, "predation rate")
	cmd.Flags().Float64Var(&delta, "delta", config.DefaultDelta, "predator reproduction rate")
	cmd.Flags().Float64Var(&gamma, "gamma", config.DefaultGamma, "predator death rate")
	cmd.Flags().Float64Var(&prey, "prey", config.DefaultPrey, "initial prey density")
	cmd.Flags().Float64Var(&predator, "predator", config.DefaultPredator, "initial predator density")
	cmd.Flags().StringVar(&integrator, "integrator", "rk4", "integrator (euler, rk4, rk45)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// applyPredPreyConfig resolves preset, config file, and CLI flags in
// increasing precedence, matching cobra's Changed semantics.
func applyPredPreyConfig(cmd *cobra.Command) error {
	if preset != "" {
		cfg := config.GetPreset("predprey", preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets("predprey"))
		}
		applyConfig(cmd, cfg)
	}

	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyConfig(cmd, cfg)
	}

	return nil
}

func applyConfig(cmd *cobra.Command, cfg *config.Config) {
	if !cmd.Flags().Changed("dt") && cfg.Dt != 0 {
		dt = cfg.Dt
	}
	if !cmd.Flags().Changed("time") && cfg.Duration != 0 {
		duration = cfg.Duration
	}
	if !cmd.Flags().Changed("integrator") && cfg.Integrator != "" {
		integrator = cfg.Integrator
	}
	if !cmd.Flags().Changed("alpha") {
		alpha = cfg.Rates.Alpha
	}
	if !cmd.Flags().Changed("beta") {
		beta = cfg.Rates.Beta
	}
	if !cmd.Flags().Changed("delta") {
		delta = cfg.Rates.Delta
	}
	if !cmd.Flags().Changed("gamma") {
		gamma = cfg.Rates.Gamma
	}
	if !cmd.Flags().Changed("prey") {
		prey = cfg.InitState.Prey
	}
	if !cmd.Flags().Changed("predator") {
		predator = cfg.InitState.Predator
	}
}

func runPredPrey(cmd *cobra.Command, args []string) error {
	if err := applyPredPreyConfig(cmd); err != nil {
		return err
	}

	integ, err := integrators.Get(integrator)
	if err != nil {
		return err
	}

	params := ecology.Params{Alpha: alpha, Beta: beta, Delta: delta, Gamma: gamma}
	model, err := ecology.NewLotkaVolterra(params)
	if err != nil {
		return err
	}

	fmt.Printf("running predator-prey simulation (%s, dt=%g, T=%g)...\n", integrator, dt, duration)
	start := time.Now()

	result, err := ecology.Simulate(context.Background(), params, prey, predator, duration, dt, integ,
		metrics.NewInvariantDrift(model),
		metrics.NewExtinction(1e-6),
	)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v, %d steps\n\n", time.Since(start), result.StepsTaken)

	switch format {
	case "csv":
		return export.TrajectoryCSV(os.Stdout, []string{"prey", "predator"}, result)
	case "json":
		return export.TrajectoryJSON(os.Stdout, "predprey", integrator, dt, duration, result)
	}

	if !noPlot {
		plotTrajectory(result)
	}
	printSummary(result, params)
	return nil
}

func plotTrajectory(result *sim.Result) {
	preySeries := downsample(result.Component(0), 120)
	predSeries := downsample(result.Component(1), 120)

	graph := asciigraph.PlotMany(
		[][]float64{preySeries, predSeries},
		asciigraph.Height(14),
		asciigraph.Width(120),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red),
		asciigraph.Caption("prey (green) / predator (red)"),
	)
	fmt.Println(graph)
	fmt.Println()
}

func downsample(series []float64, max int) []float64 {
	if len(series) <= max {
		return series
	}
	out := make([]float64, 0, max)
	stride := float64(len(series)-1) / float64(max-1)
	for i := 0; i < max; i++ {
		out = append(out, series[int(float64(i)*stride)])
	}
	return out
}

func printSummary(result *sim.Result, params ecology.Params) {
	final := result.Final()

	preyOsc := analysis.DetectOscillation(result, 0, result.States[0][0])
	predOsc := analysis.DetectOscillation(result, 1, result.States[0][1])

	clamped := 0
	for _, c := range result.Clamped {
		if c {
			clamped++
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "final prey\t%.6f\n", final[0])
	fmt.Fprintf(w, "final predator\t%.6f\n", final[1])
	fmt.Fprintf(w, "prey crossings\t%d\n", preyOsc.Crossings)
	fmt.Fprintf(w, "predator crossings\t%d\n", predOsc.Crossings)
	if preyOsc.Period > 0 {
		fmt.Fprintf(w, "est. cycle period\t%.3f\n", preyOsc.Period)
	}
	fmt.Fprintf(w, "invariant drift\t%.2e\n", result.InvariantDrift)
	if clamped > 0 {
		fmt.Fprintf(w, "clamped samples\t%d\n", clamped)
	}
	for name, val := range result.Metrics {
		fmt.Fprintf(w, "%s\t%.6f\n", name, val)
	}
	w.Flush()
}

func runLeontief(cmd *cobra.Command, args []string) error {
	economy, err := resolveEconomy(cmd)
	if err != nil {
		return err
	}

	prods, err := economy.Production()
	if err != nil {
		return err
	}

	switch format {
	case "csv":
		return export.ProductionCSV(os.Stdout, prods)
	case "json":
		return export.ProductionJSON(os.Stdout, prods)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "sector\tdemand\tproduction")
	for i, p := range prods {
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\n", p.Sector, economy.Sectors[i].Demand, p.Output)
	}
	w.Flush()

	for _, p := range prods {
		if p.Output < 0 {
			fmt.Println("\nwarning: negative production level, economy is not economically viable")
			break
		}
	}

	return nil
}

func resolveEconomy(cmd *cobra.Command) (econ.Economy, error) {
	var cfg *config.Config

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return econ.Economy{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.GetPreset("leontief", preset)
		if cfg == nil {
			return econ.Economy{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets("leontief"))
		}
	}

	sectors := make([]econ.Sector, len(cfg.Economy.Sectors))
	for i, s := range cfg.Economy.Sectors {
		sectors[i] = econ.Sector{Name: s.Name, Demand: s.Demand}
	}

	if demandArg != "" {
		demands, err := parseFloats(demandArg)
		if err != nil {
			return econ.Economy{}, fmt.Errorf("invalid --demand: %w", err)
		}
		if len(demands) != len(sectors) {
			return econ.Economy{}, fmt.Errorf("--demand has %d values, economy has %d sectors", len(demands), len(sectors))
		}
		for i, d := range demands {
			sectors[i].Demand = d
		}
	}

	return econ.Economy{
		Sectors:      sectors,
		Coefficients: econ.FromRows(cfg.Economy.Coefficients),
	}, nil
}

func parseFloats(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	if err := applyPredPreyConfig(cmd); err != nil {
		return err
	}

	integ, err := integrators.Get(integrator)
	if err != nil {
		return err
	}

	model, err := ecology.NewLotkaVolterra(ecology.Params{Alpha: alpha, Beta: beta, Delta: delta, Gamma: gamma})
	if err != nil {
		return err
	}

	return viz.Run(model, integ, sim.State{prey, predator}, dt, duration, frameRate)
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	if err := applyPredPreyConfig(cmd); err != nil {
		return err
	}

	params := ecology.Params{Alpha: alpha, Beta: beta, Delta: delta, Gamma: gamma}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "integrator\tfinal prey\tfinal predator\tinvariant drift")

	for _, name := range args {
		integ, err := integrators.Get(name)
		if err != nil {
			return err
		}

		result, err := ecology.Simulate(context.Background(), params, prey, predator, duration, dt, integ)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}

		final := result.Final()
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%.2e\n", name, final[0], final[1], result.InvariantDrift)
	}

	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	if err := applyPredPreyConfig(cmd); err != nil {
		return err
	}
	if sweepCount < 2 {
		return fmt.Errorf("--count must be at least 2")
	}

	values := make([]float64, sweepCount)
	systems := make([]sim.System, sweepCount)
	step := (sweepTo - sweepFrom) / float64(sweepCount-1)

	for i := range values {
		values[i] = sweepFrom + float64(i)*step

		p := ecology.Params{Alpha: alpha, Beta: beta, Delta: delta, Gamma: gamma}
		model, err := ecology.NewLotkaVolterra(p)
		if err != nil {
			return err
		}
		if err := model.SetParam(sweepParam, values[i]); err != nil {
			return err
		}
		systems[i] = model
	}

	sweep := sim.NewSweep(systems, func() sim.Integrator {
		integ, err := integrators.Get(integrator)
		if err != nil {
			integ = integrators.NewRK4()
		}
		return integ
	})

	cfg := sim.Config{Dt: dt, Duration: duration, ClampNonNegative: true, ValidateState: true}
	results, err := sweep.Run(context.Background(), sim.State{prey, predator}, cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tfinal prey\tfinal predator\tcycle period\n", sweepParam)
	for i, result := range results {
		osc := analysis.DetectOscillation(result, 0, result.States[0][0])
		final := result.Final()
		fmt.Fprintf(w, "%.4f\t%.4f\t%.4f\t%.3f\n", values[i], final[0], final[1], osc.Period)
	}

	return w.Flush()
}
