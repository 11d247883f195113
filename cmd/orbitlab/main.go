package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/soham-b/orbitlab/internal/chaos"
	"github.com/soham-b/orbitlab/internal/config"
	"github.com/soham-b/orbitlab/internal/dop853"
	"github.com/soham-b/orbitlab/internal/export"
	"github.com/soham-b/orbitlab/internal/force"
	"github.com/soham-b/orbitlab/internal/orbit"
	"github.com/soham-b/orbitlab/internal/store"
	"github.com/soham-b/orbitlab/internal/sweep"
	"github.com/soham-b/orbitlab/internal/viz"
)

var (
	dataDir    string
	w0Flag     string
	t0         float64
	dt         float64
	steps      int
	t1         float64
	t2         float64
	samples    int
	atol       float64
	rtol       float64
	paramFlags []string
	configFile string
	preset     string
	// lyapunov flags
	d0             float64
	stepsPerRenorm int
	renorms        int
	live           bool
	// sweep flags
	sweepComponent int
	sweepFrom      float64
	sweepTo        float64
	sweepPoints    int
	sweepWorkers   int
	// export-svg flags
	svgX      int
	svgY      int
	svgWidth  int
	svgHeight int
	svgColor  string
	svgOut    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "orbitlab",
		Short: "orbit integration and chaos indicators",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".orbitlab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [potential]",
		Short: "integrate an orbit",
		Args:  cobra.ExactArgs(1),
		RunE:  runOrbit,
	}
	addRunFlags(runCmd)
	runCmd.Flags().Float64Var(&t1, "t1", 0, "range mode: start time")
	runCmd.Flags().Float64Var(&t2, "t2", 0, "range mode: end time (enables range mode when != t1)")
	runCmd.Flags().IntVar(&samples, "samples", 0, "range mode: number of samples")

	lyapCmd := &cobra.Command{
		Use:   "lyapunov [potential]",
		Short: "estimate the largest Lyapunov exponent",
		Args:  cobra.ExactArgs(1),
		RunE:  runLyapunov,
	}
	addRunFlags(lyapCmd)
	lyapCmd.Flags().Float64Var(&d0, "d0", config.DefaultD0, "initial deviation magnitude")
	lyapCmd.Flags().IntVar(&stepsPerRenorm, "steps-per-renorm", config.DefaultStepsPerRenorm, "integrator steps between renormalizations")
	lyapCmd.Flags().IntVar(&renorms, "renorms", config.DefaultRenorms, "number of renormalization boundaries")
	lyapCmd.Flags().BoolVar(&live, "live", false, "render convergence live")

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
		Use:   "export-json [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	svgCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a run as an SVG image",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().IntVar(&svgX, "x", 0, "horizontal phase component")
	svgCmd.Flags().IntVar(&svgY, "y", 1, "vertical phase component")
	svgCmd.Flags().IntVar(&svgWidth, "width", 800, "image width in pixels")
	svgCmd.Flags().IntVar(&svgHeight, "height", 600, "image height in pixels")
	svgCmd.Flags().StringVar(&svgColor, "color", "#00ff88", "stroke color")
	svgCmd.Flags().StringVar(&svgOut, "out", "", "output file (default <run_id>.svg)")

	sweepCmd := &cobra.Command{
		Use:   "sweep [potential]",
		Short: "map the lyapunov exponent over a line of initial conditions",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&d0, "d0", config.DefaultD0, "initial deviation magnitude")
	sweepCmd.Flags().IntVar(&stepsPerRenorm, "steps-per-renorm", config.DefaultStepsPerRenorm, "integrator steps between renormalizations")
	sweepCmd.Flags().IntVar(&renorms, "renorms", config.DefaultRenorms, "number of renormalization boundaries")
	sweepCmd.Flags().IntVar(&sweepComponent, "component", 0, "phase component to vary")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "first component value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 1, "last component value")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 20, "number of grid points")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 0, "concurrent estimates (default NumCPU)")

	potentialsCmd := &cobra.Command{
		Use:   "potentials",
		Short: "list available potentials",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range force.Names() {
				f, _ := force.FromName(name, nil)
				if c, ok := f.(force.Configurable); ok {
					keys := make([]string, 0)
					for k := range c.GetParams() {
						keys = append(keys, k)
					}
					fmt.Printf("%s (params: %s)\n", name, strings.Join(keys, ", "))
				} else {
					fmt.Println(name)
				}
			}
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [potential]",
		Short: "list presets for a potential",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for potential: %s\n", args[0])
				return nil
			}
			for _, p := range names {
				fmt.Println(p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, lyapCmd, sweepCmd, listCmd, plotCmd, exportCmd, svgCmd, potentialsCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&w0Flag, "w0", "", "initial conditions, comma separated (positions then velocities)")
	cmd.Flags().Float64Var(&t0, "t0", 0, "start time")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "output step size (negative integrates backward)")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of output steps")
	cmd.Flags().Float64Var(&atol, "atol", config.DefaultAtol, "absolute tolerance")
	cmd.Flags().Float64Var(&rtol, "rtol", config.DefaultRtol, "relative tolerance")
	cmd.Flags().StringArrayVar(&paramFlags, "param", nil, "potential parameter, name=value (repeatable)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig merges preset, config file and flags, flags winning.
func resolveConfig(cmd *cobra.Command, potential string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Potential = potential

	if preset != "" {
		p := config.GetPreset(potential, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(potential))
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		*cfg = *loaded
		cfg.Potential = potential
	}

	if cmd.Flags().Changed("w0") {
		w0, err := parseW0(w0Flag)
		if err != nil {
			return nil, err
		}
		cfg.W0 = w0
	}
	if cmd.Flags().Changed("t0") {
		cfg.T0 = t0
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("steps") {
		cfg.Steps = steps
	}
	if cmd.Flags().Changed("atol") {
		cfg.Atol = atol
	}
	if cmd.Flags().Changed("rtol") {
		cfg.Rtol = rtol
	}
	if f := cmd.Flags().Lookup("t1"); f != nil && cmd.Flags().Changed("t1") {
		cfg.T1 = t1
	}
	if f := cmd.Flags().Lookup("t2"); f != nil && cmd.Flags().Changed("t2") {
		cfg.T2 = t2
	}
	if f := cmd.Flags().Lookup("samples"); f != nil && cmd.Flags().Changed("samples") {
		cfg.Samples = samples
	}
	if f := cmd.Flags().Lookup("d0"); f != nil && cmd.Flags().Changed("d0") {
		cfg.Lyapunov.D0 = d0
	}
	if f := cmd.Flags().Lookup("steps-per-renorm"); f != nil && cmd.Flags().Changed("steps-per-renorm") {
		cfg.Lyapunov.StepsPerRenorm = stepsPerRenorm
	}
	if f := cmd.Flags().Lookup("renorms"); f != nil && cmd.Flags().Changed("renorms") {
		cfg.Lyapunov.Renorms = renorms
	}

	if len(paramFlags) > 0 {
		if cfg.Params == nil {
			cfg.Params = make(map[string]float64)
		}
		for _, p := range paramFlags {
			name, value, err := parseParam(p)
			if err != nil {
				return nil, err
			}
			cfg.Params[name] = value
		}
	}

	return cfg, nil
}

func runOrbit(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	field, err := force.FromName(cfg.Potential, cfg.Params)
	if err != nil {
		return err
	}

	driver, err := dop853.New(field, cfg.Tolerances())
	if err != nil {
		return err
	}

	w0, err := orbit.BatchOf(orbit.Phase(cfg.W0))
	if err != nil {
		return err
	}

	fmt.Printf("integrating %s orbit...\n", cfg.Potential)
	start := time.Now()

	var res *dop853.Result
	if cfg.RangeMode() {
		n := cfg.Samples
		if n == 0 {
			n = cfg.Steps
		}
		res, err = driver.IntegrateRange(context.Background(), w0, cfg.T1, cfg.T2, n)
	} else {
		res, err = driver.IntegrateSteps(context.Background(), w0, cfg.T0, cfg.Dt, cfg.Steps)
	}
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(store.RunMetadata{
		Kind:        "orbit",
		Potential:   cfg.Potential,
		Dt:          cfg.Dt,
		Atol:        cfg.Atol,
		Rtol:        cfg.Rtol,
		Accepted:    res.Stats.Accepted,
		Rejected:    res.Stats.Rejected,
		Evaluations: res.Stats.Evaluations,
		EnergyDrift: res.EnergyDrift,
	}, res.Trajectory, nil)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", res.Trajectory.Len())
	fmt.Printf("accepted/rejected steps: %d/%d\n", res.Stats.Accepted, res.Stats.Rejected)
	fmt.Printf("force evaluations: %d\n", res.Stats.Evaluations)
	if res.EnergyDrift > 0 {
		fmt.Printf("relative energy drift: %.3e\n", res.EnergyDrift)
	}

	return nil
}

func runLyapunov(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	field, err := force.FromName(cfg.Potential, cfg.Params)
	if err != nil {
		return err
	}

	est, err := chaos.NewEstimator(field, cfg.Tolerances())
	if err != nil {
		return err
	}

	req := chaos.Request{
		W0:             orbit.Phase(cfg.W0),
		T0:             cfg.T0,
		Dt:             cfg.Dt,
		StepsPerRenorm: cfg.Lyapunov.StepsPerRenorm,
		Renorms:        cfg.Lyapunov.Renorms,
		D0:             cfg.Lyapunov.D0,
	}

	var res *chaos.Result
	if live {
		res, err = viz.RunLive(est, req, cfg.Potential)
	} else {
		fmt.Printf("estimating lyapunov exponent in %s...\n", cfg.Potential)
		res, err = est.Run(context.Background(), req)
	}
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(store.RunMetadata{
		Kind:      "lyapunov",
		Potential: cfg.Potential,
		Dt:        cfg.Dt,
		Atol:      cfg.Atol,
		Rtol:      cfg.Rtol,
		Exponent:  res.Series.Final(),
	}, res.Trajectory, &res.Series)
	if err != nil {
		return err
	}

	if !live && res.Series.Len() > 1 {
		graph := asciigraph.Plot(res.Series.Exponents,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("running exponent estimate"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("renormalizations: %d\n", res.Series.Len())
	fmt.Printf("largest lyapunov exponent: %.6g\n", res.Series.Final())

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
	fmt.Fprintln(w, "ID\tKIND\tPOTENTIAL\tTIME\tDT\tSAMPLES\tEXPONENT")

	for _, run := range runs {
		exp := ""
		if run.Kind == "lyapunov" {
			exp = strconv.FormatFloat(run.Exponent, 'g', 6, 64)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.4g\t%d\t%s\n",
			run.ID,
			run.Kind,
			run.Potential,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Dt,
			run.Samples,
			exp,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("potential: %s\n\n", meta.Potential)

	if meta.Kind == "lyapunov" {
		values, _, err := st.LoadSeries(runID)
		if err != nil {
			return err
		}
		if len(values) < 2 {
			return fmt.Errorf("no series to plot")
		}
		graph := asciigraph.Plot(values,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("running exponent estimate"),
		)
		fmt.Println(graph)
		fmt.Printf("\nfinal estimate: %.6g\n", meta.Exponent)
		return nil
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	numVars := len(states[0])
	if numVars > 6 {
		numVars = 6
	}
	for varIdx := 0; varIdx < numVars; varIdx++ {
		data := make([]float64, len(states))
		for i := range states {
			if varIdx < len(states[i]) {
				data[i] = states[i][varIdx]
			}
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("w%d vs time", varIdx)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}

	field, err := force.FromName(cfg.Potential, cfg.Params)
	if err != nil {
		return err
	}

	ics, err := sweep.Line(orbit.Phase(cfg.W0), sweepComponent, sweepFrom, sweepTo, sweepPoints)
	if err != nil {
		return err
	}

	var opts []sweep.Option
	if sweepWorkers > 0 {
		opts = append(opts, sweep.WithWorkers(sweepWorkers))
	}
	sw, err := sweep.New(field, cfg.Tolerances(), opts...)
	if err != nil {
		return err
	}

	base := chaos.Request{
		T0:             cfg.T0,
		Dt:             cfg.Dt,
		StepsPerRenorm: cfg.Lyapunov.StepsPerRenorm,
		Renorms:        cfg.Lyapunov.Renorms,
		D0:             cfg.Lyapunov.D0,
	}

	fmt.Printf("sweeping w%d over [%g, %g] in %s...\n", sweepComponent, sweepFrom, sweepTo, cfg.Potential)
	start := time.Now()
	points, err := sw.Run(context.Background(), base, ics)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	exps := make([]float64, 0, len(points))
	failed := 0
	for _, p := range points {
		if p.Err != nil {
			failed++
			continue
		}
		exps = append(exps, p.Exponent)
	}
	if len(exps) > 1 {
		graph := asciigraph.Plot(exps,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("exponent vs w%d", sweepComponent)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "w%d\tEXPONENT\n", sweepComponent)
	for _, p := range points {
		if p.Err != nil {
			fmt.Fprintf(w, "%.6g\tfailed: %v\n", p.W0[sweepComponent], p.Err)
			continue
		}
		fmt.Fprintf(w, "%.6g\t%.6g\n", p.W0[sweepComponent], p.Exponent)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if failed > 0 {
		fmt.Printf("\n%d of %d points failed\n", failed, len(points))
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	var svg string
	if meta.Kind == "lyapunov" {
		values, times, err := st.LoadSeries(runID)
		if err != nil {
			return err
		}
		svg = export.SeriesSVG(orbit.LyapunovSeries{Times: times, Exponents: values}, svgWidth, svgHeight, svgColor)
	} else {
		states, times, err := st.LoadStates(runID)
		if err != nil {
			return err
		}
		tr := &orbit.Trajectory{Times: times, States: make([]orbit.Batch, len(states))}
		for i, s := range states {
			tr.States[i] = orbit.Batch{W: s, Norb: 1, NDim: len(s) / 2}
		}
		if len(states) > 0 && (svgX >= len(states[0]) || svgY >= len(states[0])) {
			return fmt.Errorf("components out of range, run has %d", len(states[0]))
		}
		svg = export.OrbitSVG(tr, 0, svgX, svgY, svgWidth, svgHeight, svgColor)
	}
	if svg == "" {
		return fmt.Errorf("run %s has too few samples to render", runID)
	}

	out := svgOut
	if out == "" {
		out = runID + ".svg"
	}
	if err := os.WriteFile(out, []byte(svg), 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", out)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func parseW0(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	w0 := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("bad w0 component %q: %w", p, err)
		}
		w0 = append(w0, v)
	}
	return w0, nil
}

func parseParam(s string) (string, float64, error) {
	name, value, ok := strings.Cut(s, "=")
	if !ok {
		return "", 0, fmt.Errorf("bad param %q, want name=value", s)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return "", 0, fmt.Errorf("bad param value %q: %w", value, err)
	}
	return strings.TrimSpace(name), v, nil
}
