package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/odelab/internal/analysis"
	"github.com/san-kum/odelab/internal/config"
	"github.com/san-kum/odelab/internal/experiment"
	"github.com/san-kum/odelab/internal/integrate"
	"github.com/san-kum/odelab/internal/linalg"
	"github.com/san-kum/odelab/internal/odecore"
	"github.com/san-kum/odelab/internal/stability"
	"github.com/san-kum/odelab/internal/storage"
	"github.com/san-kum/odelab/internal/tui"
)

var (
	dataDir    string
	dt         float64
	t0         float64
	tf         float64
	scheme     string
	initState  []float64
	alpha      float64
	source     float64
	gamma      float64
	rate       float64
	limit      float64
	configFile string
	preset     string
	dtList     []float64
)

var (
	stableStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	unstableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "odelab",
		Short: "first-order ODE integration lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".odelab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "integrate a model and store the trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	convergeCmd := &cobra.Command{
		Use:   "converge [model]",
		Short: "estimate the scheme's convergence order over a step-size sweep",
		Args:  cobra.ExactArgs(1),
		RunE:  convergeScenario,
	}
	addScenarioFlags(convergeCmd)
	convergeCmd.Flags().Float64SliceVar(&dtList, "dts", []float64{0.5, 0.25, 0.125, 0.0625, 0.03125}, "step sizes for the sweep")

	stabilityCmd := &cobra.Command{
		Use:   "stability [model]",
		Short: "stability report for the model's spectrum at the chosen step size",
		Args:  cobra.ExactArgs(1),
		RunE:  stabilityReport,
	}
	addScenarioFlags(stabilityCmd)

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "watch an integration run live in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets(args[0])
			if len(names) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range names {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, convergeCmd, stabilityCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "step size")
	cmd.Flags().Float64Var(&t0, "t0", config.DefaultT0, "start time")
	cmd.Flags().Float64Var(&tf, "tf", config.DefaultTF, "end time")
	cmd.Flags().StringVar(&scheme, "scheme", "explicit", "stepping scheme (explicit|implicit)")
	cmd.Flags().Float64SliceVar(&initState, "y0", []float64{100}, "initial state components")
	cmd.Flags().Float64Var(&alpha, "alpha", config.DefaultAlpha, "decay rate")
	cmd.Flags().Float64Var(&source, "source", 0, "constant forcing (forced_decay)")
	cmd.Flags().Float64Var(&gamma, "gamma", config.DefaultGamma, "oscillator frequency")
	cmd.Flags().Float64Var(&rate, "rate", config.DefaultRate, "logistic growth rate")
	cmd.Flags().Float64Var(&limit, "limit", config.DefaultLimit, "logistic carrying capacity")
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "named preset configuration")
}

// buildConfig merges preset, config file, and flags into one validated
// scenario. Flags win over the file, the file wins over the preset.
func buildConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Model = model

	if preset != "" {
		p := config.GetPreset(model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		*cfg = *loaded
		cfg.Model = model
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("t0") {
		cfg.T0 = t0
	}
	if cmd.Flags().Changed("tf") {
		cfg.TF = tf
	}
	if cmd.Flags().Changed("scheme") {
		cfg.Scheme = scheme
	}
	if cmd.Flags().Changed("y0") {
		cfg.InitState = initState
	}
	if cmd.Flags().Changed("alpha") {
		cfg.Params.Alpha = alpha
	}
	if cmd.Flags().Changed("source") {
		cfg.Params.Source = source
	}
	if cmd.Flags().Changed("gamma") {
		cfg.Params.Gamma = gamma
	}
	if cmd.Flags().Changed("rate") {
		cfg.Params.Rate = rate
	}
	if cmd.Flags().Changed("limit") {
		cfg.Params.Limit = limit
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}

	fmt.Printf("integrating %s (%s, dt=%g, [%g, %g])...\n", cfg.Model, cfg.Scheme, cfg.Dt, cfg.T0, cfg.TF)
	start := time.Now()

	traj, runErr := exp.Run(context.Background())
	elapsed := time.Since(start)

	if traj != nil && len(traj.States) > 0 {
		runID, err := st.Save(cfg.Model, cfg.Scheme, cfg.Dt, cfg.T0, cfg.TF, traj)
		if err != nil {
			return err
		}
		fmt.Printf("completed in %v\n", elapsed)
		fmt.Printf("run id: %s\n", runID)
		fmt.Printf("samples: %d\n", len(traj.States))
		t, y := traj.Final()
		fmt.Printf("final: t=%g |y|=%.6g\n", t, y.Norm())
	}

	if runErr != nil {
		return fmt.Errorf("run aborted (partial trajectory stored): %w", runErr)
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
	fmt.Fprintln(w, "ID\tMODEL\tSCHEME\tTIME\tINTERVAL\tDT\tSTEPS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t[%g, %g]\t%g\t%d\n",
			run.ID,
			run.Model,
			run.Scheme,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.T0, run.TF,
			run.Dt,
			run.Steps,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(traj.States) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s (%s)\n", meta.Model, meta.Scheme)
	fmt.Printf("samples: %d\n\n", len(traj.States))

	for i := range traj.States[0] {
		graph := asciigraph.Plot(traj.Component(i),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("y%d vs time", i)),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	out := struct {
		Meta   *storage.RunMetadata `json:"meta"`
		Times  []float64            `json:"times"`
		States []odecore.State      `json:"states"`
	}{meta, traj.Times, traj.States}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// exactFinal returns the analytic solution at tf for models that have
// one, used as the reference in convergence sweeps.
func exactFinal(cfg *config.Config) (odecore.State, bool) {
	elapsed := cfg.TF - cfg.T0
	switch cfg.Model {
	case "decay":
		return odecore.State{cfg.InitState[0] * math.Exp(-cfg.Params.Alpha*elapsed)}, true
	case "forced_decay":
		// y(t) = s/a + (y0 - s/a) e^(-a t)
		eq := cfg.Params.Source / cfg.Params.Alpha
		return odecore.State{eq + (cfg.InitState[0]-eq)*math.Exp(-cfg.Params.Alpha*elapsed)}, true
	case "oscillator":
		if len(cfg.InitState) != 2 {
			return nil, false
		}
		g := cfg.Params.Gamma
		x0, v0 := cfg.InitState[0], cfg.InitState[1]
		return odecore.State{
			x0*math.Cos(g*elapsed) + v0/g*math.Sin(g*elapsed),
			-x0*g*math.Sin(g*elapsed) + v0*math.Cos(g*elapsed),
		}, true
	case "logistic":
		k, r, y0 := cfg.Params.Limit, cfg.Params.Rate, cfg.InitState[0]
		return odecore.State{k / (1 + (k/y0-1)*math.Exp(-r*elapsed))}, true
	default:
		return nil, false
	}
}

func convergeScenario(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	exact, ok := exactFinal(cfg)
	if !ok {
		return fmt.Errorf("model %s has no analytic reference solution", cfg.Model)
	}

	reg := experiment.NewRegistry()
	rhs, err := reg.GetModel(cfg.Model, cfg.Params)
	if err != nil {
		return err
	}
	newStepper, err := reg.StepperFactory(cfg.Scheme)
	if err != nil {
		return err
	}

	runCfg := odecore.Config{T0: cfg.T0, TF: cfg.TF, CheckFinite: cfg.CheckFinite}
	results := integrate.Sweep(context.Background(), rhs, odecore.State(cfg.InitState).Clone(), runCfg, dtList, newStepper)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DT\tSTEPS\tABS ERROR")

	errs := make([]float64, 0, len(results))
	dts := make([]float64, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			return fmt.Errorf("dt=%g: %w", res.Dt, res.Err)
		}
		_, final := res.Traj.Final()
		e := analysis.AbsoluteError(final, exact)
		fmt.Fprintf(w, "%g\t%d\t%.6e\n", res.Dt, res.Traj.StepsTaken, e)
		dts = append(dts, res.Dt)
		errs = append(errs, e)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	order, err := analysis.ConvergenceOrder(dts, errs)
	if err != nil {
		return err
	}
	fmt.Printf("\nestimated convergence order: %.3f\n", order)

	logErrs := make([]float64, len(errs))
	for i, e := range errs {
		logErrs[i] = math.Log10(e)
	}
	fmt.Println(asciigraph.Plot(logErrs,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Caption("log10(error) per sweep point (coarse to fine)"),
	))
	return nil
}

func stabilityReport(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	reg := experiment.NewRegistry()
	rhs, err := reg.GetModel(cfg.Model, cfg.Params)
	if err != nil {
		return err
	}

	ls, ok := rhs.(odecore.LinearSystem)
	if !ok {
		return fmt.Errorf("model %s is nonlinear; stability analysis needs a linear operator", cfg.Model)
	}
	eigs, err := linalgSpectrum(ls)
	if err != nil {
		return err
	}

	fmt.Printf("model %s at dt=%g\n\n", cfg.Model, cfg.Dt)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "EIGENVALUE\tSCHEME\t|R|\tVERDICT\tMAX STABLE DT")
	for _, lam := range eigs {
		for _, sch := range []stability.Scheme{stability.ExplicitEuler, stability.ImplicitEuler} {
			amp := stability.Amplification(sch, lam, cfg.Dt)
			verdict := stableStyle.Render("stable")
			if !stability.IsStableEigen(lam, cfg.Dt, sch) {
				verdict = unstableStyle.Render("unstable")
			}
			fmt.Fprintf(w, "%.4g%+.4gi\t%s\t%.4f\t%s\t%s\n",
				real(lam), imag(lam), sch, amp, verdict, formatMaxDt(stability.MaxStableDt(lam, sch)))
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	overall := stability.IsStable(eigs, cfg.Dt, schemeOf(cfg.Scheme))
	if overall {
		fmt.Println(stableStyle.Render(fmt.Sprintf("%s scheme: stable", cfg.Scheme)))
	} else {
		fmt.Println(unstableStyle.Render(fmt.Sprintf("%s scheme: unstable", cfg.Scheme)))
	}

	fmt.Println()
	printRegion(schemeOf(cfg.Scheme), eigs, cfg.Dt)
	return nil
}

// linalgSpectrum pulls the eigenvalues, using the operator's cache
// when available.
func linalgSpectrum(ls odecore.LinearSystem) ([]complex128, error) {
	if op, ok := ls.(interface{ Spectrum() ([]complex128, error) }); ok {
		return op.Spectrum()
	}
	return linalg.Eigenvalues(ls.Matrix())
}

func schemeOf(name string) stability.Scheme {
	if name == "implicit" {
		return stability.ImplicitEuler
	}
	return stability.ExplicitEuler
}

func formatMaxDt(v float64) string {
	if math.IsInf(v, 1) {
		return "unbounded"
	}
	if v == 0 {
		return "none"
	}
	return fmt.Sprintf("%.4g", v)
}

// printRegion shades the scheme's stability region in the lambda*dt
// plane and marks the model's eigenvalues scaled by dt.
func printRegion(sch stability.Scheme, eigs []complex128, dt float64) {
	const (
		cols, rows   = 61, 21
		reMin, reMax = -3.0, 3.0
		imMin, imMax = -2.0, 2.0
	)

	grid := stability.Region(sch, reMin, reMax, imMin, imMax, cols, rows)
	if grid == nil {
		return
	}

	fmt.Printf("stability region for %s (. stable, blank unstable, * eigenvalue x dt):\n", sch)
	var b strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			ch := byte(' ')
			if grid[r][c] {
				ch = '.'
			}
			re := reMin + float64(c)*(reMax-reMin)/float64(cols-1)
			im := imMax - float64(r)*(imMax-imMin)/float64(rows-1)
			for _, lam := range eigs {
				z := lam * complex(dt, 0)
				if math.Abs(real(z)-re) < (reMax-reMin)/float64(cols-1)/2 &&
					math.Abs(imag(z)-im) < (imMax-imMin)/float64(rows-1)/2 {
					ch = '*'
				}
			}
			b.WriteByte(ch)
		}
		b.WriteByte('\n')
	}
	fmt.Print(b.String())
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	reg := experiment.NewRegistry()
	rhs, err := reg.GetModel(cfg.Model, cfg.Params)
	if err != nil {
		return err
	}
	stepper, err := reg.GetStepper(cfg.Scheme)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("%s · %s · dt=%g", cfg.Model, cfg.Scheme, cfg.Dt)
	runCfg := odecore.Config{T0: cfg.T0, TF: cfg.TF, Dt: cfg.Dt, CheckFinite: cfg.CheckFinite}
	return tui.Run(rhs, stepper, odecore.State(cfg.InitState).Clone(), runCfg, title)
}
