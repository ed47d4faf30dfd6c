package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bioproclab/fmex/internal/config"
	"github.com/bioproclab/fmex/internal/describe"
	"github.com/bioproclab/fmex/internal/diagram"
	"github.com/bioproclab/fmex/internal/engine"
	"github.com/bioproclab/fmex/internal/perfusion"
	"github.com/bioproclab/fmex/internal/results"
	"github.com/bioproclab/fmex/internal/session"
	"github.com/bioproclab/fmex/internal/shell"
	"github.com/spf13/cobra"
)

// MSLInfo names the model standard library the reference export was built
// against.
const MSLInfo = "3.2.3 - used components: RealInput, RealOutput, CombiTimeTable, Types"

var (
	configFile string
	dataDir    string
	duration   float64
	ncp        int
	plotName   string
	plotDir    string
	setPairs   []string
	initPairs  []string
	contLegs   []float64
	save       bool
	terminal   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fmex",
		Short: "explorative simulation of a perfusion bioreactor model",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The terminal belongs to the shell; diagrams render to files.
			exec, err := buildExecutor(false)
			if err != nil {
				return err
			}
			return shell.Run(exec)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "session config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory for exported runs")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the simulation and render the diagrams",
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&duration, "time", 0, "run length in hours")
	runCmd.Flags().IntVar(&ncp, "ncp", 0, "number of communication points")
	runCmd.Flags().StringVar(&plotName, "plot", "", "plot layout: basic, comprehensive or none")
	runCmd.Flags().StringVar(&plotDir, "plot-dir", "plots", "directory for rendered diagram files")
	runCmd.Flags().StringArrayVar(&setPairs, "set", nil, "parameter update name=value")
	runCmd.Flags().StringArrayVar(&initPairs, "init", nil, "initial value update name=value")
	runCmd.Flags().Float64SliceVar(&contLegs, "cont", nil, "continued run lengths after the initial run")
	runCmd.Flags().BoolVar(&save, "save", false, "export every run to the data directory")
	runCmd.Flags().BoolVar(&terminal, "term", false, "also draw diagrams in the terminal")

	describeCmd := &cobra.Command{
		Use:   "describe <name>",
		Short: "describe culture, broth, parts, parameters or variables",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			exec, err := buildExecutor(false)
			if err != nil {
				return err
			}
			if err := exec.Desc.Eng.Load(); err != nil {
				return err
			}
			return exec.Desc.Describe(os.Stdout, args[0], 3)
		},
	}

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "system and model provenance",
		RunE: func(cmd *cobra.Command, args []string) error {
			exec, err := buildExecutor(false)
			if err != nil {
				return err
			}
			if err := exec.Desc.Eng.Load(); err != nil {
				return err
			}
			return exec.Desc.SystemInfo(os.Stdout)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list exported runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			runs, err := results.New(cfg.DataDir).List()
			if err != nil {
				return err
			}
			for _, r := range runs {
				fmt.Printf("%s  %-9s  [%g, %g]  %s\n", r.ID, r.Mode, r.StartTime, r.FinalTime, r.Timestamp.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, describeCmd, infoCmd, listCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if duration > 0 {
		cfg.Duration = duration
	}
	if ncp > 0 {
		cfg.NCP = ncp
	}
	if plotName != "" {
		cfg.Plot = plotName
	}
	return cfg, cfg.Validate()
}

// buildExecutor wires engine, store, diagrams and introspection into one
// command executor. The engine loads lazily on the first run.
func buildExecutor(withTerm bool) (*shell.Executor, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	eng := perfusion.New()
	store := perfusion.Parameters()
	if report := store.SetParameters(cfg.Parameters); !report.OK() {
		printReport(report)
	}
	if report := store.SetInitialValues(cfg.InitialValues); !report.OK() {
		printReport(report)
	}

	var renderers []diagram.Renderer
	renderers = append(renderers, diagram.NewPlotRenderer(plotDirOrDefault()))
	if withTerm {
		renderers = append(renderers, diagram.NewTermRenderer(os.Stdout))
	}
	registry := diagram.NewRegistry(renderers...)
	if cfg.Plot != "none" {
		layout, actions := layoutFor(cfg.Plot)
		registry.SetLayout(layout)
		registry.Append(actions...)
	}

	sess := session.New(eng, store, registry)
	return &shell.Executor{
		Sess: sess,
		Desc: &describe.Describer{
			Eng:            eng,
			Store:          store,
			CultureInfo:    perfusion.CultureInfo,
			SeedComponents: perfusion.MinimumComponents,
			MSLInfo:        MSLInfo,
		},
		Registry: registry,
		Results:  results.New(cfg.DataDir),
		Layouts: map[string]shell.LayoutFunc{
			"basic":         perfusion.BasicLayout,
			"comprehensive": perfusion.ComprehensiveLayout,
		},
		Opts:     engine.Options{NCP: cfg.NCP, Silent: true},
		Duration: cfg.Duration,
	}, nil
}

func layoutFor(name string) (diagram.Layout, []diagram.Action) {
	if name == "comprehensive" {
		return perfusion.ComprehensiveLayout("Stem cell perfusion cultivation")
	}
	return perfusion.BasicLayout("Stem cell perfusion cultivation")
}

func plotDirOrDefault() string {
	if plotDir != "" {
		return plotDir
	}
	return "plots"
}

func runSimulation(cmd *cobra.Command, args []string) error {
	exec, err := buildExecutor(terminal)
	if err != nil {
		return err
	}

	applyPairs := func(pairs []string, initOnly bool) error {
		updates := make(map[string]float64, len(pairs))
		for _, pair := range pairs {
			name, raw, ok := strings.Cut(pair, "=")
			if !ok {
				return fmt.Errorf("%q is not a name=value pair", pair)
			}
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return fmt.Errorf("%q is not a number", raw)
			}
			updates[name] = v
		}
		var report *session.UpdateReport
		if initOnly {
			report = exec.Sess.Store().SetInitialValues(updates)
		} else {
			report = exec.Sess.Store().SetParameters(updates)
		}
		printReport(report)
		return nil
	}
	if err := applyPairs(setPairs, false); err != nil {
		return err
	}
	if err := applyPairs(initPairs, true); err != nil {
		return err
	}

	legs := append([]float64{exec.Duration}, contLegs...)
	for i, legDuration := range legs {
		mode := session.ModeInitial
		if i > 0 {
			mode = session.ModeContinued
		}
		res, err := exec.Sess.Run(legDuration, mode, exec.Opts)
		if err != nil {
			return err
		}
		fmt.Printf("Simulated %s over [%g, %g], %d points\n",
			mode, res.Time[0], res.FinalTime(), res.Len())
		if save {
			if err := exec.Results.Init(); err != nil {
				return err
			}
			runID, err := exec.Results.Save(mode.String(), exec.Sess.Store().Values(),
				exec.Sess.Engine().Provenance(), exec.Opts, res)
			if err != nil {
				return err
			}
			fmt.Println("saved", runID)
		}
	}
	return nil
}

func printReport(report *session.UpdateReport) {
	for _, rej := range report.Rejected {
		fmt.Fprintf(os.Stderr, "Error: %s - %s\n", rej.Name, rej.Reason)
	}
	if len(report.Violated) > 0 {
		fmt.Fprintln(os.Stderr, "Error - the following requirements do not hold:")
		for _, expr := range report.Violated {
			fmt.Fprintln(os.Stderr, " ", expr)
		}
	}
}
