package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/arvo-sim/mbd/internal/config"
	"github.com/arvo-sim/mbd/internal/metrics"
	"github.com/arvo-sim/mbd/internal/solver"
)

var (
	configFile string
	steps      int
	endTime    float64
	rho        float64
	verbose    bool
	normalize  bool
	traceCoord int
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	warnStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mbd",
		Short: "multibody dynamics simulation",
	}

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a scenario (preset name or --config file)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	runCmd.Flags().IntVar(&steps, "steps", 0, "override number of steps")
	runCmd.Flags().Float64Var(&endTime, "end", 0, "override end time")
	runCmd.Flags().Float64Var(&rho, "rho", -1, "override spectral radius [0,1]")
	runCmd.Flags().BoolVar(&verbose, "verbose", false, "solver progress output")
	runCmd.Flags().BoolVar(&normalize, "normalize", false, "renormalize orientations each step")
	runCmd.Flags().IntVar(&traceCoord, "trace", 0, "global coordinate index to plot")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenarios",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, presetsCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(args)
	if err != nil {
		return err
	}

	sys, err := cfg.BuildSystem()
	if err != nil {
		return err
	}
	sys.Assemble()

	settings := cfg.Settings()
	if cmd.Flags().Changed("steps") {
		settings.NumberOfSteps = steps
	}
	if cmd.Flags().Changed("end") {
		settings.EndTime = endTime
	}
	if cmd.Flags().Changed("rho") {
		settings.SpectralRadius = rho
	}
	if cmd.Flags().Changed("verbose") {
		settings.Verbose = verbose
	}
	if cmd.Flags().Changed("normalize") {
		settings.NormalizeOrientations = normalize
	}

	trace := metrics.NewTrace(traceCoord)
	drift := metrics.NewEnergyDrift(sys)

	ga := solver.NewGeneralizedAlpha()
	if err := ga.Initialize(sys, settings); err != nil {
		return err
	}
	ga.AddObserver(trace)
	ga.AddObserver(drift)

	rep, err := ga.Solve()
	if err != nil {
		return err
	}

	fmt.Println(titleStyle.Render(cfg.Name))
	fmt.Printf("%s %d nodes, %d objects, %d coordinates\n",
		labelStyle.Render("system:"), sys.NumNodes(), sys.NumObjects(), sys.NumCoordinates())
	fmt.Printf("%s %d steps to t=%.4g, max residual %.2e\n",
		labelStyle.Render("run:"), rep.StepsTaken, rep.FinalTime, rep.MaxResidual)
	fmt.Printf("%s %.3e\n", labelStyle.Render("energy drift:"), drift.Value())
	if rep.SingularSolves > 0 {
		fmt.Println(warnStyle.Render(fmt.Sprintf("singular mass matrix: %d pseudo-inverse solves", rep.SingularSolves)))
	}
	if rep.NewtonExhausted > 0 {
		fmt.Println(warnStyle.Render(fmt.Sprintf("newton budget exhausted on %d steps", rep.NewtonExhausted)))
	}

	if len(trace.Samples) > 1 {
		graph := asciigraph.Plot(trace.Samples,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("q[%d] over time", traceCoord)),
		)
		fmt.Println(graph)
	}
	return nil
}

func loadScenario(args []string) (*config.Config, error) {
	if configFile != "" {
		return config.Load(configFile)
	}
	name := "mass_spring"
	if len(args) == 1 {
		name = args[0]
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset %q (available: %v)", name, config.ListPresets())
	}
	return cfg, nil
}
