package cli

import (
	"fmt"
	"log"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"funnel-simulator/internal/config"
	"funnel-simulator/internal/domain"
	"funnel-simulator/internal/observability"
	"funnel-simulator/internal/reporting"
	"funnel-simulator/internal/simulation"
)

// app holds flag values and the collaborators built from them.
type app struct {
	cfg config.Config

	logger    *log.Logger
	registry  *prometheus.Registry
	metrics   *observability.Metrics
	engine    *simulation.Engine
	generator *reporting.Generator
}

// NewRootCmd builds the command tree. Flag defaults come from defaults,
// normally loaded from FUNNEL_* environment variables.
func NewRootCmd(defaults config.Config) *cobra.Command {
	a := &app{cfg: defaults}

	rootCmd := &cobra.Command{
		Use:   "funnelsim",
		Short: "Marketing funnel simulator",
		Long: `funnelsim estimates users, revenue and ROI of a marketing budget flowing
through a conversion funnel.

Run a single evaluation, average repeated runs, test price changes, or sweep
candidate budgets for the best ROI.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.writeMetrics()
		},
	}

	bindFlags(rootCmd, &a.cfg, defaults)

	rootCmd.AddCommand(newRunCmd(a))
	rootCmd.AddCommand(newAverageCmd(a))
	rootCmd.AddCommand(newPriceCmd(a, defaults))
	rootCmd.AddCommand(newComparePricesCmd(a, defaults))
	rootCmd.AddCommand(newOptimizeCmd(a, defaults))

	return rootCmd
}

// Execute runs the CLI with defaults from the environment.
func Execute() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := NewRootCmd(cfg).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func bindFlags(cmd *cobra.Command, cfg *config.Config, defaults config.Config) {
	flags := cmd.PersistentFlags()

	// Simulation parameters
	flags.Float64Var(&cfg.Budget, "budget", defaults.Budget, "Marketing budget")
	flags.Float64Var(&cfg.CostPerUser, "cost-per-user", defaults.CostPerUser, "Cost per landing page visitor (> 0)")
	flags.Float64Var(&cfg.LowThreshold, "low-threshold", defaults.LowThreshold, "First-step users below this get the low-volume penalty")
	flags.Float64Var(&cfg.HighThreshold, "high-threshold", defaults.HighThreshold, "First-step users above this get the high-volume penalty")
	flags.Float64Var(&cfg.NegEffectLow, "neg-effect-low", defaults.NegEffectLow, "Low-volume penalty")
	flags.Float64Var(&cfg.NegEffectHigh, "neg-effect-high", defaults.NegEffectHigh, "High-volume penalty")
	flags.Float64Var(&cfg.PosEffect, "pos-effect", defaults.PosEffect, "Optimal-volume bonus")
	flags.Float64Var(&cfg.ARPPU, "arppu", defaults.ARPPU, "Average revenue per paying user")
	flags.Float64Var(&cfg.UpliftProbability, "uplift-probability", defaults.UpliftProbability, "Chance of a random uplift per step")
	flags.Float64Var(&cfg.UpliftMagnitude, "uplift-magnitude", defaults.UpliftMagnitude, "Size of a random uplift")
	flags.BoolVar(&cfg.WholeUsers, "whole-users", defaults.WholeUsers, "Floor user counts to whole users")
	flags.StringArrayVar(&cfg.Steps, "step", defaults.Steps, "Funnel step as name:min:max (repeatable, default funnel if unset)")

	// Analysis settings
	flags.Int64Var(&cfg.Seed, "seed", defaults.Seed, "Random seed")
	flags.IntVar(&cfg.Simulations, "simulations", defaults.Simulations, "Runs to average")

	// Output
	flags.StringVar(&cfg.Format, "format", defaults.Format, "Output format: markdown or csv")
	flags.StringVar(&cfg.MetricsFile, "metrics-file", defaults.MetricsFile, "Write Prometheus metrics to this textfile")
	flags.BoolVarP(&cfg.Verbose, "verbose", "v", defaults.Verbose, "Log every evaluation")
}

// setup builds the engine and output generator once flags are parsed.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	format, err := reporting.ParseFormat(a.cfg.Format)
	if err != nil {
		return err
	}

	a.logger = log.New(cmd.ErrOrStderr(), "[funnelsim] ", log.LstdFlags)
	a.registry = prometheus.NewRegistry()
	a.metrics = observability.NewMetrics("", a.registry)
	a.engine = simulation.NewEngine(simulation.Options{
		Logger:  log.New(cmd.ErrOrStderr(), "", log.LstdFlags),
		Metrics: a.metrics,
		Verbose: a.cfg.Verbose,
	})
	a.generator = reporting.NewGenerator(format)
	return nil
}

func (a *app) funnel() (domain.FunnelConfig, error) {
	funnel, err := a.cfg.Funnel()
	if err != nil {
		return nil, fmt.Errorf("invalid --step: %w", err)
	}
	return funnel, nil
}

func (a *app) render(cmd *cobra.Command, v any) error {
	out, err := a.generator.Generate(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), out)
	return err
}

func (a *app) writeMetrics() error {
	if a.cfg.MetricsFile == "" || a.registry == nil {
		return nil
	}
	if err := observability.WriteTextfile(a.cfg.MetricsFile, a.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	a.logger.Printf("Metrics written to %s", a.cfg.MetricsFile)
	return nil
}
