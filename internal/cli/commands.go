package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"funnel-simulator/internal/config"
	"funnel-simulator/internal/decision"
	"funnel-simulator/internal/domain"
	"funnel-simulator/internal/reporting"
	"funnel-simulator/internal/simulation"
)

func newRunCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Evaluate the funnel once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			funnel, err := a.funnel()
			if err != nil {
				return err
			}
			a.logger.Printf("Single run: budget=%.2f seed=%d", a.cfg.Budget, a.cfg.Seed)

			result, err := a.engine.Run(simulation.NewRand(a.cfg.Seed), funnel, a.cfg.Params())
			if err != nil {
				return err
			}
			return a.render(cmd, result)
		},
	}
}

func newAverageCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "average",
		Short: "Average repeated funnel runs under one seed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			funnel, err := a.funnel()
			if err != nil {
				return err
			}
			a.logger.Printf("Averaging %d runs: budget=%.2f seed=%d", a.cfg.Simulations, a.cfg.Budget, a.cfg.Seed)

			result, err := a.engine.RunMultiple(a.cfg.Simulations, a.cfg.Seed, funnel, a.cfg.Params())
			if err != nil {
				return err
			}
			return a.render(cmd, result)
		},
	}
}

func newPriceCmd(a *app, defaults config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "price",
		Short: "Evaluate the funnel after a price change",
		Long: `Evaluate the funnel with conversion rates adjusted for a price change.

--simulations 1 runs a single evaluation; higher values average runs.

Examples:
  funnelsim price --price-change 0.1
  funnelsim price --price-change -0.2 --simulations 1`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			funnel, err := a.funnel()
			if err != nil {
				return err
			}
			a.logger.Printf("Price change %+.3f: simulations=%d seed=%d", a.cfg.PriceChange, a.cfg.Simulations, a.cfg.Seed)

			result, err := a.engine.RunWithPriceChange(simulation.PriceRequest{
				PriceChange:    a.cfg.PriceChange,
				Config:         funnel,
				Params:         a.cfg.Params(),
				NumSimulations: a.cfg.Simulations,
				Seed:           a.cfg.Seed,
			})
			if err != nil {
				return err
			}
			return a.render(cmd, result)
		},
	}
	cmd.Flags().Float64Var(&a.cfg.PriceChange, "price-change", defaults.PriceChange, "Signed price change as a fraction, e.g. 0.1 for +10%")
	return cmd
}

func newComparePricesCmd(a *app, defaults config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare-prices",
		Short: "Compare several price changes against the baseline",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			funnel, err := a.funnel()
			if err != nil {
				return err
			}
			a.logger.Printf("Comparing %d price changes: simulations=%d seed=%d", len(a.cfg.PriceChanges), a.cfg.Simulations, a.cfg.Seed)

			result, err := a.engine.ComparePrices(a.cfg.PriceChanges, funnel, a.cfg.Params(), a.cfg.Simulations, a.cfg.Seed)
			if err != nil {
				return err
			}
			return a.render(cmd, result)
		},
	}
	cmd.Flags().Float64SliceVar(&a.cfg.PriceChanges, "price-changes", defaults.PriceChanges, "Comma-separated price changes")
	return cmd
}

func newOptimizeCmd(a *app, defaults config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Sweep candidate budgets for the best ROI",
		Long: `Evaluate every candidate budget and recommend the one with the highest ROI.

Markdown output ends with a GO/NO-GO gate on the recommendation.

Examples:
  funnelsim optimize --budgets 15000000,20000000,25000000
  funnelsim optimize --budgets 1000,2000,3000 --simulations 1 --format csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			funnel, err := a.funnel()
			if err != nil {
				return err
			}
			a.logger.Printf("Optimizing over %d budgets: simulations=%d seed=%d", len(a.cfg.Budgets), a.cfg.Simulations, a.cfg.Seed)

			result, err := a.engine.OptimizeBudget(simulation.OptimizeRequest{
				Budgets:        a.cfg.Budgets,
				NumSimulations: a.cfg.Simulations,
				Seed:           a.cfg.Seed,
				Config:         funnel,
				Params:         a.cfg.Params(),
			})
			if err != nil {
				return err
			}
			if err := a.render(cmd, result); err != nil {
				return err
			}
			a.logger.Print(result.Recommendation)

			if a.generator.Format() != reporting.FormatMarkdown {
				return nil
			}
			return a.renderDecision(cmd, result)
		},
	}
	cmd.Flags().Float64SliceVar(&a.cfg.Budgets, "budgets", defaults.Budgets, "Comma-separated candidate budgets")
	return cmd
}

// renderDecision runs the GO/NO-GO gate on a budget sweep.
func (a *app) renderDecision(cmd *cobra.Command, opt *domain.OptimizationResult) error {
	input, err := decision.NewInput(opt)
	if err != nil {
		return fmt.Errorf("decision input: %w", err)
	}
	result, err := decision.NewEvaluator().Evaluate(*input)
	if err != nil {
		return fmt.Errorf("decision: %w", err)
	}
	a.logger.Printf("Decision: %s", result.Decision)

	fmt.Fprintln(cmd.OutOrStdout())
	return a.render(cmd, result)
}
