package simulation

import (
	"fmt"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"funnel-simulator/internal/domain"
	"funnel-simulator/internal/observability"
)

// OptimizeRequest describes a budget sweep.
type OptimizeRequest struct {
	Budgets []float64 // evaluated in order, duplicates included

	// NumSimulations per budget, 0 = 1. 1 runs a single evaluation per
	// budget from one source seeded once for the whole sweep; higher values
	// average runs per budget, each budget re-seeded with the same Seed.
	NumSimulations int
	Seed           int64 // 0 = DefaultSeed

	Config domain.FunnelConfig         // nil = default config
	Params domain.SimulationParameters // Budget is replaced per candidate
}

// OptimizeBudget evaluates every candidate budget and selects the one with
// the highest ROI. Ties keep the first budget in input order.
// Returns ErrNoBudgets for an empty list and ErrNegativeRepeats if
// NumSimulations is negative.
func (e *Engine) OptimizeBudget(req OptimizeRequest) (*domain.OptimizationResult, error) {
	if len(req.Budgets) == 0 {
		return nil, ErrNoBudgets
	}
	if req.NumSimulations < 0 {
		return nil, ErrNegativeRepeats
	}
	if req.NumSimulations == 0 {
		req.NumSimulations = 1
	}
	if req.Seed == 0 {
		req.Seed = DefaultSeed
	}
	start := time.Now()

	cfg, err := resolveConfig(req.Config)
	if err != nil {
		return nil, err
	}

	// Single-run sweeps share one source across budgets
	var rng RandomSource
	if req.NumSimulations == 1 {
		rng = NewRand(req.Seed)
	}

	analysis := make([]domain.BudgetPoint, 0, len(req.Budgets))
	for i, budget := range req.Budgets {
		params := req.Params.WithBudget(budget)
		if err := params.Validate(); err != nil {
			return nil, fmt.Errorf("budget %d (%v): %w", i, budget, err)
		}

		var summary domain.Financials
		if req.NumSimulations == 1 {
			summary = e.evaluate(rng, cfg, params).Financials
		} else {
			averaged, err := e.runMultiple(req.NumSimulations, req.Seed, cfg, params)
			if err != nil {
				return nil, fmt.Errorf("budget %d (%v): %w", i, budget, err)
			}
			summary = averaged.Financials
		}

		analysis = append(analysis, domain.BudgetPoint{
			Budget:       budget,
			ROI:          summary.ROI,
			TotalRevenue: summary.TotalRevenue,
		})
		e.metrics.RecordBudgetEvaluated()
		e.logf("budget %.2f: roi=%.4f revenue=%.2f", budget, summary.ROI, summary.TotalRevenue)
	}

	best := analysis[0]
	for _, p := range analysis[1:] {
		if p.ROI > best.ROI {
			best = p
		}
	}

	e.metrics.RecordOptimum(best.Budget, best.ROI)
	e.metrics.RecordAnalysis(observability.AnalysisOptimize, time.Since(start).Seconds())

	return &domain.OptimizationResult{
		OptimalBudget:  best.Budget,
		OptimalROI:     best.ROI,
		OptimalRevenue: best.TotalRevenue,
		BudgetAnalysis: analysis,
		Recommendation: FormatRecommendation(best.Budget, best.ROI),
		NumSimulations: req.NumSimulations,
		Seed:           req.Seed,
	}, nil
}

// FormatRecommendation renders the human-readable summary of a sweep winner,
// e.g. "Best budget: $15,000,000 with ROI of 12.3%".
func FormatRecommendation(budget, roi float64) string {
	p := message.NewPrinter(language.English)
	if budget == math.Trunc(budget) && math.Abs(budget) < 1<<53 {
		return p.Sprintf("Best budget: $%d with ROI of %.1f%%", int64(budget), roi*100)
	}
	return p.Sprintf("Best budget: $%.2f with ROI of %.1f%%", budget, roi*100)
}
