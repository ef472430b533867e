package simulation

import (
	"fmt"
	"time"

	"funnel-simulator/internal/domain"
	"funnel-simulator/internal/observability"
	"funnel-simulator/internal/pricing"
)

// PriceRequest describes one price-scenario evaluation.
type PriceRequest struct {
	PriceChange float64             // signed fraction: +0.1 is a 10% increase
	Config      domain.FunnelConfig // nil = default config
	Params      domain.SimulationParameters

	// NumSimulations selects the delegate: 0 or 1 runs a single evaluation,
	// anything higher averages that many runs seeded with Seed.
	NumSimulations int
	Seed           int64

	// Rand is the source for the single-run path. nil = NewRand(Seed).
	Rand RandomSource
}

// RunWithPriceChange evaluates the funnel after shifting every step's rate
// range by the price change and the step's fixed sensitivity.
// Returns *domain.SingleRunResult or *domain.AveragedResult depending on
// NumSimulations.
func (e *Engine) RunWithPriceChange(req PriceRequest) (domain.Result, error) {
	if req.NumSimulations < 0 {
		return nil, ErrNegativeRepeats
	}
	start := time.Now()

	cfg := req.Config
	if cfg == nil {
		cfg = domain.DefaultFunnelConfig()
	}
	adjusted := pricing.AdjustConfig(cfg, req.PriceChange)

	var result domain.Result
	if req.NumSimulations <= 1 {
		rng := req.Rand
		if rng == nil {
			rng = NewRand(req.Seed)
		}
		single, err := e.Run(rng, adjusted, req.Params)
		if err != nil {
			return nil, err
		}
		result = single
	} else {
		averaged, err := e.runMultiple(req.NumSimulations, req.Seed, adjusted, req.Params)
		if err != nil {
			return nil, err
		}
		result = averaged
	}

	e.metrics.RecordAnalysis(observability.AnalysisPrice, time.Since(start).Seconds())
	e.logf("price change %+.2f: roi=%.4f", req.PriceChange, result.Summary().ROI)
	return result, nil
}

// ComparePrices evaluates the baseline and every price change with n
// averaged runs each. Every evaluation uses the same seed, so only the
// rate ranges differ between scenarios.
func (e *Engine) ComparePrices(changes []float64, cfg domain.FunnelConfig, params domain.SimulationParameters, n int, seed int64) (*domain.PriceComparison, error) {
	if len(changes) == 0 {
		return nil, ErrNoPriceScenarios
	}
	if n < 1 {
		return nil, ErrNoSimulations
	}
	start := time.Now()

	if cfg == nil {
		cfg = domain.DefaultFunnelConfig()
	}

	baseline, err := e.runMultiple(n, seed, cfg, params)
	if err != nil {
		return nil, fmt.Errorf("baseline: %w", err)
	}

	scenarios := make([]domain.PriceScenario, 0, len(changes))
	for _, change := range changes {
		res, err := e.runMultiple(n, seed, pricing.AdjustConfig(cfg, change), params)
		if err != nil {
			return nil, fmt.Errorf("price change %+.4f: %w", change, err)
		}
		scenarios = append(scenarios, domain.PriceScenario{PriceChange: change, Result: res})
		e.logf("price change %+.2f: roi=%.4f (baseline %.4f)", change, res.ROI, baseline.ROI)
	}

	e.metrics.RecordAnalysis(observability.AnalysisComparePrices, time.Since(start).Seconds())
	return &domain.PriceComparison{
		Baseline:  baseline,
		Scenarios: scenarios,
	}, nil
}
