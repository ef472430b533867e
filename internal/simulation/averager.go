package simulation

import (
	"time"

	"funnel-simulator/internal/domain"
	"funnel-simulator/internal/idhash"
	"funnel-simulator/internal/metrics"
	"funnel-simulator/internal/observability"
)

// RunMultiple evaluates the funnel n times and averages the results.
// The random source is seeded exactly once per call, so a fixed
// (n, seed, cfg, params) yields a bit-for-bit identical result.
// UpliftFrequency reports the fraction of runs in which each step's uplift
// fired; it is not a boolean.
// Returns ErrNoSimulations if n < 1.
func (e *Engine) RunMultiple(n int, seed int64, cfg domain.FunnelConfig, params domain.SimulationParameters) (*domain.AveragedResult, error) {
	start := time.Now()

	result, err := e.runMultiple(n, seed, cfg, params)
	if err != nil {
		return nil, err
	}

	e.metrics.RecordAnalysis(observability.AnalysisAverage, time.Since(start).Seconds())
	e.logf("averaged %d runs (seed=%d): roi=%.4f stddev=%.4f", n, seed, result.ROI, result.ROIDistribution.Stddev)
	return result, nil
}

// runMultiple is RunMultiple without analysis bookkeeping, for nested use.
func (e *Engine) runMultiple(n int, seed int64, cfg domain.FunnelConfig, params domain.SimulationParameters) (*domain.AveragedResult, error) {
	if n < 1 {
		return nil, ErrNoSimulations
	}
	cfg, err := prepare(cfg, &params)
	if err != nil {
		return nil, err
	}

	rng := NewRand(seed)
	runs := make([]*domain.SingleRunResult, n)
	for i := range runs {
		runs[i] = e.evaluate(rng, cfg, params)
	}

	result := aggregateRuns(runs, params.Budget)
	result.NumSimulations = n
	result.Seed = seed
	result.ScenarioID = idhash.ComputeScenarioID(cfg, params, seed, n)
	return result, nil
}

// aggregateRuns averages every numeric field of runs, which must be non-empty
// and share one config.
func aggregateRuns(runs []*domain.SingleRunResult, budget float64) *domain.AveragedResult {
	n := len(runs)
	revenues := make([]float64, n)
	profits := make([]float64, n)
	rois := make([]float64, n)
	for i, r := range runs {
		revenues[i] = r.TotalRevenue
		profits[i] = r.NetProfit
		rois[i] = r.ROI
	}

	roiSummary := metrics.Summarize(rois)

	return &domain.AveragedResult{
		Financials: domain.Financials{
			Budget:       budget,
			TotalRevenue: metrics.Average(revenues),
			NetProfit:    metrics.Average(profits),
			ROI:          roiSummary.Mean,
			Degenerate:   budget == 0,
		},
		UsersPerStep:    averageStepValues(runs, func(r *domain.SingleRunResult) domain.StepValues { return r.UsersPerStep }),
		AppliedRates:    averageStepValues(runs, func(r *domain.SingleRunResult) domain.StepValues { return r.AppliedRates }),
		UpliftFrequency: upliftFrequency(runs),
		ROIDistribution: roiSummary,
	}
}

// averageStepValues averages each step independently, keeping the first run's order.
func averageStepValues(runs []*domain.SingleRunResult, pick func(*domain.SingleRunResult) domain.StepValues) domain.StepValues {
	first := pick(runs[0])
	out := make(domain.StepValues, len(first))
	values := make([]float64, len(runs))
	for i, sv := range first {
		for j, r := range runs {
			values[j] = pick(r)[i].Value
		}
		out[i] = domain.StepValue{Step: sv.Step, Value: metrics.Average(values)}
	}
	return out
}

// upliftFrequency returns, per step, the fraction of runs where uplift fired.
func upliftFrequency(runs []*domain.SingleRunResult) domain.StepValues {
	first := runs[0].UpliftTriggered
	out := make(domain.StepValues, len(first))
	for i, sf := range first {
		count := 0
		for _, r := range runs {
			if r.UpliftTriggered[i].Triggered {
				count++
			}
		}
		out[i] = domain.StepValue{Step: sf.Step, Value: float64(count) / float64(len(runs))}
	}
	return out
}
