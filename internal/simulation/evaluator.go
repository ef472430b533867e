package simulation

import (
	"math"

	"funnel-simulator/internal/domain"
	"funnel-simulator/internal/idhash"
)

// Run evaluates the funnel once, drawing every random value from rng.
// A nil cfg means domain.DefaultFunnelConfig().
// Steps:
//  1. landing_page = Budget / CostPerUser
//  2. For each step in order: draw a rate in [MinRate, MaxRate], multiply,
//     apply the volume-threshold effect on the first step only, then roll the uplift
//  3. Revenue = final step users * AverageRevenuePerPayingUser
//
// ScenarioID identifies the inputs only; the random source is not part of it.
func (e *Engine) Run(rng RandomSource, cfg domain.FunnelConfig, params domain.SimulationParameters) (*domain.SingleRunResult, error) {
	if rng == nil {
		return nil, ErrNilRandomSource
	}
	cfg, err := prepare(cfg, &params)
	if err != nil {
		return nil, err
	}

	result := e.evaluate(rng, cfg, params)
	result.ScenarioID = idhash.ComputeScenarioID(cfg, params, 0, 1)
	return result, nil
}

// evaluate runs one pass over a validated config.
func (e *Engine) evaluate(rng RandomSource, cfg domain.FunnelConfig, params domain.SimulationParameters) *domain.SingleRunResult {
	upliftProbability := params.EffectiveUpliftProbability()
	upliftMagnitude := params.EffectiveUpliftMagnitude()

	// 1. Entry point
	landing := params.Budget / params.CostPerUser
	if params.WholeUsers {
		landing = math.Floor(landing)
	}

	usersPerStep := make(domain.StepValues, 0, len(cfg)+1)
	usersPerStep = append(usersPerStep, domain.StepValue{Step: domain.StepLandingPage, Value: landing})
	appliedRates := make(domain.StepValues, 0, len(cfg))
	upliftTriggered := make(domain.StepFlags, 0, len(cfg))

	var bucket domain.VolumeBucket
	var upliftSteps []string
	current := landing
	finalUsers := 0.0

	// 2. Walk steps in configuration order
	for i, step := range cfg {
		rate := drawRate(rng, step.MinRate, step.MaxRate)
		users := current * rate

		// Threshold effects apply to the first step only
		if i == 0 {
			bucket = classifyVolume(users, params.LowThreshold, params.HighThreshold)
			users *= thresholdMultiplier(bucket, params)
		}

		triggered := rng.Float64() < upliftProbability
		if triggered {
			users *= 1 + upliftMagnitude
			upliftSteps = append(upliftSteps, step.Name)
		}

		if params.WholeUsers {
			users = math.Floor(users)
		}

		usersPerStep = append(usersPerStep, domain.StepValue{Step: step.Name, Value: users})
		appliedRates = append(appliedRates, domain.StepValue{Step: step.Name, Value: rate})
		upliftTriggered = append(upliftTriggered, domain.StepFlag{Step: step.Name, Triggered: triggered})

		current = users
		finalUsers = users
	}

	// 3. Revenue and ROI
	revenue := finalUsers * params.AverageRevenuePerPayingUser
	financials := domain.ComputeFinancials(params.Budget, revenue)

	e.metrics.RecordRun(financials.ROI, string(bucket), upliftSteps)

	return &domain.SingleRunResult{
		Financials:      financials,
		UsersPerStep:    usersPerStep,
		AppliedRates:    appliedRates,
		UpliftTriggered: upliftTriggered,
		VolumeBucket:    bucket,
	}
}

// drawRate draws uniformly from [minRate, maxRate].
func drawRate(rng RandomSource, minRate, maxRate float64) float64 {
	return minRate + (maxRate-minRate)*rng.Float64()
}

// classifyVolume buckets a user count: < low is low, > high is high,
// anything else (boundaries included) is optimal.
func classifyVolume(users, low, high float64) domain.VolumeBucket {
	switch {
	case users < low:
		return domain.VolumeLow
	case users > high:
		return domain.VolumeHigh
	default:
		return domain.VolumeOptimal
	}
}

// thresholdMultiplier returns the count multiplier for a volume bucket.
func thresholdMultiplier(bucket domain.VolumeBucket, params domain.SimulationParameters) float64 {
	switch bucket {
	case domain.VolumeLow:
		return 1 - params.NegEffectLow
	case domain.VolumeHigh:
		return 1 - params.NegEffectHigh
	default:
		return 1 + params.PosEffect
	}
}
