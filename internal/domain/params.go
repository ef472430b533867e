package domain

import "math"

// Uplift defaults applied when the optional parameters are unset.
const (
	DefaultUpliftProbability = 0.5
	DefaultUpliftMagnitude   = 0.05
)

// SimulationParameters holds every input of a funnel evaluation.
type SimulationParameters struct {
	Budget      float64 // total marketing spend
	CostPerUser float64 // cost per landing page visitor

	// Volume thresholds for the first-step effect
	LowThreshold  float64
	HighThreshold float64

	// Effect magnitudes per volume bucket
	NegEffectLow  float64 // penalty below LowThreshold
	NegEffectHigh float64 // penalty above HighThreshold
	PosEffect     float64 // bonus inside the optimal range

	AverageRevenuePerPayingUser float64

	// Optional uplift parameters (nil = default)
	UpliftProbability *float64
	UpliftMagnitude   *float64

	// WholeUsers floors every user count to a whole user.
	WholeUsers bool
}

// Validate checks the fields the evaluator divides by or scales with.
// Probabilities and effect magnitudes are not range-checked.
func (p *SimulationParameters) Validate() error {
	if math.IsNaN(p.Budget) || math.IsInf(p.Budget, 0) {
		return ErrInvalidBudget
	}
	if p.Budget < 0 {
		return ErrNegativeBudget
	}
	if p.CostPerUser <= 0 || math.IsNaN(p.CostPerUser) {
		return ErrInvalidCostPerUser
	}
	return nil
}

// EffectiveUpliftProbability returns UpliftProbability or its default.
func (p *SimulationParameters) EffectiveUpliftProbability() float64 {
	if p.UpliftProbability == nil {
		return DefaultUpliftProbability
	}
	return *p.UpliftProbability
}

// EffectiveUpliftMagnitude returns UpliftMagnitude or its default.
func (p *SimulationParameters) EffectiveUpliftMagnitude() float64 {
	if p.UpliftMagnitude == nil {
		return DefaultUpliftMagnitude
	}
	return *p.UpliftMagnitude
}

// WithBudget returns a copy of p with Budget replaced.
func (p SimulationParameters) WithBudget(budget float64) SimulationParameters {
	p.Budget = budget
	return p
}

// Float64Ptr returns a pointer to v, for the optional parameters.
func Float64Ptr(v float64) *float64 {
	return &v
}
