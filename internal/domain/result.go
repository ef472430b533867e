package domain

import "funnel-simulator/internal/metrics"

// VolumeBucket classifies the first-step user count against the thresholds.
type VolumeBucket string

// Volume bucket constants
const (
	VolumeLow     VolumeBucket = "low"
	VolumeOptimal VolumeBucket = "optimal"
	VolumeHigh    VolumeBucket = "high"
)

// Financials is the money side of a result.
// TotalRevenue is gross; NetProfit = TotalRevenue - Budget; ROI = NetProfit / Budget.
type Financials struct {
	Budget       float64
	TotalRevenue float64
	NetProfit    float64
	ROI          float64

	// Degenerate is set when Budget is 0 and ROI was reported as 0.
	Degenerate bool
}

// ComputeFinancials derives net profit and ROI from budget and gross revenue.
// A zero budget yields ROI 0 with Degenerate set instead of dividing by zero.
func ComputeFinancials(budget, revenue float64) Financials {
	f := Financials{
		Budget:       budget,
		TotalRevenue: revenue,
		NetProfit:    revenue - budget,
	}
	if budget == 0 {
		f.Degenerate = true
		return f
	}
	f.ROI = f.NetProfit / budget
	return f
}

// StepValue is a numeric value recorded for one step.
type StepValue struct {
	Step  string
	Value float64
}

// StepValues is an ordered step → value mapping.
type StepValues []StepValue

// Get returns the value for step.
func (v StepValues) Get(step string) (float64, bool) {
	for _, sv := range v {
		if sv.Step == step {
			return sv.Value, true
		}
	}
	return 0, false
}

// Names returns step names in order.
func (v StepValues) Names() []string {
	names := make([]string, len(v))
	for i, sv := range v {
		names[i] = sv.Step
	}
	return names
}

// StepFlag records whether the uplift fired for one step.
type StepFlag struct {
	Step      string
	Triggered bool
}

// StepFlags is an ordered step → flag mapping.
type StepFlags []StepFlag

// Get returns the flag for step.
func (f StepFlags) Get(step string) (triggered, ok bool) {
	for _, sf := range f {
		if sf.Step == step {
			return sf.Triggered, true
		}
	}
	return false, false
}

// Result is implemented by SingleRunResult and AveragedResult only.
// Callers type-switch on it to reach variant-specific fields.
type Result interface {
	Summary() Financials
	isResult()
}

// SingleRunResult is the outcome of one pass through the funnel.
type SingleRunResult struct {
	Financials

	ScenarioID string

	// UsersPerStep starts with landing_page followed by each configured step.
	UsersPerStep StepValues

	// AppliedRates holds the drawn rate per step, before threshold and uplift multipliers.
	AppliedRates StepValues

	UpliftTriggered StepFlags

	// VolumeBucket is the first-step classification (empty for an empty config).
	VolumeBucket VolumeBucket
}

// Summary implements Result.
func (r *SingleRunResult) Summary() Financials { return r.Financials }

func (r *SingleRunResult) isResult() {}

// AveragedResult aggregates repeated single runs under one seed.
// Financials fields are means across runs. UpliftFrequency replaces the
// single-run boolean with the fraction of runs in which uplift fired.
type AveragedResult struct {
	Financials

	ScenarioID     string
	NumSimulations int
	Seed           int64

	UsersPerStep    StepValues // per-step means, landing_page first
	AppliedRates    StepValues // per-step means
	UpliftFrequency StepValues // fraction of runs in [0,1]

	ROIDistribution metrics.Summary
}

// Summary implements Result.
func (r *AveragedResult) Summary() Financials { return r.Financials }

func (r *AveragedResult) isResult() {}

// BudgetPoint is one row of a budget sweep.
type BudgetPoint struct {
	Budget       float64
	ROI          float64
	TotalRevenue float64
}

// OptimizationResult is the outcome of a budget sweep.
type OptimizationResult struct {
	OptimalBudget  float64
	OptimalROI     float64
	OptimalRevenue float64

	// BudgetAnalysis preserves input order, duplicates included.
	BudgetAnalysis []BudgetPoint

	Recommendation string

	NumSimulations int
	Seed           int64
}

// PriceScenario is one evaluated price change.
type PriceScenario struct {
	PriceChange float64
	Result      *AveragedResult
}

// PriceComparison lays several price changes side by side with the baseline.
type PriceComparison struct {
	Baseline  *AveragedResult
	Scenarios []PriceScenario
}
