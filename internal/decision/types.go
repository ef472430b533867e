package decision

import (
	"errors"
	"math"

	"funnel-simulator/internal/domain"
)

// Decision represents the final GO/NO-GO result.
type Decision string

const (
	DecisionGO   Decision = "GO"
	DecisionNOGO Decision = "NO-GO"
)

// Input validation errors
var (
	ErrNilResult     = errors.New("optimization result is nil")
	ErrEmptyAnalysis = errors.New("optimization result has no budget analysis")
	ErrInvalidROI    = errors.New("optimal ROI is not a finite number")
)

// DecisionInput contains the sweep figures the gate looks at.
type DecisionInput struct {
	OptimalBudget float64
	OptimalROI    float64

	// Sweep range (distinct budgets)
	MinBudget       float64
	MaxBudget       float64
	DistinctBudgets int

	// Budgets with ROI > 0
	ProfitableBudgets int
	TotalBudgets      int

	// Runs averaged per budget
	NumSimulations int

	// Recommendation text of the sweep
	Recommendation string
}

// NewInput builds DecisionInput from an optimization result.
func NewInput(opt *domain.OptimizationResult) (*DecisionInput, error) {
	if opt == nil {
		return nil, ErrNilResult
	}
	if len(opt.BudgetAnalysis) == 0 {
		return nil, ErrEmptyAnalysis
	}

	input := &DecisionInput{
		OptimalBudget:  opt.OptimalBudget,
		OptimalROI:     opt.OptimalROI,
		MinBudget:      opt.BudgetAnalysis[0].Budget,
		MaxBudget:      opt.BudgetAnalysis[0].Budget,
		TotalBudgets:   len(opt.BudgetAnalysis),
		NumSimulations: opt.NumSimulations,
		Recommendation: opt.Recommendation,
	}

	distinct := make(map[float64]struct{}, len(opt.BudgetAnalysis))
	for _, p := range opt.BudgetAnalysis {
		distinct[p.Budget] = struct{}{}
		input.MinBudget = math.Min(input.MinBudget, p.Budget)
		input.MaxBudget = math.Max(input.MaxBudget, p.Budget)
		if p.ROI > 0 {
			input.ProfitableBudgets++
		}
	}
	input.DistinctBudgets = len(distinct)

	return input, nil
}

// Validate checks the input is usable.
func (in *DecisionInput) Validate() error {
	if in == nil {
		return ErrNilResult
	}
	if in.TotalBudgets == 0 {
		return ErrEmptyAnalysis
	}
	if math.IsNaN(in.OptimalROI) || math.IsInf(in.OptimalROI, 0) {
		return ErrInvalidROI
	}
	return nil
}

// CriterionResult represents pass/fail for one criterion.
type CriterionResult struct {
	Name      string
	Threshold string
	Actual    string
	Pass      bool
}

// DecisionResult contains the final decision with checklist.
type DecisionResult struct {
	Input      DecisionInput // sweep figures the checklist was evaluated on
	Decision   Decision
	GOCriteria []CriterionResult // 3 GO criteria
	NOGOChecks []CriterionResult // 1 NO-GO trigger
}
