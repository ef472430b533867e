package decision

import "fmt"

// minEdgeBudgets is the number of distinct budgets below which the
// edge-of-sweep check is not meaningful.
const minEdgeBudgets = 3

// Evaluator evaluates decision criteria.
type Evaluator struct{}

// NewEvaluator creates a new decision evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate produces DecisionResult from DecisionInput.
// GO if ALL criteria pass and NO NO-GO triggers.
// NO-GO if ANY criterion fails or ANY trigger fires.
func (e *Evaluator) Evaluate(input DecisionInput) (*DecisionResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	goCriteria := e.evaluateGOCriteria(input)
	nogoChecks := e.evaluateNOGOTriggers(input)

	allGOPass := true
	for _, c := range goCriteria {
		if !c.Pass {
			allGOPass = false
			break
		}
	}

	anyNOGOTriggered := false
	for _, c := range nogoChecks {
		if !c.Pass { // Pass=false means triggered
			anyNOGOTriggered = true
			break
		}
	}

	decision := DecisionGO
	if !allGOPass || anyNOGOTriggered {
		decision = DecisionNOGO
	}

	return &DecisionResult{
		Input:      input,
		Decision:   decision,
		GOCriteria: goCriteria,
		NOGOChecks: nogoChecks,
	}, nil
}

// evaluateGOCriteria evaluates the 3 GO criteria.
func (e *Evaluator) evaluateGOCriteria(input DecisionInput) []CriterionResult {
	criteria := make([]CriterionResult, 3)

	// 1. OptimalROI > 0
	criteria[0] = CriterionResult{
		Name:      "Positive ROI at optimum",
		Threshold: "> 0",
		Actual:    fmt.Sprintf("%.4f", input.OptimalROI),
		Pass:      input.OptimalROI > 0,
	}

	// 2. Optimum strictly inside the sweep, otherwise the sweep should be widened
	insidePass := true
	insideActual := fmt.Sprintf("%d distinct budget(s), check skipped", input.DistinctBudgets)
	if input.DistinctBudgets >= minEdgeBudgets {
		insidePass = input.OptimalBudget != input.MinBudget && input.OptimalBudget != input.MaxBudget
		insideActual = fmt.Sprintf("optimum=%.2f, range=[%.2f, %.2f]", input.OptimalBudget, input.MinBudget, input.MaxBudget)
	}
	criteria[1] = CriterionResult{
		Name:      "Optimum inside sweep range",
		Threshold: "MinBudget < optimum < MaxBudget",
		Actual:    insideActual,
		Pass:      insidePass,
	}

	// 3. Averaged evaluation: single draws per budget are too noisy to rank
	criteria[2] = CriterionResult{
		Name:      "Averaged evaluation",
		Threshold: "simulations per budget > 1",
		Actual:    fmt.Sprintf("%d", input.NumSimulations),
		Pass:      input.NumSimulations > 1,
	}

	return criteria
}

// evaluateNOGOTriggers evaluates the NO-GO triggers.
// Pass=true means NOT triggered, Pass=false means triggered.
func (e *Evaluator) evaluateNOGOTriggers(input DecisionInput) []CriterionResult {
	checks := make([]CriterionResult, 1)

	// 1. No budget in the sweep is profitable
	triggered := input.ProfitableBudgets == 0
	checks[0] = CriterionResult{
		Name:      "Loss at every budget",
		Threshold: "profitable budgets == 0",
		Actual:    fmt.Sprintf("%d/%d", input.ProfitableBudgets, input.TotalBudgets),
		Pass:      !triggered,
	}

	return checks
}
