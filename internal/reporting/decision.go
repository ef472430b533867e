package reporting

import (
	"fmt"
	"strings"

	"funnel-simulator/internal/decision"
)

// RenderDecisionMarkdown renders the investment gate for a budget sweep:
// the sweep it judged, one checklist row per check and a summary that
// either clears the recommendation or lists what blocks it.
func RenderDecisionMarkdown(result *decision.DecisionResult) string {
	var sb strings.Builder
	in := result.Input

	sb.WriteString("# Budget Decision Gate\n\n")
	sb.WriteString(fmt.Sprintf("## Decision: %s\n\n", result.Decision))

	sb.WriteString("## Sweep\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Optimal Budget | %s |\n", formatMoney(in.OptimalBudget)))
	sb.WriteString(fmt.Sprintf("| Optimal ROI | %s |\n", formatPercent(in.OptimalROI)))
	sb.WriteString(fmt.Sprintf("| Sweep Range | %s to %s |\n", formatMoney(in.MinBudget), formatMoney(in.MaxBudget)))
	sb.WriteString(fmt.Sprintf("| Distinct Budgets | %d |\n", in.DistinctBudgets))
	sb.WriteString(fmt.Sprintf("| Profitable Budgets | %d/%d |\n", in.ProfitableBudgets, in.TotalBudgets))
	sb.WriteString(fmt.Sprintf("| Simulations per Budget | %d |\n", in.NumSimulations))
	sb.WriteString("\n")

	sb.WriteString("## Checklist\n\n")
	sb.WriteString("| Check | Kind | Threshold | Actual | Result |\n")
	sb.WriteString("|-------|------|-----------|--------|--------|\n")
	goPassed := 0
	for _, c := range result.GOCriteria {
		status := "FAIL"
		if c.Pass {
			status = "PASS"
			goPassed++
		}
		sb.WriteString(fmt.Sprintf("| %s | GO | %s | %s | %s |\n", c.Name, c.Threshold, c.Actual, status))
	}
	triggered := 0
	for _, c := range result.NOGOChecks {
		// Pass=false means the trigger fired
		status := "CLEAR"
		if !c.Pass {
			status = "TRIGGERED"
			triggered++
		}
		sb.WriteString(fmt.Sprintf("| %s | NO-GO | %s | %s | %s |\n", c.Name, c.Threshold, c.Actual, status))
	}
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("GO criteria passed: %d/%d | NO-GO triggers fired: %d/%d\n\n",
		goPassed, len(result.GOCriteria), triggered, len(result.NOGOChecks)))

	recommendation := in.Recommendation
	if recommendation == "" {
		recommendation = "Best budget: " + formatMoney(in.OptimalBudget)
	}

	sb.WriteString("## Summary\n\n")
	if result.Decision == decision.DecisionGO {
		sb.WriteString(fmt.Sprintf("Cleared: %s.\n\n", recommendation))
		sb.WriteString(fmt.Sprintf("Every check passed across %s to %s; the budget can be rolled out.\n",
			formatMoney(in.MinBudget), formatMoney(in.MaxBudget)))
		return sb.String()
	}

	sb.WriteString(fmt.Sprintf("Blocked: %s.\n\n", recommendation))
	for _, c := range result.GOCriteria {
		if !c.Pass {
			sb.WriteString(fmt.Sprintf("- %s failed (actual: %s)\n", c.Name, c.Actual))
		}
	}
	for _, c := range result.NOGOChecks {
		if !c.Pass {
			sb.WriteString(fmt.Sprintf("- %s fired (actual: %s)\n", c.Name, c.Actual))
		}
	}

	return sb.String()
}
