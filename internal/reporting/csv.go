package reporting

import (
	"fmt"
	"strings"

	"funnel-simulator/internal/domain"
)

// RenderBudgetCSV renders a budget sweep as CSV string, one row per input budget.
func RenderBudgetCSV(o *domain.OptimizationResult) string {
	var sb strings.Builder

	// Header
	sb.WriteString("budget,total_revenue,roi,optimal\n")

	// Rows
	marked := false
	for _, p := range o.BudgetAnalysis {
		optimal := false
		if !marked && p.Budget == o.OptimalBudget && p.ROI == o.OptimalROI {
			optimal = true
			marked = true
		}
		sb.WriteString(fmt.Sprintf("%.2f,%.2f,%.6f,%t\n",
			p.Budget,
			p.TotalRevenue,
			p.ROI,
			optimal,
		))
	}

	return sb.String()
}

// RenderStepsCSV renders the per-step values of either result variant.
// The uplift column is 0/1 for a single run and a frequency for averaged runs.
func RenderStepsCSV(r domain.Result) string {
	var sb strings.Builder

	sb.WriteString("step,users,applied_rate,uplift\n")
	for _, row := range resultRows(r) {
		if !row.HasRate {
			sb.WriteString(fmt.Sprintf("%s,%.6f,,\n", row.Step, row.Users))
			continue
		}
		sb.WriteString(fmt.Sprintf("%s,%.6f,%.6f,%.6f\n", row.Step, row.Users, row.Rate, row.Uplift))
	}

	return sb.String()
}

// RenderPriceComparisonCSV renders the baseline and each price scenario.
func RenderPriceComparisonCSV(c *domain.PriceComparison) string {
	var sb strings.Builder

	sb.WriteString("price_change,total_revenue,net_profit,roi\n")
	if c.Baseline != nil {
		sb.WriteString(fmt.Sprintf("baseline,%.2f,%.2f,%.6f\n",
			c.Baseline.TotalRevenue, c.Baseline.NetProfit, c.Baseline.ROI))
	}
	for _, s := range c.Scenarios {
		if s.Result == nil {
			continue
		}
		sb.WriteString(fmt.Sprintf("%.4f,%.2f,%.2f,%.6f\n",
			s.PriceChange, s.Result.TotalRevenue, s.Result.NetProfit, s.Result.ROI))
	}

	return sb.String()
}
