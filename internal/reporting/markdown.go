package reporting

import (
	"fmt"
	"strings"

	"funnel-simulator/internal/domain"
)

// RenderRunMarkdown renders a single funnel run as Markdown string.
func RenderRunMarkdown(r *domain.SingleRunResult) string {
	var sb strings.Builder

	sb.WriteString("# Funnel Run\n\n")
	sb.WriteString(fmt.Sprintf("Scenario: %s\n\n", r.ScenarioID))
	if r.VolumeBucket != "" {
		sb.WriteString(fmt.Sprintf("Volume: %s\n\n", r.VolumeBucket))
	}

	writeFinancials(&sb, r.Financials)
	writeSteps(&sb, resultRows(r), "Uplift")

	return sb.String()
}

// RenderAveragedMarkdown renders an averaged evaluation as Markdown string.
func RenderAveragedMarkdown(r *domain.AveragedResult) string {
	var sb strings.Builder

	sb.WriteString("# Averaged Funnel Runs\n\n")
	sb.WriteString(fmt.Sprintf("Scenario: %s\n\n", r.ScenarioID))
	sb.WriteString(fmt.Sprintf("Simulations: %d | Seed: %d\n\n", r.NumSimulations, r.Seed))

	writeFinancials(&sb, r.Financials)
	writeSteps(&sb, resultRows(r), "Uplift Freq")

	// ROI distribution across runs
	d := r.ROIDistribution
	sb.WriteString("## ROI Distribution\n\n")
	sb.WriteString("| Mean | Stddev | Min | P10 | Median | P90 | Max |\n")
	sb.WriteString("|------|--------|-----|-----|--------|-----|-----|\n")
	sb.WriteString(fmt.Sprintf("| %.4f | %.4f | %.4f | %.4f | %.4f | %.4f | %.4f |\n",
		d.Mean, d.Stddev, d.Min, d.P10, d.Median, d.P90, d.Max))
	sb.WriteString("\n")

	return sb.String()
}

// RenderResultMarkdown renders either result variant.
func RenderResultMarkdown(r domain.Result) string {
	switch v := r.(type) {
	case *domain.SingleRunResult:
		return RenderRunMarkdown(v)
	case *domain.AveragedResult:
		return RenderAveragedMarkdown(v)
	default:
		return ""
	}
}

// RenderOptimizationMarkdown renders a budget sweep as Markdown string.
func RenderOptimizationMarkdown(o *domain.OptimizationResult) string {
	var sb strings.Builder

	sb.WriteString("# Budget Optimization\n\n")
	sb.WriteString(fmt.Sprintf("Simulations per budget: %d | Seed: %d\n\n", o.NumSimulations, o.Seed))

	sb.WriteString("## Budget Analysis\n\n")
	if len(o.BudgetAnalysis) > 0 {
		sb.WriteString("| Budget | Revenue | ROI | Optimal |\n")
		sb.WriteString("|--------|---------|-----|---------|\n")
		marked := false
		for _, p := range o.BudgetAnalysis {
			optimal := ""
			// Only the first occurrence of the optimum is marked
			if !marked && p.Budget == o.OptimalBudget && p.ROI == o.OptimalROI {
				optimal = "*"
				marked = true
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
				formatMoney(p.Budget), formatMoney(p.TotalRevenue), formatPercent(p.ROI), optimal))
		}
	} else {
		sb.WriteString("No budgets evaluated.\n")
	}
	sb.WriteString("\n")

	sb.WriteString("## Recommendation\n\n")
	sb.WriteString(o.Recommendation + "\n")

	return sb.String()
}

// RenderPriceComparisonMarkdown renders price scenarios next to the baseline.
func RenderPriceComparisonMarkdown(c *domain.PriceComparison) string {
	var sb strings.Builder

	sb.WriteString("# Price Scenarios\n\n")
	if c.Baseline != nil {
		sb.WriteString(fmt.Sprintf("Simulations: %d | Seed: %d\n\n", c.Baseline.NumSimulations, c.Baseline.Seed))
	}

	sb.WriteString("| Price Change | Revenue | Net Profit | ROI | vs Baseline |\n")
	sb.WriteString("|--------------|---------|------------|-----|-------------|\n")
	if c.Baseline != nil {
		b := c.Baseline
		sb.WriteString(fmt.Sprintf("| baseline | %s | %s | %s | - |\n",
			formatMoney(b.TotalRevenue), formatMoney(b.NetProfit), formatPercent(b.ROI)))
	}
	for _, s := range c.Scenarios {
		if s.Result == nil {
			continue
		}
		delta := "-"
		if c.Baseline != nil {
			delta = formatMoney(s.Result.TotalRevenue - c.Baseline.TotalRevenue)
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
			formatPriceChange(s.PriceChange),
			formatMoney(s.Result.TotalRevenue), formatMoney(s.Result.NetProfit),
			formatPercent(s.Result.ROI), delta))
	}
	sb.WriteString("\n")

	return sb.String()
}

func writeFinancials(sb *strings.Builder, f domain.Financials) {
	sb.WriteString("## Financials\n\n")
	sb.WriteString("| Metric | Value |\n")
	sb.WriteString("|--------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Budget | %s |\n", formatMoney(f.Budget)))
	sb.WriteString(fmt.Sprintf("| Total Revenue | %s |\n", formatMoney(f.TotalRevenue)))
	sb.WriteString(fmt.Sprintf("| Net Profit | %s |\n", formatMoney(f.NetProfit)))
	sb.WriteString(fmt.Sprintf("| ROI | %s |\n", formatPercent(f.ROI)))
	sb.WriteString("\n")
	if f.Degenerate {
		sb.WriteString("**Zero budget:** ROI is reported as 0.\n\n")
	}
}

func writeSteps(sb *strings.Builder, rows []StepRow, upliftHeader string) {
	sb.WriteString("## Funnel Steps\n\n")
	if len(rows) == 0 {
		sb.WriteString("No funnel steps.\n\n")
		return
	}
	sb.WriteString(fmt.Sprintf("| Step | Users | Rate | %s |\n", upliftHeader))
	sb.WriteString("|------|-------|------|--------|\n")
	for _, row := range rows {
		rate, uplift := "-", "-"
		if row.HasRate {
			rate = fmt.Sprintf("%.4f", row.Rate)
			uplift = fmt.Sprintf("%.2f", row.Uplift)
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", row.Step, formatCount(row.Users), rate, uplift))
	}
	sb.WriteString("\n")
}
