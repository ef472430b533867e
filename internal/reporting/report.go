package reporting

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"funnel-simulator/internal/domain"
)

// printer formats currency and counts with English thousands separators.
var printer = message.NewPrinter(language.English)

// formatMoney renders a dollar amount, e.g. $1,234.50.
func formatMoney(v float64) string {
	if v < 0 {
		return printer.Sprintf("-$%.2f", -v)
	}
	return printer.Sprintf("$%.2f", v)
}

// formatCount renders a user count with two decimals, e.g. 1,333,333.33.
func formatCount(v float64) string {
	return printer.Sprintf("%.2f", v)
}

// formatPercent renders a ratio as a percentage, e.g. 0.123 -> 12.30%.
func formatPercent(ratio float64) string {
	return printer.Sprintf("%.2f%%", ratio*100)
}

// formatPriceChange renders a signed price change, e.g. +10.0%.
func formatPriceChange(change float64) string {
	if change > 0 {
		return printer.Sprintf("+%.1f%%", change*100)
	}
	return printer.Sprintf("%.1f%%", change*100)
}

// StepRow is one funnel step in a rendered result.
type StepRow struct {
	Step   string
	Users  float64
	Rate   float64 // drawn rate, absent for landing_page
	Uplift float64 // 0/1 for single runs, frequency for averaged runs
	// HasRate is false for landing_page, which has no conversion rate.
	HasRate bool
}

// stepRows joins users, rates and uplift values by step name.
// Users drive the order; landing_page comes first.
func stepRows(users, rates, uplift domain.StepValues) []StepRow {
	rows := make([]StepRow, 0, len(users))
	for _, u := range users {
		row := StepRow{Step: u.Step, Users: u.Value}
		if rate, ok := rates.Get(u.Step); ok {
			row.Rate = rate
			row.HasRate = true
		}
		if f, ok := uplift.Get(u.Step); ok {
			row.Uplift = f
		}
		rows = append(rows, row)
	}
	return rows
}

// flagValues converts uplift flags to 0/1 values.
func flagValues(flags domain.StepFlags) domain.StepValues {
	values := make(domain.StepValues, len(flags))
	for i, f := range flags {
		values[i] = domain.StepValue{Step: f.Step}
		if f.Triggered {
			values[i].Value = 1
		}
	}
	return values
}

// resultRows returns the step rows of either result variant.
func resultRows(r domain.Result) []StepRow {
	switch v := r.(type) {
	case *domain.SingleRunResult:
		return stepRows(v.UsersPerStep, v.AppliedRates, flagValues(v.UpliftTriggered))
	case *domain.AveragedResult:
		return stepRows(v.UsersPerStep, v.AppliedRates, v.UpliftFrequency)
	default:
		return nil
	}
}
