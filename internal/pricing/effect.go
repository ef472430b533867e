// Package pricing models how a price change shifts funnel conversion rates.
package pricing

import "funnel-simulator/internal/domain"

// stepSensitivities holds how strongly each default step reacts to price.
// Steps not listed have sensitivity 0.
var stepSensitivities = map[string]float64{
	domain.StepRegistered:          0.1, // early decisions barely notice price
	domain.StepSiteCreated:         0.0,
	domain.StepPremium:             0.5,
	domain.StepPremiumNoTrialChurn: 0.8, // retention reacts most
}

// ApplyPriceEffect returns rate * (1 - priceChange*sensitivity), clamped to [0, 1].
// priceChange is a signed fraction: positive is an increase, negative a discount.
func ApplyPriceEffect(rate, priceChange, sensitivity float64) float64 {
	adjusted := rate * (1 - priceChange*sensitivity)
	return max(0.0, min(1.0, adjusted))
}

// Sensitivity returns the price sensitivity for a step name.
func Sensitivity(step string) float64 {
	return stepSensitivities[step]
}

// AdjustConfig derives a new config with each step's min and max rate
// shifted independently by ApplyPriceEffect. The input is not modified.
func AdjustConfig(cfg domain.FunnelConfig, priceChange float64) domain.FunnelConfig {
	adjusted := cfg.Clone()
	for i := range adjusted {
		step := &adjusted[i]
		s := Sensitivity(step.Name)
		step.MinRate = ApplyPriceEffect(step.MinRate, priceChange, s)
		step.MaxRate = ApplyPriceEffect(step.MaxRate, priceChange, s)
	}
	return adjusted
}
