package domain

import (
	"fmt"
	"strings"
)

// Step name constants for the default funnel.
const (
	StepRegistered          = "registered"
	StepSiteCreated         = "site_created"
	StepPremium             = "premium"
	StepPremiumNoTrialChurn = "premium_no_trial_churn"

	// StepLandingPage is the entry point recorded ahead of the configured steps.
	// It is not itself a funnel step and never appears in a FunnelConfig.
	StepLandingPage = "landing_page"
)

// FunnelStep is one stage of the conversion pipeline with its conversion-rate range.
type FunnelStep struct {
	Name    string
	MinRate float64 // lower bound of the uniform draw
	MaxRate float64 // upper bound of the uniform draw
}

// FunnelConfig is the ordered list of funnel steps.
// Order is traversal order; the first step receives volume-threshold effects.
type FunnelConfig []FunnelStep

// DefaultFunnelConfig returns the baseline four-step funnel.
// A fresh slice is returned on every call.
func DefaultFunnelConfig() FunnelConfig {
	return FunnelConfig{
		{Name: StepRegistered, MinRate: 0.3, MaxRate: 0.5},
		{Name: StepSiteCreated, MinRate: 0.4, MaxRate: 0.6},
		{Name: StepPremium, MinRate: 0.1, MaxRate: 0.2},
		{Name: StepPremiumNoTrialChurn, MinRate: 0.7, MaxRate: 0.9},
	}
}

// Names returns step names in traversal order.
func (c FunnelConfig) Names() []string {
	names := make([]string, len(c))
	for i, s := range c {
		names[i] = s.Name
	}
	return names
}

// Clone returns an independent copy of the config.
func (c FunnelConfig) Clone() FunnelConfig {
	if c == nil {
		return nil
	}
	out := make(FunnelConfig, len(c))
	copy(out, c)
	return out
}

// reservedNameChars would break the column layout of CSV reports.
const reservedNameChars = ",\"\r\n"

// Validate checks step names are non-empty, unique and CSV-safe.
// Rate ranges are accepted verbatim.
func (c FunnelConfig) Validate() error {
	seen := make(map[string]struct{}, len(c))
	for i, s := range c {
		if s.Name == "" {
			return fmt.Errorf("step %d: %w", i, ErrEmptyStepName)
		}
		if strings.ContainsAny(s.Name, reservedNameChars) {
			return fmt.Errorf("step %d: %w: %q", i, ErrInvalidStepName, s.Name)
		}
		if s.Name == StepLandingPage {
			return fmt.Errorf("step %d: %w: %s", i, ErrReservedStepName, s.Name)
		}
		if _, ok := seen[s.Name]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicateStep, s.Name)
		}
		seen[s.Name] = struct{}{}
	}
	return nil
}
