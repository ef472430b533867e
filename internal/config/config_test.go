package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"funnel-simulator/internal/domain"
)

func TestLoad_Defaults(t *testing.T) {
	// An empty environment keeps exported FUNNEL_* variables out of the test
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, 20000000.0, cfg.Budget)
	assert.Equal(t, 15.0, cfg.CostPerUser)
	assert.Equal(t, 400000.0, cfg.LowThreshold)
	assert.Equal(t, 1200000.0, cfg.HighThreshold)
	assert.Equal(t, 0.3, cfg.NegEffectLow)
	assert.Equal(t, 0.2, cfg.NegEffectHigh)
	assert.Equal(t, 0.2, cfg.PosEffect)
	assert.Equal(t, 120.0, cfg.ARPPU)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 100, cfg.Simulations)
	assert.Equal(t, []float64{15000000, 20000000, 25000000, 30000000}, cfg.Budgets)
	assert.Equal(t, []float64{-0.1, 0, 0.1}, cfg.PriceChanges)
	assert.Equal(t, "markdown", cfg.Format)
	assert.Empty(t, cfg.Steps)
	assert.False(t, cfg.WholeUsers)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("FUNNEL_BUDGET", "5000")
	t.Setenv("FUNNEL_SEED", "7")
	t.Setenv("FUNNEL_BUDGETS", "100,200")
	t.Setenv("FUNNEL_STEPS", "signup:0.2:0.4,purchase:0.1:0.3")
	t.Setenv("FUNNEL_WHOLE_USERS", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5000.0, cfg.Budget)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, []float64{100, 200}, cfg.Budgets)
	assert.True(t, cfg.WholeUsers)

	funnel, err := cfg.Funnel()
	require.NoError(t, err)
	assert.Equal(t, domain.FunnelConfig{
		{Name: "signup", MinRate: 0.2, MaxRate: 0.4},
		{Name: "purchase", MinRate: 0.1, MaxRate: 0.3},
	}, funnel)
}

func TestLoad_InvalidValue(t *testing.T) {
	t.Setenv("FUNNEL_BUDGET", "lots")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse FUNNEL_* env")
}

func TestLoadFrom(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"FUNNEL_SIMULATIONS": "3",
		"FUNNEL_FORMAT":      "csv",
		"BUDGET":             "1", // unprefixed names are ignored
	})
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Simulations)
	assert.Equal(t, "csv", cfg.Format)
	assert.Equal(t, 20000000.0, cfg.Budget)
}

func TestConfig_Params(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	p := cfg.Params()
	require.NoError(t, p.Validate())
	assert.Equal(t, 120.0, p.AverageRevenuePerPayingUser)
	assert.Equal(t, 0.5, p.EffectiveUpliftProbability())
	assert.Equal(t, 0.05, p.EffectiveUpliftMagnitude())

	funnel, err := cfg.Funnel()
	require.NoError(t, err)
	assert.Nil(t, funnel, "no steps means the default funnel")
}

func TestParseStep(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    domain.FunnelStep
		wantErr error
	}{
		{"valid", "signup:0.2:0.4", domain.FunnelStep{Name: "signup", MinRate: 0.2, MaxRate: 0.4}, nil},
		{"fixed rate", " trial:0.5:0.5 ", domain.FunnelStep{Name: "trial", MinRate: 0.5, MaxRate: 0.5}, nil},
		{"missing max", "signup:0.2", domain.FunnelStep{}, ErrInvalidStep},
		{"bad number", "signup:x:0.4", domain.FunnelStep{}, ErrInvalidStep},
		{"inverted", "signup:0.4:0.2", domain.FunnelStep{}, ErrStepRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseStep(tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSteps_ValidatesFunnel(t *testing.T) {
	_, err := ParseSteps([]string{"signup:0.1:0.2", "signup:0.3:0.4"})
	assert.True(t, errors.Is(err, domain.ErrDuplicateStep))

	_, err = ParseSteps([]string{"landing_page:0.1:0.2"})
	assert.True(t, errors.Is(err, domain.ErrReservedStepName))

	_, err = ParseSteps([]string{":0.1:0.2"})
	assert.True(t, errors.Is(err, domain.ErrEmptyStepName))

	_, err = ParseSteps([]string{"sign,up:0.5:0.5"})
	assert.True(t, errors.Is(err, domain.ErrInvalidStepName))
}
