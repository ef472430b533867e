package simulation

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"funnel-simulator/internal/domain"
)

// seqSource replays a fixed sequence of draws, cycling when exhausted.
type seqSource struct {
	values []float64
	i      int
}

func (s *seqSource) Float64() float64 {
	v := s.values[s.i%len(s.values)]
	s.i++
	return v
}

// workshopParams returns the reference parameter set.
func workshopParams() domain.SimulationParameters {
	return domain.SimulationParameters{
		Budget:                      20000000,
		CostPerUser:                 15,
		LowThreshold:                400000,
		HighThreshold:               1200000,
		NegEffectLow:                0.3,
		NegEffectHigh:               0.2,
		PosEffect:                   0.2,
		AverageRevenuePerPayingUser: 120,
	}
}

// smallParams returns a parameter set with exact arithmetic: 100 landing users.
func smallParams() domain.SimulationParameters {
	return domain.SimulationParameters{
		Budget:                      1500,
		CostPerUser:                 15,
		LowThreshold:                10,
		HighThreshold:               100,
		NegEffectLow:                0.5,
		NegEffectHigh:               0.25,
		PosEffect:                   0.5,
		AverageRevenuePerPayingUser: 10,
	}
}

func fixedConfig(rates ...float64) domain.FunnelConfig {
	names := []string{"signup", "activate", "purchase", "renew"}
	cfg := make(domain.FunnelConfig, len(rates))
	for i, r := range rates {
		cfg[i] = domain.FunnelStep{Name: names[i], MinRate: r, MaxRate: r}
	}
	return cfg
}

func TestRun_EndToEnd(t *testing.T) {
	engine := NewEngine(Options{})

	result, err := engine.Run(NewRand(7), nil, workshopParams())
	require.NoError(t, err)

	landing, ok := result.UsersPerStep.Get(domain.StepLandingPage)
	require.True(t, ok)
	assert.InDelta(t, 20000000.0/15.0, landing, 1e-6)
	assert.False(t, math.IsNaN(result.ROI) || math.IsInf(result.ROI, 0), "roi must be finite")

	expected := append([]string{domain.StepLandingPage}, domain.DefaultFunnelConfig().Names()...)
	assert.Equal(t, expected, result.UsersPerStep.Names())
	assert.Equal(t, domain.DefaultFunnelConfig().Names(), result.AppliedRates.Names())
	require.Len(t, result.UpliftTriggered, 4)
	assert.NotEmpty(t, result.ScenarioID)

	// Financials stay mutually consistent
	final := result.UsersPerStep[len(result.UsersPerStep)-1].Value
	assert.InDelta(t, final*120, result.TotalRevenue, 1e-6)
	assert.InDelta(t, result.TotalRevenue-result.Budget, result.NetProfit, 1e-6)
	assert.InDelta(t, result.NetProfit/result.Budget, result.ROI, 1e-12)
}

func TestRun_AppliedRatesWithinRange(t *testing.T) {
	engine := NewEngine(Options{})
	cfg := domain.DefaultFunnelConfig()
	rng := NewRand(99)

	for i := 0; i < 50; i++ {
		result, err := engine.Run(rng, cfg, workshopParams())
		require.NoError(t, err)
		for j, step := range cfg {
			rate := result.AppliedRates[j].Value
			assert.GreaterOrEqual(t, rate, step.MinRate)
			assert.LessOrEqual(t, rate, step.MaxRate)
		}
	}
}

func TestRun_ExactArithmetic(t *testing.T) {
	engine := NewEngine(Options{})

	// One step at rate 0.5: 100 → 50 users, optimal → ×1.5 = 75, uplift draw 0.4 < 0.5 → ×1.05
	src := &seqSource{values: []float64{0.0, 0.4}}
	result, err := engine.Run(src, fixedConfig(0.5), smallParams())
	require.NoError(t, err)

	users, _ := result.UsersPerStep.Get("signup")
	assert.InDelta(t, 78.75, users, 1e-9)

	rate, _ := result.AppliedRates.Get("signup")
	assert.Equal(t, 0.5, rate, "applied rate is recorded before multipliers")

	triggered, _ := result.UpliftTriggered.Get("signup")
	assert.True(t, triggered)
	assert.Equal(t, domain.VolumeOptimal, result.VolumeBucket)

	assert.InDelta(t, 787.5, result.TotalRevenue, 1e-9)
	assert.InDelta(t, (787.5-1500)/1500, result.ROI, 1e-12)
}

func TestRun_UniformDraw(t *testing.T) {
	engine := NewEngine(Options{})
	cfg := domain.FunnelConfig{{Name: "signup", MinRate: 0.2, MaxRate: 0.6}}

	// Rate draw 0.25 → 0.2 + 0.4*0.25 = 0.3; uplift draw 0.9 → not triggered
	result, err := engine.Run(&seqSource{values: []float64{0.25, 0.9}}, cfg, smallParams())
	require.NoError(t, err)

	rate, _ := result.AppliedRates.Get("signup")
	assert.InDelta(t, 0.3, rate, 1e-12)
	triggered, _ := result.UpliftTriggered.Get("signup")
	assert.False(t, triggered)
}

func TestRun_ThresholdBuckets(t *testing.T) {
	tests := []struct {
		name       string
		rate       float64
		wantBucket domain.VolumeBucket
		wantUsers  float64
	}{
		// 100 landing users; low=10, high=100; uplift never fires
		{name: "below low", rate: 0.05, wantBucket: domain.VolumeLow, wantUsers: 5 * 0.5},
		{name: "at low boundary is optimal", rate: 0.1, wantBucket: domain.VolumeOptimal, wantUsers: 10 * 1.5},
		{name: "inside range", rate: 0.5, wantBucket: domain.VolumeOptimal, wantUsers: 50 * 1.5},
		{name: "at high boundary is optimal", rate: 1.0, wantBucket: domain.VolumeOptimal, wantUsers: 100 * 1.5},
	}

	engine := NewEngine(Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := smallParams()
			params.UpliftProbability = domain.Float64Ptr(0)

			result, err := engine.Run(NewRand(1), fixedConfig(tt.rate), params)
			require.NoError(t, err)
			assert.Equal(t, tt.wantBucket, result.VolumeBucket)
			users, _ := result.UsersPerStep.Get("signup")
			assert.InDelta(t, tt.wantUsers, users, 1e-9)
		})
	}

	t.Run("above high", func(t *testing.T) {
		params := smallParams()
		params.Budget = 3000 // 200 landing users
		params.UpliftProbability = domain.Float64Ptr(0)

		result, err := engine.Run(NewRand(1), fixedConfig(0.75), params)
		require.NoError(t, err)
		assert.Equal(t, domain.VolumeHigh, result.VolumeBucket)
		users, _ := result.UsersPerStep.Get("signup")
		assert.InDelta(t, 150*0.75, users, 1e-9)
	})
}

func TestRun_ThresholdOnlyOnFirstStep(t *testing.T) {
	engine := NewEngine(Options{})
	params := smallParams()
	params.UpliftProbability = domain.Float64Ptr(0)

	// First step lands in optimal (50 → 75), second step drops to 7.5, below
	// the low threshold, and must not be penalised.
	result, err := engine.Run(NewRand(1), fixedConfig(0.5, 0.1), params)
	require.NoError(t, err)

	users, _ := result.UsersPerStep.Get("activate")
	assert.InDelta(t, 7.5, users, 1e-9)
}

func TestRun_UpliftProbabilityExtremes(t *testing.T) {
	engine := NewEngine(Options{})
	cfg := fixedConfig(0.5, 0.5, 0.5)

	never := smallParams()
	never.UpliftProbability = domain.Float64Ptr(0)
	result, err := engine.Run(NewRand(3), cfg, never)
	require.NoError(t, err)
	for _, f := range result.UpliftTriggered {
		assert.False(t, f.Triggered, "step %s", f.Step)
	}

	always := smallParams()
	always.UpliftProbability = domain.Float64Ptr(1)
	always.UpliftMagnitude = domain.Float64Ptr(0.1)
	result, err = engine.Run(NewRand(3), cfg, always)
	require.NoError(t, err)
	for _, f := range result.UpliftTriggered {
		assert.True(t, f.Triggered, "step %s", f.Step)
	}
	// 100 → 50 ×1.5 ×1.1 = 82.5 → 41.25 ×1.1 = 45.375 → 22.6875 ×1.1
	users, _ := result.UsersPerStep.Get("purchase")
	assert.InDelta(t, 24.95625, users, 1e-9)
}

func TestRun_WholeUsers(t *testing.T) {
	engine := NewEngine(Options{})
	params := smallParams()
	params.Budget = 1000 // 66.67 landing users
	params.WholeUsers = true
	params.UpliftProbability = domain.Float64Ptr(0)

	result, err := engine.Run(NewRand(1), fixedConfig(0.5, 0.5), params)
	require.NoError(t, err)

	landing, _ := result.UsersPerStep.Get(domain.StepLandingPage)
	assert.Equal(t, 66.0, landing)
	signup, _ := result.UsersPerStep.Get("signup")
	assert.Equal(t, 49.0, signup) // floor(33 * 1.5)
	activate, _ := result.UsersPerStep.Get("activate")
	assert.Equal(t, 24.0, activate) // floor(24.5)
}

func TestRun_EmptyConfig(t *testing.T) {
	engine := NewEngine(Options{})

	result, err := engine.Run(NewRand(1), domain.FunnelConfig{}, smallParams())
	require.NoError(t, err)

	assert.Equal(t, []string{domain.StepLandingPage}, result.UsersPerStep.Names())
	assert.Empty(t, result.AppliedRates)
	assert.Empty(t, result.UpliftTriggered)
	assert.Equal(t, 0.0, result.TotalRevenue)
	assert.Equal(t, -1.0, result.ROI)
	assert.False(t, result.Degenerate)
	assert.Equal(t, domain.VolumeBucket(""), result.VolumeBucket)

	zero := smallParams()
	zero.Budget = 0
	result, err = engine.Run(NewRand(1), domain.FunnelConfig{}, zero)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.ROI)
	assert.True(t, result.Degenerate)
}

func TestRun_CustomConfigOrder(t *testing.T) {
	engine := NewEngine(Options{})
	cfg := domain.FunnelConfig{
		{Name: "signup", MinRate: 0.2, MaxRate: 0.4},
		{Name: "activate", MinRate: 0.5, MaxRate: 0.7},
		{Name: "purchase", MinRate: 0.1, MaxRate: 0.3},
	}

	result, err := engine.Run(NewRand(5), cfg, workshopParams())
	require.NoError(t, err)
	assert.Equal(t, []string{domain.StepLandingPage, "signup", "activate", "purchase"}, result.UsersPerStep.Names())
}

func TestRun_InvalidInput(t *testing.T) {
	engine := NewEngine(Options{})

	_, err := engine.Run(nil, nil, workshopParams())
	assert.True(t, errors.Is(err, ErrNilRandomSource))

	bad := workshopParams()
	bad.CostPerUser = 0
	_, err = engine.Run(NewRand(1), nil, bad)
	assert.True(t, errors.Is(err, domain.ErrInvalidCostPerUser))

	bad = workshopParams()
	bad.Budget = -10
	_, err = engine.Run(NewRand(1), nil, bad)
	assert.True(t, errors.Is(err, domain.ErrNegativeBudget))

	dup := domain.FunnelConfig{{Name: "a"}, {Name: "a"}}
	_, err = engine.Run(NewRand(1), dup, workshopParams())
	assert.True(t, errors.Is(err, domain.ErrDuplicateStep))
}

func TestRun_DeterministicGivenSource(t *testing.T) {
	engine := NewEngine(Options{})

	a, err := engine.Run(NewRand(2024), nil, workshopParams())
	require.NoError(t, err)
	b, err := engine.Run(NewRand(2024), nil, workshopParams())
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestClassifyVolume(t *testing.T) {
	assert.Equal(t, domain.VolumeLow, classifyVolume(9.99, 10, 20))
	assert.Equal(t, domain.VolumeOptimal, classifyVolume(10, 10, 20))
	assert.Equal(t, domain.VolumeOptimal, classifyVolume(20, 10, 20))
	assert.Equal(t, domain.VolumeHigh, classifyVolume(20.01, 10, 20))
}
