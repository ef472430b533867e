package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"

	"funnel-simulator/internal/domain"
)

// Step parsing errors
var (
	ErrInvalidStep = errors.New("step must be name:min:max")
	ErrStepRange   = errors.New("step min rate exceeds max rate")
)

// EnvPrefix is prepended to every Config variable name.
const EnvPrefix = "FUNNEL_"

// Config holds CLI defaults. Every field can be overridden by a flag.
type Config struct {
	// Simulation parameters
	Budget            float64 `env:"BUDGET"             envDefault:"20000000"`
	CostPerUser       float64 `env:"COST_PER_USER"      envDefault:"15"`
	LowThreshold      float64 `env:"LOW_THRESHOLD"      envDefault:"400000"`
	HighThreshold     float64 `env:"HIGH_THRESHOLD"     envDefault:"1200000"`
	NegEffectLow      float64 `env:"NEG_EFFECT_LOW"     envDefault:"0.3"`
	NegEffectHigh     float64 `env:"NEG_EFFECT_HIGH"    envDefault:"0.2"`
	PosEffect         float64 `env:"POS_EFFECT"         envDefault:"0.2"`
	ARPPU             float64 `env:"ARPPU"              envDefault:"120"`
	UpliftProbability float64 `env:"UPLIFT_PROBABILITY" envDefault:"0.5"`
	UpliftMagnitude   float64 `env:"UPLIFT_MAGNITUDE"   envDefault:"0.05"`
	WholeUsers        bool    `env:"WHOLE_USERS"        envDefault:"false"`

	// Funnel steps as name:min:max; empty means the default funnel
	Steps []string `env:"STEPS" envSeparator:","`

	// Analysis settings
	Seed         int64     `env:"SEED"          envDefault:"42"`
	Simulations  int       `env:"SIMULATIONS"   envDefault:"100"`
	PriceChange  float64   `env:"PRICE_CHANGE"  envDefault:"0"`
	PriceChanges []float64 `env:"PRICE_CHANGES" envDefault:"-0.1,0,0.1"                         envSeparator:","`
	Budgets      []float64 `env:"BUDGETS"       envDefault:"15000000,20000000,25000000,30000000" envSeparator:","`

	// Output
	Format      string `env:"FORMAT"       envDefault:"markdown"`
	MetricsFile string `env:"METRICS_FILE"`
	Verbose     bool   `env:"VERBOSE"      envDefault:"false"`
}

// Load reads Config from the process environment.
func Load() (Config, error) {
	return LoadFrom(nil)
}

// LoadFrom reads Config from environ, keyed by full variable name
// (FUNNEL_BUDGET). A nil map means the process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse %s* env: %w", EnvPrefix, err)
	}
	return cfg, nil
}

// Params maps the parameter fields to SimulationParameters.
func (c Config) Params() domain.SimulationParameters {
	return domain.SimulationParameters{
		Budget:                      c.Budget,
		CostPerUser:                 c.CostPerUser,
		LowThreshold:                c.LowThreshold,
		HighThreshold:               c.HighThreshold,
		NegEffectLow:                c.NegEffectLow,
		NegEffectHigh:               c.NegEffectHigh,
		PosEffect:                   c.PosEffect,
		AverageRevenuePerPayingUser: c.ARPPU,
		UpliftProbability:           domain.Float64Ptr(c.UpliftProbability),
		UpliftMagnitude:             domain.Float64Ptr(c.UpliftMagnitude),
		WholeUsers:                  c.WholeUsers,
	}
}

// Funnel parses Steps. It returns nil, meaning the default funnel, when no steps are set.
func (c Config) Funnel() (domain.FunnelConfig, error) {
	return ParseSteps(c.Steps)
}

// ParseSteps parses name:min:max values in order and validates the result.
func ParseSteps(values []string) (domain.FunnelConfig, error) {
	if len(values) == 0 {
		return nil, nil
	}

	cfg := make(domain.FunnelConfig, 0, len(values))
	for _, raw := range values {
		step, err := ParseStep(raw)
		if err != nil {
			return nil, err
		}
		cfg = append(cfg, step)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseStep parses a single name:min:max value.
func ParseStep(raw string) (domain.FunnelStep, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 3 {
		return domain.FunnelStep{}, fmt.Errorf("%w: %q", ErrInvalidStep, raw)
	}

	minRate, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return domain.FunnelStep{}, fmt.Errorf("%w: %q: min: %v", ErrInvalidStep, raw, err)
	}
	maxRate, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return domain.FunnelStep{}, fmt.Errorf("%w: %q: max: %v", ErrInvalidStep, raw, err)
	}
	if minRate > maxRate {
		return domain.FunnelStep{}, fmt.Errorf("%w: %q", ErrStepRange, raw)
	}

	return domain.FunnelStep{Name: parts[0], MinRate: minRate, MaxRate: maxRate}, nil
}
