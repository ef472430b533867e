// Package simulation implements the funnel evaluation engine:
// single runs, repeated-run averaging, price scenarios and budget sweeps.
package simulation

import (
	"errors"
	"log"
	"math/rand"

	"funnel-simulator/internal/domain"
	"funnel-simulator/internal/observability"
)

// DefaultSeed is the base seed used by budget sweeps when callers have no preference.
const DefaultSeed int64 = 42

// Engine errors
var (
	ErrNoSimulations    = errors.New("number of simulations must be >= 1: nothing to average")
	ErrNoBudgets        = errors.New("budget list is empty")
	ErrNilRandomSource  = errors.New("random source is nil")
	ErrNegativeRepeats  = errors.New("number of simulations must not be negative")
	ErrNoPriceScenarios = errors.New("price change list is empty")
)

// RandomSource supplies uniform draws in [0, 1).
// *rand.Rand satisfies it.
type RandomSource interface {
	Float64() float64
}

// NewRand returns a deterministic random source seeded with seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Engine evaluates funnels. It holds no per-call state and may be reused.
type Engine struct {
	logger  *log.Logger
	metrics *observability.Metrics
	verbose bool
}

// Options contains configuration for creating an Engine.
type Options struct {
	Logger  *log.Logger            // defaults to log.Default()
	Metrics *observability.Metrics // optional
	Verbose bool
}

// NewEngine creates a funnel evaluation engine.
func NewEngine(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{
		logger:  logger,
		metrics: opts.Metrics,
		verbose: opts.Verbose,
	}
}

// prepare resolves the default config and validates inputs at the package boundary.
func prepare(cfg domain.FunnelConfig, params *domain.SimulationParameters) (domain.FunnelConfig, error) {
	cfg, err := resolveConfig(cfg)
	if err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveConfig substitutes the default config for nil and validates it.
func resolveConfig(cfg domain.FunnelConfig) (domain.FunnelConfig, error) {
	if cfg == nil {
		cfg = domain.DefaultFunnelConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (e *Engine) logf(format string, args ...interface{}) {
	if e.verbose {
		e.logger.Printf("[simulation] "+format, args...)
	}
}
