package idhash

import (
	"crypto/sha256"
	"strconv"
	"strings"

	"github.com/mr-tron/base58"

	"funnel-simulator/internal/domain"
)

// ComputeScenarioID computes a deterministic scenario_id using SHA256.
// Formula: SHA256(steps|budget|cost_per_user|thresholds|effects|arppu|uplift|whole_users|seed|num_simulations)
// where steps is "name:min:max" joined by ",". Uplift values are the effective
// ones, so an unset parameter and its explicit default hash identically.
// Returns base58-encoded hash.
func ComputeScenarioID(
	cfg domain.FunnelConfig,
	params domain.SimulationParameters,
	seed int64,
	numSimulations int,
) string {
	steps := make([]string, len(cfg))
	for i, s := range cfg {
		steps[i] = s.Name + ":" + formatFloat(s.MinRate) + ":" + formatFloat(s.MaxRate)
	}

	fields := []string{
		strings.Join(steps, ","),
		formatFloat(params.Budget),
		formatFloat(params.CostPerUser),
		formatFloat(params.LowThreshold),
		formatFloat(params.HighThreshold),
		formatFloat(params.NegEffectLow),
		formatFloat(params.NegEffectHigh),
		formatFloat(params.PosEffect),
		formatFloat(params.AverageRevenuePerPayingUser),
		formatFloat(params.EffectiveUpliftProbability()),
		formatFloat(params.EffectiveUpliftMagnitude()),
		strconv.FormatBool(params.WholeUsers),
		strconv.FormatInt(seed, 10),
		strconv.Itoa(numSimulations),
	}

	hash := sha256.Sum256([]byte(strings.Join(fields, "|")))
	return base58.Encode(hash[:])
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
