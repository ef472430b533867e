package metrics

import (
	"math"
	"sort"
)

// Summary describes the distribution of a per-run quantity across repeated runs.
type Summary struct {
	Count  int
	Mean   float64
	Stddev float64
	Min    float64
	P10    float64 // 10th percentile
	Median float64
	P90    float64 // 90th percentile
	Max    float64
}

// Average returns the arithmetic mean of values.
// An empty slice averages to 0 rather than failing.
func Average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Stddev calculates sample standard deviation (n-1 denominator).
func Stddev(values []float64, mean float64) float64 {
	n := len(values)
	if n < 2 {
		return 0 // Need at least 2 samples for sample stddev
	}
	sumSq := 0.0
	for _, v := range values {
		diff := v - mean
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq / float64(n-1))
}

// Percentile uses linear interpolation.
// sorted must be pre-sorted ASC.
// p is percentile (0.10 = 10th percentile).
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}

	idx := p * float64(n-1)
	lower := int(idx)
	upper := lower + 1
	if upper >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

// Summarize computes the full distribution summary of values.
// The input slice is not modified.
func Summarize(values []float64) Summary {
	n := len(values)
	if n == 0 {
		return Summary{}
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mean := Average(values)
	return Summary{
		Count:  n,
		Mean:   mean,
		Stddev: Stddev(values, mean),
		Min:    sorted[0],
		P10:    Percentile(sorted, 0.10),
		Median: Percentile(sorted, 0.50),
		P90:    Percentile(sorted, 0.90),
		Max:    sorted[n-1],
	}
}
