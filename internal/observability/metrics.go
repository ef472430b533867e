// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Analysis labels
const (
	AnalysisAverage       = "average"
	AnalysisPrice         = "price"
	AnalysisComparePrices = "compare_prices"
	AnalysisOptimize      = "optimize"
)

// Metrics holds all Prometheus metrics for the engine.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	// Evaluator metrics
	SimulationRuns   prometheus.Counter
	UpliftsTriggered *prometheus.CounterVec
	VolumeBuckets    *prometheus.CounterVec
	RunROI           prometheus.Histogram

	// Analysis metrics
	AnalysesTotal    *prometheus.CounterVec
	AnalysisDuration *prometheus.HistogramVec
	BudgetsEvaluated prometheus.Counter

	// Optimization metrics
	LastOptimalBudget prometheus.Gauge
	LastOptimalROI    prometheus.Gauge
}

// NewMetrics creates a new Metrics instance registered with reg.
// A nil reg creates unregistered collectors.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "funnel_simulator"
	}
	factory := promauto.With(reg)

	return &Metrics{
		// Evaluator metrics
		SimulationRuns: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "evaluator",
			Name:      "runs_total",
			Help:      "Total number of single funnel evaluations",
		}),
		UpliftsTriggered: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "evaluator",
			Name:      "uplifts_triggered_total",
			Help:      "Total number of random uplifts fired by step",
		}, []string{"step"}),
		VolumeBuckets: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "evaluator",
			Name:      "volume_bucket_total",
			Help:      "First-step volume classifications by bucket",
		}, []string{"bucket"}),
		RunROI: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "evaluator",
			Name:      "run_roi",
			Help:      "ROI of individual funnel evaluations",
			Buckets:   prometheus.LinearBuckets(-1, 0.25, 13),
		}),

		// Analysis metrics
		AnalysesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "runs_total",
			Help:      "Total number of analysis runs by type",
		}, []string{"analysis"}),
		AnalysisDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "duration_seconds",
			Help:      "Analysis duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
		}, []string{"analysis"}),
		BudgetsEvaluated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "analysis",
			Name:      "budgets_evaluated_total",
			Help:      "Total number of candidate budgets evaluated",
		}),

		// Optimization metrics
		LastOptimalBudget: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "optimization",
			Name:      "last_optimal_budget",
			Help:      "Optimal budget found by the last sweep",
		}),
		LastOptimalROI: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "optimization",
			Name:      "last_optimal_roi",
			Help:      "ROI of the optimal budget found by the last sweep",
		}),
	}
}

// RecordRun records one single-run evaluation.
func (m *Metrics) RecordRun(roi float64, bucket string, upliftSteps []string) {
	if m == nil {
		return
	}
	m.SimulationRuns.Inc()
	m.RunROI.Observe(roi)
	if bucket != "" {
		m.VolumeBuckets.WithLabelValues(bucket).Inc()
	}
	for _, step := range upliftSteps {
		m.UpliftsTriggered.WithLabelValues(step).Inc()
	}
}

// RecordAnalysis records a completed analysis and its duration.
func (m *Metrics) RecordAnalysis(analysis string, durationSeconds float64) {
	if m == nil {
		return
	}
	m.AnalysesTotal.WithLabelValues(analysis).Inc()
	m.AnalysisDuration.WithLabelValues(analysis).Observe(durationSeconds)
}

// RecordBudgetEvaluated increments the budgets evaluated counter.
func (m *Metrics) RecordBudgetEvaluated() {
	if m == nil {
		return
	}
	m.BudgetsEvaluated.Inc()
}

// RecordOptimum updates the optimization gauges.
func (m *Metrics) RecordOptimum(budget, roi float64) {
	if m == nil {
		return
	}
	m.LastOptimalBudget.Set(budget)
	m.LastOptimalROI.Set(roi)
}

// WriteTextfile writes every metric gathered by g to path in the
// Prometheus text format, for the node exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
