package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config controls metric registration.
type Config struct {
	// Enabled turns metric recording on. When false, recording calls
	// are no-ops.
	Enabled bool

	// Namespace is the Prometheus namespace prefix.
	Namespace string

	// Subsystem is the Prometheus subsystem prefix.
	Subsystem string

	// EvaluationDurationBuckets overrides the histogram buckets for
	// constraint evaluation duration.
	EvaluationDurationBuckets []float64
}

// DefaultConfig returns the default metrics configuration.
func DefaultConfig() *Config {
	return &Config{
		Enabled:   true,
		Namespace: "minerva",
	}
}

// Metrics tracks governance metrics.
//
// Metrics:
//   - minerva_evaluations_total: Total evaluations by decision
//   - minerva_evaluation_duration_seconds: Evaluation duration
//   - minerva_constraint_results_total: Per-constraint results by outcome
//   - minerva_constraints_registered: Registered constraints gauge
//   - minerva_audit_entries: Retained audit entries gauge
//   - minerva_entities_stored: Stored entities gauge
//   - minerva_traversals_total: Graph traversals
//   - minerva_traversal_visited: Entities visited per traversal
//
// All recording methods are safe to call on a nil *Metrics, so callers
// can hold an optional handle without guarding every call site.
type Metrics struct {
	config   *Config
	registry *prometheus.Registry

	evaluationsTotal   *prometheus.CounterVec
	evaluationDuration prometheus.Histogram

	constraintResults     *prometheus.CounterVec
	constraintsRegistered prometheus.Gauge

	auditEntries   prometheus.Gauge
	entitiesStored prometheus.Gauge

	traversalsTotal  prometheus.Counter
	traversalVisited prometheus.Histogram
}

// New creates and registers metrics with the provided registry. If registry
// is nil, a new registry is created; retrieve it with Registry.
func New(cfg *Config, registry *prometheus.Registry) (*Metrics, *prometheus.Registry) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	if cfg.Namespace == "" {
		cfg.Namespace = "minerva"
	}
	if len(cfg.EvaluationDurationBuckets) == 0 {
		// Evaluations are in-memory and should be fast (< 10ms)
		cfg.EvaluationDurationBuckets = prometheus.ExponentialBuckets(0.000001, 2, 15)
	}

	m := &Metrics{
		config:   cfg,
		registry: registry,

		evaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "evaluations_total",
				Help:      "Total number of constraint evaluations by decision",
			},
			[]string{"decision"},
		),

		evaluationDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "evaluation_duration_seconds",
				Help:      "Duration of constraint evaluation in seconds",
				Buckets:   cfg.EvaluationDurationBuckets,
			},
		),

		constraintResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "constraint_results_total",
				Help:      "Total per-constraint results by outcome",
			},
			[]string{"constraint_id", "outcome"},
		),

		constraintsRegistered: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "constraints_registered",
				Help:      "Number of registered constraints",
			},
		),

		auditEntries: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "audit_entries",
				Help:      "Number of retained audit entries",
			},
		),

		entitiesStored: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "entities_stored",
				Help:      "Number of stored entities",
			},
		),

		traversalsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "traversals_total",
				Help:      "Total number of graph traversals",
			},
		),

		traversalVisited: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "traversal_visited",
				Help:      "Entities visited per graph traversal",
				Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
			},
		),
	}

	registry.MustRegister(
		m.evaluationsTotal,
		m.evaluationDuration,
		m.constraintResults,
		m.constraintsRegistered,
		m.auditEntries,
		m.entitiesStored,
		m.traversalsTotal,
		m.traversalVisited,
	)

	return m, registry
}

// RecordEvaluation records one evaluation call.
//
// Parameters:
//   - decision: "allowed" or "blocked"
//   - duration: wall time of the evaluation
func (m *Metrics) RecordEvaluation(decision string, duration time.Duration) {
	if m == nil || !m.config.Enabled {
		return
	}
	m.evaluationsTotal.WithLabelValues(decision).Inc()
	m.evaluationDuration.Observe(duration.Seconds())
}

// RecordConstraintResult records one constraint's result.
//
// Parameters:
//   - constraintID: constraint identifier
//   - satisfied: whether the constraint was satisfied
func (m *Metrics) RecordConstraintResult(constraintID string, satisfied bool) {
	if m == nil || !m.config.Enabled {
		return
	}
	outcome := "unsatisfied"
	if satisfied {
		outcome = "satisfied"
	}
	m.constraintResults.WithLabelValues(constraintID, outcome).Inc()
}

// UpdateConstraintCount updates the registered-constraint gauge.
func (m *Metrics) UpdateConstraintCount(n int) {
	if m == nil || !m.config.Enabled {
		return
	}
	m.constraintsRegistered.Set(float64(n))
}

// UpdateAuditEntries updates the retained audit entry gauge.
func (m *Metrics) UpdateAuditEntries(n int) {
	if m == nil || !m.config.Enabled {
		return
	}
	m.auditEntries.Set(float64(n))
}

// UpdateEntityCount updates the stored entity gauge.
func (m *Metrics) UpdateEntityCount(n int) {
	if m == nil || !m.config.Enabled {
		return
	}
	m.entitiesStored.Set(float64(n))
}

// Registry returns the Prometheus registry the metrics are registered with.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// RecordTraversal records one graph traversal and how many entities it
// visited.
func (m *Metrics) RecordTraversal(visited int) {
	if m == nil || !m.config.Enabled {
		return
	}
	m.traversalsTotal.Inc()
	m.traversalVisited.Observe(float64(visited))
}
