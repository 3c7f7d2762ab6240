// Package metrics provides Prometheus metrics for the finsim projector.
package metrics

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages the Prometheus collectors for the simulator.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Calendar
	daysSimulated   prometheus.Counter
	monthsClosed    prometheus.Counter
	scenariosRun    *prometheus.CounterVec
	scenarioRuntime prometheus.Histogram

	// Insurance
	premiumsProcessed *prometheus.CounterVec
	policyLapses      prometheus.Counter
	policyRenewals    prometheus.Counter
	claimsSettled     *prometheus.CounterVec
	claimPlayerShare  prometheus.Counter

	// Budget
	budgetScore prometheus.Histogram

	// Anti-cheat
	validations  *prometheus.CounterVec
	anomalyFlags *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// DefaultDurationBuckets bounds scenario runtimes in milliseconds, 1ms to about 33s.
var DefaultDurationBuckets = prometheus.ExponentialBuckets(1, 2, 16) //nolint:gochecknoglobals // read-only bucket layout

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "finsim",
		subsystem:        "sim",
		histogramBuckets: DefaultDurationBuckets,
		enabled:          true,
		constLabels:      make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)
	labels := prometheus.Labels(m.constLabels)

	m.daysSimulated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "days_simulated_total",
		Help: "Total number of game days advanced by the projector",
	})

	m.monthsClosed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "months_closed_total",
		Help: "Total number of month-end closes processed",
	})

	m.scenariosRun = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "scenarios_total",
		Help: "Total number of scenario projections by outcome",
	}, []string{"outcome"})

	m.scenarioRuntime = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name:    "scenario_duration_milliseconds",
		Help:    "Wall-clock time spent projecting one scenario",
		Buckets: m.histogramBuckets,
	})

	m.premiumsProcessed = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "premiums_total",
		Help: "Monthly premiums processed by payment status",
	}, []string{"paid"})

	m.policyLapses = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "policy_lapses_total",
		Help: "Policies that transitioned from active to lapsed",
	})

	m.policyRenewals = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "policy_renewals_total",
		Help: "Annual policy renewals",
	})

	m.claimsSettled = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "claims_total",
		Help: "Claims settled by coverage outcome",
	}, []string{"covered"})

	m.claimPlayerShare = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "claim_player_share_minor_units_total",
		Help: "Sum of the player-paid share of settled claims in minor units",
	})

	m.budgetScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name:    "budget_score",
		Help:    "Distribution of monthly budget scores",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	})

	m.validations = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "validations_total",
		Help: "Anti-cheat validations by check and result",
	}, []string{"check", "valid"})

	m.anomalyFlags = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, ConstLabels: labels,
		Name: "anomaly_flags_total",
		Help: "Anti-cheat flags raised by class",
	}, []string{"class"})
}

// RecordDaySimulated counts one advanced game day.
func (m *Manager) RecordDaySimulated() {
	if m.enabled {
		m.daysSimulated.Inc()
	}
}

// RecordMonthClosed counts one month-end close.
func (m *Manager) RecordMonthClosed() {
	if m.enabled {
		m.monthsClosed.Inc()
	}
}

// RecordScenario counts a finished projection and its duration.
func (m *Manager) RecordScenario(outcome string, durationMs float64) {
	if m.enabled {
		m.scenariosRun.WithLabelValues(outcome).Inc()
		m.scenarioRuntime.Observe(durationMs)
	}
}

// RecordPremium counts a processed premium.
func (m *Manager) RecordPremium(paid bool) {
	if m.enabled {
		m.premiumsProcessed.WithLabelValues(strconv.FormatBool(paid)).Inc()
	}
}

// RecordPolicyLapse counts an active-to-lapsed transition.
func (m *Manager) RecordPolicyLapse() {
	if m.enabled {
		m.policyLapses.Inc()
	}
}

// RecordPolicyRenewal counts an annual renewal.
func (m *Manager) RecordPolicyRenewal() {
	if m.enabled {
		m.policyRenewals.Inc()
	}
}

// RecordClaim counts a settled claim and the player's share of it.
func (m *Manager) RecordClaim(covered bool, playerPays int64) {
	if m.enabled {
		m.claimsSettled.WithLabelValues(strconv.FormatBool(covered)).Inc()
		if playerPays > 0 {
			m.claimPlayerShare.Add(float64(playerPays))
		}
	}
}

// RecordBudgetScore observes a monthly budget score.
func (m *Manager) RecordBudgetScore(score int) {
	if m.enabled {
		m.budgetScore.Observe(float64(score))
	}
}

// RecordValidation counts one anti-cheat check outcome.
func (m *Manager) RecordValidation(check string, valid bool) {
	if m.enabled {
		m.validations.WithLabelValues(check, strconv.FormatBool(valid)).Inc()
	}
}

// RecordAnomaly counts one anti-cheat flag by class.
func (m *Manager) RecordAnomaly(class string) {
	if m.enabled {
		m.anomalyFlags.WithLabelValues(class).Inc()
	}
}

// Default returns the process-wide manager registered on GetRegistry().
func Default() *Manager {
	return globalManager
}

// GetRegistry returns the custom registry backing Default().
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// WriteTextfile writes every metric in g to path in the Prometheus text
// format, for pickup by a node_exporter textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrExportFailed, path, err)
	}
	return nil
}
