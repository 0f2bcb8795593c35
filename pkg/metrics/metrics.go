// Package metrics provides Prometheus metrics for simulation runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the simulator.
type Manager struct {
	namespace string
	subsystem string
	registry  prometheus.Registerer

	// Throughput metrics
	gamesSimulated   prometheus.Counter
	playsSimulated   prometheus.Counter
	seasonsSimulated prometheus.Counter
	gameDuration     prometheus.Histogram
	playsPerGame     prometheus.Histogram

	// Outcome metrics
	penaltiesCalled prometheus.Counter
	injuriesRolled  prometheus.Counter
	gameTaskErrors  prometheus.Counter

	// Worker metrics
	workerActiveCount prometheus.Gauge
}

// Option applies a configuration option to the Manager.
type Option func(*Manager)

// WithRegistry sets the Prometheus registerer used for metric registration.
func WithRegistry(r prometheus.Registerer) Option {
	return func(m *Manager) {
		if r != nil {
			m.registry = r
		}
	}
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "gridiron",
		subsystem: "sim",
		registry:  prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.gamesSimulated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "games_simulated_total",
		Help:      "Total number of games simulated",
	})

	m.playsSimulated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "plays_simulated_total",
		Help:      "Total number of plays simulated",
	})

	m.seasonsSimulated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "seasons_simulated_total",
		Help:      "Total number of seasons simulated to completion",
	})

	m.gameDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "game_duration_milliseconds",
		Help:      "Histogram of wall-clock time spent simulating one game",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	})

	m.playsPerGame = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "plays_per_game",
		Help:      "Histogram of total plays per simulated game",
		Buckets:   prometheus.LinearBuckets(40, 10, 12),
	})

	m.penaltiesCalled = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "penalties_called_total",
		Help:      "Total number of penalties called across simulated games",
	})

	m.injuriesRolled = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "injuries_total",
		Help:      "Total number of injuries rolled across simulated games",
	})

	m.gameTaskErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "game_task_errors_total",
		Help:      "Total number of failed game simulation tasks",
	})

	m.workerActiveCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_active_count",
		Help:      "Number of active season worker goroutines",
	})
}

// Registry returns the gatherer backing the global manager, for /metrics.
func Registry() *prometheus.Registry {
	return customRegistry
}

// Package-level record helpers operating on the global manager.

func RecordGameSimulated()              { globalManager.gamesSimulated.Inc() }
func RecordPlaysSimulated(n int)        { globalManager.playsSimulated.Add(float64(n)) }
func RecordSeasonSimulated()            { globalManager.seasonsSimulated.Inc() }
func RecordGameDuration(ms float64)     { globalManager.gameDuration.Observe(ms) }
func RecordPlaysPerGame(plays int)      { globalManager.playsPerGame.Observe(float64(plays)) }
func RecordPenaltyCalled()              { globalManager.penaltiesCalled.Inc() }
func RecordInjury()                     { globalManager.injuriesRolled.Inc() }
func RecordGameTaskError()              { globalManager.gameTaskErrors.Inc() }

// The worker gauge is incremented and decremented per worker goroutine so
// concurrent pools compose instead of overwriting each other's counts.

func IncWorkerActive() { globalManager.workerActiveCount.Inc() }
func DecWorkerActive() { globalManager.workerActiveCount.Dec() }
