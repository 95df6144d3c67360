// Package metrics provides Prometheus metrics for the benchcoach service.
package metrics

import (
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Game
	commandsApplied   *prometheus.CounterVec
	commandsNoop      *prometheus.CounterVec
	commandsReplayed  prometheus.Counter
	applyLatency      prometheus.Histogram
	eventsLogged      *prometheus.CounterVec
	substitutions     prometheus.Counter
	ticksApplied      prometheus.Counter
	gamesStarted      prometheus.Counter
	gamesReset        prometheus.Counter
	playersByStatus   *prometheus.GaugeVec
	teamScore         *prometheus.GaugeVec
	gameClockSeconds  prometheus.Gauge
	shotClockSeconds  prometheus.Gauge
	snapshotPublishes prometheus.Counter
	snapshotVersion   prometheus.Gauge

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Queue
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueUtilization   prometheus.Gauge
	queueEnqueued      prometheus.Counter
	queueDequeued      prometheus.Counter
	queueEnqueueErrors prometheus.Counter

	// Worker
	workerRunning prometheus.Gauge
	workerErrors  prometheus.Counter

	// Errors
	errorsByComponent *prometheus.CounterVec
	errorsByEndpoint  *prometheus.CounterVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

type active struct {
	manager  *Manager
	registry *prometheus.Registry
}

// current holds the manager the package-level recorders write to.
var current atomic.Pointer[active] //nolint:gochecknoglobals // singleton metrics manager

func init() { //nolint:gochecknoinits // global metrics setup
	Configure()
}

// Configure rebuilds every collector on a fresh registry built from opts and
// makes it the one served at /healthz. Call it before building the handler.
func Configure(opts ...Option) *prometheus.Registry {
	registry := prometheus.NewRegistry()
	m := NewManager(append(opts, WithPrometheusRegistry(registry))...)
	current.Store(&active{manager: m, registry: registry})
	return registry
}

func global() *Manager { return current.Load().manager }

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "benchcoach",
		subsystem:        "game",
		histogramBuckets: prometheus.DefBuckets,
		constLabels:      map[string]string{},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) gaugeVec(name, help string, labels ...string) *prometheus.GaugeVec {
	return promauto.With(m.registry).NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) histogram(name, help string) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: m.histogramBuckets,
	})
}

func (m *Manager) initializeMetrics() {
	m.commandsApplied = m.counterVec("commands_applied_total", "Commands that changed the game, by kind", "kind")
	m.commandsNoop = m.counterVec("commands_noop_total", "Commands that left the game unchanged, by kind", "kind")
	m.commandsReplayed = m.counter("commands_replayed_total", "Commands skipped because their idempotency key was already applied")
	m.applyLatency = m.histogram("command_apply_latency_milliseconds", "Time spent applying one command")
	m.eventsLogged = m.counterVec("events_logged_total", "Plays logged, by event kind", "kind")
	m.substitutions = m.counter("substitutions_total", "Players moved by committed substitutions")
	m.ticksApplied = m.counter("ticks_applied_total", "Game seconds applied while the clock ran")
	m.gamesStarted = m.counter("games_started_total", "Rosters created")
	m.gamesReset = m.counter("games_reset_total", "Confirmed resets")
	m.playersByStatus = m.gaugeVec("players", "Players by roster status", "status")
	m.teamScore = m.gaugeVec("team_score", "Team score counters", "team")
	m.gameClockSeconds = m.gauge("game_clock_seconds", "Game clock elapsed seconds")
	m.shotClockSeconds = m.gauge("shot_clock_seconds", "Shot clock remaining seconds")
	m.snapshotPublishes = m.counter("snapshot_publishes_total", "Views published to readers")
	m.snapshotVersion = m.gauge("snapshot_version", "Version of the last published view")

	m.httpRequests = m.counterVec("http_requests_total", "HTTP requests by endpoint and method", "endpoint", "method", "status_code")
	m.httpRequestDuration = promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: "http_request_duration_milliseconds",
		Help: "HTTP request duration in milliseconds", ConstLabels: m.constLabels, Buckets: m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.queueSize = m.gauge("queue_size", "Commands waiting for the writer")
	m.queueCapacity = m.gauge("queue_capacity", "Command queue capacity")
	m.queueUtilization = m.gauge("queue_utilization_ratio", "Command queue fill ratio (0-1)")
	m.queueEnqueued = m.counter("queue_enqueued_total", "Commands enqueued")
	m.queueDequeued = m.counter("queue_dequeued_total", "Commands dequeued")
	m.queueEnqueueErrors = m.counter("queue_enqueue_errors_total", "Commands rejected by the queue")

	m.workerRunning = m.gauge("worker_running", "1 while the writer goroutine runs")
	m.workerErrors = m.counter("worker_errors_total", "Writer failures")

	m.errorsByComponent = m.counterVec("errors_by_component_total", "Errors by component and type", "component", "error_type")
	m.errorsByEndpoint = m.counterVec("errors_by_endpoint_total", "Errors by endpoint, method and type", "endpoint", "method", "error_type")

	m.systemMemoryUsage = m.gauge("system_memory_bytes", "Heap bytes in use")
	m.systemGoroutineCount = m.gauge("system_goroutines", "Number of goroutines")
	m.systemGCPauseTime = m.histogram("system_gc_pause_milliseconds", "GC pause time in milliseconds")
}

// RecordCommand counts one applied command and its latency.
func RecordCommand(kind string, changed bool, latencyMs float64) {
	if changed {
		global().commandsApplied.WithLabelValues(kind).Inc()
	} else {
		global().commandsNoop.WithLabelValues(kind).Inc()
	}
	global().applyLatency.Observe(latencyMs)
}

// RecordReplay counts one command skipped as a replay.
func RecordReplay() {
	global().commandsReplayed.Inc()
}

// RecordEventLogged counts one logged play.
func RecordEventLogged(kind string) {
	global().eventsLogged.WithLabelValues(kind).Inc()
}

// RecordSubstitution counts players moved by one commit.
func RecordSubstitution(moved int) {
	global().substitutions.Add(float64(moved))
}

// RecordTick counts one applied game second.
func RecordTick() {
	global().ticksApplied.Inc()
}

// RecordGameStarted counts a new roster.
func RecordGameStarted() {
	global().gamesStarted.Inc()
}

// RecordGameReset counts a confirmed reset.
func RecordGameReset() {
	global().gamesReset.Inc()
}

// UpdatePlayers sets the players-by-status gauge.
func UpdatePlayers(status string, count int) {
	global().playersByStatus.WithLabelValues(status).Set(float64(count))
}

// UpdateScore sets the team score gauges.
func UpdateScore(us, them int) {
	global().teamScore.WithLabelValues("us").Set(float64(us))
	global().teamScore.WithLabelValues("them").Set(float64(them))
}

// UpdateClocks sets the clock gauges.
func UpdateClocks(gameSeconds, shotSeconds int) {
	global().gameClockSeconds.Set(float64(gameSeconds))
	global().shotClockSeconds.Set(float64(shotSeconds))
}

// RecordSnapshotPublish counts one published view.
func RecordSnapshotPublish(version uint64) {
	global().snapshotPublishes.Inc()
	global().snapshotVersion.Set(float64(version))
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	global().httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	global().httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// UpdateQueueSize sets the queue size gauge.
func UpdateQueueSize(size int) {
	global().queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the queue capacity gauge.
func UpdateQueueCapacity(capacity int) {
	global().queueCapacity.Set(float64(capacity))
}

// UpdateQueueUtilization sets the queue utilization gauge (0-1).
func UpdateQueueUtilization(utilization float64) {
	global().queueUtilization.Set(utilization)
}

// RecordQueueEnqueue counts one enqueued command.
func RecordQueueEnqueue() {
	global().queueEnqueued.Inc()
}

// RecordQueueDequeue counts one dequeued command.
func RecordQueueDequeue() {
	global().queueDequeued.Inc()
}

// RecordQueueEnqueueError counts one rejected command.
func RecordQueueEnqueueError() {
	global().queueEnqueueErrors.Inc()
}

// UpdateWorkerRunning sets the writer gauge.
func UpdateWorkerRunning(running bool) {
	v := 0.0
	if running {
		v = 1
	}
	global().workerRunning.Set(v)
}

// RecordWorkerError counts one writer failure.
func RecordWorkerError() {
	global().workerErrors.Inc()
}

// RecordErrorByComponent counts an error by component and type.
func RecordErrorByComponent(component, errorType string) {
	global().errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByEndpoint counts an error by endpoint, method and type.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	global().errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets the heap gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	global().systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	global().systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records one GC pause.
func RecordSystemGCPauseTime(pauseMs float64) {
	global().systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the registry served at /healthz.
func GetRegistry() *prometheus.Registry {
	return current.Load().registry
}
