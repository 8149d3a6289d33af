package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the scenario pipeline

var (
	// API Call metrics
	APICallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mlb_api_calls_total",
			Help: "Total number of upstream data source calls",
		},
		[]string{"endpoint", "status"},
	)

	APICallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mlb_api_call_duration_seconds",
			Help:    "Duration of upstream calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	// Cache metrics
	CacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mlb_cache_hits_total",
			Help: "Total number of response cache hits",
		},
	)

	CacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mlb_cache_misses_total",
			Help: "Total number of response cache misses",
		},
	)

	// Pipeline metrics
	UnitsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mlb_pipeline_units_total",
			Help: "Total number of processed pipeline units",
		},
		[]string{"stage", "status"},
	)

	GamesDerivedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mlb_games_derived_total",
			Help: "Total number of games run through feature derivation",
		},
		[]string{"status"},
	)

	ScheduleRowsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mlb_schedule_rows_dropped_total",
			Help: "Total number of schedule rows dropped for an unparseable date",
		},
	)

	MergeConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mlb_merge_conflicts_total",
			Help: "Total number of duplicate game ids seen while merging",
		},
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mlb_stage_duration_seconds",
			Help:    "Duration of pipeline stages in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600, 1800, 3600},
		},
		[]string{"stage"},
	)

	// System metrics
	SystemUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mlb_system_uptime_seconds",
			Help: "System uptime in seconds",
		},
	)

	LastSuccessfulRun = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mlb_last_successful_run_timestamp",
			Help: "Timestamp of last successful pipeline run",
		},
	)
)

// RecordAPICall records an API call metric
func RecordAPICall(endpoint, status string, duration float64) {
	APICallsTotal.WithLabelValues(endpoint, status).Inc()
	APICallDuration.WithLabelValues(endpoint).Observe(duration)
}

// RecordCacheHit records a cache hit
func RecordCacheHit() {
	CacheHitsTotal.Inc()
}

// RecordCacheMiss records a cache miss
func RecordCacheMiss() {
	CacheMissesTotal.Inc()
}

// RecordUnit records the outcome of one (team, year) or team unit
func RecordUnit(stage, status string) {
	UnitsTotal.WithLabelValues(stage, status).Inc()
}

// RecordGame records the outcome of one game derivation
func RecordGame(status string) {
	GamesDerivedTotal.WithLabelValues(status).Inc()
}

// RecordDroppedScheduleRows adds unparseable schedule rows
func RecordDroppedScheduleRows(n int) {
	ScheduleRowsDropped.Add(float64(n))
}

// RecordMergeConflicts adds duplicate game ids seen while merging
func RecordMergeConflicts(n int) {
	MergeConflictsTotal.Add(float64(n))
}

// RecordStage records a stage duration
func RecordStage(stage string, duration float64) {
	StageDuration.WithLabelValues(stage).Observe(duration)
}

// RecordRunSuccess marks a completed pipeline run
func RecordRunSuccess() {
	LastSuccessfulRun.SetToCurrentTime()
}
