package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	ActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_requests",
			Help: "Current number of active HTTP requests",
		},
	)

	// Guard
	GuardDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guard_decisions_total",
			Help: "Total number of guard pipeline decisions",
		},
		[]string{"outcome", "code"}, // proceed/redirect/reject
	)

	GuardReasonsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guard_activity_reasons_total",
			Help: "Total number of activity monitor signals by reason",
		},
		[]string{"reason"},
	)

	ModerationViolationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moderation_violations_total",
			Help: "Total number of moderation rule violations by category",
		},
		[]string{"category"},
	)

	// Alerts
	AlertsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guard_alerts_total",
			Help: "Total number of alert deliveries by notifier",
		},
		[]string{"notifier", "status"}, // sent/failed
	)

	AlertsDroppedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "guard_alerts_dropped_total",
			Help: "Total number of alerts dropped because the buffer was full",
		},
	)

	// Stores
	StoreErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guard_store_errors_total",
			Help: "Total number of guard store failures",
		},
		[]string{"store"}, // session/ratelimit/revocation
	)

	// Workers
	WorkerRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "guard_worker_runs_total",
			Help: "Total number of background job runs",
		},
		[]string{"job", "result"},
	)
)

// TrackHTTPRequest はHTTPリクエストの件数と所要時間を記録します
func TrackHTTPRequest(method, route string, status int, elapsed time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// TrackGuardDecision はガードの判定結果を記録します
func TrackGuardDecision(outcome, code string) {
	GuardDecisionsTotal.WithLabelValues(outcome, code).Inc()
}

// TrackActivityReason は行動監視のシグナルを記録します
func TrackActivityReason(reason string) {
	GuardReasonsTotal.WithLabelValues(reason).Inc()
}

// TrackModerationViolation はモデレーション違反を記録します
func TrackModerationViolation(category string) {
	ModerationViolationsTotal.WithLabelValues(category).Inc()
}

// TrackAlert はアラート配信結果を記録します
func TrackAlert(notifier string, err error) {
	status := "sent"
	if err != nil {
		status = "failed"
	}
	AlertsTotal.WithLabelValues(notifier, status).Inc()
}

// TrackAlertDropped は破棄されたアラートを記録します
func TrackAlertDropped() {
	AlertsDroppedTotal.Inc()
}

// TrackStoreError はストア障害を記録します
func TrackStoreError(store string) {
	StoreErrorsTotal.WithLabelValues(store).Inc()
}

// TrackWorkerRun はバックグラウンドジョブの実行結果を記録します
func TrackWorkerRun(job string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	WorkerRunsTotal.WithLabelValues(job, result).Inc()
}
