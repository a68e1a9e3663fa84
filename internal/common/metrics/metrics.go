package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	Namespace = "content_notifier"

	SourceSubsystem   = "source"
	DispatchSubsystem = "dispatch"
)

// Общие метрики HTTP сервера.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)
)

// Метрики источника контента.
var (
	SourceRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: SourceSubsystem,
			Name:      "requests_total",
			Help:      "Total number of content source fetches",
		},
		[]string{"table", "status"},
	)

	SourceRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: SourceSubsystem,
			Name:      "request_duration_seconds",
			Help:      "Content source fetch duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"table", "status"},
	)
)

// Метрики пайплайна проверки и рассылки.
var (
	ChecksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "checks_total",
			Help:      "Total number of content check invocations",
		},
		[]string{"status"},
	)

	NewContentDetected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "new_content_detected_total",
			Help:      "Total number of newly detected content records",
		},
		[]string{"content_type"},
	)

	PushSendsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: DispatchSubsystem,
			Name:      "push_sends_total",
			Help:      "Total number of push delivery attempts",
		},
		[]string{"status"},
	)

	SubscribersCount = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "subscribers_count",
			Help:      "Number of currently registered push subscriptions",
		},
	)
)

func RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	status := "success"
	if statusCode >= 400 {
		status = "error"
	}

	HTTPRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

func RecordSourceRequest(table, status string, duration time.Duration) {
	SourceRequestsTotal.WithLabelValues(table, status).Inc()
	SourceRequestDuration.WithLabelValues(table, status).Observe(duration.Seconds())
}

func RecordCheck(status string) {
	ChecksTotal.WithLabelValues(status).Inc()
}

func RecordNewContent(contentType string, count int) {
	NewContentDetected.WithLabelValues(contentType).Add(float64(count))
}

func RecordPushSend(status string) {
	PushSendsTotal.WithLabelValues(status).Inc()
}

func UpdateSubscribersCount(count int) {
	SubscribersCount.Set(float64(count))
}
