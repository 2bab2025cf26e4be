// Package monitoring exposes Prometheus instrumentation for the fraud check service.
package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fraudcheck"

var (
	// HTTPRequestsTotal counts HTTP requests by method, route, and status class.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, route, and status class.",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPRequestDuration observes request latency by method and route.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// VerdictsTotal counts completed analyses by verdict.
	VerdictsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "verdicts_total",
			Help:      "Completed transaction analyses by verdict.",
		},
		[]string{"verdict"},
	)

	// AnalysisErrorsTotal counts failed analyses by error kind.
	AnalysisErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_errors_total",
			Help:      "Failed transaction analyses by error kind.",
		},
		[]string{"kind"},
	)

	// InferenceDuration observes time spent in scaling and prediction.
	InferenceDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "inference_duration_seconds",
		Help:      "Time spent building, scaling and classifying one feature row.",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	})

	// ArtifactsLoaded is 1 once the scaler and classifier are resident.
	ArtifactsLoaded = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "artifacts_loaded",
		Help:      "Whether the model artifacts are loaded (1) or not (0).",
	})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		VerdictsTotal,
		AnalysisErrorsTotal,
		InferenceDuration,
		ArtifactsLoaded,
	)
}

// ObserveVerdict records one successful analysis.
func ObserveVerdict(verdict string, elapsed time.Duration) {
	VerdictsTotal.WithLabelValues(verdict).Inc()
	InferenceDuration.Observe(elapsed.Seconds())
}

// ObserveError records one failed analysis.
func ObserveError(kind string) {
	if kind == "" {
		kind = "unknown"
	}
	AnalysisErrorsTotal.WithLabelValues(kind).Inc()
}

// ObserveRequest records one served HTTP request. route must be the
// registered pattern, never the raw path.
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
	HTTPRequestsTotal.WithLabelValues(method, route, statusBucket(status)).Inc()
}

// Handler returns the Prometheus metrics HTTP handler for /metrics.
func Handler() http.Handler {
	return promhttp.Handler()
}

func statusBucket(code int) string {
	switch {
	case code < 100 || code > 599:
		return strconv.Itoa(code)
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}
