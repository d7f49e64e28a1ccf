// Package metrics provides Prometheus instrumentation for the fraud scoring API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTPRequestsTotal counts HTTP requests by method, route pattern, and status.
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lumina",
			Name:      "http_requests_total",
			Help:      "Total HTTP requests by method, route pattern, and status class.",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency by method and route pattern.
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "lumina",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// PredictionsTotal counts scored transactions by verdict.
	PredictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lumina",
			Name:      "predictions_total",
			Help:      "Total predictions by label.",
		},
		[]string{"label"},
	)

	// RejectionsTotal counts requests that produced no prediction, by error kind.
	RejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lumina",
			Name:      "prediction_rejections_total",
			Help:      "Total rejected prediction requests by reason.",
		},
		[]string{"reason"},
	)

	// ScoringDuration observes the time spent inside the classifier boundary.
	ScoringDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "lumina",
		Name:      "scoring_duration_seconds",
		Help:      "Classifier call duration in seconds.",
		Buckets:   []float64{.00001, .00005, .0001, .0005, .001, .005, .01, .05},
	})

	// FraudProbability records the distribution of P(fraud) returned by the model.
	FraudProbability = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "lumina",
		Name:      "fraud_probability",
		Help:      "Distribution of fraud probabilities returned by the model.",
		Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
	})

	// AlertDeliveriesTotal counts fraud alert delivery attempts by result.
	AlertDeliveriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "lumina",
			Name:      "alert_deliveries_total",
			Help:      "Total fraud alert deliveries by result.",
		},
		[]string{"result"},
	)

	// ModelInfo is set to 1 for the loaded model's name and version.
	ModelInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "lumina",
			Name:      "model_info",
			Help:      "Loaded classifier artifact.",
		},
		[]string{"name", "version"},
	)
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		PredictionsTotal,
		RejectionsTotal,
		ScoringDuration,
		FraudProbability,
		AlertDeliveriesTotal,
		ModelInfo,
	)
}

// Middleware records request metrics labelled by chi route pattern.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		// Route pattern, not the raw path, keeps label cardinality bounded.
		path := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}
		HTTPRequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
		HTTPRequestsTotal.WithLabelValues(r.Method, path, statusBucket(ww.Status())).Inc()
	})
}

// Handler returns the Prometheus metrics HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// statusBucket groups HTTP status codes into buckets (2xx, 3xx, 4xx, 5xx).
func statusBucket(code int) string {
	if code == 0 {
		code = http.StatusOK
	}
	if code < 100 || code > 599 {
		return strconv.Itoa(code)
	}
	return strconv.Itoa(code/100) + "xx"
}
