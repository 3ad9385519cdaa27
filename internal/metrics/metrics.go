// Package metrics exposes tmconv Prometheus counters and HTTP middleware.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tzneal/tranmerc"
)

var (
	conversionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tmconv_conversions_total",
			Help: "Total number of coordinate conversions.",
		},
		[]string{"direction", "result"},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tmconv_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"path", "method", "code"},
	)

	httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tmconv_http_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)
)

func init() {
	prometheus.MustRegister(conversionsTotal)
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpDurationSeconds)
}

// Conversion directions.
const (
	Forward = "forward"
	Inverse = "inverse"
)

// Conversion results.
const (
	ResultOK         = "ok"
	ResultWarning    = "warning"
	ResultInvalid    = "invalid"
	ResultOutOfRange = "out_of_range"
)

// ResultOf classifies the outcome of a conversion.
func ResultOf(err error, warning string) string {
	switch {
	case errors.Is(err, tranmerc.ErrOutOfRange):
		return ResultOutOfRange
	case err != nil:
		return ResultInvalid
	case warning != "":
		return ResultWarning
	}
	return ResultOK
}

// ObserveConversion counts one conversion.
func ObserveConversion(direction string, err error, warning string) {
	conversionsTotal.WithLabelValues(direction, ResultOf(err, warning)).Inc()
}

// Conversions returns the conversion counter for a direction and result.
func Conversions(direction, result string) prometheus.Counter {
	return conversionsTotal.WithLabelValues(direction, result)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

var knownRoutes = map[string]bool{
	"/healthz":        true,
	"/metrics":        true,
	"/api/v1/forward": true,
	"/api/v1/inverse": true,
	"/api/v1/frame":   true,
}

// normalizeRoute keeps the path label bounded.
func normalizeRoute(path string) string {
	if knownRoutes[path] {
		return path
	}
	return "other"
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and duration for each request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		code := strconv.Itoa(rw.statusCode)
		path := normalizeRoute(r.URL.Path)

		httpRequestsTotal.WithLabelValues(path, r.Method, code).Inc()
		httpDurationSeconds.WithLabelValues(path, r.Method).Observe(duration)
	})
}
