package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"serverhub/internal/types"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "serverhub_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "serverhub_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	responseSize = promauto.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "serverhub_response_size_bytes",
			Help: "HTTP response size in bytes",
		},
		[]string{"method", "route"},
	)

	inFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "serverhub_requests_in_flight",
			Help: "Number of requests being served",
		},
	)
)

// metricsResponseWriter captures metrics data
type metricsResponseWriter struct {
	http.ResponseWriter
	statusCode  int
	bytes       int64
	wroteHeader bool
}

func (mrw *metricsResponseWriter) WriteHeader(code int) {
	if !mrw.wroteHeader {
		mrw.statusCode = code
		mrw.wroteHeader = true
		mrw.ResponseWriter.WriteHeader(code)
	}
}

func (mrw *metricsResponseWriter) Write(b []byte) (int, error) {
	if !mrw.wroteHeader {
		mrw.WriteHeader(http.StatusOK)
	}
	n, err := mrw.ResponseWriter.Write(b)
	mrw.bytes += int64(n)
	return n, err
}

// RouteLabel collapses request paths into a bounded set of metric labels
func RouteLabel(path string) string {
	switch {
	case path == "/" || path == "":
		return "/"
	case strings.HasPrefix(path, "/static/"):
		return "/static/*"
	case strings.HasPrefix(path, "/api/v1/servers/"):
		return "/api/v1/servers/{id}"
	case path == "/api/v1/servers", path == "/api/v1/stats", path == "/health":
		return path
	default:
		return "other"
	}
}

// Metrics records Prometheus request metrics and forwards each request to
// collector when one is given
func Metrics(collector types.MetricsCollector) types.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			inFlight.Inc()
			defer inFlight.Dec()

			mrw := &metricsResponseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}
			next.ServeHTTP(mrw, r)

			duration := time.Since(start)
			route := RouteLabel(r.URL.Path)
			status := strconv.Itoa(mrw.statusCode)

			requestsTotal.WithLabelValues(r.Method, route, status).Inc()
			requestDuration.WithLabelValues(r.Method, route, status).Observe(duration.Seconds())
			responseSize.WithLabelValues(r.Method, route).Observe(float64(mrw.bytes))

			if collector != nil {
				collector.RecordRequest(r.Method, route, mrw.statusCode, duration)
			}
		})
	}
}

// MetricsHandler serves the default Prometheus registry
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
