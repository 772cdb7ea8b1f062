package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type httpMetrics struct {
	durations *prometheus.SummaryVec
	requests  *prometheus.CounterVec
}

func newHTTPMetrics(reg prometheus.Registerer) *httpMetrics {
	factory := promauto.With(reg)
	return &httpMetrics{
		durations: factory.NewSummaryVec(prometheus.SummaryOpts{
			Namespace: "resume",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Objectives: map[float64]float64{
				0.5:  0.05,
				0.9:  0.01,
				0.95: 0.005,
				0.99: 0.001,
			},
		}, []string{"method", "path", "status_code"}),
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "resume",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status_code"}),
	}
}

// withMetrics records latency and count per route pattern. Unrouted
// requests share one label so ids never reach the label set.
func (s *Server) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		path := routePattern(r)
		status := strconv.Itoa(rec.status)
		s.metrics.durations.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
		s.metrics.requests.WithLabelValues(r.Method, path, status).Inc()
	})
}

// routePattern is the path part of the ServeMux pattern that served r
func routePattern(r *http.Request) string {
	if r.Pattern == "" {
		return "unmatched"
	}
	if _, path, ok := strings.Cut(r.Pattern, " "); ok {
		return path
	}
	return r.Pattern
}
