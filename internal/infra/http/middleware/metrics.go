package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	cardsMoved = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cards_moved_total",
			Help: "Total number of committed card stage transitions",
		},
		[]string{"pipeline"},
	)

	cardMovesRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "card_moves_rejected_total",
			Help: "Total number of rejected card moves",
		},
		[]string{"reason"},
	)

	registrationsReviewed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registrations_reviewed_total",
			Help: "Total number of client registrations reviewed",
		},
		[]string{"decision"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordCardMove(pipeline string) {
	cardsMoved.WithLabelValues(pipeline).Inc()
}

func RecordCardMoveRejected(reason string) {
	cardMovesRejected.WithLabelValues(reason).Inc()
}

func RecordRegistrationReview(decision string) {
	registrationsReviewed.WithLabelValues(decision).Inc()
}
