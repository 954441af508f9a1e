package service

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the enrollment
// workflow.
type MetricsService struct {
	registry         *prometheus.Registry
	handler          http.Handler
	requestDuration  *prometheus.HistogramVec
	requestTotal     *prometheus.CounterVec
	seatReservations *prometheus.CounterVec
	paymentsRecorded prometheus.Counter
}

// NewMetricsService registers the core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	seatReservations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "seat_reservations_total",
		Help: "Seat reservation attempts by outcome",
	}, []string{"outcome"})

	paymentsRecorded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "payments_recorded_total",
		Help: "Total payment records written",
	})

	registry.MustRegister(requestDuration, requestTotal, seatReservations, paymentsRecorded)

	return &MetricsService{
		registry:         registry,
		handler:          promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		seatReservations: seatReservations,
		paymentsRecorded: paymentsRecorded,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordSeatReservation counts a reservation attempt outcome
// (reserved, exhausted, not_found).
func (m *MetricsService) RecordSeatReservation(outcome string) {
	if m == nil {
		return
	}
	m.seatReservations.WithLabelValues(outcome).Inc()
}

// RecordPayment counts a written payment record.
func (m *MetricsService) RecordPayment() {
	if m == nil {
		return
	}
	m.paymentsRecorded.Inc()
}
