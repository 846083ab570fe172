package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for HTTP traffic,
// the workspace store and the roster operations.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	storeDuration   *prometheus.HistogramVec
	operations      *prometheus.CounterVec
	teamsGenerated  prometheus.Counter
	studentsTotal   prometheus.Counter
}

// NewMetricsService registers core Prometheus collectors on a private registry.
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

	storeDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "workspace_store_duration_seconds",
		Help:    "Latency of workspace store operations",
		Buckets: prometheus.DefBuckets,
	}, []string{"op"})

	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "workspace_operations_total",
		Help: "Workspace operations by name and outcome",
	}, []string{"operation", "outcome"})

	teamsGenerated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "teams_generated_total",
		Help: "Total number of teams produced by team generation",
	})

	studentsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "students_registered_total",
		Help: "Total number of students registered across workspaces",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, storeDuration, operations, teamsGenerated, studentsTotal, goroutines)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		storeDuration:   storeDuration,
		operations:      operations,
		teamsGenerated:  teamsGenerated,
		studentsTotal:   studentsTotal,
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

// Registry exposes the underlying registry, mainly for tests.
func (m *MetricsService) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
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

// ObserveStore records the latency of a workspace load or save.
func (m *MetricsService) ObserveStore(op string, duration time.Duration) {
	if m == nil {
		return
	}
	m.storeDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// RecordOperation counts a workspace operation with its notification kind as outcome.
func (m *MetricsService) RecordOperation(operation, outcome string) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(operation, outcome).Inc()
}

// RecordStudentRegistered bumps the global student counter.
func (m *MetricsService) RecordStudentRegistered() {
	if m == nil {
		return
	}
	m.studentsTotal.Inc()
}

// RecordTeamsGenerated adds the number of teams one generation produced.
func (m *MetricsService) RecordTeamsGenerated(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.teamsGenerated.Add(float64(count))
}
