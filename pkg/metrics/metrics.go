package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultOK    = "ok"
	resultError = "error"
)

// Metrics коллекторы Prometheus сервиса
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	storageOperationsTotal   *prometheus.CounterVec
	storageOperationDuration *prometheus.HistogramVec
}

// New создает метрики и регистрирует их в default registry
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном registerer
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),

		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		storageOperationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "storage_operations_total",
			Help:        "Total number of backing store operations.",
			ConstLabels: labels,
		}, []string{"driver", "operation", "result"}),

		storageOperationDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "storage_operation_duration_seconds",
			Help:        "Backing store operation latency. Sheets calls are slow, so buckets go up to 30s.",
			ConstLabels: labels,
			Buckets:     []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		}, []string{"driver", "operation"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.storageOperationsTotal,
		m.storageOperationDuration,
	)

	return m
}

// RecordHTTPRequest учитывает один обработанный HTTP запрос
func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordStorageOperation учитывает одну операцию с хранилищем
func (m *Metrics) RecordStorageOperation(driver, operation string, err error, duration time.Duration) {
	result := resultOK
	if err != nil {
		result = resultError
	}

	m.storageOperationsTotal.WithLabelValues(driver, operation, result).Inc()
	m.storageOperationDuration.WithLabelValues(driver, operation).Observe(duration.Seconds())
}
