// Package metrics registra las métricas Prometheus de la API y del worker.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics agrupa los collectors. Se registra en un Registry propio para que los tests
// puedan crear instancias independientes.
type Metrics struct {
	Registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	StockOperations     *prometheus.CounterVec
	RateLimited         *prometheus.CounterVec
	NotificationsTotal  *prometheus.CounterVec
}

// New crea y registra los collectors con el prefijo indicado (ej. "storekeeper").
func New(prefix string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		StockOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_stock_operations_total",
				Help: "Stock operations by type and outcome",
			},
			[]string{"type", "outcome"},
		),
		RateLimited: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_rate_limited_total",
				Help: "Requests rejected or passed through by the rate limiter",
			},
			[]string{"route", "decision"},
		),
		NotificationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_notifications_total",
				Help: "Email notifications published or delivered, by outcome",
			},
			[]string{"stage", "outcome"},
		),
	}
	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.StockOperations,
		m.RateLimited,
		m.NotificationsTotal,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// RecordStockOperation incrementa el contador de operaciones de stock. Seguro con receptor nil.
func (m *Metrics) RecordStockOperation(opType, outcome string) {
	if m == nil {
		return
	}
	m.StockOperations.WithLabelValues(opType, outcome).Inc()
}

// RecordNotification incrementa el contador de notificaciones. Seguro con receptor nil.
func (m *Metrics) RecordNotification(stage, outcome string) {
	if m == nil {
		return
	}
	m.NotificationsTotal.WithLabelValues(stage, outcome).Inc()
}

// RecordRateLimit registra la decisión del limitador. Seguro con receptor nil.
func (m *Metrics) RecordRateLimit(route, decision string) {
	if m == nil {
		return
	}
	m.RateLimited.WithLabelValues(route, decision).Inc()
}
