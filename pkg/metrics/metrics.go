package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPInFlight        prometheus.Gauge

	// База данных
	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec
	DBOpenConns     *prometheus.GaugeVec
	DBWaitCount     *prometheus.GaugeVec

	// Бронирования
	ReservationOutcomes *prometheus.CounterVec
}

// New регистрирует метрики в reg
// Имена метрик имеют префикс serviceName (например, lab_reservation_http_requests_total)
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: serviceName,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		HTTPInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: serviceName,
				Name:      "http_requests_in_flight",
				Help:      "Number of HTTP requests being served",
			},
		),
		DBQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "db_queries_total",
				Help:      "Total number of database queries",
			},
			[]string{"operation", "status"},
		),
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: serviceName,
				Name:      "db_query_duration_seconds",
				Help:      "Database query duration in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
			[]string{"operation"},
		),
		DBOpenConns: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: serviceName,
				Name:      "db_connections",
				Help:      "Database connection pool state",
			},
			[]string{"state"},
		),
		DBWaitCount: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: serviceName,
				Name:      "db_connection_waits",
				Help:      "Total number of connections waited for, and total wait seconds",
			},
			[]string{"kind"},
		),
		ReservationOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: serviceName,
				Name:      "reservation_operations_total",
				Help:      "Reservation operations by outcome (created, conflict, cancelled, ...)",
			},
			[]string{"operation", "outcome"},
		),
	}
}

// ObserveReservation увеличивает счетчик исхода операции с бронированием
// Безопасен для nil (метрики выключены)
func (m *Metrics) ObserveReservation(operation, outcome string) {
	if m == nil {
		return
	}
	m.ReservationOutcomes.WithLabelValues(operation, outcome).Inc()
}
