package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration     *prometheus.HistogramVec
	DBQueryErrors       *prometheus.CounterVec
	DBOpenConnections   prometheus.Gauge
	DBInUseConnections  prometheus.Gauge
	DBIdleConnections   prometheus.Gauge
	DBWaitCount         prometheus.Gauge
	TransactionRetries  *prometheus.CounterVec
	TransactionDuration *prometheus.HistogramVec

	BookingAttempts *prometheus.CounterVec
	BookingEvents   *prometheus.CounterVec
}

// New создает и регистрирует метрики сервиса в собственном реестре
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		registry: prometheus.NewRegistry(),

		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: labels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration",
			ConstLabels: labels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Database query errors",
			ConstLabels: labels,
		}, []string{"operation"}),

		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open connections in the pool",
			ConstLabels: labels,
		}),
		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Connections currently in use",
			ConstLabels: labels,
		}),
		DBIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle connections in the pool",
			ConstLabels: labels,
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: labels,
		}),

		TransactionRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_transaction_retries_total",
			Help:        "Transactions retried after serialization failures",
			ConstLabels: labels,
		}, []string{"isolation"}),

		TransactionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_transaction_duration_seconds",
			Help:        "Transaction duration including retries",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"isolation", "result"}),

		BookingAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_attempts_total",
			Help:        "Booking attempts by outcome",
			ConstLabels: labels,
		}, []string{"outcome"}),

		BookingEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_events_published_total",
			Help:        "Booking lifecycle events published",
			ConstLabels: labels,
		}, []string{"type", "result"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.TransactionRetries,
		m.TransactionDuration,
		m.BookingAttempts,
		m.BookingEvents,
	)

	return m
}

// Handler возвращает HTTP handler для эндпоинта /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry возвращает реестр метрик
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTPRequest записывает метрики HTTP запроса
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery записывает длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	m.DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// IncBookingAttempt увеличивает счётчик попыток бронирования с указанным исходом
func (m *Metrics) IncBookingAttempt(outcome string) {
	m.BookingAttempts.WithLabelValues(outcome).Inc()
}

// IncBookingEvent увеличивает счётчик опубликованных событий
func (m *Metrics) IncBookingEvent(eventType string, ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	m.BookingEvents.WithLabelValues(eventType, result).Inc()
}

// IncTransactionRetry увеличивает счётчик повторов транзакции
func (m *Metrics) IncTransactionRetry(isolation string) {
	m.TransactionRetries.WithLabelValues(isolation).Inc()
}

// ObserveTransaction записывает длительность транзакции
func (m *Metrics) ObserveTransaction(isolation string, duration time.Duration, err error) {
	result := "commit"
	if err != nil {
		result = "rollback"
	}
	m.TransactionDuration.WithLabelValues(isolation, result).Observe(duration.Seconds())
}
