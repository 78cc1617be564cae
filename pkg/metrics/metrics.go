package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrors      *prometheus.CounterVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	BookingsCreated      *prometheus.CounterVec
	ReservationConflicts *prometheus.CounterVec
	Checkouts            *prometheus.CounterVec
	BookingsActivated    *prometheus.CounterVec
	RateLimited          *prometheus.CounterVec

	service string
}

// New создает и регистрирует метрики в registry по умолчанию
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном registry
// Отдельный registry нужен в тестах, чтобы не ловить панику повторной регистрации
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		service: serviceName,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"service", "operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),
		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),
		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),

		BookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "parking_bookings_created_total",
			Help: "Bookings created, by initial status",
		}, []string{"service", "status"}),
		ReservationConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "parking_reservation_conflicts_total",
			Help: "Reservation attempts rejected because the slot was taken",
		}, []string{"service"}),
		Checkouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "parking_checkouts_total",
			Help: "Completed checkouts",
		}, []string{"service"}),
		BookingsActivated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "parking_bookings_activated_total",
			Help: "Upcoming bookings switched to active by the sweep",
		}, []string{"service"}),
		RateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		}, []string{"service"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.BookingsCreated,
		m.ReservationConflicts,
		m.Checkouts,
		m.BookingsActivated,
		m.RateLimited,
	)

	return m
}

// ObserveHTTP записывает метрики одного HTTP запроса
func (m *Metrics) ObserveHTTP(service, method, route string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(service, method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(service, method, route).Observe(duration.Seconds())
}

// ObserveDB записывает метрики одного запроса к БД
func (m *Metrics) ObserveDB(service, operation string, duration time.Duration, err error) {
	m.DBQueryDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(service, operation).Inc()
	}
}

// Доменные счетчики. Вызов на nil безопасен: метрики могут быть выключены в конфиге

// BookingCreated учитывает созданное бронирование с начальным статусом
func (m *Metrics) BookingCreated(status string) {
	if m == nil {
		return
	}
	m.BookingsCreated.WithLabelValues(m.service, status).Inc()
}

// ReservationConflict учитывает отказ из-за занятого слота
func (m *Metrics) ReservationConflict() {
	if m == nil {
		return
	}
	m.ReservationConflicts.WithLabelValues(m.service).Inc()
}

// Checkout учитывает завершенную парковку
func (m *Metrics) Checkout() {
	if m == nil {
		return
	}
	m.Checkouts.WithLabelValues(m.service).Inc()
}

// Activated учитывает бронирования, переведенные планировщиком в active
func (m *Metrics) Activated(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.BookingsActivated.WithLabelValues(m.service).Add(float64(n))
}

// Throttled учитывает запрос, отклоненный ограничителем
func (m *Metrics) Throttled() {
	if m == nil {
		return
	}
	m.RateLimited.WithLabelValues(m.service).Inc()
}
