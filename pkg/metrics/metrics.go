package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Кэш доступности
	CacheLookupsTotal  *prometheus.CounterVec
	CacheFallbackTotal *prometheus.CounterVec
	InventoryFetch     *prometheus.HistogramVec

	// Пул соединений БД
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec
	DBQueryDuration    *prometheus.HistogramVec
}

// New создает и регистрирует метрики в переданном Registerer
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		CacheLookupsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_cache_lookups_total",
			Help:        "Availability cache lookups by result (hit, miss, stale)",
			ConstLabels: constLabels,
		}, []string{"result"}),
		CacheFallbackTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_cache_fallback_total",
			Help:        "Fallback records stored after a failed inventory fetch",
			ConstLabels: constLabels,
		}, []string{"product_key"}),
		InventoryFetch: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "inventory_fetch_duration_seconds",
			Help:        "External inventory fetch duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"outcome"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"operation"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.CacheLookupsTotal,
		m.CacheFallbackTotal,
		m.InventoryFetch,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.DBQueryDuration,
	)

	return m
}

// CacheHit регистрирует попадание в кэш
func (m *Metrics) CacheHit() {
	m.CacheLookupsTotal.WithLabelValues("hit").Inc()
}

// CacheMiss регистрирует промах кэша
func (m *Metrics) CacheMiss() {
	m.CacheLookupsTotal.WithLabelValues("miss").Inc()
}

// CacheStale регистрирует устаревшую запись
func (m *Metrics) CacheStale() {
	m.CacheLookupsTotal.WithLabelValues("stale").Inc()
}

// CacheFallback регистрирует fallback-запись для продукта
func (m *Metrics) CacheFallback(productKey string) {
	m.CacheFallbackTotal.WithLabelValues(productKey).Inc()
}

// ObserveFetch регистрирует длительность запроса к внешнему inventory
func (m *Metrics) ObserveFetch(outcome string, d time.Duration) {
	m.InventoryFetch.WithLabelValues(outcome).Observe(d.Seconds())
}
