package dbmetrics

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/m04kA/SMC-TourAvailability/pkg/metrics"
)

const defaultCollectInterval = 15 * time.Second

// DBExecutor интерфейс для выполнения запросов на чтение
// Поддерживает *sql.DB и *dbmetrics.DB
type DBExecutor interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// DB обёртка над *sql.DB, собирающая метрики запросов и пула соединений
type DB struct {
	db      *sql.DB
	metrics *metrics.Metrics
	dbName  string
}

// Wrap оборачивает *sql.DB без фонового сбора статистики пула
func Wrap(db *sql.DB, m *metrics.Metrics, dbName string) *DB {
	return &DB{db: db, metrics: m, dbName: dbName}
}

// WrapWithDefault оборачивает *sql.DB и запускает сбор статистики пула
// с интервалом по умолчанию до закрытия stopCh
func WrapWithDefault(db *sql.DB, m *metrics.Metrics, dbName string, stopCh <-chan struct{}) *DB {
	wrapped := Wrap(db, m, dbName)
	go wrapped.collectPoolStats(defaultCollectInterval, stopCh)
	return wrapped
}

// QueryContext выполняет запрос.
// Длительность здесь не замеряется: lib/pq читает строки лениво, и время выполнения
// вместе с ошибками приходит в rows.Next/Scan. Замер целиком делает Track.
func (d *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	return d.db.QueryContext(ctx, query, args...)
}

// QueryRowContext выполняет запрос одной строки; ошибки приходят в Scan, замер - через Track
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return d.db.QueryRowContext(ctx, query, args...)
}

// TrackQuery начинает замер запроса; возвращенную функцию вызывают после чтения всех строк
func (d *DB) TrackQuery(query string) func() {
	start := time.Now()
	return func() {
		d.observe(query, start)
	}
}

// QueryTracker исполнитель, умеющий замерять запрос вместе с чтением результата
type QueryTracker interface {
	TrackQuery(query string) func()
}

// Track начинает замер запроса, если исполнитель собирает метрики, иначе no-op.
// Использование: defer dbmetrics.Track(r.db, query)()
func Track(executor DBExecutor, query string) func() {
	if tracker, ok := executor.(QueryTracker); ok {
		return tracker.TrackQuery(query)
	}
	return func() {}
}

func (d *DB) observe(query string, start time.Time) {
	d.metrics.DBQueryDuration.WithLabelValues(operation(query)).Observe(time.Since(start).Seconds())
}

// CollectPoolStats снимает текущую статистику пула соединений
func (d *DB) CollectPoolStats() {
	stats := d.db.Stats()
	d.metrics.DBOpenConnections.WithLabelValues(d.dbName).Set(float64(stats.OpenConnections))
	d.metrics.DBInUseConnections.WithLabelValues(d.dbName).Set(float64(stats.InUse))
	d.metrics.DBIdleConnections.WithLabelValues(d.dbName).Set(float64(stats.Idle))
	d.metrics.DBWaitCount.WithLabelValues(d.dbName).Set(float64(stats.WaitCount))
}

func (d *DB) collectPoolStats(interval time.Duration, stopCh <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.CollectPoolStats()
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			d.CollectPoolStats()
		}
	}
}

// operation первое ключевое слово запроса (select, insert, ...)
func operation(query string) string {
	query = strings.TrimSpace(query)
	if idx := strings.IndexByte(query, ' '); idx > 0 {
		query = query[:idx]
	}
	if query == "" {
		return "unknown"
	}
	return strings.ToLower(query)
}
