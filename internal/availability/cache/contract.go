package cache

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TourAvailability/internal/domain"
)

// Fetcher внешний inventory-провайдер
type Fetcher interface {
	FetchAvailability(ctx context.Context, productID, date string) ([]domain.TimeSlot, error)
}

// Store хранилище записей доступности
// Get возвращает копию записи: изменения результата не затрагивают хранилище
type Store interface {
	Get(ctx context.Context, key string) (domain.DateAvailabilityRecord, bool, error)
	Set(ctx context.Context, key string, record domain.DateAvailabilityRecord) error
}

// Recorder метрики кэша
type Recorder interface {
	CacheHit()
	CacheMiss()
	CacheStale()
	CacheFallback(productKey string)
	ObserveFetch(outcome string, d time.Duration)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type nopRecorder struct{}

func (nopRecorder) CacheHit() {}
func (nopRecorder) CacheMiss() {}
func (nopRecorder) CacheStale() {}
func (nopRecorder) CacheFallback(string) {}
func (nopRecorder) ObserveFetch(string, time.Duration) {}
