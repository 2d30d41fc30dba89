package availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TourAvailability/internal/availability/cache"
	"github.com/m04kA/SMC-TourAvailability/internal/domain"
)

// TourRepository интерфейс репозитория конфигурации туров
type TourRepository interface {
	GetByID(ctx context.Context, tourID string) (*domain.Tour, error)
}

// BookingRepository интерфейс репозитория бронирований (только чтение)
type BookingRepository interface {
	ListConfirmed(ctx context.Context, tourID string, from, to time.Time) ([]domain.Booking, error)
}

// AvailabilityCache интерфейс кэша внешней доступности
type AvailabilityCache interface {
	Get(ctx context.Context, productKey, date string, configuredTimes []string) domain.DateAvailabilityRecord
	Preload(ctx context.Context, productKey string, start, end time.Time, configuredTimes []string) cache.PreloadResult
	Snapshot(ctx context.Context, productKey string, dates []string) map[string]domain.DateAvailabilityRecord
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
