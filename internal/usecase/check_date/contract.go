package check_date

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TourAvailability/internal/availability/cache"
	"github.com/m04kA/SMC-TourAvailability/internal/domain"
	"github.com/m04kA/SMC-TourAvailability/internal/service/availability"
)

// AvailabilityService интерфейс сервиса доступности
type AvailabilityService interface {
	GetTour(ctx context.Context, tourID string) (*domain.Tour, error)
	Preload(ctx context.Context, tour *domain.Tour, from, to time.Time) cache.PreloadResult
	Resolver(ctx context.Context, tour *domain.Tour, from, to time.Time) (*availability.Resolver, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
