package list_bookable_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TourAvailability/internal/domain"
	"github.com/m04kA/SMC-TourAvailability/internal/service/availability"
)

// AvailabilityService интерфейс сервиса доступности
type AvailabilityService interface {
	GetTour(ctx context.Context, tourID string) (*domain.Tour, error)
	RefreshDate(ctx context.Context, tour *domain.Tour, date string)
	Resolver(ctx context.Context, tour *domain.Tour, from, to time.Time) (*availability.Resolver, error)
}

// RequestTracker интерфейс last-request-wins трекера сессий
type RequestTracker interface {
	Begin(scope string) string
	IsLatest(scope, token string) bool
	Finish(scope, token string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
