package get_calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TourAvailability/internal/availability/cache"
	"github.com/m04kA/SMC-TourAvailability/internal/domain"
	"github.com/m04kA/SMC-TourAvailability/internal/service/availability"
)

// UseCase use case отрисовки календаря месяца
type UseCase struct {
	service AvailabilityService
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(service AvailabilityService, logger Logger) *UseCase {
	return &UseCase{
		service: service,
		logger:  logger,
	}
}

// Execute предзагружает весь месяц и возвращает предикат disableDate для каждой даты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetCalendar: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем тур
	tour, err := uc.service.GetTour(ctx, req.TourID)
	if err != nil {
		if errors.Is(err, availability.ErrTourNotFound) {
			return nil, ErrTourNotFound
		}
		return nil, fmt.Errorf("%w: failed to get tour: %v", ErrInternal, err)
	}

	from := time.Date(req.Month.Year(), req.Month.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	// 3. Предзагрузка месяца; ждем завершения всех дат
	preload := uc.service.Preload(ctx, tour, from, to)

	// 4. Снимок и предикат по каждой дате
	resolver, err := uc.service.Resolver(ctx, tour, from, to)
	if err != nil {
		uc.logger.Error("GetCalendar: failed to build resolver for tour=%s: %v", req.TourID, err)
		return nil, fmt.Errorf("%w: failed to build resolver: %v", ErrInternal, err)
	}

	dates := cache.DateRange(from, to)
	days := make([]Day, 0, len(dates))
	disabled := 0
	for _, date := range dates {
		day := Day{Date: date, Disabled: resolver.DisableDate(date, req.Party)}
		if day.Disabled {
			disabled++
		}
		days = append(days, day)
	}

	uc.logger.Info("GetCalendar: tour=%s, month=%s, disabled %d of %d days, fallbacks=%d",
		req.TourID, from.Format(domain.MonthFormat), disabled, len(days), preload.Fallbacks)

	return &Response{
		TourID:    req.TourID,
		Month:     from,
		Days:      days,
		Fallbacks: preload.Fallbacks,
	}, nil
}
