package check_date

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TourAvailability/internal/domain"
	"github.com/m04kA/SMC-TourAvailability/internal/service/availability"
)

// UseCase use case предиката календаря disableDate
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

// Execute выполняет use case проверки даты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckDate: validation failed: %v", err)
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

	// 3. Предзагрузка даты: предикат календаря читает только кэш
	uc.service.Preload(ctx, tour, req.Date, req.Date)

	// 4. Снимок и предикат
	resolver, err := uc.service.Resolver(ctx, tour, req.Date, req.Date)
	if err != nil {
		uc.logger.Error("CheckDate: failed to build resolver for tour=%s: %v", req.TourID, err)
		return nil, fmt.Errorf("%w: failed to build resolver: %v", ErrInternal, err)
	}

	date := req.Date.Format(domain.DateFormat)
	disabled := resolver.DisableDate(date, req.Party)

	uc.logger.Info("CheckDate: tour=%s, date=%s, disabled=%t", req.TourID, date, disabled)

	return &Response{
		TourID:   req.TourID,
		Date:     req.Date,
		Disabled: disabled,
	}, nil
}
