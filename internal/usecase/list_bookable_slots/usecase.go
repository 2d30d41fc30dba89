package list_bookable_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TourAvailability/internal/domain"
	"github.com/m04kA/SMC-TourAvailability/internal/service/availability"
)

// UseCase use case для получения доступных слотов тура на дату
type UseCase struct {
	service AvailabilityService
	tracker RequestTracker
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(service AvailabilityService, tracker RequestTracker, logger Logger) *UseCase {
	return &UseCase{
		service: service,
		tracker: tracker,
		logger:  logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ListBookableSlots: tour=%s, date=%s, adults=%d, children=%d, infants=%d",
		req.TourID, req.Date.Format(domain.DateFormat), req.Party.Adults, req.Party.Children, req.Party.Infants)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ListBookableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Регистрируем запрос сессии: более поздний запрос сделает этот устаревшим
	var token string
	if req.SessionID != "" {
		token = uc.tracker.Begin(req.SessionID)
		defer uc.tracker.Finish(req.SessionID, token)
	}

	// 3. Получаем тур
	tour, err := uc.service.GetTour(ctx, req.TourID)
	if err != nil {
		if errors.Is(err, availability.ErrTourNotFound) {
			return nil, ErrTourNotFound
		}
		return nil, fmt.Errorf("%w: failed to get tour: %v", ErrInternal, err)
	}

	// 4. Обновляем запись внешней доступности на дату (TTL кэша)
	date := req.Date.Format(domain.DateFormat)
	uc.service.RefreshDate(ctx, tour, date)

	// 5. Строим резолвер по снимку данных
	resolver, err := uc.service.Resolver(ctx, tour, req.Date, req.Date)
	if err != nil {
		uc.logger.Error("ListBookableSlots: failed to build resolver for tour=%s: %v", req.TourID, err)
		return nil, fmt.Errorf("%w: failed to build resolver: %v", ErrInternal, err)
	}

	slots := resolver.BookableSlots(date, req.Party)

	// 6. Результат устаревшего запроса отбрасываем
	if token != "" && !uc.tracker.IsLatest(req.SessionID, token) {
		uc.logger.Info("ListBookableSlots: session=%s request superseded, result discarded", req.SessionID)
		return nil, ErrSuperseded
	}

	uc.logger.Info("ListBookableSlots: %d slots for tour=%s, date=%s", len(slots), req.TourID, date)

	return &Response{
		TourID: req.TourID,
		Date:   req.Date,
		Slots:  slots,
	}, nil
}
