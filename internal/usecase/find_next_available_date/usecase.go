package find_next_available_date

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TourAvailability/internal/availability/cache"
	"github.com/m04kA/SMC-TourAvailability/internal/domain"
	"github.com/m04kA/SMC-TourAvailability/internal/service/availability"
)

const (
	defaultWindowDays  = 31
	defaultHorizonDays = 365
)

// UseCase use case поиска ближайшей доступной даты для начального фокуса календаря
type UseCase struct {
	service    AvailabilityService
	windowDays int
	scanBudget time.Duration
	logger     Logger
}

// NewUseCase создает новый экземпляр use case.
// windowDays - сколько дат предзагружается за один шаг сканирования.
// scanBudget - общий предел ожидания провайдера за весь поиск; 0 - без ограничения.
func NewUseCase(service AvailabilityService, windowDays int, scanBudget time.Duration, logger Logger) *UseCase {
	if windowDays <= 0 {
		windowDays = defaultWindowDays
	}
	return &UseCase{
		service:    service,
		windowDays: windowDays,
		scanBudget: scanBudget,
		logger:     logger,
	}
}

// Execute сканирует даты от сегодняшней (включительно) окнами по windowDays.
// Каждое окно сначала предзагружается, затем проверяется предикатом календаря:
// без предзагрузки все даты выглядели бы недоступными.
// Если до горизонта (или до исчерпания scanBudget) доступной даты нет,
// возвращается today с Degraded = true.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("FindNextAvailableDate: validation failed: %v", err)
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

	horizon := uc.service.HorizonDays()
	if horizon <= 0 {
		horizon = defaultHorizonDays
	}

	today := uc.service.Today(tour)
	last := today.AddDate(0, 0, horizon)
	scanned := 0

	scanCtx := ctx
	if uc.scanBudget > 0 {
		var cancel context.CancelFunc
		scanCtx, cancel = context.WithTimeout(ctx, uc.scanBudget)
		defer cancel()
	}

	// 3. Сканируем окно за окном
	for from := today; !from.After(last); from = from.AddDate(0, 0, uc.windowDays) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if scanCtx.Err() != nil {
			uc.logger.Warn("FindNextAvailableDate: tour=%s scan budget %v exhausted after %d days",
				req.TourID, uc.scanBudget, scanned)
			break
		}

		to := from.AddDate(0, 0, uc.windowDays-1)
		if to.After(last) {
			to = last
		}

		uc.service.Preload(scanCtx, tour, from, to)

		resolver, err := uc.service.Resolver(ctx, tour, from, to)
		if err != nil {
			uc.logger.Error("FindNextAvailableDate: failed to build resolver for tour=%s: %v", req.TourID, err)
			return nil, fmt.Errorf("%w: failed to build resolver: %v", ErrInternal, err)
		}

		for _, date := range cache.DateRange(from, to) {
			scanned++
			if resolver.DisableDate(date, req.Party) {
				continue
			}

			found, err := time.ParseInLocation(domain.DateFormat, date, today.Location())
			if err != nil {
				return nil, fmt.Errorf("%w: invalid scanned date %q: %v", ErrInternal, date, err)
			}

			uc.logger.Info("FindNextAvailableDate: tour=%s next available date %s (scanned %d days)",
				req.TourID, date, scanned)
			return &Response{TourID: req.TourID, Date: found, ScannedDays: scanned}, nil
		}
	}

	// 4. Горизонт или бюджет исчерпан: today как деградированный результат
	uc.logger.Warn("FindNextAvailableDate: tour=%s has no available date within %d scanned days, returning today",
		req.TourID, scanned)

	return &Response{
		TourID:      req.TourID,
		Date:        today,
		Degraded:    true,
		ScannedDays: scanned,
	}, nil
}
