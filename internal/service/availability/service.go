package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-TourAvailability/internal/availability/cache"
	"github.com/m04kA/SMC-TourAvailability/internal/availability/cutoff"
	"github.com/m04kA/SMC-TourAvailability/internal/availability/participants"
	"github.com/m04kA/SMC-TourAvailability/internal/domain"
	tourRepo "github.com/m04kA/SMC-TourAvailability/internal/infra/storage/tour"
	"github.com/m04kA/SMC-TourAvailability/pkg/clock"
)

// Options параметры сервиса доступности
type Options struct {
	DefaultLocation *time.Location // часовой пояс туров без своего Timezone
	HorizonDays     int            // горизонт бронирования для DisableDate
	Clock           TimeProvider
}

// Service собирает снимок данных тура и строит по нему Resolver
type Service struct {
	tourRepo    TourRepository
	bookingRepo BookingRepository
	cache       AvailabilityCache
	opts        Options
	logger      Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	tourRepo TourRepository,
	bookingRepo BookingRepository,
	cache AvailabilityCache,
	opts Options,
	logger Logger,
) *Service {
	if opts.DefaultLocation == nil {
		opts.DefaultLocation = time.UTC
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real{}
	}
	return &Service{
		tourRepo:    tourRepo,
		bookingRepo: bookingRepo,
		cache:       cache,
		opts:        opts,
		logger:      logger,
	}
}

// GetTour получает конфигурацию тура
func (s *Service) GetTour(ctx context.Context, tourID string) (*domain.Tour, error) {
	tour, err := s.tourRepo.GetByID(ctx, tourID)
	if err != nil {
		if errors.Is(err, tourRepo.ErrTourNotFound) {
			s.logger.Warn("GetTour: tour id=%s not found", tourID)
			return nil, ErrTourNotFound
		}
		s.logger.Error("GetTour: repository error for tour id=%s: %v", tourID, err)
		return nil, fmt.Errorf("%w: GetTour - repository error: %v", ErrInternal, err)
	}
	return tour, nil
}

// Location часовой пояс тура; некорректное имя заменяется часовым поясом по умолчанию
func (s *Service) Location(tour *domain.Tour) *time.Location {
	if tour.Timezone == "" {
		return s.opts.DefaultLocation
	}
	loc, err := time.LoadLocation(tour.Timezone)
	if err != nil {
		s.logger.Warn("Location: tour id=%s has invalid timezone %q, using %s", tour.ID, tour.Timezone, s.opts.DefaultLocation)
		return s.opts.DefaultLocation
	}
	return loc
}

// Today полночь текущего дня в часовом поясе тура
func (s *Service) Today(tour *domain.Tour) time.Time {
	return cutoff.StartOfDay(s.opts.Clock.Now(), s.Location(tour))
}

// HorizonDays горизонт бронирования в днях
func (s *Service) HorizonDays() int {
	return s.opts.HorizonDays
}

// RefreshDate гарантирует запись кэша моложе TTL для одной даты
func (s *Service) RefreshDate(ctx context.Context, tour *domain.Tour, date string) {
	s.cache.Get(ctx, tour.InventoryKey(), date, tour.AvailableTimes)
}

// Preload загружает внешнюю доступность для диапазона дат и ждет завершения всех запросов
func (s *Service) Preload(ctx context.Context, tour *domain.Tour, from, to time.Time) cache.PreloadResult {
	return s.cache.Preload(ctx, tour.InventoryKey(), from, to, tour.AvailableTimes)
}

// Resolver строит резолвер для диапазона дат [from, to]:
// подтвержденные бронирования + снимок кэша + cutoff-политика тура.
// Даты диапазона берутся из календарных полей from и to без перевода в часовой пояс тура.
func (s *Service) Resolver(ctx context.Context, tour *domain.Tour, from, to time.Time) (*Resolver, error) {
	loc := s.Location(tour)
	now := s.opts.Clock.Now().In(loc)

	// 1. Читаем подтвержденные бронирования за период
	bookings, err := s.bookingRepo.ListConfirmed(ctx, tour.ID, from, to)
	if err != nil {
		s.logger.Error("Resolver: failed to list bookings for tour id=%s: %v", tour.ID, err)
		return nil, fmt.Errorf("%w: Resolver - booking repository error: %v", ErrInternal, err)
	}

	for i := range bookings {
		if bookings[i].Adults < 0 || bookings[i].Children < 0 {
			s.logger.Warn("Resolver: booking id=%d has negative party counts adults=%d children=%d, clamped to 0",
				bookings[i].ID, bookings[i].Adults, bookings[i].Children)
		}
	}

	// 2. Сворачиваем бронирования в участников по слотам
	booked := participants.Build(participants.ConfirmedOnly(bookings), tour.AvailableTimes)

	// 3. Снимок кэша (копии записей)
	records := s.cache.Snapshot(ctx, tour.InventoryKey(), cache.DateRange(from, to))

	evaluator := cutoff.NewEvaluator(tour.Policy, loc, s.logger)

	return NewResolver(Snapshot{
		Tour:         *tour,
		Records:      records,
		Participants: booked,
		Now:          now,
		HorizonDays:  s.opts.HorizonDays,
	}, evaluator, s.logger), nil
}
