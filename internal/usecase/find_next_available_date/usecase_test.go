package find_next_available_date

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourAvailability/internal/availability/cache"
	"github.com/m04kA/SMC-TourAvailability/internal/availability/cutoff"
	"github.com/m04kA/SMC-TourAvailability/internal/domain"
	"github.com/m04kA/SMC-TourAvailability/internal/service/availability"
	"github.com/m04kA/SMC-TourAvailability/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) GetTour(ctx context.Context, tourID string) (*domain.Tour, error) {
	args := m.Called(ctx, tourID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tour), args.Error(1)
}

func (m *mockService) Today(tour *domain.Tour) time.Time {
	return m.Called(tour).Get(0).(time.Time)
}

func (m *mockService) HorizonDays() int {
	return m.Called().Int(0)
}

func (m *mockService) Preload(ctx context.Context, tour *domain.Tour, from, to time.Time) cache.PreloadResult {
	args := m.Called(ctx, tour, from, to)
	return args.Get(0).(cache.PreloadResult)
}

func (m *mockService) Resolver(ctx context.Context, tour *domain.Tour, from, to time.Time) (*availability.Resolver, error) {
	args := m.Called(ctx, tour, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*availability.Resolver), args.Error(1)
}

var (
	now   = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	today = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
)

// soldOut записи провайдера без слотов на days дней начиная с today
func soldOut(days int) map[string]domain.DateAvailabilityRecord {
	records := make(map[string]domain.DateAvailabilityRecord, days)
	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, i).Format(domain.DateFormat)
		records[date] = domain.DateAvailabilityRecord{Date: date, TimeSlots: []domain.TimeSlot{}, FetchedAt: now}
	}
	return records
}

func setup(tour *domain.Tour, records map[string]domain.DateAvailabilityRecord) *mockService {
	resolver := availability.NewResolver(availability.Snapshot{
		Tour:        *tour,
		Records:     records,
		Now:         now,
		HorizonDays: 365,
	}, cutoff.NewEvaluator(tour.Policy, time.UTC, logger.Nop()), logger.Nop())

	svc := &mockService{}
	svc.On("GetTour", mock.Anything, tour.ID).Return(tour, nil)
	svc.On("Today", tour).Return(today)
	svc.On("HorizonDays").Return(365)
	svc.On("Preload", mock.Anything, tour, mock.Anything, mock.Anything).Return(cache.PreloadResult{})
	svc.On("Resolver", mock.Anything, tour, mock.Anything, mock.Anything).Return(resolver, nil)
	return svc
}

func TestUseCase_Execute(t *testing.T) {
	tour := &domain.Tour{ID: "sunset-cruise", MaxSlots: 10, AvailableTimes: []string{"09:00"}}

	tests := []struct {
		name         string
		records      map[string]domain.DateAvailabilityRecord
		wantDate     time.Time
		wantScanned  int
		wantPreloads int
	}{
		{
			// June 1 and June 2 fail the 24h cutoff, June 3-5 are sold out
			name:         "first window",
			records:      soldOut(5),
			wantDate:     time.Date(2025, 6, 6, 0, 0, 0, 0, time.UTC),
			wantScanned:  6,
			wantPreloads: 1,
		},
		{
			name:         "second window",
			records:      soldOut(35),
			wantDate:     time.Date(2025, 7, 6, 0, 0, 0, 0, time.UTC),
			wantScanned:  36,
			wantPreloads: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := setup(tour, tt.records)

			resp, err := NewUseCase(svc, 31, 0, logger.Nop()).
				Execute(context.Background(), &Request{TourID: tour.ID, Party: domain.PartySize{Adults: 2}})

			require.NoError(t, err)
			assert.False(t, resp.Degraded)
			assert.True(t, tt.wantDate.Equal(resp.Date), "got %s", resp.Date)
			assert.Equal(t, tt.wantScanned, resp.ScannedDays)
			svc.AssertNumberOfCalls(t, "Preload", tt.wantPreloads)
			svc.AssertNumberOfCalls(t, "Resolver", tt.wantPreloads)
		})
	}
}

func TestUseCase_Execute_PreloadsBeforeScanning(t *testing.T) {
	tour := &domain.Tour{ID: "sunset-cruise", MaxSlots: 10, AvailableTimes: []string{"09:00"}}
	svc := setup(tour, nil)

	_, err := NewUseCase(svc, 7, 0, logger.Nop()).
		Execute(context.Background(), &Request{TourID: tour.ID, Party: domain.PartySize{Adults: 1}})
	require.NoError(t, err)

	svc.AssertCalled(t, "Preload", mock.Anything, tour, today, today.AddDate(0, 0, 6))
	svc.AssertCalled(t, "Resolver", mock.Anything, tour, today, today.AddDate(0, 0, 6))
}

func TestUseCase_Execute_DegradesToTodayAfterHorizon(t *testing.T) {
	tour := &domain.Tour{ID: "retired-tour", MaxSlots: 10}
	svc := setup(tour, nil)

	resp, err := NewUseCase(svc, 31, 0, logger.Nop()).
		Execute(context.Background(), &Request{TourID: tour.ID, Party: domain.PartySize{Adults: 1}})

	require.NoError(t, err)
	assert.True(t, resp.Degraded)
	assert.Equal(t, today, resp.Date)
	assert.Equal(t, 366, resp.ScannedDays)
	svc.AssertNumberOfCalls(t, "Preload", 12)
	svc.AssertCalled(t, "Preload", mock.Anything, tour, today.AddDate(0, 0, 341), today.AddDate(0, 0, 365))
}

func TestUseCase_Execute_DegradesWhenScanBudgetExhausted(t *testing.T) {
	tour := &domain.Tour{ID: "slow-provider-tour", MaxSlots: 10, AvailableTimes: []string{"09:00"}}
	resolver := availability.NewResolver(availability.Snapshot{
		Tour:        *tour,
		Records:     soldOut(400),
		Now:         now,
		HorizonDays: 365,
	}, cutoff.NewEvaluator(tour.Policy, time.UTC, logger.Nop()), logger.Nop())

	svc := &mockService{}
	svc.On("GetTour", mock.Anything, tour.ID).Return(tour, nil)
	svc.On("Today", tour).Return(today)
	svc.On("HorizonDays").Return(365)
	svc.On("Preload", mock.Anything, tour, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			// провайдер висит, preload отдает управление только по дедлайну
			<-args.Get(0).(context.Context).Done()
		}).
		Return(cache.PreloadResult{})
	svc.On("Resolver", mock.Anything, tour, mock.Anything, mock.Anything).Return(resolver, nil)

	began := time.Now()
	resp, err := NewUseCase(svc, 31, 50*time.Millisecond, logger.Nop()).
		Execute(context.Background(), &Request{TourID: tour.ID, Party: domain.PartySize{Adults: 1}})

	require.NoError(t, err)
	assert.Less(t, time.Since(began), time.Second)
	assert.True(t, resp.Degraded)
	assert.Equal(t, today, resp.Date)
	assert.Equal(t, 31, resp.ScannedDays)
	svc.AssertNumberOfCalls(t, "Preload", 1)
}

func TestUseCase_Execute_Errors(t *testing.T) {
	ctx := context.Background()
	tour := &domain.Tour{ID: "sunset-cruise", AvailableTimes: []string{"09:00"}}

	t.Run("invalid party", func(t *testing.T) {
		_, err := NewUseCase(&mockService{}, 31, 0, logger.Nop()).
			Execute(ctx, &Request{TourID: tour.ID, Party: domain.PartySize{}})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("tour not found", func(t *testing.T) {
		svc := &mockService{}
		svc.On("GetTour", ctx, "missing").Return(nil, availability.ErrTourNotFound)

		_, err := NewUseCase(svc, 31, 0, logger.Nop()).
			Execute(ctx, &Request{TourID: "missing", Party: domain.PartySize{Adults: 1}})
		assert.ErrorIs(t, err, ErrTourNotFound)
	})

	t.Run("booking store failure", func(t *testing.T) {
		svc := &mockService{}
		svc.On("GetTour", ctx, tour.ID).Return(tour, nil)
		svc.On("Today", tour).Return(today)
		svc.On("HorizonDays").Return(365)
		svc.On("Preload", ctx, tour, mock.Anything, mock.Anything).Return(cache.PreloadResult{})
		svc.On("Resolver", ctx, tour, mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

		_, err := NewUseCase(svc, 31, 0, logger.Nop()).
			Execute(ctx, &Request{TourID: tour.ID, Party: domain.PartySize{Adults: 1}})
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("cancelled context", func(t *testing.T) {
		svc := &mockService{}
		svc.On("GetTour", mock.Anything, tour.ID).Return(tour, nil)
		svc.On("Today", tour).Return(today)
		svc.On("HorizonDays").Return(365)

		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err := NewUseCase(svc, 31, 0, logger.Nop()).
			Execute(cancelled, &Request{TourID: tour.ID, Party: domain.PartySize{Adults: 1}})
		assert.ErrorIs(t, err, context.Canceled)
		svc.AssertNotCalled(t, "Preload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
