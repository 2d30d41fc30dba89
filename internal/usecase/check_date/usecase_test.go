package check_date

import (
	"context"
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

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	tour := &domain.Tour{ID: "kayak", MaxSlots: 4, AvailableTimes: []string{"09:00"}}

	tests := []struct {
		name    string
		date    time.Time
		records map[string]domain.DateAvailabilityRecord
		party   domain.PartySize
		want    bool
	}{
		{
			name:  "open date",
			date:  time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			party: domain.PartySize{Adults: 2},
			want:  false,
		},
		{
			name:  "party larger than tour capacity",
			date:  time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			party: domain.PartySize{Adults: 3, Children: 2, Infants: 1},
			want:  true,
		},
		{
			name: "provider reports no slots",
			date: time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC),
			records: map[string]domain.DateAvailabilityRecord{
				"2025-06-11": {Date: "2025-06-11", TimeSlots: []domain.TimeSlot{}},
			},
			party: domain.PartySize{Adults: 1},
			want:  true,
		},
		{
			name:  "past date",
			date:  time.Date(2025, 5, 20, 0, 0, 0, 0, time.UTC),
			party: domain.PartySize{Adults: 1},
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := availability.NewResolver(availability.Snapshot{Tour: *tour, Records: tt.records, Now: now},
				cutoff.NewEvaluator(tour.Policy, time.UTC, logger.Nop()), logger.Nop())

			svc := &mockService{}
			svc.On("GetTour", ctx, "kayak").Return(tour, nil)
			svc.On("Preload", ctx, tour, tt.date, tt.date).Return(cache.PreloadResult{Fetched: 1})
			svc.On("Resolver", ctx, tour, tt.date, tt.date).Return(resolver, nil)

			resp, err := NewUseCase(svc, logger.Nop()).Execute(ctx, &Request{TourID: "kayak", Date: tt.date, Party: tt.party})
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.Disabled)
			svc.AssertExpectations(t)
		})
	}
}

func TestUseCase_Execute_Errors(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	_, err := NewUseCase(&mockService{}, logger.Nop()).Execute(ctx, &Request{TourID: "kayak", Date: date})
	assert.ErrorIs(t, err, ErrInvalidInput)

	svc := &mockService{}
	svc.On("GetTour", ctx, "missing").Return(nil, availability.ErrTourNotFound)
	_, err = NewUseCase(svc, logger.Nop()).Execute(ctx, &Request{TourID: "missing", Date: date, Party: domain.PartySize{Adults: 1}})
	assert.ErrorIs(t, err, ErrTourNotFound)
}
