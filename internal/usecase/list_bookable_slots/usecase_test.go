package list_bookable_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

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

func (m *mockService) RefreshDate(ctx context.Context, tour *domain.Tour, date string) {
	m.Called(ctx, tour, date)
}

func (m *mockService) Resolver(ctx context.Context, tour *domain.Tour, from, to time.Time) (*availability.Resolver, error) {
	args := m.Called(ctx, tour, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*availability.Resolver), args.Error(1)
}

var (
	now  = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	date = time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	tour = &domain.Tour{
		ID:             "sunset-cruise",
		MaxSlots:       10,
		AvailableTimes: []string{"09:00", "14:00"},
	}
)

func newResolver(records map[string]domain.DateAvailabilityRecord) *availability.Resolver {
	return availability.NewResolver(availability.Snapshot{
		Tour:    *tour,
		Records: records,
		Now:     now,
	}, cutoff.NewEvaluator(tour.Policy, time.UTC, logger.Nop()), logger.Nop())
}

func TestUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	four := 4
	zero := 0
	records := map[string]domain.DateAvailabilityRecord{
		"2025-06-10": {Date: "2025-06-10", HasAvailability: true, TimeSlots: []domain.TimeSlot{
			{Time: "09:00", AvailableSpots: &zero},
			{Time: "14:00", AvailableSpots: &four},
		}},
	}

	svc := &mockService{}
	svc.On("GetTour", ctx, "sunset-cruise").Return(tour, nil)
	svc.On("RefreshDate", ctx, tour, "2025-06-10").Return()
	svc.On("Resolver", ctx, tour, date, date).Return(newResolver(records), nil)

	uc := NewUseCase(svc, availability.NewRequestTracker(), logger.Nop())
	resp, err := uc.Execute(ctx, &Request{
		TourID:    "sunset-cruise",
		Date:      date,
		Party:     domain.PartySize{Adults: 2, Children: 1},
		SessionID: "session-1",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"14:00"}, resp.Slots)
	assert.Equal(t, "sunset-cruise", resp.TourID)
	assert.Equal(t, date, resp.Date)
	svc.AssertExpectations(t)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{"missing tour", &Request{Date: date, Party: domain.PartySize{Adults: 1}}},
		{"missing date", &Request{TourID: "sunset-cruise", Party: domain.PartySize{Adults: 1}}},
		{"no adults", &Request{TourID: "sunset-cruise", Date: date, Party: domain.PartySize{Children: 2}}},
		{"negative children", &Request{TourID: "sunset-cruise", Date: date, Party: domain.PartySize{Adults: 1, Children: -1}}},
		{"negative infants", &Request{TourID: "sunset-cruise", Date: date, Party: domain.PartySize{Adults: 1, Infants: -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockService{}
			uc := NewUseCase(svc, availability.NewRequestTracker(), logger.Nop())

			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			svc.AssertNotCalled(t, "GetTour", mock.Anything, mock.Anything)
		})
	}
}

func TestUseCase_Execute_Errors(t *testing.T) {
	ctx := context.Background()
	req := &Request{TourID: "sunset-cruise", Date: date, Party: domain.PartySize{Adults: 1}}

	t.Run("tour not found", func(t *testing.T) {
		svc := &mockService{}
		svc.On("GetTour", ctx, "sunset-cruise").Return(nil, availability.ErrTourNotFound)

		_, err := NewUseCase(svc, availability.NewRequestTracker(), logger.Nop()).Execute(ctx, req)
		assert.ErrorIs(t, err, ErrTourNotFound)
	})

	t.Run("tour repository failure", func(t *testing.T) {
		svc := &mockService{}
		svc.On("GetTour", ctx, "sunset-cruise").Return(nil, availability.ErrInternal)

		_, err := NewUseCase(svc, availability.NewRequestTracker(), logger.Nop()).Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("booking store failure", func(t *testing.T) {
		svc := &mockService{}
		svc.On("GetTour", ctx, "sunset-cruise").Return(tour, nil)
		svc.On("RefreshDate", ctx, tour, "2025-06-10").Return()
		svc.On("Resolver", ctx, tour, date, date).Return(nil, errors.New("db down"))

		_, err := NewUseCase(svc, availability.NewRequestTracker(), logger.Nop()).Execute(ctx, req)
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestUseCase_Execute_SupersededRequestIsDiscarded(t *testing.T) {
	ctx := context.Background()
	tracker := availability.NewRequestTracker()

	svc := &mockService{}
	svc.On("GetTour", ctx, "sunset-cruise").Return(tour, nil)
	svc.On("RefreshDate", ctx, tour, "2025-06-10").Return()
	svc.On("Resolver", ctx, tour, date, date).
		Run(func(mock.Arguments) {
			// пользователь успел поменять размер группы
			tracker.Begin("session-1")
		}).
		Return(newResolver(nil), nil)

	uc := NewUseCase(svc, tracker, logger.Nop())
	resp, err := uc.Execute(ctx, &Request{
		TourID:    "sunset-cruise",
		Date:      date,
		Party:     domain.PartySize{Adults: 2},
		SessionID: "session-1",
	})

	assert.ErrorIs(t, err, ErrSuperseded)
	assert.Nil(t, resp)
}

func TestUseCase_Execute_WithoutSession(t *testing.T) {
	ctx := context.Background()

	svc := &mockService{}
	svc.On("GetTour", ctx, "sunset-cruise").Return(tour, nil)
	svc.On("RefreshDate", ctx, tour, "2025-06-10").Return()
	svc.On("Resolver", ctx, tour, date, date).Return(newResolver(nil), nil)

	resp, err := NewUseCase(svc, availability.NewRequestTracker(), logger.Nop()).
		Execute(ctx, &Request{TourID: "sunset-cruise", Date: date, Party: domain.PartySize{Adults: 2}})

	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "14:00"}, resp.Slots)
}
