package list_bookable_slots

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-TourAvailability/internal/domain"
	listBookableSlots "github.com/m04kA/SMC-TourAvailability/internal/usecase/list_bookable_slots"
	"github.com/m04kA/SMC-TourAvailability/pkg/logger"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *listBookableSlots.Request) (*listBookableSlots.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*listBookableSlots.Response), args.Error(1)
}

func serve(uc ListBookableSlotsUseCase, target string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/tours/{tourId}/slots", NewHandler(uc, logger.Nop()).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandler_Handle(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, &listBookableSlots.Request{
		TourID:    "sunset-cruise",
		Date:      date,
		Party:     domain.PartySize{Adults: 2, Children: 1},
		SessionID: "abc",
	}).Return(&listBookableSlots.Response{TourID: "sunset-cruise", Date: date, Slots: []string{"14:00", "09:00"}}, nil)

	rec := serve(uc, "/api/v1/tours/sunset-cruise/slots?date=2025-06-10&adults=2&children=1&session=abc")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tourId":"sunset-cruise","date":"2025-06-10","slots":["14:00","09:00"]}`, rec.Body.String())
	uc.AssertExpectations(t)
}

func TestHandler_Handle_EmptySlotsEncodeAsArray(t *testing.T) {
	date := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)

	uc := &mockUseCase{}
	uc.On("Execute", mock.Anything, mock.Anything).
		Return(&listBookableSlots.Response{TourID: "sunset-cruise", Date: date}, nil)

	rec := serve(uc, "/api/v1/tours/sunset-cruise/slots?date=2025-06-10")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tourId":"sunset-cruise","date":"2025-06-10","slots":[]}`, rec.Body.String())
}

func TestHandler_Handle_Errors(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		ucErr      error
		wantStatus int
	}{
		{"missing date", "/api/v1/tours/t/slots", nil, http.StatusBadRequest},
		{"invalid date", "/api/v1/tours/t/slots?date=10.06.2025", nil, http.StatusBadRequest},
		{"invalid party", "/api/v1/tours/t/slots?date=2025-06-10&adults=x", nil, http.StatusBadRequest},
		{"invalid input", "/api/v1/tours/t/slots?date=2025-06-10&adults=0", listBookableSlots.ErrInvalidInput, http.StatusBadRequest},
		{"tour not found", "/api/v1/tours/t/slots?date=2025-06-10", listBookableSlots.ErrTourNotFound, http.StatusNotFound},
		{"superseded", "/api/v1/tours/t/slots?date=2025-06-10&session=s", listBookableSlots.ErrSuperseded, http.StatusConflict},
		{"internal", "/api/v1/tours/t/slots?date=2025-06-10", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &mockUseCase{}
			if tt.ucErr != nil {
				uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.ucErr)
			}

			rec := serve(uc, tt.target)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.ucErr == nil {
				uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
			}
		})
	}
}
