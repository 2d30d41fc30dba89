package list_bookable_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourAvailability/internal/api/handlers"
	listBookableSlots "github.com/m04kA/SMC-TourAvailability/internal/usecase/list_bookable_slots"
)

const (
	msgMissingDate  = "дата обязательна"
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidParty = "некорректный состав группы"
	msgInvalidInput = "некорректные параметры запроса"
	msgTourNotFound = "тур не найден"
	msgSuperseded   = "superseded: запрос заменен более новым"
)

type Handler struct {
	useCase ListBookableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase ListBookableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tours/{tourId}/slots
// Query params: date (required, YYYY-MM-DD), adults, children, infants, session
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tourID := mux.Vars(r)["tourId"]

	// Извлекаем date из query параметров
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /tours/{id}/slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	party, err := handlers.ParsePartySize(r)
	if err != nil {
		h.logger.Warn("GET /tours/{id}/slots - Invalid party size: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParty)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(tourID, dateStr, r.URL.Query().Get("session"), party)
	if err != nil {
		h.logger.Warn("GET /tours/{id}/slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, listBookableSlots.ErrInvalidInput):
			h.logger.Warn("GET /tours/{id}/slots - Invalid input: tour_id=%s, error=%v", tourID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, listBookableSlots.ErrTourNotFound):
			h.logger.Warn("GET /tours/{id}/slots - Tour not found: tour_id=%s", tourID)
			handlers.RespondNotFound(w, msgTourNotFound)

		case errors.Is(err, listBookableSlots.ErrSuperseded):
			h.logger.Info("GET /tours/{id}/slots - Superseded: tour_id=%s, session=%s", tourID, useCaseReq.SessionID)
			handlers.RespondConflict(w, msgSuperseded)

		default:
			h.logger.Error("GET /tours/{id}/slots - Failed to list slots: tour_id=%s, error=%v", tourID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tours/{id}/slots - Slots retrieved successfully: tour_id=%s, date=%s, slots_count=%d",
		tourID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
