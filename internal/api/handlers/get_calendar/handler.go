package get_calendar

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourAvailability/internal/api/handlers"
	"github.com/m04kA/SMC-TourAvailability/internal/domain"
	getCalendar "github.com/m04kA/SMC-TourAvailability/internal/usecase/get_calendar"
)

const (
	msgMissingMonth = "месяц обязателен"
	msgInvalidMonth = "некорректный формат месяца, ожидается YYYY-MM"
	msgInvalidParty = "некорректный состав группы"
	msgInvalidInput = "некорректные параметры запроса"
	msgTourNotFound = "тур не найден"
)

type Handler struct {
	useCase GetCalendarUseCase
	logger  Logger
}

func NewHandler(useCase GetCalendarUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tours/{tourId}/calendar
// Query params: month (required, YYYY-MM), adults, children, infants
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tourID := mux.Vars(r)["tourId"]

	monthStr := r.URL.Query().Get("month")
	if monthStr == "" {
		handlers.RespondBadRequest(w, msgMissingMonth)
		return
	}

	month, err := time.Parse(domain.MonthFormat, monthStr)
	if err != nil {
		h.logger.Warn("GET /tours/{id}/calendar - Invalid month format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	party, err := handlers.ParsePartySize(r)
	if err != nil {
		h.logger.Warn("GET /tours/{id}/calendar - Invalid party size: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParty)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getCalendar.Request{TourID: tourID, Month: month, Party: party})
	if err != nil {
		switch {
		case errors.Is(err, getCalendar.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getCalendar.ErrTourNotFound):
			h.logger.Warn("GET /tours/{id}/calendar - Tour not found: tour_id=%s", tourID)
			handlers.RespondNotFound(w, msgTourNotFound)

		default:
			h.logger.Error("GET /tours/{id}/calendar - Failed to build calendar: tour_id=%s, month=%s, error=%v",
				tourID, monthStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
