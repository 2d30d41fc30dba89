package check_date

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourAvailability/internal/api/handlers"
	"github.com/m04kA/SMC-TourAvailability/internal/domain"
	checkDate "github.com/m04kA/SMC-TourAvailability/internal/usecase/check_date"
)

const (
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidParty = "некорректный состав группы"
	msgInvalidInput = "некорректные параметры запроса"
	msgTourNotFound = "тур не найден"
)

type Handler struct {
	useCase CheckDateUseCase
	logger  Logger
}

func NewHandler(useCase CheckDateUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tours/{tourId}/dates/{date}/disabled
// Query params: adults, children, infants
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tourID := vars["tourId"]

	date, err := time.Parse(domain.DateFormat, vars["date"])
	if err != nil {
		h.logger.Warn("GET /tours/{id}/dates/{date}/disabled - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	party, err := handlers.ParsePartySize(r)
	if err != nil {
		h.logger.Warn("GET /tours/{id}/dates/{date}/disabled - Invalid party size: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParty)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkDate.Request{TourID: tourID, Date: date, Party: party})
	if err != nil {
		switch {
		case errors.Is(err, checkDate.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, checkDate.ErrTourNotFound):
			h.logger.Warn("GET /tours/{id}/dates/{date}/disabled - Tour not found: tour_id=%s", tourID)
			handlers.RespondNotFound(w, msgTourNotFound)

		default:
			h.logger.Error("GET /tours/{id}/dates/{date}/disabled - Failed to check date: tour_id=%s, error=%v", tourID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
