package find_next_available_date

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourAvailability/internal/api/handlers"
	findNextAvailableDate "github.com/m04kA/SMC-TourAvailability/internal/usecase/find_next_available_date"
)

const (
	msgInvalidParty = "некорректный состав группы"
	msgInvalidInput = "некорректные параметры запроса"
	msgTourNotFound = "тур не найден"
)

type Handler struct {
	useCase FindNextAvailableDateUseCase
	logger  Logger
}

func NewHandler(useCase FindNextAvailableDateUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tours/{tourId}/next-available-date
// Query params: adults, children, infants
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tourID := mux.Vars(r)["tourId"]

	party, err := handlers.ParsePartySize(r)
	if err != nil {
		h.logger.Warn("GET /tours/{id}/next-available-date - Invalid party size: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParty)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &findNextAvailableDate.Request{TourID: tourID, Party: party})
	if err != nil {
		switch {
		case errors.Is(err, findNextAvailableDate.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, findNextAvailableDate.ErrTourNotFound):
			h.logger.Warn("GET /tours/{id}/next-available-date - Tour not found: tour_id=%s", tourID)
			handlers.RespondNotFound(w, msgTourNotFound)

		default:
			h.logger.Error("GET /tours/{id}/next-available-date - Failed to find date: tour_id=%s, error=%v", tourID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.Degraded {
		h.logger.Warn("GET /tours/{id}/next-available-date - No available date: tour_id=%s, scanned=%d",
			tourID, result.ScannedDays)
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
