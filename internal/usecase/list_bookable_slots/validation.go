package list_bookable_slots

import (
	"fmt"

	"github.com/m04kA/SMC-TourAvailability/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TourID == "" {
		return fmt.Errorf("%w: tourID is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return validateParty(req.Party)
}

// validateParty проверяет состав группы
func validateParty(party domain.PartySize) error {
	if party.Adults < 1 {
		return fmt.Errorf("%w: at least one adult is required", ErrInvalidInput)
	}
	if party.Children < 0 || party.Infants < 0 {
		return fmt.Errorf("%w: party counts must not be negative", ErrInvalidInput)
	}
	return nil
}
