package find_next_available_date

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TourID == "" {
		return fmt.Errorf("%w: tourID is required", ErrInvalidInput)
	}
	if req.Party.Adults < 1 {
		return fmt.Errorf("%w: at least one adult is required", ErrInvalidInput)
	}
	if req.Party.Children < 0 || req.Party.Infants < 0 {
		return fmt.Errorf("%w: party counts must not be negative", ErrInvalidInput)
	}
	return nil
}
