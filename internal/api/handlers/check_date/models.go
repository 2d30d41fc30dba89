package check_date

import (
	"github.com/m04kA/SMC-TourAvailability/internal/domain"
	checkDate "github.com/m04kA/SMC-TourAvailability/internal/usecase/check_date"
)

// DateStatusResponse HTTP response model
type DateStatusResponse struct {
	TourID   string `json:"tourId"`
	Date     string `json:"date"`
	Disabled bool   `json:"disabled"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkDate.Response) *DateStatusResponse {
	return &DateStatusResponse{
		TourID:   resp.TourID,
		Date:     resp.Date.Format(domain.DateFormat),
		Disabled: resp.Disabled,
	}
}
