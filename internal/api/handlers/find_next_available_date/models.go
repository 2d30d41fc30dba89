package find_next_available_date

import (
	"github.com/m04kA/SMC-TourAvailability/internal/domain"
	findNextAvailableDate "github.com/m04kA/SMC-TourAvailability/internal/usecase/find_next_available_date"
)

// NextAvailableDateResponse HTTP response model
type NextAvailableDateResponse struct {
	TourID      string `json:"tourId"`
	Date        string `json:"date"`
	Degraded    bool   `json:"degraded"` // true = доступных дат нет, date = сегодня
	ScannedDays int    `json:"scannedDays"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *findNextAvailableDate.Response) *NextAvailableDateResponse {
	return &NextAvailableDateResponse{
		TourID:      resp.TourID,
		Date:        resp.Date.Format(domain.DateFormat),
		Degraded:    resp.Degraded,
		ScannedDays: resp.ScannedDays,
	}
}
