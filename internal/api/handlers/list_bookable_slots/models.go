package list_bookable_slots

import (
	"time"

	"github.com/m04kA/SMC-TourAvailability/internal/domain"
	listBookableSlots "github.com/m04kA/SMC-TourAvailability/internal/usecase/list_bookable_slots"
)

// BookableSlotsResponse HTTP response model
type BookableSlotsResponse struct {
	TourID string   `json:"tourId"`
	Date   string   `json:"date"`
	Slots  []string `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *listBookableSlots.Response) *BookableSlotsResponse {
	slots := resp.Slots
	if slots == nil {
		slots = []string{}
	}
	return &BookableSlotsResponse{
		TourID: resp.TourID,
		Date:   resp.Date.Format(domain.DateFormat),
		Slots:  slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(tourID, dateStr, sessionID string, party domain.PartySize) (*listBookableSlots.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &listBookableSlots.Request{
		TourID:    tourID,
		Date:      date,
		Party:     party,
		SessionID: sessionID,
	}, nil
}
