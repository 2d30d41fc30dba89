package check_date

import (
	"time"

	"github.com/m04kA/SMC-TourAvailability/internal/domain"
)

// Request модель запроса проверки даты календаря
type Request struct {
	TourID string
	Date   time.Time
	Party  domain.PartySize
}

// Response модель ответа: нужно ли закрыть дату в календаре
type Response struct {
	TourID   string
	Date     time.Time
	Disabled bool
}
