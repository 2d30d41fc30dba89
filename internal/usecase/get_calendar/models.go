package get_calendar

import (
	"time"

	"github.com/m04kA/SMC-TourAvailability/internal/domain"
)

// Request модель запроса календаря на месяц
type Request struct {
	TourID string
	Month  time.Time // любой момент месяца, используются год и месяц
	Party  domain.PartySize
}

// Response модель ответа календаря
type Response struct {
	TourID    string
	Month     time.Time // первое число месяца
	Days      []Day
	Fallbacks int // дат, для которых провайдер не ответил
}

// Day состояние одной даты календаря
type Day struct {
	Date     string // YYYY-MM-DD
	Disabled bool
}
