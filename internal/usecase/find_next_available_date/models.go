package find_next_available_date

import (
	"time"

	"github.com/m04kA/SMC-TourAvailability/internal/domain"
)

// Request модель запроса ближайшей доступной даты
type Request struct {
	TourID string
	Party  domain.PartySize
}

// Response модель ответа
type Response struct {
	TourID      string
	Date        time.Time // ближайшая доступная дата; today, если Degraded
	Degraded    bool      // в пределах горизонта доступных дат нет
	ScannedDays int
}
