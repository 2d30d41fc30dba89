package list_bookable_slots

import (
	"time"

	"github.com/m04kA/SMC-TourAvailability/internal/domain"
)

// Request модель запроса списка доступных слотов
type Request struct {
	TourID    string           // ID тура
	Date      time.Time        // Дата (без времени)
	Party     domain.PartySize // Состав группы
	SessionID string           // Сессия пользователя для last-request-wins, пусто = без отслеживания
}

// Response модель ответа со списком доступных слотов
type Response struct {
	TourID string
	Date   time.Time
	Slots  []string // "HH:MM" в порядке источника
}
