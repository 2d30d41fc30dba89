package participants

import "github.com/m04kA/SMC-TourAvailability/internal/domain"

// Build сворачивает список бронирований в карту дата -> слот -> число участников
//
// Для каждой даты, встретившейся в бронированиях, все сконфигурированные слоты
// инициализируются нулем, чтобы слоты без бронирований тоже были адресуемы.
// Бронирования без даты или времени пропускаются: при объединении локальных и
// внешних списков частичные данные ожидаемы. Младенцы места не занимают.
//
// Функция чистая: входные данные не изменяются, результат строится заново.
func Build(bookings []domain.Booking, configuredTimeSlots []string) domain.ParticipantsByDate {
	result := make(domain.ParticipantsByDate)

	for i := range bookings {
		booking := &bookings[i]
		if booking.Date == "" || booking.Time == "" {
			continue
		}

		slots, ok := result[booking.Date]
		if !ok {
			slots = make(map[string]int, len(configuredTimeSlots))
			for _, slot := range configuredTimeSlots {
				slots[slot] = 0
			}
			result[booking.Date] = slots
		}

		slots[booking.Time] += booking.CapacityCount()
	}

	return result
}

// ConfirmedOnly оставляет только подтвержденные бронирования
func ConfirmedOnly(bookings []domain.Booking) []domain.Booking {
	confirmed := make([]domain.Booking, 0, len(bookings))
	for i := range bookings {
		if bookings[i].IsConfirmed() {
			confirmed = append(confirmed, bookings[i])
		}
	}
	return confirmed
}
