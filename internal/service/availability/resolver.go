package availability

import (
	"time"

	"github.com/m04kA/SMC-TourAvailability/internal/availability/cutoff"
	"github.com/m04kA/SMC-TourAvailability/internal/domain"
)

// Snapshot данные, на которых считается доступность в рамках одного запроса
type Snapshot struct {
	Tour         domain.Tour
	Records      map[string]domain.DateAvailabilityRecord // дата -> запись кэша
	Participants domain.ParticipantsByDate
	Now          time.Time
	HorizonDays  int // дальше today + HorizonDays даты закрыты, 0 = без ограничения
}

// Resolver сводит внешнюю доступность, локальные бронирования и cutoff
// в список доступных слотов. Работает только со своим снимком данных:
// параллельный preload не меняет результат уже созданного резолвера.
type Resolver struct {
	tour         domain.Tour
	records      map[string]domain.DateAvailabilityRecord
	participants domain.ParticipantsByDate
	now          time.Time
	horizonDays  int
	evaluator    *cutoff.Evaluator
	logger       Logger
}

// NewResolver создает резолвер поверх копии снимка
func NewResolver(snap Snapshot, evaluator *cutoff.Evaluator, logger Logger) *Resolver {
	records := make(map[string]domain.DateAvailabilityRecord, len(snap.Records))
	for date, record := range snap.Records {
		records[date] = record.Clone()
	}

	tour := snap.Tour
	tour.AvailableTimes = append([]string(nil), snap.Tour.AvailableTimes...)

	return &Resolver{
		tour:         tour,
		records:      records,
		participants: snap.Participants,
		now:          snap.Now,
		horizonDays:  snap.HorizonDays,
		evaluator:    evaluator,
		logger:       logger,
	}
}

// Now момент, на который построен снимок
func (r *Resolver) Now() time.Time {
	return r.now
}

// Today полночь текущего дня в часовом поясе тура
func (r *Resolver) Today() time.Time {
	return r.evaluator.Today(r.now)
}

// BookableSlots возвращает слоты даты, доступные для группы party,
// в порядке исходного списка слотов
func (r *Resolver) BookableSlots(date string, party domain.PartySize) []string {
	// 1. Next-day cutoff закрывает весь завтрашний день
	if r.evaluator.NextDayBlocked(date, r.now) {
		return []string{}
	}

	// 2. Проверяем каждый слот: cutoff + наличие мест
	candidates, authoritative := r.candidateSlots(date)
	result := make([]string, 0, len(candidates))
	for _, slot := range candidates {
		if r.slotAvailable(date, slot, party, authoritative) {
			result = append(result, slot.Time)
		}
	}
	return result
}

// IsDateFullyBooked возвращает true, если ни один слот даты не проходит
// cutoff и проверку мест. Останавливается на первом доступном слоте.
func (r *Resolver) IsDateFullyBooked(date string, party domain.PartySize) bool {
	candidates, authoritative := r.candidateSlots(date)
	for _, slot := range candidates {
		if r.slotAvailable(date, slot, party, authoritative) {
			return false
		}
	}
	return true
}

// DisableDate предикат календаря: дата в прошлом, за горизонтом бронирования,
// закрыта next-day cutoff или полностью занята
func (r *Resolver) DisableDate(date string, party domain.PartySize) bool {
	loc := r.evaluator.Location()
	day, err := time.ParseInLocation(domain.DateFormat, date, loc)
	if err != nil {
		r.logger.Warn("Resolver: invalid calendar date %q, disabling", date)
		return true
	}

	today := r.Today()
	if day.Before(today) {
		return true
	}
	if r.horizonDays > 0 && day.After(today.AddDate(0, 0, r.horizonDays)) {
		return true
	}
	if r.evaluator.NextDayBlocked(date, r.now) {
		return true
	}
	return r.IsDateFullyBooked(date, party)
}

// candidateSlots слоты из записи кэша, иначе сконфигурированные слоты тура.
// authoritative = false для fallback-записи и для даты без записи:
// тогда места считаются по локальным бронированиям.
// Fallback-запись общего инвентаря могла быть создана другим туром с теми же
// product key, поэтому ее слоты не используются.
func (r *Resolver) candidateSlots(date string) ([]domain.TimeSlot, bool) {
	if record, ok := r.records[date]; ok && !record.IsFallback {
		return record.TimeSlots, true
	}
	return domain.ConfiguredTimeSlots(r.tour.AvailableTimes), false
}

func (r *Resolver) slotAvailable(date string, slot domain.TimeSlot, party domain.PartySize, authoritative bool) bool {
	booked := r.participants.Count(date, slot.Time)

	if !r.evaluator.SlotBookable(date, slot.Time, r.now, booked > 0) {
		return false
	}

	seats := party.CapacityCount()
	if authoritative && slot.AvailableSpots != nil {
		return *slot.AvailableSpots >= seats
	}
	return booked+seats <= r.tour.Capacity()
}
