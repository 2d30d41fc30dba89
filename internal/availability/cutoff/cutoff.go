// Package cutoff правила отсечения бронирования: cutoff в часах до начала слота
// и next-day cutoff на уровне календаря.
package cutoff

import (
	"time"

	"github.com/m04kA/SMC-TourAvailability/internal/domain"
	"github.com/m04kA/SMC-TourAvailability/pkg/types"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// IsSlotBookable true, если до начала тура осталось не меньше эффективного cutoff.
// Для слота с участниками используется cutoff with-participant.
func IsSlotBookable(tourDateTime, now time.Time, hasExistingParticipants bool, policy domain.CutoffPolicy) bool {
	hoursUntilTour := tourDateTime.Sub(now).Hours()
	return hoursUntilTour >= policy.EffectiveCutoffHours(hasExistingParticipants)
}

// IsNextDayBlocked true, если candidate - завтрашний день и текущее время
// не раньше next-day cutoff сегодня. Некорректное время cutoff не блокирует.
func IsNextDayBlocked(candidate, today, now time.Time, policy domain.CutoffPolicy) bool {
	if !policy.HasNextDayCutoff() {
		return false
	}

	cutoffTime, err := types.NewTimeStringFromString(policy.NextDayCutoffTime)
	if err != nil {
		return false
	}

	if !sameDay(candidate, today.AddDate(0, 0, 1)) {
		return false
	}

	cutoffAt := cutoffTime.On(today, today.Location())
	return !now.Before(cutoffAt)
}

// TourDateTime дата YYYY-MM-DD и слот HH:MM в часовом поясе loc.
// При некорректном вводе логирует ошибку и возвращает now (слот считается истекшим).
func TourDateTime(date, slot string, loc *time.Location, now time.Time, log Logger) time.Time {
	day, err := time.ParseInLocation(domain.DateFormat, date, loc)
	if err != nil {
		log.Error("cutoff: invalid date %q for slot %q, treating as now: %v", date, slot, err)
		return now
	}

	slotTime, err := types.NewTimeStringFromString(slot)
	if err != nil {
		log.Error("cutoff: invalid slot time %q on %s, treating as now: %v", slot, date, err)
		return now
	}

	return slotTime.On(day, loc)
}

// StartOfDay полночь календарного дня t в loc
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Evaluator применяет политику тура в его часовом поясе
type Evaluator struct {
	policy domain.CutoffPolicy
	loc    *time.Location
	logger Logger
}

// NewEvaluator создает evaluator для политики тура.
// Некорректное время next-day cutoff логируется один раз и правило отключается.
func NewEvaluator(policy domain.CutoffPolicy, loc *time.Location, logger Logger) *Evaluator {
	if policy.HasNextDayCutoff() && !types.IsValidTimeString(policy.NextDayCutoffTime) {
		logger.Warn("cutoff: invalid next-day cutoff time %q, rule disabled", policy.NextDayCutoffTime)
		policy.NextDayCutoffTime = ""
	}
	return &Evaluator{policy: policy, loc: loc, logger: logger}
}

// Location часовой пояс тура
func (e *Evaluator) Location() *time.Location {
	return e.loc
}

// Today полночь текущего дня в часовом поясе тура
func (e *Evaluator) Today(now time.Time) time.Time {
	return StartOfDay(now, e.loc)
}

// SlotBookable проверяет cutoff для слота date/slot
func (e *Evaluator) SlotBookable(date, slot string, now time.Time, hasExistingParticipants bool) bool {
	tourDateTime := TourDateTime(date, slot, e.loc, now, e.logger)
	return IsSlotBookable(tourDateTime, now, hasExistingParticipants, e.policy)
}

// NextDayBlocked проверяет next-day cutoff для даты date (YYYY-MM-DD)
func (e *Evaluator) NextDayBlocked(date string, now time.Time) bool {
	candidate, err := time.ParseInLocation(domain.DateFormat, date, e.loc)
	if err != nil {
		e.logger.Warn("cutoff: invalid date %q in next-day check", date)
		return false
	}
	return IsNextDayBlocked(candidate, e.Today(now), now.In(e.loc), e.policy)
}
