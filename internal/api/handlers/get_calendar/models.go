package get_calendar

import (
	"github.com/m04kA/SMC-TourAvailability/internal/domain"
	getCalendar "github.com/m04kA/SMC-TourAvailability/internal/usecase/get_calendar"
)

// CalendarResponse HTTP response model
type CalendarResponse struct {
	TourID    string        `json:"tourId"`
	Month     string        `json:"month"`
	Days      []CalendarDay `json:"days"`
	Fallbacks int           `json:"fallbacks"`
}

// CalendarDay модель даты календаря
type CalendarDay struct {
	Date     string `json:"date"`
	Disabled bool   `json:"disabled"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getCalendar.Response) *CalendarResponse {
	days := make([]CalendarDay, len(resp.Days))
	for i, day := range resp.Days {
		days[i] = CalendarDay{Date: day.Date, Disabled: day.Disabled}
	}

	return &CalendarResponse{
		TourID:    resp.TourID,
		Month:     resp.Month.Format(domain.MonthFormat),
		Days:      days,
		Fallbacks: resp.Fallbacks,
	}
}
