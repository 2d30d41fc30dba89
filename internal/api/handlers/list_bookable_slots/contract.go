package list_bookable_slots

import (
	"context"

	listBookableSlots "github.com/m04kA/SMC-TourAvailability/internal/usecase/list_bookable_slots"
)

type ListBookableSlotsUseCase interface {
	Execute(ctx context.Context, req *listBookableSlots.Request) (*listBookableSlots.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
