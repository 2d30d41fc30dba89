package find_next_available_date

import (
	"context"

	findNextAvailableDate "github.com/m04kA/SMC-TourAvailability/internal/usecase/find_next_available_date"
)

type FindNextAvailableDateUseCase interface {
	Execute(ctx context.Context, req *findNextAvailableDate.Request) (*findNextAvailableDate.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
