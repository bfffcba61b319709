package get_day_availability

import (
	"context"

	getDayAvailabilityUC "github.com/m04kA/SMC-LabReservationService/internal/usecase/get_day_availability"
)

type GetDayAvailabilityUseCase interface {
	Execute(ctx context.Context, req *getDayAvailabilityUC.Request) (*getDayAvailabilityUC.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
