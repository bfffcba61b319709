package list_laboratories

import (
	"context"

	"github.com/m04kA/SMC-LabReservationService/internal/service/laboratories"
)

type LaboratoryService interface {
	ListActive(ctx context.Context) ([]laboratories.LaboratoryResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
