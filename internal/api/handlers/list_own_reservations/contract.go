package list_own_reservations

import (
	"context"

	"github.com/m04kA/SMC-LabReservationService/internal/domain"
	"github.com/m04kA/SMC-LabReservationService/internal/service/reservations/models"
)

type ReservationService interface {
	ListOwn(ctx context.Context, caller domain.Caller, includeCancelled bool) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
