package create_reservation

import (
	"context"

	"github.com/m04kA/SMC-LabReservationService/internal/service/reservations/models"
	createReservationUC "github.com/m04kA/SMC-LabReservationService/internal/usecase/create_reservation"
)

type CreateReservationUseCase interface {
	Execute(ctx context.Context, req *createReservationUC.Request) (*models.ReservationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
