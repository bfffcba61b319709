package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LabReservationService/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ListActiveInBlock(ctx context.Context, date time.Time, block int) ([]*domain.Reservation, error)
}

// ReadRetrier повтор чтения при временных ошибках БД
type ReadRetrier interface {
	Read(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
