package reservations

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LabReservationService/internal/domain"
	"github.com/m04kA/SMC-LabReservationService/internal/infra/events"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) (time.Time, error)
	ClaimSlots(ctx context.Context, reservationID int64, slots []domain.Slot) error
	ReleaseSlots(ctx context.Context, reservationID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadRetrier повтор чтения при временных ошибках БД
type ReadRetrier interface {
	Read(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикация событий после коммита
type EventPublisher interface {
	Publish(ctx context.Context, event events.ReservationEvent) error
}

// Metrics счётчик исходов операций
type Metrics interface {
	ObserveReservation(operation, outcome string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
