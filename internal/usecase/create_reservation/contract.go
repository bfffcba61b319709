package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LabReservationService/internal/domain"
	"github.com/m04kA/SMC-LabReservationService/internal/infra/events"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	ListActiveInBlock(ctx context.Context, date time.Time, block int) ([]*domain.Reservation, error)
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	ClaimSlots(ctx context.Context, reservationID int64, slots []domain.Slot) error
}

// LaboratoryRepository интерфейс справочника лабораторий
type LaboratoryRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Laboratory, error)
	GetByName(ctx context.Context, name string) (*domain.Laboratory, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher публикация событий после коммита
type EventPublisher interface {
	Publish(ctx context.Context, event events.ReservationEvent) error
}

// Metrics счётчик исходов операций
type Metrics interface {
	ObserveReservation(operation, outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
