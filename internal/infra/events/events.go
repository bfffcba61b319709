package events

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LabReservationService/internal/domain"
)

// Типы событий (routing key)
const (
	TypeReservationCreated       = "reservation.created"
	TypeReservationStatusChanged = "reservation.status_changed"
)

// ReservationEvent событие об изменении бронирования
type ReservationEvent struct {
	Type           string    `json:"type"`
	ReservationID  int64     `json:"reservationId"`
	OwnerID        int64     `json:"ownerId"`
	LaboratoryID   int64     `json:"laboratoryId"`
	Date           string    `json:"date"`
	Block          int       `json:"block"`
	SubBlock       string    `json:"subBlock"`
	BlockType      string    `json:"blockType"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previousStatus,omitempty"`
	OccurredAt     time.Time `json:"occurredAt"`
}

// NewReservationEvent собирает событие из бронирования
func NewReservationEvent(eventType string, r *domain.Reservation, previous domain.ReservationStatus, at time.Time) ReservationEvent {
	return ReservationEvent{
		Type:           eventType,
		ReservationID:  r.ID,
		OwnerID:        r.OwnerID,
		LaboratoryID:   r.LaboratoryID,
		Date:           r.Date.Format(domain.DateFormat),
		Block:          r.Block,
		SubBlock:       string(r.SubBlock),
		BlockType:      string(r.BlockType),
		Status:         string(r.Status),
		PreviousStatus: string(previous),
		OccurredAt:     at.UTC(),
	}
}

// NoopPublisher используется, когда брокер не настроен
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, event ReservationEvent) error {
	return nil
}
