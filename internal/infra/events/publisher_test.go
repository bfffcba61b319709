package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabReservationService/internal/domain"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
	closed   bool
}

func (c *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	c.exchange = exchange
	c.key = key
	c.msg = msg
	return c.err
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

func sampleReservation() *domain.Reservation {
	return &domain.Reservation{
		ID:           42,
		OwnerID:      7,
		LaboratoryID: 1,
		Date:         time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Block:        2,
		SubBlock:     domain.SubBlockFirstHour,
		BlockType:    domain.BlockTypeFull,
		Status:       domain.StatusCancelled,
	}
}

func TestPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := NewWithChannel(ch, "lab_reservations")

	event := NewReservationEvent(TypeReservationStatusChanged, sampleReservation(), domain.StatusConfirmed, time.Now())
	require.NoError(t, p.Publish(context.Background(), event))

	assert.Equal(t, "lab_reservations", ch.exchange)
	assert.Equal(t, TypeReservationStatusChanged, ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)

	var decoded ReservationEvent
	require.NoError(t, json.Unmarshal(ch.msg.Body, &decoded))
	assert.Equal(t, int64(42), decoded.ReservationID)
	assert.Equal(t, "2025-03-10", decoded.Date)
	assert.Equal(t, "cancelled", decoded.Status)
	assert.Equal(t, "confirmed", decoded.PreviousStatus)
}

func TestPublisher_PublishError(t *testing.T) {
	p := NewWithChannel(&fakeChannel{err: errors.New("channel/connection is not open")}, "x")

	err := p.Publish(context.Background(), NewReservationEvent(TypeReservationCreated, sampleReservation(), "", time.Now()))
	assert.ErrorIs(t, err, ErrPublish)
}

func TestPublisher_Closed(t *testing.T) {
	ch := &fakeChannel{}
	p := NewWithChannel(ch, "x")

	require.NoError(t, p.Close())
	require.NoError(t, p.Close())
	assert.True(t, ch.closed)

	err := p.Publish(context.Background(), NewReservationEvent(TypeReservationCreated, sampleReservation(), "", time.Now()))
	assert.ErrorIs(t, err, ErrClosed)
}
