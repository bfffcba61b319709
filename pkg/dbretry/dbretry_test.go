package dbretry

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestRead_RetriesTransientErrors(t *testing.T) {
	p := New(3, time.Millisecond)
	calls := 0

	err := p.Read(context.Background(), func(ctx context.Context) error {
		calls++
		if calls < 3 {
			return driver.ErrBadConn
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRead_StopsAfterMaxRetries(t *testing.T) {
	p := New(2, time.Millisecond)
	calls := 0

	err := p.Read(context.Background(), func(ctx context.Context) error {
		calls++
		return &pq.Error{Code: "08006"}
	})

	assert.Error(t, err)
	var pqErr *pq.Error
	assert.True(t, errors.As(err, &pqErr))
	assert.Equal(t, 3, calls)
}

func TestRead_DoesNotRetryPermanentErrors(t *testing.T) {
	p := New(5, time.Millisecond)
	calls := 0
	permanent := errors.New("syntax error")

	err := p.Read(context.Background(), func(ctx context.Context) error {
		calls++
		return permanent
	})

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestNoRetry(t *testing.T) {
	calls := 0
	err := NoRetry().Read(context.Background(), func(ctx context.Context) error {
		calls++
		return driver.ErrBadConn
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
