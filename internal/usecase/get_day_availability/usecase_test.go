package get_day_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabReservationService/internal/domain"
	"github.com/m04kA/SMC-LabReservationService/internal/testutil/memstore"
	"github.com/m04kA/SMC-LabReservationService/pkg/logger"
)

func TestExecute_Grid(t *testing.T) {
	store := memstore.New()
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	full := store.Seed(domain.Reservation{Date: date, Block: 2, BlockType: domain.BlockTypeFull, SubBlock: domain.SubBlockFirstHour, Status: domain.StatusConfirmed})
	second := store.Seed(domain.Reservation{Date: date, Block: 5, BlockType: domain.BlockTypeSecondHour, SubBlock: domain.SubBlockSecondHour, Status: domain.StatusPending})
	store.Seed(domain.Reservation{Date: date, Block: 1, BlockType: domain.BlockTypeFull, SubBlock: domain.SubBlockFirstHour, Status: domain.StatusCancelled})

	uc := NewUseCase(store, nil, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{Date: "2025-03-10"})
	require.NoError(t, err)
	require.Len(t, resp.Blocks, 5)

	assert.True(t, resp.Blocks[0].FirstHour.Available)
	assert.True(t, resp.Blocks[0].SecondHour.Available)

	assert.False(t, resp.Blocks[1].FirstHour.Available)
	assert.False(t, resp.Blocks[1].SecondHour.Available)
	assert.Equal(t, full.ID, *resp.Blocks[1].SecondHour.ReservationID)

	assert.True(t, resp.Blocks[4].FirstHour.Available)
	assert.False(t, resp.Blocks[4].SecondHour.Available)
	assert.Equal(t, second.ID, *resp.Blocks[4].SecondHour.ReservationID)
}

func TestExecute_Weekend(t *testing.T) {
	uc := NewUseCase(memstore.New(), nil, logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{Date: "2025-03-15"})
	require.NoError(t, err)

	assert.Equal(t, "Saturday", resp.Weekday)
	assert.Empty(t, resp.Blocks)
}

func TestExecute_InvalidDate(t *testing.T) {
	uc := NewUseCase(memstore.New(), nil, logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{Date: "tomorrow"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
