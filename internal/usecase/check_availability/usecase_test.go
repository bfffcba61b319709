package check_availability

import (
	"context"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabReservationService/internal/domain"
	"github.com/m04kA/SMC-LabReservationService/internal/testutil/memstore"
	"github.com/m04kA/SMC-LabReservationService/pkg/dbretry"
	"github.com/m04kA/SMC-LabReservationService/pkg/logger"
)

var monday = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func seed(store *memstore.Store, block int, bt domain.BlockType, status domain.ReservationStatus) *domain.Reservation {
	return store.Seed(domain.Reservation{
		OwnerID:   1,
		Date:      monday,
		Block:     block,
		SubBlock:  bt.CanonicalSubBlock(),
		BlockType: bt,
		Status:    status,
	})
}

func TestExecute_SubBlockQueries(t *testing.T) {
	store := memstore.New()
	first := seed(store, 1, domain.BlockTypeFirstHour, domain.StatusConfirmed)
	full := seed(store, 2, domain.BlockTypeFull, domain.StatusPending)
	seed(store, 3, domain.BlockTypeFull, domain.StatusCancelled)

	uc := NewUseCase(store, nil, logger.NewNop())

	tests := []struct {
		name     string
		req      Request
		want     bool
		holderID int64
	}{
		{"занят первый час", Request{Date: "2025-03-10", Block: 1, SubBlock: "1st-hour"}, false, first.ID},
		{"свободен второй час", Request{Date: "2025-03-10", Block: 1, SubBlock: "2nd-hour"}, true, 0},
		{"full занимает второй час", Request{Date: "2025-03-10", Block: 2, SubBlock: "2nd-hour"}, false, full.ID},
		{"отменённое не занимает", Request{Date: "2025-03-10", Block: 3, SubBlock: "1st-hour"}, true, 0},
		{"full на блок с firstHour", Request{Date: "2025-03-10", Block: 1, BlockType: "full"}, false, first.ID},
		{"secondHour рядом с firstHour", Request{Date: "2025-03-10", Block: 1, BlockType: "secondHour"}, true, 0},
		{"weekday от клиента игнорируется", Request{Date: "2025-03-10", Block: 1, SubBlock: "2nd-hour", Weekday: "Viernes"}, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			resp, err := uc.Execute(context.Background(), &req)
			require.NoError(t, err)

			assert.Equal(t, tt.want, resp.Available)
			assert.Equal(t, "Monday", resp.Weekday)
			if tt.want {
				assert.Nil(t, resp.ConflictingReservationID)
			} else {
				require.NotNil(t, resp.ConflictingReservationID)
				assert.Equal(t, tt.holderID, *resp.ConflictingReservationID)
			}
		})
	}
}

func TestExecute_AgreesWithList(t *testing.T) {
	store := memstore.New()
	seed(store, 1, domain.BlockTypeFirstHour, domain.StatusConfirmed)
	seed(store, 1, domain.BlockTypeSecondHour, domain.StatusCancelled)
	seed(store, 2, domain.BlockTypeSecondHour, domain.StatusPending)
	seed(store, 4, domain.BlockTypeFull, domain.StatusConfirmed)

	uc := NewUseCase(store, nil, logger.NewNop())
	date := monday

	list, err := store.List(context.Background(), domain.ReservationsFilter{Date: &date})
	require.NoError(t, err)

	for block := domain.MinBlock; block <= domain.MaxBlock; block++ {
		for _, sb := range []domain.SubBlock{domain.SubBlockFirstHour, domain.SubBlockSecondHour} {
			listed := false
			for _, r := range list {
				if r.Block == block && r.IsActive() && r.BlockType.Occupies(sb) {
					listed = true
				}
			}

			resp, err := uc.Execute(context.Background(), &Request{Date: "2025-03-10", Block: block, SubBlock: string(sb)})
			require.NoError(t, err)
			assert.Equal(t, !listed, resp.Available, "block=%d subBlock=%s", block, sb)
		}
	}
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(memstore.New(), nil, logger.NewNop())

	bad := []Request{
		{Block: 1, SubBlock: "1st-hour"},
		{Date: "2025-13-01", Block: 1, SubBlock: "1st-hour"},
		{Date: "2025-03-09", Block: 1, SubBlock: "1st-hour"},
		{Date: "2025-03-10", Block: 9, SubBlock: "1st-hour"},
		{Date: "2025-03-10", Block: 1},
		{Date: "2025-03-10", Block: 1, SubBlock: "middle"},
		{Date: "2025-03-10", Block: 1, BlockType: "double"},
		{Date: "2025-03-10", Block: 1, BlockType: "secondHour", SubBlock: "1st-hour"},
		{Date: "2025-03-10", Block: 1, BlockType: "full", SubBlock: "3rd-hour"},
	}

	for _, req := range bad {
		req := req
		_, err := uc.Execute(context.Background(), &req)
		assert.ErrorIs(t, err, ErrInvalidInput, "%+v", req)
	}
}

type flakyRepo struct {
	failures int
	calls    int
	inner    ReservationRepository
}

func (r *flakyRepo) ListActiveInBlock(ctx context.Context, date time.Time, block int) ([]*domain.Reservation, error) {
	r.calls++
	if r.calls <= r.failures {
		return nil, driver.ErrBadConn
	}
	return r.inner.ListActiveInBlock(ctx, date, block)
}

func TestExecute_RetriesTransientErrors(t *testing.T) {
	repo := &flakyRepo{failures: 2, inner: memstore.New()}
	uc := NewUseCase(repo, dbretry.New(3, time.Millisecond), logger.NewNop())

	resp, err := uc.Execute(context.Background(), &Request{Date: "2025-03-10", Block: 1, SubBlock: "1st-hour"})

	require.NoError(t, err)
	assert.True(t, resp.Available)
	assert.Equal(t, 3, repo.calls)
}

func TestExecute_GivesUpAfterRetries(t *testing.T) {
	repo := &flakyRepo{failures: 10, inner: memstore.New()}
	uc := NewUseCase(repo, dbretry.New(1, time.Millisecond), logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{Date: "2025-03-10", Block: 1, SubBlock: "1st-hour"})

	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 2, repo.calls)
	assert.False(t, errors.Is(err, ErrInvalidInput))
}
