package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabReservationService/internal/domain"
	"github.com/m04kA/SMC-LabReservationService/pkg/logger"
)

type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) General(ctx context.Context, today time.Time) (*domain.GeneralStats, error) {
	args := m.Called(ctx, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneralStats), args.Error(1)
}

type MockTransactionManager struct {
	mock.Mock
}

func (m *MockTransactionManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx)
}

func newTxManager() *MockTransactionManager {
	tx := new(MockTransactionManager)
	tx.On("DoReadOnly", mock.Anything).Return(nil)
	return tx
}

func TestGeneral_UsesLocalDate(t *testing.T) {
	repo := new(MockStatsRepository)
	santiago := time.FixedZone("CLT", -3*3600)
	tx := newTxManager()
	svc := NewService(repo, tx, nil, santiago, logger.NewNop())
	// 01:30 UTC 11 марта = 22:30 10 марта по местному времени
	svc.now = func() time.Time { return time.Date(2025, 3, 11, 1, 30, 0, 0, time.UTC) }

	today := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	repo.On("General", mock.Anything, today).Return(&domain.GeneralStats{
		TotalReservations:  12,
		TodayReservations:  3,
		ActiveTeachers:     5,
		ActiveLaboratories: 2,
	}, nil)

	resp, err := svc.General(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2025-03-10", resp.Date)
	assert.Equal(t, 12, resp.TotalReservations)
	assert.Equal(t, 3, resp.TodayReservations)
	assert.Equal(t, 5, resp.ActiveTeachers)
	assert.Equal(t, 2, resp.ActiveLaboratories)
	repo.AssertExpectations(t)
	tx.AssertNumberOfCalls(t, "DoReadOnly", 1)
}

func TestGeneral_Error(t *testing.T) {
	repo := new(MockStatsRepository)
	repo.On("General", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	svc := NewService(repo, newTxManager(), nil, nil, logger.NewNop())

	_, err := svc.General(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
}

func TestGeneral_BeginError(t *testing.T) {
	repo := new(MockStatsRepository)
	tx := new(MockTransactionManager)
	tx.On("DoReadOnly", mock.Anything).Return(assert.AnError)

	svc := NewService(repo, tx, nil, nil, logger.NewNop())

	_, err := svc.General(context.Background())
	assert.ErrorIs(t, err, ErrInternal)
	repo.AssertNotCalled(t, "General", mock.Anything, mock.Anything)
}
