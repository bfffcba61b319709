package get_general_stats

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabReservationService/internal/service/stats"
	"github.com/m04kA/SMC-LabReservationService/pkg/logger"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) General(ctx context.Context) (*stats.GeneralStatsResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stats.GeneralStatsResponse), args.Error(1)
}

func TestHandle(t *testing.T) {
	svc := new(MockService)
	svc.On("General", mock.Anything).Return(&stats.GeneralStatsResponse{
		TotalReservations:  12,
		TodayReservations:  3,
		ActiveTeachers:     4,
		ActiveLaboratories: 2,
		Date:               "2025-03-10",
	}, nil)

	w := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/stats/general", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool                       `json:"success"`
		Data    stats.GeneralStatsResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 12, resp.Data.TotalReservations)
	assert.Equal(t, 4, resp.Data.ActiveTeachers)
}

func TestHandle_Internal(t *testing.T) {
	svc := new(MockService)
	svc.On("General", mock.Anything).Return(nil, stats.ErrInternal)

	w := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/stats/general", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
