package update_reservation_status

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-LabReservationService/internal/api/middleware"
	"github.com/m04kA/SMC-LabReservationService/internal/domain"
	"github.com/m04kA/SMC-LabReservationService/internal/service/reservations"
	"github.com/m04kA/SMC-LabReservationService/internal/service/reservations/models"
	"github.com/m04kA/SMC-LabReservationService/pkg/logger"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ReservationResponse), args.Error(1)
}

var caller = domain.Caller{UserID: 1, Role: domain.RoleAdmin}

func request(id, body string) *http.Request {
	r := httptest.NewRequest(http.MethodPut, "/api/v1/reservations/"+id, strings.NewReader(body))
	r = mux.SetURLVars(r, map[string]string{"id": id})
	return r.WithContext(middleware.WithCaller(r.Context(), caller))
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		result *models.ReservationResponse
		err    error
		status int
	}{
		{"updated", &models.ReservationResponse{ID: 4, Status: "pending"}, nil, http.StatusOK},
		{"invalid status", nil, fmt.Errorf("%w: unknown status", reservations.ErrInvalidInput), http.StatusBadRequest},
		{"not found", nil, reservations.ErrReservationNotFound, http.StatusNotFound},
		{"forbidden", nil, reservations.ErrAccessDenied, http.StatusForbidden},
		{"slot retaken", nil, reservations.ErrSlotNotAvailable, http.StatusConflict},
		{"internal", nil, reservations.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("UpdateStatus", mock.Anything, int64(4), &models.UpdateStatusRequest{Caller: caller, Status: "pending"}).
				Return(tt.result, tt.err)

			w := httptest.NewRecorder()
			NewHandler(svc, logger.NewNop()).Handle(w, request("4", `{"status":"pending"}`))

			assert.Equal(t, tt.status, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandle_BadBody(t *testing.T) {
	svc := new(MockService)

	w := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(w, request("4", `status=pending`))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
