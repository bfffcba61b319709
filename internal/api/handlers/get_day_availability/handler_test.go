package get_day_availability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	getDayAvailabilityUC "github.com/m04kA/SMC-LabReservationService/internal/usecase/get_day_availability"
	"github.com/m04kA/SMC-LabReservationService/pkg/logger"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *getDayAvailabilityUC.Request) (*getDayAvailabilityUC.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*getDayAvailabilityUC.Response), args.Error(1)
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		result *getDayAvailabilityUC.Response
		err    error
		status int
	}{
		{"grid", &getDayAvailabilityUC.Response{Date: "2025-03-10", Weekday: "Monday"}, nil, http.StatusOK},
		{"invalid date", nil, getDayAvailabilityUC.ErrInvalidInput, http.StatusBadRequest},
		{"internal", nil, getDayAvailabilityUC.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockUseCase)
			uc.On("Execute", mock.Anything, &getDayAvailabilityUC.Request{Date: "2025-03-10"}).Return(tt.result, tt.err)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/v1/reservations/availability/day?date=2025-03-10", nil)
			NewHandler(uc, logger.NewNop()).Handle(w, r)

			assert.Equal(t, tt.status, w.Code)
			uc.AssertExpectations(t)
		})
	}
}
