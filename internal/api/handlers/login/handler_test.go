package login

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-LabReservationService/internal/service/auth"
	"github.com/m04kA/SMC-LabReservationService/pkg/logger"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Login(ctx context.Context, req *auth.LoginRequest) (*auth.LoginResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.LoginResponse), args.Error(1)
}

func request(body string) *http.Request {
	return httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(body))
}

func TestHandle_SignedIn(t *testing.T) {
	svc := new(MockService)
	svc.On("Login", mock.Anything, &auth.LoginRequest{Email: "ana@school.edu", Password: "secret"}).
		Return(&auth.LoginResponse{
			Token:     "token",
			TokenType: "Bearer",
			ExpiresAt: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
			User:      auth.UserResponse{ID: 1, Email: "ana@school.edu", Role: "profesor"},
		}, nil)

	w := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(w, request(`{"email":"ana@school.edu","password":"secret"}`))

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data auth.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "token", resp.Data.Token)
	assert.Equal(t, "Bearer", resp.Data.TokenType)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		kind   string
	}{
		{"missing fields", auth.ErrInvalidInput, http.StatusBadRequest, handlers.KindValidation},
		{"wrong password", auth.ErrInvalidCredentials, http.StatusUnauthorized, handlers.KindUnauthorized},
		{"internal", auth.ErrInternal, http.StatusInternalServerError, handlers.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			svc.On("Login", mock.Anything, mock.Anything).Return(nil, tt.err)

			w := httptest.NewRecorder()
			NewHandler(svc, logger.NewNop()).Handle(w, request(`{"email":"ana@school.edu","password":"x"}`))

			var resp handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.kind, resp.Error)
		})
	}
}
