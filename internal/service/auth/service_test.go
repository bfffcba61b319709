package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-LabReservationService/internal/domain"
	userRepo "github.com/m04kA/SMC-LabReservationService/internal/infra/storage/user"
	"github.com/m04kA/SMC-LabReservationService/pkg/jwt"
	"github.com/m04kA/SMC-LabReservationService/pkg/logger"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func newUser(t *testing.T, active bool) *domain.User {
	t.Helper()
	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		ID:           7,
		Email:        "rojas@colegio.cl",
		Name:         "Prof. Rojas",
		PasswordHash: hash,
		Role:         domain.RoleProfesor,
		Active:       active,
	}
}

func TestLogin_Success(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, "rojas@colegio.cl").Return(newUser(t, true), nil)

	tokens := jwt.New("test-secret", time.Hour, "lab-reservations")
	svc := NewService(repo, tokens, logger.NewNop())

	resp, err := svc.Login(context.Background(), &LoginRequest{Email: " rojas@colegio.cl ", Password: "s3cret"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(7), resp.User.ID)
	assert.Equal(t, "profesor", resp.User.Role)

	claims, err := tokens.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, "profesor", claims.Role)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	tokens := jwt.New("test-secret", time.Hour, "lab-reservations")

	t.Run("неверный пароль", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByEmail", mock.Anything, mock.Anything).Return(newUser(t, true), nil)

		_, err := NewService(repo, tokens, logger.NewNop()).
			Login(context.Background(), &LoginRequest{Email: "rojas@colegio.cl", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("неизвестный email", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, userRepo.ErrUserNotFound)

		_, err := NewService(repo, tokens, logger.NewNop()).
			Login(context.Background(), &LoginRequest{Email: "nobody@colegio.cl", Password: "s3cret"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("отключённый пользователь", func(t *testing.T) {
		repo := new(MockUserRepository)
		repo.On("GetByEmail", mock.Anything, mock.Anything).Return(newUser(t, false), nil)

		_, err := NewService(repo, tokens, logger.NewNop()).
			Login(context.Background(), &LoginRequest{Email: "rojas@colegio.cl", Password: "s3cret"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestLogin_EmptyFields(t *testing.T) {
	svc := NewService(new(MockUserRepository), jwt.New("x", time.Hour, "x"), logger.NewNop())

	_, err := svc.Login(context.Background(), &LoginRequest{Email: "", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestLogin_RepositoryError(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByEmail", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	svc := NewService(repo, jwt.New("x", time.Hour, "x"), logger.NewNop())

	_, err := svc.Login(context.Background(), &LoginRequest{Email: "a@b.c", Password: "x"})
	assert.ErrorIs(t, err, ErrInternal)
}
