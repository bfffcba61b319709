package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	userRepo "github.com/m04kA/SMC-LabReservationService/internal/infra/storage/user"
)

// LoginRequest запрос входа
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserResponse данные пользователя без хеша пароля
type UserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// LoginResponse токен доступа
type LoginResponse struct {
	Token     string       `json:"token"`
	TokenType string       `json:"tokenType"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// Service аутентификация по паролю из таблицы users
// Единственный способ входа: bcrypt-хеш в БД и JWT на выходе
type Service struct {
	users  UserRepository
	tokens TokenIssuer
	logger Logger
}

func NewService(users UserRepository, tokens TokenIssuer, logger Logger) *Service {
	return &Service{users: users, tokens: tokens, logger: logger}
}

// Login проверяет пароль и выпускает токен
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	s.logger.Info("Login: attempt for email=%s", email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: unknown email=%s", email)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: Login - repository error: %v", ErrInternal, err)
	}

	if !user.Active {
		s.logger.Warn("Login: user id=%d is inactive", user.ID)
		return nil, ErrInvalidCredentials
	}

	if !VerifyPassword(user.PasswordHash, req.Password) {
		s.logger.Warn("Login: wrong password for user id=%d", user.ID)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		s.logger.Error("Login: failed to issue token for user id=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: Login - issue token: %v", ErrInternal, err)
	}

	s.logger.Info("Login: user id=%d role=%s signed in", user.ID, user.Role)

	return &LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
		User: UserResponse{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  string(user.Role),
		},
	}, nil
}
