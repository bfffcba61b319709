package auth

import (
	"context"
	"time"

	"github.com/m04kA/SMC-LabReservationService/internal/domain"
)

// UserRepository интерфейс репозитория пользователей
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// TokenIssuer выпуск токенов доступа
type TokenIssuer interface {
	GenerateToken(userID int64, role string) (string, time.Time, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
