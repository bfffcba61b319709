package middleware

import (
	"context"

	"github.com/m04kA/SMC-LabReservationService/internal/domain"
)

type contextKey int

const (
	callerKey contextKey = iota
	requestIDKey
)

// GetCaller возвращает аутентифицированного пользователя (после Auth)
func GetCaller(ctx context.Context) (domain.Caller, bool) {
	caller, ok := ctx.Value(callerKey).(domain.Caller)
	return caller, ok
}

// WithCaller кладёт пользователя в контекст
func WithCaller(ctx context.Context, caller domain.Caller) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

// GetRequestID возвращает ID запроса (после RequestID)
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
