package middleware

import "github.com/m04kA/SMC-LabReservationService/pkg/jwt"

type TokenValidator interface {
	ValidateToken(tokenStr string) (*jwt.Claims, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
