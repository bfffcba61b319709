package auth

import "errors"

var (
	// ErrInvalidCredentials неизвестный email, неверный пароль или отключённый пользователь
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidInput возвращается при пустых полях
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("auth: internal error")
)
