package get_day_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректной дате
	ErrInvalidInput = errors.New("get_day_availability: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_day_availability: internal error")
)
