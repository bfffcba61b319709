package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrLaboratoryNotFound возвращается, когда лаборатория не найдена или неактивна
	ErrLaboratoryNotFound = errors.New("create_reservation: laboratory not found")

	// ErrSlotNotAvailable возвращается, когда хотя бы одна координата уже занята
	ErrSlotNotAvailable = errors.New("create_reservation: slot is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
