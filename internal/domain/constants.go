package domain

import "errors"

// Учебные блоки
const (
	MinBlock = 1
	MaxBlock = 5
)

// Ограничения на описательные поля
const (
	MaxCourseLength  = 120
	MaxSubjectLength = 120
	MaxTeacherLength = 120
)

// Форматы
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

var (
	ErrInvalidStatus = errors.New("status must be one of confirmed, pending, cancelled")
	ErrInvalidRole   = errors.New("role must be one of admin, profesor")
)

// ActiveStatuses статусы, занимающие координаты
var ActiveStatuses = []ReservationStatus{
	StatusConfirmed,
	StatusPending,
}
