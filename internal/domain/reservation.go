package domain

import (
	"fmt"
	"time"
)

// ReservationStatus статус бронирования
type ReservationStatus string

const (
	StatusConfirmed ReservationStatus = "confirmed"
	StatusPending   ReservationStatus = "pending"
	StatusCancelled ReservationStatus = "cancelled"
)

// ParseStatus парсит и валидирует статус
func ParseStatus(s string) (ReservationStatus, error) {
	st := ReservationStatus(s)
	switch st {
	case StatusConfirmed, StatusPending, StatusCancelled:
		return st, nil
	}
	return "", fmt.Errorf("%w: got %q", ErrInvalidStatus, s)
}

// IsActive статус, при котором бронирование занимает свои координаты
func (s ReservationStatus) IsActive() bool {
	return s == StatusConfirmed || s == StatusPending
}

// Reservation бронирование лаборатории на блок (или полублок) учебного дня
type Reservation struct {
	ID           int64
	OwnerID      int64
	LaboratoryID int64
	Date         time.Time
	Block        int
	SubBlock     SubBlock
	BlockType    BlockType
	Course       string
	Subject      string
	Teacher      string
	Status       ReservationStatus

	// Заполняется при чтении (JOIN laboratories)
	LaboratoryName string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive занимает ли бронирование координаты
func (r *Reservation) IsActive() bool {
	return r.Status.IsActive()
}

// Weekday подпись дня недели, вычисляется из Date и нигде не хранится
func (r *Reservation) Weekday() string {
	return WeekdayLabel(r.Date)
}

// Slots координаты, которые занимает бронирование
func (r *Reservation) Slots() []Slot {
	return ExpandSlots(r.Date, r.Block, r.BlockType)
}

// Occupies занимает ли активное бронирование координату (date, block, subBlock)
func (r *Reservation) Occupies(date time.Time, block int, sb SubBlock) bool {
	if !r.IsActive() || r.Block != block || !DateOnly(r.Date).Equal(DateOnly(date)) {
		return false
	}
	return r.BlockType.Occupies(sb)
}

// ConflictsWith пересекается ли активное бронирование с новым бронированием типа bt
func (r *Reservation) ConflictsWith(date time.Time, block int, bt BlockType) bool {
	for _, sb := range bt.SubBlocks() {
		if r.Occupies(date, block, sb) {
			return true
		}
	}
	return false
}

// IsOwnedBy является ли пользователь владельцем
func (r *Reservation) IsOwnedBy(userID int64) bool {
	return r.OwnerID == userID
}

// ReservationsFilter фильтр списка бронирований
type ReservationsFilter struct {
	Date             *time.Time // Конкретная дата
	Month            *YearMonth // Месяц (игнорируется, если задана Date)
	Block            *int       // Блок (используется вместе с Date)
	OwnerID          *int64
	LaboratoryID     *int64
	IncludeCancelled bool
}

// YearMonth календарный месяц
type YearMonth struct {
	Year  int
	Month time.Month
}

// Bounds первый день месяца и первый день следующего
func (ym YearMonth) Bounds() (time.Time, time.Time) {
	start := time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// Scope область выборки, определяющая сортировку
type Scope int

const (
	ScopeAll Scope = iota
	ScopeMonth
	ScopeDate
)

// Scope возвращает область выборки фильтра
func (f ReservationsFilter) Scope() Scope {
	switch {
	case f.Date != nil:
		return ScopeDate
	case f.Month != nil:
		return ScopeMonth
	default:
		return ScopeAll
	}
}
