package domain

import (
	"fmt"
	"time"
)

// Role роль пользователя
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleProfesor Role = "profesor"
)

// ParseRole парсит и валидирует роль
func ParseRole(s string) (Role, error) {
	r := Role(s)
	switch r {
	case RoleAdmin, RoleProfesor:
		return r, nil
	}
	return "", fmt.Errorf("%w: got %q", ErrInvalidRole, s)
}

// User пользователь системы
type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	Active       bool
	CreatedAt    time.Time
}

// Caller аутентифицированный инициатор запроса
type Caller struct {
	UserID int64
	Role   Role
}

// IsAdmin администратор
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// CanManage может ли пользователь отменять и менять статус бронирования
func (c Caller) CanManage(r *Reservation) bool {
	return c.IsAdmin() || r.IsOwnedBy(c.UserID)
}
