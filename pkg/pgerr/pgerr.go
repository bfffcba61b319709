package pgerr

import (
	"database/sql/driver"
	"errors"
	"net"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL, которые сервис различает
const (
	CodeUniqueViolation      = pq.ErrorCode("23505")
	CodeSerializationFailure = pq.ErrorCode("40001")
	CodeDeadlockDetected     = pq.ErrorCode("40P01")
	CodeAdminShutdown        = pq.ErrorCode("57P01")
	CodeTooManyConnections   = pq.ErrorCode("53300")

	classConnectionException = pq.ErrorClass("08")
)

// IsUniqueViolation нарушение уникального ключа
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == CodeUniqueViolation
	}
	return false
}

// ConstraintName имя нарушенного ограничения ("" если это не ошибка PostgreSQL)
func ConstraintName(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}

// IsTransient ошибка, после которой повтор запроса на чтение имеет смысл
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, driver.ErrBadConn) {
		return true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case CodeSerializationFailure, CodeDeadlockDetected, CodeAdminShutdown, CodeTooManyConnections:
			return true
		}
		return pqErr.Code.Class() == classConnectionException
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
