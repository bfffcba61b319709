package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReservation_Occupies(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	full := &Reservation{Date: date, Block: 2, BlockType: BlockTypeFull, SubBlock: SubBlockFirstHour, Status: StatusConfirmed}

	assert.True(t, full.Occupies(date, 2, SubBlockFirstHour))
	assert.True(t, full.Occupies(date, 2, SubBlockSecondHour), "stored subBlock must not limit a full reservation")
	assert.False(t, full.Occupies(date, 3, SubBlockFirstHour))
	assert.False(t, full.Occupies(date.AddDate(0, 0, 1), 2, SubBlockFirstHour))

	full.Status = StatusCancelled
	assert.False(t, full.Occupies(date, 2, SubBlockFirstHour), "cancelled reservations free their slots")
}

func TestReservation_ConflictsWith(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	first := &Reservation{Date: date, Block: 1, BlockType: BlockTypeFirstHour, Status: StatusPending}

	assert.True(t, first.ConflictsWith(date, 1, BlockTypeFull))
	assert.True(t, first.ConflictsWith(date, 1, BlockTypeFirstHour))
	assert.False(t, first.ConflictsWith(date, 1, BlockTypeSecondHour))
}

func TestReservation_Weekday(t *testing.T) {
	r := &Reservation{Date: time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "Friday", r.Weekday())
}

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"confirmed", "pending", "cancelled"} {
		st, err := ParseStatus(s)
		assert.NoError(t, err)
		assert.Equal(t, ReservationStatus(s), st)
	}

	_, err := ParseStatus("deleted")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestFilterScope(t *testing.T) {
	date := time.Now()
	assert.Equal(t, ScopeAll, ReservationsFilter{}.Scope())
	assert.Equal(t, ScopeMonth, ReservationsFilter{Month: &YearMonth{Year: 2025, Month: time.March}}.Scope())
	assert.Equal(t, ScopeDate, ReservationsFilter{Date: &date, Month: &YearMonth{Year: 2025, Month: time.March}}.Scope())
}

func TestYearMonth_Bounds(t *testing.T) {
	start, end := YearMonth{Year: 2024, Month: time.December}.Bounds()
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestCaller_CanManage(t *testing.T) {
	r := &Reservation{OwnerID: 7}

	assert.True(t, Caller{UserID: 7, Role: RoleProfesor}.CanManage(r))
	assert.False(t, Caller{UserID: 8, Role: RoleProfesor}.CanManage(r))
	assert.True(t, Caller{UserID: 1, Role: RoleAdmin}.CanManage(r))
}
