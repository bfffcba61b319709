package reservation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-LabReservationService/internal/domain"
)

func TestBuildListQuery_Ordering(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		filter    domain.ReservationsFilter
		wantOrder string
	}{
		{
			name:      "без фильтра",
			filter:    domain.ReservationsFilter{},
			wantOrder: "ORDER BY r.reservation_date DESC, r.block ASC, r.sub_block ASC",
		},
		{
			name:      "месяц",
			filter:    domain.ReservationsFilter{Month: &domain.YearMonth{Year: 2025, Month: time.March}},
			wantOrder: "ORDER BY r.reservation_date ASC, r.block ASC, r.sub_block ASC",
		},
		{
			name:      "дата",
			filter:    domain.ReservationsFilter{Date: &date},
			wantOrder: "ORDER BY r.block ASC, r.sub_block ASC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, _, err := buildListQuery(tt.filter, false)
			require.NoError(t, err)
			assert.Contains(t, query, tt.wantOrder)
			assert.NotContains(t, query, "FOR UPDATE")
		})
	}
}

func TestBuildListQuery_ExcludesCancelledByDefault(t *testing.T) {
	query, args, err := buildListQuery(domain.ReservationsFilter{}, false)
	require.NoError(t, err)

	assert.Contains(t, query, "r.status IN ($1,$2)")
	assert.Equal(t, []interface{}{domain.StatusConfirmed, domain.StatusPending}, args)

	query, args, err = buildListQuery(domain.ReservationsFilter{IncludeCancelled: true}, false)
	require.NoError(t, err)

	assert.NotContains(t, query, "r.status IN")
	assert.NotContains(t, query, "WHERE")
	assert.Empty(t, args)
}

func TestBuildListQuery_MonthBounds(t *testing.T) {
	_, args, err := buildListQuery(domain.ReservationsFilter{
		Month:            &domain.YearMonth{Year: 2025, Month: time.December},
		IncludeCancelled: true,
	}, false)
	require.NoError(t, err)

	require.Len(t, args, 2)
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), args[0])
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), args[1])
}

func TestBuildListQuery_DateBlockLocked(t *testing.T) {
	date := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	block := 3
	lab := int64(4)

	query, args, err := buildListQuery(domain.ReservationsFilter{
		Date:         &date,
		Block:        &block,
		LaboratoryID: &lab,
	}, true)
	require.NoError(t, err)

	assert.Contains(t, query, "r.laboratory_id = $3")
	assert.Contains(t, query, "r.reservation_date = $4")
	assert.Contains(t, query, "r.block = $5")
	assert.True(t, strings.HasSuffix(query, "FOR UPDATE OF r"))
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), args[3])
	assert.Equal(t, 3, args[4])
}
