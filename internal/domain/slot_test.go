package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockType_SubBlocks(t *testing.T) {
	assert.Equal(t, []SubBlock{SubBlockFirstHour, SubBlockSecondHour}, BlockTypeFull.SubBlocks())
	assert.Equal(t, []SubBlock{SubBlockFirstHour}, BlockTypeFirstHour.SubBlocks())
	assert.Equal(t, []SubBlock{SubBlockSecondHour}, BlockTypeSecondHour.SubBlocks())
	assert.Empty(t, BlockType("half").SubBlocks())
}

func TestBlockType_Overlaps(t *testing.T) {
	cases := []struct {
		a, b BlockType
		want bool
	}{
		{BlockTypeFull, BlockTypeFull, true},
		{BlockTypeFull, BlockTypeFirstHour, true},
		{BlockTypeFull, BlockTypeSecondHour, true},
		{BlockTypeFirstHour, BlockTypeFull, true},
		{BlockTypeSecondHour, BlockTypeFull, true},
		{BlockTypeFirstHour, BlockTypeFirstHour, true},
		{BlockTypeSecondHour, BlockTypeSecondHour, true},
		{BlockTypeFirstHour, BlockTypeSecondHour, false},
		{BlockTypeSecondHour, BlockTypeFirstHour, false},
	}

	for _, tc := range cases {
		t.Run(string(tc.a)+"_"+string(tc.b), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
		})
	}
}

func TestResolveSubBlock(t *testing.T) {
	sb, err := ResolveSubBlock(BlockTypeFull, "2nd-hour")
	require.NoError(t, err)
	assert.Equal(t, SubBlockFirstHour, sb, "full ignores the supplied subBlock")

	sb, err = ResolveSubBlock(BlockTypeSecondHour, "")
	require.NoError(t, err)
	assert.Equal(t, SubBlockSecondHour, sb)

	sb, err = ResolveSubBlock(BlockTypeFirstHour, "1st-hour")
	require.NoError(t, err)
	assert.Equal(t, SubBlockFirstHour, sb)

	_, err = ResolveSubBlock(BlockTypeFirstHour, "2nd-hour")
	assert.ErrorIs(t, err, ErrSubBlockMismatch)

	_, err = ResolveSubBlock(BlockTypeSecondHour, "third")
	assert.ErrorIs(t, err, ErrInvalidSubBlock)

	_, err = ResolveSubBlock(BlockTypeFull, "3rd-hour")
	assert.ErrorIs(t, err, ErrInvalidSubBlock, "full still rejects an unknown subBlock")
}

func TestParsers(t *testing.T) {
	_, err := ParseBlockType("half")
	assert.ErrorIs(t, err, ErrInvalidBlockType)

	bt, err := ParseBlockType("secondHour")
	require.NoError(t, err)
	assert.Equal(t, BlockTypeSecondHour, bt)

	assert.NoError(t, ValidateBlock(1))
	assert.NoError(t, ValidateBlock(5))
	assert.ErrorIs(t, ValidateBlock(0), ErrInvalidBlock)
	assert.ErrorIs(t, ValidateBlock(6), ErrInvalidBlock)

	_, err = ParseDate("2025-02-30")
	assert.ErrorIs(t, err, ErrInvalidDate)

	d, err := ParseDate("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "Monday", WeekdayLabel(d))
	assert.True(t, IsSchoolDay(d))
	assert.False(t, IsSchoolDay(d.AddDate(0, 0, 5)))
}

func TestExpandSlots(t *testing.T) {
	date := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)

	slots := ExpandSlots(date, 2, BlockTypeFull)

	require.Len(t, slots, 2)
	assert.Equal(t, Slot{Date: DateOnly(date), Block: 2, SubBlock: SubBlockFirstHour}, slots[0])
	assert.Equal(t, Slot{Date: DateOnly(date), Block: 2, SubBlock: SubBlockSecondHour}, slots[1])
}
