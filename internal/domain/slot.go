package domain

import (
	"errors"
	"fmt"
	"time"
)

// BlockType какую часть блока занимает бронирование
type BlockType string

const (
	BlockTypeFull       BlockType = "full"
	BlockTypeFirstHour  BlockType = "firstHour"
	BlockTypeSecondHour BlockType = "secondHour"
)

// SubBlock половина блока
type SubBlock string

const (
	SubBlockFirstHour  SubBlock = "1st-hour"
	SubBlockSecondHour SubBlock = "2nd-hour"
)

var (
	ErrInvalidBlock     = errors.New("block must be between 1 and 5")
	ErrInvalidBlockType = errors.New("blockType must be one of full, firstHour, secondHour")
	ErrInvalidSubBlock  = errors.New("subBlock must be one of 1st-hour, 2nd-hour")
	ErrSubBlockMismatch = errors.New("subBlock does not match blockType")
	ErrInvalidDate      = errors.New("date must be a valid YYYY-MM-DD calendar date")
	ErrWeekendDate      = errors.New("reservations are only possible Monday to Friday")
)

// ParseBlockType парсит и валидирует тип блока
func ParseBlockType(s string) (BlockType, error) {
	bt := BlockType(s)
	switch bt {
	case BlockTypeFull, BlockTypeFirstHour, BlockTypeSecondHour:
		return bt, nil
	}
	return "", fmt.Errorf("%w: got %q", ErrInvalidBlockType, s)
}

// ParseSubBlock парсит и валидирует полублок
func ParseSubBlock(s string) (SubBlock, error) {
	sb := SubBlock(s)
	switch sb {
	case SubBlockFirstHour, SubBlockSecondHour:
		return sb, nil
	}
	return "", fmt.Errorf("%w: got %q", ErrInvalidSubBlock, s)
}

// ValidateBlock проверяет номер блока
func ValidateBlock(block int) error {
	if block < MinBlock || block > MaxBlock {
		return fmt.Errorf("%w: got %d", ErrInvalidBlock, block)
	}
	return nil
}

// SubBlocks раскрывает тип блока в множество занимаемых полублоков:
// full -> {1st, 2nd}, firstHour -> {1st}, secondHour -> {2nd}.
// Проверки доступности и конфликтов работают только с этим множеством,
// а не с сохранённым полем subBlock.
func (bt BlockType) SubBlocks() []SubBlock {
	switch bt {
	case BlockTypeFull:
		return []SubBlock{SubBlockFirstHour, SubBlockSecondHour}
	case BlockTypeFirstHour:
		return []SubBlock{SubBlockFirstHour}
	case BlockTypeSecondHour:
		return []SubBlock{SubBlockSecondHour}
	}
	return nil
}

// Occupies занимает ли тип блока данный полублок
func (bt BlockType) Occupies(sb SubBlock) bool {
	for _, s := range bt.SubBlocks() {
		if s == sb {
			return true
		}
	}
	return false
}

// Overlaps пересекаются ли множества полублоков двух типов
func (bt BlockType) Overlaps(other BlockType) bool {
	for _, s := range other.SubBlocks() {
		if bt.Occupies(s) {
			return true
		}
	}
	return false
}

// CanonicalSubBlock значение subBlock, которое хранится для типа блока
// Для full поле не несёт смысла и хранится как 1st-hour
func (bt BlockType) CanonicalSubBlock() SubBlock {
	if bt == BlockTypeSecondHour {
		return SubBlockSecondHour
	}
	return SubBlockFirstHour
}

// ResolveSubBlock сверяет переданный клиентом subBlock с типом блока
// Пустой subBlock выводится из типа; для full переданное значение проверяется и игнорируется
func ResolveSubBlock(bt BlockType, raw string) (SubBlock, error) {
	if raw == "" {
		return bt.CanonicalSubBlock(), nil
	}

	sb, err := ParseSubBlock(raw)
	if err != nil {
		return "", err
	}

	if bt == BlockTypeFull {
		return bt.CanonicalSubBlock(), nil
	}

	if !bt.Occupies(sb) {
		return "", fmt.Errorf("%w: %s does not occupy %s", ErrSubBlockMismatch, bt, sb)
	}

	return sb, nil
}

// Slot бронируемая координата (date, block, subBlock)
type Slot struct {
	Date     time.Time
	Block    int
	SubBlock SubBlock
}

// ExpandSlots все координаты, которые занимает бронирование типа bt
func ExpandSlots(date time.Time, block int, bt BlockType) []Slot {
	subBlocks := bt.SubBlocks()
	slots := make([]Slot, 0, len(subBlocks))
	for _, sb := range subBlocks {
		slots = append(slots, Slot{Date: DateOnly(date), Block: block, SubBlock: sb})
	}
	return slots
}

// ParseDate парсит ISO дату без времени (в UTC)
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: got %q", ErrInvalidDate, s)
	}
	return d, nil
}

// DateOnly отбрасывает время, сохраняя календарную дату
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekdayLabel подпись дня недели, вычисляемая из даты
func WeekdayLabel(date time.Time) string {
	return date.Weekday().String()
}

// IsSchoolDay понедельник - пятница
func IsSchoolDay(date time.Time) bool {
	wd := date.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
