package create_reservation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/m04kA/SMC-LabReservationService/internal/domain"
)

// validated нормализованный запрос
type validated struct {
	date      time.Time
	block     int
	blockType domain.BlockType
	subBlock  domain.SubBlock
	course    string
	subject   string
	teacher   string
}

// validateRequest валидирует входные данные и приводит их к доменным типам
func validateRequest(req *Request) (*validated, error) {
	if req.OwnerID <= 0 {
		return nil, fmt.Errorf("%w: ownerId must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.Date) == "" {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !domain.IsSchoolDay(date) {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, domain.ErrWeekendDate)
	}

	if err := domain.ValidateBlock(req.Block); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	blockType, err := domain.ParseBlockType(req.BlockType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	subBlock, err := domain.ResolveSubBlock(blockType, req.SubBlock)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	v := &validated{
		date:      date,
		block:     req.Block,
		blockType: blockType,
		subBlock:  subBlock,
		course:    strings.TrimSpace(req.Course),
		subject:   strings.TrimSpace(req.Subject),
		teacher:   strings.TrimSpace(req.Teacher),
	}

	if err := requireText("course", v.course, domain.MaxCourseLength); err != nil {
		return nil, err
	}
	if err := requireText("subject", v.subject, domain.MaxSubjectLength); err != nil {
		return nil, err
	}
	if err := requireText("teacher", v.teacher, domain.MaxTeacherLength); err != nil {
		return nil, err
	}

	if req.LaboratoryID <= 0 && strings.TrimSpace(req.Laboratory) == "" {
		return nil, fmt.Errorf("%w: laboratory is required", ErrInvalidInput)
	}

	return v, nil
}

func requireText(field, value string, max int) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	if utf8.RuneCountInString(value) > max {
		return fmt.Errorf("%w: %s must be at most %d characters", ErrInvalidInput, field, max)
	}
	return nil
}

// findConflict первое активное бронирование, пересекающееся с новым
func findConflict(existing []*domain.Reservation, v *validated) *domain.Reservation {
	for _, r := range existing {
		if r.ConflictsWith(v.date, v.block, v.blockType) {
			return r
		}
	}
	return nil
}
