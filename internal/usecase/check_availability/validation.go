package check_availability

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-LabReservationService/internal/domain"
)

// validateRequest возвращает дату и набор полублоков для проверки
func validateRequest(req *Request) (time.Time, []domain.SubBlock, error) {
	if strings.TrimSpace(req.Date) == "" {
		return time.Time{}, nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !domain.IsSchoolDay(date) {
		return time.Time{}, nil, fmt.Errorf("%w: %v", ErrInvalidInput, domain.ErrWeekendDate)
	}

	if err := domain.ValidateBlock(req.Block); err != nil {
		return time.Time{}, nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Только полублок
	if req.BlockType == "" {
		if req.SubBlock == "" {
			return time.Time{}, nil, fmt.Errorf("%w: subBlock or blockType is required", ErrInvalidInput)
		}
		sb, err := domain.ParseSubBlock(req.SubBlock)
		if err != nil {
			return time.Time{}, nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return date, []domain.SubBlock{sb}, nil
	}

	// Тип блока: проверяется весь его набор полублоков
	bt, err := domain.ParseBlockType(req.BlockType)
	if err != nil {
		return time.Time{}, nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if _, err := domain.ResolveSubBlock(bt, req.SubBlock); err != nil {
		return time.Time{}, nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return date, bt.SubBlocks(), nil
}
