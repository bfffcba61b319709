package check_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-LabReservationService/internal/domain"
	"github.com/m04kA/SMC-LabReservationService/pkg/dbretry"
)

// UseCase use case проверки доступности координаты
type UseCase struct {
	reservationRepo ReservationRepository
	retrier         ReadRetrier
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservationRepo ReservationRepository, retrier ReadRetrier, logger Logger) *UseCase {
	if retrier == nil {
		retrier = dbretry.NoRetry()
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		retrier:         retrier,
		logger:          logger,
	}
}

// Execute отвечает, свободны ли запрошенные полублоки (date, block)
//
// Читает те же данные, что и список бронирований на дату: активные бронирования
// блока разворачиваются по типу в наборы полублоков. Чтение повторяется при
// временных ошибках БД.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: date=%s, block=%d, subBlock=%s, blockType=%s",
		req.Date, req.Block, req.SubBlock, req.BlockType)

	// 1. Валидация
	date, subBlocks, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Активные бронирования блока
	var existing []*domain.Reservation
	err = uc.retrier.Read(ctx, func(ctx context.Context) error {
		var err error
		existing, err = uc.reservationRepo.ListActiveInBlock(ctx, date, req.Block)
		return err
	})
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	// 3. Ищем бронирование, занимающее любой из полублоков
	resp := &Response{
		Date:      date.Format(domain.DateFormat),
		Weekday:   domain.WeekdayLabel(date),
		Block:     req.Block,
		SubBlocks: make([]string, 0, len(subBlocks)),
		Available: true,
	}
	for _, sb := range subBlocks {
		resp.SubBlocks = append(resp.SubBlocks, string(sb))
	}

	for _, r := range existing {
		for _, sb := range subBlocks {
			if r.Occupies(date, req.Block, sb) {
				id := r.ID
				resp.Available = false
				resp.ConflictingReservationID = &id
				uc.logger.Info("CheckAvailability: %s block=%d %s held by reservation id=%d",
					resp.Date, req.Block, sb, r.ID)
				return resp, nil
			}
		}
	}

	return resp, nil
}
