package get_day_availability

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-LabReservationService/internal/domain"
	"github.com/m04kA/SMC-LabReservationService/pkg/dbretry"
)

// UseCase use case получения сетки занятости на день
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

// Execute возвращает занятость всех полублоков дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDayAvailability: date=%s", req.Date)

	if strings.TrimSpace(req.Date) == "" {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		uc.logger.Warn("GetDayAvailability: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	resp := &Response{
		Date:    date.Format(domain.DateFormat),
		Weekday: domain.WeekdayLabel(date),
		Blocks:  []Block{},
	}

	// В выходные бронирований нет
	if !domain.IsSchoolDay(date) {
		return resp, nil
	}

	var reservations []*domain.Reservation
	err = uc.retrier.Read(ctx, func(ctx context.Context) error {
		var err error
		reservations, err = uc.reservationRepo.List(ctx, domain.ReservationsFilter{Date: &date})
		return err
	})
	if err != nil {
		uc.logger.Error("GetDayAvailability: failed to list reservations: %v", err)
		return nil, fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
	}

	resp.Blocks = buildGrid(date, reservations)
	return resp, nil
}
