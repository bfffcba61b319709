package reservations

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-LabReservationService/internal/domain"
	"github.com/m04kA/SMC-LabReservationService/internal/infra/events"
	reservationRepo "github.com/m04kA/SMC-LabReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-LabReservationService/internal/service/reservations/models"
	"github.com/m04kA/SMC-LabReservationService/pkg/dbretry"
)

// Операции для метрик
const (
	opCancel       = "cancel"
	opUpdateStatus = "update_status"
)

// Service сервис для работы с бронированиями
type Service struct {
	reservationRepo ReservationRepository
	txManager       TransactionManager
	retrier         ReadRetrier
	publisher       EventPublisher
	metrics         Metrics
	now             func() time.Time
	logger          Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	reservationRepo ReservationRepository,
	txManager TransactionManager,
	retrier ReadRetrier,
	publisher EventPublisher,
	metrics Metrics,
	logger Logger,
) *Service {
	if retrier == nil {
		retrier = dbretry.NoRetry()
	}
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &Service{
		reservationRepo: reservationRepo,
		txManager:       txManager,
		retrier:         retrier,
		publisher:       publisher,
		metrics:         metrics,
		now:             time.Now,
		logger:          logger,
	}
}

// List получает бронирования по дате, месяцу или все
// Отменённые исключаются, если не запрошены явно
func (s *Service) List(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error) {
	s.logger.Info("List: date=%q, year=%d, month=%d, includeCancelled=%t", req.Date, req.Year, req.Month, req.IncludeCancelled)

	filter, err := toDomainFilter(req)
	if err != nil {
		s.logger.Warn("List: invalid filter: %v", err)
		return nil, err
	}

	reservations, err := s.list(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: successfully fetched %d reservations", len(reservations))
	return models.FromDomainReservationList(reservations), nil
}

// ListOwn бронирования текущего пользователя, новые даты первыми
func (s *Service) ListOwn(ctx context.Context, caller domain.Caller, includeCancelled bool) (*models.ReservationListResponse, error) {
	s.logger.Info("ListOwn: fetching reservations for user=%d", caller.UserID)

	ownerID := caller.UserID
	reservations, err := s.list(ctx, domain.ReservationsFilter{
		OwnerID:          &ownerID,
		IncludeCancelled: includeCancelled,
	})
	if err != nil {
		s.logger.Error("ListOwn: repository error for user=%d: %v", caller.UserID, err)
		return nil, fmt.Errorf("%w: ListOwn - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservationList(reservations), nil
}

// GetByID получает бронирование по ID, включая отменённые
func (s *Service) GetByID(ctx context.Context, id int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d", id)

	var res *domain.Reservation
	err := s.retrier.Read(ctx, func(ctx context.Context) error {
		var err error
		res, err = s.reservationRepo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservation(res), nil
}

// Cancel отменяет бронирование и освобождает его координаты
// Отменить может владелец или администратор. Повторная отмена возвращает бронирование без изменений
func (s *Service) Cancel(ctx context.Context, id int64, caller domain.Caller) (*models.ReservationResponse, error) {
	s.logger.Info("Cancel: cancelling reservation id=%d by user=%d", id, caller.UserID)
	return s.transition(ctx, opCancel, id, caller, domain.StatusCancelled)
}

// UpdateStatus меняет статус бронирования
//
// Переход в cancelled освобождает координаты. Переход из cancelled в активный статус
// занимает их заново и завершается ErrSlotNotAvailable, если их уже занял кто-то другой.
// Переход в тот же статус ничего не меняет.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.ReservationResponse, error) {
	s.logger.Info("UpdateStatus: updating reservation id=%d to status=%s by user=%d", id, req.Status, req.Caller.UserID)

	status, err := domain.ParseStatus(strings.TrimSpace(req.Status))
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%q for reservation id=%d", req.Status, id)
		s.observe(opUpdateStatus, "invalid")
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return s.transition(ctx, opUpdateStatus, id, req.Caller, status)
}

// transition общий переход статуса в транзакции
func (s *Service) transition(
	ctx context.Context,
	op string,
	id int64,
	caller domain.Caller,
	status domain.ReservationStatus,
) (*models.ReservationResponse, error) {
	var (
		res      *domain.Reservation
		previous domain.ReservationStatus
		changed  bool
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Читаем бронирование с блокировкой строки
		current, err := s.reservationRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				s.logger.Warn("%s: reservation id=%d not found", op, id)
				return ErrReservationNotFound
			}
			s.logger.Error("%s: repository error for reservation id=%d: %v", op, id, err)
			return fmt.Errorf("%w: %s - get reservation: %v", ErrInternal, op, err)
		}

		// 2. Права: владелец или администратор
		if !caller.CanManage(current) {
			s.logger.Warn("%s: access denied for user=%d to reservation id=%d", op, caller.UserID, id)
			return ErrAccessDenied
		}

		res = current
		previous = current.Status

		// 3. Тот же статус ничего не меняет
		if current.Status == status {
			s.logger.Info("%s: reservation id=%d already has status=%s", op, id, status)
			return nil
		}

		// 4. Координаты
		switch {
		case !status.IsActive():
			if err := s.reservationRepo.ReleaseSlots(txCtx, id); err != nil {
				s.logger.Error("%s: failed to release slots of reservation id=%d: %v", op, id, err)
				return fmt.Errorf("%w: %s - release slots: %v", ErrInternal, op, err)
			}
		case !current.IsActive():
			if err := s.reservationRepo.ClaimSlots(txCtx, id, current.Slots()); err != nil {
				if errors.Is(err, reservationRepo.ErrSlotTaken) {
					s.logger.Warn("%s: slots of reservation id=%d are taken: %v", op, id, err)
					return ErrSlotNotAvailable
				}
				s.logger.Error("%s: failed to claim slots of reservation id=%d: %v", op, id, err)
				return fmt.Errorf("%w: %s - claim slots: %v", ErrInternal, op, err)
			}
		}

		// 5. Статус
		updatedAt, err := s.reservationRepo.UpdateStatus(txCtx, id, status)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			s.logger.Error("%s: failed to update status of reservation id=%d: %v", op, id, err)
			return fmt.Errorf("%w: %s - update status: %v", ErrInternal, op, err)
		}

		res.Status = status
		res.UpdatedAt = updatedAt
		changed = true
		return nil
	})

	if err != nil {
		s.observe(op, outcomeOf(err))
		if isKnown(err) {
			return nil, err
		}
		s.logger.Error("%s: transaction failed for reservation id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - transaction: %v", ErrInternal, op, err)
	}

	if !changed {
		s.observe(op, "unchanged")
		return models.FromDomainReservation(res), nil
	}

	s.observe(op, "changed")
	s.logger.Info("%s: reservation id=%d status %s -> %s", op, id, previous, status)

	event := events.NewReservationEvent(events.TypeReservationStatusChanged, res, previous, s.now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("%s: failed to publish event for id=%d: %v", op, id, err)
	}

	return models.FromDomainReservation(res), nil
}

func (s *Service) list(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	var reservations []*domain.Reservation
	err := s.retrier.Read(ctx, func(ctx context.Context) error {
		var err error
		reservations, err = s.reservationRepo.List(ctx, filter)
		return err
	})
	return reservations, err
}

func (s *Service) observe(op, outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveReservation(op, outcome)
	}
}

// toDomainFilter конвертирует request в domain фильтр
func toDomainFilter(req *models.ListReservationsRequest) (domain.ReservationsFilter, error) {
	filter := domain.ReservationsFilter{
		LaboratoryID:     req.LaboratoryID,
		IncludeCancelled: req.IncludeCancelled,
	}

	if req.Date != "" {
		date, err := domain.ParseDate(req.Date)
		if err != nil {
			return filter, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter.Date = &date
		return filter, nil
	}

	if req.Year == 0 && req.Month == 0 {
		return filter, nil
	}
	if req.Year < 1 || req.Month < 1 || req.Month > 12 {
		return filter, fmt.Errorf("%w: year and month (1-12) must be given together", ErrInvalidInput)
	}
	if req.Year > maxFilterYear {
		return filter, fmt.Errorf("%w: year must be 1..%d", ErrInvalidInput, maxFilterYear)
	}

	filter.Month = &domain.YearMonth{Year: req.Year, Month: time.Month(req.Month)}
	return filter, nil
}

// maxFilterYear наибольший год, который допускает фильтр по месяцу
const maxFilterYear = 9999

func isKnown(err error) bool {
	return errors.Is(err, ErrReservationNotFound) ||
		errors.Is(err, ErrAccessDenied) ||
		errors.Is(err, ErrSlotNotAvailable) ||
		errors.Is(err, ErrInternal)
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ErrReservationNotFound):
		return "not_found"
	case errors.Is(err, ErrAccessDenied):
		return "forbidden"
	case errors.Is(err, ErrSlotNotAvailable):
		return "conflict"
	default:
		return "error"
	}
}
