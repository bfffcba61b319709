package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-LabReservationService/internal/domain"
	"github.com/m04kA/SMC-LabReservationService/internal/infra/events"
	labRepo "github.com/m04kA/SMC-LabReservationService/internal/infra/storage/laboratory"
	reservationRepo "github.com/m04kA/SMC-LabReservationService/internal/infra/storage/reservation"
	"github.com/m04kA/SMC-LabReservationService/internal/service/reservations/models"
)

const operation = "create"

// Исходы операции для метрик
const (
	outcomeCreated  = "created"
	outcomeConflict = "conflict"
	outcomeInvalid  = "invalid"
	outcomeError    = "error"
)

// UseCase use case для создания бронирования
type UseCase struct {
	reservationRepo ReservationRepository
	labRepo         LaboratoryRepository
	txManager       TransactionManager
	publisher       EventPublisher
	metrics         Metrics
	initialStatus   domain.ReservationStatus
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
// initialStatus статус новых бронирований (confirmed или pending)
func NewUseCase(
	reservationRepo ReservationRepository,
	labRepo LaboratoryRepository,
	txManager TransactionManager,
	publisher EventPublisher,
	metrics Metrics,
	initialStatus domain.ReservationStatus,
	logger Logger,
) *UseCase {
	if !initialStatus.IsActive() {
		initialStatus = domain.StatusConfirmed
	}
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &UseCase{
		reservationRepo: reservationRepo,
		labRepo:         labRepo,
		txManager:       txManager,
		publisher:       publisher,
		metrics:         metrics,
		initialStatus:   initialStatus,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания бронирования
//
// Внутри транзакции активные бронирования на (date, block) читаются с блокировкой,
// пересечение проверяется по развёрнутым наборам полублоков, затем бронирование
// вставляется и занимает свои координаты в reservation_slots. Гонку двух транзакций,
// не увидевших друг друга, разрешает первичный ключ reservation_slots.
// Операция не повторяется при ошибках.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.ReservationResponse, error) {
	uc.logger.Info("CreateReservation: owner=%d, date=%s, block=%d, blockType=%s, subBlock=%s, laboratory=%q/%d",
		req.OwnerID, req.Date, req.Block, req.BlockType, req.SubBlock, req.Laboratory, req.LaboratoryID)

	// 1. Валидация входных данных
	v, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		uc.observe(outcomeInvalid)
		return nil, err
	}

	// 2. Определяем лабораторию один раз
	lab, err := uc.resolveLaboratory(ctx, req)
	if err != nil {
		if errors.Is(err, ErrLaboratoryNotFound) {
			uc.observe(outcomeInvalid)
		} else {
			uc.observe(outcomeError)
		}
		return nil, err
	}

	var result *domain.Reservation

	// 3. Проверка и вставка в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Активные бронирования на этот блок с блокировкой (FOR UPDATE)
		existing, err := uc.reservationRepo.ListActiveInBlock(txCtx, v.date, v.block)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to list reservations: %v", err)
			return fmt.Errorf("%w: failed to list reservations: %v", ErrInternal, err)
		}

		// 3.2. Проверяем пересечение наборов полублоков
		if conflict := findConflict(existing, v); conflict != nil {
			uc.logger.Warn("CreateReservation: %s %s block=%d overlaps reservation id=%d (%s)",
				v.blockType, v.date.Format(domain.DateFormat), v.block, conflict.ID, conflict.BlockType)
			return fmt.Errorf("%w: overlaps reservation id=%d", ErrSlotNotAvailable, conflict.ID)
		}

		// 3.3. Создаем бронирование
		created, err := uc.reservationRepo.Create(txCtx, &domain.Reservation{
			OwnerID:      req.OwnerID,
			LaboratoryID: lab.ID,
			Date:         v.date,
			Block:        v.block,
			SubBlock:     v.subBlock,
			BlockType:    v.blockType,
			Course:       v.course,
			Subject:      v.subject,
			Teacher:      v.teacher,
			Status:       uc.initialStatus,
		})
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		// 3.4. Занимаем координаты
		if err := uc.reservationRepo.ClaimSlots(txCtx, created.ID, created.Slots()); err != nil {
			if errors.Is(err, reservationRepo.ErrSlotTaken) {
				uc.logger.Warn("CreateReservation: slot claimed concurrently: %v", err)
				return fmt.Errorf("%w: claimed by a concurrent reservation", ErrSlotNotAvailable)
			}
			uc.logger.Error("CreateReservation: failed to claim slots: %v", err)
			return fmt.Errorf("%w: failed to claim slots: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		switch {
		case errors.Is(err, ErrSlotNotAvailable):
			uc.observe(outcomeConflict)
			return nil, err
		case errors.Is(err, ErrInternal):
			uc.observe(outcomeError)
			return nil, err
		default:
			uc.logger.Error("CreateReservation: transaction failed: %v", err)
			uc.observe(outcomeError)
			return nil, fmt.Errorf("%w: transaction failed: %v", ErrInternal, err)
		}
	}

	result.LaboratoryName = lab.Name
	uc.observe(outcomeCreated)
	uc.logger.Info("CreateReservation: successfully created reservation id=%d", result.ID)

	// 4. Событие после коммита, ошибка публикации не влияет на результат
	event := events.NewReservationEvent(events.TypeReservationCreated, result, "", uc.timeProvider.Now())
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateReservation: failed to publish event for id=%d: %v", result.ID, err)
	}

	return models.FromDomainReservation(result), nil
}

// resolveLaboratory находит активную лабораторию по ID или имени
func (uc *UseCase) resolveLaboratory(ctx context.Context, req *Request) (*domain.Laboratory, error) {
	var (
		lab *domain.Laboratory
		err error
	)
	if req.LaboratoryID > 0 {
		lab, err = uc.labRepo.GetByID(ctx, req.LaboratoryID)
	} else {
		lab, err = uc.labRepo.GetByName(ctx, strings.TrimSpace(req.Laboratory))
	}

	if err != nil {
		if errors.Is(err, labRepo.ErrLaboratoryNotFound) {
			uc.logger.Warn("CreateReservation: laboratory %q/%d not found", req.Laboratory, req.LaboratoryID)
			return nil, ErrLaboratoryNotFound
		}
		uc.logger.Error("CreateReservation: failed to get laboratory: %v", err)
		return nil, fmt.Errorf("%w: failed to get laboratory: %v", ErrInternal, err)
	}

	if !lab.Active {
		uc.logger.Warn("CreateReservation: laboratory id=%d is inactive", lab.ID)
		return nil, ErrLaboratoryNotFound
	}

	return lab, nil
}

func (uc *UseCase) observe(outcome string) {
	if uc.metrics != nil {
		uc.metrics.ObserveReservation(operation, outcome)
	}
}
