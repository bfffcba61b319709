package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-LabReservationService/internal/domain"
	"github.com/m04kA/SMC-LabReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LabReservationService/pkg/pgerr"
	"github.com/m04kA/SMC-LabReservationService/pkg/psqlbuilder"
)

const (
	tableReservations = "reservations"
	tableSlots        = "reservation_slots"
)

var reservationColumns = []string{
	"r.id",
	"r.owner_id",
	"r.laboratory_id",
	"r.reservation_date",
	"r.block",
	"r.sub_block",
	"r.block_type",
	"r.course",
	"r.subject",
	"r.teacher",
	"r.status",
	"l.name",
	"r.created_at",
	"r.updated_at",
}

// Repository репозиторий для работы с бронированиями и занятыми координатами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Координаты не занимает: это делает ClaimSlots в той же транзакции
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableReservations).
		Columns(
			"owner_id",
			"laboratory_id",
			"reservation_date",
			"block",
			"sub_block",
			"block_type",
			"course",
			"subject",
			"teacher",
			"status",
		).
		Values(
			res.OwnerID,
			res.LaboratoryID,
			domain.DateOnly(res.Date),
			res.Block,
			res.SubBlock,
			res.BlockType,
			res.Course,
			res.Subject,
			res.Teacher,
			res.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&res.ID, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return res, nil
}

// ClaimSlots занимает координаты за бронированием одной вставкой
//
// Первичный ключ reservation_slots (slot_date, block, sub_block) не даёт двум
// активным бронированиям занять одну координату даже при гонке транзакций.
// Нарушение ключа возвращается как ErrSlotTaken. После него транзакция PostgreSQL
// непригодна и должна быть откатена.
func (r *Repository) ClaimSlots(ctx context.Context, reservationID int64, slots []domain.Slot) error {
	if len(slots) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insert := psqlbuilder.Insert(tableSlots).
		Columns("slot_date", "block", "sub_block", "reservation_id")
	for _, s := range slots {
		insert = insert.Values(domain.DateOnly(s.Date), s.Block, s.SubBlock, reservationID)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: ClaimSlots - build insert query: %w", ErrBuildQuery, err)
	}

	if _, err = executor.ExecContext(ctx, query, args...); err != nil {
		if pgerr.IsUniqueViolation(err) {
			return fmt.Errorf("%w: ClaimSlots - insert slots: %w", ErrSlotTaken, err)
		}
		return fmt.Errorf("%w: ClaimSlots - insert slots: %w", ErrExecQuery, err)
	}

	return nil
}

// ReleaseSlots освобождает все координаты бронирования
func (r *Repository) ReleaseSlots(ctx context.Context, reservationID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(tableSlots).
		Where(squirrel.Eq{"reservation_id": reservationID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ReleaseSlots - build delete query: %w", ErrBuildQuery, err)
	}

	if _, err = executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ReleaseSlots - execute delete: %w", ErrExecQuery, err)
	}

	return nil
}

// GetByID получает бронирование по ID
// Внутри транзакции строка блокируется (SELECT ... FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := baseSelect().Where(squirrel.Eq{"r.id": id})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF r")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %w", ErrScanRow, err)
	}

	return res, nil
}

// List получает бронирования по фильтру
//
// Сортировка зависит от области выборки:
//   - без фильтра: date DESC, block ASC, sub_block ASC
//   - месяц: date ASC, block ASC, sub_block ASC
//   - дата: block ASC, sub_block ASC
//
// Внутри транзакции найденные строки блокируются, что сериализует создание
// бронирований на один и тот же (date, block).
func (r *Repository) List(ctx context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildListQuery(filter, dbmetrics.IsInTransaction(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanReservations(rows)
}

// ListActiveInBlock активные бронирования на (date, block)
func (r *Repository) ListActiveInBlock(ctx context.Context, date time.Time, block int) ([]*domain.Reservation, error) {
	return r.List(ctx, domain.ReservationsFilter{Date: &date, Block: &block})
}

// UpdateStatus меняет статус бронирования и возвращает новое время обновления
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) (time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(tableReservations).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING updated_at").
		ToSql()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	var updatedAt time.Time
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, ErrReservationNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	return updatedAt, nil
}

func baseSelect() squirrel.SelectBuilder {
	return psqlbuilder.Select(reservationColumns...).
		From(tableReservations + " r").
		Join("laboratories l ON l.id = r.laboratory_id")
}

func buildListQuery(filter domain.ReservationsFilter, lock bool) (string, []interface{}, error) {
	selectBuilder := baseSelect()

	if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.status": domain.ActiveStatuses})
	}
	if filter.OwnerID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.owner_id": *filter.OwnerID})
	}
	if filter.LaboratoryID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"r.laboratory_id": *filter.LaboratoryID})
	}

	switch filter.Scope() {
	case domain.ScopeDate:
		selectBuilder = selectBuilder.
			Where(squirrel.Eq{"r.reservation_date": domain.DateOnly(*filter.Date)}).
			OrderBy("r.block ASC", "r.sub_block ASC")
		if filter.Block != nil {
			selectBuilder = selectBuilder.Where(squirrel.Eq{"r.block": *filter.Block})
		}
	case domain.ScopeMonth:
		start, end := filter.Month.Bounds()
		selectBuilder = selectBuilder.
			Where(squirrel.GtOrEq{"r.reservation_date": start}).
			Where(squirrel.Lt{"r.reservation_date": end}).
			OrderBy("r.reservation_date ASC", "r.block ASC", "r.sub_block ASC")
	default:
		selectBuilder = selectBuilder.
			OrderBy("r.reservation_date DESC", "r.block ASC", "r.sub_block ASC")
	}

	if lock {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF r")
	}

	return selectBuilder.ToSql()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	err := row.Scan(
		&res.ID,
		&res.OwnerID,
		&res.LaboratoryID,
		&res.Date,
		&res.Block,
		&res.SubBlock,
		&res.BlockType,
		&res.Course,
		&res.Subject,
		&res.Teacher,
		&res.Status,
		&res.LaboratoryName,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	res.Date = domain.DateOnly(res.Date)
	return &res, nil
}

func scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	reservations := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan row: %w", ErrScanRow, err)
		}
		reservations = append(reservations, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows iteration: %w", ErrScanRow, err)
	}

	return reservations, nil
}
