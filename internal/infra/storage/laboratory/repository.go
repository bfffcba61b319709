package laboratory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-LabReservationService/internal/domain"
	"github.com/m04kA/SMC-LabReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LabReservationService/pkg/pgerr"
	"github.com/m04kA/SMC-LabReservationService/pkg/psqlbuilder"
)

const tableLaboratories = "laboratories"

var laboratoryColumns = []string{
	"id",
	"name",
	"capacity",
	"equipment",
	"active",
	"created_at",
	"updated_at",
}

// Repository репозиторий справочника лабораторий
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория лабораторий
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListActive активные лаборатории по имени
func (r *Repository) ListActive(ctx context.Context) ([]*domain.Laboratory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(laboratoryColumns...).
		From(tableLaboratories).
		Where(squirrel.Eq{"active": true}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	labs := make([]*domain.Laboratory, 0)
	for rows.Next() {
		lab, err := scanLaboratory(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListActive - scan row: %w", ErrScanRow, err)
		}
		labs = append(labs, lab)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListActive - rows iteration: %w", ErrScanRow, err)
	}

	return labs, nil
}

// GetByID получает лабораторию по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Laboratory, error) {
	return r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByName получает лабораторию по имени без учёта регистра
func (r *Repository) GetByName(ctx context.Context, name string) (*domain.Laboratory, error) {
	return r.getOne(ctx, "GetByName", squirrel.Expr("LOWER(name) = LOWER(?)", name))
}

// CountActive количество активных лабораторий
func (r *Repository) CountActive(ctx context.Context) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From(tableLaboratories).
		Where(squirrel.Eq{"active": true}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActive - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	if err = executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActive - scan count: %w", ErrScanRow, err)
	}

	return count, nil
}

// Create добавляет лабораторию (используется cmd/seed)
func (r *Repository) Create(ctx context.Context, lab *domain.Laboratory) (*domain.Laboratory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(tableLaboratories).
		Columns("name", "capacity", "equipment", "active").
		Values(lab.Name, lab.Capacity, lab.Equipment, lab.Active).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&lab.ID, &lab.CreatedAt, &lab.UpdatedAt)
	if pgerr.IsUniqueViolation(err) {
		return nil, fmt.Errorf("%w: Create - %s: %w", ErrDuplicateName, lab.Name, err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return lab, nil
}

func (r *Repository) getOne(ctx context.Context, method string, pred squirrel.Sqlizer) (*domain.Laboratory, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(laboratoryColumns...).
		From(tableLaboratories).
		Where(pred).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, method, err)
	}

	lab, err := scanLaboratory(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLaboratoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan laboratory: %w", ErrScanRow, method, err)
	}

	return lab, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanLaboratory(row rowScanner) (*domain.Laboratory, error) {
	var lab domain.Laboratory
	err := row.Scan(
		&lab.ID,
		&lab.Name,
		&lab.Capacity,
		&lab.Equipment,
		&lab.Active,
		&lab.CreatedAt,
		&lab.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lab, nil
}
