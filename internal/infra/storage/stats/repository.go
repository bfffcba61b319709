package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-LabReservationService/internal/domain"
	"github.com/m04kA/SMC-LabReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LabReservationService/pkg/psqlbuilder"
)

// Repository агрегаты по бронированиям
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория статистики
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// General общая статистика одним запросом
// Отменённые бронирования не учитываются, today сравнивается только по дате
func (r *Repository) General(ctx context.Context, today time.Time) (*domain.GeneralStats, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildGeneralQuery(today)
	if err != nil {
		return nil, fmt.Errorf("%w: General - build select query: %w", ErrBuildQuery, err)
	}

	var s domain.GeneralStats
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.TotalReservations,
		&s.TodayReservations,
		&s.ActiveTeachers,
		&s.ActiveLaboratories,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: General - scan stats: %w", ErrScanRow, err)
	}

	return &s, nil
}

func buildGeneralQuery(today time.Time) (string, []interface{}, error) {
	return psqlbuilder.Select("COUNT(*)").
		Column(squirrel.Expr("COUNT(*) FILTER (WHERE reservation_date = ?)", domain.DateOnly(today))).
		Column("COUNT(DISTINCT teacher)").
		Column(squirrel.Expr("(SELECT COUNT(*) FROM laboratories WHERE active = ?)", true)).
		From("reservations").
		Where(squirrel.Eq{"status": domain.ActiveStatuses}).
		ToSql()
}
