package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-LabReservationService/internal/domain"
	"github.com/m04kA/SMC-LabReservationService/pkg/dbretry"
)

var (
	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("stats: internal error")
)

// StatsRepository агрегаты по бронированиям
type StatsRepository interface {
	General(ctx context.Context, today time.Time) (*domain.GeneralStats, error)
}

// TransactionManager выполняет чтение в read-only транзакции
type TransactionManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

type ReadRetrier interface {
	Read(ctx context.Context, fn func(ctx context.Context) error) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// GeneralStatsResponse общая статистика
type GeneralStatsResponse struct {
	TotalReservations  int    `json:"totalReservations"`
	TodayReservations  int    `json:"todayReservations"`
	ActiveTeachers     int    `json:"activeTeachers"`
	ActiveLaboratories int    `json:"activeLaboratories"`
	Date               string `json:"date"`
}

// Service сервис статистики
type Service struct {
	repo      StatsRepository
	txManager TransactionManager
	retrier   ReadRetrier
	now       func() time.Time
	loc       *time.Location
	logger    Logger
}

// NewService создает сервис; loc задаёт часовой пояс, в котором определяется "сегодня"
func NewService(repo StatsRepository, txManager TransactionManager, retrier ReadRetrier, loc *time.Location, logger Logger) *Service {
	if retrier == nil {
		retrier = dbretry.NoRetry()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, txManager: txManager, retrier: retrier, now: time.Now, loc: loc, logger: logger}
}

// General считает общую статистику на сегодня
func (s *Service) General(ctx context.Context) (*GeneralStatsResponse, error) {
	local := s.now().In(s.loc)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)

	var st *domain.GeneralStats
	err := s.retrier.Read(ctx, func(ctx context.Context) error {
		return s.txManager.DoReadOnly(ctx, func(ctx context.Context) error {
			var err error
			st, err = s.repo.General(ctx, today)
			return err
		})
	})
	if err != nil {
		s.logger.Error("GeneralStats: repository error: %v", err)
		return nil, fmt.Errorf("%w: General - repository error: %v", ErrInternal, err)
	}

	return &GeneralStatsResponse{
		TotalReservations:  st.TotalReservations,
		TodayReservations:  st.TodayReservations,
		ActiveTeachers:     st.ActiveTeachers,
		ActiveLaboratories: st.ActiveLaboratories,
		Date:               today.Format(domain.DateFormat),
	}, nil
}
