package laboratories

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
	ErrInternal = errors.New("laboratories: internal error")
)

// LaboratoryRepository справочник лабораторий (репозиторий или кэш над ним)
type LaboratoryRepository interface {
	ListActive(ctx context.Context) ([]*domain.Laboratory, error)
}

type ReadRetrier interface {
	Read(ctx context.Context, fn func(ctx context.Context) error) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// LaboratoryResponse лаборатория в ответах API
type LaboratoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	Equipment string    `json:"equipment"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Service сервис справочника лабораторий
type Service struct {
	repo    LaboratoryRepository
	retrier ReadRetrier
	logger  Logger
}

func NewService(repo LaboratoryRepository, retrier ReadRetrier, logger Logger) *Service {
	if retrier == nil {
		retrier = dbretry.NoRetry()
	}
	return &Service{repo: repo, retrier: retrier, logger: logger}
}

// ListActive активные лаборатории
func (s *Service) ListActive(ctx context.Context) ([]LaboratoryResponse, error) {
	var labs []*domain.Laboratory
	err := s.retrier.Read(ctx, func(ctx context.Context) error {
		var err error
		labs, err = s.repo.ListActive(ctx)
		return err
	})
	if err != nil {
		s.logger.Error("ListLaboratories: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListActive - repository error: %v", ErrInternal, err)
	}

	resp := make([]LaboratoryResponse, 0, len(labs))
	for _, l := range labs {
		resp = append(resp, LaboratoryResponse{
			ID:        l.ID,
			Name:      l.Name,
			Capacity:  l.Capacity,
			Equipment: l.Equipment,
			Active:    l.Active,
			CreatedAt: l.CreatedAt,
			UpdatedAt: l.UpdatedAt,
		})
	}

	s.logger.Info("ListLaboratories: fetched %d laboratories", len(resp))
	return resp, nil
}
