package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-LabReservationService/internal/domain"
	laboratoryRepo "github.com/m04kA/SMC-LabReservationService/internal/infra/storage/laboratory"
	userRepo "github.com/m04kA/SMC-LabReservationService/internal/infra/storage/user"
	"github.com/m04kA/SMC-LabReservationService/internal/service/auth"
)

type LaboratoryCreator interface {
	Create(ctx context.Context, lab *domain.Laboratory) (*domain.Laboratory, error)
}

type UserCreator interface {
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

type options struct {
	Laboratories []string
	Capacity     int
	Email        string
	Name         string
	Password     string
	Role         string
}

// seeder заполняет справочник лабораторий и создаёт пользователя
// Повторный запуск пропускает уже существующие записи
type seeder struct {
	labs       LaboratoryCreator
	users      UserCreator
	bcryptCost int
	logger     Logger
}

func (s *seeder) run(ctx context.Context, opts options) error {
	for _, name := range opts.Laboratories {
		lab, err := s.labs.Create(ctx, &domain.Laboratory{Name: name, Capacity: opts.Capacity, Active: true})
		switch {
		case errors.Is(err, laboratoryRepo.ErrDuplicateName):
			s.logger.Warn("Seed: laboratory %q already exists, skipped", name)
		case err != nil:
			return fmt.Errorf("create laboratory %q: %w", name, err)
		default:
			s.logger.Info("Seed: laboratory %q created (id=%d)", lab.Name, lab.ID)
		}
	}

	email := strings.ToLower(strings.TrimSpace(opts.Email))
	if email == "" {
		return nil
	}

	role, err := domain.ParseRole(opts.Role)
	if err != nil {
		return err
	}
	if len(opts.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	hash, err := auth.HashPassword(opts.Password, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	name := strings.TrimSpace(opts.Name)
	if name == "" {
		name = email
	}

	u, err := s.users.Create(ctx, &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	})
	switch {
	case errors.Is(err, userRepo.ErrDuplicateEmail):
		s.logger.Warn("Seed: user %s already exists, skipped", email)
	case err != nil:
		return fmt.Errorf("create user %s: %w", email, err)
	default:
		s.logger.Info("Seed: user %s created (id=%d, role=%s)", u.Email, u.ID, u.Role)
	}

	return nil
}
