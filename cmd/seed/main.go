package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/m04kA/SMC-LabReservationService/internal/config"
	laboratoryRepo "github.com/m04kA/SMC-LabReservationService/internal/infra/storage/laboratory"
	userRepo "github.com/m04kA/SMC-LabReservationService/internal/infra/storage/user"
	"github.com/m04kA/SMC-LabReservationService/migrations"
	"github.com/m04kA/SMC-LabReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LabReservationService/pkg/logger"
	"github.com/m04kA/SMC-LabReservationService/pkg/migrator"
)

func main() {
	var (
		configPath = flag.String("config", "config.toml", "path to config.toml")
		labs       = flag.String("labs", "Laboratorio 1,Laboratorio 2", "comma-separated laboratory names")
		capacity   = flag.Int("capacity", 30, "capacity of created laboratories")
		email      = flag.String("email", "", "user email (skip user creation when empty)")
		name       = flag.String("name", "", "user display name")
		password   = flag.String("password", os.Getenv("SEED_PASSWORD"), "user password (or SEED_PASSWORD)")
		role       = flag.String("role", "profesor", "user role: admin | profesor")
		migrate    = flag.Bool("migrate", true, "apply migrations before seeding")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.NewDevelopment(cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if *migrate {
		m, err := migrator.New(db, migrations.FS, log)
		if err != nil {
			log.Fatal("Failed to initialize migrator: %v", err)
		}
		if err := m.Up(ctx); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	wrapped := dbmetrics.Wrap(db, nil)
	s := &seeder{
		labs:       laboratoryRepo.NewRepository(wrapped),
		users:      userRepo.NewRepository(wrapped),
		bcryptCost: cfg.Auth.BcryptCost,
		logger:     log,
	}

	opts := options{
		Laboratories: splitNames(*labs),
		Capacity:     *capacity,
		Email:        *email,
		Name:         *name,
		Password:     *password,
		Role:         *role,
	}

	if err := s.run(ctx, opts); err != nil {
		log.Fatal("Seed failed: %v", err)
	}
	log.Info("Seed completed")
}

func splitNames(raw string) []string {
	var names []string
	for _, n := range strings.Split(raw, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}
