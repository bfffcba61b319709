package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-LabReservationService/internal/api"
	cancelReservationHandler "github.com/m04kA/SMC-LabReservationService/internal/api/handlers/cancel_reservation"
	checkAvailabilityHandler "github.com/m04kA/SMC-LabReservationService/internal/api/handlers/check_availability"
	createReservationHandler "github.com/m04kA/SMC-LabReservationService/internal/api/handlers/create_reservation"
	getDayAvailabilityHandler "github.com/m04kA/SMC-LabReservationService/internal/api/handlers/get_day_availability"
	getGeneralStatsHandler "github.com/m04kA/SMC-LabReservationService/internal/api/handlers/get_general_stats"
	getReservationHandler "github.com/m04kA/SMC-LabReservationService/internal/api/handlers/get_reservation"
	healthHandler "github.com/m04kA/SMC-LabReservationService/internal/api/handlers/health"
	listLaboratoriesHandler "github.com/m04kA/SMC-LabReservationService/internal/api/handlers/list_laboratories"
	listOwnReservationsHandler "github.com/m04kA/SMC-LabReservationService/internal/api/handlers/list_own_reservations"
	listReservationsHandler "github.com/m04kA/SMC-LabReservationService/internal/api/handlers/list_reservations"
	loginHandler "github.com/m04kA/SMC-LabReservationService/internal/api/handlers/login"
	updateReservationStatusHandler "github.com/m04kA/SMC-LabReservationService/internal/api/handlers/update_reservation_status"
	"github.com/m04kA/SMC-LabReservationService/internal/config"
	labCache "github.com/m04kA/SMC-LabReservationService/internal/infra/cache/laboratory"
	"github.com/m04kA/SMC-LabReservationService/internal/infra/events"
	laboratoryRepo "github.com/m04kA/SMC-LabReservationService/internal/infra/storage/laboratory"
	reservationRepo "github.com/m04kA/SMC-LabReservationService/internal/infra/storage/reservation"
	statsRepo "github.com/m04kA/SMC-LabReservationService/internal/infra/storage/stats"
	userRepo "github.com/m04kA/SMC-LabReservationService/internal/infra/storage/user"
	authService "github.com/m04kA/SMC-LabReservationService/internal/service/auth"
	laboratoriesService "github.com/m04kA/SMC-LabReservationService/internal/service/laboratories"
	reservationsService "github.com/m04kA/SMC-LabReservationService/internal/service/reservations"
	statsService "github.com/m04kA/SMC-LabReservationService/internal/service/stats"
	checkAvailabilityUC "github.com/m04kA/SMC-LabReservationService/internal/usecase/check_availability"
	createReservationUC "github.com/m04kA/SMC-LabReservationService/internal/usecase/create_reservation"
	getDayAvailabilityUC "github.com/m04kA/SMC-LabReservationService/internal/usecase/get_day_availability"
	"github.com/m04kA/SMC-LabReservationService/migrations"
	"github.com/m04kA/SMC-LabReservationService/pkg/dbmetrics"
	"github.com/m04kA/SMC-LabReservationService/pkg/dbretry"
	"github.com/m04kA/SMC-LabReservationService/pkg/jwt"
	"github.com/m04kA/SMC-LabReservationService/pkg/logger"
	"github.com/m04kA/SMC-LabReservationService/pkg/metrics"
	"github.com/m04kA/SMC-LabReservationService/pkg/migrator"
	"github.com/m04kA/SMC-LabReservationService/pkg/txmanager"
)

const poolStatsInterval = 15 * time.Second

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.toml"
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-LabReservationService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName, prometheus.DefaultRegisterer)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = db.PingContext(pingCtx)
	pingCancel()
	if err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Миграции
	if cfg.Database.MigrateOnStart {
		m, err := migrator.New(db, migrations.FS, log)
		if err != nil {
			log.Fatal("Failed to initialize migrator: %v", err)
		}
		if err := m.Up(context.Background()); err != nil {
			log.Fatal("Failed to apply migrations: %v", err)
		}
	}

	// Обёртка БД с метриками запросов (при выключенных метриках только прокси)
	wrappedDB := dbmetrics.Wrap(db, metricsCollector)
	dbmetrics.StartPoolCollector(db, metricsCollector, poolStatsInterval, stopMetricsCh)

	// Redis (опционально): кэш справочника лабораторий
	var kv labCache.KV
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		redisCtx, redisCancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := redisClient.Ping(redisCtx).Err()
		redisCancel()
		if err != nil {
			log.Warn("Redis unavailable at %s, laboratory cache disabled: %v", cfg.Redis.Addr, err)
			_ = redisClient.Close()
			redisClient = nil
		} else {
			kv = redisClient
			log.Info("Laboratory cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.CacheTTL)
		}
	}

	// RabbitMQ (опционально): события бронирований
	var publisher createReservationUC.EventPublisher = events.NoopPublisher{}
	var rabbitPublisher *events.Publisher
	if cfg.RabbitMQ.Enabled {
		rabbitPublisher, err = events.Dial(cfg.RabbitMQ.URL, cfg.RabbitMQ.Exchange)
		if err != nil {
			log.Warn("RabbitMQ unavailable, reservation events disabled: %v", err)
		} else {
			publisher = rabbitPublisher
			log.Info("Reservation events enabled (exchange=%s)", cfg.RabbitMQ.Exchange)
		}
	}

	// Инициализируем репозитории
	reservationRepository := reservationRepo.NewRepository(wrappedDB)
	laboratoryRepository := laboratoryRepo.NewRepository(wrappedDB)
	laboratories := labCache.New(
		laboratoryRepository,
		kv,
		time.Duration(cfg.Redis.CacheTTL)*time.Second,
		log,
	)
	userRepository := userRepo.NewRepository(wrappedDB)
	statsRepository := statsRepo.NewRepository(wrappedDB)

	txMgr := txmanager.NewTransactionManager(wrappedDB)
	readRetrier := dbretry.New(cfg.Reservations.ReadRetries, time.Duration(cfg.Reservations.RetryBaseDelay)*time.Millisecond)
	tokens := jwt.New(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTL)*time.Minute, cfg.Auth.Issuer)

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		txMgr,
		readRetrier,
		publisher,
		metricsCollector,
		log,
	)
	laboratorySvc := laboratoriesService.NewService(laboratories, readRetrier, log)
	statsSvc := statsService.NewService(statsRepository, txMgr, readRetrier, cfg.Reservations.Location(), log)
	authSvc := authService.NewService(userRepository, tokens, log)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		laboratories,
		txMgr,
		publisher,
		metricsCollector,
		cfg.Reservations.Status(),
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(reservationRepository, readRetrier, log)
	getDayAvailabilityUseCase := getDayAvailabilityUC.NewUseCase(reservationRepository, readRetrier, log)

	// Настраиваем роутер
	router := api.NewRouter(api.Handlers{
		Login:                   loginHandler.NewHandler(authSvc, log).Handle,
		ListReservations:        listReservationsHandler.NewHandler(reservationSvc, log).Handle,
		CheckAvailability:       checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log).Handle,
		GetDayAvailability:      getDayAvailabilityHandler.NewHandler(getDayAvailabilityUseCase, log).Handle,
		GetReservation:          getReservationHandler.NewHandler(reservationSvc, log).Handle,
		CreateReservation:       createReservationHandler.NewHandler(createReservationUseCase, log).Handle,
		UpdateReservationStatus: updateReservationStatusHandler.NewHandler(reservationSvc, log).Handle,
		CancelReservation:       cancelReservationHandler.NewHandler(reservationSvc, log).Handle,
		ListOwnReservations:     listOwnReservationsHandler.NewHandler(reservationSvc, log).Handle,
		ListLaboratories:        listLaboratoriesHandler.NewHandler(laboratorySvc, log).Handle,
		GetGeneralStats:         getGeneralStatsHandler.NewHandler(statsSvc, log).Handle,
		Health:                  healthHandler.NewHandler(wrappedDB, log).Handle,
	}, api.Options{
		Tokens:      tokens,
		Logger:      log,
		Metrics:     metricsCollector,
		MetricsPath: cfg.Metrics.Path,
	})

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	if rabbitPublisher != nil {
		if err := rabbitPublisher.Close(); err != nil {
			log.Warn("Failed to close RabbitMQ publisher: %v", err)
		}
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Warn("Failed to close redis client: %v", err)
		}
	}

	log.Info("Server stopped gracefully")
}
