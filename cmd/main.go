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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancellationQuoteHandler "github.com/m04kA/BBQ-ReservationService/internal/api/handlers/cancellation_quote"
	createReservationHandler "github.com/m04kA/BBQ-ReservationService/internal/api/handlers/create_reservation"
	getAvailabilityHandler "github.com/m04kA/BBQ-ReservationService/internal/api/handlers/get_availability"
	getFacilityReservationsHandler "github.com/m04kA/BBQ-ReservationService/internal/api/handlers/get_facility_reservations"
	getReservationHandler "github.com/m04kA/BBQ-ReservationService/internal/api/handlers/get_reservation"
	getSlotCatalogHandler "github.com/m04kA/BBQ-ReservationService/internal/api/handlers/get_slot_catalog"
	getUserReservationsHandler "github.com/m04kA/BBQ-ReservationService/internal/api/handlers/get_user_reservations"
	quoteReservationHandler "github.com/m04kA/BBQ-ReservationService/internal/api/handlers/quote_reservation"
	transitionReservationHandler "github.com/m04kA/BBQ-ReservationService/internal/api/handlers/transition_reservation"
	updateSlotCatalogHandler "github.com/m04kA/BBQ-ReservationService/internal/api/handlers/update_slot_catalog"
	"github.com/m04kA/BBQ-ReservationService/internal/api/middleware"
	"github.com/m04kA/BBQ-ReservationService/internal/config"
	facilityRepo "github.com/m04kA/BBQ-ReservationService/internal/infra/storage/facility"
	policyRepo "github.com/m04kA/BBQ-ReservationService/internal/infra/storage/policy"
	reservationRepo "github.com/m04kA/BBQ-ReservationService/internal/infra/storage/reservation"
	timeslotRepo "github.com/m04kA/BBQ-ReservationService/internal/infra/storage/timeslot"
	catalogService "github.com/m04kA/BBQ-ReservationService/internal/service/catalog"
	reservationsService "github.com/m04kA/BBQ-ReservationService/internal/service/reservations"
	cancellationQuoteUC "github.com/m04kA/BBQ-ReservationService/internal/usecase/cancellation_quote"
	createReservationUC "github.com/m04kA/BBQ-ReservationService/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/m04kA/BBQ-ReservationService/internal/usecase/get_availability"
	quoteReservationUC "github.com/m04kA/BBQ-ReservationService/internal/usecase/quote_reservation"
	"github.com/m04kA/BBQ-ReservationService/pkg/dbmetrics"
	"github.com/m04kA/BBQ-ReservationService/pkg/logger"
	"github.com/m04kA/BBQ-ReservationService/pkg/metrics"
	"github.com/m04kA/BBQ-ReservationService/pkg/simpletxmanager"
	"github.com/m04kA/BBQ-ReservationService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting BBQ-ReservationService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
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
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		facilityRepository    *facilityRepo.Repository
		timeslotRepository    *timeslotRepo.Repository
		policyRepository      *policyRepo.Repository
	)

	// Интерфейс transaction manager, общий для сервисов и usecases
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		facilityRepository = facilityRepo.NewRepository(wrappedDB)
		timeslotRepository = timeslotRepo.NewRepository(wrappedDB)
		policyRepository = policyRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		facilityRepository = facilityRepo.NewRepository(db)
		timeslotRepository = timeslotRepo.NewRepository(db)
		policyRepository = policyRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	catalogSvc := catalogService.NewService(
		timeslotRepository,
		txMgr,
		log,
		time.Duration(cfg.Cache.SlotCatalogTTL)*time.Second,
	)
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		policyRepository,
		catalogSvc,
		txMgr,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		facilityRepository,
		policyRepository,
		timeslotRepository,
		txMgr,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		reservationRepository,
		facilityRepository,
		catalogSvc,
		log,
	)
	quoteReservationUseCase := quoteReservationUC.NewUseCase(
		facilityRepository,
		log,
	)
	cancellationQuoteUseCase := cancellationQuoteUC.NewUseCase(
		reservationRepository,
		policyRepository,
		catalogSvc,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	quoteReservation := quoteReservationHandler.NewHandler(quoteReservationUseCase, log)
	cancellationQuote := cancellationQuoteHandler.NewHandler(cancellationQuoteUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	getFacilityReservations := getFacilityReservationsHandler.NewHandler(reservationSvc, log)
	transitionReservation := transitionReservationHandler.NewHandler(reservationSvc, log)
	getSlotCatalog := getSlotCatalogHandler.NewHandler(catalogSvc, log)
	updateSlotCatalog := updateSlotCatalogHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Матрица доступности объекта на дату
	api.HandleFunc("/facilities/{facilityId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Предварительный расчет стоимости
	api.HandleFunc("/facilities/{facilityId}/quote",
		quoteReservation.Handle).Methods(http.MethodGet)

	// Каталог временных слотов
	api.HandleFunc("/time-slots", getSlotCatalog.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Переход статуса бронирования (approve/reject/cancel/mark_refunded)
	protected.HandleFunc("/reservations/{reservationId}/transition",
		transitionReservation.Handle).Methods(http.MethodPatch)

	// Условия отмены бронирования на текущий момент
	protected.HandleFunc("/reservations/{reservationId}/cancellation-quote",
		cancellationQuote.Handle).Methods(http.MethodGet)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/reservations", getUserReservations.Handle).Methods(http.MethodGet)

	// --- Управление (для операторов) ---
	// Список бронирований объекта
	protected.HandleFunc("/facilities/{facilityId}/reservations",
		getFacilityReservations.Handle).Methods(http.MethodGet)

	// Полная замена каталога слотов
	protected.HandleFunc("/time-slots", updateSlotCatalog.Handle).Methods(http.MethodPut)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
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

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
