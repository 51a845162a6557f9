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

	acceptQuoteHandler "github.com/avdeevlv/GMS-ReservationService/internal/api/handlers/accept_quote"
	cancelReservationHandler "github.com/avdeevlv/GMS-ReservationService/internal/api/handlers/cancel_reservation"
	checkAvailabilityHandler "github.com/avdeevlv/GMS-ReservationService/internal/api/handlers/check_availability"
	completeReservationHandler "github.com/avdeevlv/GMS-ReservationService/internal/api/handlers/complete_reservation"
	confirmReservationHandler "github.com/avdeevlv/GMS-ReservationService/internal/api/handlers/confirm_reservation"
	createReservationHandler "github.com/avdeevlv/GMS-ReservationService/internal/api/handlers/create_reservation"
	getAvailableSlotsHandler "github.com/avdeevlv/GMS-ReservationService/internal/api/handlers/get_available_slots"
	getGarageOfferingsHandler "github.com/avdeevlv/GMS-ReservationService/internal/api/handlers/get_garage_offerings"
	getGarageReservationsHandler "github.com/avdeevlv/GMS-ReservationService/internal/api/handlers/get_garage_reservations"
	getPendingQuotesHandler "github.com/avdeevlv/GMS-ReservationService/internal/api/handlers/get_pending_quotes"
	getReservationHandler "github.com/avdeevlv/GMS-ReservationService/internal/api/handlers/get_reservation"
	getUserReservationsHandler "github.com/avdeevlv/GMS-ReservationService/internal/api/handlers/get_user_reservations"
	provideQuoteHandler "github.com/avdeevlv/GMS-ReservationService/internal/api/handlers/provide_quote"
	startServiceHandler "github.com/avdeevlv/GMS-ReservationService/internal/api/handlers/start_service"
	upsertOfferingHandler "github.com/avdeevlv/GMS-ReservationService/internal/api/handlers/upsert_offering"
	"github.com/avdeevlv/GMS-ReservationService/internal/api/middleware"
	"github.com/avdeevlv/GMS-ReservationService/internal/config"
	"github.com/avdeevlv/GMS-ReservationService/internal/domain"
	"github.com/avdeevlv/GMS-ReservationService/internal/infra/events"
	offeringRepo "github.com/avdeevlv/GMS-ReservationService/internal/infra/storage/offering"
	reservationRepo "github.com/avdeevlv/GMS-ReservationService/internal/infra/storage/reservation"
	availabilityService "github.com/avdeevlv/GMS-ReservationService/internal/service/availability"
	lifecycleService "github.com/avdeevlv/GMS-ReservationService/internal/service/lifecycle"
	offeringsService "github.com/avdeevlv/GMS-ReservationService/internal/service/offerings"
	reservationsService "github.com/avdeevlv/GMS-ReservationService/internal/service/reservations"
	createReservationUC "github.com/avdeevlv/GMS-ReservationService/internal/usecase/create_reservation"
	getDaySlotsUC "github.com/avdeevlv/GMS-ReservationService/internal/usecase/get_day_slots"
	"github.com/avdeevlv/GMS-ReservationService/pkg/dbmetrics"
	"github.com/avdeevlv/GMS-ReservationService/pkg/logger"
	"github.com/avdeevlv/GMS-ReservationService/pkg/metrics"
	"github.com/avdeevlv/GMS-ReservationService/pkg/simpletxmanager"
	"github.com/avdeevlv/GMS-ReservationService/pkg/txmanager"
)

// systemTime провайдер текущего времени для production
type systemTime struct{}

func (systemTime) Now() time.Time { return time.Now() }

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

	log.Info("Starting GMS-ReservationService...")
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

	// Инициализируем публикацию доменных событий
	type EventPublisher interface {
		Publish(ctx context.Context, eventName string, payload interface{}) error
	}
	var publisher EventPublisher

	if cfg.RabbitMQ.Enabled {
		amqpPublisher, err := events.NewPublisher(cfg.RabbitMQ.URL, log)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer amqpPublisher.Close()
		publisher = amqpPublisher
		log.Info("Event publisher connected to RabbitMQ")
	} else {
		publisher = events.NewNoopPublisher(log)
		log.Info("RabbitMQ disabled, domain events will be logged only")
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		offeringRepository    *offeringRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		offeringRepository = offeringRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		offeringRepository = offeringRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	clock := systemTime{}

	// Инициализируем сервисы
	availabilitySvc := availabilityService.NewService(
		offeringRepository,
		reservationRepository,
		log,
	)
	lifecycleSvc := lifecycleService.NewService(
		reservationRepository,
		publisher,
		clock,
		log,
	)
	reservationsSvc := reservationsService.NewService(
		reservationRepository,
		clock,
		log,
	)
	offeringsSvc := offeringsService.NewService(
		offeringRepository,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		availabilitySvc,
		publisher,
		txMgr,
		log,
	)
	getDaySlotsUseCase := getDaySlotsUC.NewUseCase(availabilitySvc, log)

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(availabilitySvc, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getDaySlotsUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationsSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationsSvc, log)
	getGarageReservations := getGarageReservationsHandler.NewHandler(reservationsSvc, log)
	getPendingQuotes := getPendingQuotesHandler.NewHandler(reservationsSvc, log)
	provideQuote := provideQuoteHandler.NewHandler(lifecycleSvc, log)
	acceptQuote := acceptQuoteHandler.NewHandler(lifecycleSvc, log)
	confirmReservation := confirmReservationHandler.NewHandler(lifecycleSvc, log)
	startService := startServiceHandler.NewHandler(lifecycleSvc, log)
	completeReservation := completeReservationHandler.NewHandler(lifecycleSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(lifecycleSvc, log)
	getGarageOfferings := getGarageOfferingsHandler.NewHandler(offeringsSvc, log)
	upsertOffering := upsertOfferingHandler.NewHandler(offeringsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Проверка доступности слота
	api.HandleFunc("/reservations/check-availability",
		checkAvailability.Handle).Methods(http.MethodPost)

	// Перечисление слотов дня
	api.HandleFunc("/reservations/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Каталог услуг гаража
	api.HandleFunc("/garages/{garageId}/offerings",
		getGarageOfferings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Брони (клиентские операции) ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations", getUserReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/accept-quote", acceptQuote.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// --- Управление гаражом (для владельцев) ---
	garage := protected.PathPrefix("").Subrouter()
	garage.Use(middleware.RequireRoles(domain.RoleGarageOwner, domain.RoleAdmin))

	garage.HandleFunc("/reservations/{reservationId}/provide-quote", provideQuote.Handle).Methods(http.MethodPatch)
	garage.HandleFunc("/reservations/{reservationId}/confirm", confirmReservation.Handle).Methods(http.MethodPatch)
	garage.HandleFunc("/reservations/{reservationId}/start", startService.Handle).Methods(http.MethodPatch)
	garage.HandleFunc("/reservations/{reservationId}/complete", completeReservation.Handle).Methods(http.MethodPatch)
	garage.HandleFunc("/garages/{garageId}/reservations", getGarageReservations.Handle).Methods(http.MethodGet)
	garage.HandleFunc("/garages/{garageId}/pending-quotes", getPendingQuotes.Handle).Methods(http.MethodGet)
	garage.HandleFunc("/garages/{garageId}/offerings/{serviceId}", upsertOffering.Handle).Methods(http.MethodPut)

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
