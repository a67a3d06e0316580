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

	blockDateHandler "github.com/avoevodin/hall-booking-service/internal/api/handlers/block_date"
	cancelBookingHandler "github.com/avoevodin/hall-booking-service/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/avoevodin/hall-booking-service/internal/api/handlers/check_availability"
	confirmBookingHandler "github.com/avoevodin/hall-booking-service/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/avoevodin/hall-booking-service/internal/api/handlers/create_booking"
	getBookingHandler "github.com/avoevodin/hall-booking-service/internal/api/handlers/get_booking"
	getCalendarHandler "github.com/avoevodin/hall-booking-service/internal/api/handlers/get_calendar"
	getPackagesHandler "github.com/avoevodin/hall-booking-service/internal/api/handlers/get_packages"
	getSlotsHandler "github.com/avoevodin/hall-booking-service/internal/api/handlers/get_slots"
	listBookingsHandler "github.com/avoevodin/hall-booking-service/internal/api/handlers/list_bookings"
	updateBookingHandler "github.com/avoevodin/hall-booking-service/internal/api/handlers/update_booking"
	"github.com/avoevodin/hall-booking-service/internal/api/middleware"
	"github.com/avoevodin/hall-booking-service/internal/config"
	bookingRepo "github.com/avoevodin/hall-booking-service/internal/infra/storage/booking"
	eventRepo "github.com/avoevodin/hall-booking-service/internal/infra/storage/event"
	pkgcatalogRepo "github.com/avoevodin/hall-booking-service/internal/infra/storage/pkgcatalog"
	"github.com/avoevodin/hall-booking-service/internal/jobs"
	bookingsService "github.com/avoevodin/hall-booking-service/internal/service/bookings"
	catalogService "github.com/avoevodin/hall-booking-service/internal/service/catalog"
	eventsService "github.com/avoevodin/hall-booking-service/internal/service/events"
	checkAvailabilityUC "github.com/avoevodin/hall-booking-service/internal/usecase/check_availability"
	createBookingUC "github.com/avoevodin/hall-booking-service/internal/usecase/create_booking"
	getCalendarUC "github.com/avoevodin/hall-booking-service/internal/usecase/get_calendar"
	"github.com/avoevodin/hall-booking-service/pkg/dbmetrics"
	"github.com/avoevodin/hall-booking-service/pkg/logger"
	"github.com/avoevodin/hall-booking-service/pkg/metrics"
	"github.com/avoevodin/hall-booking-service/pkg/simpletxmanager"
	"github.com/avoevodin/hall-booking-service/pkg/txmanager"
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

	log.Info("Starting hall-booking-service...")
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
		bookingRepository *bookingRepo.Repository
		eventRepository   *eventRepo.Repository
		packageRepository *pkgcatalogRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases и сервисах)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		eventRepository = eventRepo.NewRepository(wrappedDB)
		packageRepository = pkgcatalogRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		eventRepository = eventRepo.NewRepository(db)
		packageRepository = pkgcatalogRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, eventRepository, txMgr, log)
	eventSvc := eventsService.NewService(eventRepository, log)
	catalogSvc := catalogService.NewService(packageRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		eventRepository,
		packageRepository,
		txMgr,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(bookingRepository, eventRepository, log)
	getCalendarUseCase := getCalendarUC.NewUseCase(bookingRepository, eventRepository, log)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	createBookingAdmin := createBookingHandler.NewAdminHandler(createBookingUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	getCalendar := getCalendarHandler.NewHandler(getCalendarUseCase, log)
	getCalendarAdmin := getCalendarHandler.NewAdminHandler(getCalendarUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBooking := updateBookingHandler.NewHandler(bookingSvc, log)
	blockDate := blockDateHandler.NewHandler(eventSvc, log)
	getPackages := getPackagesHandler.NewHandler(catalogSvc, log)
	getSlots := getSlotsHandler.NewHandler(log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Создание заявки на бронирование (status = pending)
	api.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Статус заявки по публичному коду
	api.HandleFunc("/bookings/{reference}", getBooking.HandleByReference).Methods(http.MethodGet)

	// Предварительная проверка доступности интервала
	api.HandleFunc("/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// Клиентский календарь (available/partial/full)
	api.HandleFunc("/calendar/{year:[0-9]+}/{month:[0-9]+}", getCalendar.Handle).Methods(http.MethodGet)

	// Каталог пакетов
	api.HandleFunc("/packages", getPackages.Handle).Methods(http.MethodGet)

	// Словарь именованных слотов для формы бронирования
	api.HandleFunc("/slots", getSlots.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (X-Admin-Token)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(cfg.Auth.AdminToken, log))

	// Админский календарь (available/partial/booked/blocked + слоты)
	admin.HandleFunc("/calendar/{year:[0-9]+}/{month:[0-9]+}", getCalendarAdmin.Handle).Methods(http.MethodGet)

	// Бронирования
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings", createBookingAdmin.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{id:[0-9]+}", getBooking.HandleByID).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{id:[0-9]+}", updateBooking.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/bookings/{id:[0-9]+}/confirm", confirmBooking.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bookings/{id:[0-9]+}/cancel", cancelBooking.Handle).Methods(http.MethodPost)

	// Блокировки дат
	admin.HandleFunc("/blocked-dates", blockDate.HandleList).Methods(http.MethodGet)
	admin.HandleFunc("/blocked-dates", blockDate.HandleBlock).Methods(http.MethodPost)
	admin.HandleFunc("/blocked-dates/{id:[0-9]+}", blockDate.HandleUnblock).Methods(http.MethodDelete)

	// Фоновая задача завершения прошедших бронирований
	completer := jobs.NewCompleter(bookingRepository, cfg.Jobs.CompleterSchedule, log)
	if err := completer.Start(); err != nil {
		log.Fatal("Failed to start completer job: %v", err)
	}

	// Запускаем HTTP сервер
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.HTTPPort),
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on :%d", cfg.Server.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error: %v", err)
		}
	}()

	// Ждём сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")

	completer.Stop()
	close(stopMetricsCh)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error: %v", err)
	}

	log.Info("Server stopped")
}
