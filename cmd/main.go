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

	cancelBookingHandler "github.com/salonhub/SalonBookingService/internal/api/handlers/cancel_booking"
	completeBookingHandler "github.com/salonhub/SalonBookingService/internal/api/handlers/complete_booking"
	createBookingHandler "github.com/salonhub/SalonBookingService/internal/api/handlers/create_booking"
	createCouponHandler "github.com/salonhub/SalonBookingService/internal/api/handlers/create_coupon"
	getAvailableSlotsHandler "github.com/salonhub/SalonBookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/salonhub/SalonBookingService/internal/api/handlers/get_booking"
	getProfessionalScheduleHandler "github.com/salonhub/SalonBookingService/internal/api/handlers/get_professional_schedule"
	getSalonBookingsHandler "github.com/salonhub/SalonBookingService/internal/api/handlers/get_salon_bookings"
	getSalonCouponsHandler "github.com/salonhub/SalonBookingService/internal/api/handlers/get_salon_coupons"
	getUserBookingsHandler "github.com/salonhub/SalonBookingService/internal/api/handlers/get_user_bookings"
	getWorkSettingsHandler "github.com/salonhub/SalonBookingService/internal/api/handlers/get_work_settings"
	updateProfessionalScheduleHandler "github.com/salonhub/SalonBookingService/internal/api/handlers/update_professional_schedule"
	updateWorkSettingsHandler "github.com/salonhub/SalonBookingService/internal/api/handlers/update_work_settings"
	validateCouponHandler "github.com/salonhub/SalonBookingService/internal/api/handlers/validate_coupon"
	"github.com/salonhub/SalonBookingService/internal/api/middleware"
	"github.com/salonhub/SalonBookingService/internal/config"
	bookingRepo "github.com/salonhub/SalonBookingService/internal/infra/storage/booking"
	couponRepo "github.com/salonhub/SalonBookingService/internal/infra/storage/coupon"
	professionalRepo "github.com/salonhub/SalonBookingService/internal/infra/storage/professional"
	profileRepo "github.com/salonhub/SalonBookingService/internal/infra/storage/profile"
	servicesRepo "github.com/salonhub/SalonBookingService/internal/infra/storage/services"
	workconfigRepo "github.com/salonhub/SalonBookingService/internal/infra/storage/workconfig"
	bookingsService "github.com/salonhub/SalonBookingService/internal/service/bookings"
	couponsService "github.com/salonhub/SalonBookingService/internal/service/coupons"
	scheduleService "github.com/salonhub/SalonBookingService/internal/service/schedule"
	createBookingUC "github.com/salonhub/SalonBookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/salonhub/SalonBookingService/internal/usecase/get_available_slots"
	validateCouponUC "github.com/salonhub/SalonBookingService/internal/usecase/validate_coupon"
	"github.com/salonhub/SalonBookingService/pkg/dbmetrics"
	"github.com/salonhub/SalonBookingService/pkg/logger"
	"github.com/salonhub/SalonBookingService/pkg/metrics"
	"github.com/salonhub/SalonBookingService/pkg/simpletxmanager"
	"github.com/salonhub/SalonBookingService/pkg/txmanager"
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

	log.Info("Starting SalonBookingService...")
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
		bookingRepository      *bookingRepo.Repository
		workSettingsRepository *workconfigRepo.Repository
		professionalRepository *professionalRepo.Repository
		servicesRepository     *servicesRepo.Repository
		couponRepository       *couponRepo.Repository
		profileRepository      *profileRepo.Repository
	)

	// Интерфейс transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		workSettingsRepository = workconfigRepo.NewRepository(wrappedDB)
		professionalRepository = professionalRepo.NewRepository(wrappedDB)
		servicesRepository = servicesRepo.NewRepository(wrappedDB)
		couponRepository = couponRepo.NewRepository(wrappedDB)
		profileRepository = profileRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		workSettingsRepository = workconfigRepo.NewRepository(db)
		professionalRepository = professionalRepo.NewRepository(db)
		servicesRepository = servicesRepo.NewRepository(db)
		couponRepository = couponRepo.NewRepository(db)
		profileRepository = profileRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)
	scheduleSvc := scheduleService.NewService(workSettingsRepository, professionalRepository, log)
	couponSvc := couponsService.NewService(couponRepository, log)

	// Инициализируем use cases
	validateCouponUseCase := validateCouponUC.NewUseCase(couponRepository, log)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		workSettingsRepository,
		professionalRepository,
		servicesRepository,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		workSettingsRepository,
		professionalRepository,
		servicesRepository,
		couponRepository,
		profileRepository,
		validateCouponUseCase,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getSalonBookings := getSalonBookingsHandler.NewHandler(bookingSvc, log)
	validateCoupon := validateCouponHandler.NewHandler(validateCouponUseCase, log)
	createCoupon := createCouponHandler.NewHandler(couponSvc, log)
	getSalonCoupons := getSalonCouponsHandler.NewHandler(couponSvc, log)
	getWorkSettings := getWorkSettingsHandler.NewHandler(scheduleSvc, log)
	updateWorkSettings := updateWorkSettingsHandler.NewHandler(scheduleSvc, log)
	getProfessionalSchedule := getProfessionalScheduleHandler.NewHandler(scheduleSvc, log)
	updateProfessionalSchedule := updateProfessionalScheduleHandler.NewHandler(scheduleSvc, log)

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

	// Доступные слоты для записи
	api.HandleFunc("/salons/{salonId}/professionals/{professionalId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Настройки рабочего дня салона
	api.HandleFunc("/salons/{salonId}/work-settings",
		getWorkSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	// Создание бронирования
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)

	// Получение бронирования по ID
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)

	// Отмена бронирования
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)

	// История бронирований пользователя
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// Предварительная проверка промокода
	protected.HandleFunc("/salons/{salonId}/coupons/validate", validateCoupon.Handle).Methods(http.MethodPost)

	// --- Управление салоном ---
	// Список бронирований салона
	protected.HandleFunc("/salons/{salonId}/bookings", getSalonBookings.Handle).Methods(http.MethodGet)

	// Завершение бронирования
	protected.HandleFunc("/salons/{salonId}/bookings/{bookingId}/complete",
		completeBooking.Handle).Methods(http.MethodPatch)

	// Промокоды салона
	protected.HandleFunc("/salons/{salonId}/coupons", createCoupon.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/salons/{salonId}/coupons", getSalonCoupons.Handle).Methods(http.MethodGet)

	// Настройки рабочего дня салона
	protected.HandleFunc("/salons/{salonId}/work-settings", updateWorkSettings.Handle).Methods(http.MethodPut)

	// Персональное расписание мастера
	protected.HandleFunc("/salons/{salonId}/professionals/{professionalId}/schedule",
		getProfessionalSchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/salons/{salonId}/professionals/{professionalId}/schedule",
		updateProfessionalSchedule.Handle).Methods(http.MethodPut)

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
