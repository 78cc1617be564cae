package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	checkoutBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/checkout_booking"
	createBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_booking"
	createLocationHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/create_location"
	deleteLocationHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/delete_location"
	getActiveSessionsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_active_sessions"
	getAnalyticsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_analytics"
	getAvailableSlotsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_booking"
	getBookingTicketHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_booking_ticket"
	getLocationHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_location"
	getProfileHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_profile"
	getRevenueReportHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_revenue_report"
	getUserBookingsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/get_user_bookings"
	listLocationsHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/list_locations"
	loginUserHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/login_user"
	logoutUserHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/logout_user"
	registerUserHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/register_user"
	updateLocationHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/update_location"
	updateProfileHandler "github.com/m04kA/SMC-ParkingService/internal/api/handlers/update_profile"

	"github.com/m04kA/SMC-ParkingService/internal/api/handlers"
	"github.com/m04kA/SMC-ParkingService/internal/api/middleware"
	"github.com/m04kA/SMC-ParkingService/internal/config"
	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/session"
	bookingRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/booking"
	locationRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/location"
	reportRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/report"
	slotRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/slot"
	userRepo "github.com/m04kA/SMC-ParkingService/internal/infra/storage/user"
	"github.com/m04kA/SMC-ParkingService/internal/scheduler"
	bookingsService "github.com/m04kA/SMC-ParkingService/internal/service/bookings"
	locationsService "github.com/m04kA/SMC-ParkingService/internal/service/locations"
	reportsService "github.com/m04kA/SMC-ParkingService/internal/service/reports"
	usersService "github.com/m04kA/SMC-ParkingService/internal/service/users"
	activateBookingsUC "github.com/m04kA/SMC-ParkingService/internal/usecase/activate_bookings"
	checkoutBookingUC "github.com/m04kA/SMC-ParkingService/internal/usecase/checkout_booking"
	createBookingUC "github.com/m04kA/SMC-ParkingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-ParkingService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ParkingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-ParkingService/pkg/logger"
	"github.com/m04kA/SMC-ParkingService/pkg/metrics"
	"github.com/m04kA/SMC-ParkingService/pkg/ratelimit"
	"github.com/m04kA/SMC-ParkingService/pkg/ticket"
	"github.com/m04kA/SMC-ParkingService/pkg/txmanager"
)

// Таймаут одного прогона активации бронирований
const activationTimeout = 30 * time.Second

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML config file")
	flag.Parse()

	// Загружаем конфигурацию
	cfg, err := config.Load(*configPath)
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

	log.Info("Starting SMC-ParkingService...")
	log.Info("Configuration loaded from %s", *configPath)

	reportsTZ, err := time.LoadLocation(cfg.Reports.Timezone)
	if err != nil {
		log.Fatal("Invalid reports timezone %q: %v", cfg.Reports.Timezone, err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Без метрик обёртка работает как обычный *sql.DB
	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	slotRepository := slotRepo.NewRepository(wrappedDB)
	locationRepository := locationRepo.NewRepository(wrappedDB)
	userRepository := userRepo.NewRepository(wrappedDB)
	reportRepository := reportRepo.NewRepository(wrappedDB)

	// Инфраструктура
	sessions := session.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.SessionTTL)*time.Minute)
	signer := ticket.NewSigner(cfg.Auth.TicketSecret)
	cookieCfg := handlers.CookieConfig{Name: cfg.Auth.CookieName, Secure: cfg.Auth.CookieSecure}

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, signer, cfg.Pricing.HourlyRate, log)
	locationSvc := locationsService.NewService(locationRepository, slotRepository, bookingRepository, txMgr, log)
	userSvc := usersService.NewService(userRepository, sessions, cfg.Auth.BcryptCost, cfg.Auth.MinPasswordLn, log)
	reportSvc := reportsService.NewService(reportRepository, txMgr, reportsTZ, cfg.Reports.MaxRangeDays, log)

	// Создаем администратора из конфигурации
	bootstrapCtx, cancelBootstrap := context.WithTimeout(context.Background(), 10*time.Second)
	if err := userSvc.EnsureAdmin(bootstrapCtx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		log.Fatal("Failed to bootstrap admin account: %v", err)
	}
	cancelBootstrap()

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		slotRepository,
		bookingRepository,
		txMgr,
		cfg.Pricing.HourlyRate,
		metricsCollector,
		log,
	)
	checkoutBookingUseCase := checkoutBookingUC.NewUseCase(
		bookingRepository,
		txMgr,
		cfg.Pricing.HourlyRate,
		metricsCollector,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		locationRepository,
		slotRepository,
		log,
	)
	activateBookingsUseCase := activateBookingsUC.NewUseCase(bookingRepository, metricsCollector, log)

	// Периодическая активация наступивших бронирований
	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched, err = scheduler.New(
			activateBookingsUseCase,
			time.Duration(cfg.Scheduler.ActivationPeriod)*time.Second,
			activationTimeout,
			log,
		)
		if err != nil {
			log.Fatal("Failed to create scheduler: %v", err)
		}
		sched.Start()
		log.Info("Activation sweep scheduled every %ds", cfg.Scheduler.ActivationPeriod)
	}

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	checkoutBooking := checkoutBookingHandler.NewHandler(checkoutBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getBookingTicket := getBookingTicketHandler.NewHandler(bookingSvc, log)
	getActiveSessions := getActiveSessionsHandler.NewHandler(bookingSvc, log)

	listLocations := listLocationsHandler.NewHandler(locationSvc, log)
	getLocation := getLocationHandler.NewHandler(locationSvc, log)
	createLocation := createLocationHandler.NewHandler(locationSvc, log)
	updateLocation := updateLocationHandler.NewHandler(locationSvc, log)
	deleteLocation := deleteLocationHandler.NewHandler(locationSvc, log)

	registerUser := registerUserHandler.NewHandler(userSvc, log)
	loginUser := loginUserHandler.NewHandler(userSvc, cookieCfg, log)
	logoutUser := logoutUserHandler.NewHandler(cookieCfg, log)
	getProfile := getProfileHandler.NewHandler(userSvc, log)
	updateProfile := updateProfileHandler.NewHandler(userSvc, log)

	getRevenueReport := getRevenueReportHandler.NewHandler(reportSvc, log)
	getAnalytics := getAnalyticsHandler.NewHandler(reportSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID, middleware.Recovery(log), middleware.Logging(log))

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Ограничение частоты запросов на все API маршруты
	if cfg.RateLimit.Enabled {
		limiter := ratelimit.New(ratelimit.Config{
			Limit:      cfg.RateLimit.Limit,
			Interval:   time.Duration(cfg.RateLimit.Interval) * time.Second,
			MaxClients: cfg.RateLimit.MaxClients,
		})
		api.Use(middleware.RateLimit(limiter, metricsCollector, cfg.RateLimit.TrustProxy, log))
		log.Info("Rate limit enabled: %d requests per %ds, max %d clients",
			cfg.RateLimit.Limit, cfg.RateLimit.Interval, cfg.RateLimit.MaxClients)
	}

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/auth/register", registerUser.Handle).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", loginUser.Handle).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", logoutUser.Handle).Methods(http.MethodPost)

	api.HandleFunc("/locations", listLocations.Handle).Methods(http.MethodGet)
	api.HandleFunc("/locations/{locationId}", getLocation.Handle).Methods(http.MethodGet)
	api.HandleFunc("/locations/{locationId}/availability", getAvailableSlots.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (cookie сессии или Authorization: Bearer)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(sessions, cfg.Auth.CookieName, log))

	// --- Профиль ---
	protected.HandleFunc("/me", getProfile.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/me", updateProfile.Handle).Methods(http.MethodPut)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}", checkoutBooking.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/bookings/{bookingId}/ticket", getBookingTicket.Handle).Methods(http.MethodGet)

	// ============================================================
	// ADMIN ROUTES (роль ADMIN)
	// ============================================================

	admin := protected.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireRole(domain.RoleAdmin, log))

	admin.HandleFunc("/locations", createLocation.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/locations/{locationId}", updateLocation.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/locations/{locationId}", deleteLocation.Handle).Methods(http.MethodDelete)
	admin.HandleFunc("/sessions", getActiveSessions.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/reports/revenue", getRevenueReport.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/analytics", getAnalytics.Handle).Methods(http.MethodGet)

	// CORS для панели администратора
	var handler http.Handler = r
	if len(cfg.CORS.AllowedOrigins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins:   cfg.CORS.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
			AllowedHeaders:   []string{"Content-Type", "Authorization", middleware.RequestIDHeader},
			ExposedHeaders:   []string{middleware.RequestIDHeader},
			AllowCredentials: true,
		}).Handler(r)
		log.Info("CORS enabled for origins %v", cfg.CORS.AllowedOrigins)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
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

	if sched != nil {
		if err := sched.Stop(); err != nil {
			log.Error("Failed to stop scheduler: %v", err)
		}
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
