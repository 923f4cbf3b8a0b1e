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

	cancelReservationHandler "github.com/agendahub/AGH-BookingService/internal/api/handlers/cancel_reservation"
	checkAvailabilityHandler "github.com/agendahub/AGH-BookingService/internal/api/handlers/check_availability"
	createCompanyHandler "github.com/agendahub/AGH-BookingService/internal/api/handlers/create_company"
	createNotificationHandler "github.com/agendahub/AGH-BookingService/internal/api/handlers/create_notification"
	createReservationHandler "github.com/agendahub/AGH-BookingService/internal/api/handlers/create_reservation"
	createScheduleWindowHandler "github.com/agendahub/AGH-BookingService/internal/api/handlers/create_schedule_window"
	createServiceHandler "github.com/agendahub/AGH-BookingService/internal/api/handlers/create_service"
	deleteClientHandler "github.com/agendahub/AGH-BookingService/internal/api/handlers/delete_client"
	deleteCompanyHandler "github.com/agendahub/AGH-BookingService/internal/api/handlers/delete_company"
	deleteScheduleWindowHandler "github.com/agendahub/AGH-BookingService/internal/api/handlers/delete_schedule_window"
	deleteServiceHandler "github.com/agendahub/AGH-BookingService/internal/api/handlers/delete_service"
	findScheduleOrphansHandler "github.com/agendahub/AGH-BookingService/internal/api/handlers/find_schedule_orphans"
	getClientNotificationsHandler "github.com/agendahub/AGH-BookingService/internal/api/handlers/get_client_notifications"
	getClientReservationsHandler "github.com/agendahub/AGH-BookingService/internal/api/handlers/get_client_reservations"
	getCompanyHandler "github.com/agendahub/AGH-BookingService/internal/api/handlers/get_company"
	getCompanyMetricsHandler "github.com/agendahub/AGH-BookingService/internal/api/handlers/get_company_metrics"
	getCompanyReservationsHandler "github.com/agendahub/AGH-BookingService/internal/api/handlers/get_company_reservations"
	getNotificationSettingsHandler "github.com/agendahub/AGH-BookingService/internal/api/handlers/get_notification_settings"
	getProprietorNotificationsHandler "github.com/agendahub/AGH-BookingService/internal/api/handlers/get_proprietor_notifications"
	getReservationHandler "github.com/agendahub/AGH-BookingService/internal/api/handlers/get_reservation"
	listScheduleWindowsHandler "github.com/agendahub/AGH-BookingService/internal/api/handlers/list_schedule_windows"
	listServicesHandler "github.com/agendahub/AGH-BookingService/internal/api/handlers/list_services"
	registerClientHandler "github.com/agendahub/AGH-BookingService/internal/api/handlers/register_client"
	updateCompanyHandler "github.com/agendahub/AGH-BookingService/internal/api/handlers/update_company"
	updateNotificationSettingsHandler "github.com/agendahub/AGH-BookingService/internal/api/handlers/update_notification_settings"
	updateReservationHandler "github.com/agendahub/AGH-BookingService/internal/api/handlers/update_reservation"
	"github.com/agendahub/AGH-BookingService/internal/api/middleware"
	"github.com/agendahub/AGH-BookingService/internal/config"
	"github.com/agendahub/AGH-BookingService/internal/domain"
	companyRepo "github.com/agendahub/AGH-BookingService/internal/infra/storage/company"
	notificationRepo "github.com/agendahub/AGH-BookingService/internal/infra/storage/notification"
	reservationRepo "github.com/agendahub/AGH-BookingService/internal/infra/storage/reservation"
	scheduleRepo "github.com/agendahub/AGH-BookingService/internal/infra/storage/schedule"
	mailGatewayClient "github.com/agendahub/AGH-BookingService/internal/integrations/mailgateway"
	"github.com/agendahub/AGH-BookingService/internal/scheduler"
	catalogService "github.com/agendahub/AGH-BookingService/internal/service/catalog"
	notificationsService "github.com/agendahub/AGH-BookingService/internal/service/notifications"
	reservationsService "github.com/agendahub/AGH-BookingService/internal/service/reservations"
	schedulesService "github.com/agendahub/AGH-BookingService/internal/service/schedules"
	checkAvailabilityUC "github.com/agendahub/AGH-BookingService/internal/usecase/check_availability"
	computeMetricsUC "github.com/agendahub/AGH-BookingService/internal/usecase/compute_metrics"
	createReservationUC "github.com/agendahub/AGH-BookingService/internal/usecase/create_reservation"
	processRemindersUC "github.com/agendahub/AGH-BookingService/internal/usecase/process_reminders"
	updateReservationUC "github.com/agendahub/AGH-BookingService/internal/usecase/update_reservation"
	"github.com/agendahub/AGH-BookingService/pkg/dbmetrics"
	"github.com/agendahub/AGH-BookingService/pkg/hasher"
	"github.com/agendahub/AGH-BookingService/pkg/logger"
	"github.com/agendahub/AGH-BookingService/pkg/metrics"
	"github.com/agendahub/AGH-BookingService/pkg/simpletxmanager"
	"github.com/agendahub/AGH-BookingService/pkg/txmanager"
	"github.com/agendahub/AGH-BookingService/pkg/types"
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

	log.Info("Starting AGH-BookingService...")
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

	// Инициализируем клиента почтового шлюза
	mailClient := mailGatewayClient.NewClient(
		cfg.MailGateway.URL,
		time.Duration(cfg.MailGateway.Timeout)*time.Second,
		log,
	)
	log.Info("Mail gateway client initialized (url=%s, timeout=%ds)",
		cfg.MailGateway.URL, cfg.MailGateway.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		companyRepository      *companyRepo.Repository
		scheduleRepository     *scheduleRepo.Repository
		reservationRepository  *reservationRepo.Repository
		notificationRepository *notificationRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		companyRepository = companyRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		notificationRepository = notificationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		companyRepository = companyRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		notificationRepository = notificationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	notificationSvc := notificationsService.NewService(
		notificationRepository,
		companyRepository,
		mailClient,
		log,
	)
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		companyRepository,
		notificationSvc,
		log,
	)
	scheduleSvc := schedulesService.NewService(
		scheduleRepository,
		companyRepository,
		log,
	)
	catalogSvc := catalogService.NewService(
		companyRepository,
		reservationSvc,
		scheduleSvc,
		hasher.New(0),
		log,
	)

	timeProvider := &createReservationUC.RealTimeProvider{}

	// Инициализируем use cases
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		companyRepository,
		scheduleRepository,
		reservationRepository,
		cfg.Booking.ServiceWindowFallback,
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		scheduleRepository,
		companyRepository,
		notificationSvc,
		txMgr,
		timeProvider,
		cfg.Booking.ServiceWindowFallback,
		domain.ReservationStatus(cfg.Booking.DefaultStatus),
		log,
	)

	updateReservationUseCase := updateReservationUC.NewUseCase(
		reservationRepository,
		scheduleRepository,
		companyRepository,
		txMgr,
		timeProvider,
		cfg.Booking.ServiceWindowFallback,
		log,
	)

	computeMetricsUseCase := computeMetricsUC.NewUseCase(
		reservationRepository,
		companyRepository,
		timeProvider,
		log,
	)

	processRemindersUseCase := processRemindersUC.NewUseCase(
		reservationRepository,
		notificationRepository,
		notificationSvc,
		txMgr,
		timeProvider,
		cfg.Reminders.LeadHours,
		log,
	)

	// Запускаем планировщик напоминаний
	if cfg.Reminders.Enabled {
		reminderScheduler := scheduler.New(
			processRemindersUseCase,
			types.TimeString(cfg.Reminders.SendTime),
			log,
		)
		reminderScheduler.Start()
		defer reminderScheduler.Stop()
		log.Info("Reminder scheduler started (send_time=%s, lead_hours=%d)",
			cfg.Reminders.SendTime, cfg.Reminders.LeadHours)
	}

	// Инициализируем handlers
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	updateReservation := updateReservationHandler.NewHandler(updateReservationUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	getClientReservations := getClientReservationsHandler.NewHandler(reservationSvc, log)
	getCompanyReservations := getCompanyReservationsHandler.NewHandler(reservationSvc, log)
	createScheduleWindow := createScheduleWindowHandler.NewHandler(scheduleSvc, log)
	listScheduleWindows := listScheduleWindowsHandler.NewHandler(scheduleSvc, log)
	deleteScheduleWindow := deleteScheduleWindowHandler.NewHandler(scheduleSvc, log)
	findScheduleOrphans := findScheduleOrphansHandler.NewHandler(scheduleSvc, log)
	getCompanyMetrics := getCompanyMetricsHandler.NewHandler(computeMetricsUseCase, log)
	createNotification := createNotificationHandler.NewHandler(notificationSvc, log)
	getClientNotifications := getClientNotificationsHandler.NewHandler(notificationSvc, log)
	getProprietorNotifications := getProprietorNotificationsHandler.NewHandler(notificationSvc, log)
	getNotificationSettings := getNotificationSettingsHandler.NewHandler(notificationSvc, log)
	updateNotificationSettings := updateNotificationSettingsHandler.NewHandler(notificationSvc, log)
	registerClient := registerClientHandler.NewHandler(catalogSvc, log)
	deleteClient := deleteClientHandler.NewHandler(catalogSvc, log)
	createCompany := createCompanyHandler.NewHandler(catalogSvc, log)
	getCompany := getCompanyHandler.NewHandler(catalogSvc, log)
	updateCompany := updateCompanyHandler.NewHandler(catalogSvc, log)
	deleteCompany := deleteCompanyHandler.NewHandler(catalogSvc, log)
	createService := createServiceHandler.NewHandler(catalogSvc, log)
	listServices := listServicesHandler.NewHandler(catalogSvc, log)
	deleteService := deleteServiceHandler.NewHandler(catalogSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

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

	// Классификация слота (доступен / вне часов / занято / нет услуги)
	api.HandleFunc("/companies/{companyId}/availability",
		checkAvailability.Handle).Methods(http.MethodGet)

	// Рабочие окна компании
	api.HandleFunc("/companies/{companyId}/schedule-windows",
		listScheduleWindows.Handle).Methods(http.MethodGet)

	// Настройки напоминаний компании
	api.HandleFunc("/companies/{companyId}/notification-settings",
		getNotificationSettings.Handle).Methods(http.MethodGet)

	// Каталог: регистрация, карточка компании, услуги
	api.HandleFunc("/clients", registerClient.Handle).Methods(http.MethodPost)
	api.HandleFunc("/companies/{companyId}", getCompany.Handle).Methods(http.MethodGet)
	api.HandleFunc("/companies/{companyId}/services", listServices.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", updateReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/clients/{clientId}/reservations", getClientReservations.Handle).Methods(http.MethodGet)

	// --- Каталог (для владельцев) ---
	protected.HandleFunc("/companies", createCompany.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/companies/{companyId}", updateCompany.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/companies/{companyId}", deleteCompany.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/companies/{companyId}/services", createService.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/services/{serviceId}", deleteService.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/clients/{clientId}", deleteClient.Handle).Methods(http.MethodDelete)

	// --- Управление компанией (для владельцев) ---
	protected.HandleFunc("/companies/{companyId}/reservations", getCompanyReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/companies/{companyId}/schedule-windows", createScheduleWindow.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/schedule-windows/{windowId}", deleteScheduleWindow.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/companies/{companyId}/metrics", getCompanyMetrics.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/companies/{companyId}/notification-settings", updateNotificationSettings.Handle).Methods(http.MethodPut)

	// --- Уведомления ---
	protected.HandleFunc("/notifications", createNotification.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/clients/{clientId}/notifications", getClientNotifications.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/proprietors/{proprietorId}/notifications", getProprietorNotifications.Handle).Methods(http.MethodGet)

	// --- Админские операции ---
	protected.HandleFunc("/admin/schedule-orphans", findScheduleOrphans.Handle).Methods(http.MethodGet)

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
