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
	"github.com/redis/go-redis/v9"

	assignPersonnelHandler "github.com/m04kA/SMC-CarwashBooking/internal/api/handlers/assign_personnel"
	cancelBookingHandler "github.com/m04kA/SMC-CarwashBooking/internal/api/handlers/cancel_booking"
	createBookingHandler "github.com/m04kA/SMC-CarwashBooking/internal/api/handlers/create_booking"
	decideRefundHandler "github.com/m04kA/SMC-CarwashBooking/internal/api/handlers/decide_refund"
	getBookingHandler "github.com/m04kA/SMC-CarwashBooking/internal/api/handlers/get_booking"
	getHistoryHandler "github.com/m04kA/SMC-CarwashBooking/internal/api/handlers/get_history"
	getOwnerRefundsHandler "github.com/m04kA/SMC-CarwashBooking/internal/api/handlers/get_owner_refunds"
	getPaymentsHandler "github.com/m04kA/SMC-CarwashBooking/internal/api/handlers/get_payments"
	getReasonHandler "github.com/m04kA/SMC-CarwashBooking/internal/api/handlers/get_reason"
	getShopBookingsHandler "github.com/m04kA/SMC-CarwashBooking/internal/api/handlers/get_shop_bookings"
	getShopPersonnelHandler "github.com/m04kA/SMC-CarwashBooking/internal/api/handlers/get_shop_personnel"
	getUserBookingsHandler "github.com/m04kA/SMC-CarwashBooking/internal/api/handlers/get_user_bookings"
	payBalanceHandler "github.com/m04kA/SMC-CarwashBooking/internal/api/handlers/pay_balance"
	recordPaymentHandler "github.com/m04kA/SMC-CarwashBooking/internal/api/handlers/record_payment"
	requestRefundHandler "github.com/m04kA/SMC-CarwashBooking/internal/api/handlers/request_refund"
	rescheduleBookingHandler "github.com/m04kA/SMC-CarwashBooking/internal/api/handlers/reschedule_booking"
	updateStatusHandler "github.com/m04kA/SMC-CarwashBooking/internal/api/handlers/update_status"
	"github.com/m04kA/SMC-CarwashBooking/internal/api/middleware"
	"github.com/m04kA/SMC-CarwashBooking/internal/config"
	"github.com/m04kA/SMC-CarwashBooking/internal/infra/cache/idempotency"
	bookingRepo "github.com/m04kA/SMC-CarwashBooking/internal/infra/storage/booking"
	historyRepo "github.com/m04kA/SMC-CarwashBooking/internal/infra/storage/history"
	paymentRepo "github.com/m04kA/SMC-CarwashBooking/internal/infra/storage/payment"
	personnelRepo "github.com/m04kA/SMC-CarwashBooking/internal/infra/storage/personnel"
	refundRepo "github.com/m04kA/SMC-CarwashBooking/internal/infra/storage/refund"
	shopRepo "github.com/m04kA/SMC-CarwashBooking/internal/infra/storage/shop"
	"github.com/m04kA/SMC-CarwashBooking/internal/integrations/mailer"
	"github.com/m04kA/SMC-CarwashBooking/internal/jobs/expire_pending"
	"github.com/m04kA/SMC-CarwashBooking/internal/notifications"
	bookingsService "github.com/m04kA/SMC-CarwashBooking/internal/service/bookings"
	assignPersonnelUC "github.com/m04kA/SMC-CarwashBooking/internal/usecase/assign_personnel"
	createBookingUC "github.com/m04kA/SMC-CarwashBooking/internal/usecase/create_booking"
	decideRefundUC "github.com/m04kA/SMC-CarwashBooking/internal/usecase/decide_refund"
	recordPaymentUC "github.com/m04kA/SMC-CarwashBooking/internal/usecase/record_payment"
	requestRefundUC "github.com/m04kA/SMC-CarwashBooking/internal/usecase/request_refund"
	rescheduleBookingUC "github.com/m04kA/SMC-CarwashBooking/internal/usecase/reschedule_booking"
	updateStatusUC "github.com/m04kA/SMC-CarwashBooking/internal/usecase/update_status"
	"github.com/m04kA/SMC-CarwashBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-CarwashBooking/pkg/logger"
	"github.com/m04kA/SMC-CarwashBooking/pkg/metrics"
	"github.com/m04kA/SMC-CarwashBooking/pkg/txmanager"
)

func main() {
	configPath := os.Getenv("CARWASH_CONFIG")
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

	log.Info("Starting SMC-CarwashBooking...")
	log.Info("Configuration loaded from %s", configPath)

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

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Репозитории работают через обёртку с метриками или напрямую через *sql.DB
	var (
		executor dbmetrics.DBExecutor = db
		beginner txmanager.TxBeginner = txmanager.SQLBeginner{DB: db}
	)
	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		executor = wrappedDB
		beginner = wrappedDB
		log.Info("Database metrics collection started")
	}
	txMgr := txmanager.NewTransactionManager(beginner)

	bookingRepository := bookingRepo.NewRepository(executor)
	historyRepository := historyRepo.NewRepository(executor)
	paymentRepository := paymentRepo.NewRepository(executor)
	refundRepository := refundRepo.NewRepository(executor)
	personnelRepository := personnelRepo.NewRepository(executor)
	shopRepository := shopRepo.NewRepository(executor)

	// Ключи идемпотентности платежей
	var guard recordPaymentUC.IdempotencyGuard = idempotency.Noop{}
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}
		guard = idempotency.NewGuard(redisClient, time.Duration(cfg.Redis.IdempotencyTTL)*time.Second)
		log.Info("Payment idempotency enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.IdempotencyTTL)
	} else {
		log.Warn("Redis disabled: Idempotency-Key header is ignored")
	}

	// Уведомления: очередь, консьюмер и почтовый клиент
	wmLogger := notifications.NewWatermillLogger(log.Zap())
	transportCfg := notifications.TransportConfig{
		Transport:    cfg.Notifications.Transport,
		AMQPURL:      cfg.Notifications.AMQPURL,
		Topic:        cfg.Notifications.Topic,
		PoisonTopic:  cfg.Notifications.PoisonTopic,
		MaxRetries:   cfg.Notifications.MaxRetries,
		RetryBackoff: time.Duration(cfg.Notifications.RetryBackoff) * time.Millisecond,
	}

	pubSub, err := notifications.NewPubSub(transportCfg, wmLogger)
	if err != nil {
		log.Fatal("Failed to create notifications transport: %v", err)
	}

	mailClient := mailer.NewClient(mailer.Config{
		URL:         cfg.Mailer.URL,
		APIKey:      cfg.Mailer.APIKey,
		From:        cfg.Mailer.From,
		Timeout:     time.Duration(cfg.Mailer.Timeout) * time.Second,
		MaxFailures: cfg.Mailer.MaxFailures,
		OpenTimeout: time.Duration(cfg.Mailer.OpenTimeoutSecs) * time.Second,
	}, log)

	consumer := notifications.NewConsumer(bookingRepository, mailClient, metricsCollector, log)
	notificationRouter, err := notifications.NewRouter(transportCfg, pubSub, consumer, wmLogger)
	if err != nil {
		log.Fatal("Failed to create notifications router: %v", err)
	}

	routerCtx, stopRouter := context.WithCancel(context.Background())
	defer stopRouter()
	go func() {
		if err := notificationRouter.Run(routerCtx); err != nil {
			log.Error("Notifications router stopped: %v", err)
		}
	}()
	<-notificationRouter.Running()
	log.Info("Notifications router running (transport=%s, topic=%s)", transportCfg.Transport, transportCfg.Topic)

	dispatcher := notifications.NewDispatcher(pubSub.Publisher, cfg.Notifications.Topic, log)

	// Инициализируем сервисы и use cases
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		historyRepository,
		paymentRepository,
		shopRepository,
		personnelRepository,
		refundRepository,
		txMgr,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		historyRepository,
		shopRepository,
		personnelRepository,
		txMgr,
		log,
	)
	updateStatusUseCase := updateStatusUC.NewUseCase(
		bookingRepository,
		historyRepository,
		dispatcher,
		metricsCollector,
		txMgr,
		cfg.Booking.StrictTransitions,
		log,
	)
	assignPersonnelUseCase := assignPersonnelUC.NewUseCase(
		bookingRepository,
		shopRepository,
		personnelRepository,
		txMgr,
		log,
	)
	rescheduleUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository,
		personnelRepository,
		txMgr,
		log,
	)
	recordPaymentUseCase := recordPaymentUC.NewUseCase(
		bookingRepository,
		paymentRepository,
		guard,
		dispatcher,
		metricsCollector,
		txMgr,
		log,
	)
	requestRefundUseCase := requestRefundUC.NewUseCase(
		bookingRepository,
		shopRepository,
		refundRepository,
		txMgr,
		log,
	)
	decideRefundUseCase := decideRefundUC.NewUseCase(
		refundRepository,
		bookingRepository,
		historyRepository,
		dispatcher,
		metricsCollector,
		txMgr,
		log,
	)

	// Фоновая отмена просроченных Pending бронирований
	var scheduler *expire_pending.Scheduler
	if cfg.Jobs.ExpirePendingEnabled {
		job := expire_pending.NewJob(bookingRepository, updateStatusUseCase, cfg.Jobs.GraceDays, log)
		scheduler, err = expire_pending.NewScheduler(cfg.Jobs.ExpirePendingSpec, job, log)
		if err != nil {
			log.Fatal("Failed to schedule expire job: %v", err)
		}
		scheduler.Start()
		log.Info("Expire job scheduled (spec=%q, grace_days=%d)", cfg.Jobs.ExpirePendingSpec, cfg.Jobs.GraceDays)
	}

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateStatus := updateStatusHandler.NewHandler(updateStatusUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(updateStatusUseCase, log)
	assignPersonnel := assignPersonnelHandler.NewHandler(assignPersonnelUseCase, log)
	getHistory := getHistoryHandler.NewHandler(bookingSvc, log)
	getReason := getReasonHandler.NewHandler(bookingSvc, log)
	getPayments := getPaymentsHandler.NewHandler(bookingSvc, log)
	recordPayment := recordPaymentHandler.NewHandler(recordPaymentUseCase, log)
	payBalance := payBalanceHandler.NewHandler(recordPaymentUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleUseCase, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	getShopBookings := getShopBookingsHandler.NewHandler(bookingSvc, log)
	getShopPersonnel := getShopPersonnelHandler.NewHandler(bookingSvc, log)
	requestRefund := requestRefundHandler.NewHandler(requestRefundUseCase, log)
	decideRefund := decideRefundHandler.NewHandler(decideRefundUseCase, log)
	getOwnerRefunds := getOwnerRefundsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	api.HandleFunc("/bookings/reason/{appointmentId}", getReason.Handle).Methods(http.MethodGet)
	api.HandleFunc("/shops/{shopId}/personnel", getShopPersonnel.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Платежи ---
	protected.HandleFunc("/bookings/payment/{appointmentId}", getPayments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/payment/{appointmentId}", recordPayment.Handle).Methods(http.MethodPost, http.MethodPatch)
	protected.HandleFunc("/bookings/payment/{appointmentId}/balance", payBalance.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	// Маршруты с фиксированным сегментом регистрируются до /bookings/{appointmentId}
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/reschedule/{appointmentId}", rescheduleBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{appointmentId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{appointmentId}/status", updateStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{appointmentId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{appointmentId}/personnel", assignPersonnel.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{appointmentId}/history", getHistory.Handle).Methods(http.MethodGet)

	// --- Клиенты и мойки ---
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/shops/{shopId}/bookings", getShopBookings.Handle).Methods(http.MethodGet)

	// --- Возвраты ---
	protected.HandleFunc("/refunds", requestRefund.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/refunds", getOwnerRefunds.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/refunds/{id}/status", decideRefund.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

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

	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
		log.Info("Expire job stopped")
	}

	// Router дочитывает сообщения, уже взятые в обработку
	if err := notificationRouter.Close(); err != nil {
		log.Error("Failed to close notifications router: %v", err)
	}
	if err := pubSub.Close(); err != nil {
		log.Error("Failed to close notifications transport: %v", err)
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close redis client: %v", err)
		}
	}

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	log.Info("Server stopped gracefully")
}
