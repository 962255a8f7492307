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

	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	cancelBookingHandler "github.com/m04kA/SMC-SpaceBooking/internal/api/handlers/cancel_booking"
	confirmBookingHandler "github.com/m04kA/SMC-SpaceBooking/internal/api/handlers/confirm_booking"
	createBookingHandler "github.com/m04kA/SMC-SpaceBooking/internal/api/handlers/create_booking"
	getAvailabilityOverviewHandler "github.com/m04kA/SMC-SpaceBooking/internal/api/handlers/get_availability_overview"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SpaceBooking/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SpaceBooking/internal/api/handlers/get_booking"
	getUserBookingsHandler "github.com/m04kA/SMC-SpaceBooking/internal/api/handlers/get_user_bookings"
	"github.com/m04kA/SMC-SpaceBooking/internal/api/middleware"
	"github.com/m04kA/SMC-SpaceBooking/internal/config"
	paymentConsumer "github.com/m04kA/SMC-SpaceBooking/internal/consumer/payment"
	"github.com/m04kA/SMC-SpaceBooking/internal/domain"
	"github.com/m04kA/SMC-SpaceBooking/internal/infra/publisher"
	bookingRepo "github.com/m04kA/SMC-SpaceBooking/internal/infra/storage/booking"
	calendarRepo "github.com/m04kA/SMC-SpaceBooking/internal/infra/storage/calendar"
	calendarMongoRepo "github.com/m04kA/SMC-SpaceBooking/internal/infra/storage/calendar_mongo"
	eventRepo "github.com/m04kA/SMC-SpaceBooking/internal/infra/storage/event"
	"github.com/m04kA/SMC-SpaceBooking/internal/infra/storage/memory"
	spaceRepo "github.com/m04kA/SMC-SpaceBooking/internal/infra/storage/space"
	spaceServiceClient "github.com/m04kA/SMC-SpaceBooking/internal/integrations/spaceservice"
	bookingsService "github.com/m04kA/SMC-SpaceBooking/internal/service/bookings"
	calendarService "github.com/m04kA/SMC-SpaceBooking/internal/service/calendar"
	occupancyService "github.com/m04kA/SMC-SpaceBooking/internal/service/occupancy"
	createBookingUC "github.com/m04kA/SMC-SpaceBooking/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SpaceBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SpaceBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-SpaceBooking/pkg/kafka"
	"github.com/m04kA/SMC-SpaceBooking/pkg/logger"
	"github.com/m04kA/SMC-SpaceBooking/pkg/metrics"
	"github.com/m04kA/SMC-SpaceBooking/pkg/rabbitmq"
	"github.com/m04kA/SMC-SpaceBooking/pkg/txmanager"
)

// Хранилище бронирований: PostgreSQL или in-memory
type bookingStorage interface {
	createBookingUC.BookingRepository
	occupancyService.BookingRepository
	bookingsService.BookingRepository
}

// Менеджер транзакций со всеми уровнями изоляции, которые используют usecases и сервисы
type transactionManager interface {
	createBookingUC.TransactionManager
	getAvailableSlotsUC.TransactionManager
	bookingsService.TransactionManager
}

// demoSeedDays количество дней с расписанием для драйвера memory
const demoSeedDays = 30

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

	log.Info("Starting SMC-SpaceBooking...")
	log.Info("Configuration loaded (storage=%s, spaces=%s, calendar=%s)",
		cfg.Storage.Driver, cfg.Spaces.Source, cfg.Calendar.Driver)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Трейсинг AWS X-Ray (если включен)
	if cfg.Tracing.Enabled {
		// Запросы из consumer выполняются вне сегмента HTTP
		os.Setenv("AWS_XRAY_CONTEXT_MISSING", "LOG_ERROR")
		if err := xray.Configure(xray.Config{DaemonAddr: cfg.Tracing.DaemonAddr}); err != nil {
			log.Fatal("Failed to configure X-Ray: %v", err)
		}
		log.Info("X-Ray tracing enabled (daemon=%s)", cfg.Tracing.DaemonAddr)
	}

	// ============================================================
	// STORAGE
	// ============================================================

	var (
		bookings  bookingStorage
		events    bookingsService.EventRepository
		txMgr     transactionManager
		spaces    createBookingUC.SpaceProvider
		schedules calendarService.Repository
		wrappedDB *dbmetrics.DB
		memStore  *memory.Store
	)

	needsPostgres := cfg.Storage.Driver == config.DriverPostgres ||
		cfg.Spaces.Source == config.DriverPostgres ||
		cfg.Calendar.Driver == config.DriverPostgres

	if needsPostgres {
		db, err := openDatabase(cfg)
		if err != nil {
			log.Fatal("Failed to connect to database: %v", err)
		}
		defer db.Close()

		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		if cfg.Metrics.Enabled {
			wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
			log.Info("Database metrics collection started")
		} else {
			wrappedDB = dbmetrics.Wrap(db, nil)
		}
	}

	needsMemory := cfg.Storage.Driver == config.DriverMemory ||
		cfg.Spaces.Source == config.DriverMemory ||
		cfg.Calendar.Driver == config.DriverMemory

	if needsMemory {
		memStore = memory.NewStore()
		memStore.SeedDemo(domain.DateOnly(time.Now().UTC()), demoSeedDays)
		log.Warn("In-memory storage enabled with demo data, state is lost on restart")
	}

	switch cfg.Storage.Driver {
	case config.DriverMemory:
		bookings = memStore.Bookings()
		events = memStore.Events()
		txMgr = memStore.TxManager()
	default:
		bookings = bookingRepo.NewRepository(wrappedDB).
			WithLockTimeout(time.Duration(cfg.Booking.LockTimeoutMs) * time.Millisecond)
		events = eventRepo.NewRepository(wrappedDB)

		txOpts := []txmanager.Option{
			txmanager.WithMaxRetries(cfg.Booking.MaxTxRetries),
			txmanager.WithBaseBackoff(cfg.Booking.RetryBackoff()),
		}
		if metricsCollector != nil {
			txOpts = append(txOpts, txmanager.WithMetrics(metricsCollector))
		}
		txMgr = txmanager.NewTransactionManager(wrappedDB, txOpts...)
	}

	switch cfg.Spaces.Source {
	case config.SourceHTTP:
		spaces = spaceServiceClient.NewClient(
			cfg.Spaces.URL,
			time.Duration(cfg.Spaces.Timeout)*time.Second,
			log,
		)
		log.Info("Space lookup via SpaceService (url=%s timeout=%ds)", cfg.Spaces.URL, cfg.Spaces.Timeout)
	case config.DriverMemory:
		spaces = memStore.Spaces()
	default:
		spaces = spaceRepo.NewRepository(wrappedDB)
	}

	switch cfg.Calendar.Driver {
	case config.DriverMongo:
		mongoRepo, disconnect, err := openMongoCalendar(ctx, cfg)
		if err != nil {
			log.Fatal("Failed to connect to MongoDB: %v", err)
		}
		defer disconnect()

		schedules = mongoRepo
		log.Info("Calendar stored in MongoDB (db=%s, collection=%s)", cfg.Mongo.Database, cfg.Mongo.Collection)
	case config.DriverMemory:
		schedules = memStore.Calendar()
	default:
		schedules = calendarRepo.NewRepository(wrappedDB)
	}

	// ============================================================
	// EVENTS
	// ============================================================

	var eventPublisher bookingsService.EventPublisher = publisher.NoopPublisher{}

	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(kafka.Config{
			Brokers:      cfg.Kafka.Brokers,
			Topic:        cfg.Kafka.Topic,
			DLQTopic:     cfg.Kafka.DLQTopic,
			Compression:  cfg.Kafka.Compression,
			RequiredAcks: cfg.Kafka.RequiredAcks,
			MaxAttempts:  cfg.Kafka.MaxAttempts,
			BatchTimeout: time.Duration(cfg.Kafka.BatchTimeoutMs) * time.Millisecond,
		})
		if err != nil {
			log.Fatal("Failed to create Kafka producer: %v", err)
		}
		defer producer.Close()

		var publisherMetrics publisher.MetricsCollector
		if metricsCollector != nil {
			publisherMetrics = metricsCollector
		}
		eventPublisher = publisher.NewKafkaPublisher(
			producer,
			time.Duration(cfg.Kafka.PublishTimeout)*time.Second,
			publisherMetrics,
		)
		log.Info("Booking events published to Kafka (topic=%s)", cfg.Kafka.Topic)
	}

	// ============================================================
	// SERVICES & USE CASES
	// ============================================================

	calendarSvc := calendarService.NewService(schedules, log)
	occupancySvc := occupancyService.NewService(bookings)
	bookingSvc := bookingsService.NewService(
		bookings,
		events,
		txMgr,
		eventPublisher,
		log,
	)

	var bookingMetrics createBookingUC.MetricsCollector
	if metricsCollector != nil {
		bookingMetrics = metricsCollector
	}

	createBookingUseCase := createBookingUC.NewUseCase(
		bookings,
		spaces,
		calendarSvc,
		occupancySvc,
		txMgr,
		eventPublisher,
		bookingMetrics,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		spaces,
		calendarSvc,
		occupancySvc,
		txMgr,
		log,
	)

	// Потребитель событий оплаты (если включен)
	if cfg.RabbitMQ.Enabled {
		source, err := rabbitmq.NewConsumer(
			cfg.RabbitMQ.URL,
			cfg.RabbitMQ.Exchange,
			cfg.RabbitMQ.Queue,
			[]string{cfg.RabbitMQ.RoutingKey},
			cfg.RabbitMQ.Prefetch,
		)
		if err != nil {
			log.Fatal("Failed to connect to RabbitMQ: %v", err)
		}
		defer source.Close()

		consumer := paymentConsumer.NewConsumer(bookingSvc, source, log)
		go func() {
			if err := consumer.Run(ctx); err != nil {
				log.Error("Payment consumer stopped with error: %v", err)
			}
		}()
		log.Info("Payment consumer started (exchange=%s, queue=%s)", cfg.RabbitMQ.Exchange, cfg.RabbitMQ.Queue)
	}

	// ============================================================
	// HTTP
	// ============================================================

	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailabilityOverview := getAvailabilityOverviewHandler.NewHandler(
		calendarSvc,
		cfg.Booking.OverviewDays,
		cfg.Booking.MaxOverviewDays,
		log,
	)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	confirmBooking := confirmBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)

	r := mux.NewRouter()

	if cfg.Tracing.Enabled {
		r.Use(middleware.Tracing(cfg.Tracing.ServiceName))
	}

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные слоты пространства на дату
	api.HandleFunc("/spaces/{spaceId}/slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Обзор доступности на несколько дней
	api.HandleFunc("/spaces/{spaceId}/availability", getAvailabilityOverview.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// ============================================================
	// INTERNAL ROUTES (платёжный сервис внутри кластера)
	// ============================================================

	internal := r.PathPrefix("/internal").Subrouter()
	internal.HandleFunc("/bookings/{bookingId}/confirm", confirmBooking.Handle).Methods(http.MethodPost)

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
	<-ctx.Done()

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

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

// openDatabase открывает пул соединений PostgreSQL
// При включенном трейсинге драйвер оборачивается X-Ray
func openDatabase(cfg *config.Config) (*sql.DB, error) {
	var (
		db  *sql.DB
		err error
	)

	if cfg.Tracing.Enabled {
		db, err = xray.SQLContext("postgres", cfg.Database.DSN())
	} else {
		db, err = sql.Open("postgres", cfg.Database.DSN())
	}
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// openMongoCalendar подключается к MongoDB и создаёт индексы коллекции расписаний
func openMongoCalendar(ctx context.Context, cfg *config.Config) (*calendarMongoRepo.Repository, func(), error) {
	timeout := time.Duration(cfg.Mongo.Timeout) * time.Second

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.Mongo.URI))
	if err != nil {
		return nil, nil, err
	}

	disconnect := func() {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_ = client.Disconnect(ctx)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		disconnect()
		return nil, nil, err
	}

	repo := calendarMongoRepo.NewRepository(client.Database(cfg.Mongo.Database), cfg.Mongo.Collection, timeout)
	if err := repo.EnsureIndexes(connectCtx); err != nil {
		disconnect()
		return nil, nil, err
	}

	return repo, disconnect, nil
}
