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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	checkDateHandler "github.com/m04kA/SMC-TourAvailability/internal/api/handlers/check_date"
	findNextAvailableDateHandler "github.com/m04kA/SMC-TourAvailability/internal/api/handlers/find_next_available_date"
	getCalendarHandler "github.com/m04kA/SMC-TourAvailability/internal/api/handlers/get_calendar"
	healthHandler "github.com/m04kA/SMC-TourAvailability/internal/api/handlers/health"
	listBookableSlotsHandler "github.com/m04kA/SMC-TourAvailability/internal/api/handlers/list_bookable_slots"
	"github.com/m04kA/SMC-TourAvailability/internal/api/middleware"
	"github.com/m04kA/SMC-TourAvailability/internal/availability/cache"
	"github.com/m04kA/SMC-TourAvailability/internal/config"
	bookingRepo "github.com/m04kA/SMC-TourAvailability/internal/infra/storage/booking"
	tourRepo "github.com/m04kA/SMC-TourAvailability/internal/infra/storage/tour"
	"github.com/m04kA/SMC-TourAvailability/internal/integrations/inventory"
	availabilityService "github.com/m04kA/SMC-TourAvailability/internal/service/availability"
	checkDateUC "github.com/m04kA/SMC-TourAvailability/internal/usecase/check_date"
	findNextAvailableDateUC "github.com/m04kA/SMC-TourAvailability/internal/usecase/find_next_available_date"
	getCalendarUC "github.com/m04kA/SMC-TourAvailability/internal/usecase/get_calendar"
	listBookableSlotsUC "github.com/m04kA/SMC-TourAvailability/internal/usecase/list_bookable_slots"
	"github.com/m04kA/SMC-TourAvailability/pkg/dbmetrics"
	"github.com/m04kA/SMC-TourAvailability/pkg/logger"
	"github.com/m04kA/SMC-TourAvailability/pkg/metrics"
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

	log.Info("Starting SMC-TourAvailability...")
	log.Info("Configuration loaded from config.toml")

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
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Репозитории (с метриками или без)
	var dbExecutor dbmetrics.DBExecutor = db
	if cfg.Metrics.Enabled {
		dbExecutor = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")
	}
	tourRepository := tourRepo.NewRepository(dbExecutor)
	bookingRepository := bookingRepo.NewRepository(dbExecutor)

	// Хранилище кэша доступности: Redis, если включен, иначе память процесса
	var store cache.Store = cache.NewMemoryStore()
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, pingCancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		pingCancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Address, err)
		}

		store = cache.NewRedisStore(rdb, cfg.Redis.Prefix, cfg.Availability.CacheTTL())
		log.Info("Availability cache backed by redis (address=%s, prefix=%s)", cfg.Redis.Address, cfg.Redis.Prefix)
	} else {
		log.Info("Availability cache backed by process memory")
	}

	// Клиент внешнего inventory
	inventoryClient := inventory.NewClient(
		cfg.Inventory.URL,
		cfg.Inventory.APIKey,
		time.Duration(cfg.Inventory.Timeout)*time.Second,
		cfg.Inventory.RequestsPerSecond,
		cfg.Inventory.Burst,
		log,
	)
	log.Info("Inventory client initialized (url=%s timeout=%ds rps=%.1f burst=%d aliases=%d)",
		cfg.Inventory.URL, cfg.Inventory.Timeout, cfg.Inventory.RequestsPerSecond,
		cfg.Inventory.Burst, len(cfg.Inventory.Aliases))

	cacheOpts := cache.Options{
		TTL:              cfg.Availability.CacheTTL(),
		PreloadFreshness: cfg.Availability.PreloadFreshness(),
		Concurrency:      cfg.Availability.PreloadConcurrency,
		PreloadBudget:    cfg.Availability.PreloadBudget(),
		Aliases:          cfg.Inventory.Aliases,
	}
	if cfg.Metrics.Enabled {
		cacheOpts.Metrics = metricsCollector
	}
	availabilityCache := cache.New(inventoryClient, store, cacheOpts, log)

	// Инициализируем сервисы
	defaultLocation, err := time.LoadLocation(cfg.Availability.DefaultTimezone)
	if err != nil {
		log.Fatal("Invalid default timezone %q: %v", cfg.Availability.DefaultTimezone, err)
	}

	availabilitySvc := availabilityService.NewService(
		tourRepository,
		bookingRepository,
		availabilityCache,
		availabilityService.Options{
			DefaultLocation: defaultLocation,
			HorizonDays:     cfg.Availability.ScanHorizonDays,
		},
		log,
	)
	tracker := availabilityService.NewRequestTracker()

	// Инициализируем use cases
	listBookableSlotsUseCase := listBookableSlotsUC.NewUseCase(availabilitySvc, tracker, log)
	checkDateUseCase := checkDateUC.NewUseCase(availabilitySvc, log)
	findNextAvailableDateUseCase := findNextAvailableDateUC.NewUseCase(
		availabilitySvc,
		cfg.Availability.PreloadWindowDays,
		cfg.Availability.PreloadBudget(),
		log,
	)
	getCalendarUseCase := getCalendarUC.NewUseCase(availabilitySvc, log)

	// Инициализируем handlers
	listBookableSlots := listBookableSlotsHandler.NewHandler(listBookableSlotsUseCase, log)
	checkDate := checkDateHandler.NewHandler(checkDateUseCase, log)
	findNextAvailableDate := findNextAvailableDateHandler.NewHandler(findNextAvailableDateUseCase, log)
	getCalendar := getCalendarHandler.NewHandler(getCalendarUseCase, log)
	health := healthHandler.NewHandler()

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Бронируемые слоты тура на дату
	api.HandleFunc("/tours/{tourId}/slots", listBookableSlots.Handle).Methods(http.MethodGet)

	// Заблокирована ли дата в календаре
	api.HandleFunc("/tours/{tourId}/dates/{date}/disabled", checkDate.Handle).Methods(http.MethodGet)

	// Ближайшая доступная дата
	api.HandleFunc("/tours/{tourId}/next-available-date", findNextAvailableDate.Handle).Methods(http.MethodGet)

	// Календарь на месяц
	api.HandleFunc("/tours/{tourId}/calendar", getCalendar.Handle).Methods(http.MethodGet)

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
