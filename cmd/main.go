package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/m04kA/hotel-booking-directory/internal/api"
	"github.com/m04kA/hotel-booking-directory/internal/config"
	"github.com/m04kA/hotel-booking-directory/internal/infra/storage/instrumented"
	"github.com/m04kA/hotel-booking-directory/internal/infra/storage/memory"
	"github.com/m04kA/hotel-booking-directory/internal/infra/storage/postgres"
	"github.com/m04kA/hotel-booking-directory/internal/infra/storage/sheets"
	"github.com/m04kA/hotel-booking-directory/internal/integrations/google"
	bookingsService "github.com/m04kA/hotel-booking-directory/internal/service/bookings"
	"github.com/m04kA/hotel-booking-directory/pkg/logger"
	"github.com/m04kA/hotel-booking-directory/pkg/metrics"
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

	log.Info("Starting booking directory service...")
	log.Info("Configuration loaded: storage driver=%s", cfg.Storage.Driver)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Открываем хранилище бронирований
	repo, closeStorage, err := openStorage(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("Failed to open booking storage: %v", err)
	}
	defer closeStorage()

	var bookingRepository bookingsService.BookingRepository = repo
	if cfg.Metrics.Enabled {
		bookingRepository = instrumented.NewRepository(repo, cfg.Storage.Driver, metricsCollector)
		log.Info("Storage metrics collection started")
	}

	// Инициализируем сервис
	bookingSvc := bookingsService.NewService(bookingRepository, cfg.Bookings.MaxDeleteAttempts, log)

	// Настраиваем роутер
	deps := api.Deps{
		Bookings: bookingSvc,
		Logger:   log,
	}
	if cfg.Metrics.Enabled {
		deps.Metrics = metricsCollector
		deps.MetricsPath = cfg.Metrics.Path
		deps.MetricsHandler = promhttp.Handler()
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      api.NewRouter(deps),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	log.Info("Server stopped gracefully")
}

// openStorage открывает драйвер хранилища, выбранный в конфигурации
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (instrumented.Repository, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverSheets:
		repo, err := openSheets(ctx, cfg, log)
		return repo, func() {}, err

	case config.DriverPostgres:
		db, err := sqlx.Open("postgres", cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}

		// Настраиваем connection pool
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

		// Проверяем соединение
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("ping database: %w", err)
		}
		log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		return postgres.NewRepository(db), func() { _ = db.Close() }, nil

	case config.DriverMemory:
		log.Warn("Using in-memory storage: bookings are lost on restart")
		return memory.NewRepository(), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// openSheets авторизуется в Google и открывает рабочий лист
func openSheets(ctx context.Context, cfg *config.Config, log *logger.Logger) (*sheets.Repository, error) {
	creds, err := google.ResolveCredentials(google.CredentialsSource{
		EnvVar:       cfg.Sheets.CredentialsEnv,
		File:         cfg.Sheets.CredentialsFile,
		FallbackFile: cfg.Sheets.FallbackCredentialsFile,
	}, os.LookupEnv)
	if err != nil {
		return nil, err
	}
	log.Info("Google credentials loaded from %s", creds.Origin)

	httpClient, err := google.NewHTTPClient(ctx, creds)
	if err != nil {
		return nil, err
	}

	client, err := google.NewClient(ctx, httpClient, log)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Sheets.RequestTimeoutDuration()

	spreadsheetID := cfg.Sheets.SpreadsheetID
	if spreadsheetID == "" {
		findCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		spreadsheetID, err = client.FindSpreadsheet(findCtx, cfg.Sheets.SpreadsheetName)
		if err != nil {
			return nil, err
		}
		log.Info("Spreadsheet '%s' resolved to id=%s", cfg.Sheets.SpreadsheetName, spreadsheetID)
	}

	return sheets.Open(ctx, client.Sheets, sheets.Config{
		SpreadsheetID: spreadsheetID,
		Worksheet:     cfg.Sheets.Worksheet,
		Timeout:       timeout,
	}, log)
}
