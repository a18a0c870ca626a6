package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"loanledger/internal/api"
	"loanledger/internal/batch"
	"loanledger/internal/config"
	"loanledger/internal/domain/customer"
	"loanledger/internal/domain/entry"
	"loanledger/internal/domain/loan"
	"loanledger/internal/domain/user"
	"loanledger/internal/event"
	"loanledger/internal/infrastructure/database/postgres"
	"loanledger/internal/infrastructure/logging"

	"github.com/jackc/pgx/v5/pgxpool"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

func main() {
	cfg, logger := initializeApp()

	dbPool := initializeDatabase(cfg, logger)
	defer closeDatabase(dbPool, logger)

	rabbitConn, publisher := setupEventPublisher(cfg, logger)
	authService, customerService, loanService, entryService := initializeServices(dbPool, publisher, logger)

	expiryJob := batch.NewExpiryReportJob(entryService, publisher, cfg.Batch.ExpiryReportTimeout, logger)
	cronScheduler := startBatchJobs(cfg, logger, expiryJob)

	router := api.SetupRouter(authService, customerService, loanService, entryService, cfg, logger)

	srv, serverErrors, shutdownChan := startServer(cfg, router, logger)
	handleShutdown(srv, cronScheduler, rabbitConn, shutdownChan, serverErrors, logger)
}

func initializeApp() (*config.Config, *slog.Logger) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.NewLogger(cfg.Logger)
	slog.SetDefault(logger)
	logger.Info("Application starting...", "config_source", viper.ConfigFileUsed())

	return cfg, logger
}

func initializeDatabase(cfg *config.Config, logger *slog.Logger) *pgxpool.Pool {
	logger.Info("Initializing database connection pool...")
	dbPool, err := postgres.NewConnectionPool(context.Background(), cfg.Database, logger)
	if err != nil {
		logger.Error("Failed to initialize database connection pool", "error", err)
		os.Exit(1)
	}
	return dbPool
}

func closeDatabase(dbPool *pgxpool.Pool, logger *slog.Logger) {
	logger.Info("Closing database connection pool...")
	dbPool.Close()
}

func initializeServices(dbPool *pgxpool.Pool, publisher event.Publisher, logger *slog.Logger) (user.AuthService, customer.CustomerService, loan.LoanService, entry.EntryService) {
	logger.Info("Initializing application components...")
	userRepo := postgres.NewUserRepository(dbPool, logger)
	customerRepo := postgres.NewCustomerRepository(dbPool, logger)
	loanRepo := postgres.NewLoanRepository(dbPool, logger)
	entryRepo := postgres.NewEntryRepository(dbPool, logger)

	authService := user.NewAuthService(userRepo, logger)
	customerService := customer.NewCustomerService(customerRepo, logger)
	loanService := loan.NewLoanService(loanRepo, logger)
	entryService := entry.NewEntryService(entryRepo, publisher, logger)

	return authService, customerService, loanService, entryService
}

// setupEventPublisher returns a RabbitMQ-backed publisher when messaging is
// enabled, otherwise a no-op one. The returned connection is nil in the
// no-op case.
func setupEventPublisher(cfg *config.Config, logger *slog.Logger) (*amqp.Connection, event.Publisher) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("RabbitMQ disabled, events will not be published.")
		return nil, event.NewNoopPublisher()
	}

	conn, err := connectRabbitMQ(rabbitMQURI(cfg.RabbitMQ), logger)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ, falling back to no-op publisher", "error", err)
		return nil, event.NewNoopPublisher()
	}

	publisher, err := event.NewRabbitMQPublisher(conn, cfg.RabbitMQ.ExchangeName, logger)
	if err != nil {
		logger.Error("Failed to set up RabbitMQ publisher, falling back to no-op publisher", "error", err)
		_ = conn.Close()
		return nil, event.NewNoopPublisher()
	}
	return conn, publisher
}

func rabbitMQURI(cfg config.RabbitMQConfig) string {
	if cfg.Username != "" && cfg.Password != "" {
		return fmt.Sprintf("amqp://%s:%s@%s:%d", cfg.Username, cfg.Password, cfg.Host, cfg.Port)
	}
	return fmt.Sprintf("amqp://%s:%d", cfg.Host, cfg.Port)
}

func connectRabbitMQ(uri string, logger *slog.Logger) (*amqp.Connection, error) {
	var conn *amqp.Connection
	var err error
	retryCount := 5
	for i := 1; i <= retryCount; i++ {
		conn, err = amqp.Dial(uri)
		if err == nil {
			logger.Info("Successfully connected to RabbitMQ")

			go func() {
				blockChan := conn.NotifyBlocked(make(chan amqp.Blocking))
				closeChan := conn.NotifyClose(make(chan *amqp.Error))

				select {
				case b := <-blockChan:
					logger.Warn("RabbitMQ Connection Blocked", "reason", b.Reason)
				case e := <-closeChan:
					logger.Error("RabbitMQ Connection Closed", slog.Any("error", e))
				}
			}()

			return conn, nil
		}
		logger.Warn("Failed to connect to RabbitMQ, retrying...",
			slog.Int("attempt", i),
			slog.Int("max_attempts", retryCount),
			slog.Any("error", err),
		)
		time.Sleep(time.Duration(i*2) * time.Second)
	}
	return nil, fmt.Errorf("failed to connect to RabbitMQ after %d attempts: %w", retryCount, err)
}

func startBatchJobs(cfg *config.Config, logger *slog.Logger, expiryJob *batch.ExpiryReportJob) *cron.Cron {
	logger.Info("Initializing batch job scheduler...")
	c := cron.New()

	scheduleSpec := cfg.Batch.ExpiryReportSchedule
	if scheduleSpec == "" {
		scheduleSpec = "0 6 * * *"
		logger.Warn("Expiry report schedule not configured, using default", "schedule", scheduleSpec)
	}

	jobID, err := c.AddJob(scheduleSpec, cron.FuncJob(func() {
		jobLogger := logger.With("job_name", "ExpiryReport")
		jobLogger.Info("Cron triggered: Running expiring-loan report job.")

		if runErr := expiryJob.Run(context.Background()); runErr != nil {
			jobLogger.Error("Expiring-loan report job finished with error", slog.Any("error", runErr))
		} else {
			jobLogger.Info("Expiring-loan report job finished successfully.")
		}
	}))

	if err != nil {
		logger.Error("Failed to schedule expiring-loan report job", "schedule", scheduleSpec, slog.Any("error", err))
	} else {
		logger.Info("Scheduled expiring-loan report job", "schedule", scheduleSpec, "job_id", jobID)
	}

	c.Start()
	logger.Info("Cron scheduler started.")
	return c
}

func startServer(cfg *config.Config, router http.Handler, logger *slog.Logger) (*http.Server, <-chan error, <-chan os.Signal) {
	logger.Info("Setting up HTTP server...", "port", cfg.Server.Port)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info(fmt.Sprintf("Server listening on port %d", cfg.Server.Port))
		err := srv.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server error", "error", err)
			serverErrors <- err
		} else {
			logger.Info("Server closed gracefully.")
			serverErrors <- nil
		}
	}()
	return srv, serverErrors, shutdownChan
}

func handleShutdown(srv *http.Server, cronScheduler *cron.Cron, rabbitConn *amqp.Connection,
	shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) {
	logger.Info("Shutdown handler started. Waiting for signal or server error...")

	triggerReason := waitForShutdownTrigger(shutdownChan, serverErrors, logger)

	logger.Info("Starting graceful shutdown...", "trigger", triggerReason)

	stopCronScheduler(cronScheduler, logger)
	closeRabbitMQConnection(rabbitConn, logger)
	shutdownHTTPServer(srv, serverErrors, logger)

	logger.Info("Application shutdown process complete.")
}

func waitForShutdownTrigger(shutdownChan <-chan os.Signal, serverErrors <-chan error, logger *slog.Logger) string {
	select {
	case sig := <-shutdownChan:
		logger.Info("Shutdown signal received.", "signal", sig.String())
		return "signal: " + sig.String()
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server exited unexpectedly before signal", "error", err)
			os.Exit(1)
		}
		logger.Info("Server goroutine finished before signal.", "error", err)
		return "server exited"
	}
}

func stopCronScheduler(cronScheduler *cron.Cron, logger *slog.Logger) {
	logger.Info("Stopping cron scheduler...")
	cronCtx := cronScheduler.Stop()
	select {
	case <-cronCtx.Done():
		logger.Info("Cron scheduler stopped gracefully.")
	case <-time.After(15 * time.Second):
		logger.Warn("Cron scheduler shutdown timed out.")
	}
}

func closeRabbitMQConnection(rabbitConn *amqp.Connection, logger *slog.Logger) {
	if rabbitConn == nil {
		logger.Info("RabbitMQ connection was not established, skipping close.")
		return
	}
	if rabbitConn.IsClosed() {
		logger.Info("RabbitMQ connection already closed, skipping close.")
		return
	}
	logger.Info("Closing RabbitMQ connection...")
	if err := rabbitConn.Close(); err != nil {
		logger.Error("Failed to close RabbitMQ connection gracefully", slog.Any("error", err))
	} else {
		logger.Info("RabbitMQ connection closed.")
	}
}

func shutdownHTTPServer(srv *http.Server, serverErrors <-chan error, logger *slog.Logger) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logger.Info("Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server graceful shutdown failed", "error", err)
		} else {
			logger.Info("HTTP server shutdown initiated.")
		}
		if err := srv.Close(); err != nil {
			logger.Error("HTTP server forced close failed", "error", err)
		}
	} else {
		logger.Info("HTTP server gracefully stopped.")
	}

	logger.Info("Waiting for server goroutine to confirm exit...")
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Warn("Server goroutine exited with unexpected error after shutdown", "error", err)
		} else {
			logger.Info("Server goroutine confirmed exit.")
		}
	case <-time.After(5 * time.Second):
		logger.Warn("Timed out waiting for server goroutine confirmation.")
	}
}
