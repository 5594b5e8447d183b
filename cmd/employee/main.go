package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/gartstein/employees/internal/employee/config"
	"github.com/gartstein/employees/internal/employee/controller"
	"github.com/gartstein/employees/internal/employee/db"
	"github.com/gartstein/employees/internal/employee/events"
	"github.com/gartstein/employees/internal/employee/handlers"
	"github.com/gartstein/employees/internal/employee/seed"
	"go.uber.org/zap"
	"google.golang.org/grpc"
)

// store is what the service and the seeder need from a repository.
type store interface {
	controller.Repository
	DeleteAll(ctx context.Context) error
	Close() error
}

type producer interface {
	controller.EventProducer
	Close()
}

func main() {
	logger := initLogger()
	defer func(logger *zap.Logger) {
		err := logger.Sync()
		if err != nil {
			logger.Error("failed to sync logger", zap.Error(err))
		}
	}(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	repo, err := initStore(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer repo.Close()

	if cfg.SeedOnStart {
		if _, err := seed.Run(context.Background(), repo, cfg.ResetOnStart, logger); err != nil {
			logger.Fatal("failed to seed employees", zap.Error(err))
		}
	}

	prod, err := initProducer(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize Kafka producer", zap.Error(err))
	}
	defer prod.Close()

	employeeSvc := controller.NewEmployeeService(repo, prod, logger)

	// Create handlers
	grpcHandler := handlers.NewEmployeeHandler(employeeSvc, logger, cfg.StrictNotFound)
	httpHandler := handlers.NewHTTPHandler(employeeSvc, logger, cfg.StrictNotFound)

	interceptor := handlers.NewLoggingInterceptor(logger)
	server := handlers.NewServer(cfg.GRPCPort, cfg.HTTPPort, logger, grpc.UnaryInterceptor(interceptor.Unary()))
	server.RegisterGRPCHandler(grpcHandler)
	if err := server.RegisterHTTPHandler(httpHandler); err != nil {
		logger.Fatal("Failed to register HTTP routes", zap.Error(err))
	}

	if err := server.Listen(); err != nil {
		logger.Fatal("Failed to start servers", zap.Error(err))
	}
	go func() {
		if err := server.Serve(); err != nil {
			logger.Fatal("Server error", zap.Error(err))
		}
	}()

	waitForShutdown(server, logger)
}

// initLogger initializes a Zap production logger.
func initLogger() *zap.Logger {
	logger, _ := zap.NewProduction()
	return logger
}

// initStore opens the configured repository, retrying the connection with
// exponential backoff for up to 30 seconds.
func initStore(cfg *config.Config, logger *zap.Logger) (store, error) {
	if cfg.DBDriver == db.DriverMemory {
		logger.Warn("using in-memory store; data is lost on exit")
		return db.NewMemoryRepository(), nil
	}

	dbConf := &db.Config{
		Driver:   cfg.DBDriver,
		Host:     cfg.DBHost,
		Port:     cfg.DBPort,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		DBName:   cfg.DBName,
		SSLMode:  cfg.DBSSLMode,
		Path:     cfg.DBPath,
	}

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 30 * time.Second

	var repo *db.Repository
	err := backoff.RetryNotify(func() error {
		var err error
		repo, err = db.NewRepository(dbConf, logger)
		if errors.Is(err, db.ErrUnsupportedDriver) {
			return backoff.Permanent(err)
		}
		return err
	}, b, func(err error, next time.Duration) {
		logger.Warn("database not ready, retrying", zap.Error(err), zap.Duration("next", next))
	})
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// initProducer returns a Kafka producer, or a no-op one without brokers.
func initProducer(cfg *config.Config, logger *zap.Logger) (producer, error) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("no Kafka brokers configured, change events disabled")
		return events.NopProducer{}, nil
	}
	p, err := events.NewProducer(cfg.KafkaBrokers, logger, cfg.Topic)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// waitForShutdown blocks until an interrupt or SIGTERM is received, then shuts down servers.
func waitForShutdown(server *handlers.Server, logger *zap.Logger) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	server.Stop()
	logger.Info("Servers stopped properly")
}
