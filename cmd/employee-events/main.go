// Command employee-events tails the employee change topic and logs every
// event, using the same configuration file as the service.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gartstein/employees/internal/employee/config"
	"github.com/gartstein/employees/internal/employee/events"
	"go.uber.org/zap"
)

const groupID = "employee-events-tail"

func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}
	if len(cfg.KafkaBrokers) == 0 {
		logger.Fatal("KAFKA_BROKERS is empty")
	}

	consumer := events.NewConsumer(cfg.KafkaBrokers, groupID, cfg.Topic, logger)
	defer consumer.Close()

	consumer.RegisterHandler(func(_ context.Context, e events.Event) error {
		fields := []zap.Field{
			zap.String("event_id", e.ID),
			zap.String("type", string(e.Type)),
			zap.Int64("employee_id", e.EmployeeID),
			zap.Time("occurred_at", e.OccurredAt),
		}
		if e.Employee != nil {
			fields = append(fields,
				zap.String("name", e.Employee.Name),
				zap.String("department", e.Employee.Department),
				zap.Float64("salary", e.Employee.Salary),
			)
		}
		logger.Info("employee event", fields...)
		return nil
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("tailing employee events", zap.String("topic", cfg.Topic), zap.Strings("brokers", cfg.KafkaBrokers))
	if err := consumer.Run(ctx); err != nil {
		logger.Error("consumer stopped", zap.Error(err))
	}
}
