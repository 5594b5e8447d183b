// Package seed inserts the sample employees at startup.
package seed

import (
	"context"
	"fmt"

	"github.com/gartstein/employees/internal/employee/models"
	"go.uber.org/zap"
)

// Employees are inserted on every start; seeding is append-only, so a
// persistent store accumulates duplicates unless it is reset first.
var Employees = []models.Employee{
	{Name: "Alice", Department: "HR", Salary: 60000},
	{Name: "Bob", Department: "Engineering", Salary: 75000},
	{Name: "Charlie", Department: "Marketing", Salary: 50000},
}

type Store interface {
	Save(ctx context.Context, employee *models.Employee) (*models.Employee, error)
	DeleteAll(ctx context.Context) error
}

// Run optionally empties the store and then saves the sample employees,
// returning them with their assigned IDs.
func Run(ctx context.Context, store Store, reset bool, logger *zap.Logger) ([]models.Employee, error) {
	logger = logger.Named("seed")
	if reset {
		if err := store.DeleteAll(ctx); err != nil {
			return nil, fmt.Errorf("failed to reset store: %w", err)
		}
		logger.Info("Store reset before seeding")
	}

	saved := make([]models.Employee, 0, len(Employees))
	for _, e := range Employees {
		employee := e
		created, err := store.Save(ctx, &employee)
		if err != nil {
			return saved, fmt.Errorf("failed to seed %q: %w", e.Name, err)
		}
		saved = append(saved, *created)
	}
	logger.Info("Seeded sample employees", zap.Int("count", len(saved)))
	return saved, nil
}
