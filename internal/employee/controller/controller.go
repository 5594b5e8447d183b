// Package controller implements the service layer for Employee records:
// absent-is-not-an-error lookups, whole-record overwrite on update, and
// change event production.
package controller

import (
	"context"
	"fmt"

	"github.com/gartstein/employees/internal/employee/events"
	"github.com/gartstein/employees/internal/employee/models"
	"go.uber.org/zap"
)

type EventProducer interface {
	Produce(eventType events.EventType, employeeID int64, employee *models.Employee)
}

// Repository defines the storage interface for Employee records.
type Repository interface {
	Save(ctx context.Context, employee *models.Employee) (*models.Employee, error)
	FindAll(ctx context.Context) ([]models.Employee, error)
	FindByID(ctx context.Context, id int64) (models.Employee, bool, error)
	DeleteByID(ctx context.Context, id int64) error
}

// EmployeeService mediates between the transports and the Repository.
type EmployeeService struct {
	repo     Repository
	producer EventProducer
	logger   *zap.Logger
}

// NewEmployeeService constructs an EmployeeService with a repository,
// an event producer, and a logger.
func NewEmployeeService(repo Repository, producer EventProducer, logger *zap.Logger) *EmployeeService {
	return &EmployeeService{
		repo:     repo,
		producer: producer,
		logger:   logger.Named("employee_service"),
	}
}

// GetAllEmployees returns every stored employee.
func (s *EmployeeService) GetAllEmployees(ctx context.Context) ([]models.Employee, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return employees, nil
}

// GetEmployeeByID reports ok=false for an unknown ID rather than an error.
func (s *EmployeeService) GetEmployeeByID(ctx context.Context, id int64) (models.Employee, bool, error) {
	employee, ok, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return models.Employee{}, false, fmt.Errorf("failed to get employee: %w", err)
	}
	return employee, ok, nil
}

// AddEmployee hands the employee to the store as given. Without an ID the
// store assigns one; with an ID the record with that ID is overwritten.
func (s *EmployeeService) AddEmployee(ctx context.Context, employee *models.Employee) (*models.Employee, error) {
	created, err := s.repo.Save(ctx, employee)
	if err != nil {
		return nil, fmt.Errorf("failed to add employee: %w", err)
	}

	snapshot := *created
	go func() {
		s.producer.Produce(events.EmployeeCreated, snapshot.ID, &snapshot)
	}()
	return created, nil
}

// UpdateEmployee overwrites name, department and salary of the employee
// with the given ID using values, zero values included. The lookup and the
// write are separate store calls; concurrent writers race (last write wins).
func (s *EmployeeService) UpdateEmployee(ctx context.Context, id int64, values models.Employee) (models.Employee, bool, error) {
	existing, ok, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return models.Employee{}, false, fmt.Errorf("failed to get employee for update: %w", err)
	}
	if !ok {
		return models.Employee{}, false, nil
	}

	existing.Overwrite(values)
	updated, err := s.repo.Save(ctx, &existing)
	if err != nil {
		return models.Employee{}, false, fmt.Errorf("failed to update employee: %w", err)
	}

	snapshot := *updated
	go func() {
		s.producer.Produce(events.EmployeeUpdated, snapshot.ID, &snapshot)
	}()
	return *updated, true, nil
}

// DeleteEmployee removes the employee. Unknown IDs are not an error and the
// caller cannot tell the two cases apart.
func (s *EmployeeService) DeleteEmployee(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		s.logger.Error("Failed to delete employee",
			zap.Error(err),
			zap.Int64("employee_id", id),
		)
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	go func() {
		s.producer.Produce(events.EmployeeDeleted, id, nil)
	}()
	return nil
}
