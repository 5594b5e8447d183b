package handlers

import (
	"context"
	"fmt"

	v1 "github.com/gartstein/employees/api/employee/v1"
	e "github.com/gartstein/employees/internal/employee/errors"
	"go.uber.org/zap"
)

// EmployeeHandler provides gRPC methods for Employee operations,
// mapping requests to an EmployeeController.
type EmployeeHandler struct {
	service        EmployeeController
	logger         *zap.Logger
	strictNotFound bool
}

// NewEmployeeHandler constructs a new EmployeeHandler. With strictNotFound
// set, unknown IDs are reported as codes.NotFound instead of Found=false.
func NewEmployeeHandler(service EmployeeController, logger *zap.Logger, strictNotFound bool) *EmployeeHandler {
	return &EmployeeHandler{
		service:        service,
		logger:         logger.Named("grpc_handler"),
		strictNotFound: strictNotFound,
	}
}

// GetAllEmployees lists every employee.
func (h *EmployeeHandler) GetAllEmployees(ctx context.Context, _ *v1.GetAllEmployeesRequest) (*v1.GetAllEmployeesResponse, error) {
	employees, err := h.service.GetAllEmployees(ctx)
	if err != nil {
		return nil, grpcStatus(h.logger, err)
	}
	return &v1.GetAllEmployeesResponse{Employees: modelsToWire(employees)}, nil
}

// GetEmployee fetches an employee by ID.
func (h *EmployeeHandler) GetEmployee(ctx context.Context, req *v1.GetEmployeeRequest) (*v1.GetEmployeeResponse, error) {
	employee, ok, err := h.service.GetEmployeeByID(ctx, req.ID)
	if err != nil {
		return nil, grpcStatus(h.logger, err)
	}
	if !ok {
		if err := h.absent(req.ID); err != nil {
			return nil, err
		}
		return &v1.GetEmployeeResponse{}, nil
	}
	return &v1.GetEmployeeResponse{Employee: modelToWire(employee), Found: true}, nil
}

// AddEmployee saves the employee; without an ID the store assigns one.
func (h *EmployeeHandler) AddEmployee(ctx context.Context, req *v1.AddEmployeeRequest) (*v1.AddEmployeeResponse, error) {
	employee, err := wireToModel(req.Employee)
	if err != nil {
		return nil, grpcStatus(h.logger, err)
	}

	created, err := h.service.AddEmployee(ctx, employee)
	if err != nil {
		return nil, grpcStatus(h.logger, err)
	}
	return &v1.AddEmployeeResponse{Employee: modelToWire(*created)}, nil
}

// UpdateEmployee overwrites name, department and salary of an existing employee.
func (h *EmployeeHandler) UpdateEmployee(ctx context.Context, req *v1.UpdateEmployeeRequest) (*v1.UpdateEmployeeResponse, error) {
	values, err := wireToModel(req.Employee)
	if err != nil {
		return nil, grpcStatus(h.logger, err)
	}

	updated, ok, err := h.service.UpdateEmployee(ctx, req.ID, *values)
	if err != nil {
		return nil, grpcStatus(h.logger, err)
	}
	if !ok {
		if err := h.absent(req.ID); err != nil {
			return nil, err
		}
		return &v1.UpdateEmployeeResponse{}, nil
	}
	return &v1.UpdateEmployeeResponse{Employee: modelToWire(updated), Found: true}, nil
}

// DeleteEmployee removes an employee; unknown IDs succeed as well.
func (h *EmployeeHandler) DeleteEmployee(ctx context.Context, req *v1.DeleteEmployeeRequest) (*v1.DeleteEmployeeResponse, error) {
	if err := h.service.DeleteEmployee(ctx, req.ID); err != nil {
		return nil, grpcStatus(h.logger, err)
	}
	return &v1.DeleteEmployeeResponse{Message: deletedMessage(req.ID)}, nil
}

func (h *EmployeeHandler) absent(id int64) error {
	if !h.strictNotFound {
		return nil
	}
	return grpcStatus(h.logger, fmt.Errorf("%w: employee %d", e.ErrNotFound, id))
}
