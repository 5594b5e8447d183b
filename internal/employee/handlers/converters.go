package handlers

import (
	"errors"
	"fmt"
	"net/http"

	v1 "github.com/gartstein/employees/api/employee/v1"
	e "github.com/gartstein/employees/internal/employee/errors"
	"github.com/gartstein/employees/internal/employee/models"
	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// wireToModel converts the wire Employee into the domain model, ID included.
func wireToModel(in *v1.Employee) (*models.Employee, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: employee data required", e.ErrInvalidInput)
	}
	return &models.Employee{
		ID:         in.ID,
		Name:       in.Name,
		Department: in.Department,
		Salary:     in.Salary,
	}, nil
}

// modelToWire converts a domain Employee into its wire form.
func modelToWire(employee models.Employee) *v1.Employee {
	return &v1.Employee{
		ID:         employee.ID,
		Name:       employee.Name,
		Department: employee.Department,
		Salary:     employee.Salary,
	}
}

func modelsToWire(employees []models.Employee) []*v1.Employee {
	out := make([]*v1.Employee, 0, len(employees))
	for _, employee := range employees {
		out = append(out, modelToWire(employee))
	}
	return out
}

func deletedMessage(id int64) string {
	return fmt.Sprintf("Employee deleted with ID: %d", id)
}

// grpcStatus maps domain errors to gRPC status codes.
func grpcStatus(logger *zap.Logger, err error) error {
	switch {
	case errors.Is(err, e.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, e.ErrInvalidInput):
		return status.Error(codes.InvalidArgument, err.Error())
	default:
		logger.Error("Internal server error", zap.Error(err))
		return status.Error(codes.Internal, fmt.Sprintf("internal server error: %v", err))
	}
}

// httpStatus maps domain errors to HTTP status codes.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, e.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, e.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
