package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	v1 "github.com/gartstein/employees/api/employee/v1"
	e "github.com/gartstein/employees/internal/employee/errors"
	"github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
)

// routeMethods lists the methods every route answers to; the routes are
// distinguished by path only.
var routeMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
}

// HTTPHandler serves the /employees routes.
type HTTPHandler struct {
	service        EmployeeController
	logger         *zap.Logger
	marshaler      runtime.JSONBuiltin
	strictNotFound bool
}

// NewHTTPHandler constructs an HTTPHandler. With strictNotFound set, lookups
// of unknown IDs answer 404 instead of an empty 200.
func NewHTTPHandler(service EmployeeController, logger *zap.Logger, strictNotFound bool) *HTTPHandler {
	return &HTTPHandler{
		service:        service,
		logger:         logger.Named("http_handler"),
		strictNotFound: strictNotFound,
	}
}

// Register attaches the employee routes to mux.
func (h *HTTPHandler) Register(mux *runtime.ServeMux) error {
	routes := map[string]runtime.HandlerFunc{
		"/employees/all":         h.GetAllEmployees,
		"/employees/get/{id}":    h.GetEmployee,
		"/employees/add":         h.AddEmployee,
		"/employees/update/{id}": h.UpdateEmployee,
		"/employees/delete/{id}": h.DeleteEmployee,
	}
	for path, fn := range routes {
		for _, method := range routeMethods {
			if err := mux.HandlePath(method, path, fn); err != nil {
				return fmt.Errorf("register %s %s: %w", method, path, err)
			}
		}
	}
	return nil
}

// GetAllEmployees writes every employee as a JSON array.
func (h *HTTPHandler) GetAllEmployees(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	employees, err := h.service.GetAllEmployees(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, modelsToWire(employees))
}

// GetEmployee writes the employee, or an empty body when the ID is unknown.
func (h *HTTPHandler) GetEmployee(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	id, err := parseID(pathParams)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	employee, ok, err := h.service.GetEmployeeByID(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if !ok {
		h.writeAbsent(w, r, id)
		return
	}
	h.writeJSON(w, r, modelToWire(employee))
}

// AddEmployee stores the posted employee and writes it back with its ID.
func (h *HTTPHandler) AddEmployee(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	in, err := h.decodeEmployee(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	employee, err := wireToModel(in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	created, err := h.service.AddEmployee(r.Context(), employee)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, r, modelToWire(*created))
}

// UpdateEmployee overwrites the employee's fields with the posted ones.
func (h *HTTPHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	id, err := parseID(pathParams)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	in, err := h.decodeEmployee(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	values, err := wireToModel(in)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	updated, ok, err := h.service.UpdateEmployee(r.Context(), id, *values)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if !ok {
		h.writeAbsent(w, r, id)
		return
	}
	h.writeJSON(w, r, modelToWire(updated))
}

// DeleteEmployee removes the employee and confirms in plain text.
func (h *HTTPHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request, pathParams map[string]string) {
	id, err := parseID(pathParams)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.service.DeleteEmployee(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, deletedMessage(id))
}

func parseID(pathParams map[string]string) (int64, error) {
	raw := pathParams["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid employee ID %q", e.ErrInvalidInput, raw)
	}
	return id, nil
}

func (h *HTTPHandler) decodeEmployee(r *http.Request) (*v1.Employee, error) {
	var in v1.Employee
	if err := h.marshaler.NewDecoder(r.Body).Decode(&in); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: request body required", e.ErrInvalidInput)
		}
		return nil, fmt.Errorf("%w: malformed employee JSON: %v", e.ErrInvalidInput, err)
	}
	return &in, nil
}

func (h *HTTPHandler) writeAbsent(w http.ResponseWriter, r *http.Request, id int64) {
	if h.strictNotFound {
		h.writeError(w, r, fmt.Errorf("%w: employee %d", e.ErrNotFound, id))
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *HTTPHandler) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	body, err := h.marshaler.Marshal(v)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", h.marshaler.ContentType(v))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := httpStatus(err)
	fields := []zap.Field{
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Int("status", code),
		zap.String("request_id", RequestIDFromContext(r.Context())),
	}
	if code >= http.StatusInternalServerError {
		h.logger.Error("employee request failed", fields...)
	} else {
		h.logger.Warn("employee request rejected", fields...)
	}

	message := err.Error()
	if code >= http.StatusInternalServerError {
		message = http.StatusText(code)
	}
	body, _ := h.marshaler.Marshal(map[string]string{"error": message})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}
