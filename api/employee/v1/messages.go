// Package v1 defines the wire contract of the employee service: the JSON
// representation shared by the HTTP API and the gRPC service, the gRPC
// service descriptor and a typed client.
package v1

// Employee is the wire representation of an employee record.
type Employee struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Department string  `json:"department"`
	Salary     float64 `json:"salary"`
}

type GetAllEmployeesRequest struct{}

type GetAllEmployeesResponse struct {
	Employees []*Employee `json:"employees"`
}

type GetEmployeeRequest struct {
	ID int64 `json:"id"`
}

// GetEmployeeResponse carries Found=false and no Employee for unknown IDs.
type GetEmployeeResponse struct {
	Employee *Employee `json:"employee,omitempty"`
	Found    bool      `json:"found"`
}

type AddEmployeeRequest struct {
	Employee *Employee `json:"employee"`
}

type AddEmployeeResponse struct {
	Employee *Employee `json:"employee"`
}

type UpdateEmployeeRequest struct {
	ID       int64     `json:"id"`
	Employee *Employee `json:"employee"`
}

type UpdateEmployeeResponse struct {
	Employee *Employee `json:"employee,omitempty"`
	Found    bool      `json:"found"`
}

type DeleteEmployeeRequest struct {
	ID int64 `json:"id"`
}

type DeleteEmployeeResponse struct {
	Message string `json:"message"`
}
