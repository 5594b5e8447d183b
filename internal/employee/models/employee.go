// Package models defines the core domain model for the Employee entity.
package models

// Employee defines the domain model for an employee record.
type Employee struct {
	// ID is assigned by the store on first save and never changes afterwards.
	ID int64
	// Name is the employee's name. No format is enforced.
	Name string
	// Department is free text.
	Department string
	// Salary is non-negative by convention only.
	Salary float64
}

// Overwrite replaces every mutable field with the values from src,
// keeping the receiver's ID. Zero values in src are copied as well.
func (e *Employee) Overwrite(src Employee) {
	e.Name = src.Name
	e.Department = src.Department
	e.Salary = src.Salary
}
