// Package models contains the persistence models for the employee store,
// configured to work using GORM as the ORM.
package models

import (
	domain "github.com/gartstein/employees/internal/employee/models"
)

// Employee is the row stored in the employees table.
// Hard deletes only, so gorm.Model (and its DeletedAt) is not embedded.
type Employee struct {
	ID         int64 `gorm:"primaryKey;autoIncrement"`
	Name       string
	Department string
	Salary     float64
}

// TableName pins the table name regardless of naming strategy.
func (Employee) TableName() string {
	return "employees"
}

// FromDomain builds a row from the domain model.
func FromDomain(e *domain.Employee) *Employee {
	return &Employee{
		ID:         e.ID,
		Name:       e.Name,
		Department: e.Department,
		Salary:     e.Salary,
	}
}

// ToDomain converts the row back into the domain model.
func (r *Employee) ToDomain() domain.Employee {
	return domain.Employee{
		ID:         r.ID,
		Name:       r.Name,
		Department: r.Department,
		Salary:     r.Salary,
	}
}
