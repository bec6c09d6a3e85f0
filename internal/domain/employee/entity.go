package employee

import (
	"time"
)

type Employee struct {
	ID         string
	Name       string
	Email      string
	Phone      string
	Department Department
	Position   string
	HireDate   time.Time
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

type Department string

const (
	DepartmentEngineering Department = "Engineering"
	DepartmentHR          Department = "HR"
	DepartmentFinance     Department = "Finance"
	DepartmentSales       Department = "Sales"
	DepartmentOperations  Department = "Operations"
)

var Departments = []string{
	string(DepartmentEngineering),
	string(DepartmentHR),
	string(DepartmentFinance),
	string(DepartmentSales),
	string(DepartmentOperations),
}

// IsActive reports whether the employee is included in payroll runs.
func (e *Employee) IsActive() bool {
	return e.Status == StatusActive
}
