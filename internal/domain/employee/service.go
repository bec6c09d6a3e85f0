package employee

import (
	"context"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// CreateEmployee creates a new employee and provisions its login (admin only)
	CreateEmployee(ctx context.Context, session user.Session, req CreateEmployeeRequest) (CreateEmployeeResponse, error)

	// GetEmployee retrieves a single employee by ID
	GetEmployee(ctx context.Context, session user.Session, id string) (EmployeeResponse, error)

	// UpdateEmployee applies the supplied fields (admin only)
	UpdateEmployee(ctx context.Context, session user.Session, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// DeleteEmployee removes the employee together with its login (admin only)
	DeleteEmployee(ctx context.Context, session user.Session, id string) error

	// ListEmployees lists employees with filters (admin only)
	ListEmployees(ctx context.Context, session user.Session, filter EmployeeFilter) ([]EmployeeResponse, error)
}
