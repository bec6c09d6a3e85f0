package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, error)
	// ListActive returns every employee with status active, ordered by name.
	ListActive(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, updated Employee) (Employee, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
}
