package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	Create(ctx context.Context, record Record) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	// ListByEmployee returns the employee's records ordered by StartDate desc.
	ListByEmployee(ctx context.Context, employeeID string) ([]Record, error)
	// List returns all records ordered by StartDate desc, optionally by status.
	List(ctx context.Context, status *Status) ([]Record, error)
	// UpdateStatus only transitions a record that is still pending.
	UpdateStatus(ctx context.Context, id string, status Status, reviewedBy string, reviewedAt time.Time) (Record, error)
	CountByStatus(ctx context.Context, status Status) (int64, error)
}
