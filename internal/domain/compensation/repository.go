package compensation

import (
	"context"
	"time"
)

type CompensationRepository interface {
	// Get returns ErrCompensationNotFound when the employee has no record.
	Get(ctx context.Context, employeeID string) (Compensation, error)
	// Upsert merges patch into the stored record, creating it from New when absent.
	Upsert(ctx context.Context, employeeID string, patch Patch, at time.Time) (Compensation, error)
	List(ctx context.Context) ([]Compensation, error)
	Delete(ctx context.Context, employeeID string) error
}
