package payroll

import (
	"context"
	"time"
)

type PayrollRepository interface {
	// Runs
	CreateRun(ctx context.Context, run Run) (Run, error)
	GetRunByID(ctx context.Context, id string) (Run, error)
	// ListRuns returns the newest runs first.
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	// FinalizeRun only succeeds on a pending run.
	FinalizeRun(ctx context.Context, id string, f Finalization) (Run, error)
	CountRunsByStatus(ctx context.Context, status RunStatus) (int64, error)
	ListPendingRunsBefore(ctx context.Context, before time.Time) ([]Run, error)

	// Items
	CreateItem(ctx context.Context, item Item) (Item, error)
	ListItemsByRun(ctx context.Context, runID string) ([]Item, error)
	// ListItemsByEmployee returns the employee's items newest first, joined with their run period.
	ListItemsByEmployee(ctx context.Context, employeeID string) ([]Item, error)
}
