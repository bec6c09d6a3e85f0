package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
)

// StaleRunFinder is the part of the payroll service the stale-run job needs
type StaleRunFinder interface {
	ListStalePendingRuns(ctx context.Context, olderThan time.Duration) ([]payroll.Run, error)
}

// StalePayrollRunJob reports runs left pending longer than olderThan.
// A run stays pending only when the process died between creating it and finalizing it.
// Runs are reported, never modified.
func StalePayrollRunJob(finder StaleRunFinder, olderThan, interval time.Duration) Job {
	return Job{
		Name:     "stale_payroll_runs",
		Interval: interval,
		Fn: func(ctx context.Context) error {
			runs, err := finder.ListStalePendingRuns(ctx, olderThan)
			if err != nil {
				return err
			}
			for _, run := range runs {
				slog.Warn("Payroll run still pending",
					"payroll_run_id", run.ID,
					"run_timestamp", run.RunTimestamp,
					"processed_by", run.ProcessedBy,
					"employee_count", len(run.EmployeeIDs),
				)
			}
			return nil
		},
	}
}
