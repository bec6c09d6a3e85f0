package report

import (
	"context"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
)

// ReportService defines the interface for the employee's own reports
type ReportService interface {
	// Salary report: own compensation and payroll items, newest first
	GetSalaryReport(ctx context.Context, session user.Session) (SalaryReport, error)

	// Leave report: own leave records ordered by start date, newest first
	GetLeaveReport(ctx context.Context, session user.Session) (LeaveReport, error)
}
