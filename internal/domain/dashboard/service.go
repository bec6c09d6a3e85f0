package dashboard

import (
	"context"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
)

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetAdminStats returns employee and payroll counts, queried in parallel
	GetAdminStats(ctx context.Context, session user.Session) (AdminStatsResponse, error)

	// GetEmployeeDashboard returns the caller's own employee record and recent activity
	GetEmployeeDashboard(ctx context.Context, session user.Session) (EmployeeDashboardResponse, error)
}
