package dashboard

import (
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
)

// AdminStatsResponse contains the counts shown on the administrator dashboard
type AdminStatsResponse struct {
	TotalEmployees      int64  `json:"total_employees"`
	ActiveEmployees     int64  `json:"active_employees"`
	PendingPayrollRuns  int64  `json:"pending_payroll_runs"`
	PendingLeaveRequest int64  `json:"pending_leave_requests"`
	UpdatedAt           string `json:"updated_at"`
}

// EmployeeDashboardResponse is the employee's landing page
type EmployeeDashboardResponse struct {
	Employee         employee.EmployeeResponse `json:"employee"`
	LatestPayslip    *payroll.ItemResponse     `json:"latest_payslip"`
	PendingLeaveDays int                       `json:"pending_leave_days"`
}
