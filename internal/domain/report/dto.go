package report

import (
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/compensation"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

type SalaryReport struct {
	EmployeeID     string                             `json:"employee_id"`
	Compensation   *compensation.CompensationResponse `json:"compensation"`
	Payslips       []payroll.ItemResponse             `json:"payslips"`
	TotalGrossPaid decimal.Decimal                    `json:"total_gross_paid"`
	TotalNetPaid   decimal.Decimal                    `json:"total_net_paid"`
}

type LeaveReport struct {
	EmployeeID   string                `json:"employee_id"`
	Records      []leave.LeaveResponse `json:"records"`
	ApprovedDays int                   `json:"approved_days"`
	PendingDays  int                   `json:"pending_days"`
	RejectedDays int                   `json:"rejected_days"`
}
