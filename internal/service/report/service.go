package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/compensation"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
)

type ReportServiceImpl struct {
	compensationRepo compensation.CompensationRepository
	payrollRepo      payroll.PayrollRepository
	leaveRepo        leave.LeaveRepository
}

func NewReportService(
	compensationRepo compensation.CompensationRepository,
	payrollRepo payroll.PayrollRepository,
	leaveRepo leave.LeaveRepository,
) report.ReportService {
	return &ReportServiceImpl{
		compensationRepo: compensationRepo,
		payrollRepo:      payrollRepo,
		leaveRepo:        leaveRepo,
	}
}

// GetSalaryReport implements report.ReportService.
func (s *ReportServiceImpl) GetSalaryReport(ctx context.Context, session user.Session) (report.SalaryReport, error) {
	employeeID, err := session.OwnEmployeeID()
	if err != nil {
		return report.SalaryReport{}, err
	}

	result := report.SalaryReport{
		EmployeeID:     employeeID,
		TotalGrossPaid: decimal.Zero,
		TotalNetPaid:   decimal.Zero,
	}

	comp, err := s.compensationRepo.Get(ctx, employeeID)
	switch {
	case err == nil:
		resp := compensation.ToResponse(comp)
		result.Compensation = &resp
	case !errors.Is(err, compensation.ErrCompensationNotFound):
		return report.SalaryReport{}, fmt.Errorf("failed to get compensation: %w", err)
	}

	items, err := s.payrollRepo.ListItemsByEmployee(ctx, employeeID)
	if err != nil {
		return report.SalaryReport{}, fmt.Errorf("failed to list payroll items: %w", err)
	}

	for _, item := range items {
		result.TotalGrossPaid = result.TotalGrossPaid.Add(item.GrossPay)
		result.TotalNetPaid = result.TotalNetPaid.Add(item.NetPay)
	}
	result.TotalGrossPaid = result.TotalGrossPaid.Round(2)
	result.TotalNetPaid = result.TotalNetPaid.Round(2)
	result.Payslips = payroll.ToItemResponses(items)

	return result, nil
}

// GetLeaveReport implements report.ReportService.
func (s *ReportServiceImpl) GetLeaveReport(ctx context.Context, session user.Session) (report.LeaveReport, error) {
	employeeID, err := session.OwnEmployeeID()
	if err != nil {
		return report.LeaveReport{}, err
	}

	records, err := s.leaveRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return report.LeaveReport{}, fmt.Errorf("failed to list leave records: %w", err)
	}

	result := report.LeaveReport{
		EmployeeID: employeeID,
		Records:    leave.ToResponses(records),
	}
	for _, r := range records {
		switch r.Status {
		case leave.StatusApproved:
			result.ApprovedDays += r.Days()
		case leave.StatusPending:
			result.PendingDays += r.Days()
		case leave.StatusRejected:
			result.RejectedDays += r.Days()
		}
	}
	return result, nil
}
