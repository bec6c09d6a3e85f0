package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	payrollRepo  payroll.PayrollRepository
	leaveRepo    leave.LeaveRepository
	now          func() time.Time
}

func NewDashboardService(
	employeeRepo employee.EmployeeRepository,
	payrollRepo payroll.PayrollRepository,
	leaveRepo leave.LeaveRepository,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		employeeRepo: employeeRepo,
		payrollRepo:  payrollRepo,
		leaveRepo:    leaveRepo,
		now:          time.Now,
	}
}

// GetAdminStats returns the administrator counts using parallel goroutines, one query each
func (s *DashboardServiceImpl) GetAdminStats(ctx context.Context, session user.Session) (dashboard.AdminStatsResponse, error) {
	if err := session.RequireAdmin(); err != nil {
		return dashboard.AdminStatsResponse{}, err
	}

	var stats dashboard.AdminStatsResponse
	g, gCtx := errgroup.WithContext(ctx)

	// 1. Total employees
	g.Go(func() error {
		n, err := s.employeeRepo.Count(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count employees: %w", err)
		}
		stats.TotalEmployees = n
		return nil
	})

	// 2. Active employees
	g.Go(func() error {
		n, err := s.employeeRepo.CountByStatus(gCtx, employee.StatusActive)
		if err != nil {
			return fmt.Errorf("failed to count active employees: %w", err)
		}
		stats.ActiveEmployees = n
		return nil
	})

	// 3. Pending payroll runs
	g.Go(func() error {
		n, err := s.payrollRepo.CountRunsByStatus(gCtx, payroll.RunStatusPending)
		if err != nil {
			return fmt.Errorf("failed to count pending payroll runs: %w", err)
		}
		stats.PendingPayrollRuns = n
		return nil
	})

	// 4. Pending leave requests
	g.Go(func() error {
		n, err := s.leaveRepo.CountByStatus(gCtx, leave.StatusPending)
		if err != nil {
			return fmt.Errorf("failed to count pending leave: %w", err)
		}
		stats.PendingLeaveRequest = n
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.AdminStatsResponse{}, err
	}

	stats.UpdatedAt = s.now().UTC().Format(time.RFC3339)
	return stats, nil
}

// GetEmployeeDashboard returns the caller's record, latest payslip and pending leave days
func (s *DashboardServiceImpl) GetEmployeeDashboard(ctx context.Context, session user.Session) (dashboard.EmployeeDashboardResponse, error) {
	employeeID, err := session.OwnEmployeeID()
	if err != nil {
		return dashboard.EmployeeDashboardResponse{}, err
	}

	var (
		record      employee.Employee
		items       []payroll.Item
		leaveRecord []leave.Record
	)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		record, err = s.employeeRepo.GetByID(gCtx, employeeID)
		return err
	})

	g.Go(func() error {
		var err error
		items, err = s.payrollRepo.ListItemsByEmployee(gCtx, employeeID)
		if err != nil {
			return fmt.Errorf("failed to list payroll items: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		leaveRecord, err = s.leaveRepo.ListByEmployee(gCtx, employeeID)
		if err != nil {
			return fmt.Errorf("failed to list leave records: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return dashboard.EmployeeDashboardResponse{}, err
	}

	resp := dashboard.EmployeeDashboardResponse{
		Employee: employee.ToResponse(record),
	}
	if len(items) > 0 {
		latest := payroll.ToItemResponse(items[0])
		resp.LatestPayslip = &latest
	}
	for _, r := range leaveRecord {
		if r.Status == leave.StatusPending {
			resp.PendingLeaveDays += r.Days()
		}
	}
	return resp, nil
}
