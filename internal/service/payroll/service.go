package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auditlog"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/compensation"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type PayrollServiceImpl struct {
	payrollRepo      payroll.PayrollRepository
	employeeRepo     employee.EmployeeRepository
	compensationRepo compensation.CompensationRepository
	auditService     auditlog.AuditLogService
	workers          int
	now              func() time.Time
}

// NewPayrollService creates the run orchestrator. workers <= 1 processes employees sequentially.
func NewPayrollService(
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	compensationRepo compensation.CompensationRepository,
	auditService auditlog.AuditLogService,
	workers int,
) payroll.PayrollService {
	if workers < 1 {
		workers = 1
	}
	return &PayrollServiceImpl{
		payrollRepo:      payrollRepo,
		employeeRepo:     employeeRepo,
		compensationRepo: compensationRepo,
		auditService:     auditService,
		workers:          workers,
		now:              time.Now,
	}
}

// itemOutcome is the result of one employee's slot in a run.
type itemOutcome struct {
	item    payroll.Item
	written bool
	failed  bool
}

// RunPayroll implements payroll.PayrollService.
func (s *PayrollServiceImpl) RunPayroll(ctx context.Context, session user.Session, req payroll.RunPayrollRequest) (payroll.RunDetailResponse, error) {
	if err := session.RequireAdmin(); err != nil {
		return payroll.RunDetailResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return payroll.RunDetailResponse{}, err
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return payroll.RunDetailResponse{}, fmt.Errorf("failed to list active employees: %w", err)
	}

	employeeIDs := make([]string, 0, len(employees))
	for _, e := range employees {
		employeeIDs = append(employeeIDs, e.ID)
	}

	run, err := s.payrollRepo.CreateRun(ctx, payroll.Run{
		PayPeriodStart: req.Period.Start,
		PayPeriodEnd:   req.Period.End,
		RunTimestamp:   s.now().UTC(),
		Status:         payroll.RunStatusPending,
		ProcessedBy:    session.UserID,
		TotalNetAmount: decimal.Zero,
		EmployeeIDs:    employeeIDs,
	})
	if err != nil {
		return payroll.RunDetailResponse{}, fmt.Errorf("failed to create payroll run: %w", err)
	}

	slog.Info("Payroll run started",
		"payroll_run_id", run.ID,
		"employee_count", len(employeeIDs),
		"workers", s.workers,
	)

	// A started run completes even if the caller goes away.
	runCtx := context.WithoutCancel(ctx)
	outcomes := s.processEmployees(runCtx, run, employeeIDs)

	items := make([]payroll.Item, 0, len(outcomes))
	failed := make([]string, 0)
	for i, o := range outcomes {
		if o.written {
			items = append(items, o.item)
		}
		if o.failed {
			failed = append(failed, employeeIDs[i])
		}
	}

	status := payroll.RunStatusCompleted
	if len(failed) > 0 {
		status = payroll.RunStatusCompletedWithErrors
	}

	run, err = s.payrollRepo.FinalizeRun(runCtx, run.ID, payroll.Finalization{
		TotalNetAmount:    payroll.SumNetPay(items),
		Status:            status,
		FailedEmployeeIDs: failed,
		CompletedAt:       s.now().UTC(),
	})
	if err != nil {
		return payroll.RunDetailResponse{}, fmt.Errorf("failed to finalize payroll run: %w", err)
	}

	slog.Info("Payroll run finalized",
		"payroll_run_id", run.ID,
		"status", run.Status,
		"total_net_amount", run.TotalNetAmount.String(),
		"failed_count", len(failed),
	)

	s.auditService.Record(runCtx, session.UserID, auditlog.ActionProcessPayroll, "Processed payroll run: "+run.ID)

	return payroll.RunDetailResponse{
		RunResponse: payroll.ToRunResponse(run),
		Items:       payroll.ToItemResponses(items),
	}, nil
}

// processEmployees fills one outcome per employee. Outcomes keep snapshot order.
func (s *PayrollServiceImpl) processEmployees(ctx context.Context, run payroll.Run, employeeIDs []string) []itemOutcome {
	outcomes := make([]itemOutcome, len(employeeIDs))

	if s.workers == 1 {
		for i, id := range employeeIDs {
			outcomes[i] = s.processEmployee(ctx, run, id)
		}
		return outcomes
	}

	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, id := range employeeIDs {
		g.Go(func() error {
			outcomes[i] = s.processEmployee(ctx, run, id)
			return nil
		})
	}
	// Wait is the barrier before finalization. Workers never return errors.
	_ = g.Wait()

	return outcomes
}

func (s *PayrollServiceImpl) processEmployee(ctx context.Context, run payroll.Run, employeeID string) itemOutcome {
	item, err := s.computeItem(ctx, run, employeeID)
	if err == nil {
		return itemOutcome{item: item, written: true}
	}

	slog.Error("Payroll item failed, substituting zero item",
		"payroll_run_id", run.ID,
		"employee_id", employeeID,
		"error", err,
	)

	zero, zeroErr := s.writeItem(ctx, run, employeeID, payroll.ZeroResult())
	if zeroErr != nil {
		slog.Error("Failed to write zero payroll item",
			"payroll_run_id", run.ID,
			"employee_id", employeeID,
			"error", zeroErr,
		)
		return itemOutcome{failed: true}
	}
	return itemOutcome{item: zero, written: true, failed: true}
}

func (s *PayrollServiceImpl) computeItem(ctx context.Context, run payroll.Run, employeeID string) (payroll.Item, error) {
	var comp *compensation.Compensation
	c, err := s.compensationRepo.Get(ctx, employeeID)
	switch {
	case err == nil:
		comp = &c
	case errors.Is(err, compensation.ErrCompensationNotFound):
		// No record contributes zero.
	default:
		return payroll.Item{}, fmt.Errorf("failed to get compensation: %w", err)
	}

	return s.writeItem(ctx, run, employeeID, payroll.Calculate(comp, run.Period()))
}

func (s *PayrollServiceImpl) writeItem(ctx context.Context, run payroll.Run, employeeID string, result payroll.Result) (payroll.Item, error) {
	item, err := s.payrollRepo.CreateItem(ctx, payroll.Item{
		PayrollRunID:  run.ID,
		EmployeeID:    employeeID,
		GrossPay:      result.GrossPay,
		Deductions:    result.Deductions,
		NetPay:        result.NetPay,
		PaymentStatus: payroll.PaymentStatusProcessed,
	})
	if err != nil {
		return payroll.Item{}, fmt.Errorf("failed to create payroll item: %w", err)
	}
	return item, nil
}

// ListRuns implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListRuns(ctx context.Context, session user.Session, limit int) ([]payroll.RunResponse, error) {
	if err := session.RequireAdmin(); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > payroll.MaxRunListLimit {
		limit = payroll.DefaultRunListLimit
	}

	runs, err := s.payrollRepo.ListRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll runs: %w", err)
	}

	responses := make([]payroll.RunResponse, 0, len(runs))
	for _, r := range runs {
		responses = append(responses, payroll.ToRunResponse(r))
	}
	return responses, nil
}

// GetRun implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetRun(ctx context.Context, session user.Session, id string) (payroll.RunDetailResponse, error) {
	if err := session.RequireAdmin(); err != nil {
		return payroll.RunDetailResponse{}, err
	}

	run, err := s.payrollRepo.GetRunByID(ctx, id)
	if err != nil {
		return payroll.RunDetailResponse{}, err
	}

	items, err := s.payrollRepo.ListItemsByRun(ctx, id)
	if err != nil {
		return payroll.RunDetailResponse{}, fmt.Errorf("failed to list payroll items: %w", err)
	}

	return payroll.RunDetailResponse{
		RunResponse: payroll.ToRunResponse(run),
		Items:       payroll.ToItemResponses(items),
	}, nil
}

// ListStalePendingRuns implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListStalePendingRuns(ctx context.Context, olderThan time.Duration) ([]payroll.Run, error) {
	runs, err := s.payrollRepo.ListPendingRunsBefore(ctx, s.now().UTC().Add(-olderThan))
	if err != nil {
		return nil, fmt.Errorf("failed to list pending payroll runs: %w", err)
	}
	return runs, nil
}
