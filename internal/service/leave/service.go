package leave

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auditlog"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

type LeaveServiceImpl struct {
	leave.LeaveRepository
	employeeRepo employee.EmployeeRepository
	auditService auditlog.AuditLogService
	now          func() time.Time
}

func NewLeaveService(
	leaveRepository leave.LeaveRepository,
	employeeRepository employee.EmployeeRepository,
	auditService auditlog.AuditLogService,
) leave.LeaveService {
	return &LeaveServiceImpl{
		LeaveRepository: leaveRepository,
		employeeRepo:    employeeRepository,
		auditService:    auditService,
		now:             time.Now,
	}
}

// ApplyLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) ApplyLeave(ctx context.Context, session user.Session, req leave.ApplyLeaveRequest) (leave.LeaveResponse, error) {
	employeeID, err := session.OwnEmployeeID()
	if err != nil {
		return leave.LeaveResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveResponse{}, err
	}

	if _, err := l.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return leave.LeaveResponse{}, err
	}

	record, err := l.LeaveRepository.Create(ctx, leave.Record{
		EmployeeID: employeeID,
		LeaveType:  leave.Type(req.LeaveType),
		StartDate:  req.StartDateParsed,
		EndDate:    req.EndDateParsed,
		Reason:     req.Reason,
		Status:     leave.StatusPending,
	})
	if err != nil {
		return leave.LeaveResponse{}, fmt.Errorf("failed to create leave record: %w", err)
	}

	l.auditService.Record(ctx, session.UserID, auditlog.ActionApplyLeave, fmt.Sprintf("Applied for %s leave from %s to %s",
		record.LeaveType,
		record.StartDate.Format(validator.DateLayout),
		record.EndDate.Format(validator.DateLayout),
	))

	return leave.ToResponse(record), nil
}

// ListMyLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) ListMyLeave(ctx context.Context, session user.Session) ([]leave.LeaveResponse, error) {
	employeeID, err := session.OwnEmployeeID()
	if err != nil {
		return nil, err
	}

	records, err := l.LeaveRepository.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave records: %w", err)
	}
	return leave.ToResponses(records), nil
}

// ListLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeave(ctx context.Context, session user.Session, status *leave.Status) ([]leave.LeaveResponse, error) {
	if err := session.RequireAdmin(); err != nil {
		return nil, err
	}

	records, err := l.LeaveRepository.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave records: %w", err)
	}
	return leave.ToResponses(records), nil
}

// ApproveLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) ApproveLeave(ctx context.Context, session user.Session, id string) (leave.LeaveResponse, error) {
	return l.review(ctx, session, id, leave.StatusApproved, auditlog.ActionApproveLeave, "Approved")
}

// RejectLeave implements leave.LeaveService.
func (l *LeaveServiceImpl) RejectLeave(ctx context.Context, session user.Session, id string) (leave.LeaveResponse, error) {
	return l.review(ctx, session, id, leave.StatusRejected, auditlog.ActionRejectLeave, "Rejected")
}

func (l *LeaveServiceImpl) review(ctx context.Context, session user.Session, id string, to leave.Status, action auditlog.Action, verb string) (leave.LeaveResponse, error) {
	if err := session.RequireAdmin(); err != nil {
		return leave.LeaveResponse{}, err
	}

	record, err := l.LeaveRepository.UpdateStatus(ctx, id, to, session.UserID, l.now().UTC())
	if err != nil {
		return leave.LeaveResponse{}, err
	}

	l.auditService.Record(ctx, session.UserID, action, fmt.Sprintf("%s leave request %s for employee %s", verb, record.ID, record.EmployeeID))
	return leave.ToResponse(record), nil
}
