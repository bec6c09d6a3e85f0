package compensation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auditlog"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/compensation"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
)

type CompensationServiceImpl struct {
	compensationRepo compensation.CompensationRepository
	employeeRepo     employee.EmployeeRepository
	auditService     auditlog.AuditLogService
	now              func() time.Time
}

func NewCompensationService(
	compensationRepo compensation.CompensationRepository,
	employeeRepo employee.EmployeeRepository,
	auditService auditlog.AuditLogService,
) compensation.CompensationService {
	return &CompensationServiceImpl{
		compensationRepo: compensationRepo,
		employeeRepo:     employeeRepo,
		auditService:     auditService,
		now:              time.Now,
	}
}

// SetCompensation implements compensation.CompensationService.
func (s *CompensationServiceImpl) SetCompensation(ctx context.Context, session user.Session, employeeID string, req compensation.SetCompensationRequest) (compensation.CompensationResponse, error) {
	if err := session.RequireAdmin(); err != nil {
		return compensation.CompensationResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return compensation.CompensationResponse{}, err
	}

	e, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return compensation.CompensationResponse{}, err
	}

	if req.BaseSalary == nil {
		_, err := s.compensationRepo.Get(ctx, employeeID)
		if errors.Is(err, compensation.ErrCompensationNotFound) {
			return compensation.CompensationResponse{}, compensation.ErrBaseSalaryRequired
		}
		if err != nil {
			return compensation.CompensationResponse{}, fmt.Errorf("failed to get compensation: %w", err)
		}
	}

	saved, err := s.compensationRepo.Upsert(ctx, employeeID, req.ToPatch(), s.now().UTC())
	if err != nil {
		return compensation.CompensationResponse{}, fmt.Errorf("failed to save compensation: %w", err)
	}

	s.auditService.Record(ctx, session.UserID, auditlog.ActionSetCompensation, "Updated compensation for "+e.Name)
	return compensation.ToResponse(saved), nil
}

// GetCompensation implements compensation.CompensationService.
// An employee without a record gets the zero response.
func (s *CompensationServiceImpl) GetCompensation(ctx context.Context, session user.Session, employeeID string) (compensation.CompensationResponse, error) {
	if !session.IsAdmin() {
		own, err := session.OwnEmployeeID()
		if err != nil {
			return compensation.CompensationResponse{}, err
		}
		if own != employeeID {
			return compensation.CompensationResponse{}, user.ErrInsufficientPermissions
		}
	}

	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return compensation.CompensationResponse{}, err
	}

	c, err := s.compensationRepo.Get(ctx, employeeID)
	if errors.Is(err, compensation.ErrCompensationNotFound) {
		return compensation.ZeroResponse(employeeID), nil
	}
	if err != nil {
		return compensation.CompensationResponse{}, fmt.Errorf("failed to get compensation: %w", err)
	}
	return compensation.ToResponse(c), nil
}

// ListCompensation implements compensation.CompensationService.
func (s *CompensationServiceImpl) ListCompensation(ctx context.Context, session user.Session) ([]compensation.CompensationRow, error) {
	if err := session.RequireAdmin(); err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.List(ctx, employee.EmployeeFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	records, err := s.compensationRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list compensation: %w", err)
	}

	byEmployee := make(map[string]compensation.Compensation, len(records))
	for _, c := range records {
		byEmployee[c.EmployeeID] = c
	}

	rows := make([]compensation.CompensationRow, 0, len(employees))
	for _, e := range employees {
		row := compensation.CompensationRow{
			EmployeeID:   e.ID,
			EmployeeName: e.Name,
			Department:   string(e.Department),
		}
		if c, ok := byEmployee[e.ID]; ok {
			row.IsSet = true
			row.Compensation = compensation.ToResponse(c)
		} else {
			row.Compensation = compensation.ZeroResponse(e.ID)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
