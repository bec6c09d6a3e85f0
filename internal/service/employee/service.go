package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auditlog"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/compensation"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/email"
)

type EmployeeServiceImpl struct {
	tx               database.Transactor
	employeeRepo     employee.EmployeeRepository
	compensationRepo compensation.CompensationRepository
	authService      auth.AuthService
	emailService     email.EmailService
	auditService     auditlog.AuditLogService
	loginURL         string
}

func NewEmployeeService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	compensationRepo compensation.CompensationRepository,
	authService auth.AuthService,
	emailService email.EmailService,
	auditService auditlog.AuditLogService,
	frontendURL string,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:               tx,
		employeeRepo:     employeeRepo,
		compensationRepo: compensationRepo,
		authService:      authService,
		emailService:     emailService,
		auditService:     auditService,
		loginURL:         frontendURL + "/login",
	}
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, session user.Session, req employee.CreateEmployeeRequest) (employee.CreateEmployeeResponse, error) {
	if err := session.RequireAdmin(); err != nil {
		return employee.CreateEmployeeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.CreateEmployeeResponse{}, err
	}

	var created employee.Employee
	var identity auth.CreatedIdentity
	var identityFailed bool

	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.employeeRepo.Create(txCtx, employee.Employee{
			Name:       req.Name,
			Email:      req.Email,
			Phone:      req.Phone,
			Department: employee.Department(req.Department),
			Position:   req.Position,
			HireDate:   req.HireDateParsed,
			Status:     employee.Status(req.Status),
		})
		if err != nil {
			return err
		}

		identity, err = s.authService.CreateIdentity(txCtx, auth.CreateIdentityRequest{
			Email:      created.Email,
			Role:       user.RoleEmployee,
			EmployeeID: &created.ID,
		})
		if err != nil {
			identityFailed = true
			if errors.Is(err, user.ErrUserEmailExists) {
				return employee.ErrEmailExists
			}
			return fmt.Errorf("failed to create login for employee: %w", err)
		}
		return nil
	})
	if err != nil {
		if identityFailed {
			s.removeOrphanedEmployee(ctx, created.ID)
		}
		return employee.CreateEmployeeResponse{}, err
	}

	if err := s.emailService.SendWelcome(created.Email, created.Name, identity.TemporaryPassword, s.loginURL); err != nil {
		slog.Error("failed to send welcome email", "employee_id", created.ID, "error", err)
	}

	s.auditService.Record(ctx, session.UserID, auditlog.ActionAddEmployee, "Added employee "+created.Name)

	return employee.CreateEmployeeResponse{
		EmployeeResponse:  employee.ToResponse(created),
		UserID:            identity.User.ID,
		TemporaryPassword: identity.TemporaryPassword,
	}, nil
}

// removeOrphanedEmployee deletes an employee whose login could not be created.
// A rolled-back transaction already removed it. Stores without transactions still hold it.
func (s *EmployeeServiceImpl) removeOrphanedEmployee(ctx context.Context, id string) {
	if _, err := s.employeeRepo.GetByID(ctx, id); err != nil {
		if !errors.Is(err, employee.ErrEmployeeNotFound) {
			slog.Error("failed to look up employee after identity error", "employee_id", id, "error", err)
		}
		return
	}
	if err := s.employeeRepo.Delete(ctx, id); err != nil {
		slog.Error("failed to remove employee after identity error", "employee_id", id, "error", err)
	}
}

// GetEmployee implements employee.EmployeeService. Employees may only read their own record.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, session user.Session, id string) (employee.EmployeeResponse, error) {
	if !session.IsAdmin() {
		own, err := session.OwnEmployeeID()
		if err != nil {
			return employee.EmployeeResponse{}, err
		}
		if own != id {
			return employee.EmployeeResponse{}, user.ErrInsufficientPermissions
		}
	}

	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(e), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, session user.Session, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := session.RequireAdmin(); err != nil {
		return employee.EmployeeResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	current, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	req.Apply(&current)

	updated, err := s.employeeRepo.Update(ctx, current)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	s.auditService.Record(ctx, session.UserID, auditlog.ActionUpdateEmployee, "Updated employee "+updated.Name)
	return employee.ToResponse(updated), nil
}

// DeleteEmployee implements employee.EmployeeService.
// Payroll items of the employee are kept as history.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, session user.Session, id string) error {
	if err := session.RequireAdmin(); err != nil {
		return err
	}
	if session.EmployeeID != nil && *session.EmployeeID == id {
		return employee.ErrCannotDeleteSelf
	}

	var deleted employee.Employee
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		deleted, err = s.employeeRepo.GetByID(txCtx, id)
		if err != nil {
			return err
		}
		if err := s.authService.DeleteIdentityByEmployeeID(txCtx, id); err != nil {
			return err
		}
		if err := s.compensationRepo.Delete(txCtx, id); err != nil {
			return err
		}
		return s.employeeRepo.Delete(txCtx, id)
	})
	if err != nil {
		return err
	}

	s.auditService.Record(ctx, session.UserID, auditlog.ActionDeleteEmployee, "Deleted employee "+deleted.Name)
	return nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, session user.Session, filter employee.EmployeeFilter) ([]employee.EmployeeResponse, error) {
	if err := session.RequireAdmin(); err != nil {
		return nil, err
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	employees, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		responses = append(responses, employee.ToResponse(e))
	}
	return responses, nil
}
