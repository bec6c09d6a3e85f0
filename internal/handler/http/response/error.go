package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/compensation"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrPasswordMismatch):
		BadRequest(w, "Current password is incorrect", nil)
	case errors.Is(err, auth.ErrSamePassword):
		BadRequest(w, "New password must differ from the current password", nil)
	case errors.Is(err, auth.ErrOAuthNotConfigured):
		NotFound(w, "Google sign-in is not configured")
	case errors.Is(err, auth.ErrAccountNotProvisioned):
		Forbidden(w, "No account is registered for this email")

	// User domain errors
	case errors.Is(err, user.ErrUnauthenticated):
		Unauthorized(w, "Authentication required")
	case errors.Is(err, user.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, user.ErrNoEmployeeRecord):
		Forbidden(w, "No employee record is linked to this account")
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, employee.ErrCannotDeleteSelf):
		Conflict(w, "Cannot delete your own employee record")

	// Compensation domain errors
	case errors.Is(err, compensation.ErrCompensationNotFound):
		NotFound(w, "Compensation not set for employee")
	case errors.Is(err, compensation.ErrBaseSalaryRequired):
		ValidationError(w, map[string]string{"base_salary": err.Error()})

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrPayrollRunNotPending):
		Conflict(w, "Payroll run is not pending")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave record not found")
	case errors.Is(err, leave.ErrLeaveAlreadyProcessed):
		Conflict(w, "Leave request already processed")

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
