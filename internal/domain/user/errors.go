package user

import "errors"

var (
	ErrUserNotFound            = errors.New("user not found")
	ErrUserEmailExists         = errors.New("email already registered")
	ErrInvalidRole             = errors.New("role must be admin or employee")
	ErrAdminPrivilegeRequired  = errors.New("admin privilege required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
	ErrNoEmployeeRecord        = errors.New("user has no linked employee record")
	ErrUnauthenticated         = errors.New("authentication required")
)
