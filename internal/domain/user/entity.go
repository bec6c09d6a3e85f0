package user

import "time"

type Role string

const (
	RoleAdmin    Role = "admin"    // Payroll administrator
	RoleEmployee Role = "employee" // Regular employee
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

type User struct {
	ID           string
	Email        string
	PasswordHash *string
	Role         Role
	EmployeeID   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	LastLogin    *time.Time
}

// IsAdmin checks if user is a payroll administrator
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
