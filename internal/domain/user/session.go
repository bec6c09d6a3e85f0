package user

// Session is the authenticated caller of a service operation.
type Session struct {
	UserID     string
	Email      string
	Role       Role
	EmployeeID *string
}

func (s Session) IsAdmin() bool {
	return s.Role == RoleAdmin
}

// RequireAdmin returns ErrAdminPrivilegeRequired unless the session belongs to an administrator.
func (s Session) RequireAdmin() error {
	if !s.IsAdmin() {
		return ErrAdminPrivilegeRequired
	}
	return nil
}

// OwnEmployeeID returns the employee record linked to the session.
func (s Session) OwnEmployeeID() (string, error) {
	if s.EmployeeID == nil || *s.EmployeeID == "" {
		return "", ErrNoEmployeeRecord
	}
	return *s.EmployeeID, nil
}
