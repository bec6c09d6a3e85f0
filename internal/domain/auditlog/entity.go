package auditlog

import "time"

type Action string

const (
	ActionLogin           Action = "LOGIN"
	ActionLogout          Action = "LOGOUT"
	ActionPasswordChange  Action = "PASSWORD_CHANGE"
	ActionPasswordReset   Action = "PASSWORD_RESET"
	ActionAddEmployee     Action = "ADD_EMPLOYEE"
	ActionUpdateEmployee  Action = "UPDATE_EMPLOYEE"
	ActionDeleteEmployee  Action = "DELETE_EMPLOYEE"
	ActionSetCompensation Action = "SET_COMPENSATION"
	ActionApplyLeave      Action = "APPLY_LEAVE"
	ActionApproveLeave    Action = "APPROVE_LEAVE"
	ActionRejectLeave     Action = "REJECT_LEAVE"
	ActionProcessPayroll  Action = "PROCESS_PAYROLL"
)

// Entry is append-only. It is never updated or deleted.
type Entry struct {
	ID        string
	Timestamp time.Time
	UserID    string
	Action    Action
	Details   string
}
