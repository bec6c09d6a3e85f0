package user

type Permission string

const (
	// Self Management
	PermissionViewOwnDashboard Permission = "dashboard.view_own"
	PermissionChangePassword   Permission = "password.change"

	// Leave Management
	PermissionLeaveViewOwn Permission = "leave.view_own"
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveViewAll Permission = "leave.view_all"
	PermissionLeaveApprove Permission = "leave.approve"

	// Employee Management
	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"

	// Compensation & Payroll
	PermissionCompensationManage Permission = "compensation.manage"
	PermissionPayrollRun         Permission = "payroll.run"
	PermissionPayrollView        Permission = "payroll.view"
	PermissionSalaryViewOwn      Permission = "salary.view_own"

	// Reports
	PermissionReportsView   Permission = "reports.view"
	PermissionAuditLogsView Permission = "audit_logs.view"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionChangePassword,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionCompensationManage,
		PermissionPayrollRun,
		PermissionPayrollView,
		PermissionReportsView,
		PermissionAuditLogsView,
	},
	RoleEmployee: {
		PermissionViewOwnDashboard,
		PermissionChangePassword,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionSalaryViewOwn,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
