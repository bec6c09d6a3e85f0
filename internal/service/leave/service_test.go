package leave

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auditlog"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/memory"
	auditlogsvc "github.com/cmlabs-hris/payroll-backend-go/internal/service/auditlog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var adminSession = user.Session{UserID: "admin-1", Role: user.RoleAdmin}

type leaveFixture struct {
	svc     leave.LeaveService
	records leave.LeaveRepository
	audit   auditlog.AuditLogRepository
	session user.Session
}

func newLeaveFixture(t *testing.T) *leaveFixture {
	t.Helper()
	employees := memory.NewEmployeeRepository()
	e, err := employees.Create(context.Background(), employee.Employee{
		Name:       "Ana",
		Email:      "ana@example.com",
		Department: employee.DepartmentHR,
		Position:   "Recruiter",
		HireDate:   time.Date(2022, 1, 10, 0, 0, 0, 0, time.UTC),
		Status:     employee.StatusActive,
	})
	require.NoError(t, err)

	f := &leaveFixture{
		records: memory.NewLeaveRepository(),
		audit:   memory.NewAuditLogRepository(),
		session: user.Session{UserID: "u-ana", Role: user.RoleEmployee, EmployeeID: &e.ID},
	}
	f.svc = NewLeaveService(f.records, employees, auditlogsvc.NewAuditLogService(f.audit))
	return f
}

func (f *leaveFixture) apply(t *testing.T, start, end string) leave.LeaveResponse {
	t.Helper()
	resp, err := f.svc.ApplyLeave(context.Background(), f.session, leave.ApplyLeaveRequest{
		LeaveType: "annual",
		StartDate: start,
		EndDate:   end,
		Reason:    "holiday",
	})
	require.NoError(t, err)
	return resp
}

func TestLeaveService_ApplyLeave_Pending(t *testing.T) {
	f := newLeaveFixture(t)

	resp := f.apply(t, "2024-03-01", "2024-03-05")
	assert.Equal(t, string(leave.StatusPending), resp.Status)
	assert.Equal(t, *f.session.EmployeeID, resp.EmployeeID)
	assert.Equal(t, 5, resp.Days)

	entries, err := f.audit.List(context.Background(), auditlog.ListFilter{Action: auditlog.ActionApplyLeave, Limit: 10})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Applied for annual leave from 2024-03-01 to 2024-03-05", entries[0].Details)
}

func TestLeaveService_ApplyLeave_RequiresEmployeeRecord(t *testing.T) {
	f := newLeaveFixture(t)

	_, err := f.svc.ApplyLeave(context.Background(), adminSession, leave.ApplyLeaveRequest{
		LeaveType: "annual", StartDate: "2024-03-01", EndDate: "2024-03-02",
	})
	assert.ErrorIs(t, err, user.ErrNoEmployeeRecord)
}

func TestLeaveService_ApplyLeave_Validation(t *testing.T) {
	f := newLeaveFixture(t)

	_, err := f.svc.ApplyLeave(context.Background(), f.session, leave.ApplyLeaveRequest{
		LeaveType: "annual", StartDate: "2024-03-05", EndDate: "2024-03-01",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "end_date")
}

func TestLeaveService_ListMyLeave_NewestStartFirst(t *testing.T) {
	f := newLeaveFixture(t)
	f.apply(t, "2024-01-10", "2024-01-11")
	f.apply(t, "2024-05-01", "2024-05-02")
	f.apply(t, "2024-03-01", "2024-03-01")

	list, err := f.svc.ListMyLeave(context.Background(), f.session)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2024-05-01", list[0].StartDate)
	assert.Equal(t, "2024-03-01", list[1].StartDate)
	assert.Equal(t, "2024-01-10", list[2].StartDate)
}

func TestLeaveService_ApproveLeave_OnlyFromPending(t *testing.T) {
	f := newLeaveFixture(t)
	ctx := context.Background()
	applied := f.apply(t, "2024-03-01", "2024-03-05")

	approved, err := f.svc.ApproveLeave(ctx, adminSession, applied.ID)
	require.NoError(t, err)
	assert.Equal(t, string(leave.StatusApproved), approved.Status)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, "admin-1", *approved.ReviewedBy)

	_, err = f.svc.RejectLeave(ctx, adminSession, applied.ID)
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)

	_, err = f.svc.ApproveLeave(ctx, adminSession, "missing")
	assert.ErrorIs(t, err, leave.ErrLeaveNotFound)

	entries, err := f.audit.List(ctx, auditlog.ListFilter{Action: auditlog.ActionApproveLeave, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestLeaveService_Review_RequiresAdmin(t *testing.T) {
	f := newLeaveFixture(t)
	applied := f.apply(t, "2024-03-01", "2024-03-05")

	_, err := f.svc.ApproveLeave(context.Background(), f.session, applied.ID)
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)
}

func TestLeaveService_ListLeave_ByStatus(t *testing.T) {
	f := newLeaveFixture(t)
	ctx := context.Background()
	first := f.apply(t, "2024-03-01", "2024-03-05")
	f.apply(t, "2024-04-01", "2024-04-02")

	_, err := f.svc.RejectLeave(ctx, adminSession, first.ID)
	require.NoError(t, err)

	all, err := f.svc.ListLeave(ctx, adminSession, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending := leave.StatusPending
	onlyPending, err := f.svc.ListLeave(ctx, adminSession, &pending)
	require.NoError(t, err)
	require.Len(t, onlyPending, 1)
	assert.Equal(t, "2024-04-01", onlyPending[0].StartDate)
}
