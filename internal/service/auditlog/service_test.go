package auditlog

import (
	"context"
	"errors"
	"testing"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auditlog"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	adminSession    = user.Session{UserID: "admin-1", Role: user.RoleAdmin}
	employeeSession = user.Session{UserID: "user-1", Role: user.RoleEmployee}
)

type failingRepo struct{}

func (failingRepo) Append(ctx context.Context, entry auditlog.Entry) (auditlog.Entry, error) {
	return auditlog.Entry{}, errors.New("store unavailable")
}

func (failingRepo) List(ctx context.Context, filter auditlog.ListFilter) ([]auditlog.Entry, error) {
	return nil, errors.New("store unavailable")
}

func TestAuditLogService_RecordAndList(t *testing.T) {
	ctx := context.Background()
	svc := NewAuditLogService(memory.NewAuditLogRepository())

	svc.Record(ctx, "admin-1", auditlog.ActionAddEmployee, "Added employee Alice")
	svc.Record(ctx, "admin-1", auditlog.ActionProcessPayroll, "Processed payroll for 2024-01-01 to 2024-01-31")

	entries, err := svc.List(ctx, adminSession, auditlog.ListFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, auditlog.ActionProcessPayroll, entries[0].Action)
	assert.Equal(t, "admin-1", entries[1].UserID)
	assert.False(t, entries[0].Timestamp.IsZero())
}

func TestAuditLogService_RecordNeverFails(t *testing.T) {
	svc := NewAuditLogService(failingRepo{})

	assert.NotPanics(t, func() {
		svc.Record(context.Background(), "admin-1", auditlog.ActionLogin, "")
	})
}

func TestAuditLogService_RecordSurvivesCancelledContext(t *testing.T) {
	repo := memory.NewAuditLogRepository()
	svc := NewAuditLogService(repo)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	svc.Record(ctx, "user-1", auditlog.ActionLogout, "")

	entries, err := repo.List(context.Background(), auditlog.ListFilter{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAuditLogService_List_AdminOnly(t *testing.T) {
	svc := NewAuditLogService(memory.NewAuditLogRepository())

	_, err := svc.List(context.Background(), employeeSession, auditlog.ListFilter{})
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)
}

func TestAuditLogService_List_FilterByAction(t *testing.T) {
	ctx := context.Background()
	svc := NewAuditLogService(memory.NewAuditLogRepository())

	svc.Record(ctx, "u1", auditlog.ActionLogin, "")
	svc.Record(ctx, "u2", auditlog.ActionLogin, "")
	svc.Record(ctx, "u1", auditlog.ActionLogout, "")

	entries, err := svc.List(ctx, adminSession, auditlog.ListFilter{Action: auditlog.ActionLogin, Limit: 1})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "u2", entries[0].UserID)
}
