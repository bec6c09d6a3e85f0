package report

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/compensation"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/report"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const employeeID = "emp-1"

type reportFixture struct {
	svc          report.ReportService
	compensation compensation.CompensationRepository
	payroll      payroll.PayrollRepository
	leave        leave.LeaveRepository
	session      user.Session
}

func newReportFixture(t *testing.T) *reportFixture {
	t.Helper()
	id := employeeID
	f := &reportFixture{
		compensation: memory.NewCompensationRepository(),
		payroll:      memory.NewPayrollRepository(),
		leave:        memory.NewLeaveRepository(),
		session:      user.Session{UserID: "u-1", Role: user.RoleEmployee, EmployeeID: &id},
	}
	f.svc = NewReportService(f.compensation, f.payroll, f.leave)
	return f
}

func (f *reportFixture) addItem(t *testing.T, start time.Time, gross, net string) {
	t.Helper()
	ctx := context.Background()
	run, err := f.payroll.CreateRun(ctx, payroll.Run{
		Status:         payroll.RunStatusCompleted,
		PayPeriodStart: start,
		PayPeriodEnd:   start.AddDate(0, 1, -1),
	})
	require.NoError(t, err)
	_, err = f.payroll.CreateItem(ctx, payroll.Item{
		PayrollRunID: run.ID,
		EmployeeID:   employeeID,
		GrossPay:     decimal.RequireFromString(gross),
		NetPay:       decimal.RequireFromString(net),
		CreatedAt:    start,
	})
	require.NoError(t, err)
}

func TestReportService_GetSalaryReport(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	base := decimal.NewFromInt(3000)
	_, err := f.compensation.Upsert(ctx, employeeID, compensation.Patch{BaseSalary: &base}, time.Now().UTC())
	require.NoError(t, err)

	f.addItem(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "3000", "2400")
	f.addItem(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), "3000.005", "2400.004")

	got, err := f.svc.GetSalaryReport(ctx, f.session)
	require.NoError(t, err)
	require.NotNil(t, got.Compensation)
	assert.True(t, base.Equal(got.Compensation.BaseSalary))
	require.Len(t, got.Payslips, 2)
	assert.Equal(t, "2024-02-01", got.Payslips[0].PayPeriodStart)
	assert.True(t, decimal.RequireFromString("6000.01").Equal(got.TotalGrossPaid))
	assert.True(t, decimal.RequireFromString("4800").Equal(got.TotalNetPaid))
}

func TestReportService_GetSalaryReport_NoCompensation(t *testing.T) {
	f := newReportFixture(t)

	got, err := f.svc.GetSalaryReport(context.Background(), f.session)
	require.NoError(t, err)
	assert.Nil(t, got.Compensation)
	assert.Empty(t, got.Payslips)
	assert.True(t, got.TotalNetPaid.IsZero())
}

func TestReportService_GetLeaveReport(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	add := func(start string, days int, status leave.Status) {
		s, err := time.Parse("2006-01-02", start)
		require.NoError(t, err)
		_, err = f.leave.Create(ctx, leave.Record{
			EmployeeID: employeeID,
			LeaveType:  leave.TypeAnnual,
			StartDate:  s,
			EndDate:    s.AddDate(0, 0, days-1),
			Status:     status,
		})
		require.NoError(t, err)
	}
	add("2024-01-02", 2, leave.StatusApproved)
	add("2024-03-04", 1, leave.StatusPending)
	add("2024-02-05", 4, leave.StatusRejected)

	got, err := f.svc.GetLeaveReport(ctx, f.session)
	require.NoError(t, err)
	require.Len(t, got.Records, 3)
	assert.Equal(t, "2024-03-04", got.Records[0].StartDate)
	assert.Equal(t, 2, got.ApprovedDays)
	assert.Equal(t, 1, got.PendingDays)
	assert.Equal(t, 4, got.RejectedDays)
}

func TestReportService_RequiresEmployeeRecord(t *testing.T) {
	f := newReportFixture(t)
	admin := user.Session{UserID: "admin-1", Role: user.RoleAdmin}

	_, err := f.svc.GetSalaryReport(context.Background(), admin)
	assert.ErrorIs(t, err, user.ErrNoEmployeeRecord)
	_, err = f.svc.GetLeaveReport(context.Background(), admin)
	assert.ErrorIs(t, err, user.ErrNoEmployeeRecord)
}
