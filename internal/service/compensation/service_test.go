package compensation

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auditlog"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/compensation"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/memory"
	auditlogsvc "github.com/cmlabs-hris/payroll-backend-go/internal/service/auditlog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var adminSession = user.Session{UserID: "admin-1", Role: user.RoleAdmin}

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

type compensationFixture struct {
	svc       compensation.CompensationService
	employees employee.EmployeeRepository
	records   compensation.CompensationRepository
	audit     auditlog.AuditLogRepository
}

func newCompensationFixture(t *testing.T) *compensationFixture {
	t.Helper()
	f := &compensationFixture{
		employees: memory.NewEmployeeRepository(),
		records:   memory.NewCompensationRepository(),
		audit:     memory.NewAuditLogRepository(),
	}
	f.svc = NewCompensationService(f.records, f.employees, auditlogsvc.NewAuditLogService(f.audit))
	return f
}

func (f *compensationFixture) addEmployee(t *testing.T, name, email string) employee.Employee {
	t.Helper()
	e, err := f.employees.Create(context.Background(), employee.Employee{
		Name:       name,
		Email:      email,
		Department: employee.DepartmentEngineering,
		Position:   "Engineer",
		HireDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Status:     employee.StatusActive,
	})
	require.NoError(t, err)
	return e
}

func TestCompensationService_SetCompensation_MergesFields(t *testing.T) {
	f := newCompensationFixture(t)
	ctx := context.Background()
	e := f.addEmployee(t, "Ana", "ana@example.com")

	first, err := f.svc.SetCompensation(ctx, adminSession, e.ID, compensation.SetCompensationRequest{
		BaseSalary: dec("5000"),
		Bonus:      dec("500"),
	})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("5000").Equal(first.BaseSalary))
	assert.True(t, compensation.DefaultTaxWithholdingPercent.Equal(first.TaxWithholdingPercent))

	second, err := f.svc.SetCompensation(ctx, adminSession, e.ID, compensation.SetCompensationRequest{
		Allowances: dec("200"),
	})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("5000").Equal(second.BaseSalary))
	assert.True(t, decimal.RequireFromString("500").Equal(second.Bonus))
	assert.True(t, decimal.RequireFromString("200").Equal(second.Allowances))

	entries, err := f.audit.List(ctx, auditlog.ListFilter{Action: auditlog.ActionSetCompensation, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestCompensationService_SetCompensation_BaseSalaryRequiredFirstTime(t *testing.T) {
	f := newCompensationFixture(t)
	e := f.addEmployee(t, "Ana", "ana@example.com")

	_, err := f.svc.SetCompensation(context.Background(), adminSession, e.ID, compensation.SetCompensationRequest{
		Bonus: dec("100"),
	})
	assert.ErrorIs(t, err, compensation.ErrBaseSalaryRequired)
}

func TestCompensationService_SetCompensation_Validation(t *testing.T) {
	f := newCompensationFixture(t)
	e := f.addEmployee(t, "Ana", "ana@example.com")

	_, err := f.svc.SetCompensation(context.Background(), adminSession, e.ID, compensation.SetCompensationRequest{
		BaseSalary:            dec("-1"),
		TaxWithholdingPercent: dec("120"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_salary")
	assert.Contains(t, err.Error(), "tax_withholding_percent")
}

func TestCompensationService_SetCompensation_UnknownEmployee(t *testing.T) {
	f := newCompensationFixture(t)

	_, err := f.svc.SetCompensation(context.Background(), adminSession, "missing", compensation.SetCompensationRequest{
		BaseSalary: dec("1000"),
	})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestCompensationService_SetCompensation_RequiresAdmin(t *testing.T) {
	f := newCompensationFixture(t)
	e := f.addEmployee(t, "Ana", "ana@example.com")
	session := user.Session{UserID: "u-1", Role: user.RoleEmployee, EmployeeID: &e.ID}

	_, err := f.svc.SetCompensation(context.Background(), session, e.ID, compensation.SetCompensationRequest{
		BaseSalary: dec("1000"),
	})
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)
}

func TestCompensationService_GetCompensation(t *testing.T) {
	f := newCompensationFixture(t)
	ctx := context.Background()
	ana := f.addEmployee(t, "Ana", "ana@example.com")
	ben := f.addEmployee(t, "Ben", "ben@example.com")

	t.Run("absent record is zero", func(t *testing.T) {
		resp, err := f.svc.GetCompensation(ctx, adminSession, ana.ID)
		require.NoError(t, err)
		assert.True(t, resp.BaseSalary.IsZero())
		assert.Nil(t, resp.EffectiveDate)
	})

	t.Run("employee reads own record", func(t *testing.T) {
		_, err := f.svc.SetCompensation(ctx, adminSession, ana.ID, compensation.SetCompensationRequest{BaseSalary: dec("3000")})
		require.NoError(t, err)

		session := user.Session{UserID: "u-ana", Role: user.RoleEmployee, EmployeeID: &ana.ID}
		resp, err := f.svc.GetCompensation(ctx, session, ana.ID)
		require.NoError(t, err)
		assert.True(t, decimal.RequireFromString("3000").Equal(resp.BaseSalary))
	})

	t.Run("employee cannot read others", func(t *testing.T) {
		session := user.Session{UserID: "u-ben", Role: user.RoleEmployee, EmployeeID: &ben.ID}
		_, err := f.svc.GetCompensation(ctx, session, ana.ID)
		assert.ErrorIs(t, err, user.ErrInsufficientPermissions)
	})
}

func TestCompensationService_ListCompensation_JoinsEmployees(t *testing.T) {
	f := newCompensationFixture(t)
	ctx := context.Background()
	ana := f.addEmployee(t, "Ana", "ana@example.com")
	ben := f.addEmployee(t, "Ben", "ben@example.com")

	_, err := f.svc.SetCompensation(ctx, adminSession, ana.ID, compensation.SetCompensationRequest{BaseSalary: dec("5000")})
	require.NoError(t, err)

	rows, err := f.svc.ListCompensation(ctx, adminSession)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byID := map[string]compensation.CompensationRow{}
	for _, r := range rows {
		byID[r.EmployeeID] = r
	}
	assert.True(t, byID[ana.ID].IsSet)
	assert.Equal(t, "Ana", byID[ana.ID].EmployeeName)
	assert.False(t, byID[ben.ID].IsSet)
	assert.True(t, byID[ben.ID].Compensation.BaseSalary.IsZero())
}
