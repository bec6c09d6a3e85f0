package postgresql_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/auditlog"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/compensation"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/payroll-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSetup *TestDatabaseSetup

func TestMain(m *testing.M) {
	ctx := context.Background()

	setup, err := NewTestDatabase(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if setup == nil {
		fmt.Println("TEST_DATABASE_URL not set, skipping postgresql repository tests")
		os.Exit(0)
	}
	testSetup = setup

	code := m.Run()
	testSetup.Close()
	os.Exit(code)
}

func resetTables(t *testing.T) {
	t.Helper()
	require.NoError(t, testSetup.TruncateAllTables(context.Background()))
}

func date(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func createTestEmployee(t *testing.T, ctx context.Context, name, email string) employee.Employee {
	t.Helper()
	repo := postgresql.NewEmployeeRepository(testSetup.DB)
	emp, err := repo.Create(ctx, employee.Employee{
		Name:       name,
		Email:      email,
		Department: employee.DepartmentEngineering,
		Position:   "Engineer",
		HireDate:   date("2023-01-15"),
		Status:     employee.StatusActive,
	})
	require.NoError(t, err)
	return emp
}

// ===== EMPLOYEE REPOSITORY TESTS =====

func TestEmployeeRepository_CreateAndGet(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(testSetup.DB)

	created := createTestEmployee(t, ctx, "Alice", "alice@example.com")
	assert.NotEmpty(t, created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, employee.StatusActive, got.Status)
}

func TestEmployeeRepository_DuplicateEmail(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(testSetup.DB)

	createTestEmployee(t, ctx, "Alice", "alice@example.com")
	_, err := repo.Create(ctx, employee.Employee{
		Name:       "Other",
		Email:      "ALICE@example.com",
		Department: employee.DepartmentHR,
		Position:   "Recruiter",
		HireDate:   date("2023-01-15"),
		Status:     employee.StatusActive,
	})
	assert.ErrorIs(t, err, employee.ErrEmailExists)
}

func TestEmployeeRepository_GetByID_NotFound(t *testing.T) {
	resetTables(t)
	repo := postgresql.NewEmployeeRepository(testSetup.DB)

	_, err := repo.GetByID(context.Background(), "0192a3b4-0000-7000-8000-000000000000")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestEmployeeRepository_ListActive(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(testSetup.DB)

	createTestEmployee(t, ctx, "Bob", "bob@example.com")
	carol := createTestEmployee(t, ctx, "Carol", "carol@example.com")
	createTestEmployee(t, ctx, "Alice", "alice@example.com")

	carol.Status = employee.StatusInactive
	_, err := repo.Update(ctx, carol)
	require.NoError(t, err)

	active, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "Alice", active[0].Name)
	assert.Equal(t, "Bob", active[1].Name)

	count, err := repo.CountByStatus(ctx, employee.StatusInactive)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

// ===== COMPENSATION REPOSITORY TESTS =====

func TestCompensationRepository_UpsertMerges(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	emp := createTestEmployee(t, ctx, "Alice", "alice@example.com")
	repo := postgresql.NewCompensationRepository(testSetup.DB)

	base := decimal.NewFromInt(5000)
	first, err := repo.Upsert(ctx, emp.ID, compensation.Patch{BaseSalary: &base}, time.Now())
	require.NoError(t, err)
	assert.True(t, first.BaseSalary.Equal(base))
	assert.True(t, first.Bonus.IsZero())
	assert.Nil(t, first.TaxWithholdingPercent)
	assert.Equal(t, compensation.PayFrequencyMonthly, first.PayFrequency)

	bonus := decimal.NewFromInt(500)
	second, err := repo.Upsert(ctx, emp.ID, compensation.Patch{Bonus: &bonus}, time.Now())
	require.NoError(t, err)
	assert.True(t, second.BaseSalary.Equal(base), "base salary must survive a partial update")
	assert.True(t, second.Bonus.Equal(bonus))
}

func TestCompensationRepository_KeepsFullPrecision(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	emp := createTestEmployee(t, ctx, "Alice", "alice@example.com")
	repo := postgresql.NewCompensationRepository(testSetup.DB)

	base := decimal.RequireFromString("5000.123456789")
	withholding := decimal.RequireFromString("12.345678")
	_, err := repo.Upsert(ctx, emp.ID, compensation.Patch{BaseSalary: &base, TaxWithholdingPercent: &withholding}, time.Now())
	require.NoError(t, err)

	got, err := repo.Get(ctx, emp.ID)
	require.NoError(t, err)
	assert.True(t, got.BaseSalary.Equal(base), "got %s", got.BaseSalary)
	require.NotNil(t, got.TaxWithholdingPercent)
	assert.True(t, got.TaxWithholdingPercent.Equal(withholding), "got %s", got.TaxWithholdingPercent)
}

func TestCompensationRepository_Get_NotFound(t *testing.T) {
	resetTables(t)
	repo := postgresql.NewCompensationRepository(testSetup.DB)

	_, err := repo.Get(context.Background(), "0192a3b4-0000-7000-8000-000000000000")
	assert.ErrorIs(t, err, compensation.ErrCompensationNotFound)
}

// ===== PAYROLL REPOSITORY TESTS =====

func TestPayrollRepository_RunLifecycle(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	emp := createTestEmployee(t, ctx, "Alice", "alice@example.com")
	repo := postgresql.NewPayrollRepository(testSetup.DB)

	run, err := repo.CreateRun(ctx, payroll.Run{
		PayPeriodStart: date("2024-01-01"),
		PayPeriodEnd:   date("2024-01-31"),
		Status:         payroll.RunStatusPending,
		ProcessedBy:    "0192a3b4-0000-7000-8000-0000000000aa",
		TotalNetAmount: decimal.Zero,
		EmployeeIDs:    []string{emp.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, payroll.RunStatusPending, run.Status)

	_, err = repo.CreateItem(ctx, payroll.Item{
		PayrollRunID:  run.ID,
		EmployeeID:    emp.ID,
		GrossPay:      decimal.NewFromInt(5700),
		Deductions:    decimal.NewFromInt(1140),
		NetPay:        decimal.NewFromInt(4560),
		PaymentStatus: payroll.PaymentStatusProcessed,
	})
	require.NoError(t, err)

	finalized, err := repo.FinalizeRun(ctx, run.ID, payroll.Finalization{
		TotalNetAmount: decimal.NewFromInt(4560),
		Status:         payroll.RunStatusCompleted,
		CompletedAt:    time.Now(),
	})
	require.NoError(t, err)
	assert.Equal(t, payroll.RunStatusCompleted, finalized.Status)
	assert.True(t, finalized.TotalNetAmount.Equal(decimal.NewFromInt(4560)))
	assert.NotNil(t, finalized.CompletedAt)

	_, err = repo.FinalizeRun(ctx, run.ID, payroll.Finalization{Status: payroll.RunStatusCompleted, CompletedAt: time.Now()})
	assert.ErrorIs(t, err, payroll.ErrPayrollRunNotPending)

	items, err := repo.ListItemsByEmployee(ctx, emp.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].PayPeriodStart)
	assert.Equal(t, "2024-01-01", items[0].PayPeriodStart.Format("2006-01-02"))
}

func TestPayrollRepository_FinalizeRun_NotFound(t *testing.T) {
	resetTables(t)
	repo := postgresql.NewPayrollRepository(testSetup.DB)

	_, err := repo.FinalizeRun(context.Background(), "0192a3b4-0000-7000-8000-000000000000", payroll.Finalization{
		Status:      payroll.RunStatusCompleted,
		CompletedAt: time.Now(),
	})
	assert.ErrorIs(t, err, payroll.ErrPayrollRunNotFound)
}

// ===== LEAVE REPOSITORY TESTS =====

func TestLeaveRepository_UpdateStatusOnlyOnce(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	emp := createTestEmployee(t, ctx, "Alice", "alice@example.com")
	repo := postgresql.NewLeaveRepository(testSetup.DB)

	rec, err := repo.Create(ctx, leave.Record{
		EmployeeID: emp.ID,
		LeaveType:  leave.TypeAnnual,
		StartDate:  date("2024-03-01"),
		EndDate:    date("2024-03-05"),
		Reason:     "Vacation",
		Status:     leave.StatusPending,
	})
	require.NoError(t, err)

	reviewer := "0192a3b4-0000-7000-8000-0000000000aa"
	approved, err := repo.UpdateStatus(ctx, rec.ID, leave.StatusApproved, reviewer, time.Now())
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, approved.Status)
	require.NotNil(t, approved.ReviewedBy)
	assert.Equal(t, reviewer, *approved.ReviewedBy)

	_, err = repo.UpdateStatus(ctx, rec.ID, leave.StatusRejected, reviewer, time.Now())
	assert.ErrorIs(t, err, leave.ErrLeaveAlreadyProcessed)
}

// ===== USER REPOSITORY TESTS =====

func TestUserRepository_CreateAndLookup(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	emp := createTestEmployee(t, ctx, "Alice", "alice@example.com")
	repo := postgresql.NewUserRepository(testSetup.DB)

	hash := "$2a$10$abcdefghijklmnopqrstuv"
	created, err := repo.Create(ctx, user.User{
		Email:        "alice@example.com",
		PasswordHash: &hash,
		Role:         user.RoleEmployee,
		EmployeeID:   &emp.ID,
	})
	require.NoError(t, err)

	byEmail, err := repo.GetByEmail(ctx, "ALICE@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byEmployee, err := repo.GetByEmployeeID(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmployee.ID)

	_, err = repo.Create(ctx, user.User{Email: "Alice@Example.com", Role: user.RoleAdmin})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)

	require.NoError(t, repo.DeleteByEmployeeID(ctx, emp.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

// ===== AUDIT LOG REPOSITORY TESTS =====

func TestAuditLogRepository_ListNewestFirst(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	repo := postgresql.NewAuditLogRepository(testSetup.DB)

	for _, action := range []auditlog.Action{auditlog.ActionLogin, auditlog.ActionAddEmployee, auditlog.ActionLogout} {
		_, err := repo.Append(ctx, auditlog.Entry{UserID: "u1", Action: action})
		require.NoError(t, err)
	}

	entries, err := repo.List(ctx, auditlog.ListFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, auditlog.ActionLogout, entries[0].Action)

	filtered, err := repo.List(ctx, auditlog.ListFilter{Action: auditlog.ActionLogin, Limit: 10})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
}

func TestTransactor_RollsBackOnError(t *testing.T) {
	resetTables(t)
	ctx := context.Background()
	tx := postgresql.NewTransactor(testSetup.DB)
	repo := postgresql.NewEmployeeRepository(testSetup.DB)

	boom := errors.New("boom")
	err := tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		createTestEmployee(t, txCtx, "Alice", "alice@example.com")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
