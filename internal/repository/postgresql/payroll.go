package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

const runColumns = `id, pay_period_start, pay_period_end, run_timestamp, status, processed_by,
	total_net_amount, employee_ids, failed_employee_ids, completed_at`

const itemColumns = `id, payroll_run_id, employee_id, gross_pay, deductions, net_pay, payment_status, created_at`

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

func scanRun(row pgx.Row) (payroll.Run, error) {
	var run payroll.Run
	err := row.Scan(
		&run.ID,
		&run.PayPeriodStart,
		&run.PayPeriodEnd,
		&run.RunTimestamp,
		&run.Status,
		&run.ProcessedBy,
		&run.TotalNetAmount,
		&run.EmployeeIDs,
		&run.FailedEmployeeIDs,
		&run.CompletedAt,
	)
	return run, err
}

func scanItem(row pgx.Row) (payroll.Item, error) {
	var item payroll.Item
	err := row.Scan(
		&item.ID,
		&item.PayrollRunID,
		&item.EmployeeID,
		&item.GrossPay,
		&item.Deductions,
		&item.NetPay,
		&item.PaymentStatus,
		&item.CreatedAt,
	)
	return item, err
}

func collectRuns(rows pgx.Rows) ([]payroll.Run, error) {
	defer rows.Close()

	runs := []payroll.Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return runs, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// ========== RUNS ==========

func (r *payrollRepositoryImpl) CreateRun(ctx context.Context, run payroll.Run) (payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	if run.ID == "" {
		run.ID = database.NewID()
	}
	if run.RunTimestamp.IsZero() {
		run.RunTimestamp = time.Now()
	}

	query := `
		INSERT INTO payroll_runs (
			id, pay_period_start, pay_period_end, run_timestamp, status, processed_by,
			total_net_amount, employee_ids, failed_employee_ids
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + runColumns

	created, err := scanRun(q.QueryRow(ctx, query,
		run.ID,
		run.PayPeriodStart,
		run.PayPeriodEnd,
		run.RunTimestamp,
		run.Status,
		run.ProcessedBy,
		run.TotalNetAmount,
		nonNil(run.EmployeeIDs),
		nonNil(run.FailedEmployeeIDs),
	))
	if err != nil {
		return payroll.Run{}, fmt.Errorf("failed to create payroll run: %w", err)
	}
	return created, nil
}

func (r *payrollRepositoryImpl) GetRunByID(ctx context.Context, id string) (payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	run, err := scanRun(q.QueryRow(ctx, `SELECT `+runColumns+` FROM payroll_runs WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Run{}, payroll.ErrPayrollRunNotFound
		}
		return payroll.Run{}, fmt.Errorf("failed to get payroll run: %w", err)
	}
	return run, nil
}

func (r *payrollRepositoryImpl) ListRuns(ctx context.Context, limit int) ([]payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + runColumns + ` FROM payroll_runs ORDER BY run_timestamp DESC, id DESC LIMIT $1`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll runs: %w", err)
	}
	return collectRuns(rows)
}

func (r *payrollRepositoryImpl) FinalizeRun(ctx context.Context, id string, f payroll.Finalization) (payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_runs
		SET total_net_amount = $1, status = $2, failed_employee_ids = $3, completed_at = $4
		WHERE id = $5 AND status = 'pending'
		RETURNING ` + runColumns

	run, err := scanRun(q.QueryRow(ctx, query,
		f.TotalNetAmount,
		f.Status,
		nonNil(f.FailedEmployeeIDs),
		f.CompletedAt,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Either the run is missing or it was already finalized.
			if _, getErr := r.GetRunByID(ctx, id); getErr != nil {
				return payroll.Run{}, getErr
			}
			return payroll.Run{}, payroll.ErrPayrollRunNotPending
		}
		return payroll.Run{}, fmt.Errorf("failed to finalize payroll run: %w", err)
	}
	return run, nil
}

func (r *payrollRepositoryImpl) CountRunsByStatus(ctx context.Context, status payroll.RunStatus) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM payroll_runs WHERE status = $1`, status).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count payroll runs: %w", err)
	}
	return total, nil
}

func (r *payrollRepositoryImpl) ListPendingRunsBefore(ctx context.Context, before time.Time) ([]payroll.Run, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + runColumns + `
		FROM payroll_runs
		WHERE status = 'pending' AND run_timestamp < $1
		ORDER BY run_timestamp ASC`

	rows, err := q.Query(ctx, query, before)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending payroll runs: %w", err)
	}
	return collectRuns(rows)
}

// ========== ITEMS ==========

func (r *payrollRepositoryImpl) CreateItem(ctx context.Context, item payroll.Item) (payroll.Item, error) {
	q := GetQuerier(ctx, r.db)

	if item.ID == "" {
		item.ID = database.NewID()
	}

	query := `
		INSERT INTO payroll_items (id, payroll_run_id, employee_id, gross_pay, deductions, net_pay, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + itemColumns

	created, err := scanItem(q.QueryRow(ctx, query,
		item.ID,
		item.PayrollRunID,
		item.EmployeeID,
		item.GrossPay,
		item.Deductions,
		item.NetPay,
		item.PaymentStatus,
	))
	if err != nil {
		return payroll.Item{}, fmt.Errorf("failed to create payroll item for employee %s: %w", item.EmployeeID, err)
	}
	return created, nil
}

func (r *payrollRepositoryImpl) ListItemsByRun(ctx context.Context, runID string) ([]payroll.Item, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + itemColumns + ` FROM payroll_items WHERE payroll_run_id = $1 ORDER BY employee_id`

	rows, err := q.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll items: %w", err)
	}
	defer rows.Close()

	items := []payroll.Item{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return items, nil
}

func (r *payrollRepositoryImpl) ListItemsByEmployee(ctx context.Context, employeeID string) ([]payroll.Item, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT pi.id, pi.payroll_run_id, pi.employee_id, pi.gross_pay, pi.deductions, pi.net_pay,
		       pi.payment_status, pi.created_at, pr.pay_period_start, pr.pay_period_end
		FROM payroll_items pi
		INNER JOIN payroll_runs pr ON pi.payroll_run_id = pr.id
		WHERE pi.employee_id = $1
		ORDER BY pi.created_at DESC, pi.id DESC`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll items by employee: %w", err)
	}
	defer rows.Close()

	items := []payroll.Item{}
	for rows.Next() {
		var item payroll.Item
		err := rows.Scan(
			&item.ID,
			&item.PayrollRunID,
			&item.EmployeeID,
			&item.GrossPay,
			&item.Deductions,
			&item.NetPay,
			&item.PaymentStatus,
			&item.CreatedAt,
			&item.PayPeriodStart,
			&item.PayPeriodEnd,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return items, nil
}
