package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/compensation"
	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const compensationColumns = `employee_id, base_salary, bonus, allowances, tax_withholding_percent,
	pay_frequency, health_insurance, retirement_percent, effective_date, updated_at`

type compensationRepositoryImpl struct {
	db *database.DB
}

func NewCompensationRepository(db *database.DB) compensation.CompensationRepository {
	return &compensationRepositoryImpl{db: db}
}

func scanCompensation(row pgx.Row) (compensation.Compensation, error) {
	var c compensation.Compensation
	var withholding decimal.NullDecimal
	err := row.Scan(
		&c.EmployeeID,
		&c.BaseSalary,
		&c.Bonus,
		&c.Allowances,
		&withholding,
		&c.PayFrequency,
		&c.Benefits.HealthInsurance,
		&c.Benefits.RetirementPercent,
		&c.EffectiveDate,
		&c.UpdatedAt,
	)
	if withholding.Valid {
		c.TaxWithholdingPercent = &withholding.Decimal
	}
	return c, err
}

func nullable(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

// Get implements compensation.CompensationRepository.
func (r *compensationRepositoryImpl) Get(ctx context.Context, employeeID string) (compensation.Compensation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + compensationColumns + ` FROM compensation WHERE employee_id = $1`

	c, err := scanCompensation(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return compensation.Compensation{}, compensation.ErrCompensationNotFound
		}
		return compensation.Compensation{}, fmt.Errorf("failed to get compensation: %w", err)
	}
	return c, nil
}

// Upsert implements compensation.CompensationRepository.
// Absent patch fields are sent as NULL: the insert falls back to the column defaults
// and the update keeps the stored value.
func (r *compensationRepositoryImpl) Upsert(ctx context.Context, employeeID string, patch compensation.Patch, at time.Time) (compensation.Compensation, error) {
	q := GetQuerier(ctx, r.db)

	var payFrequency *string
	if patch.PayFrequency != nil {
		s := string(*patch.PayFrequency)
		payFrequency = &s
	}

	query := `
		INSERT INTO compensation (
			employee_id, base_salary, bonus, allowances, tax_withholding_percent,
			pay_frequency, health_insurance, retirement_percent, effective_date, updated_at
		)
		VALUES (
			$1, COALESCE($2::numeric, 0), COALESCE($3::numeric, 0), COALESCE($4::numeric, 0), $5::numeric,
			COALESCE($6::text, 'monthly'), COALESCE($7::boolean, TRUE), COALESCE($8::numeric, 5),
			$9::timestamptz, $9::timestamptz
		)
		ON CONFLICT (employee_id) DO UPDATE SET
			base_salary             = COALESCE($2, compensation.base_salary),
			bonus                   = COALESCE($3, compensation.bonus),
			allowances              = COALESCE($4, compensation.allowances),
			tax_withholding_percent = COALESCE($5, compensation.tax_withholding_percent),
			pay_frequency           = COALESCE($6, compensation.pay_frequency),
			health_insurance        = COALESCE($7, compensation.health_insurance),
			retirement_percent      = COALESCE($8, compensation.retirement_percent),
			effective_date          = $9,
			updated_at              = $9
		RETURNING ` + compensationColumns

	c, err := scanCompensation(q.QueryRow(ctx, query,
		employeeID,
		nullable(patch.BaseSalary),
		nullable(patch.Bonus),
		nullable(patch.Allowances),
		nullable(patch.TaxWithholdingPercent),
		payFrequency,
		patch.HealthInsurance,
		nullable(patch.RetirementPercent),
		at,
	))
	if err != nil {
		return compensation.Compensation{}, fmt.Errorf("failed to upsert compensation: %w", err)
	}
	return c, nil
}

// List implements compensation.CompensationRepository.
func (r *compensationRepositoryImpl) List(ctx context.Context) ([]compensation.Compensation, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT `+compensationColumns+` FROM compensation ORDER BY employee_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query compensation: %w", err)
	}
	defer rows.Close()

	records := []compensation.Compensation{}
	for rows.Next() {
		c, err := scanCompensation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan compensation: %w", err)
		}
		records = append(records, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}
	return records, nil
}

// Delete implements compensation.CompensationRepository.
func (r *compensationRepositoryImpl) Delete(ctx context.Context, employeeID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM compensation WHERE employee_id = $1`, employeeID); err != nil {
		return fmt.Errorf("failed to delete compensation: %w", err)
	}
	return nil
}
