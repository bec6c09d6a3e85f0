package compensation

import (
	"strings"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type SetCompensationRequest struct {
	BaseSalary            *decimal.Decimal `json:"base_salary,omitempty"`
	Bonus                 *decimal.Decimal `json:"bonus,omitempty"`
	Allowances            *decimal.Decimal `json:"allowances,omitempty"`
	TaxWithholdingPercent *decimal.Decimal `json:"tax_withholding_percent,omitempty"`
	PayFrequency          *string          `json:"pay_frequency,omitempty"`
	HealthInsurance       *bool            `json:"health_insurance,omitempty"`
	RetirementPercent     *decimal.Decimal `json:"retirement_percent,omitempty"`
}

func (r *SetCompensationRequest) Validate() error {
	var errs validator.ValidationErrors

	nonNegative := func(field string, v *decimal.Decimal) {
		if v != nil && !validator.IsNonNegative(*v) {
			errs.Add(field, field+" must not be negative")
		}
	}
	percent := func(field string, v *decimal.Decimal) {
		if v != nil && !validator.IsValidPercent(*v) {
			errs.Add(field, field+" must be between 0 and 100")
		}
	}

	nonNegative("base_salary", r.BaseSalary)
	nonNegative("bonus", r.Bonus)
	nonNegative("allowances", r.Allowances)
	percent("tax_withholding_percent", r.TaxWithholdingPercent)
	percent("retirement_percent", r.RetirementPercent)

	if r.PayFrequency != nil && !validator.IsInSlice(*r.PayFrequency, PayFrequencies) {
		errs.Add("pay_frequency", "pay_frequency must be one of: "+strings.Join(PayFrequencies, ", "))
	}

	return errs.Err()
}

func (r *SetCompensationRequest) ToPatch() Patch {
	p := Patch{
		BaseSalary:            r.BaseSalary,
		Bonus:                 r.Bonus,
		Allowances:            r.Allowances,
		TaxWithholdingPercent: r.TaxWithholdingPercent,
		HealthInsurance:       r.HealthInsurance,
		RetirementPercent:     r.RetirementPercent,
	}
	if r.PayFrequency != nil {
		freq := PayFrequency(*r.PayFrequency)
		p.PayFrequency = &freq
	}
	return p
}

type CompensationResponse struct {
	EmployeeID            string          `json:"employee_id"`
	BaseSalary            decimal.Decimal `json:"base_salary"`
	Bonus                 decimal.Decimal `json:"bonus"`
	Allowances            decimal.Decimal `json:"allowances"`
	TaxWithholdingPercent decimal.Decimal `json:"tax_withholding_percent"`
	PayFrequency          string          `json:"pay_frequency"`
	HealthInsurance       bool            `json:"health_insurance"`
	RetirementPercent     decimal.Decimal `json:"retirement_percent"`
	EffectiveDate         *time.Time      `json:"effective_date"`
}

type CompensationRow struct {
	EmployeeID   string               `json:"employee_id"`
	EmployeeName string               `json:"employee_name"`
	Department   string               `json:"department"`
	IsSet        bool                 `json:"is_set"`
	Compensation CompensationResponse `json:"compensation"`
}

func ToResponse(c Compensation) CompensationResponse {
	effective := c.EffectiveDate
	return CompensationResponse{
		EmployeeID:            c.EmployeeID,
		BaseSalary:            c.BaseSalary,
		Bonus:                 c.Bonus,
		Allowances:            c.Allowances,
		TaxWithholdingPercent: c.WithholdingPercent(),
		PayFrequency:          string(c.PayFrequency),
		HealthInsurance:       c.Benefits.HealthInsurance,
		RetirementPercent:     c.Benefits.RetirementPercent,
		EffectiveDate:         &effective,
	}
}

// ZeroResponse is shown for employees without a compensation record.
func ZeroResponse(employeeID string) CompensationResponse {
	return CompensationResponse{
		EmployeeID:            employeeID,
		BaseSalary:            decimal.Zero,
		Bonus:                 decimal.Zero,
		Allowances:            decimal.Zero,
		TaxWithholdingPercent: DefaultTaxWithholdingPercent,
		PayFrequency:          string(PayFrequencyMonthly),
		RetirementPercent:     decimal.Zero,
	}
}
