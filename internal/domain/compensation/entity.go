package compensation

import (
	"time"

	"github.com/shopspring/decimal"
)

type PayFrequency string

const (
	PayFrequencyMonthly  PayFrequency = "monthly"
	PayFrequencyBiWeekly PayFrequency = "biweekly"
	PayFrequencyWeekly   PayFrequency = "weekly"
)

var PayFrequencies = []string{
	string(PayFrequencyMonthly),
	string(PayFrequencyBiWeekly),
	string(PayFrequencyWeekly),
}

var (
	DefaultTaxWithholdingPercent = decimal.NewFromInt(20)
	DefaultRetirementPercent     = decimal.NewFromInt(5)
)

type Benefits struct {
	HealthInsurance   bool
	RetirementPercent decimal.Decimal
}

// Compensation holds one employee's current pay terms. One record per employee.
type Compensation struct {
	EmployeeID            string
	BaseSalary            decimal.Decimal
	Bonus                 decimal.Decimal
	Allowances            decimal.Decimal
	TaxWithholdingPercent *decimal.Decimal // nil means DefaultTaxWithholdingPercent
	PayFrequency          PayFrequency
	Benefits              Benefits
	EffectiveDate         time.Time
	UpdatedAt             time.Time
}

// WithholdingPercent returns the stored rate or the default when unset.
func (c *Compensation) WithholdingPercent() decimal.Decimal {
	if c.TaxWithholdingPercent == nil {
		return DefaultTaxWithholdingPercent
	}
	return *c.TaxWithholdingPercent
}

// Patch lists the fields of a merge upsert. Nil fields keep their stored value.
type Patch struct {
	BaseSalary            *decimal.Decimal
	Bonus                 *decimal.Decimal
	Allowances            *decimal.Decimal
	TaxWithholdingPercent *decimal.Decimal
	PayFrequency          *PayFrequency
	HealthInsurance       *bool
	RetirementPercent     *decimal.Decimal
}

// New returns the record written when no compensation exists yet.
func New(employeeID string, at time.Time) Compensation {
	return Compensation{
		EmployeeID:   employeeID,
		BaseSalary:   decimal.Zero,
		Bonus:        decimal.Zero,
		Allowances:   decimal.Zero,
		PayFrequency: PayFrequencyMonthly,
		Benefits: Benefits{
			HealthInsurance:   true,
			RetirementPercent: DefaultRetirementPercent,
		},
		EffectiveDate: at,
		UpdatedAt:     at,
	}
}

// Merge applies the supplied patch fields onto c and stamps the write time.
func (c *Compensation) Merge(p Patch, at time.Time) {
	if p.BaseSalary != nil {
		c.BaseSalary = *p.BaseSalary
	}
	if p.Bonus != nil {
		c.Bonus = *p.Bonus
	}
	if p.Allowances != nil {
		c.Allowances = *p.Allowances
	}
	if p.TaxWithholdingPercent != nil {
		v := *p.TaxWithholdingPercent
		c.TaxWithholdingPercent = &v
	}
	if p.PayFrequency != nil {
		c.PayFrequency = *p.PayFrequency
	}
	if p.HealthInsurance != nil {
		c.Benefits.HealthInsurance = *p.HealthInsurance
	}
	if p.RetirementPercent != nil {
		c.Benefits.RetirementPercent = *p.RetirementPercent
	}
	c.EffectiveDate = at
	c.UpdatedAt = at
}
