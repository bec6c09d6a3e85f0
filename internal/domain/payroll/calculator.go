package payroll

import (
	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/compensation"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Result holds full-precision amounts. NetPay always equals GrossPay minus Deductions.
type Result struct {
	GrossPay   decimal.Decimal
	Deductions decimal.Decimal
	NetPay     decimal.Decimal
}

// ZeroResult is used for employees without compensation and for failed items.
func ZeroResult() Result {
	return Result{GrossPay: decimal.Zero, Deductions: decimal.Zero, NetPay: decimal.Zero}
}

// Rounded returns the two-decimal display values.
func (r Result) Rounded() Result {
	return Result{
		GrossPay:   r.GrossPay.Round(2),
		Deductions: r.Deductions.Round(2),
		NetPay:     r.NetPay.Round(2),
	}
}

// Calculate computes pay for one employee over one period.
//
//	gross      = base + bonus + allowances
//	deductions = gross * withholding / 100   (withholding defaults to 20)
//	net        = gross - deductions
//
// A nil compensation yields ZeroResult. The period is recorded by the caller
// and does not affect the amounts.
func Calculate(comp *compensation.Compensation, period Period) Result {
	if comp == nil {
		return ZeroResult()
	}

	gross := comp.BaseSalary.Add(comp.Bonus).Add(comp.Allowances)
	deductions := gross.Mul(comp.WithholdingPercent()).Div(hundred)

	return Result{
		GrossPay:   gross,
		Deductions: deductions,
		NetPay:     gross.Sub(deductions),
	}
}

// SumNetPay totals the net pay of items.
func SumNetPay(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.NetPay)
	}
	return total
}
