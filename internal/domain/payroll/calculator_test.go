package payroll

import (
	"testing"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/domain/compensation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got.String())
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

var january = Period{
	Start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	End:   time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name           string
		comp           *compensation.Compensation
		wantGross      string
		wantDeductions string
		wantNet        string
	}{
		{
			name:           "no compensation yields zero",
			comp:           nil,
			wantGross:      "0",
			wantDeductions: "0",
			wantNet:        "0",
		},
		{
			name: "full compensation",
			comp: &compensation.Compensation{
				BaseSalary:            dec("5000"),
				Bonus:                 dec("500"),
				Allowances:            dec("200"),
				TaxWithholdingPercent: decPtr("20"),
			},
			wantGross:      "5700",
			wantDeductions: "1140",
			wantNet:        "4560",
		},
		{
			name: "base only uses default withholding",
			comp: &compensation.Compensation{
				BaseSalary: dec("3000"),
			},
			wantGross:      "3000",
			wantDeductions: "600",
			wantNet:        "2400",
		},
		{
			name: "zero withholding",
			comp: &compensation.Compensation{
				BaseSalary:            dec("1000"),
				TaxWithholdingPercent: decPtr("0"),
			},
			wantGross:      "1000",
			wantDeductions: "0",
			wantNet:        "1000",
		},
		{
			name: "full withholding",
			comp: &compensation.Compensation{
				BaseSalary:            dec("1000"),
				Bonus:                 dec("1"),
				TaxWithholdingPercent: decPtr("100"),
			},
			wantGross:      "1001",
			wantDeductions: "1001",
			wantNet:        "0",
		},
		{
			name: "fractional amounts keep full precision",
			comp: &compensation.Compensation{
				BaseSalary:            dec("1234.565"),
				Allowances:            dec("0.005"),
				TaxWithholdingPercent: decPtr("12.5"),
			},
			wantGross:      "1234.57",
			wantDeductions: "154.32125",
			wantNet:        "1080.24875",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.comp, january)

			assertDecimal(t, tt.wantGross, got.GrossPay)
			assertDecimal(t, tt.wantDeductions, got.Deductions)
			assertDecimal(t, tt.wantNet, got.NetPay)
			assert.True(t, got.NetPay.Equal(got.GrossPay.Sub(got.Deductions)))
		})
	}
}

func TestCalculate_IsPure(t *testing.T) {
	comp := &compensation.Compensation{
		BaseSalary: dec("4200.10"),
		Bonus:      dec("99.99"),
	}
	other := Period{Start: january.Start.AddDate(1, 0, 0), End: january.End.AddDate(1, 0, 0)}

	first := Calculate(comp, january)
	second := Calculate(comp, other)

	assert.True(t, first.GrossPay.Equal(second.GrossPay))
	assert.True(t, first.Deductions.Equal(second.Deductions))
	assert.True(t, first.NetPay.Equal(second.NetPay))
	assertDecimal(t, "4200.10", comp.BaseSalary)
}

func TestCalculate_NoFloatDrift(t *testing.T) {
	comp := &compensation.Compensation{BaseSalary: dec("0.1"), Bonus: dec("0.2")}

	total := decimal.Zero
	for i := 0; i < 1000; i++ {
		total = total.Add(Calculate(comp, january).NetPay)
	}

	assertDecimal(t, "240", total)
}

func TestResult_Rounded(t *testing.T) {
	got := Result{
		GrossPay:   dec("1234.57"),
		Deductions: dec("154.32125"),
		NetPay:     dec("1080.24875"),
	}.Rounded()

	assertDecimal(t, "1234.57", got.GrossPay)
	assertDecimal(t, "154.32", got.Deductions)
	assertDecimal(t, "1080.25", got.NetPay)
}

func TestSumNetPay(t *testing.T) {
	items := []Item{
		{NetPay: dec("4560")},
		{NetPay: dec("0")},
		{NetPay: dec("0.005")},
	}
	assertDecimal(t, "4560.005", SumNetPay(items))
	assertDecimal(t, "0", SumNetPay(nil))
}

func TestRunPayrollRequest_Validate(t *testing.T) {
	t.Run("valid period", func(t *testing.T) {
		req := RunPayrollRequest{PayPeriodStart: "2024-01-01", PayPeriodEnd: "2024-01-31"}
		assert.NoError(t, req.Validate())
		assert.Equal(t, january.Start, req.Period.Start)
		assert.Equal(t, january.End, req.Period.End)
	})

	t.Run("end before start", func(t *testing.T) {
		req := RunPayrollRequest{PayPeriodStart: "2024-02-01", PayPeriodEnd: "2024-01-31"}
		assert.Error(t, req.Validate())
	})

	t.Run("missing dates", func(t *testing.T) {
		req := RunPayrollRequest{}
		assert.Error(t, req.Validate())
	})
}

func TestParseListLimit(t *testing.T) {
	n, err := ParseListLimit("")
	assert.NoError(t, err)
	assert.Equal(t, DefaultRunListLimit, n)

	n, err = ParseListLimit("25")
	assert.NoError(t, err)
	assert.Equal(t, 25, n)

	_, err = ParseListLimit("0")
	assert.Error(t, err)
	_, err = ParseListLimit("abc")
	assert.Error(t, err)
}
