package payroll

import (
	"strconv"
	"time"

	"github.com/cmlabs-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

const (
	DefaultRunListLimit = 10
	MaxRunListLimit     = 100
)

type RunPayrollRequest struct {
	PayPeriodStart string `json:"pay_period_start"`
	PayPeriodEnd   string `json:"pay_period_end"`

	// Parsed by Validate
	Period Period `json:"-"`
}

func (r *RunPayrollRequest) Validate() error {
	var errs validator.ValidationErrors

	start, end := validator.DateRange(&errs, "pay_period_start", r.PayPeriodStart, "pay_period_end", r.PayPeriodEnd)
	if len(errs) > 0 {
		return errs
	}

	r.Period = Period{Start: start, End: end}
	return nil
}

// ParseListLimit reads the limit query value.
func ParseListLimit(s string) (int, error) {
	if s == "" {
		return DefaultRunListLimit, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > MaxRunListLimit {
		return 0, validator.ValidationErrors{{
			Field:   "limit",
			Message: "limit must be a number between 1 and 100",
		}}
	}
	return n, nil
}

type RunResponse struct {
	ID                string          `json:"id"`
	PayPeriodStart    string          `json:"pay_period_start"`
	PayPeriodEnd      string          `json:"pay_period_end"`
	RunTimestamp      time.Time       `json:"run_timestamp"`
	Status            RunStatus       `json:"status"`
	ProcessedBy       string          `json:"processed_by"`
	TotalNetAmount    decimal.Decimal `json:"total_net_amount"`
	EmployeeCount     int             `json:"employee_count"`
	EmployeeIDs       []string        `json:"employee_ids"`
	FailedEmployeeIDs []string        `json:"failed_employee_ids"`
	CompletedAt       *time.Time      `json:"completed_at,omitempty"`
}

type ItemResponse struct {
	ID             string          `json:"id"`
	PayrollRunID   string          `json:"payroll_run_id"`
	EmployeeID     string          `json:"employee_id"`
	GrossPay       decimal.Decimal `json:"gross_pay"`
	Deductions     decimal.Decimal `json:"deductions"`
	NetPay         decimal.Decimal `json:"net_pay"`
	PaymentStatus  PaymentStatus   `json:"payment_status"`
	PayPeriodStart string          `json:"pay_period_start,omitempty"`
	PayPeriodEnd   string          `json:"pay_period_end,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

type RunDetailResponse struct {
	RunResponse
	Items []ItemResponse `json:"items"`
}

func ToRunResponse(r Run) RunResponse {
	employeeIDs := r.EmployeeIDs
	if employeeIDs == nil {
		employeeIDs = []string{}
	}
	failed := r.FailedEmployeeIDs
	if failed == nil {
		failed = []string{}
	}
	return RunResponse{
		ID:                r.ID,
		PayPeriodStart:    r.PayPeriodStart.Format(validator.DateLayout),
		PayPeriodEnd:      r.PayPeriodEnd.Format(validator.DateLayout),
		RunTimestamp:      r.RunTimestamp,
		Status:            r.Status,
		ProcessedBy:       r.ProcessedBy,
		TotalNetAmount:    r.TotalNetAmount.Round(2),
		EmployeeCount:     len(employeeIDs),
		EmployeeIDs:       employeeIDs,
		FailedEmployeeIDs: failed,
		CompletedAt:       r.CompletedAt,
	}
}

func ToItemResponse(i Item) ItemResponse {
	rounded := Result{GrossPay: i.GrossPay, Deductions: i.Deductions, NetPay: i.NetPay}.Rounded()
	resp := ItemResponse{
		ID:            i.ID,
		PayrollRunID:  i.PayrollRunID,
		EmployeeID:    i.EmployeeID,
		GrossPay:      rounded.GrossPay,
		Deductions:    rounded.Deductions,
		NetPay:        rounded.NetPay,
		PaymentStatus: i.PaymentStatus,
		CreatedAt:     i.CreatedAt,
	}
	if i.PayPeriodStart != nil {
		resp.PayPeriodStart = i.PayPeriodStart.Format(validator.DateLayout)
	}
	if i.PayPeriodEnd != nil {
		resp.PayPeriodEnd = i.PayPeriodEnd.Format(validator.DateLayout)
	}
	return resp
}

func ToItemResponses(items []Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, ToItemResponse(i))
	}
	return out
}
