package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// RunStatus enum
type RunStatus string

const (
	RunStatusPending             RunStatus = "pending"
	RunStatusCompleted           RunStatus = "completed"
	RunStatusCompletedWithErrors RunStatus = "completed_with_errors"
)

// PaymentStatus enum
type PaymentStatus string

const (
	PaymentStatusProcessed PaymentStatus = "processed"
)

// Period is an inclusive range of calendar dates.
type Period struct {
	Start time.Time
	End   time.Time
}

// Run - one payroll processing cycle over a snapshot of active employees
type Run struct {
	ID                string
	PayPeriodStart    time.Time
	PayPeriodEnd      time.Time
	RunTimestamp      time.Time
	Status            RunStatus
	ProcessedBy       string
	TotalNetAmount    decimal.Decimal
	EmployeeIDs       []string
	FailedEmployeeIDs []string
	CompletedAt       *time.Time
}

func (r *Run) Period() Period {
	return Period{Start: r.PayPeriodStart, End: r.PayPeriodEnd}
}

// Item - per-employee result of one run. Never updated after creation.
type Item struct {
	ID            string
	PayrollRunID  string
	EmployeeID    string
	GrossPay      decimal.Decimal
	Deductions    decimal.Decimal
	NetPay        decimal.Decimal
	PaymentStatus PaymentStatus
	CreatedAt     time.Time

	// Joined fields
	PayPeriodStart *time.Time
	PayPeriodEnd   *time.Time
}

// Finalization is written once all items of a run exist.
type Finalization struct {
	TotalNetAmount    decimal.Decimal
	Status            RunStatus
	FailedEmployeeIDs []string
	CompletedAt       time.Time
}
