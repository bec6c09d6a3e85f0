package payroll

import "errors"

var (
	ErrPayrollRunNotFound   = errors.New("payroll run not found")
	ErrPayrollRunNotPending = errors.New("payroll run is not pending")
)
