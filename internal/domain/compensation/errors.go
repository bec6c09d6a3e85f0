package compensation

import "errors"

var (
	ErrCompensationNotFound = errors.New("compensation not set for employee")
	ErrBaseSalaryRequired   = errors.New("base_salary is required when compensation is first set")
)
