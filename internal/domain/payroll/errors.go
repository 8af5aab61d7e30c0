package payroll

import "errors"

var (
	ErrPayslipNotFound     = errors.New("payslip not found")
	ErrPayslipAlreadyPaid  = errors.New("payslip already marked as paid")
	ErrInvalidPeriod       = errors.New("invalid payroll period")
	ErrInvalidWorkSchedule = errors.New("working days per week must be between 0 and 7")
)
