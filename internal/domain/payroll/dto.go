package payroll

import (
	"github.com/orbithr/hr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type GeneratePayslipRequest struct {
	EmployeeID string `json:"employee_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
}

func (r *GeneratePayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year < 2000 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be 2000 or later"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BreakdownRequest struct {
	Wage decimal.Decimal `json:"wage"`
	// Config overrides the server defaults when provided.
	Config *ComponentConfig `json:"config,omitempty"`
}

func (r *BreakdownRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Wage.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "wage", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type PayslipFilter struct {
	EmployeeID *string
	Month      *int
	Year       *int
}

type PayslipResponse struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employee_id"`
	EmployeeName     string          `json:"employee_name,omitempty"`
	EmployeeCode     string          `json:"employee_code,omitempty"`
	Month            int             `json:"month"`
	Year             int             `json:"year"`
	Wage             decimal.Decimal `json:"wage"`
	TotalWorkingDays int             `json:"total_working_days"`
	PresentDays      int             `json:"present_days"`
	LeaveDays        int             `json:"leave_days"`
	UnpaidDays       int             `json:"unpaid_days"`
	DeductionAmount  decimal.Decimal `json:"deduction_amount"`
	NetSalary        decimal.Decimal `json:"net_salary"`
	Status           string          `json:"status"`
	ViewedByEmployee bool            `json:"viewed_by_employee"`
	GeneratedAt      string          `json:"generated_at"`
}
