package employee

import (
	"github.com/orbithr/hr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	JobPosition *string `json:"job_position,omitempty"`
	Department  *string `json:"department,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "is required"})
	}
	if validator.IsEmpty(r.LastName) {
		errs = append(errs, validator.ValidationError{Field: "last_name", Message: "is required"})
	}
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "is required"})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "must be at least 8 characters long"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID          string
	FirstName   *string `json:"first_name,omitempty"`
	LastName    *string `json:"last_name,omitempty"`
	Department  *string `json:"department,omitempty"`
	JobPosition *string `json:"job_position,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Address     *string `json:"address,omitempty"`

	BankAccountNumber *string `json:"bank_account_number,omitempty"`
	BankName          *string `json:"bank_name,omitempty"`
	IFSCCode          *string `json:"ifsc_code,omitempty"`
	PANNumber         *string `json:"pan_number,omitempty"`
	UANNumber         *string `json:"uan_number,omitempty"`
}

type UpdateSalaryRequest struct {
	ID                 string
	Wage               *decimal.Decimal `json:"wage,omitempty"`
	WorkingDaysPerWeek *int             `json:"working_days_per_week,omitempty"`
	BreakTimeHours     *decimal.Decimal `json:"break_time_hours,omitempty"`
}

func (r *UpdateSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Wage != nil && r.Wage.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "wage", Message: "must be non-negative"})
	}
	if r.WorkingDaysPerWeek != nil && !validator.IsValidWorkingDaysPerWeek(*r.WorkingDaysPerWeek) {
		errs = append(errs, validator.ValidationError{Field: "working_days_per_week", Message: "must be between 0 and 7"})
	}
	if r.BreakTimeHours != nil && r.BreakTimeHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "break_time_hours", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID                  string  `json:"id"`
	EmployeeCode        string  `json:"employee_code"`
	Email               string  `json:"email"`
	Role                string  `json:"role"`
	FirstName           string  `json:"first_name"`
	LastName            string  `json:"last_name"`
	AvatarURL           *string `json:"avatar_url,omitempty"`
	Department          *string `json:"department,omitempty"`
	JobPosition         *string `json:"job_position,omitempty"`
	JoiningDate         string  `json:"joining_date"`
	Phone               *string `json:"phone,omitempty"`
	Address             *string `json:"address,omitempty"`
	ForcePasswordChange bool    `json:"force_password_change"`

	Salary       *SalaryResponse      `json:"salary,omitempty"`
	LeaveCredits LeaveCreditsResponse `json:"leave_credits"`
}

type SalaryResponse struct {
	Wage               decimal.Decimal `json:"wage"`
	WorkingDaysPerWeek int             `json:"working_days_per_week"`
	BreakTimeHours     decimal.Decimal `json:"break_time_hours"`
	Basic              decimal.Decimal `json:"basic"`
	HRA                decimal.Decimal `json:"hra"`
	StandardAllowance  decimal.Decimal `json:"standard_allowance"`
	Bonus              decimal.Decimal `json:"bonus"`
	LTA                decimal.Decimal `json:"lta"`
	FixedAllowance     decimal.Decimal `json:"fixed_allowance"`
	ProfessionalTax    decimal.Decimal `json:"professional_tax"`
	PFEmployee         decimal.Decimal `json:"pf_employee"`
	PFEmployer         decimal.Decimal `json:"pf_employer"`
}

type LeaveCreditsResponse struct {
	Paid   float64 `json:"paid"`
	Sick   float64 `json:"sick"`
	Unpaid float64 `json:"unpaid"`
}
