package attendance

import (
	"time"

	"github.com/orbithr/hr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type Filter struct {
	EmployeeID *string
	Date       *time.Time
	Month      *int
	Year       *int
}

func (f *Filter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month != nil && !validator.IsValidMonth(*f.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if (f.Month == nil) != (f.Year == nil) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month and year must be provided together"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name,omitempty"`
	Date         string          `json:"date"`
	CheckIn      string          `json:"check_in"`
	CheckOut     *string         `json:"check_out,omitempty"`
	Status       string          `json:"status"`
	WorkHours    decimal.Decimal `json:"work_hours"`
	ExtraHours   decimal.Decimal `json:"extra_hours"`
}

type TodayResponse struct {
	CheckedIn  bool                `json:"checked_in"`
	CheckedOut bool                `json:"checked_out"`
	Attendance *AttendanceResponse `json:"attendance,omitempty"`
}
