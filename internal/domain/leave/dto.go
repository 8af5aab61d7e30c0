package leave

import (
	"github.com/orbithr/hr-backend-go/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	EmployeeID string  `json:"-"`
	Type       string  `json:"type"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Days       float64 `json:"days"`
	Reason     *string `json:"reason,omitempty"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Type, []string{string(TypePaid), string(TypeSick), string(TypeUnpaid)}) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be 'paid', 'sick' or 'unpaid'"})
	}

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must not be before start_date"})
	}

	if r.Days <= 0 {
		errs = append(errs, validator.ValidationError{Field: "days", Message: "must be greater than zero"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateStatusRequest struct {
	ID     string
	Status string `json:"status"` // "approved" or "rejected"
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Status, []string{string(StatusApproved), string(StatusRejected)}) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'approved' or 'rejected'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type Filter struct {
	EmployeeID *string
	// Scope is "pending" for the approval queue, "history" for processed
	// requests, empty for everything.
	Scope string
}

type LeaveRequestResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  string  `json:"employee_name,omitempty"`
	Type          string  `json:"type"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	Days          float64 `json:"days"`
	Reason        *string `json:"reason,omitempty"`
	AttachmentURL *string `json:"attachment_url,omitempty"`
	Status        string  `json:"status"`
	ApprovedBy    *string `json:"approved_by,omitempty"`
	CreatedAt     string  `json:"created_at"`
}
