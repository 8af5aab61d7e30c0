package leave

import "time"

// Type is the closed set of leave categories. Paid and sick leave draw on
// the employee's credits and do not reduce salary; unpaid leave does.
type Type string

const (
	TypePaid   Type = "paid"
	TypeSick   Type = "sick"
	TypeUnpaid Type = "unpaid"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

type LeaveRequest struct {
	ID            string
	EmployeeID    string
	Type          Type
	StartDate     time.Time // inclusive
	EndDate       time.Time // inclusive
	Days          float64
	Reason        *string
	AttachmentURL *string
	Status        Status
	ApprovedBy    *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	EmployeeName *string
}

// IsTerminal reports whether the request has been processed. Terminal
// requests are immutable.
func (r LeaveRequest) IsTerminal() bool {
	return r.Status == StatusApproved || r.Status == StatusRejected
}

// IsPaidType reports whether the leave type preserves salary.
func IsPaidType(t Type) bool {
	return t == TypePaid || t == TypeSick
}
