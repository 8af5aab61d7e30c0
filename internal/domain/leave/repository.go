package leave

import (
	"context"
	"time"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)

	// List retrieves requests matching the filter, newest first.
	List(ctx context.Context, filter Filter) ([]LeaveRequest, error)

	// UpdateStatus moves a request to a terminal status.
	UpdateStatus(ctx context.Context, id string, status Status, approvedBy string) error

	UpdateAttachmentURL(ctx context.Context, id string, url string) error

	// ListApprovedOverlapping retrieves approved requests for one employee
	// whose inclusive [start_date, end_date] range overlaps [from, to],
	// ordered by start date then creation time so that day matching during
	// payroll reconciliation is deterministic.
	ListApprovedOverlapping(ctx context.Context, employeeID string, from, to time.Time) ([]LeaveRequest, error)
}
