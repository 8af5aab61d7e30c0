package leave

import (
	"context"
	"io"
)

// LeaveService defines business logic for the leave request workflow.
type LeaveService interface {
	// Submit files a new pending request for the authenticated employee.
	Submit(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequestResponse, error)

	// List retrieves requests. Admins see every employee's requests;
	// everyone else is scoped to their own.
	List(ctx context.Context, scope string) ([]LeaveRequestResponse, error)

	// UpdateStatus approves or rejects a pending request (admin only).
	// Approval of a paid or sick leave decrements the employee's matching
	// credit balance in the same transaction. Processed requests are final.
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (LeaveRequestResponse, error)

	// UploadAttachment stores a supporting document for a request.
	UploadAttachment(ctx context.Context, id string, file io.Reader, filename string) (string, error)
}
