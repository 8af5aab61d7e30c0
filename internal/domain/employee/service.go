package employee

import (
	"context"
	"io"
)

// EmployeeService defines business logic for employee management.
type EmployeeService interface {
	// Create registers a new employee (admin only). The employee code is
	// generated from the name initials and joining year, and the initial
	// password is flagged for change on first login.
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)

	// List retrieves employees. Non-admin callers never see admin accounts.
	List(ctx context.Context) ([]EmployeeResponse, error)

	// Get retrieves a single employee profile.
	Get(ctx context.Context, id string) (EmployeeResponse, error)

	// Update modifies profile fields (admin only).
	Update(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)

	// UpdateSalary sets the wage/work schedule and refreshes the cached
	// salary-component breakdown (admin only).
	UpdateSalary(ctx context.Context, req UpdateSalaryRequest) (EmployeeResponse, error)

	// UploadAvatar stores a profile picture and records its URL.
	UploadAvatar(ctx context.Context, id string, file io.Reader, filename string) (string, error)
}
