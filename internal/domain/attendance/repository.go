package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Create inserts a new attendance record. The (employee_id, date)
	// uniqueness constraint rejects a second check-in on the same day.
	Create(ctx context.Context, att Attendance) (Attendance, error)

	// GetByEmployeeAndDate retrieves the record for one employee on one
	// calendar day, or ErrAttendanceNotFound.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (Attendance, error)

	// Update persists a check-out mutation.
	Update(ctx context.Context, att Attendance) error

	// ListByEmployeeAndRange retrieves one employee's records with
	// date in [from, to], ordered by date descending.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)

	// List retrieves records with optional filters, newest first.
	List(ctx context.Context, filter Filter) ([]Attendance, error)
}
