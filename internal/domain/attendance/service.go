package attendance

import "context"

// AttendanceService defines business logic for daily check-in/check-out.
type AttendanceService interface {
	// CheckIn opens today's attendance record for the authenticated
	// employee. A second check-in on the same day fails.
	CheckIn(ctx context.Context) (AttendanceResponse, error)

	// CheckOut closes today's record: sets the check-out time, derives
	// work/extra hours and reclassifies short days as leave. A record is
	// immutable after check-out.
	CheckOut(ctx context.Context) (AttendanceResponse, error)

	// Today reports the authenticated employee's check-in state for today.
	Today(ctx context.Context) (TodayResponse, error)

	// List retrieves attendance records. Admins may filter by employee;
	// everyone else is scoped to their own records.
	List(ctx context.Context, filter Filter) ([]AttendanceResponse, error)
}
