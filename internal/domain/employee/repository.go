package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, emp Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmail(ctx context.Context, email string) (Employee, error)

	// List returns employees ordered by creation time, newest first.
	// Admins are excluded when includeAdmins is false.
	List(ctx context.Context, includeAdmins bool) ([]Employee, error)

	Update(ctx context.Context, emp Employee) error
	UpdateSalary(ctx context.Context, id string, salary Salary) error
	UpdateAvatarURL(ctx context.Context, id string, url string) error
	UpdatePassword(ctx context.Context, id string, passwordHash string, forceChange bool) error

	// DecrementLeaveCredit subtracts days from one of the employee's leave
	// balances. Balances are allowed to go negative.
	DecrementLeaveCredit(ctx context.Context, id string, kind LeaveCreditKind, days float64) error

	// CountJoinedInYear counts employees created in a calendar year.
	// Used to derive the serial part of new employee codes.
	CountJoinedInYear(ctx context.Context, year int) (int, error)
}
