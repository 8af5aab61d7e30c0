package payroll

import "context"

type PayslipRepository interface {
	// Upsert inserts or fully replaces the payslip keyed by
	// (employee_id, month, year) in a single atomic statement. The
	// viewed_by_employee flag survives regeneration.
	Upsert(ctx context.Context, payslip Payslip) (Payslip, error)

	GetByID(ctx context.Context, id string) (Payslip, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, month, year int) (Payslip, error)

	// List retrieves payslips matching the filter, newest period first.
	List(ctx context.Context, filter PayslipFilter) ([]Payslip, error)

	// GetLatestUnread retrieves the employee's most recent payslip with a
	// positive deduction that has not been viewed yet.
	GetLatestUnread(ctx context.Context, employeeID string) (Payslip, error)

	MarkViewed(ctx context.Context, id string) error
	MarkPaid(ctx context.Context, id string) error
}
