package payroll

import "context"

// PayrollService defines business logic for payslip generation and the
// salary-component breakdown.
type PayrollService interface {
	// Generate reconciles one employee's attendance and approved leaves
	// for a month, computes the unpaid-day deduction and upserts the
	// resulting payslip (admin only). Regeneration for the same period is
	// idempotent: it recomputes from source data and replaces the record.
	Generate(ctx context.Context, req GeneratePayslipRequest) (PayslipResponse, error)

	// List retrieves payslips. Admins may filter by employee and period;
	// everyone else is scoped to their own.
	List(ctx context.Context, filter PayslipFilter) ([]PayslipResponse, error)

	// LatestUnread retrieves the authenticated employee's newest unviewed
	// payslip carrying a deduction, used for the dashboard notification.
	LatestUnread(ctx context.Context) (*PayslipResponse, error)

	// MarkViewed dismisses the deduction notification.
	MarkViewed(ctx context.Context, id string) error

	// MarkPaid finalizes a draft payslip (admin only).
	MarkPaid(ctx context.Context, id string) error

	// Breakdown decomposes a gross wage into salary components using the
	// supplied or default configuration. Purely presentational.
	Breakdown(ctx context.Context, req BreakdownRequest) (SalaryBreakdown, error)
}
