package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type PayslipStatus string

const (
	PayslipStatusDraft PayslipStatus = "draft"
	PayslipStatusPaid  PayslipStatus = "paid"
)

// Payslip is the persisted result of one payroll-generation run for one
// employee and one (month, year) period. Regeneration replaces the computed
// fields wholesale; it never accumulates.
type Payslip struct {
	ID               string
	EmployeeID       string
	Month            int // 1-12
	Year             int
	Wage             decimal.Decimal
	TotalWorkingDays int
	PresentDays      int
	LeaveDays        int // approved paid/sick leave days
	UnpaidDays       int // unpaid leave + silent absence
	DeductionAmount  decimal.Decimal
	NetSalary        decimal.Decimal
	Status           PayslipStatus
	ViewedByEmployee bool
	GeneratedAt      time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// MonthSummary is the result of reconciling one employee's calendar month.
// The three buckets partition the scheduled working days:
// TotalWorkingDays = PresentDays + PaidLeaveDays + UnpaidDays.
type MonthSummary struct {
	TotalWorkingDays int
	PresentDays      int
	PaidLeaveDays    int
	UnpaidDays       int

	// OverlappingLeaveDays counts working days matched by more than one
	// approved leave request. The first match wins; a non-zero count
	// signals inconsistent leave data worth a warning, not a failure.
	OverlappingLeaveDays int
}

// ComponentConfig holds the percentage rules used to decompose a gross wage
// into named salary components. It is threaded into each calculation rather
// than held as process state.
type ComponentConfig struct {
	BasicPct               decimal.Decimal `json:"basic_pct"`
	HRAPct                 decimal.Decimal `json:"hra_pct"`
	StandardAllowanceFixed decimal.Decimal `json:"standard_allowance_fixed"`
	BonusPct               decimal.Decimal `json:"bonus_pct"`
	LTAPct                 decimal.Decimal `json:"lta_pct"`
	PFRatePct              decimal.Decimal `json:"pf_rate_pct"`
	ProfessionalTaxFixed   decimal.Decimal `json:"professional_tax_fixed"`
}

// DefaultComponentConfig returns the standard decomposition rules:
// basic 50% of wage, HRA 50% of basic, bonus/LTA 8.33% of basic,
// PF 12% of basic, fixed standard allowance and professional tax.
func DefaultComponentConfig() ComponentConfig {
	return ComponentConfig{
		BasicPct:               decimal.NewFromInt(50),
		HRAPct:                 decimal.NewFromInt(50),
		StandardAllowanceFixed: decimal.NewFromInt(4167),
		BonusPct:               decimal.NewFromFloat(8.33),
		LTAPct:                 decimal.NewFromFloat(8.33),
		PFRatePct:              decimal.NewFromInt(12),
		ProfessionalTaxFixed:   decimal.NewFromInt(200),
	}
}

// SalaryBreakdown is the component decomposition of a gross wage. It is a
// presentational view; it has no effect on deduction math.
type SalaryBreakdown struct {
	Basic             decimal.Decimal `json:"basic"`
	HRA               decimal.Decimal `json:"hra"`
	StandardAllowance decimal.Decimal `json:"standard_allowance"`
	Bonus             decimal.Decimal `json:"bonus"`
	LTA               decimal.Decimal `json:"lta"`
	FixedAllowance    decimal.Decimal `json:"fixed_allowance"`
	PFEmployee        decimal.Decimal `json:"pf_employee"`
	PFEmployer        decimal.Decimal `json:"pf_employer"`
	ProfessionalTax   decimal.Decimal `json:"professional_tax"`
}
