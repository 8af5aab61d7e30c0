package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID                  string
	EmployeeCode        string
	Email               string
	PasswordHash        *string
	Role                Role
	FirstName           string
	LastName            string
	AvatarURL           *string
	Department          *string
	JobPosition         *string
	JoiningDate         time.Time
	Phone               *string
	Address             *string
	BankDetails         BankDetails
	Salary              Salary
	LeaveCredits        LeaveCredits
	ForcePasswordChange bool
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

type BankDetails struct {
	AccountNumber *string
	BankName      *string
	IFSCCode      *string
	PANNumber     *string
	UANNumber     *string
}

// Salary holds the configured gross wage and work schedule, plus the cached
// component breakdown computed the last time the wage was set.
type Salary struct {
	Wage               decimal.Decimal
	WorkingDaysPerWeek int
	BreakTimeHours     decimal.Decimal

	Basic             decimal.Decimal
	HRA               decimal.Decimal
	StandardAllowance decimal.Decimal
	Bonus             decimal.Decimal
	LTA               decimal.Decimal
	FixedAllowance    decimal.Decimal
	ProfessionalTax   decimal.Decimal
	PFEmployee        decimal.Decimal
	PFEmployer        decimal.Decimal
}

// LeaveCredits is the running balance of remaining leave days per type.
// Unpaid tracks days taken rather than a balance.
type LeaveCredits struct {
	Paid   float64
	Sick   float64
	Unpaid float64
}

type LeaveCreditKind string

const (
	LeaveCreditPaid LeaveCreditKind = "paid"
	LeaveCreditSick LeaveCreditKind = "sick"
)

// Defaults applied when an admin creates an employee.
const (
	DefaultPaidCredits        = 24
	DefaultSickCredits        = 7
	DefaultWorkingDaysPerWeek = 5
)
