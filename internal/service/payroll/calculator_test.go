package payroll

import (
	"testing"

	"github.com/orbithr/hr-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var thirty = decimal.NewFromInt(30)

func TestComputeDeduction(t *testing.T) {
	tests := []struct {
		name       string
		wage       string
		unpaidDays int
		deduction  string
		net        string
	}{
		{"no unpaid days", "30000", 0, "0", "30000"},
		{"two unpaid days", "30000", 2, "2000", "28000"},
		{"three unpaid days", "60000", 3, "6000", "54000"},
		{"rounds to whole unit", "1000", 1, "33", "967"},
		{"deduction capped at wage", "1000", 45, "1500", "0"},
		{"zero wage", "0", 5, "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wage := decimal.RequireFromString(tt.wage)

			deduction, net := ComputeDeduction(wage, tt.unpaidDays, thirty)

			assert.True(t, deduction.Equal(decimal.RequireFromString(tt.deduction)),
				"deduction: got %s, want %s", deduction, tt.deduction)
			assert.True(t, net.Equal(decimal.RequireFromString(tt.net)),
				"net: got %s, want %s", net, tt.net)
		})
	}
}

func TestComputeDeduction_MonotonicInUnpaidDays(t *testing.T) {
	wage := decimal.NewFromInt(45000)

	prev := decimal.Zero
	for days := 0; days <= 30; days++ {
		deduction, _ := ComputeDeduction(wage, days, thirty)
		assert.True(t, deduction.GreaterThanOrEqual(prev),
			"deduction shrank at %d unpaid days: %s < %s", days, deduction, prev)
		prev = deduction
	}
}

func TestComputeDeduction_NeverNegativeNet(t *testing.T) {
	wage := decimal.NewFromInt(500)

	_, net := ComputeDeduction(wage, 30, thirty)

	assert.False(t, net.IsNegative())
	assert.True(t, net.Equal(decimal.Zero))
}

func TestComputeBreakdown_Defaults(t *testing.T) {
	wage := decimal.NewFromInt(50000)

	b := ComputeBreakdown(wage, payroll.DefaultComponentConfig())

	assert.True(t, b.Basic.Equal(decimal.NewFromInt(25000)), "basic: %s", b.Basic)
	assert.True(t, b.HRA.Equal(decimal.NewFromInt(12500)), "hra: %s", b.HRA)
	assert.True(t, b.StandardAllowance.Equal(decimal.NewFromInt(4167)), "standard allowance: %s", b.StandardAllowance)
	assert.True(t, b.Bonus.Equal(decimal.RequireFromString("2082.5")), "bonus: %s", b.Bonus)
	assert.True(t, b.LTA.Equal(decimal.RequireFromString("2082.5")), "lta: %s", b.LTA)
	assert.True(t, b.FixedAllowance.Equal(decimal.NewFromInt(4168)), "fixed allowance: %s", b.FixedAllowance)
	assert.True(t, b.PFEmployee.Equal(decimal.NewFromInt(3000)), "pf employee: %s", b.PFEmployee)
	assert.True(t, b.PFEmployer.Equal(b.PFEmployee), "pf employer mirrors employee")
	assert.True(t, b.ProfessionalTax.Equal(decimal.NewFromInt(200)), "professional tax: %s", b.ProfessionalTax)
}

func TestComputeBreakdown_ComponentsNeverExceedWage(t *testing.T) {
	// A small wage where the fixed standard allowance alone exceeds the
	// gross: the fixed allowance floors at zero instead of going negative.
	wage := decimal.NewFromInt(3000)

	b := ComputeBreakdown(wage, payroll.DefaultComponentConfig())

	assert.True(t, b.FixedAllowance.Equal(decimal.Zero))
}

func TestComputeBreakdown_ZeroWage(t *testing.T) {
	b := ComputeBreakdown(decimal.Zero, payroll.DefaultComponentConfig())

	assert.True(t, b.Basic.IsZero())
	assert.True(t, b.HRA.IsZero())
	assert.True(t, b.StandardAllowance.IsZero())
	assert.True(t, b.FixedAllowance.IsZero())
	assert.True(t, b.ProfessionalTax.IsZero())
}

func TestComputeBreakdown_NegativeWage(t *testing.T) {
	b := ComputeBreakdown(decimal.NewFromInt(-100), payroll.DefaultComponentConfig())

	assert.True(t, b.Basic.IsZero())
}

func TestComputeBreakdown_CustomConfig(t *testing.T) {
	cfg := payroll.ComponentConfig{
		BasicPct:               decimal.NewFromInt(40),
		HRAPct:                 decimal.NewFromInt(25),
		StandardAllowanceFixed: decimal.NewFromInt(1000),
		BonusPct:               decimal.NewFromInt(10),
		LTAPct:                 decimal.NewFromInt(5),
		PFRatePct:              decimal.NewFromInt(10),
		ProfessionalTaxFixed:   decimal.NewFromInt(150),
	}
	wage := decimal.NewFromInt(10000)

	b := ComputeBreakdown(wage, cfg)

	assert.True(t, b.Basic.Equal(decimal.NewFromInt(4000)))
	assert.True(t, b.HRA.Equal(decimal.NewFromInt(1000)))
	assert.True(t, b.Bonus.Equal(decimal.NewFromInt(400)))
	assert.True(t, b.LTA.Equal(decimal.NewFromInt(200)))
	assert.True(t, b.PFEmployee.Equal(decimal.NewFromInt(400)))
	// 10000 - (4000 + 1000 + 1000 + 400 + 200)
	assert.True(t, b.FixedAllowance.Equal(decimal.NewFromInt(3400)))
	assert.True(t, b.ProfessionalTax.Equal(decimal.NewFromInt(150)))
}
