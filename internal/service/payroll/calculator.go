package payroll

import (
	"github.com/orbithr/hr-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComputeDeduction prices the unpaid days of a month against the monthly
// wage. The daily rate spreads the wage over divisor days regardless of the
// actual month length; the deduction is rounded to a whole currency unit
// and the net salary never goes below zero.
func ComputeDeduction(wage decimal.Decimal, unpaidDays int, divisor decimal.Decimal) (deduction, net decimal.Decimal) {
	if wage.LessThanOrEqual(decimal.Zero) || unpaidDays <= 0 {
		return decimal.Zero, wage.RoundBank(2)
	}

	dailyRate := wage.Div(divisor)
	deduction = dailyRate.Mul(decimal.NewFromInt(int64(unpaidDays))).Round(0)

	net = wage.Sub(deduction)
	if net.IsNegative() {
		net = decimal.Zero
	}
	return deduction, net
}

// ComputeBreakdown decomposes a gross monthly wage into named salary
// components under the given configuration. The fixed allowance absorbs
// whatever the named components leave over, floored at zero, so the
// decomposition never exceeds the wage. A non-positive wage yields a zero
// breakdown.
func ComputeBreakdown(wage decimal.Decimal, cfg payroll.ComponentConfig) payroll.SalaryBreakdown {
	if wage.LessThanOrEqual(decimal.Zero) {
		return payroll.SalaryBreakdown{
			Basic:             decimal.Zero,
			HRA:               decimal.Zero,
			StandardAllowance: decimal.Zero,
			Bonus:             decimal.Zero,
			LTA:               decimal.Zero,
			FixedAllowance:    decimal.Zero,
			PFEmployee:        decimal.Zero,
			PFEmployer:        decimal.Zero,
			ProfessionalTax:   decimal.Zero,
		}
	}

	basic := wage.Mul(cfg.BasicPct).Div(hundred).Round(2)
	hra := basic.Mul(cfg.HRAPct).Div(hundred).Round(2)
	standardAllowance := cfg.StandardAllowanceFixed.Round(2)
	bonus := basic.Mul(cfg.BonusPct).Div(hundred).Round(2)
	lta := basic.Mul(cfg.LTAPct).Div(hundred).Round(2)
	pf := basic.Mul(cfg.PFRatePct).Div(hundred).Round(2)

	named := basic.Add(hra).Add(standardAllowance).Add(bonus).Add(lta)
	fixedAllowance := wage.Sub(named)
	if fixedAllowance.IsNegative() {
		fixedAllowance = decimal.Zero
	}

	return payroll.SalaryBreakdown{
		Basic:             basic,
		HRA:               hra,
		StandardAllowance: standardAllowance,
		Bonus:             bonus,
		LTA:               lta,
		FixedAllowance:    fixedAllowance.Round(2),
		PFEmployee:        pf,
		PFEmployer:        pf,
		ProfessionalTax:   cfg.ProfessionalTaxFixed.Round(2),
	}
}
