package calculation

import (
	"github.com/rgehrsitz/rmgo/internal/domain"
	"github.com/shopspring/decimal"
)

// ComputeNetPay computes statutory deductions and net pay with the MY-2024 rules.
func ComputeNetPay(in domain.PayrollInput) (*domain.PayrollResult, error) {
	return computeNetPay(domain.MY2024Rules(), in)
}

// ValidatePayrollInput rejects inputs no deduction can be computed from.
func ValidatePayrollInput(in domain.PayrollInput) error {
	v := domain.NewValidator()
	v.NonNegative("gross_monthly_income", in.GrossMonthlyIncome)
	v.Percent("employee_fund_rate", in.EmployeeFundRate)
	v.Percent("social_security_rate", in.SocialSecurityRate)
	v.Percent("insurance_rate", in.InsuranceRate)
	v.NonNegative("additional_tax", in.AdditionalTax)
	if in.Age < 0 {
		v.Add("age", "must not be negative")
	}
	o := in.Overrides
	for _, ov := range []struct {
		field string
		value *decimal.Decimal
	}{
		{"overrides.fund", o.Fund},
		{"overrides.social_security", o.SocialSecurity},
		{"overrides.insurance", o.Insurance},
		{"overrides.tax", o.Tax},
		{"overrides.garnishment", o.Garnishment},
	} {
		if ov.value != nil {
			v.NonNegative(ov.field, *ov.value)
		}
	}
	return v.Err()
}

func computeNetPay(rules domain.Rules, in domain.PayrollInput) (*domain.PayrollResult, error) {
	if err := ValidatePayrollInput(in); err != nil {
		return nil, err
	}

	gross := in.GrossMonthlyIncome
	var computed domain.DeductionLines

	computed.Fund = percentOf(gross, in.EmployeeFundRate)

	if in.Age < rules.Payroll.SeniorExemptionAge {
		base := decimal.Min(gross, rules.Payroll.WageCeiling)
		computed.SocialSecurity = percentOf(base, in.SocialSecurityRate)
		computed.Insurance = percentOf(base, in.InsuranceRate)
	} else {
		computed.SocialSecurity = decimal.Zero
		computed.Insurance = decimal.Zero
	}

	tax := NewTaxCalculator(rules.Tax)
	monthlyTax, annualTax, chargeable := tax.MonthlyTax(gross, computed.Fund)
	computed.Tax = monthlyTax.Add(in.AdditionalTax)

	computed.Garnishment = decimal.Max(decimal.Zero, in.GarnishmentAmount)

	computed = roundLines(computed)
	applied := computed
	if in.OverridesEnabled {
		applied = applyOverrides(computed, in.Overrides)
	}

	total := applied.Total()
	return &domain.PayrollResult{
		GrossMonthlyIncome: gross,
		Computed:           computed,
		Applied:            applied,
		ChargeableIncome:   chargeable,
		AnnualTax:          annualTax.Add(in.AdditionalTax.Mul(twelve)).Round(2),
		TotalDeductions:    total,
		NetPay:             decimal.Max(decimal.Zero, gross.Sub(total)),
	}, nil
}

func applyOverrides(lines domain.DeductionLines, o domain.DeductionOverrides) domain.DeductionLines {
	if o.Fund != nil {
		lines.Fund = *o.Fund
	}
	if o.SocialSecurity != nil {
		lines.SocialSecurity = *o.SocialSecurity
	}
	if o.Insurance != nil {
		lines.Insurance = *o.Insurance
	}
	if o.Tax != nil {
		lines.Tax = *o.Tax
	}
	if o.Garnishment != nil {
		lines.Garnishment = *o.Garnishment
	}
	return lines
}

// roundLines rounds each line to the sen.
func roundLines(l domain.DeductionLines) domain.DeductionLines {
	return domain.DeductionLines{
		Fund:           l.Fund.Round(2),
		SocialSecurity: l.SocialSecurity.Round(2),
		Insurance:      l.Insurance.Round(2),
		Tax:            l.Tax.Round(2),
		Garnishment:    l.Garnishment.Round(2),
	}
}

func percentOf(amount, rate decimal.Decimal) decimal.Decimal {
	return amount.Mul(rate).Div(oneHundred)
}
