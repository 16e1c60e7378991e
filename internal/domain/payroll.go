package domain

import "github.com/shopspring/decimal"

// PayrollInput holds the monthly payroll figures for one employee.
// Rates are percentages: 11 means 11%.
type PayrollInput struct {
	GrossMonthlyIncome decimal.Decimal    `yaml:"gross_monthly_income" json:"grossMonthlyIncome"`
	EmployeeFundRate   decimal.Decimal    `yaml:"employee_fund_rate" json:"employeeFundRate"`
	SocialSecurityRate decimal.Decimal    `yaml:"social_security_rate" json:"socialSecurityRate"`
	InsuranceRate      decimal.Decimal    `yaml:"insurance_rate" json:"insuranceRate"`
	Age                int                `yaml:"age" json:"age"`
	GarnishmentAmount  decimal.Decimal    `yaml:"garnishment_amount" json:"garnishmentAmount"`
	AdditionalTax      decimal.Decimal    `yaml:"additional_tax" json:"additionalTax"`
	OverridesEnabled   bool               `yaml:"overrides_enabled" json:"overridesEnabled"`
	Overrides          DeductionOverrides `yaml:"overrides" json:"overrides"`
}

// DeductionOverrides replaces individual computed lines when overrides are enabled.
// A nil field keeps the computed value.
type DeductionOverrides struct {
	Fund           *decimal.Decimal `yaml:"fund,omitempty" json:"fund,omitempty"`
	SocialSecurity *decimal.Decimal `yaml:"social_security,omitempty" json:"socialSecurity,omitempty"`
	Insurance      *decimal.Decimal `yaml:"insurance,omitempty" json:"insurance,omitempty"`
	Tax            *decimal.Decimal `yaml:"tax,omitempty" json:"tax,omitempty"`
	Garnishment    *decimal.Decimal `yaml:"garnishment,omitempty" json:"garnishment,omitempty"`
}

// IsEmpty reports whether no override is set.
func (o DeductionOverrides) IsEmpty() bool {
	return o.Fund == nil && o.SocialSecurity == nil && o.Insurance == nil && o.Tax == nil && o.Garnishment == nil
}

// DeductionLines is one amount per statutory deduction kind.
type DeductionLines struct {
	Fund           decimal.Decimal `json:"fund"`
	SocialSecurity decimal.Decimal `json:"socialSecurity"`
	Insurance      decimal.Decimal `json:"insurance"`
	Tax            decimal.Decimal `json:"tax"`
	Garnishment    decimal.Decimal `json:"garnishment"`
}

// Total sums every line.
func (l DeductionLines) Total() decimal.Decimal {
	return l.Fund.Add(l.SocialSecurity).Add(l.Insurance).Add(l.Tax).Add(l.Garnishment)
}

// PayrollResult carries both the computed deductions and the ones actually
// applied after overrides, so a caller can show where a manual value differs.
type PayrollResult struct {
	GrossMonthlyIncome decimal.Decimal `json:"grossMonthlyIncome"`
	Computed           DeductionLines  `json:"computed"`
	Applied            DeductionLines  `json:"applied"`
	ChargeableIncome   decimal.Decimal `json:"chargeableIncome"`
	AnnualTax          decimal.Decimal `json:"annualTax"` // bracket tax plus twelve months of additional PCB
	TotalDeductions    decimal.Decimal `json:"totalDeductions"`
	NetPay             decimal.Decimal `json:"netPay"`
}

// EffectiveDeductionRate is total deductions as a percentage of gross.
func (r PayrollResult) EffectiveDeductionRate() decimal.Decimal {
	if !r.GrossMonthlyIncome.IsPositive() {
		return decimal.Zero
	}
	return r.TotalDeductions.Div(r.GrossMonthlyIncome).Mul(decimal.NewFromInt(100))
}
