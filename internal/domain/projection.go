package domain

import (
	"github.com/shopspring/decimal"
)

// EPFProjectionInput describes one retirement fund projection.
// Rates are percentages. A nil EmployerContributionRate resolves from EPFRules.
type EPFProjectionInput struct {
	CurrentAge               int              `yaml:"current_age" json:"currentAge"`
	RetirementAge            int              `yaml:"retirement_age" json:"retirementAge"`
	TargetAge                int              `yaml:"target_age" json:"targetAge"`
	MonthlyIncome            decimal.Decimal  `yaml:"monthly_income" json:"monthlyIncome"`
	CurrentBalance           decimal.Decimal  `yaml:"current_balance" json:"currentBalance"`
	AnnualDividendRate       decimal.Decimal  `yaml:"annual_dividend_rate" json:"annualDividendRate"`
	EmployeeContributionRate decimal.Decimal  `yaml:"employee_contribution_rate" json:"employeeContributionRate"`
	EmployerContributionRate *decimal.Decimal `yaml:"employer_contribution_rate,omitempty" json:"employerContributionRate,omitempty"`
	MonthlyExpenses          decimal.Decimal  `yaml:"monthly_expenses" json:"monthlyExpenses"`
}

// NewEPFProjectionInput fills the rate and age defaults from rules.
func NewEPFProjectionInput(rules EPFRules, currentAge int, monthlyIncome, currentBalance decimal.Decimal) EPFProjectionInput {
	return EPFProjectionInput{
		CurrentAge:               currentAge,
		RetirementAge:            rules.DefaultRetirementAge,
		TargetAge:                rules.DefaultTargetAge,
		MonthlyIncome:            monthlyIncome,
		CurrentBalance:           currentBalance,
		AnnualDividendRate:       rules.DefaultDividendRate,
		EmployeeContributionRate: rules.DefaultEmployeeRate,
	}
}

// WithMonthlyExpenses returns a copy with a different post-retirement withdrawal.
func (in EPFProjectionInput) WithMonthlyExpenses(amount decimal.Decimal) EPFProjectionInput {
	in.MonthlyExpenses = amount
	return in
}

// IsDegenerate reports whether the age range produces no records.
func (in EPFProjectionInput) IsDegenerate() bool {
	return in.CurrentAge > in.TargetAge
}

// EPFYearRecord is the fund state at the end of one simulated age.
type EPFYearRecord struct {
	Age               int             `json:"age"`
	TotalAmount       decimal.Decimal `json:"totalAmount"`
	TotalContribution decimal.Decimal `json:"totalContribution"`
	DividendEarned    decimal.Decimal `json:"dividendEarned"`
	YearlyDividend    decimal.Decimal `json:"yearlyDividend"`
	YearlyExpenses    decimal.Decimal `json:"yearlyExpenses"`
	IsPostRetirement  bool            `json:"isPostRetirement"`
}

// Projection is a fully materialized year-by-year fund projection.
type Projection struct {
	Input   EPFProjectionInput `json:"input"`
	Records []EPFYearRecord    `json:"records"`
}

// IsEmpty reports whether the projection has no records.
func (p *Projection) IsEmpty() bool {
	return p == nil || len(p.Records) == 0
}

// AtAge returns the record for age.
func (p *Projection) AtAge(age int) (EPFYearRecord, bool) {
	if p.IsEmpty() {
		return EPFYearRecord{}, false
	}
	idx := age - p.Records[0].Age
	if idx < 0 || idx >= len(p.Records) {
		return EPFYearRecord{}, false
	}
	return p.Records[idx], true
}

// Final returns the last record.
func (p *Projection) Final() (EPFYearRecord, bool) {
	if p.IsEmpty() {
		return EPFYearRecord{}, false
	}
	return p.Records[len(p.Records)-1], true
}

// FinalBalance is the balance at the target age, zero when empty.
func (p *Projection) FinalBalance() decimal.Decimal {
	rec, ok := p.Final()
	if !ok {
		return decimal.Zero
	}
	return rec.TotalAmount
}

// BalanceAtRetirement is the balance at the end of the retirement age year.
func (p *Projection) BalanceAtRetirement() decimal.Decimal {
	rec, ok := p.AtAge(p.Input.RetirementAge)
	if !ok {
		return decimal.Zero
	}
	return rec.TotalAmount
}

// FirstAgeReaching returns the first age whose balance is at least amount.
func (p *Projection) FirstAgeReaching(amount decimal.Decimal) (int, bool) {
	if p.IsEmpty() {
		return 0, false
	}
	for _, rec := range p.Records {
		if rec.TotalAmount.GreaterThanOrEqual(amount) {
			return rec.Age, true
		}
	}
	return 0, false
}

// DepletionAge returns the first post-retirement age at which the balance is zero.
func (p *Projection) DepletionAge() (int, bool) {
	if p.IsEmpty() {
		return 0, false
	}
	for _, rec := range p.Records {
		if rec.IsPostRetirement && !rec.TotalAmount.IsPositive() {
			return rec.Age, true
		}
	}
	return 0, false
}

// Sample returns every step-th record plus the last one, for charts.
func (p *Projection) Sample(step int) []EPFYearRecord {
	if p.IsEmpty() {
		return nil
	}
	if step < 1 {
		step = 1
	}
	out := make([]EPFYearRecord, 0, len(p.Records)/step+1)
	for i := 0; i < len(p.Records); i += step {
		out = append(out, p.Records[i])
	}
	if last := p.Records[len(p.Records)-1]; out[len(out)-1].Age != last.Age {
		out = append(out, last)
	}
	return out
}
