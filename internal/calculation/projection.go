package calculation

import (
	"github.com/rgehrsitz/rmgo/internal/domain"
	"github.com/shopspring/decimal"
)

// EPF PROJECTION ASSUMPTIONS:
//
// 1. Contributions are paid for every age up to and including the retirement
//    age, on a flat monthly income (no salary growth).
//
// 2. After retirement, twelve months of expenses come out before the dividend
//    is credited, and the balance never goes below zero.
//
// 3. The dividend is credited once a year on the balance after that year's
//    contribution or withdrawal.
//
// 4. Running totals keep full precision; each record is rounded to whole ringgit.

// ProjectFund projects the fund from CurrentAge to TargetAge with the MY-2024 rules.
// It returns an empty slice when CurrentAge > TargetAge and never fails.
func ProjectFund(in domain.EPFProjectionInput) []domain.EPFYearRecord {
	return projectFund(domain.MY2024Rules().EPF, in)
}

// EmployerRate resolves the employer contribution percentage for in.
func EmployerRate(rules domain.EPFRules, in domain.EPFProjectionInput) decimal.Decimal {
	if in.EmployerContributionRate != nil {
		return *in.EmployerContributionRate
	}
	return rules.EmployerRate(in.MonthlyIncome)
}

// ValidateProjectionInput rejects inputs whose projection would be meaningless.
// Call it only on non-degenerate ranges; an empty range is not an error.
func ValidateProjectionInput(in domain.EPFProjectionInput) error {
	v := domain.NewValidator()
	if in.CurrentAge < 0 {
		v.Add("current_age", "must not be negative")
	}
	if in.RetirementAge < in.CurrentAge || in.RetirementAge > in.TargetAge {
		v.Add("retirement_age", "must be between current_age and target_age")
	}
	v.NonNegative("monthly_income", in.MonthlyIncome)
	v.NonNegative("current_balance", in.CurrentBalance)
	v.NonNegative("monthly_expenses", in.MonthlyExpenses)
	v.Percent("annual_dividend_rate", in.AnnualDividendRate)
	v.Percent("employee_contribution_rate", in.EmployeeContributionRate)
	if in.EmployerContributionRate != nil {
		v.Percent("employer_contribution_rate", *in.EmployerContributionRate)
	}
	return v.Err()
}

func projectFund(rules domain.EPFRules, in domain.EPFProjectionInput) []domain.EPFYearRecord {
	if in.IsDegenerate() {
		return []domain.EPFYearRecord{}
	}

	records := make([]domain.EPFYearRecord, 0, in.TargetAge-in.CurrentAge+1)

	yearlyContribution := decimal.Zero
	if in.MonthlyIncome.IsPositive() {
		rate := in.EmployeeContributionRate.Add(EmployerRate(rules, in))
		yearlyContribution = percentOf(in.MonthlyIncome, rate).Mul(twelve)
	}
	dividendRate := in.AnnualDividendRate.Div(oneHundred)
	yearlyWithdrawal := in.MonthlyExpenses.Mul(twelve)

	balance := in.CurrentBalance
	totalContribution := decimal.Zero
	totalDividend := decimal.Zero

	for age := in.CurrentAge; age <= in.TargetAge; age++ {
		postRetirement := age > in.RetirementAge

		if !postRetirement {
			totalContribution = totalContribution.Add(yearlyContribution)
			balance = balance.Add(yearlyContribution)
		}

		expenses := decimal.Zero
		if postRetirement && in.MonthlyExpenses.IsPositive() {
			expenses = yearlyWithdrawal
			balance = decimal.Max(decimal.Zero, balance.Sub(expenses))
		}

		dividend := balance.Mul(dividendRate)
		totalDividend = totalDividend.Add(dividend)
		balance = balance.Add(dividend)

		records = append(records, domain.EPFYearRecord{
			Age:               age,
			TotalAmount:       balance.Round(0),
			TotalContribution: totalContribution.Round(0),
			DividendEarned:    totalDividend.Round(0),
			YearlyDividend:    dividend.Round(0),
			YearlyExpenses:    expenses.Round(0),
			IsPostRetirement:  postRetirement,
		})
	}
	return records
}
