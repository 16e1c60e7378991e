package calculation

import (
	"github.com/rgehrsitz/rmgo/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Monthly withholding is annual tax / 12 on annualized gross. This is the
//    simplified single-filer PCB estimate, not the LHDN MTD formula.
//
// 2. Reliefs: individual relief plus EPF contributions up to the cap. No
//    spouse, child, lifestyle or zakat reliefs.
//
// 3. Additional remuneration tax is entered by the user and added as-is.

var (
	twelve     = decimal.NewFromInt(12)
	oneHundred = decimal.NewFromInt(100)
)

// TaxCalculator applies a bracket table with its reliefs.
type TaxCalculator struct {
	Table domain.TaxTable
}

// NewTaxCalculator creates a calculator for table.
func NewTaxCalculator(table domain.TaxTable) *TaxCalculator {
	return &TaxCalculator{Table: table}
}

// ChargeableIncome is annual gross less individual relief and capped fund relief, floored at 0.
func (tc *TaxCalculator) ChargeableIncome(monthlyGross, monthlyFund decimal.Decimal) decimal.Decimal {
	annualGross := monthlyGross.Mul(twelve)
	fundRelief := decimal.Min(monthlyFund.Mul(twelve), tc.Table.FundReliefCap)
	chargeable := annualGross.Sub(tc.Table.IndividualRelief).Sub(fundRelief)
	return decimal.Max(decimal.Zero, chargeable)
}

// BracketFor returns the index of the bracket whose UpTo is the smallest at or above chargeable.
func (tc *TaxCalculator) BracketFor(chargeable decimal.Decimal) int {
	for i, b := range tc.Table.Brackets {
		if b.UpTo == nil || chargeable.LessThanOrEqual(*b.UpTo) {
			return i
		}
	}
	return len(tc.Table.Brackets) - 1
}

// AnnualTax computes base tax plus the marginal rate on the excess over the bracket floor.
func (tc *TaxCalculator) AnnualTax(chargeable decimal.Decimal) decimal.Decimal {
	if len(tc.Table.Brackets) == 0 || !chargeable.IsPositive() {
		return decimal.Zero
	}
	i := tc.BracketFor(chargeable)
	b := tc.Table.Brackets[i]
	excess := chargeable.Sub(tc.Table.Floor(i))
	tax := b.BaseTax.Add(excess.Mul(b.Rate).Div(oneHundred))
	return decimal.Max(decimal.Zero, tax)
}

// MonthlyTax is the withholding for one month of gross with the given fund contribution.
func (tc *TaxCalculator) MonthlyTax(monthlyGross, monthlyFund decimal.Decimal) (monthly, annual, chargeable decimal.Decimal) {
	chargeable = tc.ChargeableIncome(monthlyGross, monthlyFund)
	annual = tc.AnnualTax(chargeable)
	return annual.Div(twelve), annual, chargeable
}
