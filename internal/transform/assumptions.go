package transform

import (
	"fmt"

	"github.com/rgehrsitz/rmgo/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// AdjustDividend replaces the annual dividend rate (percent)
type AdjustDividend struct {
	Rate decimal.Decimal
}

func (ad *AdjustDividend) Name() string {
	return "adjust_dividend"
}

func (ad *AdjustDividend) Description() string {
	return fmt.Sprintf("Assume a %s%% annual dividend", ad.Rate.String())
}

func (ad *AdjustDividend) Validate(base domain.EPFProjectionInput) error {
	if ad.Rate.IsNegative() || ad.Rate.GreaterThan(hundred) {
		return NewTransformError(ad.Name(), "validate",
			fmt.Sprintf("rate must be between 0 and 100, got %s", ad.Rate.String()), nil)
	}
	return nil
}

func (ad *AdjustDividend) Apply(base domain.EPFProjectionInput) (domain.EPFProjectionInput, error) {
	modified := copyInput(base)
	modified.AnnualDividendRate = ad.Rate
	return modified, nil
}

// SetExpenses sets the monthly spending drawn from the fund after retirement
type SetExpenses struct {
	Monthly decimal.Decimal
}

func (se *SetExpenses) Name() string {
	return "set_expenses"
}

func (se *SetExpenses) Description() string {
	return fmt.Sprintf("Spend RM%s a month in retirement", se.Monthly.StringFixed(0))
}

func (se *SetExpenses) Validate(base domain.EPFProjectionInput) error {
	if se.Monthly.IsNegative() {
		return NewTransformError(se.Name(), "validate", "monthly expenses cannot be negative", nil)
	}
	return nil
}

func (se *SetExpenses) Apply(base domain.EPFProjectionInput) (domain.EPFProjectionInput, error) {
	return copyInput(base).WithMonthlyExpenses(se.Monthly), nil
}

// RaiseIncome scales the monthly income by a percentage.
// A negative percent models a pay cut; income never drops below zero.
type RaiseIncome struct {
	Percent decimal.Decimal
}

func (ri *RaiseIncome) Name() string {
	return "raise_income"
}

func (ri *RaiseIncome) Description() string {
	return fmt.Sprintf("Change monthly income by %s%%", ri.Percent.String())
}

func (ri *RaiseIncome) Validate(base domain.EPFProjectionInput) error {
	if ri.Percent.LessThan(hundred.Neg()) {
		return NewTransformError(ri.Name(), "validate",
			fmt.Sprintf("percent cannot be below -100, got %s", ri.Percent.String()), nil)
	}
	return nil
}

func (ri *RaiseIncome) Apply(base domain.EPFProjectionInput) (domain.EPFProjectionInput, error) {
	modified := copyInput(base)
	factor := decimal.NewFromInt(1).Add(ri.Percent.Div(hundred))
	modified.MonthlyIncome = base.MonthlyIncome.Mul(factor)
	return modified, nil
}
