package calculation

import (
	"github.com/rgehrsitz/rmgo/internal/domain"
	"github.com/shopspring/decimal"
)

// CompareIncomeToBaseline compares income with the household's baseline cost using the MY-2024 rules.
// Income is not checked for sign; callers decide whether a non-positive income is worth showing.
func CompareIncomeToBaseline(in domain.IncomeRealityInput) (*domain.IncomeRealityResult, error) {
	return compareIncomeToBaseline(domain.MY2024Rules(), in)
}

// GetHouseholdMultiplier returns the MY-2024 household multiplier.
func GetHouseholdMultiplier(household domain.HouseholdType, dependants int) decimal.Decimal {
	return householdMultiplier(domain.MY2024Rules().Household, household, dependants)
}

// GetLocationMultiplier returns the MY-2024 location multiplier, 1.0 for unknown locations.
func GetLocationMultiplier(location domain.Location) decimal.Decimal {
	return locationMultiplier(domain.MY2024Rules().Locations, location)
}

// ValidateIncomeRealityInput rejects unknown enums and negative costs.
func ValidateIncomeRealityInput(in domain.IncomeRealityInput) error {
	v := domain.NewValidator()
	if in.Dependants < 0 {
		v.Add("dependants", "must not be negative")
	}
	v.NonNegative("housing_cost", in.HousingCost)
	v.NonNegative("expenses.food", in.Expenses.Food)
	v.NonNegative("expenses.transport", in.Expenses.Transport)
	v.NonNegative("expenses.utilities", in.Expenses.Utilities)
	v.NonNegative("expenses.others", in.Expenses.Others)
	v.NonNegative("expenses.entertainment", in.Expenses.Entertainment)
	switch in.HouseholdType {
	case domain.HouseholdAlone, domain.HouseholdCouple, domain.HouseholdFamily:
	default:
		v.Add("household_type", "must be one of alone, couple, family")
	}
	switch in.Location {
	case domain.LocationKL, domain.LocationUrban, domain.LocationNonUrban:
	default:
		v.Add("location", "must be one of kl, urban, non-urban")
	}
	return v.Err()
}

func compareIncomeToBaseline(rules domain.Rules, in domain.IncomeRealityInput) (*domain.IncomeRealityResult, error) {
	if err := ValidateIncomeRealityInput(in); err != nil {
		return nil, err
	}

	base := in.Expenses.Total()
	hm := householdMultiplier(rules.Household, in.HouseholdType, in.Dependants)
	lm := locationMultiplier(rules.Locations, in.Location)

	adjusted := base.Mul(hm)
	locationAdjusted := adjusted.Mul(lm)
	baseline := locationAdjusted.Add(in.HousingCost)

	coverage := decimal.Zero
	if !baseline.IsZero() {
		coverage = in.MonthlyIncome.Div(baseline).Mul(oneHundred)
	}

	return &domain.IncomeRealityResult{
		BaseEssentials:      base,
		HouseholdMultiplier: hm,
		AdjustedEssentials:  adjusted,
		LocationMultiplier:  lm,
		LocationAdjusted:    locationAdjusted,
		OthersCost:          in.Expenses.Others.Mul(hm).Mul(lm),
		HousingCost:         in.HousingCost,
		BaselineLifeCost:    baseline,
		MonthlyIncome:       in.MonthlyIncome,
		CoveragePercent:     coverage,
		Surplus:             in.MonthlyIncome.Sub(baseline),
	}, nil
}

// householdMultiplier counts the first dependant inside the family base.
func householdMultiplier(m domain.HouseholdMultipliers, household domain.HouseholdType, dependants int) decimal.Decimal {
	switch household {
	case domain.HouseholdAlone:
		return m.Alone
	case domain.HouseholdCouple:
		return m.Couple
	}
	extra := dependants - 1
	if extra < 0 {
		extra = 0
	}
	return m.FamilyBase.Add(m.PerExtraDependant.Mul(decimal.NewFromInt(int64(extra))))
}

func locationMultiplier(m domain.LocationMultipliers, location domain.Location) decimal.Decimal {
	if v, ok := m[location]; ok {
		return v
	}
	return decimal.NewFromInt(1)
}
