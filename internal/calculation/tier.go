package calculation

import (
	"github.com/rgehrsitz/rmgo/internal/domain"
	"github.com/shopspring/decimal"
)

// ClassifyIncome places a monthly income in the MY-2024 tier and distribution tables.
func ClassifyIncome(income decimal.Decimal) domain.IncomeClassification {
	return classifyIncome(domain.MY2024Rules(), income)
}

func classifyIncome(rules domain.Rules, income decimal.Decimal) domain.IncomeClassification {
	return domain.IncomeClassification{
		Income:              income,
		Tier:                tierFor(rules.Tiers, income),
		HouseholdPercentile: percentileFor(rules.HouseholdIncomeBands, income),
		EmployeePercentile:  percentileFor(rules.SalaryBands, income),
	}
}

// tierFor returns the last tier whose minimum is at or below income,
// the first tier for anything lower.
func tierFor(tiers []domain.IncomeTier, income decimal.Decimal) domain.IncomeTier {
	if len(tiers) == 0 {
		return domain.IncomeTier{}
	}
	found := tiers[0]
	for _, t := range tiers {
		if income.LessThan(t.MinIncome) {
			break
		}
		found = t
	}
	return found
}

// percentileFor matches on band lower bounds so no income falls between bands.
// The result is "top X%": Lo = 100 - cumHigh, Hi = 100 - cumLow.
func percentileFor(bands []domain.PercentileBand, income decimal.Decimal) domain.PercentileRange {
	if len(bands) == 0 {
		return domain.PercentileRange{}
	}
	found := bands[0]
	for _, b := range bands {
		if income.LessThan(b.Min) {
			break
		}
		found = b
	}
	return domain.PercentileRange{
		Lo: oneHundred.Sub(found.CumHigh),
		Hi: oneHundred.Sub(found.CumLow),
	}
}
