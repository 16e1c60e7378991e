package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// HouseholdType is the household composition used to scale essentials.
type HouseholdType string

const (
	HouseholdAlone  HouseholdType = "alone"
	HouseholdCouple HouseholdType = "couple"
	HouseholdFamily HouseholdType = "family"
)

// ParseHouseholdType accepts the canonical names case-insensitively.
func ParseHouseholdType(s string) (HouseholdType, error) {
	switch h := HouseholdType(strings.ToLower(strings.TrimSpace(s))); h {
	case HouseholdAlone, HouseholdCouple, HouseholdFamily:
		return h, nil
	case "single":
		return HouseholdAlone, nil
	}
	return "", fmt.Errorf("unknown household type %q", s)
}

// Location is where the household lives.
type Location string

const (
	LocationKL       Location = "kl"
	LocationUrban    Location = "urban"
	LocationNonUrban Location = "non-urban"
)

// ParseLocation accepts the canonical names case-insensitively.
func ParseLocation(s string) (Location, error) {
	switch l := Location(strings.ToLower(strings.TrimSpace(s))); l {
	case LocationKL, LocationUrban, LocationNonUrban:
		return l, nil
	case "kuala-lumpur", "kuala lumpur":
		return LocationKL, nil
	case "rural", "nonurban", "non_urban":
		return LocationNonUrban, nil
	}
	return "", fmt.Errorf("unknown location %q", s)
}

// ExpenseAssumptions is the monthly essentials basket for one adult, excluding housing.
type ExpenseAssumptions struct {
	Food          decimal.Decimal `yaml:"food" json:"food"`
	Transport     decimal.Decimal `yaml:"transport" json:"transport"`
	Utilities     decimal.Decimal `yaml:"utilities" json:"utilities"`
	Others        decimal.Decimal `yaml:"others" json:"others"`
	Entertainment decimal.Decimal `yaml:"entertainment" json:"entertainment"`
}

// Total sums the basket.
func (e ExpenseAssumptions) Total() decimal.Decimal {
	return e.Food.Add(e.Transport).Add(e.Utilities).Add(e.Others).Add(e.Entertainment)
}

// IncomeRealityInput compares a monthly income with a household's cost of living.
type IncomeRealityInput struct {
	MonthlyIncome decimal.Decimal    `yaml:"monthly_income" json:"monthlyIncome"`
	HousingCost   decimal.Decimal    `yaml:"housing_cost" json:"housingCost"`
	HouseholdType HouseholdType      `yaml:"household_type" json:"householdType"`
	Dependants    int                `yaml:"dependants" json:"dependants"`
	Location      Location           `yaml:"location" json:"location"`
	Expenses      ExpenseAssumptions `yaml:"expenses" json:"expenses"`
}

// IncomeRealityResult is the baseline cost breakdown and how far income covers it.
type IncomeRealityResult struct {
	BaseEssentials      decimal.Decimal `json:"baseEssentials"`
	HouseholdMultiplier decimal.Decimal `json:"householdMultiplier"`
	AdjustedEssentials  decimal.Decimal `json:"adjustedEssentials"`
	LocationMultiplier  decimal.Decimal `json:"locationMultiplier"`
	LocationAdjusted    decimal.Decimal `json:"locationAdjusted"`
	OthersCost          decimal.Decimal `json:"othersCost"`
	HousingCost         decimal.Decimal `json:"housingCost"`
	BaselineLifeCost    decimal.Decimal `json:"baselineLifeCost"`
	MonthlyIncome       decimal.Decimal `json:"monthlyIncome"`
	CoveragePercent     decimal.Decimal `json:"coveragePercent"`
	Surplus             decimal.Decimal `json:"surplus"`
}

// IsShortfall reports whether income falls below the baseline.
func (r IncomeRealityResult) IsShortfall() bool {
	return r.Surplus.IsNegative()
}

// PercentileRange is a "top X%" range, Lo being the better rank.
type PercentileRange struct {
	Lo decimal.Decimal `json:"lo"`
	Hi decimal.Decimal `json:"hi"`
}

// String renders the range as "top 20.7-24.2%".
func (r PercentileRange) String() string {
	if r.Lo.Equal(r.Hi) {
		return fmt.Sprintf("top %s%%", r.Lo.StringFixed(1))
	}
	return fmt.Sprintf("top %s-%s%%", r.Lo.StringFixed(1), r.Hi.StringFixed(1))
}

// IncomeClassification places a monthly income in the national distribution.
type IncomeClassification struct {
	Income              decimal.Decimal `json:"income"`
	Tier                IncomeTier      `json:"tier"`
	HouseholdPercentile PercentileRange `json:"householdPercentile"`
	EmployeePercentile  PercentileRange `json:"employeePercentile"`
}

// Group returns the B40/M40/T20 group of the tier.
func (c IncomeClassification) Group() string {
	if len(c.Tier.Code) == 0 {
		return ""
	}
	switch c.Tier.Code[0] {
	case 'B':
		return "B40"
	case 'M':
		return "M40"
	case 'T':
		return "T20"
	}
	return ""
}
