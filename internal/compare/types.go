package compare

import (
	"fmt"

	"github.com/rgehrsitz/rmgo/internal/domain"
	"github.com/rgehrsitz/rmgo/internal/transform"
	"github.com/shopspring/decimal"
)

// Scenario is a named set of transforms applied to the base projection input
type Scenario struct {
	Name        string
	Description string
	Transforms  []transform.ProjectionTransform
}

// ComparisonResult represents a single scenario comparison with calculated metrics
type ComparisonResult struct {
	ScenarioName string `json:"scenarioName"`
	Description  string `json:"description"`

	RetirementAge      int             `json:"retirementAge"`
	TargetAge          int             `json:"targetAge"`
	AnnualDividendRate decimal.Decimal `json:"annualDividendRate"`
	MonthlyExpenses    decimal.Decimal `json:"monthlyExpenses"`

	// Key Metrics
	BalanceAtRetirement   decimal.Decimal `json:"balanceAtRetirement"`
	FinalBalance          decimal.Decimal `json:"finalBalance"`
	MilestoneAge          *int            `json:"milestoneAge,omitempty"`
	DepletionAge          *int            `json:"depletionAge,omitempty"`
	SustainableWithdrawal decimal.Decimal `json:"sustainableWithdrawal"`

	// Comparison to Base
	RetirementBalanceDiff decimal.Decimal `json:"retirementBalanceDiff"`
	FinalBalanceDiff      decimal.Decimal `json:"finalBalanceDiff"`
	FinalBalancePctDiff   decimal.Decimal `json:"finalBalancePctDiff"`
	WithdrawalDiff        decimal.Decimal `json:"withdrawalDiff"`

	Projection *domain.Projection `json:"-"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	MilestoneBalance   decimal.Decimal    `json:"milestoneBalance"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	ProfilePath        string             `json:"profilePath,omitempty"`
}

// MetricsCalculator extracts key metrics from projections
type MetricsCalculator struct {
	MilestoneBalance decimal.Decimal
}

// NewMetricsCalculator creates a metrics calculator using the default RM1M milestone
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{MilestoneBalance: domain.DefaultMilestoneBalance}
}

// CalculateMetrics computes all comparison metrics for one projection
func (mc *MetricsCalculator) CalculateMetrics(name string, proj *domain.Projection, withdrawal decimal.Decimal) ComparisonResult {
	result := ComparisonResult{
		ScenarioName:          name,
		RetirementAge:         proj.Input.RetirementAge,
		TargetAge:             proj.Input.TargetAge,
		AnnualDividendRate:    proj.Input.AnnualDividendRate,
		MonthlyExpenses:       proj.Input.MonthlyExpenses,
		BalanceAtRetirement:   proj.BalanceAtRetirement(),
		FinalBalance:          proj.FinalBalance(),
		SustainableWithdrawal: withdrawal,
		Projection:            proj,
	}

	if age, ok := proj.FirstAgeReaching(mc.MilestoneBalance); ok {
		result.MilestoneAge = &age
	}
	if age, ok := proj.DepletionAge(); ok {
		result.DepletionAge = &age
	}

	return result
}

// CalculateComparison computes comparison metrics between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.RetirementBalanceDiff = scenario.BalanceAtRetirement.Sub(base.BalanceAtRetirement)
	scenario.FinalBalanceDiff = scenario.FinalBalance.Sub(base.FinalBalance)
	scenario.WithdrawalDiff = scenario.SustainableWithdrawal.Sub(base.SustainableWithdrawal)

	if !base.FinalBalance.IsZero() {
		scenario.FinalBalancePctDiff = scenario.FinalBalanceDiff.
			Div(base.FinalBalance).
			Mul(decimal.NewFromInt(100))
	}

	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if len(compSet.AlternativeResults) == 0 {
		return recommendations
	}

	base := compSet.BaseResult

	bestWithdrawal := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.SustainableWithdrawal.GreaterThan(bestWithdrawal.SustainableWithdrawal) {
			bestWithdrawal = alt
		}
	}
	if bestWithdrawal != base {
		recommendations = append(recommendations,
			"Best Withdrawal: "+bestWithdrawal.ScenarioName+" sustains RM"+
				bestWithdrawal.WithdrawalDiff.StringFixed(0)+" more a month than the base scenario")
	}

	earliest := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.MilestoneAge != nil && (earliest.MilestoneAge == nil || *alt.MilestoneAge < *earliest.MilestoneAge) {
			earliest = alt
		}
	}
	if earliest != base {
		recommendations = append(recommendations,
			fmt.Sprintf("Fastest Milestone: %s reaches RM%s at age %d",
				earliest.ScenarioName, compSet.MilestoneBalance.StringFixed(0), *earliest.MilestoneAge))
	}

	for _, alt := range compSet.AlternativeResults {
		if alt.DepletionAge != nil && base.DepletionAge == nil {
			recommendations = append(recommendations,
				fmt.Sprintf("Warning: %s runs the fund dry at age %d", alt.ScenarioName, *alt.DepletionAge))
		}
	}

	return recommendations
}
