package calculation

import (
	"fmt"

	"github.com/rgehrsitz/rmgo/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine runs the calculators against one rule set.
// It holds no mutable state and is safe for concurrent use.
type CalculationEngine struct {
	rules  domain.Rules
	logger Logger
}

// NewCalculationEngine creates an engine with the built-in MY-2024 rules.
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{rules: domain.MY2024Rules(), logger: NopLogger{}}
}

// NewCalculationEngineWithRules creates an engine with a custom rule set.
func NewCalculationEngineWithRules(rules domain.Rules) (*CalculationEngine, error) {
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules %q: %w", rules.Name, err)
	}
	return &CalculationEngine{rules: rules, logger: NopLogger{}}, nil
}

// SetLogger sets a logger; nil resets to no-op.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.logger = NopLogger{}
		return
	}
	ce.logger = l
}

// Logger returns the engine logger.
func (ce *CalculationEngine) Logger() Logger {
	return ce.logger
}

// Rules returns the engine's rule set.
func (ce *CalculationEngine) Rules() domain.Rules {
	return ce.rules
}

// ComputeNetPay computes payroll deductions with the engine rules.
func (ce *CalculationEngine) ComputeNetPay(in domain.PayrollInput) (*domain.PayrollResult, error) {
	res, err := computeNetPay(ce.rules, in)
	if err != nil {
		ce.logger.Debugf("payroll rejected: %v", err)
		return nil, err
	}
	ce.logger.Debugf("payroll gross=%s total=%s net=%s",
		res.GrossMonthlyIncome.StringFixed(2), res.TotalDeductions.StringFixed(2), res.NetPay.StringFixed(2))
	return res, nil
}

// Project validates in and materializes the year-by-year projection.
// A degenerate age range yields an empty projection, not an error.
func (ce *CalculationEngine) Project(in domain.EPFProjectionInput) (*domain.Projection, error) {
	if in.IsDegenerate() {
		ce.logger.Debugf("projection range empty: current age %d > target age %d", in.CurrentAge, in.TargetAge)
		return &domain.Projection{Input: in, Records: []domain.EPFYearRecord{}}, nil
	}
	if err := ValidateProjectionInput(in); err != nil {
		return nil, err
	}
	records := projectFund(ce.rules.EPF, in)
	ce.logger.Debugf("projected %d years from age %d, final balance %s",
		len(records), in.CurrentAge, records[len(records)-1].TotalAmount.String())
	return &domain.Projection{Input: in, Records: records}, nil
}

// ProjectFund runs the projection with the engine rules without validation.
func (ce *CalculationEngine) ProjectFund(in domain.EPFProjectionInput) []domain.EPFYearRecord {
	return projectFund(ce.rules.EPF, in)
}

// CompareIncomeToBaseline runs the cost-of-living comparison with the engine rules.
func (ce *CalculationEngine) CompareIncomeToBaseline(in domain.IncomeRealityInput) (*domain.IncomeRealityResult, error) {
	res, err := compareIncomeToBaseline(ce.rules, in)
	if err != nil {
		return nil, err
	}
	if !in.MonthlyIncome.IsPositive() {
		ce.logger.Warnf("income reality computed for non-positive income %s", in.MonthlyIncome.String())
	}
	return res, nil
}

// ClassifyIncome places income in the engine's distribution tables.
func (ce *CalculationEngine) ClassifyIncome(income decimal.Decimal) domain.IncomeClassification {
	return classifyIncome(ce.rules, income)
}
