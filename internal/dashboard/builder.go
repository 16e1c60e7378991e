// Package dashboard composes the calculators for one profile.
package dashboard

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/rmgo/internal/breakeven"
	"github.com/rgehrsitz/rmgo/internal/calculation"
	"github.com/rgehrsitz/rmgo/internal/domain"
)

// Builder runs payroll, projection, withdrawal search, income reality and
// tier classification for a profile.
type Builder struct {
	Engine *calculation.CalculationEngine
	Solver *breakeven.Solver
}

// NewBuilder creates a builder sharing the engine's rules and logger
func NewBuilder(engine *calculation.CalculationEngine) *Builder {
	return &Builder{
		Engine: engine,
		Solver: breakeven.NewDefaultSolver(engine),
	}
}

// Build validates the profile and computes its dashboard. Only scalars flow
// between calculators: the net (or gross) pay feeds the income reality check.
func (b *Builder) Build(ctx context.Context, p domain.Profile) (*domain.Dashboard, error) {
	if err := domain.ValidateProfile(p); err != nil {
		return nil, err
	}
	rules := b.Engine.Rules()

	payroll, err := b.Engine.ComputeNetPay(p.PayrollInput(rules))
	if err != nil {
		return nil, fmt.Errorf("payroll: %w", err)
	}

	projIn := p.ProjectionInput(rules)
	proj, err := b.Engine.Project(projIn)
	if err != nil {
		return nil, fmt.Errorf("projection: %w", err)
	}

	withdrawal, err := b.Solver.SustainableWithdrawal(ctx, projIn)
	if err != nil {
		return nil, fmt.Errorf("sustainable withdrawal: %w", err)
	}

	basis := p.IncomeBasis()
	income := payroll.NetPay
	if basis == domain.IncomeBasisGross {
		income = payroll.GrossMonthlyIncome
	}
	reality, err := b.Engine.CompareIncomeToBaseline(p.IncomeRealityInput(rules, income))
	if err != nil {
		return nil, fmt.Errorf("income reality: %w", err)
	}

	d := &domain.Dashboard{
		ProfileName:           p.Name,
		RulesName:             rules.Name,
		Payroll:               payroll,
		Projection:            proj,
		SustainableWithdrawal: withdrawal.MonthlyWithdrawal,
		MilestoneBalance:      p.MilestoneBalance(),
		IncomeBasis:           basis,
		IncomeReality:         reality,
		Classification:        b.Engine.ClassifyIncome(p.MonthlyIncome),
	}
	if age, ok := proj.FirstAgeReaching(d.MilestoneBalance); ok {
		d.MilestoneAge = &age
	}
	if age, ok := proj.DepletionAge(); ok {
		d.DepletionAge = &age
	}

	b.Engine.Logger().Debugf("dashboard for %s: net %s, withdrawal %s", p.Name,
		payroll.NetPay.StringFixed(2), d.SustainableWithdrawal.StringFixed(0))
	return d, nil
}
