package compare

import (
	"context"
	"fmt"
	"strings"

	"github.com/rgehrsitz/rmgo/internal/breakeven"
	"github.com/rgehrsitz/rmgo/internal/calculation"
	"github.com/rgehrsitz/rmgo/internal/domain"
	"github.com/rgehrsitz/rmgo/internal/transform"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	Solver            *breakeven.Solver
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		Solver:            breakeven.NewDefaultSolver(calcEngine),
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(),
		TransformRegistry: transform.NewTransformRegistry(),
	}
}

// Compare projects the base input and every alternative, and diffs each against the base
func (ce *CompareEngine) Compare(
	ctx context.Context,
	baseName string,
	base domain.EPFProjectionInput,
	alternatives []Scenario,
) (*ComparisonSet, error) {

	baseResult, err := ce.evaluate(ctx, baseName, base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}

	results := make([]ComparisonResult, 0, len(alternatives))
	for _, alt := range alternatives {
		modified, err := transform.ApplyTransforms(base, alt.Transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply scenario %s: %w", alt.Name, err)
		}

		altResult, err := ce.evaluate(ctx, alt.Name, modified)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", alt.Name, err)
		}
		altResult.Description = alt.Description
		if altResult.Description == "" {
			altResult.Description = joinDescriptions(alt.Transforms)
		}
		results = append(results, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   baseName,
		MilestoneBalance:   ce.MetricsCalculator.MilestoneBalance,
		BaseResult:         &baseResult,
		AlternativeResults: results,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	ce.CalcEngine.Logger().Debugf("compared %d scenarios against %s", len(results), baseName)
	return compSet, nil
}

// CompareTemplates compares the base against templates or "name:params" transform specs
func (ce *CompareEngine) CompareTemplates(
	ctx context.Context,
	baseName string,
	base domain.EPFProjectionInput,
	refs []string,
) (*ComparisonSet, error) {
	scenarios, err := ce.ResolveScenarios(refs)
	if err != nil {
		return nil, err
	}
	return ce.Compare(ctx, baseName, base, scenarios)
}

// ResolveScenarios turns template names or transform specs into scenarios
func (ce *CompareEngine) ResolveScenarios(refs []string) ([]Scenario, error) {
	scenarios := make([]Scenario, 0, len(refs))
	for _, ref := range refs {
		name, transforms, err := transform.Resolve(ce.TemplateRegistry, ce.TransformRegistry, ref)
		if err != nil {
			return nil, err
		}
		sc := Scenario{Name: name, Transforms: transforms}
		if t, ok := ce.TemplateRegistry.Get(name); ok {
			sc.Description = t.Description
		}
		scenarios = append(scenarios, sc)
	}
	return scenarios, nil
}

// ScenariosFromProfile builds scenarios from a profile's retirement.scenarios section
func (ce *CompareEngine) ScenariosFromProfile(specs []domain.ScenarioSpec) ([]Scenario, error) {
	scenarios := make([]Scenario, 0, len(specs))
	for _, spec := range specs {
		var transforms []transform.ProjectionTransform
		for _, ref := range spec.Transforms {
			_, ts, err := transform.Resolve(ce.TemplateRegistry, ce.TransformRegistry, ref)
			if err != nil {
				return nil, fmt.Errorf("scenario %s: %w", spec.Name, err)
			}
			transforms = append(transforms, ts...)
		}
		scenarios = append(scenarios, Scenario{Name: spec.Name, Transforms: transforms})
	}
	return scenarios, nil
}

func (ce *CompareEngine) evaluate(ctx context.Context, name string, in domain.EPFProjectionInput) (ComparisonResult, error) {
	proj, err := ce.CalcEngine.Project(in)
	if err != nil {
		return ComparisonResult{}, err
	}
	w, err := ce.Solver.SustainableWithdrawal(ctx, in)
	if err != nil {
		return ComparisonResult{}, err
	}
	return ce.MetricsCalculator.CalculateMetrics(name, proj, w.MonthlyWithdrawal), nil
}

func joinDescriptions(transforms []transform.ProjectionTransform) string {
	return strings.Join(transform.Describe(transforms), "; ")
}
