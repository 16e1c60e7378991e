package compare

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rgehrsitz/rmgo/internal/calculation"
	"github.com/rgehrsitz/rmgo/internal/domain"
	"github.com/rgehrsitz/rmgo/internal/transform"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseInput() domain.EPFProjectionInput {
	return domain.NewEPFProjectionInput(domain.MY2024Rules().EPF, 30,
		decimal.NewFromInt(5000), decimal.NewFromInt(50000))
}

func TestCompareEngine_Compare(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	set, err := engine.Compare(context.Background(), "base", baseInput(), []Scenario{
		{Name: "work longer", Transforms: []transform.ProjectionTransform{&transform.DelayRetirement{Years: 3}}},
		{Name: "retire early", Transforms: []transform.ProjectionTransform{&transform.SetRetirementAge{Age: 55}}},
	})
	require.NoError(t, err)

	require.NotNil(t, set.BaseResult)
	assert.Equal(t, "base", set.BaseScenarioName)
	assert.Equal(t, 60, set.BaseResult.RetirementAge)
	assert.True(t, set.BaseResult.SustainableWithdrawal.IsPositive())
	assert.True(t, set.BaseResult.FinalBalanceDiff.IsZero())
	require.Len(t, set.AlternativeResults, 2)

	longer := set.AlternativeResults[0]
	assert.Equal(t, 63, longer.RetirementAge)
	assert.Equal(t, "Delay retirement by 3 years", longer.Description)
	assert.True(t, longer.BalanceAtRetirement.GreaterThan(set.BaseResult.BalanceAtRetirement))
	assert.True(t, longer.WithdrawalDiff.IsPositive())
	assert.True(t, longer.SustainableWithdrawal.Sub(set.BaseResult.SustainableWithdrawal).Equal(longer.WithdrawalDiff))

	early := set.AlternativeResults[1]
	assert.True(t, early.WithdrawalDiff.IsNegative())

	assert.NotEmpty(t, set.Recommendations)
	assert.Contains(t, set.Recommendations[0], "work longer")
}

func TestCompareEngine_Compare_Errors(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	bad := baseInput()
	bad.CurrentBalance = decimal.NewFromInt(-1)
	_, err := engine.Compare(context.Background(), "base", bad, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base scenario")

	_, err = engine.Compare(context.Background(), "base", baseInput(), []Scenario{
		{Name: "impossible", Transforms: []transform.ProjectionTransform{&transform.SetRetirementAge{Age: 10}}},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "impossible")
}

func TestCompareEngine_CompareTemplates(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	set, err := engine.CompareTemplates(context.Background(), "base", baseInput(),
		[]string{"work_1yr", "adjust_dividend:rate=4"})
	require.NoError(t, err)
	require.Len(t, set.AlternativeResults, 2)
	assert.Equal(t, "Work one more year before retiring", set.AlternativeResults[0].Description)
	assert.Equal(t, "adjust_dividend:rate=4", set.AlternativeResults[1].ScenarioName)
	assert.True(t, set.AlternativeResults[1].FinalBalancePctDiff.IsNegative())

	_, err = engine.CompareTemplates(context.Background(), "base", baseInput(), []string{"nope"})
	assert.Error(t, err)
}

func TestCompareEngine_ScenariosFromProfile(t *testing.T) {
	engine := NewCompareEngine(calculation.NewCalculationEngine())

	scenarios, err := engine.ScenariosFromProfile([]domain.ScenarioSpec{
		{Name: "stretch", Transforms: []string{"conservative", "set_expenses:monthly=2000"}},
	})
	require.NoError(t, err)
	require.Len(t, scenarios, 1)
	assert.Len(t, scenarios[0].Transforms, 4)

	_, err = engine.ScenariosFromProfile([]domain.ScenarioSpec{{Name: "x", Transforms: []string{"bogus"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scenario x")
}

func TestMetricsCalculator(t *testing.T) {
	mc := NewMetricsCalculator()
	in := baseInput().WithMonthlyExpenses(decimal.NewFromInt(20000))
	proj := &domain.Projection{Input: in, Records: calculation.ProjectFund(in)}

	res := mc.CalculateMetrics("spendy", proj, decimal.NewFromInt(100))
	require.NotNil(t, res.DepletionAge)
	assert.Greater(t, *res.DepletionAge, 60)
	assert.True(t, res.FinalBalance.IsZero())
	assert.True(t, res.BalanceAtRetirement.Equal(proj.BalanceAtRetirement()))

	base := ComparisonResult{FinalBalance: decimal.NewFromInt(200), SustainableWithdrawal: decimal.NewFromInt(50)}
	alt := mc.CalculateComparison(ComparisonResult{FinalBalance: decimal.NewFromInt(300), SustainableWithdrawal: decimal.NewFromInt(40)}, base)
	assert.True(t, alt.FinalBalanceDiff.Equal(decimal.NewFromInt(100)))
	assert.True(t, alt.FinalBalancePctDiff.Equal(decimal.NewFromInt(50)))
	assert.True(t, alt.WithdrawalDiff.Equal(decimal.NewFromInt(-10)))

	zeroBase := mc.CalculateComparison(alt, ComparisonResult{})
	assert.True(t, zeroBase.FinalBalancePctDiff.IsZero())
}

func TestGenerateRecommendations(t *testing.T) {
	age55, age50, age80 := 55, 50, 80
	set := &ComparisonSet{
		MilestoneBalance: domain.DefaultMilestoneBalance,
		BaseResult:       &ComparisonResult{ScenarioName: "base", SustainableWithdrawal: decimal.NewFromInt(5000), MilestoneAge: &age55},
		AlternativeResults: []ComparisonResult{
			{ScenarioName: "a", SustainableWithdrawal: decimal.NewFromInt(6000), WithdrawalDiff: decimal.NewFromInt(1000)},
			{ScenarioName: "b", SustainableWithdrawal: decimal.NewFromInt(4000), MilestoneAge: &age50, DepletionAge: &age80},
		},
	}

	recs := GenerateRecommendations(set)
	assert.Equal(t, []string{
		"Best Withdrawal: a sustains RM1000 more a month than the base scenario",
		"Fastest Milestone: b reaches RM1000000 at age 50",
		"Warning: b runs the fund dry at age 80",
	}, recs)

	assert.Empty(t, GenerateRecommendations(&ComparisonSet{BaseResult: set.BaseResult}))
}

func sampleSet(t *testing.T) *ComparisonSet {
	t.Helper()
	engine := NewCompareEngine(calculation.NewCalculationEngine())
	set, err := engine.CompareTemplates(context.Background(), "base", baseInput(), []string{"work_3yr"})
	require.NoError(t, err)
	set.ProfilePath = "profile.yaml"
	return set
}

func TestTableFormatter_Format(t *testing.T) {
	out := (&TableFormatter{}).Format(sampleSet(t))

	assert.Contains(t, out, "RETIREMENT SCENARIO COMPARISON")
	assert.Contains(t, out, "Base Scenario: base")
	assert.Contains(t, out, "Profile: profile.yaml")
	assert.Contains(t, out, "base (base)")
	assert.Contains(t, out, "RM1.00M Age")
	assert.Contains(t, out, "COMPARISON TO BASE")
	assert.Contains(t, out, "work_3yr:")
	assert.Contains(t, out, "Withdrawal:         +RM")
	assert.Contains(t, out, "RECOMMENDATIONS")
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	out := (&TableFormatter{}).FormatCompact(sampleSet(t))
	assert.True(t, strings.HasPrefix(out, "Base: base | work_3yr: +RM"))
}

func TestTableFormatter_Helpers(t *testing.T) {
	tf := &TableFormatter{}
	assert.Equal(t, "1.50M", tf.formatDecimal(decimal.NewFromInt(1_500_000)))
	assert.Equal(t, "2.5K", tf.formatDecimal(decimal.NewFromInt(2500)))
	assert.Equal(t, "999", tf.formatDecimal(decimal.NewFromInt(999)))
	assert.Equal(t, "-", tf.deltaSymbol(decimal.NewFromInt(-1)))
	assert.Equal(t, "abcd...", tf.truncate("abcdefghij", 7))
	assert.Equal(t, "-", formatAge(nil))
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(sampleSet(t))
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Scenario", rows[0][0])
	assert.Len(t, rows[0], 13)
	assert.Equal(t, []string{"base", "base", "60", "90"}, rows[1][:4])
	assert.Equal(t, []string{"work_3yr", "alternative", "63", "90"}, rows[2][:4])
}

func TestJSONFormatter_Format(t *testing.T) {
	out, err := (&JSONFormatter{Pretty: true}).Format(sampleSet(t))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "base", decoded["baseScenarioName"])
	alts, ok := decoded["alternativeResults"].([]any)
	require.True(t, ok)
	assert.Len(t, alts, 1)
	assert.NotContains(t, out, "\"Projection\"")
}
