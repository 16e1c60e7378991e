package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMY2024Rules_Validate(t *testing.T) {
	rules := MY2024Rules()
	require.NoError(t, rules.Validate())
	assert.Equal(t, "MY-2024", rules.Name)
	assert.Len(t, rules.Tax.Brackets, 10)
	assert.Len(t, rules.Tiers, 10)
	assert.Len(t, rules.HouseholdIncomeBands, 20)
	assert.Len(t, rules.SalaryBands, 16)
}

func TestTaxTable_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(tt *TaxTable)
		wantErr string
	}{
		{
			name:   "valid table",
			mutate: func(tt *TaxTable) {},
		},
		{
			name:    "empty table",
			mutate:  func(tt *TaxTable) { tt.Brackets = nil },
			wantErr: "at least one bracket",
		},
		{
			name: "bounded last bracket",
			mutate: func(tt *TaxTable) {
				tt.Brackets[len(tt.Brackets)-1].UpTo = upTo(5_000_000)
			},
			wantErr: "last bracket must be unbounded",
		},
		{
			name: "unbounded middle bracket",
			mutate: func(tt *TaxTable) {
				tt.Brackets[3].UpTo = nil
			},
			wantErr: "only the last bracket may be unbounded",
		},
		{
			name: "thresholds out of order",
			mutate: func(tt *TaxTable) {
				tt.Brackets[2].UpTo = upTo(15000)
			},
			wantErr: "must exceed",
		},
		{
			name: "base tax decreasing",
			mutate: func(tt *TaxTable) {
				tt.Brackets[4].BaseTax = decimal.NewFromInt(100)
			},
			wantErr: "below previous",
		},
		{
			name: "rate above 100",
			mutate: func(tt *TaxTable) {
				tt.Brackets[1].Rate = decimal.NewFromInt(101)
			},
			wantErr: "rate must be between",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := MY2024TaxTable()
			tt.mutate(&table)
			err := table.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTaxTable_Floor(t *testing.T) {
	table := MY2024TaxTable()
	assert.True(t, table.Floor(0).IsZero())
	assert.True(t, table.Floor(1).Equal(decimal.NewFromInt(5000)))
	assert.True(t, table.Floor(9).Equal(decimal.NewFromInt(2_000_000)))
}

func TestEPFRules_EmployerRate(t *testing.T) {
	rules := MY2024Rules().EPF
	tests := []struct {
		income string
		want   int64
	}{
		{"0", 13},
		{"4999.99", 13},
		{"5000", 13},
		{"5000.01", 12},
		{"20000", 12},
	}
	for _, tt := range tests {
		t.Run(tt.income, func(t *testing.T) {
			got := rules.EmployerRate(decimal.RequireFromString(tt.income))
			assert.True(t, got.Equal(decimal.NewFromInt(tt.want)), "got %s", got)
		})
	}
}

func TestRules_ValidateMissingLocation(t *testing.T) {
	rules := MY2024Rules()
	delete(rules.Locations, LocationUrban)
	err := rules.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "urban")
}

func TestParseHouseholdTypeAndLocation(t *testing.T) {
	h, err := ParseHouseholdType(" Couple ")
	require.NoError(t, err)
	assert.Equal(t, HouseholdCouple, h)

	h, err = ParseHouseholdType("single")
	require.NoError(t, err)
	assert.Equal(t, HouseholdAlone, h)

	_, err = ParseHouseholdType("commune")
	assert.Error(t, err)

	l, err := ParseLocation("KL")
	require.NoError(t, err)
	assert.Equal(t, LocationKL, l)

	l, err = ParseLocation("rural")
	require.NoError(t, err)
	assert.Equal(t, LocationNonUrban, l)

	_, err = ParseLocation("mars")
	assert.Error(t, err)
}

func testProjection() *Projection {
	mk := func(age int, total int64, post bool) EPFYearRecord {
		return EPFYearRecord{Age: age, TotalAmount: decimal.NewFromInt(total), IsPostRetirement: post}
	}
	return &Projection{
		Input: EPFProjectionInput{CurrentAge: 58, RetirementAge: 60, TargetAge: 63},
		Records: []EPFYearRecord{
			mk(58, 900_000, false),
			mk(59, 1_000_000, false),
			mk(60, 1_100_000, false),
			mk(61, 400_000, true),
			mk(62, 0, true),
			mk(63, 0, true),
		},
	}
}

func TestProjection_Helpers(t *testing.T) {
	p := testProjection()

	rec, ok := p.AtAge(60)
	require.True(t, ok)
	assert.Equal(t, 60, rec.Age)

	_, ok = p.AtAge(57)
	assert.False(t, ok)
	_, ok = p.AtAge(64)
	assert.False(t, ok)

	assert.True(t, p.BalanceAtRetirement().Equal(decimal.NewFromInt(1_100_000)))
	assert.True(t, p.FinalBalance().IsZero())

	age, ok := p.FirstAgeReaching(DefaultMilestoneBalance)
	require.True(t, ok)
	assert.Equal(t, 59, age)

	_, ok = p.FirstAgeReaching(decimal.NewFromInt(5_000_000))
	assert.False(t, ok)

	age, ok = p.DepletionAge()
	require.True(t, ok)
	assert.Equal(t, 62, age)

	sample := p.Sample(4)
	require.Len(t, sample, 3)
	assert.Equal(t, 58, sample[0].Age)
	assert.Equal(t, 62, sample[1].Age)
	assert.Equal(t, 63, sample[2].Age)
}

func TestProjection_Empty(t *testing.T) {
	var p *Projection
	assert.True(t, p.IsEmpty())
	assert.True(t, p.FinalBalance().IsZero())
	_, ok := p.Final()
	assert.False(t, ok)
	_, ok = p.DepletionAge()
	assert.False(t, ok)
	assert.Nil(t, p.Sample(5))
}

func TestProfile_ResolvesDefaults(t *testing.T) {
	rules := MY2024Rules()
	p := Profile{Name: "Aisyah", Age: 30, MonthlyIncome: decimal.NewFromInt(5000)}

	pay := p.PayrollInput(rules)
	assert.True(t, pay.EmployeeFundRate.Equal(decimal.NewFromInt(11)))
	assert.True(t, pay.SocialSecurityRate.Equal(decimal.RequireFromString("0.5")))
	assert.True(t, pay.InsuranceRate.Equal(decimal.RequireFromString("0.2")))
	assert.Equal(t, 30, pay.Age)

	proj := p.ProjectionInput(rules)
	assert.Equal(t, 30, proj.CurrentAge)
	assert.Equal(t, 60, proj.RetirementAge)
	assert.Equal(t, 90, proj.TargetAge)
	assert.Nil(t, proj.EmployerContributionRate)
	assert.True(t, proj.AnnualDividendRate.Equal(decimal.RequireFromString("5.5")))

	reality := p.IncomeRealityInput(rules, decimal.NewFromInt(4000))
	assert.Equal(t, HouseholdAlone, reality.HouseholdType)
	assert.Equal(t, LocationKL, reality.Location)
	assert.True(t, reality.Expenses.Total().Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, IncomeBasisNet, p.IncomeBasis())
	assert.True(t, p.MilestoneBalance().Equal(DefaultMilestoneBalance))
}

func TestProfile_AppliesSections(t *testing.T) {
	rules := MY2024Rules()
	fund := decimal.NewFromInt(9)
	employer := decimal.NewFromInt(15)
	retire := 55
	food := decimal.NewFromInt(1000)
	p := Profile{
		Name:          "Wei",
		Age:           40,
		MonthlyIncome: decimal.NewFromInt(8000),
		Payroll:       &PayrollSection{EmployeeFundRate: &fund, AdditionalTax: decimal.NewFromInt(50)},
		Retirement: &RetirementSection{
			CurrentBalance: decimal.NewFromInt(200_000),
			RetirementAge:  &retire,
			EmployerRate:   &employer,
		},
		IncomeReality: &IncomeRealitySection{
			HousingCost:   decimal.NewFromInt(1800),
			HouseholdType: HouseholdFamily,
			Dependants:    2,
			Location:      LocationUrban,
			IncomeBasis:   IncomeBasisGross,
			Expenses:      &ExpenseOverride{Food: &food},
		},
	}

	pay := p.PayrollInput(rules)
	assert.True(t, pay.EmployeeFundRate.Equal(fund))
	assert.True(t, pay.AdditionalTax.Equal(decimal.NewFromInt(50)))

	proj := p.ProjectionInput(rules)
	assert.Equal(t, 55, proj.RetirementAge)
	require.NotNil(t, proj.EmployerContributionRate)
	assert.True(t, proj.EmployerContributionRate.Equal(employer))
	assert.True(t, proj.CurrentBalance.Equal(decimal.NewFromInt(200_000)))

	reality := p.IncomeRealityInput(rules, p.MonthlyIncome)
	assert.Equal(t, HouseholdFamily, reality.HouseholdType)
	assert.Equal(t, 2, reality.Dependants)
	assert.True(t, reality.Expenses.Food.Equal(food))
	assert.True(t, reality.Expenses.Transport.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, IncomeBasisGross, p.IncomeBasis())
}

func TestProfile_DefaultRetirementAgeNotBelowAge(t *testing.T) {
	rules := MY2024Rules()
	tests := []struct {
		age        int
		wantRetire int
	}{
		{30, 60},
		{60, 60},
		{62, 62},
		{95, 95},
	}
	for _, tt := range tests {
		p := Profile{Name: "A", Age: tt.age, MonthlyIncome: decimal.NewFromInt(5000)}
		require.NoError(t, ValidateProfile(p))
		assert.Equal(t, tt.wantRetire, p.ProjectionInput(rules).RetirementAge, "age %d", tt.age)
	}

	retire := 65
	p := Profile{Name: "A", Age: 62, Retirement: &RetirementSection{RetirementAge: &retire}}
	assert.Equal(t, 65, p.ProjectionInput(rules).RetirementAge)
}

func TestProfile_IncomeRealityInputCanonicalizesAliases(t *testing.T) {
	tests := []struct {
		household HouseholdType
		location  Location
		wantH     HouseholdType
		wantL     Location
	}{
		{"single", "KL", HouseholdAlone, LocationKL},
		{"Couple", "Kuala Lumpur", HouseholdCouple, LocationKL},
		{" FAMILY ", "rural", HouseholdFamily, LocationNonUrban},
		{"family", "Urban", HouseholdFamily, LocationUrban},
	}
	for _, tt := range tests {
		p := Profile{
			Name: "A", Age: 30, MonthlyIncome: decimal.NewFromInt(5000),
			IncomeReality: &IncomeRealitySection{HouseholdType: tt.household, Location: tt.location},
		}
		require.NoError(t, ValidateProfile(p))
		in := p.IncomeRealityInput(MY2024Rules(), p.MonthlyIncome)
		assert.Equal(t, tt.wantH, in.HouseholdType)
		assert.Equal(t, tt.wantL, in.Location)
	}
}

func TestValidateProfile(t *testing.T) {
	retire := 50
	target := 10
	negRate := decimal.NewFromInt(-1)

	err := ValidateProfile(Profile{
		Name:          "",
		Age:           17,
		MonthlyIncome: decimal.NewFromInt(-10),
		Payroll:       &PayrollSection{EmployeeFundRate: &negRate},
		Retirement:    &RetirementSection{RetirementAge: &retire, TargetAge: &target},
		IncomeReality: &IncomeRealitySection{Dependants: -1, Location: "mars"},
	})
	require.Error(t, err)

	issues, ok := AsValidationErrors(err)
	require.True(t, ok)
	fields := issues.Fields()
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "age")
	assert.Contains(t, fields, "monthly_income")
	assert.Contains(t, fields, "payroll.employee_fund_rate")
	assert.Contains(t, fields, "retirement.retirement_age")
	assert.Contains(t, fields, "retirement.target_age")
	assert.Contains(t, fields, "income_reality.dependants")
	assert.Contains(t, fields, "income_reality.location")

	assert.NoError(t, ValidateProfile(Profile{Name: "ok", Age: 30, MonthlyIncome: decimal.NewFromInt(5000)}))
}

func TestValidationErrors_Wrapping(t *testing.T) {
	v := NewValidator()
	v.Add("gross_monthly_income", "must not be negative")
	v.Add("age", "")
	wrapped := errors.Join(errors.New("payroll"), v.Err())

	issues, ok := AsValidationErrors(wrapped)
	require.True(t, ok)
	require.Len(t, issues, 1)
	assert.Equal(t, "gross_monthly_income", issues[0].Field)
	assert.Contains(t, wrapped.Error(), "gross_monthly_income: must not be negative")

	single, ok := AsValidationErrors(ValidationError{Field: "age", Reason: "must not be negative"})
	require.True(t, ok)
	assert.Len(t, single, 1)

	_, ok = AsValidationErrors(errors.New("boom"))
	assert.False(t, ok)
}

func TestPercentileRange_String(t *testing.T) {
	assert.Equal(t, "top 20.7-24.2%", PercentileRange{Lo: decimal.RequireFromString("20.7"), Hi: decimal.RequireFromString("24.2")}.String())
	assert.Equal(t, "top 0.0%", PercentileRange{}.String())
}

func TestIncomeClassification_Group(t *testing.T) {
	assert.Equal(t, "B40", IncomeClassification{Tier: IncomeTier{Code: "B2"}}.Group())
	assert.Equal(t, "M40", IncomeClassification{Tier: IncomeTier{Code: "M4"}}.Group())
	assert.Equal(t, "T20", IncomeClassification{Tier: IncomeTier{Code: "T1"}}.Group())
	assert.Equal(t, "", IncomeClassification{}.Group())
}
