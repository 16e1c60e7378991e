package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// IncomeBasis selects which monthly figure feeds the cost-of-living comparison.
type IncomeBasis string

const (
	IncomeBasisNet   IncomeBasis = "net"
	IncomeBasisGross IncomeBasis = "gross"
)

// Profile is the user's saved inputs. Optional sections and fields resolve
// to rule defaults when omitted.
type Profile struct {
	ID            string                `yaml:"id,omitempty" json:"id,omitempty"`
	Name          string                `yaml:"name" json:"name"`
	Age           int                   `yaml:"age" json:"age"`
	MonthlyIncome decimal.Decimal       `yaml:"monthly_income" json:"monthlyIncome"`
	Payroll       *PayrollSection       `yaml:"payroll,omitempty" json:"payroll,omitempty"`
	Retirement    *RetirementSection    `yaml:"retirement,omitempty" json:"retirement,omitempty"`
	IncomeReality *IncomeRealitySection `yaml:"income_reality,omitempty" json:"incomeReality,omitempty"`
}

// PayrollSection overrides payroll rates and deductions.
type PayrollSection struct {
	EmployeeFundRate   *decimal.Decimal   `yaml:"employee_fund_rate,omitempty" json:"employeeFundRate,omitempty"`
	SocialSecurityRate *decimal.Decimal   `yaml:"social_security_rate,omitempty" json:"socialSecurityRate,omitempty"`
	InsuranceRate      *decimal.Decimal   `yaml:"insurance_rate,omitempty" json:"insuranceRate,omitempty"`
	Garnishment        decimal.Decimal    `yaml:"garnishment,omitempty" json:"garnishment,omitempty"`
	AdditionalTax      decimal.Decimal    `yaml:"additional_tax,omitempty" json:"additionalTax,omitempty"`
	OverridesEnabled   bool               `yaml:"overrides_enabled,omitempty" json:"overridesEnabled,omitempty"`
	Overrides          DeductionOverrides `yaml:"overrides,omitempty" json:"overrides,omitempty"`
}

// RetirementSection holds the EPF projection settings.
type RetirementSection struct {
	CurrentBalance   decimal.Decimal  `yaml:"current_balance" json:"currentBalance"`
	RetirementAge    *int             `yaml:"retirement_age,omitempty" json:"retirementAge,omitempty"`
	TargetAge        *int             `yaml:"target_age,omitempty" json:"targetAge,omitempty"`
	DividendRate     *decimal.Decimal `yaml:"dividend_rate,omitempty" json:"dividendRate,omitempty"`
	EmployeeRate     *decimal.Decimal `yaml:"employee_rate,omitempty" json:"employeeRate,omitempty"`
	EmployerRate     *decimal.Decimal `yaml:"employer_rate,omitempty" json:"employerRate,omitempty"`
	MonthlyExpenses  decimal.Decimal  `yaml:"monthly_expenses,omitempty" json:"monthlyExpenses,omitempty"`
	Scenarios        []ScenarioSpec   `yaml:"scenarios,omitempty" json:"scenarios,omitempty"`
	MilestoneBalance *decimal.Decimal `yaml:"milestone_balance,omitempty" json:"milestoneBalance,omitempty"`
}

// ScenarioSpec is a named what-if built from transform specs such as "delay_retirement:years=5".
type ScenarioSpec struct {
	Name       string   `yaml:"name" json:"name"`
	Transforms []string `yaml:"transforms" json:"transforms"`
}

// IncomeRealitySection holds the cost-of-living comparison settings.
type IncomeRealitySection struct {
	HousingCost   decimal.Decimal  `yaml:"housing_cost" json:"housingCost"`
	HouseholdType HouseholdType    `yaml:"household_type,omitempty" json:"householdType,omitempty"`
	Dependants    int              `yaml:"dependants,omitempty" json:"dependants,omitempty"`
	Location      Location         `yaml:"location,omitempty" json:"location,omitempty"`
	IncomeBasis   IncomeBasis      `yaml:"income_basis,omitempty" json:"incomeBasis,omitempty"`
	Expenses      *ExpenseOverride `yaml:"expenses,omitempty" json:"expenses,omitempty"`
}

// ExpenseOverride replaces individual basket items.
type ExpenseOverride struct {
	Food          *decimal.Decimal `yaml:"food,omitempty" json:"food,omitempty"`
	Transport     *decimal.Decimal `yaml:"transport,omitempty" json:"transport,omitempty"`
	Utilities     *decimal.Decimal `yaml:"utilities,omitempty" json:"utilities,omitempty"`
	Others        *decimal.Decimal `yaml:"others,omitempty" json:"others,omitempty"`
	Entertainment *decimal.Decimal `yaml:"entertainment,omitempty" json:"entertainment,omitempty"`
}

// DefaultMilestoneBalance is the RM1,000,000 milestone.
var DefaultMilestoneBalance = decimal.NewFromInt(1_000_000)

// PayrollInput resolves the payroll section against rules.
func (p Profile) PayrollInput(rules Rules) PayrollInput {
	in := PayrollInput{
		GrossMonthlyIncome: p.MonthlyIncome,
		EmployeeFundRate:   rules.Payroll.DefaultEmployeeFundRate,
		SocialSecurityRate: rules.Payroll.DefaultSocialSecurityRate,
		InsuranceRate:      rules.Payroll.DefaultInsuranceRate,
		Age:                p.Age,
	}
	s := p.Payroll
	if s == nil {
		return in
	}
	if s.EmployeeFundRate != nil {
		in.EmployeeFundRate = *s.EmployeeFundRate
	}
	if s.SocialSecurityRate != nil {
		in.SocialSecurityRate = *s.SocialSecurityRate
	}
	if s.InsuranceRate != nil {
		in.InsuranceRate = *s.InsuranceRate
	}
	in.GarnishmentAmount = s.Garnishment
	in.AdditionalTax = s.AdditionalTax
	in.OverridesEnabled = s.OverridesEnabled
	in.Overrides = s.Overrides
	return in
}

// ProjectionInput resolves the retirement section against rules.
func (p Profile) ProjectionInput(rules Rules) EPFProjectionInput {
	in := NewEPFProjectionInput(rules.EPF, p.Age, p.MonthlyIncome, decimal.Zero)
	// Past the default retirement age, an unset retirement age means retiring now.
	if in.RetirementAge < p.Age {
		in.RetirementAge = p.Age
	}
	s := p.Retirement
	if s == nil {
		return in
	}
	in.CurrentBalance = s.CurrentBalance
	in.MonthlyExpenses = s.MonthlyExpenses
	if s.RetirementAge != nil {
		in.RetirementAge = *s.RetirementAge
	}
	if s.TargetAge != nil {
		in.TargetAge = *s.TargetAge
	}
	if s.DividendRate != nil {
		in.AnnualDividendRate = *s.DividendRate
	}
	if s.EmployeeRate != nil {
		in.EmployeeContributionRate = *s.EmployeeRate
	}
	if s.EmployerRate != nil {
		rate := *s.EmployerRate
		in.EmployerContributionRate = &rate
	}
	return in
}

// MilestoneBalance returns the configured milestone or RM1,000,000.
func (p Profile) MilestoneBalance() decimal.Decimal {
	if p.Retirement != nil && p.Retirement.MilestoneBalance != nil {
		return *p.Retirement.MilestoneBalance
	}
	return DefaultMilestoneBalance
}

// Scenarios returns the named what-if scenarios, if any.
func (p Profile) Scenarios() []ScenarioSpec {
	if p.Retirement == nil {
		return nil
	}
	return p.Retirement.Scenarios
}

// IncomeBasis returns the configured basis, net by default.
func (p Profile) IncomeBasis() IncomeBasis {
	if p.IncomeReality == nil || p.IncomeReality.IncomeBasis == "" {
		return IncomeBasisNet
	}
	return p.IncomeReality.IncomeBasis
}

// IncomeRealityInput resolves the cost-of-living section for the given monthly income.
func (p Profile) IncomeRealityInput(rules Rules, monthlyIncome decimal.Decimal) IncomeRealityInput {
	in := IncomeRealityInput{
		MonthlyIncome: monthlyIncome,
		HouseholdType: HouseholdAlone,
		Location:      LocationKL,
		Expenses:      rules.DefaultExpenses,
	}
	s := p.IncomeReality
	if s == nil {
		return in
	}
	in.HousingCost = s.HousingCost
	in.Dependants = s.Dependants
	if s.HouseholdType != "" {
		in.HouseholdType = s.HouseholdType
		if h, err := ParseHouseholdType(string(s.HouseholdType)); err == nil {
			in.HouseholdType = h
		}
	}
	if s.Location != "" {
		in.Location = s.Location
		if l, err := ParseLocation(string(s.Location)); err == nil {
			in.Location = l
		}
	}
	if e := s.Expenses; e != nil {
		in.Expenses = e.Apply(in.Expenses)
	}
	return in
}

// Apply overlays the set fields on base.
func (o ExpenseOverride) Apply(base ExpenseAssumptions) ExpenseAssumptions {
	if o.Food != nil {
		base.Food = *o.Food
	}
	if o.Transport != nil {
		base.Transport = *o.Transport
	}
	if o.Utilities != nil {
		base.Utilities = *o.Utilities
	}
	if o.Others != nil {
		base.Others = *o.Others
	}
	if o.Entertainment != nil {
		base.Entertainment = *o.Entertainment
	}
	return base
}

// ValidateProfile checks the fields a profile must carry before any calculator runs.
func ValidateProfile(p Profile) error {
	v := NewValidator()
	if strings.TrimSpace(p.Name) == "" {
		v.Add("name", "is required")
	}
	v.IntRange("age", p.Age, 18, 100)
	v.NonNegative("monthly_income", p.MonthlyIncome)
	v.AtMost("monthly_income", p.MonthlyIncome, decimal.NewFromInt(1_000_000))

	if s := p.Payroll; s != nil {
		for field, rate := range map[string]*decimal.Decimal{
			"payroll.employee_fund_rate":   s.EmployeeFundRate,
			"payroll.social_security_rate": s.SocialSecurityRate,
			"payroll.insurance_rate":       s.InsuranceRate,
		} {
			if rate != nil {
				v.Percent(field, *rate)
			}
		}
		v.NonNegative("payroll.additional_tax", s.AdditionalTax)
	}

	if s := p.Retirement; s != nil {
		v.NonNegative("retirement.current_balance", s.CurrentBalance)
		v.AtMost("retirement.current_balance", s.CurrentBalance, decimal.NewFromInt(100_000_000))
		v.NonNegative("retirement.monthly_expenses", s.MonthlyExpenses)
		if s.RetirementAge != nil && *s.RetirementAge < p.Age {
			v.Add("retirement.retirement_age", "must not be below age")
		}
		if s.TargetAge != nil {
			v.IntRange("retirement.target_age", *s.TargetAge, p.Age, 120)
		}
		if s.RetirementAge != nil && s.TargetAge != nil && *s.RetirementAge > *s.TargetAge {
			v.Add("retirement.retirement_age", "must not exceed target_age")
		}
		for i, sc := range s.Scenarios {
			if strings.TrimSpace(sc.Name) == "" {
				v.Add(fmt.Sprintf("retirement.scenarios[%d].name", i), "is required")
			}
		}
	}

	if s := p.IncomeReality; s != nil {
		v.NonNegative("income_reality.housing_cost", s.HousingCost)
		if s.Dependants < 0 {
			v.Add("income_reality.dependants", "must not be negative")
		}
		if s.HouseholdType != "" {
			if _, err := ParseHouseholdType(string(s.HouseholdType)); err != nil {
				v.Add("income_reality.household_type", "must be one of alone, couple, family")
			}
		}
		if s.Location != "" {
			if _, err := ParseLocation(string(s.Location)); err != nil {
				v.Add("income_reality.location", "must be one of kl, urban, non-urban")
			}
		}
		switch s.IncomeBasis {
		case "", IncomeBasisNet, IncomeBasisGross:
		default:
			v.Add("income_reality.income_basis", "must be net or gross")
		}
	}
	return v.Err()
}
