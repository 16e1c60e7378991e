package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// RULE TABLE ASSUMPTIONS:
//
// 1. Income tax: Malaysian resident individual scale for YA 2024, single filer,
//    individual relief RM9,000 and EPF relief capped at RM4,000. No zakat, no
//    other reliefs.
//
// 2. SOCSO/EIS: percentage of wages capped at the RM6,000 wage ceiling,
//    both waived from age 60.
//
// 3. EPF: employer share is 13% for wages of RM5,000 and below, 12% above
//    (KWSP Third Schedule). Dividend defaults to 5.5%.
//
// 4. Cost of living: single adult in Kuala Lumpur is the 1.0 reference point.
//
// All rates in this file are percentages ("11" means 11%).

// Rules bundles every jurisdiction/year dependent table the calculators use.
// Swap the whole value (or overlay a YAML rules file) to model another year.
type Rules struct {
	Name                 string               `yaml:"name" json:"name"`
	Tax                  TaxTable             `yaml:"tax" json:"tax"`
	Payroll              PayrollRules         `yaml:"payroll" json:"payroll"`
	EPF                  EPFRules             `yaml:"epf" json:"epf"`
	Household            HouseholdMultipliers `yaml:"household" json:"household"`
	Locations            LocationMultipliers  `yaml:"locations" json:"locations"`
	DefaultExpenses      ExpenseAssumptions   `yaml:"default_expenses" json:"defaultExpenses"`
	Tiers                []IncomeTier         `yaml:"tiers" json:"tiers"`
	HouseholdIncomeBands []PercentileBand     `yaml:"household_income_bands" json:"householdIncomeBands"`
	SalaryBands          []PercentileBand     `yaml:"salary_bands" json:"salaryBands"`
}

// TaxTable is a progressive bracket table with fixed reliefs.
type TaxTable struct {
	Name             string          `yaml:"name" json:"name"`
	Year             int             `yaml:"year" json:"year"`
	IndividualRelief decimal.Decimal `yaml:"individual_relief" json:"individualRelief"`
	FundReliefCap    decimal.Decimal `yaml:"fund_relief_cap" json:"fundReliefCap"`
	Brackets         []TaxBracket    `yaml:"brackets" json:"brackets"`
}

// TaxBracket covers chargeable income from the previous bracket's UpTo
// (exclusive) to UpTo (inclusive). A nil UpTo marks the open top bracket.
type TaxBracket struct {
	UpTo    *decimal.Decimal `yaml:"up_to,omitempty" json:"upTo,omitempty"`
	Rate    decimal.Decimal  `yaml:"rate" json:"rate"`
	BaseTax decimal.Decimal  `yaml:"base_tax" json:"baseTax"`
}

// PayrollRules holds statutory contribution parameters.
type PayrollRules struct {
	WageCeiling               decimal.Decimal `yaml:"wage_ceiling" json:"wageCeiling"`
	SeniorExemptionAge        int             `yaml:"senior_exemption_age" json:"seniorExemptionAge"`
	DefaultEmployeeFundRate   decimal.Decimal `yaml:"default_employee_fund_rate" json:"defaultEmployeeFundRate"`
	DefaultSocialSecurityRate decimal.Decimal `yaml:"default_social_security_rate" json:"defaultSocialSecurityRate"`
	DefaultInsuranceRate      decimal.Decimal `yaml:"default_insurance_rate" json:"defaultInsuranceRate"`
}

// EPFRules holds retirement fund defaults.
type EPFRules struct {
	DefaultEmployeeRate   decimal.Decimal `yaml:"default_employee_rate" json:"defaultEmployeeRate"`
	EmployerRateLow       decimal.Decimal `yaml:"employer_rate_low" json:"employerRateLow"`   // wages at or below threshold
	EmployerRateHigh      decimal.Decimal `yaml:"employer_rate_high" json:"employerRateHigh"` // wages above threshold
	EmployerRateThreshold decimal.Decimal `yaml:"employer_rate_threshold" json:"employerRateThreshold"`
	DefaultDividendRate   decimal.Decimal `yaml:"default_dividend_rate" json:"defaultDividendRate"`
	DefaultRetirementAge  int             `yaml:"default_retirement_age" json:"defaultRetirementAge"`
	DefaultTargetAge      int             `yaml:"default_target_age" json:"defaultTargetAge"`
}

// EmployerRate returns the statutory employer contribution percentage for a monthly wage.
func (r EPFRules) EmployerRate(monthlyIncome decimal.Decimal) decimal.Decimal {
	if monthlyIncome.LessThanOrEqual(r.EmployerRateThreshold) {
		return r.EmployerRateLow
	}
	return r.EmployerRateHigh
}

// HouseholdMultipliers scales a single adult's essentials to the household.
// Family households count the first dependant inside FamilyBase.
type HouseholdMultipliers struct {
	Alone             decimal.Decimal `yaml:"alone" json:"alone"`
	Couple            decimal.Decimal `yaml:"couple" json:"couple"`
	FamilyBase        decimal.Decimal `yaml:"family_base" json:"familyBase"`
	PerExtraDependant decimal.Decimal `yaml:"per_extra_dependant" json:"perExtraDependant"`
}

// LocationMultipliers scales essentials (never housing) by location.
type LocationMultipliers map[Location]decimal.Decimal

// IncomeTier is one of the B40/M40/T20 household income groups.
type IncomeTier struct {
	Code       string          `yaml:"code" json:"code"`
	Name       string          `yaml:"name" json:"name"`
	MinIncome  decimal.Decimal `yaml:"min_income" json:"minIncome"`
	MeanIncome decimal.Decimal `yaml:"mean_income" json:"meanIncome"`
}

// PercentileBand is one row of a cumulative income distribution table.
type PercentileBand struct {
	Min     decimal.Decimal `yaml:"min" json:"min"`
	CumLow  decimal.Decimal `yaml:"cum_low" json:"cumLow"`
	CumHigh decimal.Decimal `yaml:"cum_high" json:"cumHigh"`
}

// MY2024Rules returns the built-in Malaysian rule set.
func MY2024Rules() Rules {
	return Rules{
		Name: "MY-2024",
		Tax:  MY2024TaxTable(),
		Payroll: PayrollRules{
			WageCeiling:               decimal.NewFromInt(6000),
			SeniorExemptionAge:        60,
			DefaultEmployeeFundRate:   decimal.NewFromInt(11),
			DefaultSocialSecurityRate: dec("0.5"),
			DefaultInsuranceRate:      dec("0.2"),
		},
		EPF: EPFRules{
			DefaultEmployeeRate:   decimal.NewFromInt(11),
			EmployerRateLow:       decimal.NewFromInt(13),
			EmployerRateHigh:      decimal.NewFromInt(12),
			EmployerRateThreshold: decimal.NewFromInt(5000),
			DefaultDividendRate:   dec("5.5"),
			DefaultRetirementAge:  60,
			DefaultTargetAge:      90,
		},
		Household:       KLHouseholdMultipliers(),
		Locations:       KLLocationMultipliers(),
		DefaultExpenses: KLDefaultExpenses(),
		Tiers:           DOSM2022IncomeTiers(),
		HouseholdIncomeBands: bands(
			[][3]string{
				{"0", "0", "1.8"}, {"1000", "1.8", "8.5"}, {"2000", "8.5", "19.2"},
				{"3000", "19.2", "31.4"}, {"4000", "31.4", "42.6"}, {"5000", "42.6", "52.1"},
				{"6000", "52.1", "59.8"}, {"7000", "59.8", "66.2"}, {"8000", "66.2", "71.5"},
				{"9000", "71.5", "75.8"}, {"10000", "75.8", "79.3"}, {"11000", "79.3", "82.2"},
				{"12000", "82.2", "84.6"}, {"13000", "84.6", "86.7"}, {"14000", "86.7", "88.4"},
				{"15000", "88.4", "93.3"}, {"20000", "93.3", "95.8"}, {"25000", "95.8", "97.2"},
				{"30000", "97.2", "98.5"}, {"40000", "98.5", "100"},
			}),
		SalaryBands: bands(
			[][3]string{
				{"0", "0", "12.3"}, {"1500", "12.3", "24.8"}, {"2000", "24.8", "37.5"},
				{"2500", "37.5", "48.2"}, {"3000", "48.2", "56.8"}, {"3500", "56.8", "63.5"},
				{"4000", "63.5", "69.1"}, {"4500", "69.1", "73.6"}, {"5000", "73.6", "80.2"},
				{"6000", "80.2", "84.8"}, {"7000", "84.8", "88.1"}, {"8000", "88.1", "90.5"},
				{"9000", "90.5", "92.3"}, {"10000", "92.3", "96.2"}, {"15000", "96.2", "97.8"},
				{"20000", "97.8", "100"},
			}),
	}
}

// MY2024TaxTable is the YA2024 resident scale.
func MY2024TaxTable() TaxTable {
	return TaxTable{
		Name:             "MY-2024",
		Year:             2024,
		IndividualRelief: decimal.NewFromInt(9000),
		FundReliefCap:    decimal.NewFromInt(4000),
		Brackets: []TaxBracket{
			{UpTo: upTo(5000), Rate: decimal.Zero, BaseTax: decimal.Zero},
			{UpTo: upTo(20000), Rate: decimal.NewFromInt(1), BaseTax: decimal.Zero},
			{UpTo: upTo(35000), Rate: decimal.NewFromInt(3), BaseTax: decimal.NewFromInt(150)},
			{UpTo: upTo(50000), Rate: decimal.NewFromInt(6), BaseTax: decimal.NewFromInt(600)},
			{UpTo: upTo(70000), Rate: decimal.NewFromInt(11), BaseTax: decimal.NewFromInt(1500)},
			{UpTo: upTo(100000), Rate: decimal.NewFromInt(19), BaseTax: decimal.NewFromInt(3700)},
			{UpTo: upTo(400000), Rate: decimal.NewFromInt(25), BaseTax: decimal.NewFromInt(9400)},
			{UpTo: upTo(600000), Rate: decimal.NewFromInt(26), BaseTax: decimal.NewFromInt(84400)},
			{UpTo: upTo(2000000), Rate: decimal.NewFromInt(28), BaseTax: decimal.NewFromInt(136400)},
			{UpTo: nil, Rate: decimal.NewFromInt(30), BaseTax: decimal.NewFromInt(528400)},
		},
	}
}

// KLHouseholdMultipliers is the household scaling relative to one adult.
func KLHouseholdMultipliers() HouseholdMultipliers {
	return HouseholdMultipliers{
		Alone:             decimal.NewFromInt(1),
		Couple:            dec("1.6"),
		FamilyBase:        dec("2.2"),
		PerExtraDependant: dec("0.5"),
	}
}

// KLLocationMultipliers uses Kuala Lumpur as the reference location.
func KLLocationMultipliers() LocationMultipliers {
	return LocationMultipliers{
		LocationKL:       decimal.NewFromInt(1),
		LocationUrban:    dec("0.85"),
		LocationNonUrban: dec("0.70"),
	}
}

// KLDefaultExpenses is the monthly essentials basket for a single adult in KL, excluding housing.
func KLDefaultExpenses() ExpenseAssumptions {
	return ExpenseAssumptions{
		Food:          decimal.NewFromInt(1500),
		Transport:     decimal.NewFromInt(600),
		Utilities:     decimal.NewFromInt(300),
		Others:        decimal.NewFromInt(100),
		Entertainment: decimal.NewFromInt(500),
	}
}

// DOSM2022IncomeTiers are the ten B40/M40/T20 sub-groups by monthly household income.
func DOSM2022IncomeTiers() []IncomeTier {
	tier := func(code, name string, min, mean int64) IncomeTier {
		return IncomeTier{Code: code, Name: name, MinIncome: decimal.NewFromInt(min), MeanIncome: decimal.NewFromInt(mean)}
	}
	return []IncomeTier{
		tier("B1", "B40 - Bottom 1", 0, 1941),
		tier("B2", "B40 - Bottom 2", 2560, 3018),
		tier("B3", "B40 - Bottom 3", 3440, 3874),
		tier("B4", "B40 - Bottom 4", 4310, 4771),
		tier("M1", "M40 - Middle 1", 5250, 5782),
		tier("M2", "M40 - Middle 2", 6340, 6989),
		tier("M3", "M40 - Middle 3", 7690, 8536),
		tier("M4", "M40 - Middle 4", 9450, 10577),
		tier("T1", "T20 - Top 1", 11820, 13585),
		tier("T2", "T20 - Top 2", 15870, 25719),
	}
}

// Validate checks the rule set is internally consistent.
func (r Rules) Validate() error {
	if err := r.Tax.Validate(); err != nil {
		return fmt.Errorf("tax table %s: %w", r.Tax.Name, err)
	}
	if r.Payroll.WageCeiling.IsNegative() {
		return fmt.Errorf("payroll wage ceiling cannot be negative")
	}
	if r.EPF.DefaultRetirementAge > r.EPF.DefaultTargetAge {
		return fmt.Errorf("default retirement age %d exceeds default target age %d",
			r.EPF.DefaultRetirementAge, r.EPF.DefaultTargetAge)
	}
	for _, loc := range []Location{LocationKL, LocationUrban, LocationNonUrban} {
		if _, ok := r.Locations[loc]; !ok {
			return fmt.Errorf("location multiplier for %q is missing", loc)
		}
	}
	if len(r.Tiers) == 0 {
		return fmt.Errorf("at least one income tier is required")
	}
	for i := 1; i < len(r.Tiers); i++ {
		if !r.Tiers[i].MinIncome.GreaterThan(r.Tiers[i-1].MinIncome) {
			return fmt.Errorf("income tier %s must start above %s", r.Tiers[i].Code, r.Tiers[i-1].Code)
		}
	}
	if err := validateBands(r.HouseholdIncomeBands); err != nil {
		return fmt.Errorf("household income bands: %w", err)
	}
	if err := validateBands(r.SalaryBands); err != nil {
		return fmt.Errorf("salary bands: %w", err)
	}
	return nil
}

// Validate enforces a monotonic bracket table with one open top bracket.
func (t TaxTable) Validate() error {
	if len(t.Brackets) == 0 {
		return fmt.Errorf("at least one bracket is required")
	}
	prevUpTo := decimal.Zero
	prevBase := decimal.Zero
	for i, b := range t.Brackets {
		last := i == len(t.Brackets)-1
		if b.UpTo == nil && !last {
			return fmt.Errorf("bracket %d: only the last bracket may be unbounded", i)
		}
		if b.UpTo != nil && last {
			return fmt.Errorf("bracket %d: last bracket must be unbounded", i)
		}
		if b.UpTo != nil && !b.UpTo.GreaterThan(prevUpTo) {
			return fmt.Errorf("bracket %d: threshold %s must exceed %s", i, b.UpTo.String(), prevUpTo.String())
		}
		if b.Rate.IsNegative() || b.Rate.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("bracket %d: rate must be between 0 and 100", i)
		}
		if b.BaseTax.LessThan(prevBase) {
			return fmt.Errorf("bracket %d: base tax %s is below previous %s", i, b.BaseTax.String(), prevBase.String())
		}
		if b.UpTo != nil {
			prevUpTo = *b.UpTo
		}
		prevBase = b.BaseTax
	}
	return nil
}

// Floor returns the lower bound of bracket i.
func (t TaxTable) Floor(i int) decimal.Decimal {
	if i <= 0 || t.Brackets[i-1].UpTo == nil {
		return decimal.Zero
	}
	return *t.Brackets[i-1].UpTo
}

func validateBands(bands []PercentileBand) error {
	for i, b := range bands {
		if b.CumHigh.LessThan(b.CumLow) {
			return fmt.Errorf("band %d cumulative share decreases", i)
		}
		if i > 0 && !b.Min.GreaterThan(bands[i-1].Min) {
			return fmt.Errorf("band %d must start above band %d", i, i-1)
		}
	}
	return nil
}

func bands(rows [][3]string) []PercentileBand {
	out := make([]PercentileBand, 0, len(rows))
	for _, r := range rows {
		out = append(out, PercentileBand{Min: dec(r[0]), CumLow: dec(r[1]), CumHigh: dec(r[2])})
	}
	return out
}

func upTo(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
