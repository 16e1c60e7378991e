package output

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/rgehrsitz/rmgo/internal/domain"
	"github.com/shopspring/decimal"
)

// ConsoleFormatter renders the full dashboard as a plain-text report.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(d *domain.Dashboard) ([]byte, error) {
	if d == nil {
		return nil, fmt.Errorf("dashboard is nil")
	}
	var buf bytes.Buffer

	fmt.Fprintln(&buf, strings.Repeat("=", 64))
	fmt.Fprintf(&buf, "PERSONAL FINANCE DASHBOARD: %s\n", d.ProfileName)
	fmt.Fprintf(&buf, "Rules: %s\n", d.RulesName)
	fmt.Fprintln(&buf, strings.Repeat("=", 64))
	fmt.Fprintln(&buf)

	if d.Payroll != nil {
		WritePayroll(&buf, d.Payroll)
	}
	if d.Projection != nil {
		WriteRetirement(&buf, d)
	}
	if d.IncomeReality != nil {
		fmt.Fprintf(&buf, "(income basis: %s pay)\n", d.IncomeBasis)
		WriteIncomeReality(&buf, d.IncomeReality)
	}
	WriteClassification(&buf, d.Classification)

	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range DefaultAssumptions {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	return buf.Bytes(), nil
}

// WritePayroll writes the payslip breakdown
func WritePayroll(w io.Writer, r *domain.PayrollResult) {
	fmt.Fprintln(w, "MONTHLY PAYROLL")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintf(w, "  %-22s %15s\n", "Gross Income:", FormatCurrency(r.GrossMonthlyIncome))
	line := func(label string, computed, applied decimal.Decimal) {
		fmt.Fprintf(w, "  %-22s %15s", label, FormatCurrency(applied))
		if !computed.Equal(applied) {
			fmt.Fprintf(w, "  (computed %s)", FormatCurrency(computed))
		}
		fmt.Fprintln(w)
	}
	line("EPF (employee):", r.Computed.Fund, r.Applied.Fund)
	line("SOCSO:", r.Computed.SocialSecurity, r.Applied.SocialSecurity)
	line("EIS:", r.Computed.Insurance, r.Applied.Insurance)
	line("PCB (income tax):", r.Computed.Tax, r.Applied.Tax)
	if !r.Applied.Garnishment.IsZero() || !r.Computed.Garnishment.IsZero() {
		line("Garnishment:", r.Computed.Garnishment, r.Applied.Garnishment)
	}
	fmt.Fprintf(w, "  %-22s %15s\n", "Total Deductions:", FormatCurrency(r.TotalDeductions))
	fmt.Fprintf(w, "  %-22s %15s\n", "NET PAY:", FormatCurrency(r.NetPay))
	fmt.Fprintf(w, "  %-22s %15s\n", "Chargeable (annual):", FormatCurrency(r.ChargeableIncome))
	fmt.Fprintf(w, "  %-22s %15s\n", "Annual Tax:", FormatCurrency(r.AnnualTax))
	fmt.Fprintf(w, "  %-22s %15s\n", "Deduction Rate:", FormatPercentage(r.EffectiveDeductionRate()))
	fmt.Fprintln(w)
}

// WriteRetirement writes the projection summary and a sampled balance table
func WriteRetirement(w io.Writer, d *domain.Dashboard) {
	p := d.Projection
	fmt.Fprintln(w, "EPF RETIREMENT PROJECTION")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	if p.IsEmpty() {
		fmt.Fprintln(w, "  Nothing to project: current age is past the target age")
		fmt.Fprintln(w)
		return
	}
	fmt.Fprintf(w, "  Ages %d -> retire %d -> %d, dividend %s\n",
		p.Input.CurrentAge, p.Input.RetirementAge, p.Input.TargetAge, FormatPercentage(p.Input.AnnualDividendRate))
	fmt.Fprintf(w, "  %-26s %15s\n", "Balance at retirement:", FormatCurrency(p.BalanceAtRetirement()))
	fmt.Fprintf(w, "  %-26s %15s\n", "Final balance:", FormatCurrency(p.FinalBalance()))
	fmt.Fprintf(w, "  %-26s %15s\n", "Sustainable withdrawal:", FormatCurrency(d.SustainableWithdrawal)+"/mo")
	if d.MilestoneAge != nil {
		fmt.Fprintf(w, "  Reaches %s at age %d\n", FormatCurrency(d.MilestoneBalance), *d.MilestoneAge)
	} else {
		fmt.Fprintf(w, "  Never reaches %s\n", FormatCurrency(d.MilestoneBalance))
	}
	if d.DepletionAge != nil {
		fmt.Fprintf(w, "  ⚠ Fund runs dry at age %d\n", *d.DepletionAge)
	}
	fmt.Fprintln(w)
	WriteProjectionTable(w, p, 5)
}

// WriteProjectionTable writes every step-th projection record
func WriteProjectionTable(w io.Writer, p *domain.Projection, step int) {
	fmt.Fprintf(w, "  %4s %16s %16s %14s %14s\n", "Age", "Balance", "Contributed", "Dividend", "Spent")
	for _, rec := range p.Sample(step) {
		marker := " "
		if rec.IsPostRetirement {
			marker = "*"
		}
		fmt.Fprintf(w, "  %3d%s %16s %16s %14s %14s\n", rec.Age, marker,
			FormatCurrency(rec.TotalAmount), FormatCurrency(rec.TotalContribution),
			FormatCurrency(rec.YearlyDividend), FormatCurrency(rec.YearlyExpenses))
	}
	fmt.Fprintln(w, "  * retired")
	fmt.Fprintln(w)
}

// WriteIncomeReality writes the cost-of-living comparison
func WriteIncomeReality(w io.Writer, r *domain.IncomeRealityResult) {
	fmt.Fprintln(w, "INCOME REALITY CHECK")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintf(w, "  %-26s %15s\n", "Essentials basket:", FormatCurrency(r.BaseEssentials))
	fmt.Fprintf(w, "  %-26s %15s\n", "x household "+r.HouseholdMultiplier.String()+":", FormatCurrency(r.AdjustedEssentials))
	fmt.Fprintf(w, "  %-26s %15s\n", "x location "+r.LocationMultiplier.String()+":", FormatCurrency(r.LocationAdjusted))
	fmt.Fprintf(w, "  %-26s %15s\n", "+ housing:", FormatCurrency(r.HousingCost))
	fmt.Fprintf(w, "  %-26s %15s\n", "Baseline cost of living:", FormatCurrency(r.BaselineLifeCost))
	fmt.Fprintf(w, "  %-26s %15s\n", "Monthly income:", FormatCurrency(r.MonthlyIncome))
	fmt.Fprintf(w, "  %-26s %15s\n", "Coverage:", FormatPercentage(r.CoveragePercent))
	label := "Surplus:"
	if r.IsShortfall() {
		label = "Shortfall:"
	}
	fmt.Fprintf(w, "  %-26s %15s\n", label, FormatCurrency(r.Surplus))
	fmt.Fprintln(w)
}

// WriteClassification writes the income tier and percentile ranges
func WriteClassification(w io.Writer, c domain.IncomeClassification) {
	fmt.Fprintln(w, "INCOME TIER")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintf(w, "  %s (%s, %s) for %s/month\n", c.Tier.Code, c.Tier.Name, c.Group(), FormatCurrency(c.Income))
	fmt.Fprintf(w, "  Household income: %s\n", c.HouseholdPercentile.String())
	fmt.Fprintf(w, "  Employee salary:  %s\n", c.EmployeePercentile.String())
	fmt.Fprintln(w)
}
