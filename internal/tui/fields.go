package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/rgehrsitz/rmgo/internal/domain"
	"github.com/shopspring/decimal"
)

// field is one editable profile value bound to a text input.
type field struct {
	label string
	input textinput.Model
	read  func(p domain.Profile) string
	apply func(p *domain.Profile, raw string) error
}

func newField(label, placeholder string, read func(domain.Profile) string, apply func(*domain.Profile, string) error) field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 16
	ti.Width = 16
	return field{label: label, input: ti, read: read, apply: apply}
}

func parseDecimal(name, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s: not a number", name)
	}
	return d, nil
}

func parseInt(name, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s: not a whole number", name)
	}
	return n, nil
}

func decimalText(d decimal.Decimal) string { return d.String() }

func optionalDecimalText(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func optionalIntText(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func payroll(p *domain.Profile) *domain.PayrollSection {
	if p.Payroll == nil {
		p.Payroll = &domain.PayrollSection{}
	}
	return p.Payroll
}

func retirement(p *domain.Profile) *domain.RetirementSection {
	if p.Retirement == nil {
		p.Retirement = &domain.RetirementSection{}
	}
	return p.Retirement
}

func reality(p *domain.Profile) *domain.IncomeRealitySection {
	if p.IncomeReality == nil {
		p.IncomeReality = &domain.IncomeRealitySection{}
	}
	return p.IncomeReality
}

// buildFields returns the inputs of each tab. Blank optional inputs fall back to rule defaults.
func buildFields() [tabCount][]field {
	var f [tabCount][]field

	f[TabPayroll] = []field{
		newField("Monthly income (RM)", "5000",
			func(p domain.Profile) string { return decimalText(p.MonthlyIncome) },
			func(p *domain.Profile, raw string) error {
				d, err := parseDecimal("monthly income", raw)
				p.MonthlyIncome = d
				return err
			}),
		newField("Age", "30",
			func(p domain.Profile) string { return strconv.Itoa(p.Age) },
			func(p *domain.Profile, raw string) error {
				n, err := parseInt("age", raw)
				p.Age = n
				return err
			}),
		newField("EPF rate (%)", "default",
			func(p domain.Profile) string {
				if p.Payroll == nil {
					return ""
				}
				return optionalDecimalText(p.Payroll.EmployeeFundRate)
			},
			func(p *domain.Profile, raw string) error {
				if strings.TrimSpace(raw) == "" {
					payroll(p).EmployeeFundRate = nil
					return nil
				}
				d, err := parseDecimal("EPF rate", raw)
				payroll(p).EmployeeFundRate = &d
				return err
			}),
		newField("Garnishment (RM)", "0",
			func(p domain.Profile) string {
				if p.Payroll == nil || p.Payroll.Garnishment.IsZero() {
					return ""
				}
				return decimalText(p.Payroll.Garnishment)
			},
			func(p *domain.Profile, raw string) error {
				if strings.TrimSpace(raw) == "" {
					payroll(p).Garnishment = decimal.Zero
					return nil
				}
				d, err := parseDecimal("garnishment", raw)
				payroll(p).Garnishment = d
				return err
			}),
	}

	f[TabRetirement] = []field{
		newField("EPF balance (RM)", "0",
			func(p domain.Profile) string {
				if p.Retirement == nil {
					return ""
				}
				return decimalText(p.Retirement.CurrentBalance)
			},
			func(p *domain.Profile, raw string) error {
				if strings.TrimSpace(raw) == "" {
					retirement(p).CurrentBalance = decimal.Zero
					return nil
				}
				d, err := parseDecimal("EPF balance", raw)
				retirement(p).CurrentBalance = d
				return err
			}),
		newField("Retirement age", "default",
			func(p domain.Profile) string {
				if p.Retirement == nil {
					return ""
				}
				return optionalIntText(p.Retirement.RetirementAge)
			},
			func(p *domain.Profile, raw string) error {
				if strings.TrimSpace(raw) == "" {
					retirement(p).RetirementAge = nil
					return nil
				}
				n, err := parseInt("retirement age", raw)
				retirement(p).RetirementAge = &n
				return err
			}),
		newField("Target age", "default",
			func(p domain.Profile) string {
				if p.Retirement == nil {
					return ""
				}
				return optionalIntText(p.Retirement.TargetAge)
			},
			func(p *domain.Profile, raw string) error {
				if strings.TrimSpace(raw) == "" {
					retirement(p).TargetAge = nil
					return nil
				}
				n, err := parseInt("target age", raw)
				retirement(p).TargetAge = &n
				return err
			}),
		newField("Dividend rate (%)", "default",
			func(p domain.Profile) string {
				if p.Retirement == nil {
					return ""
				}
				return optionalDecimalText(p.Retirement.DividendRate)
			},
			func(p *domain.Profile, raw string) error {
				if strings.TrimSpace(raw) == "" {
					retirement(p).DividendRate = nil
					return nil
				}
				d, err := parseDecimal("dividend rate", raw)
				retirement(p).DividendRate = &d
				return err
			}),
	}

	f[TabIncomeReality] = []field{
		newField("Housing (RM/month)", "0",
			func(p domain.Profile) string {
				if p.IncomeReality == nil {
					return ""
				}
				return decimalText(p.IncomeReality.HousingCost)
			},
			func(p *domain.Profile, raw string) error {
				if strings.TrimSpace(raw) == "" {
					reality(p).HousingCost = decimal.Zero
					return nil
				}
				d, err := parseDecimal("housing", raw)
				reality(p).HousingCost = d
				return err
			}),
		newField("Household", "alone",
			func(p domain.Profile) string {
				if p.IncomeReality == nil {
					return ""
				}
				return string(p.IncomeReality.HouseholdType)
			},
			func(p *domain.Profile, raw string) error {
				if strings.TrimSpace(raw) == "" {
					reality(p).HouseholdType = ""
					return nil
				}
				h, err := domain.ParseHouseholdType(raw)
				reality(p).HouseholdType = h
				return err
			}),
		newField("Location", "kl",
			func(p domain.Profile) string {
				if p.IncomeReality == nil {
					return ""
				}
				return string(p.IncomeReality.Location)
			},
			func(p *domain.Profile, raw string) error {
				if strings.TrimSpace(raw) == "" {
					reality(p).Location = ""
					return nil
				}
				l, err := domain.ParseLocation(raw)
				reality(p).Location = l
				return err
			}),
		newField("Income basis", "net",
			func(p domain.Profile) string {
				if p.IncomeReality == nil {
					return ""
				}
				return string(p.IncomeReality.IncomeBasis)
			},
			func(p *domain.Profile, raw string) error {
				switch domain.IncomeBasis(strings.ToLower(strings.TrimSpace(raw))) {
				case "":
					reality(p).IncomeBasis = ""
				case domain.IncomeBasisNet:
					reality(p).IncomeBasis = domain.IncomeBasisNet
				case domain.IncomeBasisGross:
					reality(p).IncomeBasis = domain.IncomeBasisGross
				default:
					return fmt.Errorf("income basis: must be net or gross")
				}
				return nil
			}),
	}
	return f
}
