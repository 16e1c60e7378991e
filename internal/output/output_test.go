package output

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgehrsitz/rmgo/internal/calculation"
	"github.com/rgehrsitz/rmgo/internal/dashboard"
	"github.com/rgehrsitz/rmgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDashboard(t *testing.T) *domain.Dashboard {
	t.Helper()
	p := domain.Profile{
		Name:          "Aisyah",
		Age:           30,
		MonthlyIncome: decimal.NewFromInt(5000),
		Retirement:    &domain.RetirementSection{CurrentBalance: decimal.NewFromInt(50000)},
		IncomeReality: &domain.IncomeRealitySection{HousingCost: decimal.NewFromInt(1500)},
	}
	d, err := dashboard.NewBuilder(calculation.NewCalculationEngine()).Build(context.Background(), p)
	require.NoError(t, err)
	return d
}

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "RM0.00"},
		{"12.5", "RM12.50"},
		{"1234.56", "RM1,234.56"},
		{"1000000", "RM1,000,000.00"},
		{"-195", "-RM195.00"},
		{"-0.001", "RM0.00"},
		{"999.999", "RM1,000.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "13.90%", FormatPercentage(decimal.RequireFromString("13.9")))
}

func TestFormatterRegistry(t *testing.T) {
	assert.Equal(t, []string{"console", "csv", "json", "pdf"}, AvailableFormatterNames())
	assert.Contains(t, AvailableFormatAliases(), "payslip")

	tests := map[string]string{
		"console":     "console",
		"TABLE":       "console",
		" text ":      "console",
		"json-pretty": "json",
		"projection":  "csv",
		"payslip":     "pdf",
	}
	for in, want := range tests {
		f := GetFormatterByName(in)
		require.NotNil(t, f, in)
		assert.Equal(t, want, f.Name())
	}
	assert.Nil(t, GetFormatterByName("html"))

	assert.True(t, IsBinary(PayslipPDFFormatter{}))
	assert.False(t, IsBinary(ConsoleFormatter{}))
}

func TestConsoleFormatter(t *testing.T) {
	d := buildDashboard(t)
	out, err := ConsoleFormatter{}.Format(d)
	require.NoError(t, err)
	s := string(out)

	for _, want := range []string{
		"PERSONAL FINANCE DASHBOARD: Aisyah",
		"MONTHLY PAYROLL",
		"NET PAY:",
		"RM4,305.00",
		"EPF RETIREMENT PROJECTION",
		"Sustainable withdrawal:",
		"INCOME REALITY CHECK",
		"Shortfall:",
		"-RM195.00",
		"INCOME TIER",
		"B4",
		"KEY ASSUMPTIONS:",
	} {
		assert.Contains(t, s, want)
	}

	_, err = ConsoleFormatter{}.Format(nil)
	assert.Error(t, err)
}

func TestWritePayroll_ShowsOverriddenLines(t *testing.T) {
	r := &domain.PayrollResult{
		GrossMonthlyIncome: decimal.NewFromInt(5000),
		Computed:           domain.DeductionLines{Fund: decimal.NewFromInt(550)},
		Applied:            domain.DeductionLines{Fund: decimal.NewFromInt(600)},
		TotalDeductions:    decimal.NewFromInt(600),
		NetPay:             decimal.NewFromInt(4400),
	}
	var buf bytes.Buffer
	WritePayroll(&buf, r)
	assert.Contains(t, buf.String(), "(computed RM550.00)")
	assert.NotContains(t, buf.String(), "Garnishment")
}

func TestWriteRetirement_EmptyProjection(t *testing.T) {
	d := &domain.Dashboard{Projection: &domain.Projection{}}
	var buf bytes.Buffer
	WriteRetirement(&buf, d)
	assert.Contains(t, buf.String(), "Nothing to project")
}

func TestJSONFormatter(t *testing.T) {
	d := buildDashboard(t)

	pretty, err := JSONFormatter{Pretty: true}.Format(d)
	require.NoError(t, err)
	assert.Contains(t, string(pretty), "\n  \"profileName\": \"Aisyah\"")

	compact, err := JSONFormatter{}.Format(d)
	require.NoError(t, err)
	assert.NotContains(t, string(compact), "\n")

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(compact, &decoded))
	assert.Equal(t, "MY-2024", decoded["rulesName"])
}

func TestProjectionCSVFormatter(t *testing.T) {
	d := buildDashboard(t)
	out, err := ProjectionCSVFormatter{}.Format(d)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, len(d.Projection.Records)+1)
	assert.Equal(t, "Age", rows[0][0])
	assert.Equal(t, []string{"30", "67942"}, rows[1][:2])
	assert.Equal(t, "false", rows[1][6])
	assert.Equal(t, "true", rows[len(rows)-1][6])

	_, err = ProjectionCSVFormatter{}.Format(&domain.Dashboard{})
	assert.Error(t, err)
}

func TestPayslipPDFFormatter(t *testing.T) {
	d := buildDashboard(t)
	out, err := PayslipPDFFormatter{}.Format(d)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	_, err = PayslipPDFFormatter{}.Format(&domain.Dashboard{})
	assert.Error(t, err)
}

func TestWriteFormatted(t *testing.T) {
	d := buildDashboard(t)
	dir := t.TempDir()

	path, err := WriteFormatted(JSONFormatter{Pretty: true}, d, dir, "json")
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "rmgo_json_"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Aisyah")

	failing := FormatterFunc{ID: "broken", F: func(*domain.Dashboard) ([]byte, error) {
		return nil, assert.AnError
	}}
	_, err = WriteFormatted(failing, d, dir, "txt")
	assert.ErrorIs(t, err, assert.AnError)
}
