package calculation

import (
	"testing"

	"github.com/rgehrsitz/rmgo/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultPayroll(gross string, age int) domain.PayrollInput {
	return domain.PayrollInput{
		GrossMonthlyIncome: d(gross),
		EmployeeFundRate:   d("11"),
		SocialSecurityRate: d("0.5"),
		InsuranceRate:      d("0.2"),
		Age:                age,
	}
}

func TestComputeNetPay_AnnualTaxIncludesAdditionalPCB(t *testing.T) {
	in := defaultPayroll("5000", 30)
	in.AdditionalTax = d("40")

	res, err := ComputeNetPay(in)
	require.NoError(t, err)
	assertDecimal(t, "150", res.Computed.Tax)
	assertDecimal(t, "1800", res.AnnualTax)
	assert.True(t, res.AnnualTax.Equal(res.Computed.Tax.Mul(decimal.NewFromInt(12))))
}

func TestComputeNetPay_ReferenceScenario(t *testing.T) {
	res, err := ComputeNetPay(defaultPayroll("5000", 30))
	require.NoError(t, err)

	assertDecimal(t, "550", res.Computed.Fund)
	assertDecimal(t, "25", res.Computed.SocialSecurity)
	assertDecimal(t, "10", res.Computed.Insurance)
	assertDecimal(t, "47000", res.ChargeableIncome)
	assertDecimal(t, "1320", res.AnnualTax)
	assertDecimal(t, "110", res.Computed.Tax)
	assertDecimal(t, "0", res.Computed.Garnishment)
	assertDecimal(t, "695", res.TotalDeductions)
	assertDecimal(t, "4305", res.NetPay)
	assert.Equal(t, res.Computed, res.Applied)
}

func TestComputeNetPay_Scenarios(t *testing.T) {
	tests := []struct {
		name      string
		input     func() domain.PayrollInput
		wantSocso string
		wantEIS   string
		wantTax   string
		wantTotal string
		wantNet   string
	}{
		{
			name:      "senior exempt from social security and insurance",
			input:     func() domain.PayrollInput { return defaultPayroll("5000", 60) },
			wantSocso: "0", wantEIS: "0", wantTax: "110", wantTotal: "660", wantNet: "4340",
		},
		{
			name:      "wage ceiling caps contribution base",
			input:     func() domain.PayrollInput { return defaultPayroll("10000", 35) },
			wantSocso: "30", wantEIS: "12", wantTax: "929.17", wantTotal: "2071.17", wantNet: "7928.83",
		},
		{
			name:      "chargeable income under first threshold pays no tax",
			input:     func() domain.PayrollInput { return defaultPayroll("1000", 25) },
			wantSocso: "5", wantEIS: "2", wantTax: "0", wantTotal: "117", wantNet: "883",
		},
		{
			name:      "zero gross",
			input:     func() domain.PayrollInput { return defaultPayroll("0", 25) },
			wantSocso: "0", wantEIS: "0", wantTax: "0", wantTotal: "0", wantNet: "0",
		},
		{
			name: "additional remuneration tax is added to withholding",
			input: func() domain.PayrollInput {
				in := defaultPayroll("5000", 30)
				in.AdditionalTax = d("40")
				return in
			},
			wantSocso: "25", wantEIS: "10", wantTax: "150", wantTotal: "735", wantNet: "4265",
		},
		{
			name: "negative garnishment clamps to zero",
			input: func() domain.PayrollInput {
				in := defaultPayroll("5000", 30)
				in.GarnishmentAmount = d("-50")
				return in
			},
			wantSocso: "25", wantEIS: "10", wantTax: "110", wantTotal: "695", wantNet: "4305",
		},
		{
			name: "net pay never negative",
			input: func() domain.PayrollInput {
				in := defaultPayroll("1000", 30)
				in.GarnishmentAmount = d("5000")
				return in
			},
			wantSocso: "5", wantEIS: "2", wantTax: "0", wantTotal: "5117", wantNet: "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ComputeNetPay(tt.input())
			require.NoError(t, err)
			assertDecimal(t, tt.wantSocso, res.Applied.SocialSecurity, "social security")
			assertDecimal(t, tt.wantEIS, res.Applied.Insurance, "insurance")
			assertDecimal(t, tt.wantTax, res.Applied.Tax, "tax")
			assertDecimal(t, tt.wantTotal, res.TotalDeductions, "total")
			assertDecimal(t, tt.wantNet, res.NetPay, "net")
		})
	}
}

func TestComputeNetPay_Overrides(t *testing.T) {
	tax := d("200")
	fund := d("0")

	in := defaultPayroll("5000", 30)
	in.Overrides = domain.DeductionOverrides{Tax: &tax, Fund: &fund}

	t.Run("ignored while disabled", func(t *testing.T) {
		res, err := ComputeNetPay(in)
		require.NoError(t, err)
		assertDecimal(t, "110", res.Applied.Tax)
		assertDecimal(t, "550", res.Applied.Fund)
	})

	t.Run("replace computed lines when enabled", func(t *testing.T) {
		enabled := in
		enabled.OverridesEnabled = true
		res, err := ComputeNetPay(enabled)
		require.NoError(t, err)
		assertDecimal(t, "110", res.Computed.Tax, "computed line is kept")
		assertDecimal(t, "200", res.Applied.Tax)
		assertDecimal(t, "0", res.Applied.Fund)
		assertDecimal(t, "25", res.Applied.SocialSecurity, "unset override keeps computed")
		assertDecimal(t, "235", res.TotalDeductions)
		assertDecimal(t, "4765", res.NetPay)
	})
}

func TestComputeNetPay_Validation(t *testing.T) {
	neg := d("-1")
	in := defaultPayroll("-100", -1)
	in.EmployeeFundRate = d("101")
	in.Overrides.Insurance = &neg

	_, err := ComputeNetPay(in)
	require.Error(t, err)
	issues, ok := domain.AsValidationErrors(err)
	require.True(t, ok)
	assert.ElementsMatch(t,
		[]string{"age", "employee_fund_rate", "gross_monthly_income", "overrides.insurance"},
		issues.Fields())
}

func TestComputeNetPay_Properties(t *testing.T) {
	for gross := int64(0); gross <= 40000; gross += 1250 {
		for _, age := range []int{25, 59, 60, 70} {
			in := defaultPayroll(decimal.NewFromInt(gross).String(), age)
			in.GarnishmentAmount = decimal.NewFromInt(gross % 3000)

			first, err := ComputeNetPay(in)
			require.NoError(t, err)
			second, err := ComputeNetPay(in)
			require.NoError(t, err)
			assert.Equal(t, first, second, "pure function")

			assert.False(t, first.NetPay.IsNegative())
			want := decimal.Max(decimal.Zero, first.GrossMonthlyIncome.Sub(first.TotalDeductions))
			assert.True(t, want.Equal(first.NetPay))
			if age >= 60 {
				assert.True(t, first.Applied.SocialSecurity.IsZero())
				assert.True(t, first.Applied.Insurance.IsZero())
			}
		}
	}
}

func TestPayrollResult_EffectiveDeductionRate(t *testing.T) {
	res, err := ComputeNetPay(defaultPayroll("5000", 30))
	require.NoError(t, err)
	assertDecimal(t, "13.9", res.EffectiveDeductionRate())

	zero, err := ComputeNetPay(defaultPayroll("0", 30))
	require.NoError(t, err)
	assert.True(t, zero.EffectiveDeductionRate().IsZero())
}
