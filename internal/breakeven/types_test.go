package breakeven

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSolverOptions_Validate(t *testing.T) {
	assert.NoError(t, DefaultSolverOptions().Validate())

	opts := DefaultSolverOptions()
	opts.UpperBound = decimal.Zero
	assert.Error(t, opts.Validate())

	opts = DefaultSolverOptions()
	opts.MinFinalBalance = decimal.NewFromInt(-1)
	assert.Error(t, opts.Validate())
}

func TestOptimizationRequest_Validate(t *testing.T) {
	neg := decimal.NewFromInt(-5)
	tests := []struct {
		name    string
		req     OptimizationRequest
		wantErr string
	}{
		{"withdrawal", OptimizationRequest{Target: OptimizeWithdrawal}, ""},
		{"all without withdrawal", OptimizationRequest{Target: OptimizeAll}, ""},
		{"retirement age without withdrawal", OptimizationRequest{Target: OptimizeRetirementAge}, "required"},
		{"negative withdrawal", OptimizationRequest{Target: OptimizeAll, MonthlyWithdrawal: &neg}, "negative"},
		{"unknown", OptimizationRequest{Target: "x"}, "unsupported"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBreakEvenError(t *testing.T) {
	cause := errors.New("boom")
	err := &BreakEvenError{Operation: "op", Message: "failed", Cause: cause}
	assert.Equal(t, "op: failed: boom", err.Error())
	assert.ErrorIs(t, err, cause)

	assert.Equal(t, "op: failed", (&BreakEvenError{Operation: "op", Message: "failed"}).Error())
}

func TestTableFormatter(t *testing.T) {
	age := 84
	w := &WithdrawalResult{
		Success:           true,
		Iterations:        20,
		ConvergenceInfo:   "converged",
		MonthlyWithdrawal: decimal.NewFromInt(7012),
		FinalBalance:      decimal.NewFromInt(3),
		ProbeWithdrawal:   decimal.NewFromInt(8012),
		ProbeDepletionAge: &age,
	}
	w.Input.RetirementAge = 60
	w.Input.TargetAge = 90
	r := &RetirementAgeResult{MonthlyWithdrawal: decimal.NewFromInt(9000), Found: true, RetirementAge: 64, Evaluated: 35}

	tf := &TableFormatter{}
	out := tf.FormatPlan(&PlanResult{Withdrawal: w, RetirementAge: r, Recommendations: recommendations(w, r)})

	assert.Contains(t, out, "SUSTAINABLE WITHDRAWAL")
	assert.Contains(t, out, "RM7012.00")
	assert.Contains(t, out, "depleted at 84")
	assert.Contains(t, out, "EARLIEST RETIREMENT AGE")
	assert.Contains(t, out, "Retirement Age:      64")
	assert.Contains(t, out, "RECOMMENDATIONS")
	assert.Contains(t, out, "working 4 years longer")
	assert.Equal(t, 1, strings.Count(out, "EARLIEST RETIREMENT AGE"))
}

func TestJSONFormatter(t *testing.T) {
	jf := &JSONFormatter{Pretty: true}
	out, err := jf.Format(&RetirementAgeResult{MonthlyWithdrawal: decimal.NewFromInt(100), Found: true, RetirementAge: 55})
	require.NoError(t, err)
	assert.Contains(t, out, "\"retirement_age\": 55")
	assert.Contains(t, out, "\n")

	compact, err := (&JSONFormatter{}).Format(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, compact)
}
