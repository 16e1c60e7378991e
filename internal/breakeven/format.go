package breakeven

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// TableFormatter formats solver results as a console table
type TableFormatter struct{}

// Format generates a formatted table for a withdrawal result
func (tf *TableFormatter) Format(result *WithdrawalResult) string {
	var sb strings.Builder

	sb.WriteString("SUSTAINABLE WITHDRAWAL\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Ages:                %d -> retire %d -> %d\n",
		result.Input.CurrentAge, result.Input.RetirementAge, result.Input.TargetAge))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Success)))
	sb.WriteString(fmt.Sprintf("Iterations:          %d\n", result.Iterations))
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")

	sb.WriteString("RESULT\n")
	sb.WriteString(strings.Repeat("-", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Monthly Withdrawal:  RM%s\n", tf.formatCurrency(result.MonthlyWithdrawal)))
	sb.WriteString(fmt.Sprintf("Final Balance:       RM%s\n", tf.formatCurrency(result.FinalBalance)))
	sb.WriteString(fmt.Sprintf("At RM%s/month:    final RM%s", tf.formatShort(result.ProbeWithdrawal),
		tf.formatCurrency(result.ProbeFinalBalance)))
	if result.ProbeDepletionAge != nil {
		sb.WriteString(fmt.Sprintf(", depleted at %d", *result.ProbeDepletionAge))
	}
	sb.WriteString("\n\n")

	return sb.String()
}

// FormatRetirementAge generates a table for a retirement age search
func (tf *TableFormatter) FormatRetirementAge(result *RetirementAgeResult) string {
	var sb strings.Builder

	sb.WriteString("EARLIEST RETIREMENT AGE\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString(fmt.Sprintf("Monthly Withdrawal:  RM%s\n", tf.formatCurrency(result.MonthlyWithdrawal)))
	sb.WriteString(fmt.Sprintf("Status:              %s\n", tf.formatStatus(result.Found)))
	sb.WriteString(fmt.Sprintf("Ages Evaluated:      %d\n", result.Evaluated))
	if result.Found {
		sb.WriteString(fmt.Sprintf("Retirement Age:      %d\n", result.RetirementAge))
		sb.WriteString(fmt.Sprintf("Final Balance:       RM%s\n", tf.formatCurrency(result.FinalBalance)))
	}
	if result.ConvergenceInfo != "" {
		sb.WriteString(fmt.Sprintf("Convergence:         %s\n", result.ConvergenceInfo))
	}
	sb.WriteString("\n")
	return sb.String()
}

// FormatPlan formats every result of a plan
func (tf *TableFormatter) FormatPlan(result *PlanResult) string {
	var sb strings.Builder

	if result.Withdrawal != nil {
		sb.WriteString(tf.Format(result.Withdrawal))
	}
	if result.RetirementAge != nil {
		sb.WriteString(tf.FormatRetirementAge(result.RetirementAge))
	}
	if len(result.Recommendations) > 0 {
		sb.WriteString("RECOMMENDATIONS\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		for _, rec := range result.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output for any solver result
func (jf *JSONFormatter) Format(result any) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}

// Helper methods

func (tf *TableFormatter) formatStatus(success bool) string {
	if success {
		return "✓ Converged"
	}
	return "⚠ Not sustainable"
}

func (tf *TableFormatter) formatCurrency(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func (tf *TableFormatter) formatShort(d decimal.Decimal) string {
	if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000000)) {
		millions := d.Div(decimal.NewFromInt(1000000))
		return millions.StringFixed(2) + "M"
	} else if d.Abs().GreaterThanOrEqual(decimal.NewFromInt(1000)) {
		thousands := d.Div(decimal.NewFromInt(1000))
		return thousands.StringFixed(1) + "K"
	}
	return d.StringFixed(0)
}
