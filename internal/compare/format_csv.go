package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"Scenario",
		"Type",
		"Retirement Age",
		"Target Age",
		"Balance At Retirement",
		"Final Balance",
		"Sustainable Withdrawal",
		"Milestone Age",
		"Depletion Age",
		"Retirement Balance Diff",
		"Final Balance Diff",
		"Final Balance % Change",
		"Withdrawal Diff",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if compSet.BaseResult != nil {
		if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
			return "", err
		}
	}

	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRow formats a comparison result as a CSV row
func (cf *CSVFormatter) formatRow(result *ComparisonResult, scenarioType string) []string {
	return []string{
		result.ScenarioName,
		scenarioType,
		strconv.Itoa(result.RetirementAge),
		strconv.Itoa(result.TargetAge),
		result.BalanceAtRetirement.StringFixed(2),
		result.FinalBalance.StringFixed(2),
		result.SustainableWithdrawal.StringFixed(2),
		optionalInt(result.MilestoneAge),
		optionalInt(result.DepletionAge),
		result.RetirementBalanceDiff.StringFixed(2),
		result.FinalBalanceDiff.StringFixed(2),
		result.FinalBalancePctDiff.StringFixed(2),
		result.WithdrawalDiff.StringFixed(2),
	}
}

func optionalInt(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}
