package breakeven

import (
	"fmt"
)

// recommendations turns solver results into short guidance lines
func recommendations(w *WithdrawalResult, r *RetirementAgeResult) []string {
	var out []string

	if w != nil {
		switch {
		case !w.Success && w.ConvergenceInfo == "empty projection range":
			out = append(out, "Current age is past the target age, nothing to project")
		case !w.Success:
			out = append(out, "The fund cannot sustain any withdrawal to the target age")
		default:
			out = append(out, fmt.Sprintf("Spending up to RM%s a month after age %d keeps the fund alive to age %d",
				w.MonthlyWithdrawal.StringFixed(0), w.Input.RetirementAge, w.Input.TargetAge))
			if w.ProbeDepletionAge != nil {
				out = append(out, fmt.Sprintf("Spending RM%s a month instead runs the fund dry at age %d",
					w.ProbeWithdrawal.StringFixed(0), *w.ProbeDepletionAge))
			}
		}
	}

	if r != nil {
		if r.Found {
			out = append(out, fmt.Sprintf("RM%s a month is sustainable when retiring at %d",
				r.MonthlyWithdrawal.StringFixed(0), r.RetirementAge))
		} else {
			out = append(out, fmt.Sprintf("RM%s a month is not sustainable at any retirement age; lower the target",
				r.MonthlyWithdrawal.StringFixed(0)))
		}
		if w != nil && w.Success && r.Found && r.MonthlyWithdrawal.GreaterThan(w.MonthlyWithdrawal) &&
			r.RetirementAge > w.Input.RetirementAge {
			out = append(out, fmt.Sprintf("Reaching RM%s means working %d years longer than planned",
				r.MonthlyWithdrawal.StringFixed(0), r.RetirementAge-w.Input.RetirementAge))
		}
	}
	return out
}
