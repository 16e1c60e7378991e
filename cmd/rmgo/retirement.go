package main

import (
	"fmt"

	"github.com/rgehrsitz/rmgo/internal/breakeven"
	"github.com/rgehrsitz/rmgo/internal/domain"
	"github.com/rgehrsitz/rmgo/internal/output"
	"github.com/spf13/cobra"
)

func addProjectionFlags(cmd *cobra.Command) {
	cmd.Flags().Int("age", 30, "Current age")
	cmd.Flags().String("income", "", "Gross monthly income in RM")
	cmd.Flags().String("balance", "", "Current EPF balance in RM")
	cmd.Flags().Int("retire-age", 0, "Retirement age (default from rules)")
	cmd.Flags().Int("target-age", 0, "Age the fund must last to (default from rules)")
	cmd.Flags().String("dividend", "", "Annual dividend rate in percent (default from rules)")
	cmd.Flags().String("employee-rate", "", "Employee contribution rate in percent (default from rules)")
	cmd.Flags().String("employer-rate", "", "Employer contribution rate in percent (default by income)")
	cmd.Flags().String("expenses", "", "Monthly withdrawal after retirement in RM")
}

// projectionInput resolves the projection flags against the engine rules.
func projectionInput(cmd *cobra.Command, rules domain.Rules) (domain.EPFProjectionInput, error) {
	age, _ := cmd.Flags().GetInt("age")
	income, err := decimalFlag(cmd, "income")
	if err != nil {
		return domain.EPFProjectionInput{}, err
	}
	section := &domain.RetirementSection{
		RetirementAge: optionalIntFlag(cmd, "retire-age"),
		TargetAge:     optionalIntFlag(cmd, "target-age"),
	}
	if section.CurrentBalance, err = decimalFlag(cmd, "balance"); err != nil {
		return domain.EPFProjectionInput{}, err
	}
	if section.MonthlyExpenses, err = decimalFlag(cmd, "expenses"); err != nil {
		return domain.EPFProjectionInput{}, err
	}
	if section.DividendRate, err = optionalDecimalFlag(cmd, "dividend"); err != nil {
		return domain.EPFProjectionInput{}, err
	}
	if section.EmployeeRate, err = optionalDecimalFlag(cmd, "employee-rate"); err != nil {
		return domain.EPFProjectionInput{}, err
	}
	if section.EmployerRate, err = optionalDecimalFlag(cmd, "employer-rate"); err != nil {
		return domain.EPFProjectionInput{}, err
	}
	p := domain.Profile{Age: age, MonthlyIncome: income, Retirement: section}
	return p.ProjectionInput(rules), nil
}

func projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project the EPF balance year by year",
		Example: `  rmgo project --age 30 --income 5000 --balance 50000
  rmgo project --age 30 --income 5000 --balance 50000 --expenses 3000 --format csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			if err := checkFormat(format, "console", "json", "csv"); err != nil {
				return err
			}
			in, err := projectionInput(cmd, engine.Rules())
			if err != nil {
				return err
			}
			proj, err := engine.Project(in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				return writeJSON(out, proj)
			case "csv":
				data, err := output.ProjectionCSV(proj.Records)
				if err != nil {
					return err
				}
				_, err = out.Write(data)
				return err
			}

			if proj.IsEmpty() {
				fmt.Fprintln(out, "Nothing to project: current age is past the target age")
				return nil
			}
			step, _ := cmd.Flags().GetInt("step")
			fmt.Fprintf(out, "Balance at %d: %s\n", in.RetirementAge, output.FormatCurrency(proj.BalanceAtRetirement()))
			fmt.Fprintf(out, "Final balance at %d: %s\n", in.TargetAge, output.FormatCurrency(proj.FinalBalance()))
			if age, ok := proj.FirstAgeReaching(domain.DefaultMilestoneBalance); ok {
				fmt.Fprintf(out, "Reaches %s at age %d\n", output.FormatCurrency(domain.DefaultMilestoneBalance), age)
			}
			if age, ok := proj.DepletionAge(); ok {
				fmt.Fprintf(out, "⚠ Fund runs dry at age %d\n", age)
			}
			fmt.Fprintln(out)
			output.WriteProjectionTable(out, proj, step)
			return nil
		},
	}
	addProjectionFlags(cmd)
	cmd.Flags().Int("step", 5, "Show every n-th age in the console table")
	cmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv)")
	return cmd
}

func withdrawalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdrawal",
		Short: "Find the largest monthly withdrawal the fund sustains to the target age",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			if err := checkFormat(format, "console", "json"); err != nil {
				return err
			}
			in, err := projectionInput(cmd, engine.Rules())
			if err != nil {
				return err
			}
			target, err := optionalDecimalFlag(cmd, "target")
			if err != nil {
				return err
			}
			plan, err := breakeven.NewDefaultSolver(engine).Plan(cmd.Context(), in, target)
			if err != nil {
				return err
			}
			plan.Withdrawal.Projection = nil
			if plan.RetirementAge != nil {
				plan.RetirementAge.Projection = nil
			}
			return writeSolverResult(cmd, format, plan, func(tf *breakeven.TableFormatter) string { return tf.FormatPlan(plan) })
		},
	}
	addProjectionFlags(cmd)
	cmd.Flags().String("target", "", "Also find the earliest retirement age sustaining this monthly withdrawal")
	cmd.Flags().StringP("format", "f", "console", "Output format (console, json)")
	return cmd
}

func retireAgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "retire-age",
		Short: "Find the earliest retirement age that sustains a monthly withdrawal",
		Example: `  rmgo retire-age --age 30 --income 5000 --balance 50000 --withdrawal 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			if err := checkFormat(format, "console", "json"); err != nil {
				return err
			}
			in, err := projectionInput(cmd, engine.Rules())
			if err != nil {
				return err
			}
			withdrawal, err := decimalFlag(cmd, "withdrawal")
			if err != nil {
				return err
			}
			result, err := breakeven.NewDefaultSolver(engine).EarliestRetirementAge(cmd.Context(), in, withdrawal)
			if err != nil {
				return err
			}
			result.Projection = nil
			return writeSolverResult(cmd, format, result, func(tf *breakeven.TableFormatter) string { return tf.FormatRetirementAge(result) })
		},
	}
	addProjectionFlags(cmd)
	cmd.Flags().String("withdrawal", "", "Monthly withdrawal in RM (required)")
	cmd.Flags().StringP("format", "f", "console", "Output format (console, json)")
	_ = cmd.MarkFlagRequired("withdrawal")
	return cmd
}

func writeSolverResult(cmd *cobra.Command, format string, result any, table func(*breakeven.TableFormatter) string) error {
	if format == "json" {
		s, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), s)
		return err
	}
	_, err := fmt.Fprint(cmd.OutOrStdout(), table(&breakeven.TableFormatter{}))
	return err
}
