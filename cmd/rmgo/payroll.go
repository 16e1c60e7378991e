package main

import (
	"github.com/rgehrsitz/rmgo/internal/domain"
	"github.com/rgehrsitz/rmgo/internal/output"
	"github.com/spf13/cobra"
)

func payrollCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payroll",
		Short: "Compute monthly EPF, SOCSO, EIS, PCB and net pay",
		Example: `  rmgo payroll --income 5000
  rmgo payroll --income 8000 --age 62 --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			income, err := decimalFlag(cmd, "income")
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			if err := checkFormat(format, "console", "json", "pdf"); err != nil {
				return err
			}
			section := &domain.PayrollSection{}
			if section.EmployeeFundRate, err = optionalDecimalFlag(cmd, "epf-rate"); err != nil {
				return err
			}
			if section.SocialSecurityRate, err = optionalDecimalFlag(cmd, "socso-rate"); err != nil {
				return err
			}
			if section.InsuranceRate, err = optionalDecimalFlag(cmd, "eis-rate"); err != nil {
				return err
			}
			if section.Garnishment, err = decimalFlag(cmd, "garnishment"); err != nil {
				return err
			}
			if section.AdditionalTax, err = decimalFlag(cmd, "additional-tax"); err != nil {
				return err
			}
			age, _ := cmd.Flags().GetInt("age")

			p := domain.Profile{Age: age, MonthlyIncome: income, Payroll: section}
			result, err := engine.ComputeNetPay(p.PayrollInput(engine.Rules()))
			if err != nil {
				return err
			}

			switch format {
			case "json":
				return writeJSON(cmd.OutOrStdout(), result)
			case "pdf":
				data, err := output.PayslipPDF("", result)
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(data)
				return err
			default:
				output.WritePayroll(cmd.OutOrStdout(), result)
				return nil
			}
		},
	}
	cmd.Flags().String("income", "", "Gross monthly income in RM (required)")
	cmd.Flags().Int("age", 30, "Employee age")
	cmd.Flags().String("epf-rate", "", "Employee EPF rate in percent (default from rules)")
	cmd.Flags().String("socso-rate", "", "SOCSO rate in percent (default from rules)")
	cmd.Flags().String("eis-rate", "", "EIS rate in percent (default from rules)")
	cmd.Flags().String("garnishment", "", "Monthly garnishment in RM")
	cmd.Flags().String("additional-tax", "", "Additional monthly tax in RM")
	cmd.Flags().StringP("format", "f", "console", "Output format (console, json, pdf)")
	_ = cmd.MarkFlagRequired("income")
	return cmd
}
