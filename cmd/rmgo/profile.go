package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/rmgo/internal/compare"
	"github.com/rgehrsitz/rmgo/internal/config"
	"github.com/rgehrsitz/rmgo/internal/dashboard"
	"github.com/rgehrsitz/rmgo/internal/domain"
	"github.com/rgehrsitz/rmgo/internal/output"
	"github.com/rgehrsitz/rmgo/internal/transform"
	"github.com/spf13/cobra"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard <profile.yaml>",
		Short: "Run every calculator against a profile",
		Example: `  rmgo dashboard profile.yaml
  rmgo dashboard profile.yaml --format json
  rmgo dashboard profile.yaml --format pdf --output-dir ./out`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			formatter := output.GetFormatterByName(format)
			if formatter == nil {
				return fmt.Errorf("unknown output format: %s (valid: %s)", format,
					strings.Join(append(output.AvailableFormatterNames(), output.AvailableFormatAliases()...), ", "))
			}

			p, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			d, err := dashboard.NewBuilder(engine).Build(cmd.Context(), *p)
			if err != nil {
				return err
			}

			outDir, _ := cmd.Flags().GetString("output-dir")
			if outDir != "" || output.IsBinary(formatter) {
				if outDir == "" {
					outDir = "."
				}
				path, err := output.WriteFormatted(formatter, d, outDir, formatter.Name())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
				return nil
			}

			data, err := formatter.Format(d)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringP("format", "f", "console", "Output format (console, json, csv, pdf)")
	cmd.Flags().String("output-dir", "", "Write the output to a timestamped file in this directory")
	return cmd
}

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <profile.yaml>",
		Short: "Compare retirement scenarios against a profile's base projection",
		Long: `Compare the profile's EPF projection with alternative scenarios.

Scenarios come from --with (built-in templates or transform specs) or,
when --with is omitted, from the profile's retirement.scenarios section.`,
		Example: `  rmgo compare profile.yaml --with retire_55,work_3yr
  rmgo compare profile.yaml --with "adjust_dividend:rate=4" --format csv
  rmgo compare --list-templates`,
		Args: func(cmd *cobra.Command, args []string) error {
			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				return nil
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			ce := compare.NewCompareEngine(engine)

			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(ce.TemplateRegistry))
				return nil
			}

			format, _ := cmd.Flags().GetString("format")
			if err := checkFormat(format, "table", "compact", "csv", "json"); err != nil {
				return err
			}
			baseName, _ := cmd.Flags().GetString("base")

			p, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			ce.MetricsCalculator.MilestoneBalance = p.MilestoneBalance()
			base := p.ProjectionInput(engine.Rules())

			var scenarios []compare.Scenario
			if with, _ := cmd.Flags().GetString("with"); with != "" {
				scenarios, err = ce.ResolveScenarios(transform.ParseTemplateList(with))
			} else {
				scenarios, err = ce.ScenariosFromProfile(p.Scenarios())
			}
			if err != nil {
				return err
			}
			if len(scenarios) == 0 {
				return fmt.Errorf("no scenarios to compare: pass --with or add retirement.scenarios to the profile")
			}

			compSet, err := ce.Compare(cmd.Context(), baseName, base, scenarios)
			if err != nil {
				return err
			}
			compSet.ProfilePath = args[0]

			var out string
			switch format {
			case "csv":
				out, err = (&compare.CSVFormatter{}).Format(compSet)
			case "json":
				out, err = (&compare.JSONFormatter{Pretty: true}).Format(compSet)
			case "compact":
				out = (&compare.TableFormatter{}).FormatCompact(compSet)
			default:
				out = (&compare.TableFormatter{}).Format(compSet)
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().String("with", "", "Comma-separated templates or transform specs")
	cmd.Flags().String("base", "Base", "Name shown for the base scenario")
	cmd.Flags().Bool("list-templates", false, "List the built-in scenario templates")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <profile.yaml>",
		Short: "Check a profile file without running the calculators",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.NewInputParser().LoadFromFile(args[0]); err != nil {
				issues, ok := domain.AsValidationErrors(err)
				if !ok {
					return err
				}
				for _, issue := range issues {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", issue.Field, issue.Reason)
				}
				return fmt.Errorf("profile %s is invalid", args[0])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile %s is valid\n", args[0])
			return nil
		},
	}
}
