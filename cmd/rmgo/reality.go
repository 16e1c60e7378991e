package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/rmgo/internal/domain"
	"github.com/rgehrsitz/rmgo/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

func realityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reality",
		Short: "Compare a monthly income with the household cost of living",
		Example: `  rmgo reality --income 4305 --housing 1500
  rmgo reality --income 9000 --housing 2200 --household family --dependants 2 --location urban`,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			if err := checkFormat(format, "console", "json"); err != nil {
				return err
			}
			income, err := decimalFlag(cmd, "income")
			if err != nil {
				return err
			}
			section := &domain.IncomeRealitySection{}
			if section.HousingCost, err = decimalFlag(cmd, "housing"); err != nil {
				return err
			}
			section.Dependants, _ = cmd.Flags().GetInt("dependants")
			if raw, _ := cmd.Flags().GetString("household"); raw != "" {
				if section.HouseholdType, err = domain.ParseHouseholdType(raw); err != nil {
					return err
				}
			}
			if raw, _ := cmd.Flags().GetString("location"); raw != "" {
				if section.Location, err = domain.ParseLocation(raw); err != nil {
					return err
				}
			}

			p := domain.Profile{MonthlyIncome: income, IncomeReality: section}
			result, err := engine.CompareIncomeToBaseline(p.IncomeRealityInput(engine.Rules(), income))
			if err != nil {
				return err
			}
			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			output.WriteIncomeReality(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().String("income", "", "Monthly income in RM, usually net pay (required)")
	cmd.Flags().String("housing", "", "Monthly housing cost in RM")
	cmd.Flags().String("household", "alone", "Household type (alone, couple, family)")
	cmd.Flags().Int("dependants", 0, "Number of dependants")
	cmd.Flags().String("location", "kl", "Location (kl, urban, non-urban)")
	cmd.Flags().StringP("format", "f", "console", "Output format (console, json)")
	_ = cmd.MarkFlagRequired("income")
	return cmd
}

func tierCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tier <monthly-income>",
		Short: "Classify a monthly household income into B40/M40/T20 tiers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := newEngine(cmd)
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			if err := checkFormat(format, "console", "json"); err != nil {
				return err
			}
			income, err := parseAmount(args[0])
			if err != nil {
				return err
			}
			c := engine.ClassifyIncome(income)
			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), c)
			}
			output.WriteClassification(cmd.OutOrStdout(), c)
			return nil
		},
	}
	cmd.Flags().StringP("format", "f", "console", "Output format (console, json)")
	return cmd
}

func parseAmount(raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(raw), ",", ""))
	if err != nil {
		return d, fmt.Errorf("%q is not an amount", raw)
	}
	if d.IsNegative() {
		return d, fmt.Errorf("amount must not be negative")
	}
	return d, nil
}
