package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rgehrsitz/rmgo/internal/calculation"
	"github.com/rgehrsitz/rmgo/internal/config"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "rmgo",
		Short:         "Malaysian personal finance calculator CLI",
		Long:          "Payroll deductions, EPF retirement projections, cost-of-living checks and income tiers for Malaysian salaried employees",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().String("rules", "", "YAML rules file overlaid on the built-in MY-2024 rules")
	root.PersistentFlags().Bool("debug", false, "Enable debug logging to stderr")

	root.AddCommand(
		payrollCmd(),
		projectCmd(),
		withdrawalCmd(),
		retireAgeCmd(),
		realityCmd(),
		tierCmd(),
		dashboardCmd(),
		compareCmd(),
		validateCmd(),
		serveCmd(),
		versionCmd(),
	)
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "rmgo %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.Main.Version
	}
	return ""
}

// newEngine builds the calculation engine from the --rules and --debug flags.
func newEngine(cmd *cobra.Command) (*calculation.CalculationEngine, error) {
	rulesFile, _ := cmd.Flags().GetString("rules")
	debugMode, _ := cmd.Flags().GetBool("debug")
	return buildEngine(rulesFile, debugMode, cmd.ErrOrStderr())
}

func buildEngine(rulesFile string, debugMode bool, logOut io.Writer) (*calculation.CalculationEngine, error) {
	engine := calculation.NewCalculationEngine()
	if rulesFile != "" {
		rules, err := config.NewInputParser().LoadRules(rulesFile)
		if err != nil {
			return nil, err
		}
		engine, err = calculation.NewCalculationEngineWithRules(rules)
		if err != nil {
			return nil, err
		}
	}
	if debugMode {
		engine.SetLogger(calculation.NewSlogLogger(newSlog(logOut, true)))
	}
	return engine, nil
}

func newSlog(w io.Writer, debugMode bool) *slog.Logger {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// decimalFlag reads a string flag as a decimal.
func decimalFlag(cmd *cobra.Command, name string) (decimal.Decimal, error) {
	raw, _ := cmd.Flags().GetString(name)
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("--%s: %q is not a number", name, raw)
	}
	return d, nil
}

// optionalDecimalFlag returns nil when the flag was not set.
func optionalDecimalFlag(cmd *cobra.Command, name string) (*decimal.Decimal, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	d, err := decimalFlag(cmd, name)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func optionalIntFlag(cmd *cobra.Command, name string) *int {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	n, _ := cmd.Flags().GetInt(name)
	return &n
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func checkFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return fmt.Errorf("unknown output format: %s (valid: %s)", format, strings.Join(allowed, ", "))
}
