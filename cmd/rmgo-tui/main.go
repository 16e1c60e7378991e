package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/rmgo/internal/calculation"
	"github.com/rgehrsitz/rmgo/internal/config"
	"github.com/rgehrsitz/rmgo/internal/tui"
)

func main() {
	// An optional profile file seeds the form; without one the defaults are used
	profilePath := ""
	if len(os.Args) > 1 {
		profilePath = os.Args[1]
		if _, err := os.Stat(profilePath); os.IsNotExist(err) {
			fmt.Printf("Error: profile file not found: %s\n", profilePath)
			os.Exit(1)
		}
	}

	engine := calculation.NewCalculationEngine()
	if rulesFile := os.Getenv("RMGO_RULES_FILE"); rulesFile != "" {
		rules, err := config.NewInputParser().LoadRules(rulesFile)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		if engine, err = calculation.NewCalculationEngineWithRules(rules); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	p := tea.NewProgram(
		tui.NewModel(engine, profilePath),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
