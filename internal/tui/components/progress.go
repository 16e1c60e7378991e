package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/rmgo/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

// CoverageBar shows how much of the cost-of-living baseline an income covers.
// Coverage above 100% fills the bar and is shown in the success colour.
type CoverageBar struct {
	Percent decimal.Decimal
	Width   int
	Label   string
}

func NewCoverageBar(percent decimal.Decimal) *CoverageBar {
	return &CoverageBar{Percent: percent, Width: 30}
}

func (p *CoverageBar) WithLabel(label string) *CoverageBar {
	p.Label = label
	return p
}

func (p *CoverageBar) WithWidth(width int) *CoverageBar {
	p.Width = width
	return p
}

// Filled returns the number of filled cells.
func (p *CoverageBar) Filled() int {
	if p.Width <= 0 || !p.Percent.IsPositive() {
		return 0
	}
	filled := int(p.Percent.Mul(decimal.NewFromInt(int64(p.Width))).Div(decimal.NewFromInt(100)).IntPart())
	if filled > p.Width {
		filled = p.Width
	}
	return filled
}

func (p *CoverageBar) Render() string {
	var content strings.Builder
	if p.Label != "" {
		content.WriteString(lipgloss.NewStyle().Foreground(tuistyles.ColorForeground).Bold(true).Render(p.Label))
		content.WriteString("\n")
	}

	filled := p.Filled()
	color := tuistyles.ColorDanger
	if p.Percent.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		color = tuistyles.ColorSuccess
	}
	barStyle := lipgloss.NewStyle().Foreground(color)
	emptyStyle := lipgloss.NewStyle().Foreground(tuistyles.ColorBorder)

	content.WriteString("[")
	content.WriteString(barStyle.Render(strings.Repeat("█", filled)))
	content.WriteString(emptyStyle.Render(strings.Repeat("░", max(0, p.Width-filled))))
	content.WriteString("] ")
	content.WriteString(lipgloss.NewStyle().Foreground(color).Bold(true).Render(fmt.Sprintf("%s%%", p.Percent.StringFixed(1))))
	return content.String()
}
