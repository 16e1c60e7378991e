package components

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/rmgo/internal/domain"
	"github.com/rgehrsitz/rmgo/internal/tui/tuistyles"
	"github.com/shopspring/decimal"
)

const (
	workingCell  = '█'
	retiredCell  = '▒'
	retireMarker = '┆'
	milestoneRow = '╌'
	yAxisWidth   = 9
)

// BalanceChart draws the EPF balance as one bar per sampled age. Bars after the
// retirement age use a lighter fill and the retirement column carries a marker.
type BalanceChart struct {
	Title         string
	Ages          []int
	Balances      []float64
	RetirementAge int
	Milestone     float64 // 0 hides the milestone row
	Width         int
	Height        int
}

// NewBalanceChart builds a chart from a projection's records.
func NewBalanceChart(p *domain.Projection) *BalanceChart {
	c := &BalanceChart{Title: "EPF balance by age", Width: 60, Height: 12}
	if p == nil || p.IsEmpty() {
		return c
	}
	c.RetirementAge = p.Input.RetirementAge
	for _, rec := range p.Records {
		c.Ages = append(c.Ages, rec.Age)
		c.Balances = append(c.Balances, math.Max(0, rec.TotalAmount.InexactFloat64()))
	}
	return c
}

// WithSize sets the overall width, y-axis included, and the bar height in rows.
func (c *BalanceChart) WithSize(width, height int) *BalanceChart {
	c.Width = width
	c.Height = height
	return c
}

// WithMilestone draws a dashed row at amount when it falls inside the plotted range.
func (c *BalanceChart) WithMilestone(amount decimal.Decimal) *BalanceChart {
	c.Milestone = amount.InexactFloat64()
	return c
}

// columns picks the record indexes to plot so the bars fit plotWidth, always
// keeping the last age.
func (c *BalanceChart) columns(plotWidth int) []int {
	n := len(c.Ages)
	step := 1
	if n > plotWidth {
		step = int(math.Ceil(float64(n-1) / float64(plotWidth-1)))
	}
	cols := make([]int, 0, plotWidth)
	for i := 0; i < n; i += step {
		cols = append(cols, i)
	}
	if cols[len(cols)-1] != n-1 {
		cols = append(cols, n-1)
	}
	return cols
}

// Render returns the styled chart
func (c *BalanceChart) Render() string {
	if len(c.Ages) == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}
	height := max(c.Height, 3)
	cols := c.columns(max(c.Width-yAxisWidth-2, 10))

	top := 1.0
	for _, b := range c.Balances {
		top = math.Max(top, b)
	}
	rowsFor := func(v float64) int { return int(math.Round(v / top * float64(height))) }

	retireCol := -1
	for x, i := range cols {
		if c.Ages[i] >= c.RetirementAge {
			retireCol = x
			break
		}
	}
	milestoneLine := -1
	if c.Milestone > 0 && c.Milestone <= top {
		milestoneLine = height - rowsFor(c.Milestone)
	}

	working := lipgloss.NewStyle().Foreground(tuistyles.ColorChartLine1)
	retired := lipgloss.NewStyle().Foreground(tuistyles.ColorChartLine2)
	muted := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)
	axis := muted.Width(yAxisWidth).Align(lipgloss.Right)

	var sb strings.Builder
	if c.Title != "" {
		sb.WriteString(lipgloss.NewStyle().Bold(true).Foreground(tuistyles.ColorPrimary).Render(c.Title))
		sb.WriteString("\n\n")
	}

	for row := 0; row < height; row++ {
		label := ""
		switch row {
		case 0:
			label = formatChartValue(top)
		case height / 2:
			label = formatChartValue(top * float64(height-row) / float64(height))
		}
		sb.WriteString(axis.Render(label))
		sb.WriteString(" │")

		level := height - row
		for x, i := range cols {
			switch {
			case rowsFor(c.Balances[i]) >= level && c.Ages[i] > c.RetirementAge:
				sb.WriteString(retired.Render(string(retiredCell)))
			case rowsFor(c.Balances[i]) >= level:
				sb.WriteString(working.Render(string(workingCell)))
			case x == retireCol:
				sb.WriteString(muted.Render(string(retireMarker)))
			case row == milestoneLine:
				sb.WriteString(muted.Render(string(milestoneRow)))
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteString("\n")
	}

	sb.WriteString(axis.Render(formatChartValue(0)))
	sb.WriteString(" └")
	sb.WriteString(strings.Repeat("─", len(cols)))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", yAxisWidth+2))
	sb.WriteString(muted.Render(c.ageAxis(cols, retireCol)))
	sb.WriteString("\n\n")
	sb.WriteString(c.legend(working, retired, muted, milestoneLine >= 0))
	return sb.String()
}

// ageAxis labels the first column, the retirement column and the last column,
// dropping any label that would overlap the previous one.
func (c *BalanceChart) ageAxis(cols []int, retireCol int) string {
	line := []rune(strings.Repeat(" ", len(cols)+3))
	next := 0
	put := func(x int) {
		if x < 0 || x < next {
			return
		}
		label := strconv.Itoa(c.Ages[cols[x]])
		if x+len(label) > len(line) {
			return
		}
		copy(line[x:], []rune(label))
		next = x + len(label) + 1
	}
	put(0)
	put(retireCol)
	put(len(cols) - 1)
	return strings.TrimRight(string(line), " ")
}

func (c *BalanceChart) legend(working, retired, muted lipgloss.Style, withMilestone bool) string {
	items := []string{
		working.Render(string(workingCell)) + " working",
		retired.Render(string(retiredCell)) + " retired",
		muted.Render(string(retireMarker)) + fmt.Sprintf(" retire at %d", c.RetirementAge),
	}
	if withMilestone {
		items = append(items, muted.Render(string(milestoneRow))+" "+formatChartValue(c.Milestone))
	}
	return muted.Render(strings.Join(items, "  "))
}

func formatChartValue(value float64) string {
	if math.Abs(value) >= 1000000 {
		return fmt.Sprintf("RM%.1fM", value/1000000)
	} else if math.Abs(value) >= 1000 {
		return fmt.Sprintf("RM%.0fK", value/1000)
	}
	return fmt.Sprintf("RM%.0f", value)
}
