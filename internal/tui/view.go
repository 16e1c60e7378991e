package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/rmgo/internal/domain"
	"github.com/rgehrsitz/rmgo/internal/tui/components"
	"github.com/rgehrsitz/rmgo/internal/tui/tuistyles"
)

// View renders the current state of the application
func (m Model) View() string {
	if m.err != nil {
		return m.renderApp(tuistyles.ErrorStyle.Render(
			fmt.Sprintf("Error: %s\n\nPress any key to exit...", m.err.Error())))
	}
	if m.loading {
		return m.renderApp(tuistyles.BorderStyle.Render("⠋ Loading profile..."))
	}

	form := m.renderForm()
	var results string
	if m.dashboard != nil {
		switch m.tab {
		case TabPayroll:
			results = m.renderPayroll(m.dashboard)
		case TabRetirement:
			results = m.renderRetirement(m.dashboard)
		case TabIncomeReality:
			results = m.renderIncomeReality(m.dashboard)
		}
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, form, "  ", results)
	return m.renderApp(body)
}

// renderApp wraps content with the title bar, tabs and status bar
func (m Model) renderApp(content string) string {
	return tuistyles.AppStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		m.renderTabs(),
		"",
		content,
		m.renderStatusBar(),
	))
}

func (m Model) renderTitleBar() string {
	title := tuistyles.TitleStyle.Render("RMGO - Malaysian Personal Finance")
	name := m.base.Name
	if m.profilePath != "" {
		name += " (" + m.profilePath + ")"
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, tuistyles.SubtitleStyle.Render(name))
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, tabCount)
	for t := Tab(0); t < tabCount; t++ {
		style := tuistyles.InactiveTabStyle
		if t == m.tab {
			style = tuistyles.ActiveTabStyle
		}
		tabs = append(tabs, style.Render(t.String()))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderForm() string {
	var b strings.Builder
	for i, f := range m.fields[m.tab] {
		label := tuistyles.ParameterLabelStyle
		if i == m.focus {
			label = tuistyles.FocusedLabelStyle
		}
		b.WriteString(label.Render(f.label))
		b.WriteString(f.input.View())
		b.WriteString("\n")
	}
	if m.editErr != nil {
		b.WriteString("\n")
		b.WriteString(tuistyles.ErrorStyle.Width(40).Render(m.editErr.Error()))
	}
	return tuistyles.ActiveBorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) renderPayroll(d *domain.Dashboard) string {
	r := d.Payroll
	cards := []*components.MetricCard{
		components.NewAmountCard("Net pay", r.NetPay).
			WithDescription(fmt.Sprintf("of %s gross", tuistyles.FormatCurrency(r.GrossMonthlyIncome))),
		components.NewAmountCard("Total deductions", r.TotalDeductions).
			WithDescription(r.EffectiveDeductionRate().StringFixed(1) + "% of gross"),
		components.NewAmountCard("EPF", r.Applied.Fund),
		components.NewAmountCard("SOCSO + EIS", r.Applied.SocialSecurity.Add(r.Applied.Insurance)),
		components.NewAmountCard("PCB", r.Applied.Tax).
			WithDescription(tuistyles.FormatCurrency(r.AnnualTax) + " a year"),
		components.NewMetricCard("Income tier", d.Classification.Tier.Code+" ("+d.Classification.Group()+")").
			WithDescription("household " + d.Classification.HouseholdPercentile.String()),
	}
	return components.MetricGrid(cards, 3)
}

func (m Model) renderRetirement(d *domain.Dashboard) string {
	p := d.Projection
	if p.IsEmpty() {
		return tuistyles.InfoStyle.Render("Nothing to project: age is past the target age")
	}
	milestone := components.NewMetricCard("RM"+d.MilestoneBalance.Div(decimalMillion).String()+"M reached", "never")
	if d.MilestoneAge != nil {
		milestone.Value = fmt.Sprintf("age %d", *d.MilestoneAge)
	}
	withdrawal := components.NewAmountCard("Sustainable withdrawal", d.SustainableWithdrawal).
		WithDescription(fmt.Sprintf("per month from %d to %d", p.Input.RetirementAge, p.Input.TargetAge))
	if d.DepletionAge != nil {
		withdrawal.WithTrend(false, fmt.Sprintf("runs dry at %d", *d.DepletionAge))
	}
	cards := []*components.MetricCard{
		components.NewAmountCard(fmt.Sprintf("Balance at %d", p.Input.RetirementAge), p.BalanceAtRetirement()),
		withdrawal,
		milestone,
	}

	width := 70
	if m.width > 60 {
		width = min(m.width-50, 90)
	}
	chart := components.NewBalanceChart(p).WithSize(width, 12).WithMilestone(d.MilestoneBalance)
	return lipgloss.JoinVertical(lipgloss.Left, components.MetricGrid(cards, 3), chart.Render())
}

func (m Model) renderIncomeReality(d *domain.Dashboard) string {
	r := d.IncomeReality
	if r == nil {
		return ""
	}
	cards := []*components.MetricCard{
		components.NewAmountCard(fmt.Sprintf("Income (%s)", d.IncomeBasis), r.MonthlyIncome).WithBalance(r.Surplus),
		components.NewAmountCard("Baseline cost of living", r.BaselineLifeCost).
			WithDescription(fmt.Sprintf("x%s household, x%s location", r.HouseholdMultiplier, r.LocationMultiplier)),
		components.NewAmountCard("Housing", r.HousingCost),
	}
	bar := components.NewCoverageBar(r.CoveragePercent).WithLabel("Coverage of baseline").WithWidth(40)
	return lipgloss.JoinVertical(lipgloss.Left, components.MetricGrid(cards, 3), "", bar.Render())
}

func (m Model) renderStatusBar() string {
	shortcuts := []string{
		formatShortcut("tab", "next page"),
		formatShortcut("↑/↓", "field"),
		formatShortcut("esc", "quit"),
	}
	return tuistyles.StatusBarStyle.Width(max(m.width-2, 20)).Render(strings.Join(shortcuts, " • "))
}

func formatShortcut(key, desc string) string {
	return tuistyles.StatusKeyStyle.Render(key) + " " + desc
}
