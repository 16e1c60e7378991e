package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/rmgo/internal/calculation"
	"github.com/rgehrsitz/rmgo/internal/config"
	"github.com/rgehrsitz/rmgo/internal/dashboard"
	"github.com/rgehrsitz/rmgo/internal/domain"
)

// Model is the whole application state.
type Model struct {
	tab   Tab
	focus int

	width  int
	height int

	profilePath string
	base        domain.Profile
	fields      [tabCount][]field

	builder   *dashboard.Builder
	dashboard *domain.Dashboard

	// editErr is the last parse or validation failure; the previous dashboard stays on screen.
	editErr error
	// err is fatal, such as an unreadable profile file.
	err error

	loading bool
}

// DefaultProfile is the starting point when no profile file is given.
func DefaultProfile() domain.Profile {
	return domain.Profile{
		Name:          "Me",
		Age:           30,
		MonthlyIncome: decimal.NewFromInt(5000),
		Retirement:    &domain.RetirementSection{CurrentBalance: decimal.NewFromInt(50000)},
		IncomeReality: &domain.IncomeRealitySection{HousingCost: decimal.NewFromInt(1500)},
	}
}

// NewModel creates a model that loads profilePath on Init. An empty path starts from DefaultProfile.
func NewModel(engine *calculation.CalculationEngine, profilePath string) Model {
	m := Model{
		profilePath: profilePath,
		builder:     dashboard.NewBuilder(engine),
		fields:      buildFields(),
		width:       100,
		height:      32,
	}
	if profilePath == "" {
		m.setProfile(DefaultProfile())
	} else {
		m.loading = true
	}
	return m
}

// NewModelWithProfile creates a model already showing p.
func NewModelWithProfile(engine *calculation.CalculationEngine, p domain.Profile) Model {
	m := NewModel(engine, "")
	m.setProfile(p)
	return m
}

func (m Model) Init() tea.Cmd {
	if m.profilePath == "" {
		return nil
	}
	return loadProfileCmd(m.profilePath)
}

func loadProfileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		p, err := config.NewInputParser().LoadFromFile(path)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return ProfileLoadedMsg{Profile: p}
	}
}

// setProfile fills every input from p and recomputes.
func (m *Model) setProfile(p domain.Profile) {
	m.base = cloneProfile(p)
	for t := range m.fields {
		for i := range m.fields[t] {
			m.fields[t][i].input.SetValue(m.fields[t][i].read(p))
			m.fields[t][i].input.CursorEnd()
		}
	}
	m.focus = 0
	m.setFocus()
	m.recompute()
}

// setFocus focuses the current input of the active tab and blurs the rest.
func (m *Model) setFocus() {
	for t := range m.fields {
		for i := range m.fields[t] {
			if Tab(t) == m.tab && i == m.focus {
				m.fields[t][i].input.Focus()
			} else {
				m.fields[t][i].input.Blur()
			}
		}
	}
}

// Profile returns the profile described by the current inputs.
func (m Model) Profile() (domain.Profile, error) {
	p := cloneProfile(m.base)
	var errs []error
	for t := range m.fields {
		for _, f := range m.fields[t] {
			if err := f.apply(&p, f.input.Value()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return p, errors.Join(errs...)
}

// recompute rebuilds the dashboard from the inputs.
func (m *Model) recompute() {
	p, err := m.Profile()
	if err != nil {
		m.editErr = err
		return
	}
	d, err := m.builder.Build(context.Background(), p)
	if err != nil {
		m.editErr = err
		return
	}
	m.editErr = nil
	m.dashboard = d
}

// Dashboard returns the last successfully computed dashboard.
func (m Model) Dashboard() *domain.Dashboard { return m.dashboard }

// EditError returns the current input problem, if any.
func (m Model) EditError() error { return m.editErr }

// ActiveTab returns the visible tab.
func (m Model) ActiveTab() Tab { return m.tab }

func cloneProfile(p domain.Profile) domain.Profile {
	if p.Payroll != nil {
		s := *p.Payroll
		p.Payroll = &s
	}
	if p.Retirement != nil {
		s := *p.Retirement
		s.Scenarios = append([]domain.ScenarioSpec(nil), s.Scenarios...)
		p.Retirement = &s
	}
	if p.IncomeReality != nil {
		s := *p.IncomeReality
		p.IncomeReality = &s
	}
	return p
}

var decimalMillion = decimal.NewFromInt(1_000_000)
