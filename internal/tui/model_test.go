package tui

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/rmgo/internal/calculation"
)

func newTestModel() Model {
	return NewModelWithProfile(calculation.NewCalculationEngine(), DefaultProfile())
}

func typeKeys(m Model, s string) Model {
	for _, r := range s {
		next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		m = next.(Model)
	}
	return m
}

func press(m Model, t tea.KeyType) Model {
	next, _ := m.Update(tea.KeyMsg{Type: t})
	return next.(Model)
}

func TestNewModel_ComputesDefaultProfile(t *testing.T) {
	m := newTestModel()
	require.NoError(t, m.EditError())
	d := m.Dashboard()
	require.NotNil(t, d)
	assert.True(t, d.Payroll.NetPay.Equal(decimal.NewFromInt(4305)))
	assert.Equal(t, "B4", d.Classification.Tier.Code)
	assert.Equal(t, TabPayroll, m.ActiveTab())
	assert.Nil(t, m.Init())
}

func TestKeystrokeRecomputes(t *testing.T) {
	m := newTestModel()
	// income is the first payroll field: 5000 -> 50000
	m = typeKeys(m, "0")
	require.NoError(t, m.EditError())
	assert.True(t, m.Dashboard().Payroll.GrossMonthlyIncome.Equal(decimal.NewFromInt(50000)))

	m = press(m, tea.KeyBackspace)
	assert.True(t, m.Dashboard().Payroll.GrossMonthlyIncome.Equal(decimal.NewFromInt(5000)))
}

func TestInvalidInputKeepsLastDashboard(t *testing.T) {
	m := newTestModel()
	before := m.Dashboard()

	m = typeKeys(m, "x")
	require.Error(t, m.EditError())
	assert.Contains(t, m.EditError().Error(), "monthly income")
	assert.Same(t, before, m.Dashboard())
	assert.Contains(t, m.View(), "monthly income")
}

func TestValidationErrorShown(t *testing.T) {
	m := newTestModel()
	m = press(m, tea.KeyDown) // age
	for i := 0; i < 2; i++ {
		m = press(m, tea.KeyBackspace)
	}
	m = typeKeys(m, "5")
	require.Error(t, m.EditError())
	assert.Contains(t, m.EditError().Error(), "age")
}

func TestTabNavigation(t *testing.T) {
	m := newTestModel()
	m = press(m, tea.KeyTab)
	assert.Equal(t, TabRetirement, m.ActiveTab())
	m = press(m, tea.KeyTab)
	assert.Equal(t, TabIncomeReality, m.ActiveTab())
	m = press(m, tea.KeyTab)
	assert.Equal(t, TabPayroll, m.ActiveTab())
	m = press(m, tea.KeyShiftTab)
	assert.Equal(t, TabIncomeReality, m.ActiveTab())
}

func TestRetirementTabEditsBalance(t *testing.T) {
	m := newTestModel()
	m = press(m, tea.KeyTab)
	before := m.Dashboard().SustainableWithdrawal
	m = typeKeys(m, "0") // 50000 -> 500000
	require.NoError(t, m.EditError())
	assert.True(t, m.Dashboard().SustainableWithdrawal.GreaterThan(before))
	assert.Contains(t, m.View(), "EPF balance by age")
}

func TestIncomeRealityTab(t *testing.T) {
	m := newTestModel()
	m = press(m, tea.KeyShiftTab)
	require.Equal(t, TabIncomeReality, m.ActiveTab())
	view := m.View()
	assert.Contains(t, view, "Baseline cost of living")
	assert.Contains(t, view, "shortfall")

	// household is the second field
	m = press(m, tea.KeyDown)
	m = typeKeys(m, "family")
	require.NoError(t, m.EditError())
	assert.True(t, m.Dashboard().IncomeReality.HouseholdMultiplier.GreaterThan(decimal.NewFromInt(1)))
}

func TestProfileEditsDoNotTouchBase(t *testing.T) {
	m := newTestModel()
	m = press(m, tea.KeyTab)
	m = typeKeys(m, "0")
	assert.True(t, m.base.Retirement.CurrentBalance.Equal(decimal.NewFromInt(50000)))
}

func TestLoadProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`name: Ben
age: 40
monthly_income: 8000
retirement:
  current_balance: 200000
`), 0o644))

	m := NewModel(calculation.NewCalculationEngine(), path)
	assert.Contains(t, m.View(), "Loading")
	cmd := m.Init()
	require.NotNil(t, cmd)

	next, _ := m.Update(cmd())
	m = next.(Model)
	require.NoError(t, m.EditError())
	assert.Equal(t, "Ben", m.base.Name)
	assert.True(t, m.Dashboard().Payroll.GrossMonthlyIncome.Equal(decimal.NewFromInt(8000)))
}

func TestLoadProfile_Error(t *testing.T) {
	m := NewModel(calculation.NewCalculationEngine(), filepath.Join(t.TempDir(), "missing.yaml"))
	next, _ := m.Update(m.Init()())
	m = next.(Model)
	assert.Contains(t, m.View(), "Error:")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestQuit(t *testing.T) {
	_, cmd := newTestModel().Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestWindowSize(t *testing.T) {
	next, _ := newTestModel().Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	m := next.(Model)
	assert.Equal(t, 140, m.width)
	assert.Contains(t, m.View(), "Payroll")
}
