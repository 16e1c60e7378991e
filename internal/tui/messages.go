package tui

import "github.com/rgehrsitz/rmgo/internal/domain"

// Tab is one page of the dashboard.
type Tab int

const (
	TabPayroll Tab = iota
	TabRetirement
	TabIncomeReality
	tabCount
)

func (t Tab) String() string {
	switch t {
	case TabPayroll:
		return "Payroll"
	case TabRetirement:
		return "Retirement"
	case TabIncomeReality:
		return "Income Reality"
	default:
		return "Unknown"
	}
}

// ProfileLoadedMsg carries a profile read from disk.
type ProfileLoadedMsg struct {
	Profile *domain.Profile
}

// ErrorMsg reports a failure outside the edit loop, such as loading the profile.
type ErrorMsg struct {
	Err error
}
