package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

var (
	keyQuit    = key.NewBinding(key.WithKeys("ctrl+c", "esc"))
	keyNextTab = key.NewBinding(key.WithKeys("tab", "ctrl+right"))
	keyPrevTab = key.NewBinding(key.WithKeys("shift+tab", "ctrl+left"))
	keyUp      = key.NewBinding(key.WithKeys("up"))
	keyDown    = key.NewBinding(key.WithKeys("down", "enter"))
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case ProfileLoadedMsg:
		m.loading = false
		if msg.Profile != nil {
			m.setProfile(*msg.Profile)
		}
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.err != nil {
		return m, tea.Quit
	}

	switch {
	case key.Matches(msg, keyQuit):
		return m, tea.Quit
	case key.Matches(msg, keyNextTab):
		m.tab = (m.tab + 1) % tabCount
		m.focus = 0
		m.setFocus()
		return m, nil
	case key.Matches(msg, keyPrevTab):
		m.tab = (m.tab + tabCount - 1) % tabCount
		m.focus = 0
		m.setFocus()
		return m, nil
	case key.Matches(msg, keyUp):
		if m.focus > 0 {
			m.focus--
			m.setFocus()
		}
		return m, nil
	case key.Matches(msg, keyDown):
		if m.focus < len(m.fields[m.tab])-1 {
			m.focus++
			m.setFocus()
		}
		return m, nil
	}

	if m.loading || len(m.fields[m.tab]) == 0 {
		return m, nil
	}

	// Every other key edits the focused input and recomputes.
	fields := m.fields[m.tab]
	var cmd tea.Cmd
	fields[m.focus].input, cmd = fields[m.focus].input.Update(msg)
	m.recompute()
	return m, cmd
}
