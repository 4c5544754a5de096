package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) { // nolint:ireturn,cyclop
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = x.Width, x.Height
		m.input.Width = max(1, x.Width-lipgloss.Width(m.input.Prompt)-1)
		m.presets.SetSize(min(presetListWidth, x.Width), min(presetListRows, max(1, x.Height-footerLines)))
		return m, nil

	case runMsg:
		if !m.app.Closed() {
			x.fn()
		}
		return m, nil

	case startMsg:
		if m.started {
			return m, nil
		}
		m.started = true
		m.app.Start()
		if s := m.simulate; s != nil {
			m.app.Simulate(s.Days, s.Hours, s.Minutes, s.Seconds)
		}
		return m, nil

	case frameMsg:
		if m.quitting {
			return m, nil
		}
		m.screen.advance()
		return m, m.tickFrame()

	case tea.FocusMsg:
		m.app.Focus()
		return m, nil

	case tea.BlurMsg:
		m.app.Blur()
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(x), nil

	case quitMsg:
		if x.Reason != nil && !errors.Is(x.Reason, ErrQuit) {
			m.log().Debugf("Quitting: %v", x.Reason)
		}
		return m.quit()

	case tea.KeyMsg:
		if m.choosingPreset {
			return m.handlePresetKey(x)
		}
		return m.handleKey(x)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// quit tears the app down and stops the program.
func (m Model) quit() (Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	m.quitting = true
	if err := m.app.Close(); err != nil {
		m.log().Warnf("Closing audio: %v", err)
	}
	if m.loop != nil {
		m.loop.CancelAll()
	}
	return m, tea.Quit
}
