package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ensigniasec/spring-countdown/internal/theme"
)

// handleKey processes key bindings and returns updated model and command.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) { // nolint:ireturn,cyclop
	m.app.Interact()
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Help):
		m.helpVisible = !m.helpVisible
		m.help.ShowAll = m.helpVisible
		return m, nil

	case key.Matches(msg, m.keys.Send):
		if m.app.Send(m.input.Value()) {
			m.input.Reset()
		}
		return m, nil

	case key.Matches(msg, m.keys.Special):
		m.app.SendSpecial()
		return m, nil

	case key.Matches(msg, m.keys.Fireworks):
		m.app.FireworkShow()
		return m, nil

	case key.Matches(msg, m.keys.Sound):
		m.app.ToggleSound()
		return m, nil

	case key.Matches(msg, m.keys.MouseFollow):
		m.app.ToggleMouseFollow()
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.app.CycleTheme()
		return m.restyle(), nil

	case key.Matches(msg, m.keys.Theme):
		if n, ok := keyNumber(msg.String(), "alt+"); ok {
			m.app.SelectTheme(n)
		}
		return m.restyle(), nil

	case key.Matches(msg, m.keys.Quick):
		if n, ok := keyNumber(msg.String(), "f"); ok {
			m.app.SendQuick(n)
		}
		return m, nil

	case key.Matches(msg, m.keys.Presets):
		return m.openPresets(), nil

	case key.Matches(msg, m.keys.Egg):
		m.app.TitleClick()
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.input.Reset()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// handlePresetKey drives the preset picker. Enter copies the selected preset
// into the input for editing; esc closes the picker unless it is filtering.
func (m Model) handlePresetKey(msg tea.KeyMsg) (Model, tea.Cmd) { // nolint:ireturn
	filtering := m.presets.FilterState() == list.Filtering
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case !filtering && key.Matches(msg, m.keys.Escape):
		m.choosingPreset = false
		return m, nil
	case !filtering && key.Matches(msg, m.keys.Send):
		if it, ok := m.presets.SelectedItem().(presetItem); ok {
			m.input.SetValue(it.Text)
			m.input.CursorEnd()
		}
		m.choosingPreset = false
		return m, nil
	}
	var cmd tea.Cmd
	m.presets, cmd = m.presets.Update(msg)
	return m, cmd
}

// handleMouse forwards motion to the sparkle trail and clicks to the title
// egg or the backdrop.
func (m Model) handleMouse(msg tea.MouseMsg) Model {
	switch msg.Action {
	case tea.MouseActionMotion:
		m.app.MouseMove(msg.X, msg.Y)
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m
		}
		if msg.Y == titleRow {
			m.app.TitleClick()
			return m
		}
		m.app.Click()
	}
	return m
}

func (m Model) openPresets() Model {
	m.presets = newPresetList(m.app.History.Presets(), theme.Color(m.app.Theme().Colors.PrimaryPink))
	m.presets.SetSize(min(presetListWidth, m.width), min(presetListRows, max(1, m.height-footerLines)))
	m.choosingPreset = true
	return m
}

// restyle rebuilds the theme-dependent widgets after a theme change.
func (m Model) restyle() Model {
	t := m.app.Theme()
	m.progress = progress.New(progress.WithGradient(t.Gradient[0], t.Gradient[1]), progress.WithoutPercentage())
	return m
}

// keyNumber parses the number following prefix in a key name such as "alt+3"
// or "f10".
func keyNumber(name, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(name, prefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}
