package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/ensigniasec/spring-countdown/internal/app"
	"github.com/ensigniasec/spring-countdown/internal/clock"
	"github.com/ensigniasec/spring-countdown/internal/theme"
)

// Model is the root Bubble Tea model.
type Model struct {
	app    *app.App
	loop   *clock.Loop
	screen *screen

	// simulate, when set, moves the target right after start.
	simulate *Simulation

	input    textinput.Model
	help     help.Model
	progress progress.Model

	// preset picker, open while choosingPreset is set
	presets        list.Model
	choosingPreset bool

	width    int
	height   int
	quitting bool
	started  bool

	// ui state
	helpVisible bool

	// keymap for consistent keybindings
	keys keyMap
}

// NewModel constructs a Model driving a. scr must be attached to the
// registry a paints on, and loop must be the scheduler a runs on.
func NewModel(a *app.App, loop *clock.Loop, scr *screen, simulate *Simulation) Model {
	in := textinput.New()
	in.Placeholder = "Type a wish and press enter…"
	in.CharLimit = inputCharLimit
	in.Prompt = "✎ "
	in.Focus()

	t := a.Theme()
	return Model{
		app:      a,
		loop:     loop,
		screen:   scr,
		simulate: simulate,
		input:    in,
		help:     help.New(),
		progress: progress.New(progress.WithGradient(t.Gradient[0], t.Gradient[1]), progress.WithoutPercentage()),
		presets:  newPresetList(nil, theme.Color(t.Colors.PrimaryPink)),
		width:    defaultWidth,
		height:   defaultHeight,
		keys:     newKeyMap(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		func() tea.Msg { return startMsg{} },
		m.tickFrame(),
	)
}

// tickFrame schedules the next animation frame.
func (m Model) tickFrame() tea.Cmd {
	return tea.Tick(frameInterval, func(time.Time) tea.Msg { return frameMsg{} })
}

func (m Model) log() *logrus.Entry { return logrus.WithField("component", "tui") }
