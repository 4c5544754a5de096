package tui

import (
	"bytes"
	"context"
	"math/rand"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ensigniasec/spring-countdown/internal/clock"
	"github.com/ensigniasec/spring-countdown/internal/danmaku"
	"github.com/ensigniasec/spring-countdown/internal/surface"
	"github.com/ensigniasec/spring-countdown/internal/theme"
)

var (
	testStart  = time.Date(2026, 2, 10, 12, 0, 0, 0, time.Local)
	testTarget = time.Date(2026, 2, 17, 0, 0, 0, 0, time.Local)
)

func newTestModel(t *testing.T) (Model, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(testStart)
	reg := surface.NewRegistry()
	scr := newScreen(clk.Now)
	scr.attach(reg)
	a := newApp(Options{
		Target:  testTarget,
		Danmaku: danmaku.DefaultConfig(),
		Rand:    rand.New(rand.NewSource(7)),
	}, clk, reg)
	return NewModel(a, nil, scr, nil), clk
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return m
}

func TestStartPaintsCountdown(t *testing.T) {
	m, clk := newTestModel(t)
	m, _ = update(t, m, startMsg{})
	clk.Advance(0)

	require.True(t, m.screen.painted)
	assert.Equal(t, [4]int{6, 12, 0, 0}, m.screen.values)
	assert.Contains(t, m.View(), "Days")

	// A second start is ignored.
	m, _ = update(t, m, startMsg{})
	assert.True(t, m.started)
}

func TestSendFromInput(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(t, m, "  happy new year  ")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, m.screen.comments, 1)
	assert.Equal(t, "happy new year", m.screen.comments[0].entity.Text)
	assert.Empty(t, m.input.Value())
	assert.Equal(t, []string{"happy new year"}, m.app.History.Presets())
}

func TestBlankInputIsKept(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(t, m, "   ")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Empty(t, m.screen.comments)
	assert.Equal(t, "   ", m.input.Value())
}

func TestFrameFinishesComments(t *testing.T) {
	m, clk := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyF1})
	require.Len(t, m.screen.comments, 1)
	assert.Equal(t, 1, m.app.Danmaku.Len())

	m, cmd := update(t, m, frameMsg{})
	assert.NotNil(t, cmd)
	assert.Len(t, m.screen.comments, 1)

	clk.Advance(time.Minute)
	m, _ = update(t, m, frameMsg{})
	assert.Empty(t, m.screen.comments)
	assert.Zero(t, m.app.Danmaku.Len())
}

func TestThemeKeys(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'2'}, Alt: true})

	want, ok := theme.At(2)
	require.True(t, ok)
	assert.Equal(t, want, m.app.CurrentSettings().Theme)
	require.Len(t, m.screen.toasts, 1)
	assert.Contains(t, m.screen.toasts[0].Message, m.app.Theme().Name)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}, Alt: true})
	assert.Equal(t, theme.Next(want), m.app.CurrentSettings().Theme)
}

func TestPresetPicker(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(t, m, "see you soon")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlP})
	require.True(t, m.choosingPreset)
	assert.Contains(t, m.View(), "Saved comments")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.choosingPreset)
	assert.Equal(t, "see you soon", m.input.Value())
}

func TestMouse(t *testing.T) {
	m, _ := newTestModel(t)
	press := tea.MouseMsg{X: 10, Y: titleRow + 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}

	m, _ = update(t, m, press)
	m, _ = update(t, m, press)
	assert.True(t, m.app.MouseFollow(), "double click toggles sparkles")

	title := tea.MouseMsg{X: 10, Y: titleRow, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	for range 4 {
		m, _ = update(t, m, title)
	}
	assert.True(t, m.app.MouseFollow(), "title clicks do not count as backdrop clicks")
}

func TestFocusAndBlur(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, startMsg{})
	m, _ = update(t, m, tea.BlurMsg{})
	assert.True(t, m.app.Blurred())
	assert.Contains(t, m.View(), "paused")

	m, _ = update(t, m, tea.FocusMsg{})
	assert.False(t, m.app.Blurred())
}

func TestReachedView(t *testing.T) {
	sim := &Simulation{Seconds: 2}
	m, clk := newTestModel(t)
	m.simulate = sim
	m, _ = update(t, m, startMsg{})
	clk.Advance(3 * time.Second)

	assert.NotEmpty(t, m.screen.reachedText)
	assert.Contains(t, m.View(), m.screen.reachedText)
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.True(t, m.quitting)
	assert.True(t, m.app.Closed())

	// Callbacks that arrive after quitting are dropped.
	ran := false
	_, _ = update(t, m, runMsg{fn: func() { ran = true }})
	assert.False(t, ran)
}

func TestComposeRow(t *testing.T) {
	plain := func(s string) string { return s }
	tests := []struct {
		name  string
		items []laneItem
		width int
		want  string
	}{
		{"empty", nil, 10, ""},
		{"offset", []laneItem{{x: 3, text: "abc", style: plain}}, 10, "   abc"},
		{"clipped right", []laneItem{{x: 8, text: "abcd", style: plain}}, 10, "        ab"},
		{"clipped left", []laneItem{{x: -2, text: "abcd", style: plain}}, 10, "cd"},
		{"overlap", []laneItem{{x: 2, text: "xyz", style: plain}, {x: 0, text: "abcd", style: plain}}, 10, "abcdz"},
		{"off screen", []laneItem{{x: 12, text: "a", style: plain}, {x: -5, text: "ab", style: plain}}, 10, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, composeRow(tc.items, tc.width))
		})
	}
}

func TestKeyNumber(t *testing.T) {
	n, ok := keyNumber("alt+3", "alt+")
	assert.True(t, ok)
	assert.Equal(t, 3, n)

	n, ok = keyNumber("f10", "f")
	assert.True(t, ok)
	assert.Equal(t, 10, n)

	_, ok = keyNumber("ctrl+p", "f")
	assert.False(t, ok)
}

func TestRunPlain(t *testing.T) {
	in := strings.NewReader("hello there\n/history\n")
	var out bytes.Buffer

	err := RunPlain(context.Background(), Options{
		Target:  time.Now().Add(48 * time.Hour),
		Danmaku: danmaku.DefaultConfig(),
		Rand:    rand.New(rand.NewSource(1)),
	}, in, &out)
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, plainHelp)
	assert.Contains(t, got, "⏳ ")
	assert.Contains(t, got, "💬 hello there")
	assert.Contains(t, got, "[user]  hello there")
}
