package tui

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/ensigniasec/spring-countdown/internal/danmaku"
	"github.com/ensigniasec/spring-countdown/internal/theme"
	"github.com/ensigniasec/spring-countdown/internal/toast"
)

const (
	titleText    = "🧧 Spring Festival Countdown 🐴"
	sparkleGlyph = "✨"
	bigFontSize  = 22
)

//nolint:gochecknoglobals // Static labels.
var unitLabels = [4]string{"Days", "Hours", "Minutes", "Seconds"}

func (m Model) View() string {
	if m.quitting {
		return "See you at the Spring Festival!\n"
	}
	t := m.app.Theme()
	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	header := m.renderHeader(t, width)
	footer := m.renderFooter(t, width)

	var middle string
	if m.choosingPreset {
		middle = lipgloss.NewStyle().Padding(0, 1).Render(m.presets.View())
	} else {
		lanes := max(laneMinHeight, m.height-lipgloss.Height(header)-lipgloss.Height(footer))
		middle = m.renderLanes(t, width, lanes)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, middle, footer)
}

// renderHeader renders the title, subtitle, countdown, final-minute progress
// and status rows. It must stay headerLines tall so mouse rows line up.
func (m Model) renderHeader(t theme.Theme, width int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)

	title := titleText
	if m.screen.celebrating {
		title = "🎉 " + title + " 🎉"
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.Color(t.Colors.PrimaryPink))
	subStyle := lipgloss.NewStyle().Italic(true).Foreground(theme.Color(t.Colors.Lavender))

	rows := []string{
		center.Render(titleStyle.Render(title)),
		center.Render(subStyle.Render(truncate(m.screen.subtitle, width))),
		"",
		center.Render(m.renderCountdown(t)),
		center.Render(m.renderFinalMinute(width)),
		center.Render(m.renderStatus(t)),
		"",
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderCountdown(t theme.Theme) string {
	if m.screen.reachedText != "" {
		return lipgloss.NewStyle().Bold(true).Blink(true).
			Foreground(theme.Color(t.Colors.PrimaryPink)).Render(m.screen.reachedText)
	}
	if !m.screen.painted {
		return lipgloss.NewStyle().Faint(true).Render("--")
	}

	value := lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(theme.Color(t.Colors.SoftBlue))
	if m.screen.urgent {
		value = value.Foreground(theme.Color(t.Colors.PrimaryPink))
	}
	pulse := value.Reverse(true)
	label := lipgloss.NewStyle().Foreground(theme.Color(t.Colors.TextLight))

	parts := make([]string, 0, len(unitLabels))
	for i, l := range unitLabels {
		s := value
		if m.screen.pulses[i] {
			s = pulse
		}
		parts = append(parts, s.Render(fmt.Sprintf("%02d", m.screen.values[i]))+label.Render(l))
	}
	return strings.Join(parts, "  ")
}

// renderFinalMinute shows how much of the last minute has gone by.
func (m Model) renderFinalMinute(width int) string {
	if !m.screen.urgent {
		return ""
	}
	left := m.app.Countdown.Snapshot().Total
	pct := 1 - float64(left)/float64(time.Minute)
	p := m.progress
	p.Width = min(width-4, presetListWidth)
	return p.ViewAs(max(0, min(1, pct)))
}

func (m Model) renderStatus(t theme.Theme) string {
	s := m.app.CurrentSettings()
	dim := lipgloss.NewStyle().Foreground(theme.Color(t.Colors.TextLight))
	items := []string{
		"♪ " + onOff(s.SoundEnabled),
		"✨ " + onOff(s.MouseFollowEnabled),
		"🎨 " + t.Name,
	}
	if m.app.Blurred() {
		items = append(items, "⏸ paused")
	}
	return dim.Render(strings.Join(items, " • "))
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// laneItem is one thing drawn on a lane row.
type laneItem struct {
	x     int
	text  string
	style func(string) string
}

// renderLanes draws the comments scrolling right to left plus the mouse
// sparkles. Lane rows are mapped from each comment's Top percentage.
func (m Model) renderLanes(t theme.Theme, width, height int) string {
	rows := make([][]laneItem, height)
	now := m.screen.now()
	for _, c := range m.screen.comments {
		row := min(height-1, max(0, c.entity.Top*height/100))
		w := ansi.StringWidth(c.entity.Text)
		x := width - int(c.progress(now)*float64(width+w))
		rows[row] = append(rows[row], laneItem{x: x, text: c.entity.Text, style: commentStyle(t, c.entity)})
	}
	glint := renderFunc(lipgloss.NewStyle().Foreground(theme.Color(t.Colors.Lilac)))
	for _, sp := range m.screen.sparkles {
		row := sp.y - headerLines
		if row < 0 || row >= height {
			continue
		}
		rows[row] = append(rows[row], laneItem{x: sp.x, text: sparkleGlyph, style: glint})
	}

	lines := make([]string, height)
	for i, items := range rows {
		lines[i] = composeRow(items, width)
	}
	return strings.Join(lines, "\n")
}

// composeRow lays items out left to right on one row of the given width. An
// item overlapping an earlier one is clipped on its left edge.
func composeRow(items []laneItem, width int) string {
	slices.SortFunc(items, func(a, b laneItem) int { return a.x - b.x })
	var b strings.Builder
	cursor := 0
	for _, it := range items {
		text := it.text
		w := ansi.StringWidth(text)
		if it.x+w <= cursor || it.x >= width {
			continue
		}
		x := it.x
		if x < cursor {
			text = ansi.TruncateLeft(text, cursor-x, "")
			x = cursor
		}
		text = ansi.Truncate(text, width-x, "")
		if text == "" {
			continue
		}
		b.WriteString(strings.Repeat(" ", x-cursor))
		b.WriteString(it.style(text))
		cursor = x + ansi.StringWidth(text)
	}
	return b.String()
}

// commentStyle maps a comment's style class to terminal attributes.
func commentStyle(t theme.Theme, e danmaku.Entity) func(string) string {
	base := lipgloss.NewStyle()
	if e.FontSize >= bigFontSize {
		base = base.Bold(true)
	}
	if e.Rotated {
		base = base.Italic(true)
	}
	c := t.Colors
	switch e.Kind {
	case danmaku.KindFirework:
		return renderFunc(base.Bold(true).Foreground(theme.Color(t.Gradient[0])))
	case danmaku.KindSparkle:
		return renderFunc(base.Foreground(theme.Color(c.Lilac)).Underline(true))
	case danmaku.KindRainbow:
		return rainbow(base, []string{c.PrimaryPink, c.SecondaryPink, c.Lavender, c.SoftBlue, c.SkyBlue})
	case danmaku.KindNone:
	}
	colors := map[string]string{
		"style-1": c.PrimaryPink,
		"style-2": c.SecondaryPink,
		"style-3": c.SoftBlue,
		"style-4": c.SkyBlue,
		"style-5": c.Lavender,
		"style-6": c.Lilac,
	}
	if hex, ok := colors[e.Style]; ok {
		base = base.Foreground(theme.Color(hex))
	}
	return renderFunc(base)
}

// renderFunc adapts a style's variadic Render to a func(string) string.
func renderFunc(st lipgloss.Style) func(string) string {
	return func(s string) string { return st.Render(s) }
}

// rainbow colors each rune with the next color of the cycle.
func rainbow(base lipgloss.Style, cycle []string) func(string) string {
	return func(s string) string {
		var b strings.Builder
		i := 0
		for _, r := range s {
			b.WriteString(base.Foreground(theme.Color(cycle[i%len(cycle)])).Render(string(r)))
			i++
		}
		return b.String()
	}
}

func (m Model) renderFooter(t theme.Theme, width int) string {
	rows := []string{m.renderToasts(t, width), m.input.View(), ""}
	h := m.help
	h.Width = width
	rows = append(rows, h.View(m.keys))
	return strings.Join(rows, "\n")
}

// renderToasts shows the active toasts newest first on one line.
func (m Model) renderToasts(t theme.Theme, width int) string {
	if len(m.screen.toasts) == 0 {
		return ""
	}
	parts := make([]string, 0, len(m.screen.toasts))
	for i := len(m.screen.toasts) - 1; i >= 0; i-- {
		ts := m.screen.toasts[i]
		parts = append(parts, toastStyle(t, ts.Severity).Render(ts.Severity.Icon()+" "+ts.Message))
	}
	return truncate(strings.Join(parts, " "), width)
}

func toastStyle(t theme.Theme, sev toast.Severity) lipgloss.Style {
	s := lipgloss.NewStyle().Padding(0, 1).Foreground(theme.Color(t.Colors.White))
	switch sev {
	case toast.Success:
		return s.Background(theme.Color(t.Colors.SoftBlue))
	case toast.Warning:
		return s.Background(theme.Color(t.Colors.SecondaryPink))
	case toast.Error:
		return s.Background(theme.Color(t.Colors.PrimaryPink)).Bold(true)
	case toast.Info:
	}
	return s.Background(theme.Color(t.Colors.Lavender))
}

// truncate cuts s to at most width terminal cells, ending with an ellipsis
// when something was cut.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "…")
}
