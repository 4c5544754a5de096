package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// presetItem is the list item backing a saved comment preset.
type presetItem struct {
	Text string
}

// List item interface methods.
func (it presetItem) Title() string       { return it.Text }
func (it presetItem) Description() string { return "" }
func (it presetItem) FilterValue() string { return it.Text }

// presetsDelegate renders presetItem rows as a numbered single-line list.
type presetsDelegate struct {
	accent lipgloss.Color
}

func (d presetsDelegate) Height() int                             { return 1 }
func (d presetsDelegate) Spacing() int                            { return 0 }
func (d presetsDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d presetsDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	it, ok := listItem.(presetItem)
	if !ok {
		return
	}
	prefix := "  "
	lineStyle := lipgloss.NewStyle()
	if index == m.Index() {
		prefix = "> "
		lineStyle = lineStyle.Foreground(d.accent).Bold(true)
	}
	line := fmt.Sprintf("%s%02d. %s", prefix, index+1, it.Text)
	_, _ = fmt.Fprint(w, lineStyle.Render(truncate(line, m.Width())))
}

// newPresetList builds the filterable preset picker.
func newPresetList(presets []string, accent lipgloss.Color) list.Model {
	items := make([]list.Item, 0, len(presets))
	for _, p := range presets {
		items = append(items, presetItem{Text: p})
	}
	lst := list.New(items, presetsDelegate{accent: accent}, presetListWidth, presetListRows)
	lst.Title = "Saved comments"
	lst.SetShowStatusBar(true)
	lst.SetFilteringEnabled(true)
	lst.SetShowHelp(false)
	lst.SetShowPagination(true)
	lst.SetStatusBarItemName("preset", "presets")
	return lst
}
