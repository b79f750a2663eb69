package tui

import (
	"slices"

	"github.com/Veraticus/segregate/internal/tui/themes"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// pickerField is the filter field a picker edits.
type pickerField int

const (
	pickAreas pickerField = iota
	pickWasteTypes
)

func (f pickerField) title() string {
	if f == pickAreas {
		return "Área"
	}
	return "Tipo de residuo"
}

// filterPicker is a multi-select list of the values of one filter field.
type filterPicker struct {
	counts   map[string]int
	labels   map[string]string
	options  []string
	selected []string
	table    table.Model
	field    pickerField
}

func newFilterPicker(field pickerField, options, selected []string, counts map[string]int, labels map[string]string, theme themes.Theme, height int) filterPicker {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "", Width: 3},
			{Title: field.title(), Width: 48},
			{Title: "Registros", Width: 10},
		}),
		table.WithFocused(true),
		table.WithHeight(max(3, min(len(options)+1, height))),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = theme.Selected
	t.SetStyles(s)

	p := filterPicker{
		field:    field,
		options:  options,
		selected: selected,
		counts:   counts,
		labels:   labels,
		table:    t,
	}
	p.refreshRows()
	return p
}

func (p *filterPicker) refreshRows() {
	rows := make([]table.Row, 0, len(p.options))
	for _, opt := range p.options {
		mark := " "
		if slices.Contains(p.selected, opt) {
			mark = "✓"
		}
		label := opt
		if prefix, ok := p.labels[opt]; ok {
			label = prefix + " " + opt
		}
		rows = append(rows, table.Row{mark, label, humanize.Comma(int64(p.counts[opt]))})
	}
	p.table.SetRows(rows)
}

// current returns the option under the cursor.
func (p filterPicker) current() (string, bool) {
	i := p.table.Cursor()
	if i < 0 || i >= len(p.options) {
		return "", false
	}
	return p.options[i], true
}

func (p filterPicker) Update(msg tea.Msg) (filterPicker, tea.Cmd) {
	var cmd tea.Cmd
	p.table, cmd = p.table.Update(msg)
	return p, cmd
}

func (p filterPicker) View() string {
	return p.table.View()
}
