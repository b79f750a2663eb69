package tui

import (
	"github.com/Veraticus/segregate/internal/export"
	tea "github.com/charmbracelet/bubbletea"
)

// exportCSV writes the filtered records as they are shown.
func (m Model) exportCSV() tea.Cmd {
	table := m.session.View(m.filter)
	writer := export.NewWriter(m.exportDir)
	return func() tea.Msg {
		path, err := writer.WriteCSV(table)
		return exportedMsg{kind: "CSV", path: path, err: err}
	}
}

// exportReport writes the text report of the filtered records.
func (m Model) exportReport() tea.Cmd {
	table := m.session.View(m.filter)
	writer := export.NewWriter(m.exportDir)
	return func() tea.Msg {
		path, err := writer.WriteReport(table)
		return exportedMsg{kind: "Reporte", path: path, err: err}
	}
}
