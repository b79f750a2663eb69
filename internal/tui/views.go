package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/segregate/internal/analysis"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	if m.picker != nil {
		body = m.renderPicker()
	} else {
		body = m.content.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderTabs(),
		m.renderFilterLine(),
		body,
		m.renderStatusBar(),
		m.help.View(m.keymap),
	)
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, len(analysis.Views()))
	for i, v := range analysis.Views() {
		label := fmt.Sprintf("%d %s", i+1, v.Title())
		if i == m.tab {
			tabs = append(tabs, m.theme.ActiveTab.Render(label))
		} else {
			tabs = append(tabs, m.theme.InactiveTab.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderFilterLine() string {
	describe := func(values []string) string {
		if len(values) == 0 {
			return "todas"
		}
		return strings.Join(values, ", ")
	}

	line := fmt.Sprintf("Áreas: %s · Tipos: %s",
		describe(m.filter.Areas),
		describe(m.filter.WasteTypes))
	return m.theme.Subtitle.Render(line)
}

func (m Model) renderPicker() string {
	title := "Filtrar por área"
	if m.picker.field == pickWasteTypes {
		title = "Filtrar por tipo de residuo"
	}
	hint := m.theme.Subtitle.Render("Space para marcar · r para limpiar · Esc para volver")
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.theme.Title.Render(title),
		m.picker.View(),
		hint,
	)
	return m.theme.RoundedBox.Render(content)
}

func (m Model) renderStatusBar() string {
	visible := 0
	pct := 0.0
	if m.analysis != nil {
		visible = m.analysis.Metrics.Total
		pct = m.analysis.Metrics.IncidentPct
	}
	total := m.session.Processed().Len()

	parts := []string{
		fmt.Sprintf("%s de %s registros", humanize.Comma(int64(visible)), humanize.Comma(int64(total))),
		m.incidentStyle(pct).Render(fmt.Sprintf("%.1f%% incidentes", pct)),
	}
	if !m.session.PredictionsAvailable() {
		parts = append(parts, m.theme.StatusWarning.Render("predicciones no disponibles"))
	}
	parts = append(parts, m.session.Source)
	if m.status != "" {
		style := m.theme.StatusSuccess
		if m.statusErr {
			style = m.theme.StatusError
		}
		parts = append(parts, style.Render(m.status))
	}

	return m.theme.StatusBar.Width(max(0, m.width)).Render(strings.Join(parts, " │ "))
}

func (m Model) incidentStyle(pct float64) lipgloss.Style {
	switch {
	case pct >= 20:
		return m.theme.StatusError
	case pct >= 10:
		return m.theme.StatusWarning
	default:
		return m.theme.StatusSuccess
	}
}
