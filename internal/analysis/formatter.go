package analysis

import (
	"fmt"
	"strings"

	"github.com/Veraticus/segregate/internal/cli"
	"github.com/Veraticus/segregate/internal/model"
	"github.com/charmbracelet/lipgloss"
)

const (
	barWidth        = 30
	detailTimestamp = "2006-01-02 15:04:05"
)

type actionPlan struct {
	title string
	steps []string
}

var actionPlans = map[model.IncidentKind]actionPlan{
	model.IncidentSegregation: {
		title: "1. SEGREGACIÓN INCORRECTA",
		steps: []string{
			"Implementar validación QR pre-depósito",
			"Capacitación urgente en clasificación",
			"Señalización visual en cada punto",
			"Auditorías semanales",
		},
	},
	model.IncidentMissingBag: {
		title: "2. FALTA DE BOLSA",
		steps: []string{
			"Garantizar stock permanente",
			"Reporte automático de niveles bajos",
			"Responsable por área",
		},
	},
}

// CLIFormatter renders analysis views for terminal display.
type CLIFormatter struct {
	styles   *Styles
	markdown *MarkdownRenderer
	width    int
}

// NewCLIFormatter creates a new CLI formatter with default styles.
func NewCLIFormatter() *CLIFormatter {
	return &CLIFormatter{
		styles: NewStyles(),
	}
}

// WithWidth returns a formatter laid out for the given terminal width.
func (f *CLIFormatter) WithWidth(width int) *CLIFormatter {
	return &CLIFormatter{
		styles:   f.styles.WithWidth(width),
		markdown: f.markdown,
		width:    width,
	}
}

// WithMarkdown sets the renderer used for markdown panels.
func (f *CLIFormatter) WithMarkdown(r *MarkdownRenderer) *CLIFormatter {
	return &CLIFormatter{
		styles:   f.styles,
		markdown: r,
		width:    f.width,
	}
}

// FormatView renders one view of an analysis.
func (f *CLIFormatter) FormatView(v View, a *Analysis) string {
	if a == nil {
		return f.styles.Error.Render("No data loaded")
	}
	if a.Metrics.Total == 0 {
		return f.styles.Warning.Render("No records match the current filters")
	}

	var body string
	switch v {
	case ViewGeneral:
		body = f.formatGeneral(a)
	case ViewWaste:
		body = f.formatWaste(a)
	case ViewAreas:
		body = f.formatAreas(a)
	case ViewIncidents:
		body = f.formatIncidents(a)
	case ViewPredictions:
		body = f.formatPredictions(a)
	case ViewComparisons:
		body = f.formatComparisons(a)
	default:
		return f.styles.Error.Render(fmt.Sprintf("Unknown view %q", v))
	}

	return f.styles.Title.Render(v.Title()) + "\n" + body
}

// FormatMetrics renders the summary metrics as a row of cards.
func (f *CLIFormatter) FormatMetrics(m Metrics) string {
	cards := []string{
		f.metricCard("Total Registros", cli.FormatCount(m.Total), f.styles.MetricValue),
		f.metricCard("Usuarios Activos", cli.FormatCount(m.UniqueUsers), f.styles.MetricValue),
		f.metricCard("Áreas Monitoreadas", cli.FormatCount(m.UniqueAreas), f.styles.MetricValue),
		f.metricCard("Incidentes",
			fmt.Sprintf("%s (%.1f%%)", cli.FormatCount(m.IncidentCount), m.IncidentPct),
			f.styles.ForIncidentPct(m.IncidentPct).Bold(true)),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (f *CLIFormatter) metricCard(label, value string, valueStyle lipgloss.Style) string {
	content := f.styles.MetricLabel.Render(label) + "\n" + valueStyle.Render(value)
	return f.styles.Box.Render(content)
}

func (f *CLIFormatter) formatGeneral(a *Analysis) string {
	sections := []string{
		f.FormatMetrics(a.Metrics),
		f.subtitle("Distribución por Tipo de Residuo") + f.formatBars(a.WasteTypeCounts),
		f.subtitle("Estado de Recipientes") + f.formatBars(a.StateCounts),
	}

	if len(a.Daily) > 0 {
		rows := make([][]string, 0, len(a.Daily))
		for _, d := range a.Daily {
			rows = append(rows, []string{d.Date.Format("2006-01-02"), cli.FormatCount(d.Records)})
		}
		sections = append(sections, f.subtitle("Registros en el Tiempo")+
			f.table([]string{"Fecha", "Cantidad"}, rows))
	}

	if len(a.Hourly) > 0 {
		counts := make([]Count, 0, len(a.Hourly))
		for _, h := range a.Hourly {
			counts = append(counts, Count{Label: fmt.Sprintf("%02d:00", h.Hour), Count: h.Count})
		}
		sections = append(sections, f.subtitle("Distribución por Hora del Día")+f.formatBars(counts))
	}

	return strings.Join(sections, "\n\n")
}

func (f *CLIFormatter) formatWaste(a *Analysis) string {
	rows := make([][]string, 0, len(a.WasteTypes))
	for _, w := range a.WasteTypes {
		rows = append(rows, []string{
			w.WasteType,
			cli.FormatCount(w.Count),
			cli.FormatCount(w.Incidents),
			w.Color,
			formatPct(w.PctTotal),
		})
	}

	sections := []string{
		f.table([]string{"Tipo Residuo", "Cantidad", "Incidentes", "Recipiente Recomendado", "% Total"}, rows),
		f.subtitle("Matriz: Tipo Residuo vs Incidente") + f.crosstab(a.WasteIncidents),
		f.subtitle("Residuos por Área") + f.crosstab(a.WasteAreas),
	}

	hazard := f.subtitle("Residuos Peligrosos Detectados")
	if len(a.Hazardous) == 0 {
		hazard += f.styles.Success.Render(cli.SuccessIcon + " Sin residuos peligrosos en la selección")
	} else {
		hazard += f.formatBars(a.Hazardous)
	}
	sections = append(sections, hazard)

	return strings.Join(sections, "\n\n")
}

func (f *CLIFormatter) formatAreas(a *Analysis) string {
	rows := make([][]string, 0, len(a.Areas))
	for _, r := range a.Areas {
		rows = append(rows, []string{
			r.Area,
			cli.FormatCount(r.Records),
			cli.FormatCount(r.Users),
			cli.FormatCount(r.Incidents),
			formatPct(r.PctIncidents),
		})
	}

	sections := []string{
		f.table([]string{"Área", "Registros", "Usuarios", "Incidentes", "% Incidentes"}, rows),
		f.subtitle("Distribución de Registros por Área") + f.formatBars(a.AreaCounts),
	}

	if len(a.Staff) > 0 {
		staff := make([][]string, 0, len(a.Staff))
		for _, s := range a.Staff {
			staff = append(staff, []string{s.Area, strings.Join(s.Users, ", ")})
		}
		sections = append(sections, f.subtitle("Personal por Área")+f.table([]string{"Área", "Usuarios"}, staff))
	}

	return strings.Join(sections, "\n\n")
}

func (f *CLIFormatter) formatIncidents(a *Analysis) string {
	if len(a.Incidents) == 0 {
		return f.styles.Success.Render(cli.SuccessIcon + " No hay incidentes registrados en el período actual")
	}

	alert := f.styles.AlertBox.Render(f.styles.Error.Bold(true).Render("ALERTA:") +
		fmt.Sprintf(" Se detectaron %d incidentes (%.1f%% de registros)", a.Metrics.IncidentCount, a.Metrics.IncidentPct))

	rows := make([][]string, 0, len(a.Incidents))
	for _, r := range a.Incidents {
		rows = append(rows, []string{string(r.Kind), cli.FormatCount(r.Count), formatPct(r.Pct)})
	}

	details := make([][]string, 0, len(a.IncidentDetails))
	for _, r := range a.IncidentDetails {
		ts := ""
		if r.Timestamp != nil {
			ts = r.Timestamp.Format(detailTimestamp)
		}
		details = append(details, []string{ts, r.User, r.Area, r.WasteType, string(r.IncidentKind), r.Observations})
	}

	sections := []string{
		alert,
		f.table([]string{"Tipo Incidente", "Cantidad", "% Total"}, rows),
		f.subtitle("Detalle de Incidentes") +
			f.table([]string{"Marca temporal", "Usuario", "Área", "Tipo Residuo", "Incidente", "Observaciones"}, details),
	}

	var plans []string
	for _, r := range a.Incidents {
		plan, ok := actionPlans[r.Kind]
		if !ok {
			continue
		}
		lines := []string{f.styles.Warning.Bold(true).Render(
			fmt.Sprintf("%s (%d incidentes, %s%%)", plan.title, r.Count, formatPct(r.Pct)))}
		for _, step := range plan.steps {
			lines = append(lines, "• "+step)
		}
		plans = append(plans, f.styles.NoticeBox.Render(strings.Join(lines, "\n")))
	}
	if len(plans) > 0 {
		sections = append(sections, f.subtitle("Plan de Acción Inmediata")+strings.Join(plans, "\n"))
	}

	return strings.Join(sections, "\n\n")
}

func (f *CLIFormatter) formatPredictions(a *Analysis) string {
	p := a.Predictions

	proposal := f.styles.ProposalBox.Render(
		f.styles.Success.Bold(true).Render(cli.SuccessIcon+" PROPUESTA: Clasificación Semiautomatizada con QR") + "\n" +
			"Cada contenedor con código QR personalizado para validación automática de tipo residuo y peso")

	sections := []string{proposal}

	if !p.Available {
		sections = append(sections, f.styles.Warning.Render(cli.WarningIcon+" Predicciones no disponibles para los datos cargados"))
	} else {
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
			f.metricCard("Precisión Actual", fmt.Sprintf("%.1f%%", p.AccuracyPct), f.styles.MetricValue),
			f.metricCard("Registros (30 días)", cli.FormatCount(p.Projected30Days), f.styles.MetricValue),
			f.metricCard("Incidentes Proyectados", cli.FormatCount(p.ProjectedIncidents), f.styles.ForIncidentPct(a.Metrics.IncidentPct)),
		))

		if len(p.Mismatches) > 0 {
			rows := make([][]string, 0, len(p.Mismatches))
			for _, m := range p.Mismatches {
				rows = append(rows, []string{m.WasteType, m.Color, cli.FormatCount(m.Count)})
			}
			sections = append(sections, f.subtitle("Clasificaciones Incorrectas (Tipo Residuo vs Color Usado)")+
				f.table([]string{"Tipo Residuo", "Color Usado", "Cantidad"}, rows))
		}

		if len(p.Review) > 0 {
			rows := make([][]string, 0, len(p.Review))
			for _, r := range p.Review {
				suggestion := r.Suggestion
				if suggestion == "" {
					suggestion = "Sin sugerencia"
				}
				rows = append(rows, []string{r.WasteType, suggestion, cli.FormatCount(r.Count)})
			}
			sections = append(sections, f.subtitle("Tipos a Revisar")+
				f.table([]string{"Tipo Registrado", "Tipo Sugerido", "Cantidad"}, rows))
		}

		impact := make([][]string, 0, len(p.Impact))
		for _, row := range p.Impact {
			impact = append(impact, []string{
				row.Metric,
				f.styles.Current.Render(fmt.Sprintf("%.2f", row.Current)),
				f.styles.Target.Render(fmt.Sprintf("%.2f", row.WithQR)),
			})
		}
		sections = append(sections, f.subtitle("Impacto Proyectado del Sistema QR")+
			f.table([]string{"Métrica", "Actual", "Con QR"}, impact))
	}

	sections = append(sections, f.subtitle("Especificaciones Técnicas del Sistema QR")+
		f.markdown.Render(QRSpecification))

	return strings.Join(sections, "\n\n")
}

func (f *CLIFormatter) formatComparisons(a *Analysis) string {
	rows := make([][]string, 0, len(a.Users))
	for _, u := range a.Users {
		rows = append(rows, []string{
			u.User,
			cli.FormatCount(u.Records),
			cli.FormatCount(u.Incidents),
			f.styles.ForIncidentPct(u.PctIncidents).Render(formatPct(u.PctIncidents)),
		})
	}

	sections := []string{
		f.subtitle("Usuarios vs Incidentes") +
			f.table([]string{"Usuario", "Registros", "Incidentes", "% Incidentes"}, rows),
		f.subtitle("Correlación Tipo Residuo vs Estado Recipiente") + f.crosstab(a.WasteStates),
	}

	if len(a.Daily) > 0 {
		daily := make([][]string, 0, len(a.Daily))
		for _, d := range a.Daily {
			daily = append(daily, []string{
				d.Date.Format("2006-01-02"),
				cli.FormatCount(d.Records),
				cli.FormatCount(d.Incidents),
				formatPct(d.PctIncidents),
			})
		}
		sections = append(sections, f.subtitle("Evolución Temporal")+
			f.table([]string{"Fecha", "Total Registros", "Incidentes", "% Incidentes"}, daily))
	}

	return strings.Join(sections, "\n\n")
}

func (f *CLIFormatter) subtitle(text string) string {
	return f.styles.Info.Bold(true).Render(text) + "\n"
}

// formatBars renders counts as horizontal bars scaled to the largest count.
func (f *CLIFormatter) formatBars(counts []Count) string {
	if len(counts) == 0 {
		return f.styles.Subtle.Render("Sin registros")
	}

	labelWidth, maxCount := 0, 0
	for _, c := range counts {
		labelWidth = max(labelWidth, lipgloss.Width(c.Label))
		maxCount = max(maxCount, c.Count)
	}

	lines := make([]string, 0, len(counts))
	for _, c := range counts {
		label := c.Label + strings.Repeat(" ", labelWidth-lipgloss.Width(c.Label))
		bar := f.styles.Bar.Render(f.styles.RenderBar(c.Count, maxCount, barWidth))
		lines = append(lines, fmt.Sprintf("%s  %s %s", label, bar, cli.FormatCount(c.Count)))
	}
	return strings.Join(lines, "\n")
}

// table renders rows under a header with columns padded to their widest cell.
func (f *CLIFormatter) table(headers []string, rows [][]string) string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(widths); i++ {
			widths[i] = max(widths[i], lipgloss.Width(row[i]))
		}
	}

	pad := func(cells []string, style *lipgloss.Style) string {
		parts := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			if style != nil {
				cell = style.Render(cell)
			}
			parts[i] = cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}

	lines := []string{pad(headers, &f.styles.TableHeader)}
	for _, row := range rows {
		lines = append(lines, pad(row, nil))
	}
	return strings.Join(lines, "\n")
}

func (f *CLIFormatter) crosstab(c Crosstab) string {
	if len(c.Rows) == 0 {
		return f.styles.Subtle.Render("Sin registros")
	}

	headers := append([]string{""}, c.Columns...)
	rows := make([][]string, 0, len(c.Rows))
	for i, r := range c.Rows {
		row := []string{r}
		for _, n := range c.Cells[i] {
			row = append(row, fmt.Sprint(n))
		}
		rows = append(rows, row)
	}
	return f.table(headers, rows)
}

func formatPct(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
