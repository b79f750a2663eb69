package analysis

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Veraticus/segregate/internal/model"
)

// Institution is the facility named in report headers.
const Institution = "ESE Centro de Salud San Juan de Dios - Pital, Huila"

// ReportTimeLayout is the generation time layout of the text report.
const ReportTimeLayout = "02/01/2006 15:04:05"

const ruleWidth = 80

// Recommendations are the fixed recommendations printed in every report.
var Recommendations = []string{
	"SEGREGACIÓN: Implementar validación QR pre-depósito (reducción esperada: 85%)",
	"CAPACITACIÓN: Reforzar clasificación en Odontología (78.75% de registros)",
	"CORTOPUNZANTES: 100% en contenedores GUARDIAN con protocolo bioseguridad",
	"MONITOREO: Auditorías semanales de segregación",
	"RECIPIENTES: Garantizar disponibilidad permanente de bolsas",
}

// QRProposal lists the capabilities of the proposed QR container system.
var QRProposal = []string{
	"Cada contenedor con código QR personalizado",
	"Validación automática: tipo residuo + peso + recipiente",
	"Alerta si > 75% llenado",
	"Historial trazable por contenedor",
	"Predicción de recolección necesaria",
}

// EstimatedImpact holds the narrative impact figures of the QR proposal.
// They are fixed figures, not projections from the data.
var EstimatedImpact = []string{
	"Reducción de incidentes de segregación: 85%",
	"Aumento de precisión clasificación: +27%",
	"Optimización rutas recolección: 15-20%",
	"Cumplimiento normativo: 98%",
}

// Report renders the plain-text analysis report of a processed table.
func Report(t model.Table, m Metrics, generatedAt time.Time) string {
	var b strings.Builder
	heavy := strings.Repeat("=", ruleWidth)
	light := strings.Repeat("-", ruleWidth)

	b.WriteString("\n")
	b.WriteString("REPORTE DE ANÁLISIS - GESTIÓN DE RESIDUOS HOSPITALARIOS\n")
	b.WriteString(Institution + "\n")
	fmt.Fprintf(&b, "Fecha de Generación: %s\n", generatedAt.Format(ReportTimeLayout))
	b.WriteString(heavy + "\n\n")

	section(&b, "RESUMEN EJECUTIVO", light)
	fmt.Fprintf(&b, "Total de Registros: %d\n", m.Total)
	fmt.Fprintf(&b, "Usuarios Activos: %d\n", m.UniqueUsers)
	fmt.Fprintf(&b, "Áreas Monitoreadas: %d\n", m.UniqueAreas)
	fmt.Fprintf(&b, "Incidentes Detectados: %d (%.2f%%)\n", m.IncidentCount, m.IncidentPct)
	fmt.Fprintf(&b, "Residuos Biosanitarios: %d (%.2f%%)\n", m.Biosanitarios, m.BiosanitariosPct())
	fmt.Fprintf(&b, "Residuos Químicos: %d (%.2f%%)\n\n", m.Quimicos, m.QuimicosPct())

	section(&b, "ANÁLISIS DETALLADO", light)
	b.WriteString("Distribución por Tipo de Residuo:\n")
	b.WriteString(FormatCounts(WasteTypeCounts(t)) + "\n\n")
	b.WriteString("Distribución por Área:\n")
	b.WriteString(FormatCounts(AreaCounts(t)) + "\n\n")
	b.WriteString("Incidentes Registrados:\n")
	b.WriteString(FormatCounts(IncidentCounts(t)) + "\n\n")
	b.WriteString("Estado de Recipientes:\n")
	b.WriteString(FormatCounts(StateCounts(t)) + "\n\n")

	section(&b, "RECOMENDACIONES", light)
	for i, rec := range Recommendations {
		fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
	}
	b.WriteString("\n")

	section(&b, "PROPUESTA QR SEMIAUTOMATIZADA", light)
	for _, item := range QRProposal {
		fmt.Fprintf(&b, "✓ %s\n", item)
	}
	b.WriteString("\n")

	section(&b, "IMPACTO ESTIMADO", light)
	for _, line := range EstimatedImpact {
		b.WriteString(line + "\n")
	}

	return b.String()
}

func section(b *strings.Builder, title, rule string) {
	b.WriteString(title + "\n")
	b.WriteString(rule + "\n")
}

// FormatCounts renders a frequency table as aligned "label  count" lines.
func FormatCounts(counts []Count) string {
	if len(counts) == 0 {
		return "Sin registros"
	}

	labelWidth, countWidth := 0, 0
	for _, c := range counts {
		labelWidth = max(labelWidth, utf8.RuneCountInString(c.Label))
		countWidth = max(countWidth, len(fmt.Sprint(c.Count)))
	}

	lines := make([]string, 0, len(counts))
	for _, c := range counts {
		pad := strings.Repeat(" ", labelWidth-utf8.RuneCountInString(c.Label))
		lines = append(lines, fmt.Sprintf("%s%s    %*d", c.Label, pad, countWidth, c.Count))
	}
	return strings.Join(lines, "\n")
}
