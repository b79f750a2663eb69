package analysis

import (
	"strings"
	"testing"

	"github.com/Veraticus/segregate/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestCLIFormatter_FormatView(t *testing.T) {
	formatter := NewCLIFormatter().WithMarkdown(NewMarkdownRenderer(80, "notty"))
	a := Analyze(sampleTable(t))

	tests := []struct {
		view     View
		contains []string
	}{
		{
			view:     ViewGeneral,
			contains: []string{"Vista General", "Total Registros", "Distribución por Tipo de Residuo", "Estado de Recipientes", "2025-03-03", "09:00"},
		},
		{
			view:     ViewWaste,
			contains: []string{"Recipiente Recomendado", "BIOSANITARIOS", "33.33", "Residuos Peligrosos Detectados", "CORTOPUNZANTES", "Residuos por Área", "LABORATORIO"},
		},
		{
			view:     ViewAreas,
			contains: []string{"% Incidentes", "ODONTOLOGIA", "Personal por Área", "marta"},
		},
		{
			view:     ViewIncidents,
			contains: []string{"ALERTA:", "Se detectaron 3 incidentes (50.0% de registros)", "Detalle de Incidentes", "FALTA DE BOLSA", "Plan de Acción Inmediata", "Auditorías semanales"},
		},
		{
			view:     ViewPredictions,
			contains: []string{"PROPUESTA", "Precisión Actual", "66.7%", "Color Usado", "Tipos a Revisar", "PAPEL", "Sin sugerencia", "Cumplimiento Normativo", "HARDWARE", "ROI esperado"},
		},
		{
			view:     ViewComparisons,
			contains: []string{"Usuarios vs Incidentes", "luis", "Correlación Tipo Residuo vs Estado Recipiente", "NO REGISTRADO", "Evolución Temporal"},
		},
	}

	for _, tt := range tests {
		t.Run(string(tt.view), func(t *testing.T) {
			out := formatter.FormatView(tt.view, a)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestCLIFormatter_EdgeCases(t *testing.T) {
	formatter := NewCLIFormatter()

	assert.Contains(t, formatter.FormatView(ViewGeneral, nil), "No data loaded")
	assert.Contains(t, formatter.FormatView(ViewGeneral, Analyze(model.Table{})), "No records match")
	assert.Contains(t, formatter.FormatView(View("charts"), Analyze(sampleTable(t))), "Unknown view")

	calm := model.Table{Records: []model.Record{{User: "ana", WasteType: model.WasteSharps, IncidentKind: model.IncidentNone}}}
	assert.Contains(t, formatter.FormatView(ViewIncidents, Analyze(calm)), "No hay incidentes registrados")
	assert.Contains(t, formatter.FormatView(ViewPredictions, Analyze(calm)), "Predicciones no disponibles")
}

func TestCLIFormatter_Table(t *testing.T) {
	formatter := NewCLIFormatter()
	out := formatter.table([]string{"A", "Bee"}, [][]string{{"long value", "1"}, {"x"}})

	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "long value  1", lines[1])
	assert.Equal(t, "x", lines[2])
}

func TestStyles(t *testing.T) {
	s := NewStyles()

	assert.Equal(t, "██████░░░░", s.RenderBar(3, 5, 10))
	assert.Equal(t, "░░░░░", s.RenderBar(3, 0, 5))
	assert.Equal(t, strings.Repeat("█", 30), s.RenderBar(9, 3, 0))

	narrow := s.WithWidth(60)
	assert.NotSame(t, s, narrow)
}

func TestMarkdownRenderer(t *testing.T) {
	r := NewMarkdownRenderer(60, "notty")
	out := r.Render(QRSpecification)
	assert.Contains(t, out, "HARDWARE")
	assert.Contains(t, out, "GUARDIAN")

	var missing *MarkdownRenderer
	assert.Equal(t, "plain", missing.Render("plain"))
}
