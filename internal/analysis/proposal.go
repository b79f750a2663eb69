package analysis

import (
	"log/slog"

	"github.com/charmbracelet/glamour"
)

// QRSpecification is the technical outline of the QR container system.
const QRSpecification = `**1. HARDWARE**
- Dispensadores QR en cada punto de generación de residuos
- Lectores QR portátiles para personal
- Impresoras para códigos personalizados por contenedor

**2. SOFTWARE**
- Base de datos: Contenedor ID → Tipo residuo → Capacidad máxima
- Validación: Tipo residuo + Peso actual → Volumen disponible
- Alertas: Si ocupación > 75%, generar orden de recolección
- Historial: Registro completo de cada contenedor

**3. LÓGICA DE REGLAS (Sin ML complejo)**
- IF tipo_residuo = CORTOPUNZANTES THEN recipiente_obligatorio = GUARDIAN
- IF ocupacion > 75% THEN alerta_recoleccion = TRUE
- IF tipo_residuo != recipiente_esperado THEN flag_segregacion = INCORRECTO
- IF peso > capacidad_max THEN alerta_peligro = TRUE

**4. IMPACTO ESTIMADO**
- ✓ Reducción incidentes segregación: 85%
- ✓ Optimización rutas recolección: 15-20%
- ✓ Cumplimiento normativo: +27%
- ✓ ROI esperado: 6 meses
`

// MarkdownRenderer renders markdown panels for the terminal.
type MarkdownRenderer struct {
	renderer *glamour.TermRenderer
}

// NewMarkdownRenderer creates a renderer wrapping at width. Style is a glamour
// style name such as "dark", "light" or "notty"; empty picks one from the terminal.
func NewMarkdownRenderer(width int, style string) *MarkdownRenderer {
	if width <= 0 {
		width = 80
	}

	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStylePath(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		slog.Debug("Markdown renderer unavailable", "error", err)
		return &MarkdownRenderer{}
	}
	return &MarkdownRenderer{renderer: r}
}

// Render renders markdown, returning it unchanged when rendering fails.
func (m *MarkdownRenderer) Render(markdown string) string {
	if m == nil || m.renderer == nil {
		return markdown
	}
	out, err := m.renderer.Render(markdown)
	if err != nil {
		slog.Debug("Failed to render markdown", "error", err)
		return markdown
	}
	return out
}
