package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatHelpers(t *testing.T) {
	tests := []struct {
		name   string
		format func(string) string
		icon   string
	}{
		{name: "success", format: FormatSuccess, icon: SuccessIcon},
		{name: "error", format: FormatError, icon: ErrorIcon},
		{name: "warning", format: FormatWarning, icon: WarningIcon},
		{name: "info", format: FormatInfo, icon: InfoIcon},
		{name: "title", format: FormatTitle, icon: HospitalIcon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.format("registros cargados")
			assert.Contains(t, out, tt.icon)
			assert.Contains(t, out, "registros cargados")
		})
	}
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "0", FormatCount(0))
	assert.Equal(t, "999", FormatCount(999))
	assert.Equal(t, "12,345", FormatCount(12345))
}

func TestRenderBox(t *testing.T) {
	out := RenderBox("Resumen", "Total de Registros: 10")
	assert.Contains(t, out, "Resumen")
	assert.Contains(t, out, "Total de Registros: 10")
	assert.Greater(t, strings.Count(out, "\n"), 2)
}

func TestLoadProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewLoadProgress(&buf, "Cargando registros")

	p.Update(0, 0)
	assert.Nil(t, p.bar, "no bar without a total")

	p.Update(5, 10)
	p.Update(10, 10)
	p.Finish()
	assert.Contains(t, buf.String(), "Cargando registros")

	idle := NewLoadProgress(&bytes.Buffer{}, "idle")
	idle.Finish()
	assert.Nil(t, idle.bar)
}
