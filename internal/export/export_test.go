package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Veraticus/segregate/internal/classification"
	"github.com/Veraticus/segregate/internal/ingest"
	"github.com/Veraticus/segregate/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const source = "Marca temporal;1. USUARIO;2. ÁREA;3. TIPO DE RESIDUOS ;COLOR DEL RECIPIENTE;Columna 12;Columna 13;Correo\n" +
	"3/4/2025 10:15:00;ana;ODONTOLOGIA;BIOSANITARIOS;ROJO;VACIO (<25%);;ana@ese.gov.co\n" +
	"3/4/2025 11:00:00;ana;ODONTOLOGIA;BIOSANITARIOS;ROJO;;se encontró derrame y mal segregado;\n" +
	"3/5/2025 07:05:09;luis;URGENCIAS;CORTOPUNZANTES;GUARDIAN;LLENO (>75%);RECIPIENTE ROTO;luis@ese.gov.co\n" +
	"fecha rota;luis;;RESIDUOS APROVECHABLES;NEGRO;MEDIO (25% - 75%);\"falta de bolsa; urgente\";\n" +
	"3/6/2025 16:30:00;marta;LABORATORIO;PAPEL;BLANCO;VACIO (<25%);;\n"

func processedTable(t *testing.T, data []byte) model.Table {
	t.Helper()
	loaded, err := ingest.NewLoader().Load(context.Background(), bytes.NewReader(data), ingest.FormatCSV)
	require.NoError(t, err)

	engine, err := classification.NewEngine(classification.DefaultRuleSet())
	require.NoError(t, err)
	predicted, err := engine.Predict(engine.Process(loaded))
	require.NoError(t, err)
	return predicted
}

func TestCSV_RoundTrip(t *testing.T) {
	table := processedTable(t, []byte(source))

	data, err := CSV(table)
	require.NoError(t, err)

	again := processedTable(t, data)
	require.Equal(t, table.Len(), again.Len())
	assert.Equal(t, table.ExtraColumns, again.ExtraColumns)

	for i := range table.Records {
		want, got := table.Records[i], again.Records[i]
		assert.Equal(t, want.IncidentKind, got.IncidentKind, "row %d", i)
		assert.Equal(t, want.PredictedContainer(), got.PredictedContainer(), "row %d", i)
		assert.Equal(t, want.IsMismatch(), got.IsMismatch(), "row %d", i)
		assert.Equal(t, want.ContainerState, got.ContainerState, "row %d", i)
		assert.Equal(t, want.Observations, got.Observations, "row %d", i)
		assert.Equal(t, want.Extra, got.Extra, "row %d", i)
		if want.Timestamp == nil {
			assert.Nil(t, got.Timestamp, "row %d", i)
		} else {
			require.NotNil(t, got.Timestamp, "row %d", i)
			assert.True(t, want.Timestamp.Equal(*got.Timestamp), "row %d", i)
		}
	}
}

func TestCSV_Layout(t *testing.T) {
	table := processedTable(t, []byte(source))

	data, err := CSV(table)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 6)

	assert.Equal(t,
		"timestamp;usuario;area;tipo_residuo;color_recipiente;estado_recipiente;observaciones;Correo;fecha;hora;incidente;recipiente_predicho;es_incorrecto;tipo_sugerido",
		lines[0])
	assert.Equal(t,
		"03/04/2025 10:15:00;ana;ODONTOLOGIA;BIOSANITARIOS;ROJO;VACÍO;;ana@ese.gov.co;2025-03-04;10;NO;ROJO;False;",
		lines[1])
	assert.Contains(t, lines[2], ";DERRAME;ROJO;False;")
	assert.Contains(t, lines[4], "\"falta de bolsa; urgente\"")
	assert.Contains(t, lines[4], ";;;FALTA BOLSA;BLANCO;True;")
	assert.True(t, strings.HasSuffix(lines[5], ";16;NO;REVISAR;True;"), "no known type is close to PAPEL")
}

func TestCSV_WithoutPredictions(t *testing.T) {
	table := model.Table{Records: []model.Record{{User: "ana", WasteType: model.WasteSharps, IncidentKind: model.IncidentNone}}}

	header := Header(table)
	assert.NotContains(t, header, ingest.ColumnPredictedContainer)
	assert.NotContains(t, header, ingest.ColumnMismatch)
	assert.NotContains(t, header, ingest.ColumnSuggestedWasteType)

	rows := Rows(table)
	require.Len(t, rows, 2)
	assert.Len(t, rows[1], len(header))
}

func TestCSV_SuggestedWasteType(t *testing.T) {
	input := "timestamp;usuario;tipo_residuo;color_recipiente\n" +
		"03/04/2025 10:15:00;ana;CORTOPUNSANTES;GUARDIAN\n" +
		"03/04/2025 10:20:00;ana;CORTOPUNZANTES;GUARDIAN\n"
	table := processedTable(t, []byte(input))

	rows := Rows(table)
	require.Len(t, rows, 3)
	last := len(rows[0]) - 1
	assert.Equal(t, ingest.ColumnSuggestedWasteType, rows[0][last])
	assert.Equal(t, "CORTOPUNZANTES", rows[1][last])
	assert.Equal(t, "REVISAR", rows[1][last-2])
	assert.Equal(t, "", rows[2][last])

	data, err := CSV(table)
	require.NoError(t, err)
	again := processedTable(t, data)
	assert.Equal(t, "CORTOPUNZANTES", again.Records[0].SuggestedWasteType(), "suggestion is recomputed on re-ingest")
}

func TestFileName(t *testing.T) {
	now := time.Date(2025, 3, 9, 7, 4, 5, 0, time.UTC)
	assert.Equal(t, "residuos_20250309_070405.csv", FileName(CSVPrefix, "csv", now))
	assert.Equal(t, "reporte_20250309_070405.txt", FileName(ReportPrefix, "txt", now))
}

func TestWriter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	w := NewWriter(dir)
	w.now = func() time.Time { return time.Date(2025, 3, 9, 7, 4, 5, 0, time.UTC) }
	table := processedTable(t, []byte(source))

	csvPath, err := w.WriteCSV(table)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "residuos_20250309_070405.csv"), csvPath)
	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("timestamp;usuario;")))

	reportPath, err := w.WriteReport(table)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "reporte_20250309_070405.txt"), reportPath)
	report, err := os.ReadFile(reportPath)
	require.NoError(t, err)
	assert.Contains(t, string(report), "Fecha de Generación: 09/03/2025 07:04:05")
	assert.Contains(t, string(report), "Total de Registros: 5")
}
