package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/segregate/internal/classification"
	"github.com/Veraticus/segregate/internal/common"
	"github.com/Veraticus/segregate/internal/model"
	"github.com/Veraticus/segregate/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wasteLog = "Marca temporal;1. USUARIO;2. ÁREA;3. TIPO DE RESIDUOS ;COLOR DEL RECIPIENTE;Columna 12;Columna 13\n" +
	"3/4/2025 10:15:00;ana;ODONTOLOGIA;BIOSANITARIOS;ROJO;VACIO (<25%);\n" +
	"3/4/2025 11:00:00;ana;ODONTOLOGIA;BIOSANITARIOS;ROJO;;mal segregado\n" +
	"3/5/2025 07:05:09;luis;URGENCIAS;CORTOPUNZANTES;GUARDIAN;LLENO (>75%);RECIPIENTE ROTO\n" +
	"3/6/2025 16:30:00;marta;LABORATORIO;RESIDUOS QUIMICOS DE LABORATORIO CLINICO;ROJO;MEDIO (25% - 75%);\n"

func writeLog(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "registros.csv")
	require.NoError(t, os.WriteFile(path, []byte(wasteLog), 0o600))
	return path
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(viper.Reset)

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--no-progress"))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSummaryCommand_JSON(t *testing.T) {
	out, err := execute(t, summaryCmd(), writeLog(t), "--json")
	require.NoError(t, err)

	var got summaryOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "registros.csv", got.Source)
	assert.Equal(t, 4, got.Metrics.Total)
	assert.Equal(t, 2, got.Metrics.IncidentCount)
	assert.Equal(t, 50.0, got.Metrics.IncidentPct)
	assert.Equal(t, 1, got.Metrics.Quimicos)
	assert.Equal(t, 4, got.TotalLoaded)
	assert.True(t, got.PredictionsAvailable)
	assert.NotEmpty(t, got.SessionID)
}

func TestSummaryCommand_Filters(t *testing.T) {
	out, err := execute(t, summaryCmd(), writeLog(t), "--json", "--area", "ODONTOLOGIA", "--area", "URGENCIAS", "--waste-type", "BIOSANITARIOS")
	require.NoError(t, err)

	var got summaryOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 2, got.Metrics.Total)
	assert.Equal(t, []string{"ODONTOLOGIA", "URGENCIAS"}, got.Areas)
	assert.Equal(t, 4, got.TotalLoaded)
}

func TestSummaryCommand_Text(t *testing.T) {
	out, err := execute(t, summaryCmd(), writeLog(t))
	require.NoError(t, err)
	assert.Contains(t, out, "Total de Registros:     4")
	assert.Contains(t, out, "Incidentes Detectados:  2 (50.00%)")
}

func TestDataCommands_Errors(t *testing.T) {
	tests := []struct {
		wantErr error
		name    string
		args    []string
	}{
		{name: "no source", args: nil, wantErr: common.ErrNoSession},
		{name: "unsupported file", args: []string{"registros.ods"}, wantErr: common.ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, summaryCmd(), tt.args...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)

			var userErr *common.UserError
			assert.ErrorAs(t, err, &userErr)
		})
	}
}

func TestViewCommand(t *testing.T) {
	out, err := execute(t, viewCmd(), writeLog(t), "--tab", "incidentes")
	require.NoError(t, err)
	assert.Contains(t, out, "Incidentes")
	assert.Contains(t, out, "RECIPIENTE ROTO")

	_, err = execute(t, viewCmd(), writeLog(t), "--tab", "mapa")
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestReportCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, reportCmd(), writeLog(t), "-o", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Report saved to")

	files, err := filepath.Glob(filepath.Join(dir, "reporte_*.txt"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "Total de Registros: 4")
}

func TestReportCommand_Print(t *testing.T) {
	out, err := execute(t, reportCmd(), writeLog(t), "--print", "--area", "URGENCIAS")
	require.NoError(t, err)
	assert.Contains(t, out, "Total de Registros: 1")
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, exportCmd(), writeLog(t), "-o", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 4 records")

	files, err := filepath.Glob(filepath.Join(dir, "residuos_*.csv"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 5)
	assert.True(t, strings.HasSuffix(lines[0], ";recipiente_predicho;es_incorrecto;tipo_sugerido"))
}

func TestExportCommand_ConfiguredDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exportes")
	viper.Set("export.dir", dir)

	_, err := execute(t, exportCmd(), writeLog(t))
	require.NoError(t, err)

	files, err := filepath.Glob(filepath.Join(dir, "residuos_*.csv"))
	require.NoError(t, err)
	assert.Len(t, files, 1)
}

func TestPublish(t *testing.T) {
	mock := sheets.NewMockWriter()
	table := model.Table{Records: []model.Record{{User: "ana"}}}

	id, err := publish(context.Background(), mock, table)
	require.NoError(t, err)
	assert.Equal(t, "mock-spreadsheet", id)
	assert.Equal(t, 1, mock.LastTable.Len())

	mock.SetWriteError(common.ErrSheetsUnavailable)
	_, err = publish(context.Background(), mock, table)
	assert.ErrorIs(t, err, common.ErrSheetsUnavailable)
}

func TestRulesCommand(t *testing.T) {
	cmd := rulesCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	text := out.String()
	assert.Contains(t, text, "MAL SEGREGADO")
	assert.Contains(t, text, "CORTOPUNZANTES")
	assert.Contains(t, text, "last one listed wins")
}

func TestRulesCommand_YAML(t *testing.T) {
	cmd := rulesCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--yaml"})
	require.NoError(t, cmd.Execute())

	rules, err := classification.DecodeRuleSet(&out)
	require.NoError(t, err)
	assert.Equal(t, classification.DefaultRuleSet(), rules)
}

func TestVersionCommand(t *testing.T) {
	cmd := versionCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "segregate dev\n", out.String())
}
