package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Veraticus/segregate/internal/classification"
	"github.com/Veraticus/segregate/internal/common"
	"github.com/Veraticus/segregate/internal/model"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearSheetsEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH",
		"GOOGLE_SHEETS_CLIENT_ID",
		"GOOGLE_SHEETS_CLIENT_SECRET",
		"GOOGLE_SHEETS_REFRESH_TOKEN",
		"GOOGLE_SHEETS_SPREADSHEET_ID",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadSheetsConfig(t *testing.T) {
	clearSheetsEnv(t)
	t.Setenv("HOME", "/home/nurse")

	v := viper.New()
	v.Set("sheets.service_account_path", "~/keys/sa.json")
	v.Set("sheets.spreadsheet_id", "abc123")
	v.Set("sheets.source_range", "Respuestas!A:K")

	cfg, err := LoadSheetsConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "/home/nurse/keys/sa.json", cfg.ServiceAccountPath)
	assert.Equal(t, "abc123", cfg.SpreadsheetID)
	assert.Equal(t, "Respuestas!A:K", cfg.SourceRange)
	assert.Equal(t, "Gestión de Residuos", cfg.SpreadsheetName)
}

func TestLoadSheetsConfig_EnvironmentFallback(t *testing.T) {
	clearSheetsEnv(t)
	t.Setenv("GOOGLE_SHEETS_CLIENT_ID", "client")
	t.Setenv("GOOGLE_SHEETS_CLIENT_SECRET", "secret")
	t.Setenv("GOOGLE_SHEETS_REFRESH_TOKEN", "refresh")
	t.Setenv("GOOGLE_SHEETS_SPREADSHEET_ID", "from-env")

	v := viper.New()
	v.Set("sheets.spreadsheet_id", "from-viper")

	cfg, err := LoadSheetsConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "client", cfg.ClientID)
	assert.Equal(t, "from-viper", cfg.SpreadsheetID)
	assert.Equal(t, "A:Z", cfg.SourceRange)
}

func TestLoadSheetsConfig_NoCredentials(t *testing.T) {
	clearSheetsEnv(t)

	_, err := LoadSheetsConfig(viper.New())
	assert.ErrorIs(t, err, common.ErrMissingConfig)
}

func TestLoadRules(t *testing.T) {
	t.Run("defaults when unset", func(t *testing.T) {
		rules, err := LoadRules(viper.New())
		require.NoError(t, err)
		assert.Equal(t, classification.DefaultRuleSet(), rules)
	})

	t.Run("file overrides incidents", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rules.yaml")
		require.NoError(t, os.WriteFile(path, []byte("incidents:\n  - pattern: FUGA\n    kind: DERRAME\n"), 0o600))

		v := viper.New()
		v.Set("rules.path", path)
		rules, err := LoadRules(v)
		require.NoError(t, err)
		require.Len(t, rules.Incidents, 1)
		assert.Equal(t, model.IncidentSpill, rules.Incidents[0].Kind)
		assert.Equal(t, classification.DefaultRuleSet().Containers, rules.Containers)
	})

	t.Run("missing file", func(t *testing.T) {
		v := viper.New()
		v.Set("rules.path", filepath.Join(t.TempDir(), "absent.yaml"))
		_, err := LoadRules(v)
		require.Error(t, err)
		assert.Contains(t, common.UserMessage(err), "Could not load rules")
	})
}

func TestExportDir(t *testing.T) {
	assert.Equal(t, DefaultExportDir, ExportDir(viper.New()))

	t.Setenv("REPORTS", "/srv/reports")
	v := viper.New()
	v.Set("export.dir", "$REPORTS/residuos")
	assert.Equal(t, "/srv/reports/residuos", ExportDir(v))
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/nurse")
	t.Setenv("DATA", "/data")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", "/home/nurse"},
		{"~/log.csv", "/home/nurse/log.csv"},
		{"$DATA/log.csv", "/data/log.csv"},
		{"relative/log.csv", "relative/log.csv"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExpandPath(tt.in), tt.in)
	}
}
