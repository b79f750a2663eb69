package config

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/segregate/internal/classification"
	"github.com/Veraticus/segregate/internal/common"
	"github.com/spf13/viper"
)

// DefaultExportDir is used when export.dir is not configured.
const DefaultExportDir = "."

// LoadRules returns the rule set named by rules.path, or the built-in rules
// when the key is unset.
func LoadRules(v *viper.Viper) (classification.RuleSet, error) {
	path := v.GetString("rules.path")
	if path == "" {
		return classification.DefaultRuleSet(), nil
	}

	path = ExpandPath(path)
	rules, err := classification.LoadRuleSet(path)
	if err != nil {
		return classification.RuleSet{}, common.NewUserError(
			fmt.Sprintf("Could not load rules from %s", path), err)
	}

	slog.Debug("loaded rules file", "path", path)
	return rules, nil
}

// ExportDir returns the configured export directory.
func ExportDir(v *viper.Viper) string {
	if dir := v.GetString("export.dir"); dir != "" {
		return ExpandPath(dir)
	}
	return DefaultExportDir
}
