package main

import (
	"github.com/Veraticus/segregate/internal/analysis"
	"github.com/Veraticus/segregate/internal/tui"
	"github.com/Veraticus/segregate/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard [file]",
		Short: "Open the interactive dashboard",
		Long: `Open the six-tab dashboard: general view, waste analysis, areas,
incidents, QR predictions and comparisons. Press a or w to filter by area or
waste type, Tab to change views and ? for all keys. Press e to export the
filtered records as CSV and p to save the text report.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDashboard,
	}

	addDataFlags(cmd)
	cmd.Flags().String("theme", "", "color theme (default, catppuccin-mocha)")
	cmd.Flags().StringP("output", "o", "", "directory for exports started with e and p (default: export.dir or the current directory)")
	_ = viper.BindPFlag("tui.theme", cmd.Flags().Lookup("theme"))

	return cmd
}

func runDashboard(cmd *cobra.Command, args []string) error {
	data, err := loadData(cmd, args)
	if err != nil {
		return err
	}

	return tui.Run(cmd.Context(), data.session,
		tui.WithFilter(data.filter),
		tui.WithRules(data.rules),
		tui.WithExportDir(outputDir(cmd)),
		tui.WithTheme(themes.GetTheme(viper.GetString("tui.theme"))),
		tui.WithMarkdown(analysis.NewMarkdownRenderer(100, viper.GetString("output.markdown_style"))),
	)
}
