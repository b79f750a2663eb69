package main

import (
	"fmt"
	"strings"

	"github.com/Veraticus/segregate/internal/analysis"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func viewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [file]",
		Short: "Print one dashboard view",
		Long: fmt.Sprintf(`Render one of the dashboard views without the interactive interface.

Views: %s

Examples:
  segregate view registros.csv --tab incidentes
  segregate view --sheet-id 1AbC --tab predicciones --area URGENCIAS`, viewNames()),
		Args: cobra.MaximumNArgs(1),
		RunE: runView,
	}

	addDataFlags(cmd)
	cmd.Flags().String("tab", string(analysis.ViewGeneral), "view to render")
	cmd.Flags().Int("width", 100, "layout width in columns")

	return cmd
}

func viewNames() string {
	names := make([]string, 0, len(analysis.Views()))
	for _, v := range analysis.Views() {
		names = append(names, string(v))
	}
	return strings.Join(names, ", ")
}

func runView(cmd *cobra.Command, args []string) error {
	tab, _ := cmd.Flags().GetString("tab")
	view, err := analysis.ParseView(tab)
	if err != nil {
		return fmt.Errorf("choose one of %s: %w", viewNames(), err)
	}
	width, _ := cmd.Flags().GetInt("width")

	data, err := loadData(cmd, args)
	if err != nil {
		return err
	}

	a := analysis.Analyze(data.view())
	formatter := analysis.NewCLIFormatter().
		WithWidth(width).
		WithMarkdown(analysis.NewMarkdownRenderer(width, viper.GetString("output.markdown_style")))

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n%s\n", formatter.FormatMetrics(a.Metrics), formatter.FormatView(view, a))
	return err
}
