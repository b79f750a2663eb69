package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Veraticus/segregate/internal/analysis"
	"github.com/Veraticus/segregate/internal/cli"
	"github.com/spf13/cobra"
)

type summaryOutput struct {
	Source               string           `json:"source"`
	SessionID            string           `json:"session_id"`
	Areas                []string         `json:"areas,omitempty"`
	WasteTypes           []string         `json:"waste_types,omitempty"`
	Metrics              analysis.Metrics `json:"metrics"`
	TotalLoaded          int              `json:"total_loaded"`
	PredictionsAvailable bool             `json:"predictions_available"`
}

func summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary [file]",
		Short: "Show the summary metrics of a waste log",
		Long: `Load a waste log and print its summary metrics: records, active users,
monitored areas, incidents and the biosanitary and chemical totals.

Examples:
  # Summary of a CSV export of the form
  segregate summary registros.csv

  # Only two areas, as JSON
  segregate summary registros.xlsx --area URGENCIAS --area ODONTOLOGIA --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSummary,
	}

	addDataFlags(cmd)
	cmd.Flags().Bool("json", false, "print the metrics as JSON")

	return cmd
}

func runSummary(cmd *cobra.Command, args []string) error {
	data, err := loadData(cmd, args)
	if err != nil {
		return err
	}

	m := analysis.Compute(data.view())
	out := cmd.OutOrStdout()

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(summaryOutput{
			Source:               data.session.Source,
			SessionID:            data.session.ID.String(),
			Areas:                data.filter.Areas,
			WasteTypes:           data.filter.WasteTypes,
			Metrics:              m,
			TotalLoaded:          data.session.Processed().Len(),
			PredictionsAvailable: data.session.PredictionsAvailable(),
		})
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Total de Registros:     %s\n", cli.FormatCount(m.Total))
	fmt.Fprintf(&b, "Usuarios Activos:       %s\n", cli.FormatCount(m.UniqueUsers))
	fmt.Fprintf(&b, "Áreas Monitoreadas:     %s\n", cli.FormatCount(m.UniqueAreas))
	fmt.Fprintf(&b, "Incidentes Detectados:  %s (%.2f%%)\n", cli.FormatCount(m.IncidentCount), m.IncidentPct)
	fmt.Fprintf(&b, "Residuos Biosanitarios: %s (%.1f%%)\n", cli.FormatCount(m.Biosanitarios), m.BiosanitariosPct())
	fmt.Fprintf(&b, "Residuos Químicos:      %s (%.1f%%)", cli.FormatCount(m.Quimicos), m.QuimicosPct())

	if _, err := fmt.Fprintln(out, cli.RenderBox(cli.ChartIcon+" "+data.session.Source, b.String())); err != nil {
		return err
	}
	if !data.session.PredictionsAvailable() {
		if _, err := fmt.Fprintln(out, cli.FormatWarning("Container predictions are unavailable for this log")); err != nil {
			return err
		}
	}
	return nil
}
