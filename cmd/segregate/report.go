package main

import (
	"fmt"
	"time"

	"github.com/Veraticus/segregate/internal/cli"
	"github.com/Veraticus/segregate/internal/export"
	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [file]",
		Short: "Write the plain-text management report",
		Long: `Generate the management report with the summary metrics, breakdowns,
recommendations and QR proposal, and save it as reporte_YYYYMMDD_HHMMSS.txt.

Examples:
  segregate report registros.csv -o ~/informes
  segregate report registros.csv --area LABORATORIO --print`,
		Args: cobra.MaximumNArgs(1),
		RunE: runReport,
	}

	addDataFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "directory for the report (default: export.dir or the current directory)")
	cmd.Flags().Bool("print", false, "print the report instead of saving it")

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	data, err := loadData(cmd, args)
	if err != nil {
		return err
	}

	if toStdout, _ := cmd.Flags().GetBool("print"); toStdout {
		_, err = cmd.OutOrStdout().Write(export.Report(data.view(), time.Now()))
		return err
	}

	path, err := export.NewWriter(outputDir(cmd)).WriteReport(data.view())
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Report saved to %s", path)))
	return err
}
