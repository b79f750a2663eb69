package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/segregate/internal/cli"
	"github.com/Veraticus/segregate/internal/common"
	"github.com/Veraticus/segregate/internal/config"
	"github.com/Veraticus/segregate/internal/export"
	"github.com/Veraticus/segregate/internal/model"
	"github.com/Veraticus/segregate/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export the processed records",
		Long: `Export the filtered records with their incident tags and container
predictions as residuos_YYYYMMDD_HHMMSS.csv (separated by ';'). With --sheets the
same records and the summary are also published to Google Sheets.

Examples:
  segregate export registros.csv -o ~/exportes
  segregate export registros.csv --area URGENCIAS --sheets`,
		Args: cobra.MaximumNArgs(1),
		RunE: runExport,
	}

	addDataFlags(cmd)
	cmd.Flags().StringP("output", "o", "", "directory for the CSV (default: export.dir or the current directory)")
	cmd.Flags().Bool("sheets", false, "also publish to Google Sheets")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	data, err := loadData(cmd, args)
	if err != nil {
		return err
	}
	table := data.view()
	out := cmd.OutOrStdout()

	path, err := export.NewWriter(outputDir(cmd)).WriteCSV(table)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Exported %s records to %s", cli.FormatCount(table.Len()), path))); err != nil {
		return err
	}

	if toSheets, _ := cmd.Flags().GetBool("sheets"); !toSheets {
		return nil
	}

	cfg, err := config.LoadSheetsConfig(viper.GetViper())
	if err != nil {
		return common.NewUserError("Google Sheets credentials are not configured", err)
	}
	writer, err := sheets.NewWriter(cmd.Context(), *cfg, slog.Default())
	if err != nil {
		return common.NewUserError("Could not connect to Google Sheets", err)
	}

	id, err := publish(cmd.Context(), writer, table)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, cli.FormatSuccess("Published to https://docs.google.com/spreadsheets/d/"+id))
	return err
}

func publish(ctx context.Context, p sheets.Publisher, table model.Table) (string, error) {
	id, err := p.Write(ctx, table, time.Now())
	if err != nil {
		return "", err
	}
	slog.Info("Published records to Google Sheets", "spreadsheet_id", id, "records", table.Len())
	return id, nil
}
