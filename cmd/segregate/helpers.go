package main

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/Veraticus/segregate/internal/classification"
	"github.com/Veraticus/segregate/internal/cli"
	"github.com/Veraticus/segregate/internal/common"
	"github.com/Veraticus/segregate/internal/config"
	"github.com/Veraticus/segregate/internal/ingest"
	"github.com/Veraticus/segregate/internal/model"
	"github.com/Veraticus/segregate/internal/session"
	"github.com/Veraticus/segregate/internal/sheets"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// addDataFlags registers the source and filter flags shared by data commands.
func addDataFlags(cmd *cobra.Command) {
	cmd.Flags().String("sheet-id", "", "read the log from this Google Sheet instead of a file")
	cmd.Flags().StringArray("area", nil, "only include this area (repeatable)")
	cmd.Flags().StringArray("waste-type", nil, "only include this waste type (repeatable)")
	cmd.Flags().Bool("no-progress", false, "do not draw the load progress bar")
}

// loadedData is a session plus the rules it was processed with.
type loadedData struct {
	session *session.Session
	filter  session.Filter
	rules   classification.RuleSet
}

// view returns the filtered table.
func (d loadedData) view() model.Table {
	return d.session.View(d.filter)
}

// loadData loads the log named by args or --sheet-id and runs the enrichment passes.
func loadData(cmd *cobra.Command, args []string) (loadedData, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	rules, err := config.LoadRules(viper.GetViper())
	if err != nil {
		return loadedData{}, err
	}
	engine, err := classification.NewEngine(rules)
	if err != nil {
		return loadedData{}, common.NewUserError("The classification rules are invalid", err)
	}

	loader := ingest.NewLoader()
	if noProgress, _ := cmd.Flags().GetBool("no-progress"); !noProgress {
		progress := cli.NewLoadProgress(cmd.ErrOrStderr(), "Cargando registros")
		loader.OnProgress = progress.Update
		defer progress.Finish()
	}

	sheetID, _ := cmd.Flags().GetString("sheet-id")
	var (
		table  model.Table
		source string
	)
	switch {
	case sheetID != "":
		table, err = loadSheet(ctx, sheetID, loader)
		source = "sheets:" + sheetID
	case len(args) == 1:
		table, err = loader.LoadFile(ctx, args[0])
		source = filepath.Base(args[0])
	default:
		return loadedData{}, common.NewUserError("Provide a waste log file or --sheet-id", common.ErrNoSession)
	}
	if err != nil {
		return loadedData{}, err
	}

	sess := session.NewStore(engine).Replace(source, table)
	if err := sess.PredictionError(); err != nil {
		slog.Warn("Container predictions are unavailable for this log", "error", err)
	}

	return loadedData{
		session: sess,
		filter:  filterFromFlags(cmd),
		rules:   rules,
	}, nil
}

func loadSheet(ctx context.Context, sheetID string, loader *ingest.Loader) (model.Table, error) {
	cfg, err := config.LoadSheetsConfig(viper.GetViper())
	if err != nil {
		return model.Table{}, common.NewUserError("Google Sheets credentials are not configured", err)
	}
	cfg.SpreadsheetID = sheetID

	reader, err := sheets.NewReader(ctx, *cfg, slog.Default())
	if err != nil {
		return model.Table{}, common.NewUserError("Could not connect to Google Sheets", err)
	}
	return reader.Load(ctx, loader)
}

// filterFromFlags builds the filter from --area and --waste-type.
func filterFromFlags(cmd *cobra.Command) session.Filter {
	areas, _ := cmd.Flags().GetStringArray("area")
	wasteTypes, _ := cmd.Flags().GetStringArray("waste-type")
	return session.Filter{Areas: areas, WasteTypes: wasteTypes}
}

// outputDir returns -o when given, else the configured export directory.
func outputDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("output"); dir != "" {
		return config.ExpandPath(dir)
	}
	return config.ExportDir(viper.GetViper())
}
