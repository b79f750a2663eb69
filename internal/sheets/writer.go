package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/segregate/internal/analysis"
	"github.com/Veraticus/segregate/internal/common"
	"github.com/Veraticus/segregate/internal/export"
	"github.com/Veraticus/segregate/internal/model"
	"google.golang.org/api/sheets/v4"
)

// DataSheetTitle is the sheet created in new spreadsheets.
const DataSheetTitle = "Registros"

// Publisher pushes a filtered table to a spreadsheet.
type Publisher interface {
	Write(ctx context.Context, t model.Table, generatedAt time.Time) (string, error)
}

// Writer publishes tables and their summary to Google Sheets.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a new Google Sheets writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	service, err := createSheetsService(ctx, config, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return newWriterWithService(service, config, logger), nil
}

func newWriterWithService(service *sheets.Service, config Config, logger *slog.Logger) *Writer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{service: service, config: config, logger: logger}
}

// Write replaces the sheet contents with the summary and records of t and
// returns the spreadsheet id.
func (w *Writer) Write(ctx context.Context, t model.Table, generatedAt time.Time) (string, error) {
	w.logger.Info("starting sheet export", "records", t.Len())

	spreadsheetID, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return "", unavailable("open the spreadsheet", err)
	}

	retryOpts := w.config.retryOptions()

	if err := common.WithRetry(ctx, func() error {
		return classifyError(w.clearSheet(ctx, spreadsheetID))
	}, retryOpts); err != nil {
		return "", unavailable("clear the sheet", err)
	}

	values, headerRow := PrepareValues(t, analysis.Compute(t), generatedAt)

	if err := common.WithRetry(ctx, func() error {
		return w.writeData(ctx, spreadsheetID, values)
	}, retryOpts); err != nil {
		return "", unavailable("write the records", err)
	}

	if w.config.EnableFormatting {
		columns := len(export.Header(t))
		err = common.WithRetry(ctx, func() error {
			return classifyError(w.applyFormatting(ctx, spreadsheetID, headerRow, columns))
		}, retryOpts)
		if err != nil {
			// Formatting is cosmetic; the data is already written.
			w.logger.Warn("failed to apply formatting", "error", err)
		}
	}

	w.logger.Info("sheet export completed",
		"spreadsheet_id", spreadsheetID,
		"rows_written", len(values))

	return spreadsheetID, nil
}

// PrepareValues lays out the summary block followed by the exported records.
// It also returns the index of the records header row.
func PrepareValues(t model.Table, m analysis.Metrics, generatedAt time.Time) ([][]any, int) {
	rows := export.Rows(t)
	values := make([][]any, 0, len(rows)+14)

	values = append(values,
		[]any{"Gestión de Residuos Hospitalarios", analysis.Institution},
		[]any{"Fecha de Generación", generatedAt.Format(analysis.ReportTimeLayout)},
		[]any{},
		[]any{"Resumen"},
		[]any{"Total de Registros", m.Total},
		[]any{"Usuarios Activos", m.UniqueUsers},
		[]any{"Áreas Monitoreadas", m.UniqueAreas},
		[]any{"Incidentes Detectados", m.IncidentCount},
		[]any{"% Incidentes", fmt.Sprintf("%.2f", m.IncidentPct)},
		[]any{"Residuos Biosanitarios", m.Biosanitarios},
		[]any{"Residuos Químicos", m.Quimicos},
		[]any{},
		[]any{"Registros"},
	)

	headerRow := len(values)
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		values = append(values, cells)
	}

	return values, headerRow
}

// getOrCreateSpreadsheet gets an existing spreadsheet or creates a new one.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, error) {
	if w.config.SpreadsheetID != "" {
		_, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}
		return w.config.SpreadsheetID, nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
		Sheets: []*sheets.Sheet{
			{
				Properties: &sheets.SheetProperties{
					Title: DataSheetTitle,
				},
			},
		},
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	return created.SpreadsheetId, nil
}

// clearSheet clears all data from the sheet.
func (w *Writer) clearSheet(ctx context.Context, spreadsheetID string) error {
	_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, "A:Z", &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

// writeData writes the values in batches. Cells are written RAW so free-text
// observations are never evaluated as formulas.
func (w *Writer) writeData(ctx context.Context, spreadsheetID string, values [][]any) error {
	for i := 0; i < len(values); i += w.config.BatchSize {
		end := min(i+w.config.BatchSize, len(values))

		batch := values[i:end]
		valueRange := &sheets.ValueRange{
			Values: batch,
		}

		rangeStr := fmt.Sprintf("A%d", i+1)
		_, err := w.service.Spreadsheets.Values.Update(spreadsheetID, rangeStr, valueRange).
			ValueInputOption("RAW").
			Context(ctx).
			Do()

		if err != nil {
			return classifyError(fmt.Errorf("failed to write batch starting at row %d: %w", i+1, err))
		}

		w.logger.Debug("wrote batch", "start_row", i+1, "rows", len(batch))
	}

	return nil
}

// applyFormatting bolds the title and the records header and freezes the
// rows above the records.
func (w *Writer) applyFormatting(ctx context.Context, spreadsheetID string, headerRow, columns int) error {
	bold := func(startRow, endRow, endCol int64, size int64) *sheets.Request {
		return &sheets.Request{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          0,
					StartRowIndex:    startRow,
					EndRowIndex:      endRow,
					StartColumnIndex: 0,
					EndColumnIndex:   endCol,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{
							Bold:     true,
							FontSize: size,
						},
					},
				},
				Fields: "userEnteredFormat.textFormat",
			},
		}
	}

	requests := []*sheets.Request{
		bold(0, 1, 2, 16),
		bold(3, 4, 1, 12),
		bold(int64(headerRow-1), int64(headerRow+1), int64(columns), 10),
		{
			AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
				Dimensions: &sheets.DimensionRange{
					SheetId:    0,
					Dimension:  "COLUMNS",
					StartIndex: 0,
					EndIndex:   int64(columns),
				},
			},
		},
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId: 0,
					GridProperties: &sheets.GridProperties{
						FrozenRowCount: int64(headerRow + 1),
					},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
	}

	batchUpdate := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}

	_, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, batchUpdate).Context(ctx).Do()
	return err
}
