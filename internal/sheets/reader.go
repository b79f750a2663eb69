package sheets

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/segregate/internal/common"
	"github.com/Veraticus/segregate/internal/ingest"
	"github.com/Veraticus/segregate/internal/model"
	"google.golang.org/api/sheets/v4"
)

// Reader fetches the form responses behind a Google Sheet.
type Reader struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewReader creates a reader with read-only access.
func NewReader(ctx context.Context, config Config, logger *slog.Logger) (*Reader, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if config.SpreadsheetID == "" {
		return nil, fmt.Errorf("%w: spreadsheet id is required to read a sheet", common.ErrMissingConfig)
	}

	service, err := createSheetsService(ctx, config, sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return newReaderWithService(service, config, logger), nil
}

func newReaderWithService(service *sheets.Service, config Config, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	if config.SourceRange == "" {
		config.SourceRange = DefaultConfig().SourceRange
	}
	return &Reader{service: service, config: config, logger: logger}
}

// Fetch returns the formatted cell values of the source range, header first.
func (r *Reader) Fetch(ctx context.Context) ([][]string, error) {
	var resp *sheets.ValueRange
	err := common.WithRetry(ctx, func() error {
		var err error
		resp, err = r.service.Spreadsheets.Values.Get(r.config.SpreadsheetID, r.config.SourceRange).
			ValueRenderOption("FORMATTED_VALUE").
			Context(ctx).
			Do()
		return classifyError(err)
	}, r.config.retryOptions())
	if err != nil {
		return nil, unavailable("read the spreadsheet", err)
	}

	rows := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		rows[i] = make([]string, len(row))
		for j, cell := range row {
			rows[i][j] = fmt.Sprint(cell)
		}
	}

	r.logger.Debug("fetched sheet values",
		"spreadsheet_id", r.config.SpreadsheetID,
		"range", r.config.SourceRange,
		"rows", len(rows))

	return rows, nil
}

// Load fetches the sheet and converts it into a table.
func (r *Reader) Load(ctx context.Context, loader *ingest.Loader) (model.Table, error) {
	rows, err := r.Fetch(ctx)
	if err != nil {
		return model.Table{}, err
	}
	return loader.FromRows(ctx, rows, true)
}
