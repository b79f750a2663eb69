// Package ingest reads waste log spreadsheets and maps them onto the canonical schema.
package ingest

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/segregate/internal/common"
	"github.com/Veraticus/segregate/internal/model"
)

// Format is a supported source format.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const progressEvery = 250

// ProgressFunc receives the number of rows converted so far and the total.
type ProgressFunc func(done, total int)

// Loader converts uploaded files into normalized tables.
type Loader struct {
	OnProgress ProgressFunc
}

// NewLoader creates a loader.
func NewLoader() *Loader {
	return &Loader{}
}

// DetectFormat chooses a format from a file name.
func DetectFormat(name string) (Format, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".csv":
		return FormatCSV, nil
	case ".xlsx", ".xlsm", ".xltx":
		return FormatXLSX, nil
	case ".xls":
		return "", common.NewUserError(
			"legacy .xls workbooks are not supported; save the file as .xlsx or as CSV separated by ';'",
			common.ErrUnsupportedFormat)
	default:
		return "", common.NewUserError(
			fmt.Sprintf("cannot read %q: expected a CSV separated by ';' or an Excel .xlsx workbook", filepath.Base(name)),
			common.ErrUnsupportedFormat)
	}
}

// LoadFile opens and loads the file at path.
func (l *Loader) LoadFile(ctx context.Context, path string) (model.Table, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return model.Table{}, err
	}

	f, err := os.Open(path) // #nosec G304 -- the operator chooses the file
	if err != nil {
		return model.Table{}, common.NewUserError(fmt.Sprintf("cannot open %s", filepath.Base(path)), err)
	}
	defer func() { _ = f.Close() }()

	return l.Load(ctx, f, format)
}

// Load reads a table in the given format. Either the whole table loads or an
// error is returned; partial tables are never produced.
func (l *Loader) Load(ctx context.Context, r io.Reader, format Format) (model.Table, error) {
	var (
		rows [][]string
		err  error
	)
	switch format {
	case FormatCSV:
		rows, err = readCSV(r)
	case FormatXLSX:
		rows, err = readXLSX(r)
	default:
		return model.Table{}, common.NewUserError(fmt.Sprintf("unknown format %q", format), common.ErrUnsupportedFormat)
	}
	if err != nil {
		return model.Table{}, common.NewUserError("the file could not be read", err)
	}

	return l.FromRows(ctx, rows, format == FormatXLSX)
}

// FromRows converts raw rows, header first, into a table. Spreadsheet sources
// also accept Excel date serials in the timestamp column.
func (l *Loader) FromRows(ctx context.Context, rows [][]string, spreadsheet bool) (model.Table, error) {
	if len(rows) == 0 {
		return model.Table{}, common.NewUserError("the file is empty", common.ErrEmptyFile)
	}

	layout, err := newHeaderLayout(rows[0])
	if err != nil {
		return model.Table{}, common.NewUserError(
			"the file does not look like a waste log export (is it separated by ';'?)", err)
	}

	parseTime := ParseTimestamp
	if spreadsheet {
		parseTime = parseSpreadsheetTimestamp
	}

	body := rows[1:]
	table := model.Table{
		ExtraColumns: layout.extraNames(),
		Records:      make([]model.Record, 0, len(body)),
	}

	for i, row := range body {
		if i%progressEvery == 0 {
			if err := ctx.Err(); err != nil {
				return model.Table{}, err
			}
			l.reportProgress(i, len(body))
		}

		if isBlankRow(row) {
			continue
		}

		line := i + 2
		if err := layout.checkWidth(row, line); err != nil {
			return model.Table{}, common.NewUserError("the file could not be read", err)
		}

		table.Records = append(table.Records, layout.record(row, line, parseTime))
	}
	l.reportProgress(len(body), len(body))

	slog.Debug("Loaded waste log table",
		"rows", len(table.Records),
		"extra_columns", len(table.ExtraColumns))

	return table, nil
}

func (l *Loader) reportProgress(done, total int) {
	if l.OnProgress != nil {
		l.OnProgress(done, total)
	}
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

type extraColumn struct {
	name  string
	index int
}

// headerLayout records where each canonical column lives in a source row.
type headerLayout struct {
	canonical map[string]int
	extras    []extraColumn
	width     int
}

func newHeaderLayout(header []string) (*headerLayout, error) {
	layout := &headerLayout{
		canonical: make(map[string]int),
		width:     len(header),
	}

	for i, raw := range header {
		if i == 0 {
			raw = strings.TrimPrefix(raw, "\ufeff")
		}
		name := RenameColumn(raw)
		switch {
		case isCanonical(name):
			if _, dup := layout.canonical[name]; !dup {
				layout.canonical[name] = i
			}
		case isDerived(name):
			// Recomputed after loading.
		case strings.TrimSpace(name) == "":
			// Blank trailing header cells from spreadsheets.
		default:
			layout.extras = append(layout.extras, extraColumn{name: name, index: i})
		}
	}

	var missing []string
	for _, col := range RequiredColumns() {
		if _, ok := layout.canonical[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", common.ErrMissingColumn, strings.Join(missing, ", "))
	}

	return layout, nil
}

func (h *headerLayout) extraNames() []string {
	names := make([]string, 0, len(h.extras))
	for _, e := range h.extras {
		names = append(names, e.name)
	}
	return names
}

func (h *headerLayout) checkWidth(row []string, line int) error {
	for i := h.width; i < len(row); i++ {
		if strings.TrimSpace(row[i]) != "" {
			return fmt.Errorf("%w: line %d has %d fields, header has %d",
				common.ErrUnreadableTable, line, len(row), h.width)
		}
	}
	return nil
}

func (h *headerLayout) cell(row []string, column string) string {
	i, ok := h.canonical[column]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func (h *headerLayout) record(row []string, line int, parseTime func(string) *time.Time) model.Record {
	rec := model.Record{
		Timestamp:      parseTime(h.cell(row, ColumnTimestamp)),
		User:           h.cell(row, ColumnUser),
		Area:           h.cell(row, ColumnArea),
		WasteType:      h.cell(row, ColumnWasteType),
		ContainerColor: h.cell(row, ColumnContainerColor),
		ContainerState: h.cell(row, ColumnContainerState),
		Observations:   h.cell(row, ColumnObservations),
		Line:           line,
	}

	if len(h.extras) > 0 {
		rec.Extra = make(map[string]string, len(h.extras))
		for _, e := range h.extras {
			if e.index < len(row) {
				rec.Extra[e.name] = row[e.index]
			}
		}
	}

	return rec
}

