// Package export serializes filtered tables and reports for download.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Veraticus/segregate/internal/analysis"
	"github.com/Veraticus/segregate/internal/ingest"
	"github.com/Veraticus/segregate/internal/model"
)

// File name prefixes and the timestamp layout shared by every export.
const (
	CSVPrefix    = "residuos"
	ReportPrefix = "reporte"
	NameLayout   = "20060102_150405"
)

// FileName returns "<prefix>_YYYYMMDD_HHMMSS.<ext>".
func FileName(prefix, ext string, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", prefix, now.Format(NameLayout), ext)
}

// Header returns the exported column order of a table: canonical columns,
// passthrough columns, then derived columns. Prediction columns are only
// present when every record carries a prediction.
func Header(t model.Table) []string {
	header := append([]string{}, ingest.CanonicalColumns()...)
	header = append(header, t.ExtraColumns...)
	header = append(header, ingest.ColumnDate, ingest.ColumnHour, ingest.ColumnIncident)
	if t.PredictionsAvailable() {
		header = append(header, ingest.ColumnPredictedContainer, ingest.ColumnMismatch, ingest.ColumnSuggestedWasteType)
	}
	return header
}

// Rows returns the header followed by one row per record.
func Rows(t model.Table) [][]string {
	header := Header(t)
	predictions := t.PredictionsAvailable()

	rows := make([][]string, 0, len(t.Records)+1)
	rows = append(rows, header)
	for i := range t.Records {
		r := &t.Records[i]
		row := make([]string, 0, len(header))
		row = append(row,
			ingest.FormatTimestamp(r.Timestamp),
			r.User,
			r.Area,
			r.WasteType,
			r.ContainerColor,
			r.ContainerState,
			r.Observations,
		)
		for _, col := range t.ExtraColumns {
			row = append(row, r.Extra[col])
		}

		date, hour := "", ""
		if d, ok := r.Date(); ok {
			date = d.Format("2006-01-02")
		}
		if h, ok := r.Hour(); ok {
			hour = strconv.Itoa(h)
		}
		row = append(row, date, hour, string(r.IncidentKind))

		if predictions {
			row = append(row, r.PredictedContainer(), formatBool(r.IsMismatch()), r.SuggestedWasteType())
		}
		rows = append(rows, row)
	}
	return rows
}

// CSV serializes a table as ';'-separated UTF-8 text.
func CSV(t model.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = ingest.Separator

	if err := w.WriteAll(Rows(t)); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Report renders the text report of a table.
func Report(t model.Table, now time.Time) []byte {
	return []byte(analysis.Report(t, analysis.Compute(t), now))
}

func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// Writer writes exports into a directory.
type Writer struct {
	now func() time.Time
	dir string
}

// NewWriter creates a writer for dir, creating it on first write.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir, now: time.Now}
}

// WriteCSV writes the table as residuos_<timestamp>.csv and returns the path.
func (w *Writer) WriteCSV(t model.Table) (string, error) {
	data, err := CSV(t)
	if err != nil {
		return "", err
	}
	return w.write(FileName(CSVPrefix, "csv", w.now()), data)
}

// WriteReport writes the text report as reporte_<timestamp>.txt and returns the path.
func (w *Writer) WriteReport(t model.Table) (string, error) {
	now := w.now()
	return w.write(FileName(ReportPrefix, "txt", now), Report(t, now))
}

func (w *Writer) write(name string, data []byte) (string, error) {
	if err := os.MkdirAll(w.dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return path, nil
}
