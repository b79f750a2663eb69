package ingest

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// ParseTimestamp parses a form timestamp. Values that do not match the layout
// yield nil instead of an error.
func ParseTimestamp(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	t, err := time.Parse(TimestampLayout, value)
	if err != nil {
		return nil
	}
	return &t
}

// parseSpreadsheetTimestamp also accepts Excel date serials, which is how a
// workbook stores timestamps typed as dates rather than text.
func parseSpreadsheetTimestamp(value string) *time.Time {
	if ts := ParseTimestamp(value); ts != nil {
		return ts
	}
	serial, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || serial <= 0 {
		return nil
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return nil
	}
	t = t.Round(time.Second)
	return &t
}

// FormatTimestamp renders a timestamp in the form's layout, zero-padded.
func FormatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("01/02/2006 15:04:05")
}
