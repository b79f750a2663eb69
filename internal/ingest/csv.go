package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/Veraticus/segregate/internal/common"
	"golang.org/x/text/encoding/charmap"
)

// Separator is the field delimiter of the form's CSV exports.
const Separator = ';'

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func readCSV(r io.Reader) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnreadableTable, err)
	}

	text, err := decodeText(data)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(bytes.NewReader(text))
	reader.Comma = Separator
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnreadableTable, err)
	}
	return rows, nil
}

// decodeText returns UTF-8 text. Files that are not valid UTF-8 are taken to
// be Windows-1252, the encoding Excel uses for "CSV (separado por punto y coma)".
func decodeText(data []byte) ([]byte, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return data, nil
	}

	decoded, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown text encoding: %v", common.ErrUnreadableTable, err)
	}
	return decoded, nil
}
