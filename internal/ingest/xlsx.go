package ingest

import (
	"fmt"
	"io"

	"github.com/Veraticus/segregate/internal/common"
	"github.com/xuri/excelize/v2"
)

// readXLSX returns the rows of the first worksheet.
func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUnreadableTable, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", common.ErrUnreadableTable)
	}

	// Raw values keep date cells as serials whatever their number format.
	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q: %v", common.ErrUnreadableTable, sheets[0], err)
	}
	return rows, nil
}
