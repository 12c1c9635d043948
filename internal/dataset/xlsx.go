package dataset

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadWorkbook reads the rows of the first sheet of an .xlsx workbook.
// Blank rows are skipped so the result can go straight to BuildTabular.
func ReadWorkbook(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}

	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		if !blankRow(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// ParseWorkbook reads a workbook and builds tabular records from it.
func ParseWorkbook(data []byte) (Dataset, error) {
	rows, err := ReadWorkbook(data)
	if err != nil {
		return Dataset{}, err
	}
	return BuildTabular(rows), nil
}
