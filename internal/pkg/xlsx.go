package pkg

import (
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// exportSheet is the sheet name used for generated workbooks. Imports read
// whatever the workbook's first sheet is, so exports and third-party files
// round-trip the same way.
const exportSheet = "Sheet1"

// WriteSheet builds an xlsx workbook with a header row followed by data rows
// and writes it to w.
func WriteSheet(w io.Writer, header []string, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return fmt.Errorf("header cell %d: %w", i, err)
		}
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return fmt.Errorf("set header cell %s: %w", cell, err)
		}
	}

	for rIdx, row := range rows {
		for cIdx, v := range row {
			cell, err := excelize.CoordinatesToCellName(cIdx+1, rIdx+2)
			if err != nil {
				return fmt.Errorf("data cell %d,%d: %w", rIdx, cIdx, err)
			}
			if err := f.SetCellValue(exportSheet, cell, v); err != nil {
				return fmt.Errorf("set data cell %s: %w", cell, err)
			}
		}
	}

	return f.Write(w)
}

// ReadSheet reads the first sheet of an xlsx stream and returns the header row
// and the remaining data rows. Rows may be ragged: trailing empty cells are
// omitted by the underlying reader.
func ReadSheet(r io.Reader) (header []string, rows [][]string, err error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errors.New("workbook has no sheets")
	}

	all, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(all) == 0 {
		return nil, nil, errors.New("sheet is empty")
	}

	return all[0], all[1:], nil
}

// Cell returns the value at column idx of a possibly ragged row, or "" when
// the row is too short.
func Cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}
