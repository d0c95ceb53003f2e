package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Workbook renders one class sheet (header plus data rows) as an .xlsx file
// for offline use. The header row is bold and columns are sized from their
// contents.
func Workbook(title string, header []string, rows [][]string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", title); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}
	for col, h := range header {
		cell := colName(col+1) + "1"
		if err := f.SetCellStr(title, cell, h); err != nil {
			return nil, fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	if len(header) > 0 {
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return nil, fmt.Errorf("header style: %w", err)
		}
		_ = f.SetCellStyle(title, "A1", colName(len(header))+"1", bold)
	}
	for r, row := range rows {
		for c, val := range row {
			cell := fmt.Sprintf("%s%d", colName(c+1), r+2)
			if err := f.SetCellStr(title, cell, val); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}
	// heuristic width from the header and the first rows
	for c := 1; c <= len(header); c++ {
		widest := len(header[c-1])
		for r := 0; r < len(rows) && r < 50; r++ {
			if c-1 < len(rows[r]) {
				if l := len(rows[r][c-1]); l > widest {
					widest = l
				}
			}
		}
		w := float64(widest) * 0.9
		if w < 12 {
			w = 12
		}
		if w > 40 {
			w = 40
		}
		_ = f.SetColWidth(title, colName(c), colName(c), w)
	}
	return f, nil
}

func colName(n int) string {
	s := ""
	for n > 0 {
		n--
		s = string(rune('A'+(n%26))) + s
		n /= 26
	}
	return s
}
