package model

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// WorkbookSummary describes a downloaded spreadsheet.
type WorkbookSummary struct {
	Sheets []string
	Rows   int
}

// InspectWorkbook opens a saved .xlsx file and counts the rows of every sheet.
// It fails for anything excelize cannot read, e.g. an HTML error page saved
// under a spreadsheet name.
func InspectWorkbook(path string) (*WorkbookSummary, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not open workbook %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	summary := &WorkbookSummary{Sheets: f.GetSheetList()}
	for _, sheet := range summary.Sheets {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("could not read sheet %s: %w", sheet, err)
		}
		summary.Rows += len(rows)
	}
	return summary, nil
}
