// Package export renders attendance data as Excel workbooks.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"schoolattend/internal/attendance"
)

var header = []string{"Date", "Student", "Status", "Notes", "Marked at"}

// ClassAttendanceWorkbook builds a one-sheet workbook of a class's records.
// studentNames maps student ids to display names; unknown ids fall back to
// the raw id so stale roster references still export.
func ClassAttendanceWorkbook(sheetName string, records []attendance.Record, studentNames map[string]string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	for col, h := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellStr(sheetName, cell, h); err != nil {
			return nil, fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	end, _ := excelize.CoordinatesToCellName(len(header), 1)
	_ = f.SetCellStyle(sheetName, "A1", end, bold)
	_ = f.AutoFilter(sheetName, "A1:"+end, nil)

	for i, rec := range records {
		name := studentNames[rec.StudentID]
		if name == "" {
			name = rec.StudentID
		}
		row := []string{
			rec.Date,
			name,
			string(rec.Status),
			rec.Notes,
			rec.MarkedAt.Format("2006-01-02 15:04:05"),
		}
		for col, val := range row {
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := f.SetCellStr(sheetName, cell, val); err != nil {
				return nil, fmt.Errorf("set cell %s: %w", cell, err)
			}
		}
	}

	for col := 1; col <= len(header); col++ {
		colName, _ := excelize.ColumnNumberToName(col)
		_ = f.SetColWidth(sheetName, colName, colName, 18)
	}
	return f, nil
}
