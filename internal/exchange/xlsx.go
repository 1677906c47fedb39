package exchange

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/valter-silva-au/smart-task-manager/pkg/models"
	"github.com/xuri/excelize/v2"
)

// XLSXSheet is the worksheet name used by ExportXLSX.
const XLSXSheet = "Tasks"

// columnWidths mirrors Columns.
var columnWidths = []float64{30, 40, 12, 12, 10, 12, 10, 25, 10, 10}

// ExportXLSX writes tasks as a spreadsheet with the same columns as the CSV
// export. Hours are numeric cells; dates are calendar days in loc.
func ExportXLSX(w io.Writer, tasks []models.Task, loc *time.Location) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if _, err := f.NewSheet(XLSXSheet); err != nil {
		return fmt.Errorf("creating sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(XLSXSheet)
	if err != nil {
		return fmt.Errorf("creating stream writer: %w", err)
	}

	for i, width := range columnWidths {
		if err := sw.SetColWidth(i+1, i+1, width); err != nil {
			return fmt.Errorf("setting column width: %w", err)
		}
	}

	header := make([]interface{}, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := sw.SetRow("A1", header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, t := range tasks {
		row := []interface{}{
			t.Title,
			t.Description,
			exportDate(t.DueDate, loc),
			exportDate(t.CreatedDate, loc),
			string(t.Priority),
			string(t.Status),
			string(t.Category),
			strings.Join(t.Tags, ", "),
			hoursCell(t.EstimatedHours),
			hoursCell(t.ActualHours),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flushing sheet: %w", err)
	}
	idx, err := f.GetSheetIndex(XLSXSheet)
	if err != nil {
		return fmt.Errorf("locating sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("removing default sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func hoursCell(h *float64) interface{} {
	if h == nil || *h == 0 {
		return nil
	}
	return *h
}
