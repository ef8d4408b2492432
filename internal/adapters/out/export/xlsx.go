package export

import (
	"bytes"
	"fmt"

	"github.com/suchimauz/clinic-slot-planner/internal/core/domain"
	"github.com/suchimauz/clinic-slot-planner/internal/core/json_types"
	"github.com/suchimauz/clinic-slot-planner/internal/core/ports/out"
	"github.com/xuri/excelize/v2"
)

const xlsxSheetName = "Slots"

var xlsxHeader = []string{"Date", "Start", "End", "Start (12h)", "Duration, min", "Status", "Patient"}

func (e *SlotExporter) XLSX(slots []domain.Slot) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(xlsxSheetName)
	if err != nil {
		return nil, fmt.Errorf("export.xlsx.sheet_failed: %w", err)
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(xlsxSheetName, "A", "A", 12)
	f.SetColWidth(xlsxSheetName, "B", "E", 14)
	f.SetColWidth(xlsxSheetName, "F", "F", 12)
	f.SetColWidth(xlsxSheetName, "G", "G", 28)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("export.xlsx.style_failed: %w", err)
	}

	for i, title := range xlsxHeader {
		f.SetCellValue(xlsxSheetName, cell(i, 1), title)
	}
	f.SetCellStyle(xlsxSheetName, cell(0, 1), cell(len(xlsxHeader)-1, 1), headerStyle)

	for i, slot := range slots {
		row := i + 2
		values := []interface{}{
			slot.Date.String(),
			slot.Time.String(),
			json_types.Time(slot.EndMinutes() % json_types.MinutesPerDay).String(),
			slot.Time.Format12h(),
			slot.DurationMinutes,
			string(slot.Status),
			slot.PatientName,
		}
		for col, value := range values {
			f.SetCellValue(xlsxSheetName, cell(col, row), value)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		e.logger.Error("export.xlsx.write_failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("export.xlsx.write_failed: %w", err)
	}

	e.logger.Debug("export.xlsx.done", out.LogFields{
		"slotsCount": len(slots),
		"bytes":      buf.Len(),
	})

	return buf.Bytes(), nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col+1, row)
	return name
}
