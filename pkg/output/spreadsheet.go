package output

import (
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// Sheet and table names in the exported workbook.
const (
	HeatmapSheet  = "Heatmap"
	ProgramsSheet = "Programs"

	heatmapTable  = "SlotOccupancy"
	programsTable = "ProgramList"
	tableStyle    = "TableStyleMedium2"
)

// SpreadsheetExporter writes the grid and program list to an xlsx workbook.
type SpreadsheetExporter struct{}

// NewSpreadsheetExporter creates a SpreadsheetExporter.
func NewSpreadsheetExporter() *SpreadsheetExporter {
	return &SpreadsheetExporter{}
}

// Name returns the export kind.
func (e *SpreadsheetExporter) Name() string {
	return "spreadsheet"
}

// Export writes a workbook with a Heatmap sheet (one row per slot, one
// column per day) and a Programs sheet.
func (e *SpreadsheetExporter) Export(_ context.Context, report *Report, path string) (err error) {
	if report.Grid == nil {
		return errors.New("spreadsheet: report has no grid")
	}

	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := f.SetSheetName("Sheet1", HeatmapSheet); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}
	if err := writeHeatmapSheet(f, report); err != nil {
		return fmt.Errorf("writing %s sheet: %w", HeatmapSheet, err)
	}

	if _, err := f.NewSheet(ProgramsSheet); err != nil {
		return fmt.Errorf("adding sheet: %w", err)
	}
	if err := writeProgramsSheet(f, report.Programs); err != nil {
		return fmt.Errorf("writing %s sheet: %w", ProgramsSheet, err)
	}

	f.SetActiveSheet(0)

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving spreadsheet %s: %w", path, err)
	}
	return nil
}

func writeHeatmapSheet(f *excelize.File, report *Report) error {
	g := report.Grid
	days := g.Days()

	header := []interface{}{"Time Block"}
	for _, d := range days {
		header = append(header, string(d))
	}
	if err := f.SetSheetRow(HeatmapSheet, "A1", &header); err != nil {
		return err
	}

	rows := g.Rows()
	for i, slot := range g.Slots() {
		row := []interface{}{string(slot)}
		for _, n := range rows[i] {
			row = append(row, n)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(HeatmapSheet, cell, &row); err != nil {
			return err
		}
	}

	last, err := excelize.CoordinatesToCellName(len(days)+1, len(rows)+1)
	if err != nil {
		return err
	}

	if err := f.AddTable(HeatmapSheet, &excelize.Table{
		Range:     "A1:" + last,
		Name:      heatmapTable,
		StyleName: tableStyle,
	}); err != nil {
		return err
	}

	if err := f.SetColWidth(HeatmapSheet, "A", "A", 14); err != nil {
		return err
	}

	// Same low-green, high-red scale as the heatmap image.
	return f.SetConditionalFormat(HeatmapSheet, "B2:"+last, []excelize.ConditionalFormatOptions{{
		Type:     "3_color_scale",
		Criteria: "=",
		MinType:  "min",
		MidType:  "percentile",
		MidValue: "50",
		MaxType:  "max",
		MinColor: "#1A9850",
		MidColor: "#FFFFBF",
		MaxColor: "#D73027",
	}})
}

func writeProgramsSheet(f *excelize.File, programs []string) error {
	header := []interface{}{"No.", "Program"}
	if err := f.SetSheetRow(ProgramsSheet, "A1", &header); err != nil {
		return err
	}

	for i, name := range programs {
		row := []interface{}{i + 1, name}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(ProgramsSheet, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(ProgramsSheet, "B", "B", 40); err != nil {
		return err
	}

	// A table needs at least one data row.
	if len(programs) == 0 {
		return nil
	}

	return f.AddTable(ProgramsSheet, &excelize.Table{
		Range:     fmt.Sprintf("A1:B%d", len(programs)+1),
		Name:      programsTable,
		StyleName: tableStyle,
	})
}
