package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"factoryfloor/models"
)

// excelTable is a titled sheet of rows with an optional totals row.
type excelTable struct {
	Sheet    string
	Title    string
	Subtitle string
	Headers  []string
	Widths   []float64
	Rows     [][]any
	Totals   []any
}

// GenerateWorkerReportExcel builds the worker pay report workbook.
func GenerateWorkerReportExcel(report AnalyticsReport, f AnalyticsFilter) ([]byte, error) {
	title := "Worker Analytics"
	if report.WorkerName != "" {
		title += " - " + report.WorkerName
	}

	t := excelTable{
		Sheet:    "Worker Analytics",
		Title:    title,
		Subtitle: describePeriod(f),
		Headers:  []string{"Worker ID", "Worker Name", "Operation", "Date", "Rate", "Lot Number", "Layer", "Pieces", "Total Amount"},
		Widths:   []float64{10, 28, 12, 12, 10, 16, 8, 10, 16},
	}
	for _, r := range report.Rows {
		t.Rows = append(t.Rows, []any{
			r.WorkerID,
			sanitizeExcelCell(r.WorkerFullName),
			r.Operation,
			r.Date,
			r.Rate,
			sanitizeExcelCell(r.LotNumber),
			r.Layer,
			r.Pieces,
			r.TotalAmount,
		})
	}
	t.Totals = []any{"", "TOTAL", "", "", "", "", "", report.TotalPieces, report.TotalAmount}
	return writeExcel(t)
}

// GenerateLotsExcel builds the lots register: one line per lot with its
// derived totals.
func GenerateLotsExcel(lots []models.Lot) ([]byte, error) {
	t := excelTable{
		Sheet:   "Lots",
		Title:   "Lots Register",
		Headers: []string{"Lot Number", "Date", "Brand", "Fabric", "Pattern", "Sum of Ratios", "Rows", "Total Meter", "Total Pieces", "Tukda", "Pieces with Tukda", "Average"},
		Widths:  []float64{16, 12, 18, 18, 18, 12, 8, 12, 12, 10, 16, 10},
	}
	var meter, pieces, grand float64
	for _, l := range lots {
		t.Rows = append(t.Rows, []any{
			sanitizeExcelCell(l.LotNumber),
			l.Date,
			sanitizeExcelCell(l.Brand),
			sanitizeExcelCell(l.Fabric),
			sanitizeExcelCell(l.Pattern),
			SumRatios(l.Ratios),
			len(l.ProductionData),
			l.TotalMeter,
			l.TotalPieces,
			l.Tukda.Count,
			l.TotalPiecesWithTukda,
			formatAverage(l.Average),
		})
		meter += l.TotalMeter
		pieces += l.TotalPieces
		grand += l.TotalPiecesWithTukda
	}
	t.Totals = []any{"TOTAL", "", "", "", "", "", "", meter, pieces, "", grand, ""}
	return writeExcel(t)
}

func writeExcel(t excelTable) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	// Sheet names are capped at 31 characters.
	sheet := t.Sheet
	if len(sheet) > 31 {
		sheet = sheet[:31]
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	lastCol, err := excelize.ColumnNumberToName(len(t.Headers))
	if err != nil {
		return nil, fmt.Errorf("last column: %w", err)
	}
	for i, w := range t.Widths {
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, name, name, w); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", name, err)
		}
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 16},
	})
	if err != nil {
		return nil, fmt.Errorf("create title style: %w", err)
	}
	subtitleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Size: 11},
	})
	if err != nil {
		return nil, fmt.Errorf("create subtitle style: %w", err)
	}
	// Column header style: bold, white text, charcoal background, centered.
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}
	bodyStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Size: 10},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create body style: %w", err)
	}
	totalStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"#F0F0F0"}, Pattern: 1},
		Border: thinBorders(),
	})
	if err != nil {
		return nil, fmt.Errorf("create total style: %w", err)
	}

	// Row 1: title, row 2: subtitle, row 4: headers, data from row 5.
	if err := f.MergeCell(sheet, "A1", lastCol+"1"); err != nil {
		return nil, fmt.Errorf("merge title: %w", err)
	}
	f.SetCellValue(sheet, "A1", sanitizeExcelCell(t.Title))
	f.SetCellStyle(sheet, "A1", lastCol+"1", titleStyle)

	if t.Subtitle != "" {
		if err := f.MergeCell(sheet, "A2", lastCol+"2"); err != nil {
			return nil, fmt.Errorf("merge subtitle: %w", err)
		}
		f.SetCellValue(sheet, "A2", t.Subtitle)
		f.SetCellStyle(sheet, "A2", lastCol+"2", subtitleStyle)
	}

	if err := f.SetSheetRow(sheet, "A4", &t.Headers); err != nil {
		return nil, fmt.Errorf("write headers: %w", err)
	}
	f.SetCellStyle(sheet, "A4", lastCol+"4", headerStyle)

	row := 5
	for _, values := range t.Rows {
		cell := fmt.Sprintf("A%d", row)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
		f.SetCellStyle(sheet, cell, fmt.Sprintf("%s%d", lastCol, row), bodyStyle)
		row++
	}

	if t.Totals != nil {
		cell := fmt.Sprintf("A%d", row)
		if err := f.SetSheetRow(sheet, cell, &t.Totals); err != nil {
			return nil, fmt.Errorf("write totals: %w", err)
		}
		f.SetCellStyle(sheet, cell, fmt.Sprintf("%s%d", lastCol, row), totalStyle)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}
	return buf.Bytes(), nil
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote. Excel interprets cells starting with =, +, -,
// @, \t or \r as formulas, which can be abused for code execution or data theft.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns a slice of excelize.Border for thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1, // thin
		}
	}
	return borders
}
