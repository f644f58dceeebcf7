package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"factoryfloor/models"
)

// utf8BOM makes Excel open the file as UTF-8.
const utf8BOM = "\ufeff"

// GenerateWorkerReportCSV writes the pay report as CSV with a trailing
// TOTAL line, the layout spreadsheet users already import.
func GenerateWorkerReportCSV(report AnalyticsReport) ([]byte, error) {
	records := [][]string{
		{"Worker ID", "Worker Name", "Operation", "Date", "Rate", "Lot Number", "Layer", "Pieces", "Total Amount"},
	}
	for _, r := range report.Rows {
		records = append(records, []string{
			strconv.Itoa(r.WorkerID),
			sanitizeExcelCell(r.WorkerFullName),
			r.Operation,
			r.Date,
			strconv.FormatFloat(r.Rate, 'f', -1, 64),
			sanitizeExcelCell(r.LotNumber),
			strconv.Itoa(r.Layer),
			strconv.FormatFloat(r.Pieces, 'f', -1, 64),
			fmt.Sprintf("%.2f", r.TotalAmount),
		})
	}
	records = append(records, []string{
		"", "TOTAL", "", "", "", "", "",
		fmt.Sprintf("%.2f", report.TotalPieces),
		fmt.Sprintf("%.2f", report.TotalAmount),
	})
	return writeCSV(records)
}

// GenerateLotsCSV writes one line per lot with its derived totals.
func GenerateLotsCSV(lots []models.Lot) ([]byte, error) {
	header := []string{"Lot Number", "Date", "Brand", "Fabric", "Pattern"}
	header = append(header, models.SizeKeys...)
	header = append(header, "Total Meter", "Total Pieces", "Tukda Count", "Tukda Size", "Total Pieces With Tukda", "Average")

	records := [][]string{header}
	for _, l := range lots {
		rec := []string{
			sanitizeExcelCell(l.LotNumber),
			l.Date,
			sanitizeExcelCell(l.Brand),
			sanitizeExcelCell(l.Fabric),
			sanitizeExcelCell(l.Pattern),
		}
		for _, k := range models.SizeKeys {
			rec = append(rec, strconv.FormatFloat(l.Ratios[k], 'f', -1, 64))
		}
		rec = append(rec,
			strconv.FormatFloat(l.TotalMeter, 'f', -1, 64),
			strconv.FormatFloat(l.TotalPieces, 'f', -1, 64),
			strconv.Itoa(l.Tukda.Count),
			l.Tukda.Size,
			strconv.FormatFloat(l.TotalPiecesWithTukda, 'f', -1, 64),
			formatAverage(l.Average),
		)
		records = append(records, rec)
	}
	return writeCSV(records)
}

func writeCSV(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(utf8BOM)
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}
