package services

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"factoryfloor/models"
)

func readCSV(t *testing.T, b []byte) [][]string {
	t.Helper()
	if !bytes.HasPrefix(b, []byte(utf8BOM)) {
		t.Fatal("csv should start with a UTF-8 BOM")
	}
	records, err := csv.NewReader(bytes.NewReader(b[len(utf8BOM):])).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	return records
}

func TestGenerateWorkerReportCSV(t *testing.T) {
	report := AnalyticsReport{
		Rows: []AnalyticsRow{
			{WorkerID: 2, WorkerFullName: "Ravi, Jr.", Operation: "back", Date: "2025-01-06", Rate: 3, LotNumber: "L1", Layer: 2, Pieces: 10, TotalAmount: 30},
			{WorkerID: 1, WorkerFullName: "=cmd", Operation: "front", Date: "2025-01-05", Rate: 2.5, LotNumber: "L1", Layer: 2, Pieces: 10, TotalAmount: 25},
		},
		TotalPieces: 20,
		TotalAmount: 55,
	}

	out, err := GenerateWorkerReportCSV(report)
	if err != nil {
		t.Fatalf("GenerateWorkerReportCSV() error = %v", err)
	}
	records := readCSV(t, out)

	if len(records) != 4 {
		t.Fatalf("expected header + 2 rows + total, got %d lines", len(records))
	}
	if records[0][0] != "Worker ID" || records[0][8] != "Total Amount" {
		t.Errorf("header = %v", records[0])
	}
	if got := strings.Join(records[1], "|"); got != "2|Ravi, Jr.|back|2025-01-06|3|L1|2|10|30.00" {
		t.Errorf("row 1 = %s", got)
	}
	if records[2][1] != "'=cmd" {
		t.Errorf("formula-looking name not escaped: %q", records[2][1])
	}
	total := records[3]
	if total[1] != "TOTAL" || total[7] != "20.00" || total[8] != "55.00" {
		t.Errorf("total line = %v", total)
	}
}

func TestGenerateWorkerReportCSV_Empty(t *testing.T) {
	out, err := GenerateWorkerReportCSV(AnalyticsReport{})
	if err != nil {
		t.Fatalf("GenerateWorkerReportCSV() error = %v", err)
	}
	records := readCSV(t, out)
	if len(records) != 2 || records[1][1] != "TOTAL" {
		t.Errorf("expected header and total only, got %v", records)
	}
}

func TestGenerateLotsCSV(t *testing.T) {
	lots := []models.Lot{{
		LotNumber:            "A1",
		Date:                 "2025-01-15",
		Ratios:               models.Ratios{"r28": 1, "r44": 0.5},
		Tukda:                models.Tukda{Count: 2, Size: "30"},
		TotalMeter:           10,
		TotalPieces:          3,
		TotalPiecesWithTukda: 5,
		Average:              10.0 / 3,
	}}

	out, err := GenerateLotsCSV(lots)
	if err != nil {
		t.Fatalf("GenerateLotsCSV() error = %v", err)
	}
	records := readCSV(t, out)

	header, row := records[0], records[1]
	if len(header) != len(row) {
		t.Fatalf("header has %d columns, row has %d", len(header), len(row))
	}
	col := func(name string) string {
		for i, h := range header {
			if h == name {
				return row[i]
			}
		}
		t.Fatalf("no column %q", name)
		return ""
	}
	checks := map[string]string{
		"Lot Number":              "A1",
		"r28":                     "1",
		"r44":                     "0.5",
		"r30":                     "0",
		"Tukda Count":             "2",
		"Tukda Size":              "30",
		"Total Pieces With Tukda": "5",
		"Average":                 "3.3333",
	}
	for name, want := range checks {
		if got := col(name); got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
}
