package services

import (
	"math"
	"testing"

	"factoryfloor/models"
)

func TestSnapRatioValue(t *testing.T) {
	tests := []struct {
		input float64
		want  float64
	}{
		{-3, 0},
		{0, 0},
		{0.01, 0.5},
		{0.49, 0.5},
		{0.5, 0.5},
		{0.74, 0.5},
		{0.75, 1},
		{1.2, 1},
		{1.25, 1.5},
		{2.6, 2.5},
		{7, 7},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}

	for _, tt := range tests {
		got := SnapRatioValue(tt.input)
		if got != tt.want {
			t.Errorf("SnapRatioValue(%v) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestSnapRatioValue_AlwaysOnHalfGrid(t *testing.T) {
	for v := -1.0; v <= 20; v += 0.013 {
		got := SnapRatioValue(v)
		if got != 0 && got < 0.5 {
			t.Fatalf("SnapRatioValue(%v) = %v, inside (0, 0.5)", v, got)
		}
		if math.Mod(got, 0.5) != 0 {
			t.Fatalf("SnapRatioValue(%v) = %v, not a multiple of 0.5", v, got)
		}
	}
}

func TestSumRatiosAndRowPieces(t *testing.T) {
	r := models.Ratios{"r28": 1, "r30": 2, "r44": 0.5, "bogus": 100}
	if got := SumRatios(r); got != 3.5 {
		t.Errorf("SumRatios() = %v, want 3.5 (unknown keys ignored)", got)
	}

	tests := []struct {
		layer int
		want  float64
	}{
		{3, 10.5},
		{1, 3.5},
		{0, 3.5},
		{-4, 3.5},
	}
	for _, tt := range tests {
		if got := RowPieces(tt.layer, r); got != tt.want {
			t.Errorf("RowPieces(%d) = %v, want %v", tt.layer, got, tt.want)
		}
	}
}

func TestComputeTotals(t *testing.T) {
	rows := []models.LotRow{
		{Meter: 10, Pieces: 4},
		{Meter: 6, Pieces: 4},
	}

	got := ComputeTotals(rows, 2)
	if got.TotalMeter != 16 || got.TotalPieces != 8 || got.GrandTotal != 10 {
		t.Errorf("unexpected totals: %+v", got)
	}
	if got.Average != 1.6 {
		t.Errorf("average = %v, want 1.6", got.Average)
	}

	empty := ComputeTotals(nil, 0)
	if empty.Average != 0 {
		t.Errorf("average with zero pieces = %v, want 0", empty.Average)
	}
}

func TestDeleteRow_Renumbers(t *testing.T) {
	rows := []models.LotRow{
		{SerialNumber: 1, Color: "a"},
		{SerialNumber: 2, Color: "b"},
		{SerialNumber: 3, Color: "c"},
	}

	got := DeleteRow(rows, 1)
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].Color != "a" || got[1].Color != "c" {
		t.Errorf("wrong rows kept: %+v", got)
	}
	if got[0].SerialNumber != 1 || got[1].SerialNumber != 2 {
		t.Errorf("serials not renumbered: %d, %d", got[0].SerialNumber, got[1].SerialNumber)
	}

	if same := DeleteRow(rows, 9); len(same) != 3 {
		t.Errorf("out of range delete should be a no-op, got %d rows", len(same))
	}
}

func TestNormalizeLot(t *testing.T) {
	lot := models.Lot{
		LotNumber: "  A1 ",
		Ratios:    models.Ratios{"r28": 0.2, "r30": 1.3},
		ProductionData: []models.LotRow{
			{SerialNumber: 7, Meter: -5, Layer: 0},
			{SerialNumber: 9, Meter: 10, Layer: 2, RowID: "keep"},
		},
		Tukda: models.Tukda{Count: -1},
	}

	NormalizeLot(&lot)

	if lot.LotNumber != "A1" {
		t.Errorf("lotNumber = %q, want trimmed A1", lot.LotNumber)
	}
	if lot.Ratios["r28"] != 0.5 || lot.Ratios["r30"] != 1.5 {
		t.Errorf("ratios not snapped: %v", lot.Ratios)
	}
	if len(lot.Ratios) != len(models.SizeKeys) {
		t.Errorf("every size key should be present, got %d", len(lot.Ratios))
	}

	first, second := lot.ProductionData[0], lot.ProductionData[1]
	if first.Layer != 1 || first.Meter != 0 {
		t.Errorf("row 1 not clamped: %+v", first)
	}
	if first.SerialNumber != 1 || second.SerialNumber != 2 {
		t.Errorf("serials = %d, %d; want 1, 2", first.SerialNumber, second.SerialNumber)
	}
	if first.RowID == "" || second.RowID != "keep" {
		t.Errorf("row ids: %q, %q", first.RowID, second.RowID)
	}
	for i, r := range lot.ProductionData {
		if want := RowPieces(r.Layer, lot.Ratios); r.Pieces != want {
			t.Errorf("row %d pieces = %v, want %v", i, r.Pieces, want)
		}
	}

	if lot.Tukda.Count != 0 || lot.Tukda.Size != models.DefaultTukdaSize {
		t.Errorf("tukda = %+v", lot.Tukda)
	}
	if lot.TotalMeter != 10 || lot.TotalPieces != 6 || lot.TotalPiecesWithTukda != 6 {
		t.Errorf("totals: meter=%v pieces=%v grand=%v", lot.TotalMeter, lot.TotalPieces, lot.TotalPiecesWithTukda)
	}
}

func TestNormalizeLot_RecomputesStalePieces(t *testing.T) {
	lot := models.Lot{
		Ratios: models.Ratios{"r28": 1, "r30": 1},
		ProductionData: []models.LotRow{
			{Layer: 3, Pieces: 999},
		},
	}
	NormalizeLot(&lot)
	if lot.ProductionData[0].Pieces != 6 {
		t.Errorf("pieces = %v, want 6", lot.ProductionData[0].Pieces)
	}

	lot.Ratios["r32"] = 2
	NormalizeLot(&lot)
	if lot.ProductionData[0].Pieces != 12 {
		t.Errorf("after ratio change pieces = %v, want 12", lot.ProductionData[0].Pieces)
	}
}
