package services

import (
	"math"
	"strings"

	"github.com/google/uuid"

	"factoryfloor/models"
)

// SumRatios adds the nine size ratios. Sizes missing from r count as 0.
func SumRatios(r models.Ratios) float64 {
	var sum float64
	for _, k := range models.SizeKeys {
		sum += r[k]
	}
	return sum
}

// SnapRatioValue puts a ratio on the half-unit grid: non-positive values
// become 0, anything in (0, 0.5) becomes 0.5, the rest round to the nearest
// 0.5.
func SnapRatioValue(v float64) float64 {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0) || v <= 0:
		return 0
	case v < 0.5:
		return 0.5
	}
	return math.Round(v*2) / 2
}

// SnapRatios returns a copy of r with every size snapped and every size
// key present.
func SnapRatios(r models.Ratios) models.Ratios {
	out := models.NewRatios()
	for _, k := range models.SizeKeys {
		out[k] = SnapRatioValue(r[k])
	}
	return out
}

// RowPieces is layer × Σratios, with layer floored at 1.
func RowPieces(layer int, r models.Ratios) float64 {
	return float64(max(1, layer)) * SumRatios(r)
}

// Totals are the denormalised sums stored on a lot.
type Totals struct {
	TotalMeter  float64
	TotalPieces float64
	GrandTotal  float64
	Average     float64
}

func ComputeTotals(rows []models.LotRow, tukdaCount int) Totals {
	var t Totals
	for _, r := range rows {
		t.TotalMeter += r.Meter
		t.TotalPieces += r.Pieces
	}
	t.GrandTotal = t.TotalPieces + float64(tukdaCount)
	if t.GrandTotal != 0 {
		t.Average = t.TotalMeter / t.GrandTotal
	}
	return t
}

// Renumber rewrites serial numbers to 1..N in slice order.
func Renumber(rows []models.LotRow) {
	for i := range rows {
		rows[i].SerialNumber = i + 1
	}
}

// DeleteRow removes the row at index and renumbers what is left. An out of
// range index returns rows unchanged.
func DeleteRow(rows []models.LotRow, index int) []models.LotRow {
	if index < 0 || index >= len(rows) {
		return rows
	}
	out := make([]models.LotRow, 0, len(rows)-1)
	out = append(out, rows[:index]...)
	out = append(out, rows[index+1:]...)
	Renumber(out)
	return out
}

// NormalizeLot brings a lot submitted by a client in line with the stored
// invariants: ratios on the half grid, layer at least 1, non-negative
// meters, pieces and totals recomputed, serials dense and every row
// carrying a stable id.
func NormalizeLot(l *models.Lot) {
	l.LotNumber = strings.TrimSpace(l.LotNumber)
	l.Ratios = SnapRatios(l.Ratios)
	if l.ProductionData == nil {
		l.ProductionData = []models.LotRow{}
	}

	for i := range l.ProductionData {
		row := &l.ProductionData[i]
		row.Layer = max(1, row.Layer)
		row.Meter = max(0, row.Meter)
		row.Pieces = RowPieces(row.Layer, l.Ratios)
		if row.RowID == "" {
			row.RowID = uuid.NewString()
		}
	}
	Renumber(l.ProductionData)

	l.Tukda.Count = max(0, l.Tukda.Count)
	if l.Tukda.Size == "" {
		l.Tukda.Size = models.DefaultTukdaSize
	}

	t := ComputeTotals(l.ProductionData, l.Tukda.Count)
	l.TotalMeter = t.TotalMeter
	l.TotalPieces = t.TotalPieces
	l.TotalPiecesWithTukda = t.GrandTotal
	l.Average = t.Average
}

// NormalizeJobCard fills the defaults a stored job card relies on. Pieces
// are left as sent: they belong to the lot and arrive through sync.
func NormalizeJobCard(jc *models.JobCard) {
	jc.LotNumber = strings.TrimSpace(jc.LotNumber)
	if jc.Ratios == nil {
		jc.Ratios = models.NewRatios()
	}
	if jc.ProductionData == nil {
		jc.ProductionData = []models.JobCardRow{}
	}
	for i := range jc.ProductionData {
		if jc.ProductionData[i].RowID == "" {
			jc.ProductionData[i].RowID = uuid.NewString()
		}
	}
}
