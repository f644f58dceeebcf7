package services

import "factoryfloor/models"

// NewJobCardFromLot builds the job card a fresh lot starts with: lot
// identity, date, brand and ratios copied over, one row per production row
// with every worker assignment empty.
func NewJobCardFromLot(lot models.Lot) models.JobCard {
	rows := make([]models.JobCardRow, 0, len(lot.ProductionData))
	for _, r := range lot.ProductionData {
		rows = append(rows, models.JobCardRow{
			RowID:        r.RowID,
			SerialNumber: r.SerialNumber,
			Layer:        r.Layer,
			Pieces:       r.Pieces,
			Color:        r.Color,
			Shade:        r.Shade,
		})
	}
	return models.JobCard{
		LotNumber:      lot.LotNumber,
		Date:           lot.Date,
		Brand:          lot.Brand,
		Ratios:         copyRatios(lot.Ratios),
		ProductionData: rows,
	}
}

// MergeRows lays the lot's rows over the job card's existing rows. A lot
// row is paired with the existing row carrying the same rowId. A lot row
// whose id matches nothing falls back to the existing row at its position,
// provided no other lot row claimed that one by id. Ids minted separately
// on each side (a client that sent none, rows migrated independently) thus
// still pair the way they always have.
//
// The result has exactly one row per lot row and takes the lot's ids:
// lot-owned fields come from the lot, everything else (operations,
// worker, date, rate) from the paired row. Unpaired existing rows are
// dropped.
func MergeRows(lotRows []models.LotRow, existing []models.JobCardRow) []models.JobCardRow {
	byID := make(map[string]int, len(existing))
	for i, r := range existing {
		if r.RowID != "" {
			byID[r.RowID] = i
		}
	}

	paired := make([]int, len(lotRows))
	claimed := make([]bool, len(existing))
	for i, lr := range lotRows {
		paired[i] = -1
		if j, ok := byID[lr.RowID]; ok && lr.RowID != "" && !claimed[j] {
			paired[i] = j
			claimed[j] = true
		}
	}
	for i := range lotRows {
		if paired[i] < 0 && i < len(existing) && !claimed[i] {
			paired[i] = i
			claimed[i] = true
		}
	}

	merged := make([]models.JobCardRow, 0, len(lotRows))
	for i, lr := range lotRows {
		var base models.JobCardRow
		if j := paired[i]; j >= 0 {
			base = existing[j]
		}

		base.RowID = lr.RowID
		base.SerialNumber = lr.SerialNumber
		base.Layer = lr.Layer
		base.Pieces = lr.Pieces
		base.Color = lr.Color
		base.Shade = lr.Shade
		base.ZipCode = lr.ZipCode
		base.ThreadCode = lr.ThreadCode
		merged = append(merged, base)
	}
	return merged
}

// MergeJobCard returns existing resynced to lot. flyWidth and
// additionalInfo are left exactly as they were.
func MergeJobCard(lot models.Lot, existing models.JobCard) models.JobCard {
	out := existing
	out.LotNumber = lot.LotNumber
	out.Date = lot.Date
	out.Brand = lot.Brand
	out.Ratios = copyRatios(lot.Ratios)
	out.ProductionData = MergeRows(lot.ProductionData, existing.ProductionData)
	return out
}

func copyRatios(r models.Ratios) models.Ratios {
	out := models.NewRatios()
	for _, k := range models.SizeKeys {
		out[k] = r[k]
	}
	return out
}
