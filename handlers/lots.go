package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"factoryfloor/models"
	"factoryfloor/services"
	"factoryfloor/store"
)

// HandleLotList returns all lots, newest first. Listing also backfills any
// missing job cards.
func HandleLotList(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		lots, err := d.Lots.List(e.Request.Context())
		if err != nil {
			return fail(e, d.Log, "Lots", err)
		}
		return ok(e, http.StatusOK, map[string]any{"lots": lots})
	}
}

// HandleLotCreate saves a new lot; its job card is created alongside.
func HandleLotCreate(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		body, err := readBody(e)
		if err != nil {
			return fail(e, d.Log, "Lot", err)
		}
		var lot models.Lot
		if err := json.Unmarshal(body, &lot); err != nil {
			return fail(e, d.Log, "Lot", store.Invalid(err))
		}

		if err := d.Lots.Create(e.Request.Context(), &lot); err != nil {
			return fail(e, d.Log, "Lot", err)
		}

		_ = SetToast(e, "success", "Lot saved successfully")
		return ok(e, http.StatusCreated, map[string]any{
			"id":        lot.ID,
			"lotNumber": lot.LotNumber,
			"lot":       lot,
		})
	}
}

// HandleLotView returns one lot by number, making sure it has a job card.
func HandleLotView(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		lot, err := d.Lots.Get(e.Request.Context(), e.Request.PathValue("lotNumber"))
		if err != nil {
			return fail(e, d.Log, "Lot", err)
		}
		return ok(e, http.StatusOK, map[string]any{"lot": lot})
	}
}

// HandleLotUpdate applies a partial update. The lot number in the path
// wins over any in the body.
func HandleLotUpdate(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		lotNumber := e.Request.PathValue("lotNumber")
		body, err := readBody(e)
		if err != nil {
			return fail(e, d.Log, "Lot", err)
		}

		lot, err := d.Lots.Update(e.Request.Context(), lotNumber, body)
		if err != nil {
			return fail(e, d.Log, "Lot", err)
		}

		_ = SetToast(e, "success", "Lot updated successfully")
		return ok(e, http.StatusOK, map[string]any{
			"lotNumber": lot.LotNumber,
			"lot":       lot,
			"message":   "Lot updated successfully",
		})
	}
}

// HandleLotDelete removes a lot and, best-effort, its job card.
func HandleLotDelete(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		lotNumber := e.Request.PathValue("lotNumber")
		if err := d.Lots.Delete(e.Request.Context(), lotNumber); err != nil {
			return fail(e, d.Log, "Lot", err)
		}

		_ = SetToast(e, "success", "Lot deleted successfully")
		return ok(e, http.StatusOK, map[string]any{
			"lotNumber": lotNumber,
			"message":   "Lot deleted successfully",
		})
	}
}

// HandleLotExportPDF downloads the cutting sheet for one lot.
func HandleLotExportPDF(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		lot, err := d.Lots.Get(e.Request.Context(), e.Request.PathValue("lotNumber"))
		if err != nil {
			return fail(e, d.Log, "Lot", err)
		}

		pdfBytes, err := services.GenerateLotPDF(*lot)
		if err != nil {
			d.Log.Error("lot pdf failed", "lotNumber", lot.LotNumber, "error", err)
			return ErrorJSON(e, http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("Lot_%s_%s.pdf", orDefault(lot.LotNumber, "Production"), orDefault(lot.Date, "Report"))
		return download(e, contentTypePDF, filename, pdfBytes)
	}
}

// HandleLotsExportCSV downloads every lot as one CSV line each.
func HandleLotsExportCSV(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		lots, err := d.Lots.List(e.Request.Context())
		if err != nil {
			return fail(e, d.Log, "Lots", err)
		}

		csvBytes, err := services.GenerateLotsCSV(lots)
		if err != nil {
			d.Log.Error("lots csv failed", "error", err)
			return ErrorJSON(e, http.StatusInternalServerError, "Failed to generate CSV file")
		}
		return download(e, contentTypeCSV, "Lots_"+today()+".csv", csvBytes)
	}
}

// HandleLotsExportExcel downloads the lots register workbook.
func HandleLotsExportExcel(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		lots, err := d.Lots.List(e.Request.Context())
		if err != nil {
			return fail(e, d.Log, "Lots", err)
		}

		xlsxBytes, err := services.GenerateLotsExcel(lots)
		if err != nil {
			d.Log.Error("lots excel failed", "error", err)
			return ErrorJSON(e, http.StatusInternalServerError, "Failed to generate Excel file")
		}
		return download(e, contentTypeXLSX, "Lots_"+today()+".xlsx", xlsxBytes)
	}
}
