package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/pocketbase/pocketbase/core"

	"factoryfloor/models"
	"factoryfloor/services"
	"factoryfloor/store"
)

func HandleJobCardList(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		cards, err := d.JobCards.List(e.Request.Context())
		if err != nil {
			return fail(e, d.Log, "Job cards", err)
		}
		return ok(e, http.StatusOK, map[string]any{"jobCards": cards})
	}
}

// HandleJobCardCreate stores a hand-built job card. Most job cards come from
// the lot workflow instead.
func HandleJobCardCreate(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		body, err := readBody(e)
		if err != nil {
			return fail(e, d.Log, "Job card", err)
		}
		var jc models.JobCard
		if err := json.Unmarshal(body, &jc); err != nil {
			return fail(e, d.Log, "Job card", store.Invalid(err))
		}

		if err := d.JobCards.Create(e.Request.Context(), &jc); err != nil {
			return fail(e, d.Log, "Job card", err)
		}
		return ok(e, http.StatusCreated, map[string]any{
			"id":        jc.ID,
			"lotNumber": jc.LotNumber,
		})
	}
}

func HandleJobCardView(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		jc, err := d.JobCards.Get(e.Request.Context(), e.Request.PathValue("lotNumber"))
		if err != nil {
			return fail(e, d.Log, "Job card", err)
		}
		return ok(e, http.StatusOK, map[string]any{"jobCard": jc})
	}
}

// HandleJobCardUpdate saves worker assignments and finishing details.
func HandleJobCardUpdate(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		lotNumber := e.Request.PathValue("lotNumber")
		body, err := readBody(e)
		if err != nil {
			return fail(e, d.Log, "Job card", err)
		}

		jc, err := d.JobCards.Update(e.Request.Context(), lotNumber, body)
		if err != nil {
			return fail(e, d.Log, "Job card", err)
		}

		_ = SetToast(e, "success", "Job card updated successfully")
		return ok(e, http.StatusOK, map[string]any{
			"lotNumber": jc.LotNumber,
			"jobCard":   jc,
			"message":   "Job card updated successfully",
		})
	}
}

func HandleJobCardDelete(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		lotNumber := e.Request.PathValue("lotNumber")
		if err := d.JobCards.Delete(e.Request.Context(), lotNumber); err != nil {
			return fail(e, d.Log, "Job card", err)
		}
		return ok(e, http.StatusOK, map[string]any{
			"lotNumber": lotNumber,
			"message":   "Job card deleted successfully",
		})
	}
}

// HandleJobCardExportPDF downloads a job card with worker names resolved.
func HandleJobCardExportPDF(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		ctx := e.Request.Context()
		jc, err := d.JobCards.Get(ctx, e.Request.PathValue("lotNumber"))
		if err != nil {
			return fail(e, d.Log, "Job card", err)
		}

		// Without the worker list the sheet still prints, with raw references.
		names := map[string]string{}
		if workers, err := d.Workers.List(ctx); err != nil {
			d.Log.Warn("job card pdf without worker names", "lotNumber", jc.LotNumber, "error", err)
		} else {
			for _, w := range workers {
				names[w.ID] = w.FullName
				names[strconv.Itoa(w.WorkerID)] = w.FullName
			}
		}

		pdfBytes, err := services.GenerateJobCardPDF(*jc, names)
		if err != nil {
			d.Log.Error("job card pdf failed", "lotNumber", jc.LotNumber, "error", err)
			return ErrorJSON(e, http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("JobCard_%s_%s.pdf", orDefault(jc.LotNumber, "Production"), orDefault(jc.Date, "Report"))
		return download(e, contentTypePDF, filename, pdfBytes)
	}
}
