package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"factoryfloor/models"
	"factoryfloor/store"
)

func HandleWorkerList(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		workers, err := d.Workers.List(e.Request.Context())
		if err != nil {
			return fail(e, d.Log, "Workers", err)
		}
		return ok(e, http.StatusOK, map[string]any{"workers": workers})
	}
}

// HandleWorkerCreate adds a worker. The worker_id is assigned here; any
// worker_id in the body is ignored.
func HandleWorkerCreate(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		body, err := readBody(e)
		if err != nil {
			return fail(e, d.Log, "Worker", err)
		}
		var w models.Worker
		if err := json.Unmarshal(body, &w); err != nil {
			return fail(e, d.Log, "Worker", store.Invalid(err))
		}

		if err := d.Workers.Create(e.Request.Context(), &w); err != nil {
			return fail(e, d.Log, "Worker", err)
		}

		_ = SetToast(e, "success", "Worker added successfully")
		return ok(e, http.StatusCreated, map[string]any{
			"id":     w.ID,
			"worker": w,
		})
	}
}

func HandleWorkerUpdate(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		body, err := readBody(e)
		if err != nil {
			return fail(e, d.Log, "Worker", err)
		}

		w, err := d.Workers.Update(e.Request.Context(), e.Request.PathValue("id"), body)
		if err != nil {
			return fail(e, d.Log, "Worker", err)
		}
		return ok(e, http.StatusOK, map[string]any{
			"worker":  w,
			"message": "Worker updated successfully",
		})
	}
}

func HandleWorkerDelete(d *Deps) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		if err := d.Workers.Delete(e.Request.Context(), e.Request.PathValue("id")); err != nil {
			return fail(e, d.Log, "Worker", err)
		}
		return ok(e, http.StatusOK, map[string]any{"message": "Worker deleted successfully"})
	}
}
