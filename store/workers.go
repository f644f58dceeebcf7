package store

import (
	"context"
	"fmt"

	"github.com/pocketbase/pocketbase/core"

	"factoryfloor/collections"
	"factoryfloor/models"
)

// WorkerRepository manages the workers collection. Numeric worker ids are
// handed out here, one past the current highest.
type WorkerRepository struct {
	app core.App
}

func NewWorkerRepository(app core.App) *WorkerRepository {
	return &WorkerRepository{app: app}
}

// List returns every worker ordered by worker id.
func (r *WorkerRepository) List(ctx context.Context) ([]models.Worker, error) {
	records := []*core.Record{}
	err := r.app.RecordQuery(collections.Workers).
		WithContext(ctx).
		OrderBy("worker_id ASC").
		All(&records)
	if err != nil {
		return nil, unavailable("workers: list", err)
	}

	out := make([]models.Worker, 0, len(records))
	for _, rec := range records {
		w, err := workerFromRecord(rec)
		if err != nil {
			return nil, unavailable("workers: list", err)
		}
		out = append(out, w)
	}
	return out, nil
}

// Create stores w under the next free worker id. Any worker_id the caller
// sent is ignored.
func (r *WorkerRepository) Create(ctx context.Context, w *models.Worker) error {
	if err := w.Validate(); err != nil {
		return Invalid(err)
	}

	col, err := r.app.FindCollectionByNameOrId(collections.Workers)
	if err != nil {
		return unavailable("workers: create", err)
	}
	next, err := r.nextWorkerID(ctx)
	if err != nil {
		return unavailable("workers: create", err)
	}

	w.WorkerID = next
	rec := core.NewRecord(col)
	setWorkerFields(rec, w)
	if err := r.app.SaveWithContext(ctx, rec); err != nil {
		return wrap("workers: create", err)
	}
	stampWorker(rec, w)
	return nil
}

// Update applies patch to the worker with the given id. worker_id stays
// what it was.
func (r *WorkerRepository) Update(ctx context.Context, id string, patch []byte) (*models.Worker, error) {
	rec, err := findByID(ctx, r.app, collections.Workers, id)
	if err != nil {
		return nil, wrap("workers: update "+id, err)
	}
	current, err := workerFromRecord(rec)
	if err != nil {
		return nil, unavailable("workers: update "+id, err)
	}

	workerID := current.WorkerID
	if err := models.ApplyPatch(&current, patch); err != nil {
		return nil, Invalid(err)
	}
	current.WorkerID = workerID
	if err := current.Validate(); err != nil {
		return nil, Invalid(err)
	}

	setWorkerFields(rec, &current)
	if err := r.app.SaveWithContext(ctx, rec); err != nil {
		return nil, wrap("workers: update "+id, err)
	}
	stampWorker(rec, &current)
	return &current, nil
}

func (r *WorkerRepository) Delete(ctx context.Context, id string) error {
	rec, err := findByID(ctx, r.app, collections.Workers, id)
	if err != nil {
		return wrap("workers: delete "+id, err)
	}
	if err := r.app.DeleteWithContext(ctx, rec); err != nil {
		return wrap("workers: delete "+id, err)
	}
	return nil
}

func (r *WorkerRepository) nextWorkerID(ctx context.Context) (int, error) {
	records := []*core.Record{}
	err := r.app.RecordQuery(collections.Workers).
		WithContext(ctx).
		OrderBy("worker_id DESC").
		Limit(1).
		All(&records)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 1, nil
	}
	return records[0].GetInt("worker_id") + 1, nil
}

func setWorkerFields(rec *core.Record, w *models.Worker) {
	profile := w.Profile
	if profile == nil {
		profile = map[string]any{}
	}
	rec.Set("worker_id", w.WorkerID)
	rec.Set("worker_full_name", w.FullName)
	rec.Set("profile", profile)
}

func stampWorker(rec *core.Record, w *models.Worker) {
	w.ID = rec.Id
	w.CreatedAt = rec.GetDateTime("created").Time()
	w.UpdatedAt = rec.GetDateTime("updated").Time()
}

func workerFromRecord(rec *core.Record) (models.Worker, error) {
	w := models.Worker{
		WorkerID: rec.GetInt("worker_id"),
		FullName: rec.GetString("worker_full_name"),
		Profile:  map[string]any{},
	}
	if err := collections.ReadJSONField(rec, "profile", &w.Profile); err != nil {
		return models.Worker{}, fmt.Errorf("decode profile of %s: %w", rec.Id, err)
	}
	stampWorker(rec, &w)
	return w, nil
}
