package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"factoryfloor/models"
)

// LookupRepository manages one lookup collection (brands, colors, fabrics
// or patterns). Names are unique within a collection.
type LookupRepository struct {
	app  core.App
	kind string
}

func NewLookupRepository(app core.App, kind string) *LookupRepository {
	return &LookupRepository{app: app, kind: kind}
}

// Kind is the collection name the repository serves.
func (r *LookupRepository) Kind() string { return r.kind }

// List returns every entry sorted by name.
func (r *LookupRepository) List(ctx context.Context) ([]models.Lookup, error) {
	records := []*core.Record{}
	err := r.app.RecordQuery(r.kind).
		WithContext(ctx).
		OrderBy("name ASC").
		All(&records)
	if err != nil {
		return nil, unavailable(r.kind+": list", err)
	}

	out := make([]models.Lookup, 0, len(records))
	for _, rec := range records {
		out = append(out, lookupFromRecord(rec))
	}
	return out, nil
}

func (r *LookupRepository) Create(ctx context.Context, in models.LookupInput) (*models.Lookup, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := in.Validate(); err != nil {
		return nil, Invalid(err)
	}

	taken, err := r.nameTaken(ctx, in.Name, "")
	if err != nil {
		return nil, unavailable(r.kind+": create", err)
	}
	if taken {
		return nil, fmt.Errorf("%s: create %q: %w", r.kind, in.Name, ErrConflict)
	}

	col, err := r.app.FindCollectionByNameOrId(r.kind)
	if err != nil {
		return nil, unavailable(r.kind+": create", err)
	}
	rec := core.NewRecord(col)
	rec.Set("name", in.Name)
	if err := r.app.SaveWithContext(ctx, rec); err != nil {
		return nil, wrap(r.kind+": create", err)
	}

	out := lookupFromRecord(rec)
	return &out, nil
}

// Update renames the entry with the given id. The new name must not belong
// to another entry.
func (r *LookupRepository) Update(ctx context.Context, id string, in models.LookupInput) (*models.Lookup, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := in.Validate(); err != nil {
		return nil, Invalid(err)
	}

	rec, err := findByID(ctx, r.app, r.kind, id)
	if err != nil {
		return nil, wrap(r.kind+": update "+id, err)
	}

	taken, err := r.nameTaken(ctx, in.Name, id)
	if err != nil {
		return nil, unavailable(r.kind+": update "+id, err)
	}
	if taken {
		return nil, fmt.Errorf("%s: rename to %q: %w", r.kind, in.Name, ErrConflict)
	}

	rec.Set("name", in.Name)
	if err := r.app.SaveWithContext(ctx, rec); err != nil {
		return nil, wrap(r.kind+": update "+id, err)
	}

	out := lookupFromRecord(rec)
	return &out, nil
}

func (r *LookupRepository) Delete(ctx context.Context, id string) error {
	rec, err := findByID(ctx, r.app, r.kind, id)
	if err != nil {
		return wrap(r.kind+": delete "+id, err)
	}
	if err := r.app.DeleteWithContext(ctx, rec); err != nil {
		return wrap(r.kind+": delete "+id, err)
	}
	return nil
}

// nameTaken reports whether name is already used by an entry other than
// exceptID.
func (r *LookupRepository) nameTaken(ctx context.Context, name, exceptID string) (bool, error) {
	q := r.app.RecordQuery(r.kind).
		WithContext(ctx).
		AndWhere(dbx.HashExp{"name": name})
	if exceptID != "" {
		q = q.AndWhere(dbx.Not(dbx.HashExp{"id": exceptID}))
	}

	records := []*core.Record{}
	if err := q.Limit(1).All(&records); err != nil {
		return false, err
	}
	return len(records) > 0, nil
}

func lookupFromRecord(rec *core.Record) models.Lookup {
	return models.Lookup{
		ID:        rec.Id,
		Name:      rec.GetString("name"),
		CreatedAt: rec.GetDateTime("created").Time(),
		UpdatedAt: rec.GetDateTime("updated").Time(),
	}
}
