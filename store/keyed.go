package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
)

// findExact returns the oldest record whose lot_number equals key exactly.
func findExact(ctx context.Context, app core.App, collection, key string) (*core.Record, error) {
	return first(app.RecordQuery(collection).
		WithContext(ctx).
		AndWhere(dbx.HashExp{"lot_number": key}))
}

// findByKey tries an exact lot_number match first and falls back to a
// case-insensitive one. Lot numbers are typed by hand, so "lot-001" should
// still find "LOT-001". Duplicates are possible; the oldest match wins.
func findByKey(ctx context.Context, app core.App, collection, key string) (*core.Record, error) {
	rec, err := findExact(ctx, app, collection, key)
	if err == nil {
		return rec, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	return first(app.RecordQuery(collection).
		WithContext(ctx).
		AndWhere(dbx.NewExp("LOWER([[lot_number]]) = LOWER({:key})", dbx.Params{"key": key})))
}

// findByID returns the record with the given id, honouring ctx.
func findByID(ctx context.Context, app core.App, collection, id string) (*core.Record, error) {
	return first(app.RecordQuery(collection).
		WithContext(ctx).
		AndWhere(dbx.HashExp{"id": id}))
}

func first(q *dbx.SelectQuery) (*core.Record, error) {
	records := []*core.Record{}
	if err := q.OrderBy("created ASC").Limit(1).All(&records); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, sql.ErrNoRows
	}
	return records[0], nil
}
