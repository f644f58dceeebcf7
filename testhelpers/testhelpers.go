// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"factoryfloor/collections"
	"factoryfloor/logger"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	if err := collections.Setup(app, logger.Nop()); err != nil {
		t.Fatalf("failed to set up collections: %v", err)
	}

	return app
}

// InsertRawLot stores a lot record directly, bypassing services and the
// synchronizer. productionData is stored as given, so rows can lack ids.
func InsertRawLot(t *testing.T, app core.App, lotNumber string, productionData []map[string]any) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collections.Lots)
	if err != nil {
		t.Fatalf("failed to find lots collection: %v", err)
	}

	if productionData == nil {
		productionData = []map[string]any{}
	}
	record := core.NewRecord(col)
	record.Set("lot_number", lotNumber)
	record.Set("date", "2025-01-15")
	record.Set("brand", "Denim Co")
	record.Set("ratios", map[string]float64{"r28": 1})
	record.Set("production_data", productionData)
	record.Set("tukda", map[string]any{"count": 0, "size": "28"})

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test lot: %v", err)
	}
	return record
}

// InsertRawJobCard stores a job card record directly.
func InsertRawJobCard(t *testing.T, app core.App, lotNumber string, productionData []map[string]any) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collections.JobCards)
	if err != nil {
		t.Fatalf("failed to find jobcards collection: %v", err)
	}

	if productionData == nil {
		productionData = []map[string]any{}
	}
	record := core.NewRecord(col)
	record.Set("lot_number", lotNumber)
	record.Set("production_data", productionData)
	record.Set("additional_info", map[string]string{})

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test job card: %v", err)
	}
	return record
}

// CreateTestLookup creates a brand/color/fabric/pattern entry.
func CreateTestLookup(t *testing.T, app core.App, kind, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(kind)
	if err != nil {
		t.Fatalf("failed to find %s collection: %v", kind, err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test %s: %v", kind, err)
	}
	return record
}

// CreateTestWorker creates a worker with an explicit worker_id.
func CreateTestWorker(t *testing.T, app core.App, workerID int, fullName string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collections.Workers)
	if err != nil {
		t.Fatalf("failed to find workers collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("worker_id", workerID)
	record.Set("worker_full_name", fullName)
	record.Set("profile", map[string]any{})
	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test worker: %v", err)
	}
	return record
}

// CountByLotNumber returns how many records of collection carry lotNumber.
func CountByLotNumber(t *testing.T, app core.App, collection, lotNumber string) int {
	t.Helper()

	records, err := app.FindAllRecords(collection)
	if err != nil {
		t.Fatalf("failed to list %s: %v", collection, err)
	}
	n := 0
	for _, r := range records {
		if r.GetString("lot_number") == lotNumber {
			n++
		}
	}
	return n
}

// DecodeJSON unmarshals a response body into v, failing the test on error.
func DecodeJSON(t *testing.T, body string, v any) {
	t.Helper()

	if err := json.Unmarshal([]byte(body), v); err != nil {
		t.Fatalf("response is not valid JSON: %v\nbody: %s", err, body)
	}
}

// AssertContains checks that body contains all specified fragments.
func AssertContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected body to contain %q", frag)
		}
	}
}
