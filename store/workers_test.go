package store_test

import (
	"context"
	"errors"
	"testing"

	"factoryfloor/models"
	"factoryfloor/store"
	"factoryfloor/testhelpers"
)

func TestWorkerRepository_AutoIncrement(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	repo := store.NewWorkerRepository(app)
	ctx := context.Background()

	first := &models.Worker{FullName: "Ravi Kumar", WorkerID: 99}
	if err := repo.Create(ctx, first); err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if first.WorkerID != 1 {
		t.Errorf("first worker_id = %d, want 1", first.WorkerID)
	}

	second := &models.Worker{FullName: "Meena Devi"}
	_ = repo.Create(ctx, second)
	if second.WorkerID != 2 {
		t.Errorf("second worker_id = %d, want 2", second.WorkerID)
	}

	// Ids continue from the highest existing one.
	testhelpers.CreateTestWorker(t, app, 10, "Imported")
	third := &models.Worker{FullName: "Arjun"}
	_ = repo.Create(ctx, third)
	if third.WorkerID != 11 {
		t.Errorf("third worker_id = %d, want 11", third.WorkerID)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].WorkerID > list[i].WorkerID {
			t.Errorf("workers not sorted by worker_id: %d before %d", list[i-1].WorkerID, list[i].WorkerID)
		}
	}
}

func TestWorkerRepository_UpdateKeepsWorkerID(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	repo := store.NewWorkerRepository(app)
	ctx := context.Background()

	w := &models.Worker{FullName: "Ravi", Profile: map[string]any{"phone": "12345"}}
	_ = repo.Create(ctx, w)

	got, err := repo.Update(ctx, w.ID, []byte(`{"worker_id": 500, "worker_full_name": "Ravi Kumar", "skill": "zip"}`))
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if got.WorkerID != w.WorkerID {
		t.Errorf("worker_id changed to %d", got.WorkerID)
	}
	if got.FullName != "Ravi Kumar" {
		t.Errorf("name = %q", got.FullName)
	}
	if got.Profile["phone"] != "12345" || got.Profile["skill"] != "zip" {
		t.Errorf("profile fields not merged: %v", got.Profile)
	}
}

func TestWorkerRepository_Errors(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	repo := store.NewWorkerRepository(app)
	ctx := context.Background()

	if err := repo.Create(ctx, &models.Worker{}); !errors.Is(err, store.ErrInvalid) {
		t.Errorf("Create without name: expected ErrInvalid, got %v", err)
	}
	if _, err := repo.Update(ctx, "missingid12345", []byte(`{}`)); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Update missing: expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, "missingid12345"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Delete missing: expected ErrNotFound, got %v", err)
	}

	w := &models.Worker{FullName: "Temp"}
	_ = repo.Create(ctx, w)
	if _, err := repo.Update(ctx, w.ID, []byte(`{"worker_full_name": ""}`)); !errors.Is(err, store.ErrInvalid) {
		t.Errorf("Update to empty name: expected ErrInvalid, got %v", err)
	}
}

func TestWorkerRepository_HonoursCancelledContext(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	repo := store.NewWorkerRepository(app)

	w := &models.Worker{FullName: "Asha"}
	if err := repo.Create(context.Background(), w); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := repo.Update(ctx, w.ID, []byte(`{"worker_full_name":"X"}`)); !errors.Is(err, store.ErrStoreUnavailable) {
		t.Errorf("Update with cancelled context: expected ErrStoreUnavailable, got %v", err)
	}
	if err := repo.Delete(ctx, w.ID); !errors.Is(err, store.ErrStoreUnavailable) {
		t.Errorf("Delete with cancelled context: expected ErrStoreUnavailable, got %v", err)
	}
}
