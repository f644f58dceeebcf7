package store_test

import (
	"context"
	"errors"
	"testing"

	"factoryfloor/collections"
	"factoryfloor/models"
	"factoryfloor/store"
	"factoryfloor/testhelpers"
)

func TestLookupRepository_CreateAndList(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	repo := store.NewLookupRepository(app, collections.Brands)
	ctx := context.Background()

	for _, name := range []string{"Zeta", "Alpha", "  Mid  "} {
		if _, err := repo.Create(ctx, models.LookupInput{Name: name}); err != nil {
			t.Fatalf("Create(%q) error: %v", name, err)
		}
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	want := []string{"Alpha", "Mid", "Zeta"}
	if len(list) != len(want) {
		t.Fatalf("expected %d brands, got %d", len(want), len(list))
	}
	for i, w := range want {
		if list[i].Name != w {
			t.Errorf("list[%d] = %q, want %q", i, list[i].Name, w)
		}
	}
}

func TestLookupRepository_Errors(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	repo := store.NewLookupRepository(app, collections.Colors)
	ctx := context.Background()

	red, err := repo.Create(ctx, models.LookupInput{Name: "Red"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	blue, _ := repo.Create(ctx, models.LookupInput{Name: "Blue"})

	tests := []struct {
		name    string
		run     func() error
		wantErr error
	}{
		{"duplicate create", func() error {
			_, err := repo.Create(ctx, models.LookupInput{Name: "Red"})
			return err
		}, store.ErrConflict},
		{"empty name", func() error {
			_, err := repo.Create(ctx, models.LookupInput{Name: "   "})
			return err
		}, store.ErrInvalid},
		{"rename onto another", func() error {
			_, err := repo.Update(ctx, blue.ID, models.LookupInput{Name: "Red"})
			return err
		}, store.ErrConflict},
		{"rename missing", func() error {
			_, err := repo.Update(ctx, "missingid12345", models.LookupInput{Name: "Green"})
			return err
		}, store.ErrNotFound},
		{"delete missing", func() error {
			return repo.Delete(ctx, "missingid12345")
		}, store.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	// Renaming an entry to its own name is not a conflict.
	if _, err := repo.Update(ctx, red.ID, models.LookupInput{Name: "Red"}); err != nil {
		t.Errorf("rename to same name: %v", err)
	}
}

func TestLookupRepository_UpdateAndDelete(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	repo := store.NewLookupRepository(app, collections.Patterns)
	ctx := context.Background()

	p, _ := repo.Create(ctx, models.LookupInput{Name: "Cargo"})
	updated, err := repo.Update(ctx, p.ID, models.LookupInput{Name: "Cargo Loose"})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.Name != "Cargo Loose" || updated.ID != p.ID {
		t.Errorf("unexpected update result: %+v", updated)
	}

	if err := repo.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	list, _ := repo.List(ctx)
	if len(list) != 0 {
		t.Errorf("expected empty list after delete, got %d", len(list))
	}
}

func TestLookupRepository_DeleteHonoursCancelledContext(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	repo := store.NewLookupRepository(app, collections.Brands)

	lk, err := repo.Create(context.Background(), models.LookupInput{Name: "Urban Fit"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := repo.Delete(ctx, lk.ID); !errors.Is(err, store.ErrStoreUnavailable) {
		t.Errorf("Delete with cancelled context: expected ErrStoreUnavailable, got %v", err)
	}
	if items, _ := repo.List(context.Background()); len(items) != 1 {
		t.Errorf("entry should survive the cancelled delete, got %d entries", len(items))
	}
}
