package store_test

import (
	"context"
	"errors"
	"testing"

	"factoryfloor/models"
	"factoryfloor/store"
	"factoryfloor/testhelpers"
)

func sampleJobCard(number string) *models.JobCard {
	return &models.JobCard{
		LotNumber: number,
		Date:      "2025-01-15",
		Brand:     "Urban Fit",
		Ratios:    models.NewRatios(),
		ProductionData: []models.JobCardRow{
			{RowID: "row-a", SerialNumber: 1, Layer: 2, Pieces: 4, Color: "Blue", FrontWorker: "w7", FrontDate: "2025-01-16", FrontRate: "2.5"},
		},
		FlyWidth:       "1.5",
		AdditionalInfo: models.AdditionalInfo{Belt: "yes", TicketPocket: "no"},
	}
}

func TestJobCardRepository_RoundTrip(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	repo := store.NewJobCardRepository(app)
	ctx := context.Background()

	jc := sampleJobCard("JC-1")
	if err := repo.Create(ctx, jc); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	got, err := repo.GetByLotNumber(ctx, "jc-1")
	if err != nil {
		t.Fatalf("GetByLotNumber() error: %v", err)
	}
	if got.FlyWidth != "1.5" || got.AdditionalInfo.Belt != "yes" || got.AdditionalInfo.TicketPocket != "no" {
		t.Errorf("job card fields mismatch: %+v", got)
	}
	row := got.ProductionData[0]
	if row.FrontWorker != "w7" || row.FrontRate != "2.5" || row.RowID != "row-a" {
		t.Errorf("row mismatch: %+v", row)
	}
}

func TestJobCardRepository_UpdateForcesLotNumber(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	repo := store.NewJobCardRepository(app)
	ctx := context.Background()

	_ = repo.Create(ctx, sampleJobCard("JC-2"))

	changed := sampleJobCard("OTHER")
	changed.FlyWidth = "2"
	if err := repo.Update(ctx, "JC-2", changed); err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if changed.LotNumber != "JC-2" {
		t.Errorf("lotNumber = %q, want JC-2", changed.LotNumber)
	}

	got, err := repo.FindExact(ctx, "JC-2")
	if err != nil {
		t.Fatalf("FindExact() error: %v", err)
	}
	if got.FlyWidth != "2" {
		t.Errorf("flyWidth = %q, want 2", got.FlyWidth)
	}
}

func TestJobCardRepository_MissingTargets(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	repo := store.NewJobCardRepository(app)
	ctx := context.Background()

	if _, err := repo.GetByLotNumber(ctx, "X"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("GetByLotNumber: expected ErrNotFound, got %v", err)
	}
	if err := repo.Update(ctx, "X", sampleJobCard("X")); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Update: expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, "X"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("Delete: expected ErrNotFound, got %v", err)
	}
}

func TestJobCardRepository_ReadsRowsWithoutIDs(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	repo := store.NewJobCardRepository(app)

	testhelpers.InsertRawJobCard(t, app, "RAW", []map[string]any{
		{"serialNumber": "1", "layer": "3", "pieces": 6, "frontRate": 12.5},
	})

	jc, err := repo.GetByLotNumber(context.Background(), "RAW")
	if err != nil {
		t.Fatalf("GetByLotNumber() error: %v", err)
	}
	row := jc.ProductionData[0]
	if row.SerialNumber != 1 || row.Layer != 3 || row.Pieces != 6 {
		t.Errorf("loose numbers not decoded: %+v", row)
	}
	if row.FrontRate != "12.5" {
		t.Errorf("frontRate = %q, want 12.5", row.FrontRate)
	}
	if jc.Ratios == nil || len(jc.Ratios) != len(models.SizeKeys) {
		t.Errorf("unset ratios should decode to all sizes at zero, got %v", jc.Ratios)
	}
}
