package store

import (
	"context"
	"fmt"

	"github.com/pocketbase/pocketbase/core"

	"factoryfloor/collections"
	"factoryfloor/models"
)

// LotRepository is CRUD over the lots collection keyed by lot number.
type LotRepository struct {
	app core.App
}

func NewLotRepository(app core.App) *LotRepository {
	return &LotRepository{app: app}
}

// Create inserts the lot unconditionally; lot numbers are not checked for
// uniqueness. On success lot gets its id and timestamps.
func (r *LotRepository) Create(ctx context.Context, lot *models.Lot) error {
	col, err := r.app.FindCollectionByNameOrId(collections.Lots)
	if err != nil {
		return unavailable("lots: create", err)
	}

	rec := core.NewRecord(col)
	setLotFields(rec, lot)
	if err := r.app.SaveWithContext(ctx, rec); err != nil {
		return wrap("lots: create", err)
	}
	stampLot(rec, lot)
	return nil
}

// List returns every lot, newest first.
func (r *LotRepository) List(ctx context.Context) ([]models.Lot, error) {
	records := []*core.Record{}
	err := r.app.RecordQuery(collections.Lots).
		WithContext(ctx).
		OrderBy("created DESC").
		All(&records)
	if err != nil {
		return nil, unavailable("lots: list", err)
	}

	lots := make([]models.Lot, 0, len(records))
	for _, rec := range records {
		lot, err := lotFromRecord(rec)
		if err != nil {
			return nil, unavailable("lots: list", err)
		}
		lots = append(lots, lot)
	}
	return lots, nil
}

// GetByNumber finds a lot by exact lot number, falling back to a
// case-insensitive match.
func (r *LotRepository) GetByNumber(ctx context.Context, lotNumber string) (*models.Lot, error) {
	rec, err := findByKey(ctx, r.app, collections.Lots, lotNumber)
	if err != nil {
		return nil, wrap("lots: get "+lotNumber, err)
	}
	lot, err := lotFromRecord(rec)
	if err != nil {
		return nil, unavailable("lots: get "+lotNumber, err)
	}
	return &lot, nil
}

// FindExact finds a lot by its exact lot number only.
func (r *LotRepository) FindExact(ctx context.Context, lotNumber string) (*models.Lot, error) {
	rec, err := findExact(ctx, r.app, collections.Lots, lotNumber)
	if err != nil {
		return nil, wrap("lots: find "+lotNumber, err)
	}
	lot, err := lotFromRecord(rec)
	if err != nil {
		return nil, unavailable("lots: find "+lotNumber, err)
	}
	return &lot, nil
}

// Update overwrites the stored lot identified by lotNumber. The lot number
// itself cannot change and the creation time is kept.
func (r *LotRepository) Update(ctx context.Context, lotNumber string, lot *models.Lot) error {
	rec, err := findExact(ctx, r.app, collections.Lots, lotNumber)
	if err != nil {
		return wrap("lots: update "+lotNumber, err)
	}

	lot.LotNumber = lotNumber
	setLotFields(rec, lot)
	if err := r.app.SaveWithContext(ctx, rec); err != nil {
		return wrap("lots: update "+lotNumber, err)
	}
	stampLot(rec, lot)
	return nil
}

func (r *LotRepository) Delete(ctx context.Context, lotNumber string) error {
	rec, err := findExact(ctx, r.app, collections.Lots, lotNumber)
	if err != nil {
		return wrap("lots: delete "+lotNumber, err)
	}
	if err := r.app.DeleteWithContext(ctx, rec); err != nil {
		return wrap("lots: delete "+lotNumber, err)
	}
	return nil
}

func setLotFields(rec *core.Record, lot *models.Lot) {
	rec.Set("lot_number", lot.LotNumber)
	rec.Set("date", lot.Date)
	rec.Set("fabric", lot.Fabric)
	rec.Set("pattern", lot.Pattern)
	rec.Set("brand", lot.Brand)
	rec.Set("ratios", lot.Ratios)
	rec.Set("production_data", nonNilRows(lot.ProductionData))
	rec.Set("tukda", lot.Tukda)
	rec.Set("total_meter", lot.TotalMeter)
	rec.Set("total_pieces", lot.TotalPieces)
	rec.Set("total_pieces_with_tukda", lot.TotalPiecesWithTukda)
	rec.Set("average", lot.Average)
}

func stampLot(rec *core.Record, lot *models.Lot) {
	lot.ID = rec.Id
	lot.CreatedAt = rec.GetDateTime("created").Time()
	lot.UpdatedAt = rec.GetDateTime("updated").Time()
}

func lotFromRecord(rec *core.Record) (models.Lot, error) {
	lot := models.Lot{
		LotNumber:            rec.GetString("lot_number"),
		Date:                 rec.GetString("date"),
		Fabric:               rec.GetString("fabric"),
		Pattern:              rec.GetString("pattern"),
		Brand:                rec.GetString("brand"),
		Ratios:               models.NewRatios(),
		ProductionData:       []models.LotRow{},
		TotalMeter:           rec.GetFloat("total_meter"),
		TotalPieces:          rec.GetFloat("total_pieces"),
		TotalPiecesWithTukda: rec.GetFloat("total_pieces_with_tukda"),
		Average:              rec.GetFloat("average"),
	}
	if err := collections.ReadJSONField(rec, "ratios", &lot.Ratios); err != nil {
		return models.Lot{}, fmt.Errorf("decode ratios of %s: %w", rec.Id, err)
	}
	if err := collections.ReadJSONField(rec, "production_data", &lot.ProductionData); err != nil {
		return models.Lot{}, fmt.Errorf("decode production_data of %s: %w", rec.Id, err)
	}
	if err := collections.ReadJSONField(rec, "tukda", &lot.Tukda); err != nil {
		return models.Lot{}, fmt.Errorf("decode tukda of %s: %w", rec.Id, err)
	}
	stampLot(rec, &lot)
	return lot, nil
}

// nonNilRows keeps an empty table stored as [] rather than null.
func nonNilRows[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}
