package store

import (
	"context"
	"fmt"

	"github.com/pocketbase/pocketbase/core"

	"factoryfloor/collections"
	"factoryfloor/models"
)

// JobCardRepository is CRUD over the jobcards collection keyed by lot number.
type JobCardRepository struct {
	app core.App
}

func NewJobCardRepository(app core.App) *JobCardRepository {
	return &JobCardRepository{app: app}
}

func (r *JobCardRepository) Create(ctx context.Context, jc *models.JobCard) error {
	col, err := r.app.FindCollectionByNameOrId(collections.JobCards)
	if err != nil {
		return unavailable("jobcards: create", err)
	}

	rec := core.NewRecord(col)
	setJobCardFields(rec, jc)
	if err := r.app.SaveWithContext(ctx, rec); err != nil {
		return wrap("jobcards: create", err)
	}
	stampJobCard(rec, jc)
	return nil
}

// List returns every job card, newest first.
func (r *JobCardRepository) List(ctx context.Context) ([]models.JobCard, error) {
	records := []*core.Record{}
	err := r.app.RecordQuery(collections.JobCards).
		WithContext(ctx).
		OrderBy("created DESC").
		All(&records)
	if err != nil {
		return nil, unavailable("jobcards: list", err)
	}

	cards := make([]models.JobCard, 0, len(records))
	for _, rec := range records {
		jc, err := jobCardFromRecord(rec)
		if err != nil {
			return nil, unavailable("jobcards: list", err)
		}
		cards = append(cards, jc)
	}
	return cards, nil
}

// GetByLotNumber finds a job card by exact lot number, falling back to a
// case-insensitive match.
func (r *JobCardRepository) GetByLotNumber(ctx context.Context, lotNumber string) (*models.JobCard, error) {
	rec, err := findByKey(ctx, r.app, collections.JobCards, lotNumber)
	if err != nil {
		return nil, wrap("jobcards: get "+lotNumber, err)
	}
	jc, err := jobCardFromRecord(rec)
	if err != nil {
		return nil, unavailable("jobcards: get "+lotNumber, err)
	}
	return &jc, nil
}

// FindExact finds a job card by its exact lot number only.
func (r *JobCardRepository) FindExact(ctx context.Context, lotNumber string) (*models.JobCard, error) {
	rec, err := findExact(ctx, r.app, collections.JobCards, lotNumber)
	if err != nil {
		return nil, wrap("jobcards: find "+lotNumber, err)
	}
	jc, err := jobCardFromRecord(rec)
	if err != nil {
		return nil, unavailable("jobcards: find "+lotNumber, err)
	}
	return &jc, nil
}

// Update overwrites the job card stored under lotNumber.
func (r *JobCardRepository) Update(ctx context.Context, lotNumber string, jc *models.JobCard) error {
	rec, err := findExact(ctx, r.app, collections.JobCards, lotNumber)
	if err != nil {
		return wrap("jobcards: update "+lotNumber, err)
	}

	jc.LotNumber = lotNumber
	setJobCardFields(rec, jc)
	if err := r.app.SaveWithContext(ctx, rec); err != nil {
		return wrap("jobcards: update "+lotNumber, err)
	}
	stampJobCard(rec, jc)
	return nil
}

func (r *JobCardRepository) Delete(ctx context.Context, lotNumber string) error {
	rec, err := findExact(ctx, r.app, collections.JobCards, lotNumber)
	if err != nil {
		return wrap("jobcards: delete "+lotNumber, err)
	}
	if err := r.app.DeleteWithContext(ctx, rec); err != nil {
		return wrap("jobcards: delete "+lotNumber, err)
	}
	return nil
}

func setJobCardFields(rec *core.Record, jc *models.JobCard) {
	rec.Set("lot_number", jc.LotNumber)
	rec.Set("date", jc.Date)
	rec.Set("brand", jc.Brand)
	rec.Set("ratios", jc.Ratios)
	rec.Set("production_data", nonNilRows(jc.ProductionData))
	rec.Set("fly_width", jc.FlyWidth)
	rec.Set("additional_info", jc.AdditionalInfo)
}

func stampJobCard(rec *core.Record, jc *models.JobCard) {
	jc.ID = rec.Id
	jc.CreatedAt = rec.GetDateTime("created").Time()
	jc.UpdatedAt = rec.GetDateTime("updated").Time()
}

func jobCardFromRecord(rec *core.Record) (models.JobCard, error) {
	jc := models.JobCard{
		LotNumber:      rec.GetString("lot_number"),
		Date:           rec.GetString("date"),
		Brand:          rec.GetString("brand"),
		Ratios:         models.NewRatios(),
		ProductionData: []models.JobCardRow{},
		FlyWidth:       rec.GetString("fly_width"),
	}
	if err := collections.ReadJSONField(rec, "ratios", &jc.Ratios); err != nil {
		return models.JobCard{}, fmt.Errorf("decode ratios of %s: %w", rec.Id, err)
	}
	if err := collections.ReadJSONField(rec, "production_data", &jc.ProductionData); err != nil {
		return models.JobCard{}, fmt.Errorf("decode production_data of %s: %w", rec.Id, err)
	}
	if err := collections.ReadJSONField(rec, "additional_info", &jc.AdditionalInfo); err != nil {
		return models.JobCard{}, fmt.Errorf("decode additional_info of %s: %w", rec.Id, err)
	}
	stampJobCard(rec, &jc)
	return jc, nil
}
