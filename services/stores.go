package services

import (
	"context"

	"factoryfloor/models"
	"factoryfloor/store"
)

// LotStore is the persistence the lot workflow needs.
type LotStore interface {
	Create(ctx context.Context, lot *models.Lot) error
	List(ctx context.Context) ([]models.Lot, error)
	GetByNumber(ctx context.Context, lotNumber string) (*models.Lot, error)
	FindExact(ctx context.Context, lotNumber string) (*models.Lot, error)
	Update(ctx context.Context, lotNumber string, lot *models.Lot) error
	Delete(ctx context.Context, lotNumber string) error
}

// JobCardStore is the persistence the synchronizer and job card workflow
// need.
type JobCardStore interface {
	Create(ctx context.Context, jc *models.JobCard) error
	List(ctx context.Context) ([]models.JobCard, error)
	GetByLotNumber(ctx context.Context, lotNumber string) (*models.JobCard, error)
	FindExact(ctx context.Context, lotNumber string) (*models.JobCard, error)
	Update(ctx context.Context, lotNumber string, jc *models.JobCard) error
	Delete(ctx context.Context, lotNumber string) error
}

// WorkerLister feeds worker analytics.
type WorkerLister interface {
	List(ctx context.Context) ([]models.Worker, error)
}

var (
	_ LotStore     = (*store.LotRepository)(nil)
	_ JobCardStore = (*store.JobCardRepository)(nil)
	_ WorkerLister = (*store.WorkerRepository)(nil)
)
