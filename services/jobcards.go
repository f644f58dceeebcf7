package services

import (
	"context"

	"factoryfloor/models"
	"factoryfloor/store"
)

// JobCardService covers direct job card edits. Creation normally happens
// through the synchronizer; Create exists for clients that build a card
// by hand.
type JobCardService struct {
	jobCards JobCardStore
}

func NewJobCardService(jobCards JobCardStore) *JobCardService {
	return &JobCardService{jobCards: jobCards}
}

func (s *JobCardService) Create(ctx context.Context, jc *models.JobCard) error {
	NormalizeJobCard(jc)
	if err := jc.Validate(); err != nil {
		return store.Invalid(err)
	}
	return s.jobCards.Create(ctx, jc)
}

func (s *JobCardService) List(ctx context.Context) ([]models.JobCard, error) {
	return s.jobCards.List(ctx)
}

func (s *JobCardService) Get(ctx context.Context, lotNumber string) (*models.JobCard, error) {
	return s.jobCards.GetByLotNumber(ctx, lotNumber)
}

// Update applies patch to the job card stored under lotNumber. Worker
// assignments, flyWidth and additionalInfo are edited here and nowhere
// else.
func (s *JobCardService) Update(ctx context.Context, lotNumber string, patch []byte) (*models.JobCard, error) {
	jc, err := s.jobCards.FindExact(ctx, lotNumber)
	if err != nil {
		return nil, err
	}
	if err := models.ApplyPatch(jc, patch); err != nil {
		return nil, store.Invalid(err)
	}
	jc.LotNumber = lotNumber
	NormalizeJobCard(jc)
	jc.LotNumber = lotNumber

	if err := s.jobCards.Update(ctx, lotNumber, jc); err != nil {
		return nil, err
	}
	return jc, nil
}

func (s *JobCardService) Delete(ctx context.Context, lotNumber string) error {
	return s.jobCards.Delete(ctx, lotNumber)
}
