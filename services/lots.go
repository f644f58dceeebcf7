package services

import (
	"context"
	"errors"
	"strings"

	"factoryfloor/logger"
	"factoryfloor/models"
	"factoryfloor/store"
)

// LotService is the lot workflow: validation and derivation before every
// write, the synchronizer after it.
type LotService struct {
	lots     LotStore
	jobCards JobCardStore
	sync     *Synchronizer
	log      *logger.Logger
}

func NewLotService(lots LotStore, jobCards JobCardStore, log *logger.Logger) *LotService {
	return &LotService{
		lots:     lots,
		jobCards: jobCards,
		sync:     NewSynchronizer(jobCards, log),
		log:      log,
	}
}

// Synchronizer exposes the service's synchronizer for the backfill command.
func (s *LotService) Synchronizer() *Synchronizer { return s.sync }

// Create stores a new lot and gives it a job card. A job card failure does
// not fail the create.
func (s *LotService) Create(ctx context.Context, lot *models.Lot) error {
	lot.LotNumber = strings.TrimSpace(lot.LotNumber)
	if err := lot.Validate(); err != nil {
		return store.Invalid(err)
	}
	NormalizeLot(lot)
	if err := s.lots.Create(ctx, lot); err != nil {
		return err
	}
	s.sync.OnLotCreated(ctx, *lot)
	return nil
}

// List returns all lots, newest first, after backfilling any missing job
// cards.
func (s *LotService) List(ctx context.Context) ([]models.Lot, error) {
	lots, err := s.lots.List(ctx)
	if err != nil {
		return nil, err
	}
	s.sync.Backfill(ctx, lots)
	return lots, nil
}

// Get finds a lot by number (case-insensitive fallback) and makes sure its
// job card exists.
func (s *LotService) Get(ctx context.Context, lotNumber string) (*models.Lot, error) {
	lot, err := s.lots.GetByNumber(ctx, lotNumber)
	if err != nil {
		return nil, err
	}
	if _, err := s.sync.EnsureJobCard(context.WithoutCancel(ctx), *lot); err != nil {
		s.log.Warn("could not create job card on view", "lotNumber", lot.LotNumber, "error", err)
	}
	return lot, nil
}

// Update applies patch to the lot stored under lotNumber, re-derives it and
// resyncs its job card. The lot number in the patch is ignored.
func (s *LotService) Update(ctx context.Context, lotNumber string, patch []byte) (*models.Lot, error) {
	lot, err := s.lots.FindExact(ctx, lotNumber)
	if err != nil {
		return nil, err
	}
	if err := models.ApplyPatch(lot, patch); err != nil {
		return nil, store.Invalid(err)
	}
	lot.LotNumber = lotNumber
	if err := lot.Validate(); err != nil {
		return nil, store.Invalid(err)
	}
	NormalizeLot(lot)
	lot.LotNumber = lotNumber

	if err := s.lots.Update(ctx, lotNumber, lot); err != nil {
		return nil, err
	}
	s.sync.OnLotUpdated(ctx, *lot)
	return lot, nil
}

// Delete removes the lot and, best-effort, its job card. The job card goes
// first; if that fails the lot is deleted anyway.
func (s *LotService) Delete(ctx context.Context, lotNumber string) error {
	if _, err := s.lots.FindExact(ctx, lotNumber); err != nil {
		return err
	}

	err := s.jobCards.Delete(context.WithoutCancel(ctx), lotNumber)
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.log.Debug("lot had no job card", "lotNumber", lotNumber)
	case err != nil:
		s.log.Warn("could not delete job card with lot", "lotNumber", lotNumber, "error", err)
	}

	return s.lots.Delete(ctx, lotNumber)
}
