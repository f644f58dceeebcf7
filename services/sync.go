package services

import (
	"context"
	"errors"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"factoryfloor/logger"
	"factoryfloor/models"
	"factoryfloor/store"
)

// Synchronizer keeps every lot paired with a job card. All of its work is
// best-effort: failures are logged and never handed back to the lot
// operation that triggered them.
type Synchronizer struct {
	jobCards JobCardStore
	log      *logger.Logger
}

func NewSynchronizer(jobCards JobCardStore, log *logger.Logger) *Synchronizer {
	return &Synchronizer{jobCards: jobCards, log: log.With("component", "sync")}
}

// EnsureJobCard creates the job card for lot unless one already exists.
// A failed existence check counts as "missing". Reports whether a card
// was created.
func (s *Synchronizer) EnsureJobCard(ctx context.Context, lot models.Lot) (bool, error) {
	_, err := s.jobCards.GetByLotNumber(ctx, lot.LotNumber)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		s.log.Warn("job card lookup failed, creating anyway", "lotNumber", lot.LotNumber, "error", err)
	}

	jc := NewJobCardFromLot(lot)
	if err := s.jobCards.Create(ctx, &jc); err != nil {
		return false, err
	}
	return true, nil
}

// OnLotCreated runs after a lot has been stored.
func (s *Synchronizer) OnLotCreated(ctx context.Context, lot models.Lot) {
	ctx = context.WithoutCancel(ctx)
	created, err := s.EnsureJobCard(ctx, lot)
	if err != nil {
		s.log.Warn("could not create job card for new lot", "lotNumber", lot.LotNumber, "error", err)
		return
	}
	if created {
		s.log.Debug("created job card", "lotNumber", lot.LotNumber)
	}
}

// OnLotUpdated resyncs an existing job card to the updated lot. A lot with
// no job card is left alone; creating one is the list view's job.
func (s *Synchronizer) OnLotUpdated(ctx context.Context, lot models.Lot) {
	ctx = context.WithoutCancel(ctx)
	existing, err := s.jobCards.GetByLotNumber(ctx, lot.LotNumber)
	if errors.Is(err, store.ErrNotFound) {
		s.log.Debug("no job card to resync", "lotNumber", lot.LotNumber)
		return
	}
	if err != nil {
		s.log.Warn("could not load job card for resync", "lotNumber", lot.LotNumber, "error", err)
		return
	}

	merged := MergeJobCard(lot, *existing)
	if err := s.jobCards.Update(ctx, existing.LotNumber, &merged); err != nil {
		s.log.Warn("could not resync job card", "lotNumber", lot.LotNumber, "error", err)
	}
}

// BackfillReport counts what a backfill did.
type BackfillReport struct {
	Checked int `json:"checked"`
	Created int `json:"created"`
	Failed  int `json:"failed"`
}

// Backfill makes sure every lot has a job card. Each lot is handled in its
// own goroutine; one lot failing never stops or affects another.
func (s *Synchronizer) Backfill(ctx context.Context, lots []models.Lot) BackfillReport {
	ctx = context.WithoutCancel(ctx)

	var created, failed atomic.Int64
	var g errgroup.Group
	for _, lot := range lots {
		g.Go(func() error {
			ok, err := s.EnsureJobCard(ctx, lot)
			switch {
			case err != nil:
				failed.Add(1)
				s.log.Warn("backfill: could not create job card", "lotNumber", lot.LotNumber, "error", err)
			case ok:
				created.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	report := BackfillReport{
		Checked: len(lots),
		Created: int(created.Load()),
		Failed:  int(failed.Load()),
	}
	if report.Created > 0 || report.Failed > 0 {
		s.log.Info("backfill finished", "checked", report.Checked, "created", report.Created, "failed", report.Failed)
	}
	return report
}
