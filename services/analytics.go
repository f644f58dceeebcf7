package services

import (
	"cmp"
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"factoryfloor/models"
)

// AnalyticsFilter narrows a worker report. Dates are inclusive ISO
// (YYYY-MM-DD) strings; Worker is a worker's record id or numeric
// worker_id. Empty fields don't filter.
type AnalyticsFilter struct {
	From   string
	To     string
	Worker string
}

// AnalyticsRow is one paid operation: a worker booked on a job card row.
type AnalyticsRow struct {
	WorkerID       int     `json:"worker_id"`
	WorkerFullName string  `json:"worker_full_name"`
	Operation      string  `json:"operation"`
	Date           string  `json:"date"`
	Rate           float64 `json:"rate"`
	LotNumber      string  `json:"lotNumber"`
	Layer          int     `json:"layer"`
	Pieces         float64 `json:"pieces"`
	TotalAmount    float64 `json:"total_amount"`
}

type AnalyticsReport struct {
	// WorkerName is set when the report was filtered to one worker.
	WorkerName  string         `json:"workerName,omitempty"`
	Rows        []AnalyticsRow `json:"rows"`
	TotalPieces float64        `json:"totalPieces"`
	TotalAmount float64        `json:"totalAmount"`
}

// BuildWorkerReport turns job card assignments into pay lines. An
// assignment counts only when its worker, date and rate are all set and
// the worker is known. Rows come back newest date first, then by worker_id.
func BuildWorkerReport(cards []models.JobCard, workers []models.Worker, f AnalyticsFilter) AnalyticsReport {
	index := make(map[string]models.Worker, len(workers)*2)
	for _, w := range workers {
		index[w.ID] = w
		index[strconv.Itoa(w.WorkerID)] = w
	}

	var selected *models.Worker
	if f.Worker != "" {
		w, ok := index[f.Worker]
		if !ok {
			return AnalyticsReport{Rows: []AnalyticsRow{}}
		}
		selected = &w
	}

	type line struct {
		row    AnalyticsRow
		pieces decimal.Decimal
		amount decimal.Decimal
	}
	var lines []line

	for _, jc := range cards {
		for _, r := range jc.ProductionData {
			for _, a := range r.Assignments() {
				if a.WorkerRef == "" || a.Date == "" || strings.TrimSpace(a.Rate) == "" {
					continue
				}
				w, ok := index[a.WorkerRef]
				if !ok {
					continue
				}
				if selected != nil && w.WorkerID != selected.WorkerID {
					continue
				}
				if f.From != "" && a.Date < f.From {
					continue
				}
				if f.To != "" && a.Date > f.To {
					continue
				}

				rate, err := decimal.NewFromString(strings.TrimSpace(a.Rate))
				if err != nil {
					rate = decimal.Zero
				}
				pieces := decimal.NewFromFloat(r.Pieces)
				amount := pieces.Mul(rate)

				lines = append(lines, line{
					row: AnalyticsRow{
						WorkerID:       w.WorkerID,
						WorkerFullName: w.FullName,
						Operation:      a.Operation,
						Date:           a.Date,
						Rate:           rate.InexactFloat64(),
						LotNumber:      jc.LotNumber,
						Layer:          r.Layer,
						Pieces:         r.Pieces,
						TotalAmount:    amount.InexactFloat64(),
					},
					pieces: pieces,
					amount: amount,
				})
			}
		}
	}

	slices.SortStableFunc(lines, func(a, b line) int {
		if c := cmp.Compare(b.row.Date, a.row.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.row.WorkerID, b.row.WorkerID)
	})

	report := AnalyticsReport{Rows: make([]AnalyticsRow, 0, len(lines))}
	if selected != nil {
		report.WorkerName = selected.FullName
	}
	totalPieces, totalAmount := decimal.Zero, decimal.Zero
	for _, l := range lines {
		report.Rows = append(report.Rows, l.row)
		totalPieces = totalPieces.Add(l.pieces)
		totalAmount = totalAmount.Add(l.amount)
	}
	report.TotalPieces = totalPieces.InexactFloat64()
	report.TotalAmount = totalAmount.InexactFloat64()
	return report
}

// AnalyticsService loads job cards and workers and builds the report.
type AnalyticsService struct {
	jobCards JobCardStore
	workers  WorkerLister
}

func NewAnalyticsService(jobCards JobCardStore, workers WorkerLister) *AnalyticsService {
	return &AnalyticsService{jobCards: jobCards, workers: workers}
}

// Report fetches job cards and workers concurrently. Either load failing
// fails the report.
func (s *AnalyticsService) Report(ctx context.Context, f AnalyticsFilter) (AnalyticsReport, error) {
	var (
		cards   []models.JobCard
		workers []models.Worker
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		cards, err = s.jobCards.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		workers, err = s.workers.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return AnalyticsReport{}, err
	}
	return BuildWorkerReport(cards, workers, f), nil
}
