// Package handlers serves the JSON API the factory front end talks to.
package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"factoryfloor/auth"
	"factoryfloor/collections"
	"factoryfloor/logger"
	"factoryfloor/services"
	"factoryfloor/store"
)

// maxBodyBytes caps request bodies; a lot with a few hundred rows is well
// under this.
const maxBodyBytes = 4 << 20

// Deps is everything a handler may need. Handlers are built as closures
// over it.
type Deps struct {
	Lots      *services.LotService
	JobCards  *services.JobCardService
	Lookups   map[string]*store.LookupRepository
	Workers   *store.WorkerRepository
	Analytics *services.AnalyticsService
	Gate      auth.Gate
	Log       *logger.Logger
}

// NewDeps wires the repositories and services over app.
func NewDeps(app core.App, gate auth.Gate, log *logger.Logger) *Deps {
	lots := store.NewLotRepository(app)
	jobCards := store.NewJobCardRepository(app)
	workers := store.NewWorkerRepository(app)

	lookups := make(map[string]*store.LookupRepository, len(collections.LookupKinds))
	for _, kind := range collections.LookupKinds {
		lookups[kind] = store.NewLookupRepository(app, kind)
	}

	return &Deps{
		Lots:      services.NewLotService(lots, jobCards, log),
		JobCards:  services.NewJobCardService(jobCards),
		Lookups:   lookups,
		Workers:   workers,
		Analytics: services.NewAnalyticsService(jobCards, workers),
		Gate:      gate,
		Log:       log.With("component", "http"),
	}
}

// readBody returns the raw request body, failing with ErrInvalid when it is
// empty or too large.
func readBody(e *core.RequestEvent) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(e.Response, e.Request.Body, maxBodyBytes))
	if err != nil {
		return nil, store.Invalid(fmt.Errorf("read body: %w", err))
	}
	if len(body) == 0 {
		return nil, store.Invalid(errors.New("empty request body"))
	}
	return body, nil
}
