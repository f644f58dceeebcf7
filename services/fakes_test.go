package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"factoryfloor/models"
	"factoryfloor/store"
)

var errStoreDown = fmt.Errorf("fake: %w", store.ErrStoreUnavailable)

// memJobCards is an in-memory JobCardStore. Setting one of the fail* fields
// makes that operation return errStoreDown.
type memJobCards struct {
	mu    sync.Mutex
	cards []models.JobCard

	failGet    bool
	failCreate bool
	failUpdate bool
	failDelete bool
	// failCreateFor fails creates for these lot numbers only.
	failCreateFor map[string]bool

	creates int
}

func (m *memJobCards) Create(_ context.Context, jc *models.JobCard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failCreate || m.failCreateFor[jc.LotNumber] {
		return errStoreDown
	}
	m.creates++
	jc.ID = fmt.Sprintf("jc%d", m.creates)
	m.cards = append(m.cards, *jc)
	return nil
}

func (m *memJobCards) List(context.Context) ([]models.JobCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.JobCard(nil), m.cards...), nil
}

func (m *memJobCards) GetByLotNumber(_ context.Context, lotNumber string) (*models.JobCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet {
		return nil, errStoreDown
	}
	for i := range m.cards {
		if m.cards[i].LotNumber == lotNumber {
			jc := m.cards[i]
			return &jc, nil
		}
	}
	for i := range m.cards {
		if strings.EqualFold(m.cards[i].LotNumber, lotNumber) {
			jc := m.cards[i]
			return &jc, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memJobCards) FindExact(_ context.Context, lotNumber string) (*models.JobCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.cards {
		if m.cards[i].LotNumber == lotNumber {
			jc := m.cards[i]
			return &jc, nil
		}
	}
	return nil, store.ErrNotFound
}

func (m *memJobCards) Update(_ context.Context, lotNumber string, jc *models.JobCard) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failUpdate {
		return errStoreDown
	}
	for i := range m.cards {
		if m.cards[i].LotNumber == lotNumber {
			jc.LotNumber = lotNumber
			m.cards[i] = *jc
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *memJobCards) Delete(_ context.Context, lotNumber string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failDelete {
		return errStoreDown
	}
	for i := range m.cards {
		if m.cards[i].LotNumber == lotNumber {
			m.cards = append(m.cards[:i], m.cards[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (m *memJobCards) count(lotNumber string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.cards {
		if c.LotNumber == lotNumber {
			n++
		}
	}
	return n
}

// memWorkers is a WorkerLister over a fixed slice.
type memWorkers struct {
	workers []models.Worker
	err     error
}

func (m memWorkers) List(context.Context) ([]models.Worker, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.workers, nil
}

var _ JobCardStore = (*memJobCards)(nil)

func isStoreDown(err error) bool { return errors.Is(err, store.ErrStoreUnavailable) }
