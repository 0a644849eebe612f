package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/stride/internal/domain/model"
	"github.com/okian/stride/pkg/metrics"
)

const defaultMaxDatasets = 16

// MemStore implements Store in memory. Capacity is bounded: storing a new
// dataset beyond maxDatasets evicts the oldest one, which matches the
// single-user session model where an upload supersedes earlier ones.
type MemStore struct {
	mu          sync.RWMutex
	datasets    map[string]Dataset
	order       []string // insertion order, oldest first
	maxDatasets int
	now         func() time.Time
	newID       func() string
}

// NewMemStore creates a MemStore with configuration options.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		datasets:    make(map[string]Dataset),
		maxDatasets: defaultMaxDatasets,
		now:         time.Now,
		newID:       func() string { return uuid.NewString() },
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Put stores a new dataset, evicting the oldest when at capacity.
func (s *MemStore) Put(_ context.Context, records []model.ScoredRecord) (Dataset, error) {
	if len(records) == 0 {
		return Dataset{}, ErrEmptyDataset
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for s.maxDatasets > 0 && len(s.order) >= s.maxDatasets {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.datasets, oldest)
	}

	ds := Dataset{
		ID:        s.newID(),
		Records:   records,
		CreatedAt: s.now(),
	}
	s.datasets[ds.ID] = ds
	s.order = append(s.order, ds.ID)

	metrics.UpdateDatasetCount(len(s.datasets))
	metrics.UpdateRecordsTotal(s.recordsTotalLocked())
	return ds, nil
}

// Get returns the dataset with the given ID.
func (s *MemStore) Get(_ context.Context, id string) (Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ds, ok := s.datasets[id]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return Dataset{}, ErrNotFound
	}
	return ds, nil
}

// Delete removes a dataset.
func (s *MemStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.datasets[id]; !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return ErrNotFound
	}
	delete(s.datasets, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	metrics.UpdateDatasetCount(len(s.datasets))
	metrics.UpdateRecordsTotal(s.recordsTotalLocked())
	return nil
}

// List returns all datasets ordered oldest first.
func (s *MemStore) List(_ context.Context) []Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Dataset, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.datasets[id])
	}
	return out
}

// Count returns the number of stored datasets.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.datasets)
}

// RecordsTotal returns the number of records across all datasets.
func (s *MemStore) RecordsTotal(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.recordsTotalLocked()
}

func (s *MemStore) recordsTotalLocked() int {
	total := 0
	for _, ds := range s.datasets {
		total += len(ds.Records)
	}
	return total
}
