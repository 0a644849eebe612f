// Package repository defines the dataset store interface and errors.
package repository

import "time"

// Option applies a configuration option to the MemStore.
type Option func(*MemStore)

// WithMaxDatasets bounds the number of datasets kept in memory. Storing
// beyond the bound evicts the oldest dataset. A value <= 0 means unbounded.
func WithMaxDatasets(maxDatasets int) Option {
	return func(s *MemStore) {
		s.maxDatasets = maxDatasets
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *MemStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDGenerator overrides dataset ID generation, for tests.
func WithIDGenerator(newID func() string) Option {
	return func(s *MemStore) {
		if newID != nil {
			s.newID = newID
		}
	}
}
