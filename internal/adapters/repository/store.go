// Package repository defines the dataset store interface and errors.
package repository

import (
	"context"
	"time"

	"github.com/okian/stride/internal/domain/model"
)

// Dataset is an immutable, scored record set owned by one session.
// Records must not be modified after Put; Get hands back the stored slice
// under that contract.
type Dataset struct {
	ID        string
	Records   []model.ScoredRecord
	CreatedAt time.Time
}

// Store provides access to ingested datasets.
type Store interface {
	// Put stores a new dataset and assigns it an ID.
	Put(ctx context.Context, records []model.ScoredRecord) (Dataset, error)

	// Get returns the dataset with the given ID.
	// Returns ErrNotFound if the ID is unknown.
	Get(ctx context.Context, id string) (Dataset, error)

	// Delete removes a dataset. Returns ErrNotFound if the ID is unknown.
	Delete(ctx context.Context, id string) error

	// List returns all stored datasets ordered by creation time ascending.
	List(ctx context.Context) []Dataset

	// Count returns the number of stored datasets.
	Count(ctx context.Context) int
}
