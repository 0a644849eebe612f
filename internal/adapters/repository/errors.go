package repository

import "errors"

// Sentinel kinds for dataset store errors.
var (
	ErrNotFound     = errors.New("dataset not found")
	ErrEmptyDataset = errors.New("empty dataset")
)
