package ingest

import "errors"

// Sentinel kinds for ingestion errors.
var (
	ErrRead       = errors.New("csv read failed")
	ErrEmptyTable = errors.New("empty table")
	ErrTooLarge   = errors.New("upload too large")
)
