// Package ingest reads uploaded tabular data into normalizer tables.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/okian/stride/internal/domain/normalize"
)

const defaultMaxBytes = 8 << 20 // 8 MiB

// Option applies a configuration option to the Reader.
type Option func(*Reader)

// WithMaxBytes caps the upload size. A larger body is rejected outright,
// never truncated. A value <= 0 keeps the default cap.
func WithMaxBytes(maxBytes int64) Option {
	return func(r *Reader) {
		if maxBytes > 0 {
			r.maxBytes = maxBytes
		}
	}
}

// Reader decodes CSV uploads. Parsing is one-shot: the call either yields
// a complete table or fails outright, there are no partial results.
type Reader struct {
	maxBytes int64
}

// NewReader creates a Reader with configuration options.
func NewReader(opts ...Option) *Reader {
	r := &Reader{maxBytes: defaultMaxBytes}

	// Apply all options
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// ReadTable decodes a CSV stream into a Table. The first row is the
// header; ragged data rows are rejected by the CSV reader. A body larger
// than the byte cap fails with ErrTooLarge rather than yielding a
// truncated table.
func (r *Reader) ReadTable(src io.Reader) (normalize.Table, error) {
	// Read one byte past the cap so an over-limit body is detectable.
	lr := &io.LimitedReader{R: src, N: r.maxBytes + 1}
	cr := csv.NewReader(lr)
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	// Size check first: an over-limit body often also fails to parse at
	// the cut point, and the caller should see the real cause.
	if lr.N <= 0 {
		return normalize.Table{}, fmt.Errorf("%w: upload exceeds %d bytes", ErrTooLarge, r.maxBytes)
	}
	if err != nil {
		return normalize.Table{}, fmt.Errorf("%w: %v", ErrRead, err)
	}
	if len(rows) == 0 {
		return normalize.Table{}, ErrEmptyTable
	}

	table := normalize.Table{Columns: rows[0]}
	if len(rows) > 1 {
		table.Rows = rows[1:]
	}
	if len(table.Columns) == 0 {
		return normalize.Table{}, ErrEmptyTable
	}
	return table, nil
}
