package aggregate

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	// ErrNoData signals that an aggregate's domain is empty after
	// filtering. Callers must render it as "no data", never as zero.
	ErrNoData = errors.New("no data")
)
