package normalize

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrParse              = errors.New("parse failed")
	ErrUnknownFormat      = errors.New("unknown table format")
	ErrUnknownParticipant = errors.New("participant not in roster")
	ErrDuplicateRecord    = errors.New("duplicate date/participant record")
)
