// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Date layouts accepted during normalization, most common first.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	time.RFC3339,
}

// StepRecord is one participant's step count for one calendar date.
// Records are created once at ingestion and never mutated.
type StepRecord struct {
	Date        time.Time // normalized to UTC midnight
	Participant string
	Team        string
	Steps       int
}

// ScoredRecord is a StepRecord with its derived score attached.
// Score is computed from Steps alone and is never independently mutated.
type ScoredRecord struct {
	StepRecord
	Score int
}

// Key identifies a record within a dataset. At most one record may exist
// per (date, participant) pair.
func (r StepRecord) Key() string {
	return r.Date.Format("2006-01-02") + "/" + r.Participant
}

// ParseDate parses a date cell and normalizes it to UTC midnight.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return Midnight(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// Midnight truncates t to its calendar date in UTC.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
