package model

import "time"

// FilterSpec restricts a record set before aggregation. An empty Teams
// slice matches every team; zero From/To leave that bound open. Both date
// bounds are inclusive.
type FilterSpec struct {
	Teams []string
	From  time.Time
	To    time.Time
}

// Match reports whether r passes the filter.
func (f FilterSpec) Match(r ScoredRecord) bool {
	if len(f.Teams) > 0 {
		found := false
		for _, t := range f.Teams {
			if t == r.Team {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if !f.From.IsZero() && r.Date.Before(Midnight(f.From)) {
		return false
	}
	if !f.To.IsZero() && r.Date.After(Midnight(f.To)) {
		return false
	}
	return true
}

// Everything is the identity filter: all teams, full date span.
func Everything() FilterSpec { return FilterSpec{} }
