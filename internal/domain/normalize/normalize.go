// Package normalize converts raw tabular step data into canonical records.
package normalize

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/okian/stride/internal/domain/model"
)

// Format identifies the layout of an input table.
type Format string

// Accepted table layouts.
const (
	// FormatAuto detects the layout: long if a Participant column is
	// present, wide otherwise.
	FormatAuto Format = "auto"
	// FormatLong expects columns Date, Participant, Team, Steps.
	FormatLong Format = "long"
	// FormatWide expects a Date column plus one column per participant.
	FormatWide Format = "wide"
)

// Well-known column names in long-format input.
const (
	colDate        = "Date"
	colParticipant = "Participant"
	colTeam        = "Team"
	colSteps       = "Steps"
)

// UnknownPolicy decides what happens when a wide-format participant is
// missing from the team roster.
type UnknownPolicy string

// Roster-miss policies.
const (
	// AssignUnknown labels the record with the configured sentinel team
	// and reports the miss. This is the default.
	AssignUnknown UnknownPolicy = "assign"
	// RejectUnknown fails the whole normalization call on the first miss.
	RejectUnknown UnknownPolicy = "reject"
)

// DefaultUnknownTeam is the sentinel team label under AssignUnknown.
const DefaultUnknownTeam = "Unknown"

const defaultMaxSteps = 200_000

// Table is an ordered, untyped tabular dataset as handed over by the
// ingestion layer. Every cell is a raw string; type coercion happens here.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Report summarizes one normalization pass. It is returned alongside the
// records so callers can surface data-quality findings instead of having
// them vanish silently.
type Report struct {
	RowsRead            int
	RecordsEmitted      int
	CellsDropped        int
	UnknownParticipants []string
}

// Normalizer turns tables into canonical StepRecord sets. The participant
// to team roster is injected configuration; the normalizer hard-codes no
// names.
type Normalizer struct {
	roster        map[string]string
	unknownPolicy UnknownPolicy
	unknownTeam   string
	maxSteps      int
}

// New creates a Normalizer with configuration options.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		roster:        map[string]string{},
		unknownPolicy: AssignUnknown,
		unknownTeam:   DefaultUnknownTeam,
		maxSteps:      defaultMaxSteps,
	}

	// Apply all options
	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Normalize converts a table into StepRecords. The call is all-or-nothing:
// any malformed date or step cell fails the whole pass with ErrParse, and
// a duplicate (date, participant) pair fails it with ErrDuplicateRecord.
// Cells with no value are dropped, never zero-filled.
func (n *Normalizer) Normalize(table Table, format Format) ([]model.StepRecord, *Report, error) {
	switch format {
	case FormatAuto:
		if table.hasColumn(colParticipant) {
			return n.normalizeLong(table)
		}
		return n.normalizeWide(table)
	case FormatLong:
		return n.normalizeLong(table)
	case FormatWide:
		return n.normalizeWide(table)
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func (n *Normalizer) normalizeLong(table Table) ([]model.StepRecord, *Report, error) {
	idx, err := table.columnIndex(colDate, colParticipant, colTeam, colSteps)
	if err != nil {
		return nil, nil, err
	}

	report := &Report{}
	records := make([]model.StepRecord, 0, len(table.Rows))
	seen := make(map[string]struct{}, len(table.Rows))

	for i, row := range table.Rows {
		report.RowsRead++
		if len(row) != len(table.Columns) {
			return nil, nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrParse, i+1, len(row), len(table.Columns))
		}

		rawSteps := strings.TrimSpace(row[idx[colSteps]])
		if rawSteps == "" {
			report.CellsDropped++
			continue
		}

		date, err := model.ParseDate(row[idx[colDate]])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: row %d: %v", ErrParse, i+1, err)
		}
		steps, err := n.parseSteps(rawSteps)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: row %d: %v", ErrParse, i+1, err)
		}

		rec := model.StepRecord{
			Date:        date,
			Participant: strings.TrimSpace(row[idx[colParticipant]]),
			Team:        strings.TrimSpace(row[idx[colTeam]]),
			Steps:       steps,
		}
		if rec.Participant == "" {
			return nil, nil, fmt.Errorf("%w: row %d: empty participant", ErrParse, i+1)
		}
		if _, dup := seen[rec.Key()]; dup {
			return nil, nil, fmt.Errorf("%w: %s", ErrDuplicateRecord, rec.Key())
		}
		seen[rec.Key()] = struct{}{}

		records = append(records, rec)
		report.RecordsEmitted++
	}

	return records, report, nil
}

func (n *Normalizer) normalizeWide(table Table) ([]model.StepRecord, *Report, error) {
	dateCol := -1
	for i, c := range table.Columns {
		if strings.EqualFold(strings.TrimSpace(c), colDate) {
			dateCol = i
			break
		}
	}
	if dateCol < 0 {
		return nil, nil, fmt.Errorf("%w: missing column %q", ErrParse, colDate)
	}
	if len(table.Columns) < 2 {
		return nil, nil, fmt.Errorf("%w: wide table has no participant columns", ErrParse)
	}

	report := &Report{}
	records := make([]model.StepRecord, 0, len(table.Rows)*(len(table.Columns)-1))
	seen := make(map[string]struct{})
	missed := make(map[string]struct{})

	for i, row := range table.Rows {
		report.RowsRead++
		if len(row) != len(table.Columns) {
			return nil, nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrParse, i+1, len(row), len(table.Columns))
		}

		date, err := model.ParseDate(row[dateCol])
		if err != nil {
			return nil, nil, fmt.Errorf("%w: row %d: %v", ErrParse, i+1, err)
		}

		for col, cell := range row {
			if col == dateCol {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell == "" {
				report.CellsDropped++
				continue
			}

			participant := strings.TrimSpace(table.Columns[col])
			steps, err := n.parseSteps(cell)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: row %d, participant %q: %v", ErrParse, i+1, participant, err)
			}

			team, ok := n.roster[participant]
			if !ok {
				if n.unknownPolicy == RejectUnknown {
					return nil, nil, fmt.Errorf("%w: %q", ErrUnknownParticipant, participant)
				}
				team = n.unknownTeam
				missed[participant] = struct{}{}
			}

			rec := model.StepRecord{
				Date:        date,
				Participant: participant,
				Team:        team,
				Steps:       steps,
			}
			if _, dup := seen[rec.Key()]; dup {
				return nil, nil, fmt.Errorf("%w: %s", ErrDuplicateRecord, rec.Key())
			}
			seen[rec.Key()] = struct{}{}

			records = append(records, rec)
			report.RecordsEmitted++
		}
	}

	for p := range missed {
		report.UnknownParticipants = append(report.UnknownParticipants, p)
	}
	sort.Strings(report.UnknownParticipants)

	return records, report, nil
}

// parseSteps coerces a step cell, rejecting negatives and implausibly
// large counts. Fractional values from spreadsheet exports are accepted
// when they are whole numbers.
func (n *Normalizer) parseSteps(raw string) (int, error) {
	steps, err := strconv.Atoi(raw)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != float64(int(f)) {
			return 0, fmt.Errorf("invalid step count %q", raw)
		}
		steps = int(f)
	}
	if steps < 0 {
		return 0, fmt.Errorf("negative step count %d", steps)
	}
	if n.maxSteps > 0 && steps > n.maxSteps {
		return 0, fmt.Errorf("step count %d exceeds ceiling %d", steps, n.maxSteps)
	}
	return steps, nil
}

func (t Table) hasColumn(name string) bool {
	for _, c := range t.Columns {
		if strings.EqualFold(strings.TrimSpace(c), name) {
			return true
		}
	}
	return false
}

// columnIndex resolves required column names case-insensitively.
func (t Table) columnIndex(names ...string) (map[string]int, error) {
	idx := make(map[string]int, len(names))
	for _, name := range names {
		found := false
		for i, c := range t.Columns {
			if strings.EqualFold(strings.TrimSpace(c), name) {
				idx[name] = i
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: missing column %q", ErrParse, name)
		}
	}
	return idx, nil
}
