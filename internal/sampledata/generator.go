// Package sampledata generates synthetic walkathon datasets for demos and
// load checks against a running service.
package sampledata

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"sort"
	"strconv"
	"time"

	"github.com/okian/stride/internal/domain/normalize"
)

// Default generation parameters.
const (
	defaultDays        = 14
	defaultMissingRate = 0.05
	defaultSeed        = 42
)

// Daily step count archetypes. Each generated cell picks one.
const (
	caseRestDay      = 0
	caseLightDay     = 1
	caseNearTarget   = 2
	caseStrongDay    = 3
	caseBigDay       = 4
	archetypeCount   = 5
	lightDayMin      = 1500
	lightDayRange    = 5000
	nearTargetMin    = 7000
	nearTargetRange  = 2500
	strongDayMin     = 9500
	strongDayRange   = 5500
	bigDayMin        = 15000
	bigDayRange      = 10000
	restDayMax       = 1200
)

// DefaultRoster is the reference deployment's 20 participants across
// 4 teams.
var DefaultRoster = map[string]string{
	"Pranav": "Team 1", "Akshra": "Team 1", "Charishma": "Team 1", "Yash": "Team 1", "Vaishnavi": "Team 1",
	"Nisha": "Team 2", "Pavana": "Team 2", "Sakshi": "Team 2", "Muskan": "Team 2", "Ojasvi": "Team 2",
	"Ritesh": "Team 3", "Pravat": "Team 3", "Pragya": "Team 3", "Divyam": "Team 3", "Kasis": "Team 3",
	"Murali": "Team 4", "Surbhi": "Team 4", "Ankita": "Team 4", "Rohit": "Team 4", "Vanshita": "Team 4",
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithDays sets how many consecutive days to generate.
func WithDays(days int) Option {
	return func(g *Generator) {
		if days > 0 {
			g.days = days
		}
	}
}

// WithStart sets the first generated date.
func WithStart(start time.Time) Option {
	return func(g *Generator) {
		if !start.IsZero() {
			g.start = start
		}
	}
}

// WithRoster replaces the participant pool.
func WithRoster(roster map[string]string) Option {
	return func(g *Generator) {
		if len(roster) > 0 {
			g.roster = roster
		}
	}
}

// WithMissingRate sets the fraction of cells left empty, matching real
// uploads where participants skip reporting on some days.
func WithMissingRate(rate float64) Option {
	return func(g *Generator) {
		if rate >= 0 && rate < 1 {
			g.missingRate = rate
		}
	}
}

// WithSeed makes generation deterministic for a given seed.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// Generator produces synthetic step datasets.
type Generator struct {
	days        int
	start       time.Time
	roster      map[string]string
	missingRate float64
	seed        int64
	rng         *rand.Rand
}

// New creates a Generator with configuration options.
func New(opts ...Option) *Generator {
	g := &Generator{
		days:        defaultDays,
		start:       time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		roster:      DefaultRoster,
		missingRate: defaultMissingRate,
		seed:        defaultSeed,
	}

	// Apply all options
	for _, opt := range opts {
		opt(g)
	}

	g.rng = rand.New(rand.NewSource(g.seed)) //nolint:gosec // deterministic seed for reproducible datasets
	return g
}

// Participants returns the participant pool in stable order.
func (g *Generator) Participants() []string {
	out := make([]string, 0, len(g.roster))
	for p := range g.roster {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// WideTable generates a wide-format table: one row per date, one column
// per participant, some cells empty.
func (g *Generator) WideTable() normalize.Table {
	participants := g.Participants()
	table := normalize.Table{Columns: append([]string{"Date"}, participants...)}

	for day := 0; day < g.days; day++ {
		date := g.start.AddDate(0, 0, day)
		row := make([]string, 0, len(table.Columns))
		row = append(row, date.Format("2006-01-02"))
		for range participants {
			if g.rng.Float64() < g.missingRate {
				row = append(row, "")
				continue
			}
			row = append(row, strconv.Itoa(g.steps()))
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// LongTable generates a long-format table with the team column filled
// from the roster. Missing cells are skipped rows here, matching how a
// long export drops unreported days.
func (g *Generator) LongTable() normalize.Table {
	table := normalize.Table{Columns: []string{"Date", "Participant", "Team", "Steps"}}

	for day := 0; day < g.days; day++ {
		date := g.start.AddDate(0, 0, day).Format("2006-01-02")
		for _, p := range g.Participants() {
			if g.rng.Float64() < g.missingRate {
				continue
			}
			table.Rows = append(table.Rows, []string{date, p, g.roster[p], strconv.Itoa(g.steps())})
		}
	}
	return table
}

// WriteCSV encodes a table as CSV.
func WriteCSV(w io.Writer, table normalize.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(table.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range table.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteRosterYAML emits the roster as a config file fragment suitable for
// STRIDE_CONFIG.
func (g *Generator) WriteRosterYAML(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "roster:"); err != nil {
		return err
	}
	for _, p := range g.Participants() {
		if _, err := fmt.Fprintf(w, "  %s: %s\n", p, g.roster[p]); err != nil {
			return err
		}
	}
	return nil
}

// steps draws one day's count from the archetype mix.
func (g *Generator) steps() int {
	switch g.rng.Intn(archetypeCount) {
	case caseRestDay:
		return g.rng.Intn(restDayMax)
	case caseLightDay:
		return lightDayMin + g.rng.Intn(lightDayRange)
	case caseNearTarget:
		return nearTargetMin + g.rng.Intn(nearTargetRange)
	case caseStrongDay:
		return strongDayMin + g.rng.Intn(strongDayRange)
	default:
		return bigDayMin + g.rng.Intn(bigDayRange)
	}
}
