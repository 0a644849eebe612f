// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	repository "github.com/okian/stride/internal/adapters/repository"
	"github.com/okian/stride/internal/domain/aggregate"
	"github.com/okian/stride/internal/domain/model"
	"github.com/okian/stride/internal/domain/normalize"
	"github.com/okian/stride/internal/domain/scoring"
	"github.com/okian/stride/internal/domain/types"
	"github.com/okian/stride/pkg/logger"
	"github.com/okian/stride/pkg/metrics"
)

// Service implements the API dependencies for the analytics engine.
type Service struct {
	mu sync.RWMutex

	// Core components
	store      repository.Store
	normalizer *normalize.Normalizer
	scorer     *scoring.Scorer

	// Configuration
	roster        map[string]string
	scoringOpts   []scoring.Option
	unknownPolicy normalize.UnknownPolicy
	unknownTeam   string
	maxSteps      int
	maxDatasets   int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRoster sets the participant-to-team lookup for wide-format input.
func WithRoster(roster map[string]string) Option {
	return func(s *Service) {
		s.roster = roster
	}
}

// WithScoringPolicy sets the tier boundaries of the score transform.
func WithScoringPolicy(p scoring.Policy) Option {
	return func(s *Service) {
		s.scoringOpts = append(s.scoringOpts, scoring.WithPolicy(p))
	}
}

// WithUnknownTeamPolicy decides how roster misses are handled and which
// sentinel label AssignUnknown uses.
func WithUnknownTeamPolicy(policy normalize.UnknownPolicy, label string) Option {
	return func(s *Service) {
		if policy != "" {
			s.unknownPolicy = policy
		}
		if label != "" {
			s.unknownTeam = label
		}
	}
}

// WithMaxSteps sets the plausibility ceiling for one day's step count.
func WithMaxSteps(maxSteps int) Option {
	return func(s *Service) {
		s.maxSteps = maxSteps
	}
}

// WithMaxDatasets bounds the dataset store.
func WithMaxDatasets(maxDatasets int) Option {
	return func(s *Service) {
		if maxDatasets > 0 {
			s.maxDatasets = maxDatasets
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		roster:        map[string]string{},
		unknownPolicy: normalize.AssignUnknown,
		unknownTeam:   normalize.DefaultUnknownTeam,
		maxSteps:      200_000,
		maxDatasets:   16,
		logger:        nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting analytics service...")

	scorer, err := scoring.New(s.scoringOpts...)
	if err != nil {
		return fmt.Errorf("build scorer: %w", err)
	}
	s.scorer = scorer
	s.normalizer = normalize.New(
		normalize.WithRoster(s.roster),
		normalize.WithUnknownPolicy(s.unknownPolicy),
		normalize.WithUnknownTeam(s.unknownTeam),
		normalize.WithMaxSteps(s.maxSteps),
	)
	s.store = repository.NewMemStore(
		repository.WithMaxDatasets(s.maxDatasets),
	)

	s.started = true
	s.logger.Info(ctx, "analytics service started",
		logger.Int("rosterSize", len(s.roster)),
		logger.Int("maxDatasets", s.maxDatasets),
		logger.Int("scoreBaseline", s.scorer.Baseline()),
	)

	return nil
}

// Stop shuts down the service. The store is session-scoped memory, so
// there is nothing to flush.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "analytics service stopped")
}

// IngestTable normalizes a raw table, scores every record and stores the
// result as a new immutable dataset. The call is all-or-nothing.
func (s *Service) IngestTable(ctx context.Context, table normalize.Table, format normalize.Format) (types.DatasetInfo, error) {
	start := time.Now()

	records, report, err := s.normalizer.Normalize(table, format)
	if err != nil {
		reason := ingestErrorReason(err)
		metrics.RecordIngestError(reason)
		metrics.RecordErrorByComponent("normalize", reason)
		s.logger.Warn(ctx, "normalization failed", logger.Error(err))
		return types.DatasetInfo{}, err
	}

	scored := make([]model.ScoredRecord, len(records))
	for i, r := range records {
		scored[i] = model.ScoredRecord{StepRecord: r, Score: s.scorer.Score(r.Steps)}
	}

	ds, err := s.store.Put(ctx, scored)
	if err != nil {
		metrics.RecordIngestError("store")
		metrics.RecordErrorByComponent("repository", "store")
		return types.DatasetInfo{}, err
	}

	metrics.RecordDatasetIngested()
	metrics.RecordRecordsNormalized(report.RecordsEmitted)
	metrics.RecordCellsDropped(report.CellsDropped)
	metrics.RecordLookupMisses(len(report.UnknownParticipants))
	metrics.RecordNormalizeLatency(float64(time.Since(start).Milliseconds()))

	info := datasetInfo(ds, report)
	s.logger.Info(ctx, "dataset ingested",
		logger.String("dataset", info.ID),
		logger.Int("records", info.Records),
		logger.Int("cellsDropped", info.CellsDropped),
		logger.Int("unknownParticipants", len(info.UnknownParticipants)),
	)
	return info, nil
}

// ListDatasets returns summaries of every stored dataset.
func (s *Service) ListDatasets(ctx context.Context) []types.DatasetInfo {
	datasets := s.store.List(ctx)
	out := make([]types.DatasetInfo, len(datasets))
	for i, ds := range datasets {
		out[i] = datasetInfo(ds, nil)
	}
	return out
}

// DeleteDataset removes a dataset from the session.
func (s *Service) DeleteDataset(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info(ctx, "dataset deleted", logger.String("dataset", id))
	return nil
}

// Overview computes the headline metrics for a filtered dataset. Empty
// aggregates surface as nil fields, never as NaN or zero.
func (s *Service) Overview(ctx context.Context, id string, filter model.FilterSpec) (types.Overview, error) {
	ds, err := s.store.Get(ctx, id)
	if err != nil {
		return types.Overview{}, err
	}
	defer s.observe("overview", time.Now())

	out := types.Overview{
		TotalSteps:  aggregate.TotalSteps(ds.Records, filter),
		TargetSteps: s.scorer.Baseline(),
		Records:     len(aggregate.Filter(ds.Records, filter)),
	}
	if avg, err := aggregate.AvgDailyScore(ds.Records, filter); err == nil {
		out.AvgDailyScore = &avg
	}
	if pct, err := aggregate.PctAtOrAbove(ds.Records, filter, s.scorer.Baseline()); err == nil {
		out.PctAtTarget = &pct
	}
	return out, nil
}

// TeamTotals returns the team leaderboard.
func (s *Service) TeamTotals(ctx context.Context, id string, filter model.FilterSpec) ([]types.TeamTotal, error) {
	ds, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	defer s.observe("team_totals", time.Now())
	return aggregate.TeamTotals(ds.Records, filter), nil
}

// TeamStats returns per-team score statistics.
func (s *Service) TeamStats(ctx context.Context, id string, filter model.FilterSpec) ([]types.TeamStat, error) {
	ds, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	defer s.observe("team_stats", time.Now())
	return aggregate.TeamStats(ds.Records, filter), nil
}

// ParticipantTotals returns the individual leaderboard, truncated to limit
// when limit > 0.
func (s *Service) ParticipantTotals(ctx context.Context, id string, filter model.FilterSpec, limit int) ([]types.ParticipantTotal, error) {
	ds, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	defer s.observe("participant_totals", time.Now())

	totals := aggregate.ParticipantTotals(ds.Records, filter)
	if limit > 0 && limit < len(totals) {
		totals = totals[:limit]
	}
	return totals, nil
}

// Cumulative returns the running score matrix per team.
func (s *Service) Cumulative(ctx context.Context, id string, filter model.FilterSpec) (types.CumulativeSeries, error) {
	ds, err := s.store.Get(ctx, id)
	if err != nil {
		return types.CumulativeSeries{}, err
	}
	defer s.observe("cumulative", time.Now())
	return aggregate.DailyCumulativeByTeam(ds.Records, filter), nil
}

// Race returns the long-format daily team series.
func (s *Service) Race(ctx context.Context, id string, filter model.FilterSpec) ([]types.RacePoint, error) {
	ds, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	defer s.observe("race", time.Now())
	return aggregate.TeamDailyRace(ds.Records, filter), nil
}

// Breakdown returns the team-to-participant part-to-whole view.
func (s *Service) Breakdown(ctx context.Context, id string, filter model.FilterSpec) ([]types.TeamBreakdown, error) {
	ds, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	defer s.observe("breakdown", time.Now())
	return aggregate.TeamParticipantBreakdown(ds.Records, filter), nil
}

// Calendar returns daily step totals with heatmap coordinates.
func (s *Service) Calendar(ctx context.Context, id string, filter model.FilterSpec) ([]types.CalendarBucket, error) {
	ds, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	defer s.observe("calendar", time.Now())
	return aggregate.CalendarBuckets(ds.Records, filter), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"rosterSize":  len(s.roster),
		"maxDatasets": s.maxDatasets,
	}

	if s.started {
		datasetCount := s.store.Count(ctx)
		stats["datasetCount"] = datasetCount
		metrics.UpdateDatasetCount(datasetCount)

		if ms, ok := s.store.(*repository.MemStore); ok {
			recordsTotal := ms.RecordsTotal(ctx)
			stats["recordsTotal"] = recordsTotal
			metrics.UpdateRecordsTotal(recordsTotal)
		}
	}

	return stats
}

// observe records a view computation duration.
func (s *Service) observe(view string, start time.Time) {
	metrics.RecordAggregateLatency(view, float64(time.Since(start).Milliseconds()))
}

// datasetInfo derives the summary shape from a stored dataset. The report
// is nil when summarizing an existing dataset rather than a fresh ingest.
func datasetInfo(ds repository.Dataset, report *normalize.Report) types.DatasetInfo {
	info := types.DatasetInfo{
		ID:        ds.ID,
		Records:   len(ds.Records),
		CreatedAt: ds.CreatedAt,
	}
	if report != nil {
		info.RowsRead = report.RowsRead
		info.CellsDropped = report.CellsDropped
		info.UnknownParticipants = report.UnknownParticipants
	}

	teams := make(map[string]struct{})
	for _, r := range ds.Records {
		teams[r.Team] = struct{}{}
		if info.FirstDate.IsZero() || r.Date.Before(info.FirstDate) {
			info.FirstDate = r.Date
		}
		if r.Date.After(info.LastDate) {
			info.LastDate = r.Date
		}
	}
	for t := range teams {
		info.Teams = append(info.Teams, t)
	}
	sort.Strings(info.Teams)
	return info
}

// ingestErrorReason buckets normalization failures for metrics labels.
func ingestErrorReason(err error) string {
	switch {
	case errors.Is(err, normalize.ErrUnknownParticipant):
		return "roster"
	case errors.Is(err, normalize.ErrDuplicateRecord):
		return "duplicate"
	case errors.Is(err, normalize.ErrUnknownFormat):
		return "format"
	default:
		return "parse"
	}
}
